package persistence_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/evetrade/internal/adapters/persistence"
	"github.com/andrescamacho/evetrade/internal/domain/market"
	"github.com/andrescamacho/evetrade/internal/domain/universe"
	"github.com/andrescamacho/evetrade/test/helpers"
)

func TestHubRepository_SaveAndList(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormHubRepository(db)

	jita, err := universe.NewHub(30000142, "Jita", 10000002, "The Forge", 60003760, 0.95)
	require.NoError(t, err)
	amarr, err := universe.NewHub(30002187, "Amarr", 10000043, "Domain", 60008494, 1.0)
	require.NoError(t, err)

	// Act
	err = repo.SaveHubs(context.Background(), []*universe.Hub{jita, amarr})
	require.NoError(t, err)

	hubs, err := repo.ListHubs(context.Background())

	// Assert
	require.NoError(t, err)
	require.Len(t, hubs, 2)
	assert.Equal(t, "Jita", hubs[0].Name)
	assert.Equal(t, int64(10000002), hubs[0].RegionID)
	assert.Equal(t, "The Forge", hubs[0].RegionName)
	assert.Equal(t, int64(60003760), hubs[0].StationID)
	assert.InDelta(t, 0.95, hubs[0].Security, 1e-9)
	assert.Equal(t, "Amarr", hubs[1].Name)
}

func TestHubRepository_SaveUpserts(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormHubRepository(db)

	jita, _ := universe.NewHub(30000142, "Jita", 10000002, "The Forge", 60003760, 0.95)
	require.NoError(t, repo.SaveHubs(context.Background(), []*universe.Hub{jita}))

	// Act - save again with a changed security status
	updated, _ := universe.NewHub(30000142, "Jita", 10000002, "The Forge", 60003760, 0.9)
	err := repo.SaveHubs(context.Background(), []*universe.Hub{updated})

	// Assert
	require.NoError(t, err)
	hubs, err := repo.ListHubs(context.Background())
	require.NoError(t, err)
	require.Len(t, hubs, 1)
	assert.InDelta(t, 0.9, hubs[0].Security, 1e-9)
}

func TestTopologyRepository_RoundTrip(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormTopologyRepository(db)

	topology := universe.NewTopology("sde-2026-08")
	topology.AddGate(30000142, 30000144)
	topology.AddGate(30000144, 30002659)

	// Act
	err := repo.SaveTopology(context.Background(), topology)
	require.NoError(t, err)

	loaded, err := repo.LoadTopology(context.Background())

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "sde-2026-08", loaded.Version())
	assert.Equal(t, 3, loaded.SystemCount())
	assert.ElementsMatch(t, []int64{30000142, 30002659}, loaded.Neighbors(30000144))
	assert.True(t, loaded.HasSystem(30000142))
}

func TestTopologyRepository_SaveReplacesPrevious(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormTopologyRepository(db)

	first := universe.NewTopology("v1")
	first.AddGate(1, 2)
	require.NoError(t, repo.SaveTopology(context.Background(), first))

	second := universe.NewTopology("v2")
	second.AddGate(3, 4)
	second.AddGate(4, 5)

	// Act
	require.NoError(t, repo.SaveTopology(context.Background(), second))
	loaded, err := repo.LoadTopology(context.Background())

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "v2", loaded.Version())
	assert.False(t, loaded.HasSystem(1))
	assert.True(t, loaded.HasSystem(5))
}

func TestTopologyRepository_LoadWithoutImportFails(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormTopologyRepository(db)

	_, err := repo.LoadTopology(context.Background())

	assert.Error(t, err)
}

func TestItemRepository_SaveAndList(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormItemRepository(db)

	tritanium, err := market.NewItem(34, "Tritanium", 0.01)
	require.NoError(t, err)
	plex, err := market.NewItem(44992, "PLEX", 0.01)
	require.NoError(t, err)

	// Act
	err = repo.SaveItems(context.Background(), []*market.Item{plex, tritanium})
	require.NoError(t, err)

	items, err := repo.ListItems(context.Background())

	// Assert
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, int64(34), items[0].TypeID)
	assert.Equal(t, "Tritanium", items[0].Name)
	assert.Equal(t, "PLEX", items[1].Name)
}
