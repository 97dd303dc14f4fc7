package persistence

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/andrescamacho/evetrade/internal/domain/market"
	"github.com/andrescamacho/evetrade/internal/domain/universe"
)

// GormHubRepository implements universe.HubRepository using GORM
type GormHubRepository struct {
	db *gorm.DB
}

// NewGormHubRepository creates a new GORM-based hub repository
func NewGormHubRepository(db *gorm.DB) universe.HubRepository {
	return &GormHubRepository{db: db}
}

// ListHubs returns all imported trade hubs ordered by system id
func (r *GormHubRepository) ListHubs(ctx context.Context) ([]*universe.Hub, error) {
	var models []HubModel
	if err := r.db.WithContext(ctx).Order("system_id").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list hubs: %w", err)
	}

	hubs := make([]*universe.Hub, 0, len(models))
	for _, m := range models {
		hub, err := universe.NewHub(m.SystemID, m.Name, m.RegionID, m.RegionName, m.StationID, m.Security)
		if err != nil {
			return nil, fmt.Errorf("invalid hub row system=%d: %w", m.SystemID, err)
		}
		hubs = append(hubs, hub)
	}
	return hubs, nil
}

// SaveHubs upserts the given hubs
func (r *GormHubRepository) SaveHubs(ctx context.Context, hubs []*universe.Hub) error {
	if len(hubs) == 0 {
		return nil
	}

	models := make([]HubModel, 0, len(hubs))
	for _, h := range hubs {
		models = append(models, HubModel{
			SystemID:   h.SystemID,
			Name:       h.Name,
			RegionID:   h.RegionID,
			RegionName: h.RegionName,
			StationID:  h.StationID,
			Security:   h.Security,
		})
	}

	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "system_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "region_id", "region_name", "station_id", "security"}),
		}).
		Create(&models).Error
	if err != nil {
		return fmt.Errorf("failed to save hubs: %w", err)
	}
	return nil
}

// GormTopologyRepository implements universe.TopologyRepository using GORM
type GormTopologyRepository struct {
	db *gorm.DB
}

// NewGormTopologyRepository creates a new GORM-based topology repository
func NewGormTopologyRepository(db *gorm.DB) universe.TopologyRepository {
	return &GormTopologyRepository{db: db}
}

// LoadTopology loads the newest stored topology version and rebuilds the
// adjacency graph from its stargate rows
func (r *GormTopologyRepository) LoadTopology(ctx context.Context) (*universe.Topology, error) {
	var version string
	err := r.db.WithContext(ctx).
		Model(&StargateModel{}).
		Select("version").
		Order("id DESC").
		Limit(1).
		Scan(&version).Error
	if err != nil {
		return nil, fmt.Errorf("failed to resolve topology version: %w", err)
	}
	if version == "" {
		return nil, fmt.Errorf("no topology imported")
	}

	var models []StargateModel
	if err := r.db.WithContext(ctx).Where("version = ?", version).Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to load stargates: %w", err)
	}

	topology := universe.NewTopology(version)
	for _, m := range models {
		topology.AddGate(m.FromSystem, m.ToSystem)
	}
	return topology, nil
}

// SaveTopology replaces the stored topology inside a transaction
func (r *GormTopologyRepository) SaveTopology(ctx context.Context, topology *universe.Topology) error {
	models := stargateRows(topology)

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&StargateModel{}).Error; err != nil {
			return fmt.Errorf("failed to clear stargates: %w", err)
		}
		if len(models) == 0 {
			return nil
		}
		if err := tx.CreateInBatches(&models, 500).Error; err != nil {
			return fmt.Errorf("failed to save stargates: %w", err)
		}
		return nil
	})
}

// stargateRows flattens an undirected topology into one row per edge,
// storing each pair once with the smaller system id first
func stargateRows(topology *universe.Topology) []StargateModel {
	seen := make(map[[2]int64]bool)
	var models []StargateModel

	for _, from := range topology.Systems() {
		for _, to := range topology.Neighbors(from) {
			a, b := from, to
			if a > b {
				a, b = b, a
			}
			key := [2]int64{a, b}
			if seen[key] {
				continue
			}
			seen[key] = true
			models = append(models, StargateModel{
				FromSystem: a,
				ToSystem:   b,
				Version:    topology.Version(),
			})
		}
	}
	return models
}

// GormItemRepository implements market.ItemRepository using GORM
type GormItemRepository struct {
	db *gorm.DB
}

// NewGormItemRepository creates a new GORM-based item repository
func NewGormItemRepository(db *gorm.DB) market.ItemRepository {
	return &GormItemRepository{db: db}
}

// ListItems returns all tradable items ordered by type id
func (r *GormItemRepository) ListItems(ctx context.Context) ([]*market.Item, error) {
	var models []ItemModel
	if err := r.db.WithContext(ctx).Order("type_id").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}

	items := make([]*market.Item, 0, len(models))
	for _, m := range models {
		item, err := market.NewItem(m.TypeID, m.Name, m.Volume)
		if err != nil {
			return nil, fmt.Errorf("invalid item row type=%d: %w", m.TypeID, err)
		}
		items = append(items, item)
	}
	return items, nil
}

// SaveItems upserts the given items
func (r *GormItemRepository) SaveItems(ctx context.Context, items []*market.Item) error {
	if len(items) == 0 {
		return nil
	}

	models := make([]ItemModel, 0, len(items))
	for _, i := range items {
		models = append(models, ItemModel{TypeID: i.TypeID, Name: i.Name, Volume: i.Volume})
	}

	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "type_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "volume"}),
		}).
		CreateInBatches(&models, 500).Error
	if err != nil {
		return fmt.Errorf("failed to save items: %w", err)
	}
	return nil
}
