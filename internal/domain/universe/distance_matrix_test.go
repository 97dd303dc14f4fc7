package universe_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/evetrade/internal/domain/universe"
)

// buildTestTopology creates a small chain with a detached island:
//
//	1 - 2 - 3 - 4      10 - 11
func buildTestTopology() *universe.Topology {
	topology := universe.NewTopology("test-v1")
	topology.AddGate(1, 2)
	topology.AddGate(2, 3)
	topology.AddGate(3, 4)
	topology.AddGate(10, 11)
	return topology
}

func TestBuildDistanceMatrix_JumpCounts(t *testing.T) {
	// Arrange
	topology := buildTestTopology()

	// Act
	matrix := universe.BuildDistanceMatrix(topology, []int64{1, 3, 4})

	// Assert
	jumps, err := matrix.Jumps(1, 3)
	require.NoError(t, err)
	assert.Equal(t, 2, jumps)

	jumps, err = matrix.Jumps(1, 4)
	require.NoError(t, err)
	assert.Equal(t, 3, jumps)

	jumps, err = matrix.Jumps(3, 4)
	require.NoError(t, err)
	assert.Equal(t, 1, jumps)
}

func TestBuildDistanceMatrix_Symmetric(t *testing.T) {
	// Arrange
	topology := buildTestTopology()
	selected := []int64{1, 2, 3, 4}

	// Act
	matrix := universe.BuildDistanceMatrix(topology, selected)

	// Assert - distance(a,b) = distance(b,a) for all reachable pairs
	for _, a := range selected {
		for _, b := range selected {
			forward, errF := matrix.Jumps(a, b)
			backward, errB := matrix.Jumps(b, a)
			require.NoError(t, errF)
			require.NoError(t, errB)
			assert.Equal(t, forward, backward, "distance(%d,%d) != distance(%d,%d)", a, b, b, a)
		}
	}
}

func TestBuildDistanceMatrix_SelfDistanceIsZero(t *testing.T) {
	matrix := universe.BuildDistanceMatrix(buildTestTopology(), []int64{1, 2})

	jumps, err := matrix.Jumps(2, 2)
	require.NoError(t, err)
	assert.Equal(t, 0, jumps)
}

func TestDistanceMatrix_UnreachablePair(t *testing.T) {
	// Arrange - hub 10 sits on the detached island
	matrix := universe.BuildDistanceMatrix(buildTestTopology(), []int64{1, 10})

	// Act
	_, err := matrix.Jumps(1, 10)

	// Assert - unreachable pairs error at lookup, never default to zero
	require.Error(t, err)
	var unreachable *universe.UnreachableHubError
	require.True(t, errors.As(err, &unreachable))
	assert.Equal(t, int64(1), unreachable.FromSystemID)
	assert.Equal(t, int64(10), unreachable.ToSystemID)
}

func TestDistanceMatrix_UnknownSystem(t *testing.T) {
	matrix := universe.BuildDistanceMatrix(buildTestTopology(), []int64{1, 2})

	_, err := matrix.Jumps(1, 999)

	var unreachable *universe.UnreachableHubError
	require.True(t, errors.As(err, &unreachable))
}

func TestMatrixCache_ReusesMatrixForSameKey(t *testing.T) {
	// Arrange
	cache := universe.NewMatrixCache()
	topology := buildTestTopology()

	// Act - same hub set in a different order must hit the same entry
	first := cache.GetOrBuild(topology, []int64{1, 3, 4})
	second := cache.GetOrBuild(topology, []int64{4, 1, 3})

	// Assert
	assert.Same(t, first, second)
}

func TestMatrixCache_RebuildsOnTopologyVersionChange(t *testing.T) {
	// Arrange
	cache := universe.NewMatrixCache()
	oldTopology := buildTestTopology()

	newTopology := universe.NewTopology("test-v2")
	newTopology.AddGate(1, 2)
	newTopology.AddGate(2, 3)
	newTopology.AddGate(3, 4)
	newTopology.AddGate(1, 4) // shortcut added in the new version

	// Act
	oldMatrix := cache.GetOrBuild(oldTopology, []int64{1, 4})
	newMatrix := cache.GetOrBuild(newTopology, []int64{1, 4})

	// Assert
	oldJumps, err := oldMatrix.Jumps(1, 4)
	require.NoError(t, err)
	newJumps, err := newMatrix.Jumps(1, 4)
	require.NoError(t, err)
	assert.Equal(t, 3, oldJumps)
	assert.Equal(t, 1, newJumps)
}
