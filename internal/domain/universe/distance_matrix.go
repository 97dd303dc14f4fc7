package universe

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// NoRoute marks a hub pair with no stargate path between them. It is recorded
// explicitly so that an unreachable pair can never be confused with a
// zero-jump pair.
const NoRoute = -1

// UnreachableHubError indicates a distance lookup between two hubs that have
// no stargate path. It is surfaced at lookup time, not at matrix build time:
// the engine treats it as a per-pair skip.
type UnreachableHubError struct {
	FromSystemID int64
	ToSystemID   int64
}

func (e *UnreachableHubError) Error() string {
	return fmt.Sprintf("no route between systems %d and %d", e.FromSystemID, e.ToSystemID)
}

// DistanceMatrix maps selected hub system pairs to jump counts. It is built
// once per (topology version, hub set) and read-only afterward; lookups are
// safe for concurrent use.
type DistanceMatrix struct {
	topologyVersion string
	systems         []int64
	jumps           map[int64]map[int64]int
}

// BuildDistanceMatrix runs an unweighted breadth-first search from each
// selected hub system over the full topology and records jump counts to the
// other selected systems. Pairs with no path get the NoRoute sentinel.
//
// BFS-per-hub is preferred over all-pairs Floyd-Warshall: the hub set is in
// the tens while the topology has thousands of systems.
func BuildDistanceMatrix(topology *Topology, selectedSystems []int64) *DistanceMatrix {
	selected := make(map[int64]bool, len(selectedSystems))
	for _, id := range selectedSystems {
		selected[id] = true
	}

	m := &DistanceMatrix{
		topologyVersion: topology.Version(),
		systems:         append([]int64(nil), selectedSystems...),
		jumps:           make(map[int64]map[int64]int, len(selectedSystems)),
	}

	for _, origin := range selectedSystems {
		row := make(map[int64]int, len(selectedSystems))
		for _, target := range selectedSystems {
			row[target] = NoRoute
		}
		row[origin] = 0

		remaining := len(selectedSystems) - 1
		visited := map[int64]bool{origin: true}
		frontier := []int64{origin}
		depth := 0

		for len(frontier) > 0 && remaining > 0 {
			depth++
			var next []int64
			for _, systemID := range frontier {
				for _, neighbor := range topology.Neighbors(systemID) {
					if visited[neighbor] {
						continue
					}
					visited[neighbor] = true
					if selected[neighbor] && row[neighbor] == NoRoute {
						row[neighbor] = depth
						remaining--
					}
					next = append(next, neighbor)
				}
			}
			frontier = next
		}

		m.jumps[origin] = row
	}

	return m
}

// TopologyVersion returns the version of the topology the matrix was built from
func (m *DistanceMatrix) TopologyVersion() string {
	return m.topologyVersion
}

// Systems returns the selected hub systems the matrix covers
func (m *DistanceMatrix) Systems() []int64 {
	return append([]int64(nil), m.systems...)
}

// Jumps returns the jump count between two selected hub systems.
// Returns UnreachableHubError if the pair has no path or either system is
// outside the selected set.
func (m *DistanceMatrix) Jumps(fromSystemID, toSystemID int64) (int, error) {
	row, ok := m.jumps[fromSystemID]
	if !ok {
		return 0, &UnreachableHubError{FromSystemID: fromSystemID, ToSystemID: toSystemID}
	}
	count, ok := row[toSystemID]
	if !ok || count == NoRoute {
		return 0, &UnreachableHubError{FromSystemID: fromSystemID, ToSystemID: toSystemID}
	}
	return count, nil
}

// MatrixCache caches distance matrices keyed by topology version and hub set.
// The underlying data is static, so entries never expire; a new topology
// version or hub selection simply produces a new key.
type MatrixCache struct {
	mu      sync.Mutex
	entries map[string]*DistanceMatrix
}

// NewMatrixCache creates an empty matrix cache
func NewMatrixCache() *MatrixCache {
	return &MatrixCache{entries: make(map[string]*DistanceMatrix)}
}

// GetOrBuild returns the cached matrix for (topology version, hub set) or
// builds and caches it on first use
func (c *MatrixCache) GetOrBuild(topology *Topology, selectedSystems []int64) *DistanceMatrix {
	key := cacheKey(topology.Version(), selectedSystems)

	c.mu.Lock()
	defer c.mu.Unlock()

	if m, ok := c.entries[key]; ok {
		return m
	}
	m := BuildDistanceMatrix(topology, selectedSystems)
	c.entries[key] = m
	return m
}

func cacheKey(version string, systems []int64) string {
	sorted := append([]int64(nil), systems...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	var b strings.Builder
	b.WriteString(version)
	for _, id := range sorted {
		fmt.Fprintf(&b, ":%d", id)
	}
	return b.String()
}
