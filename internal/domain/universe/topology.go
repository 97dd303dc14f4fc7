package universe

// Topology holds the stargate adjacency list of solar systems. Every edge is
// one jump; edges are undirected. The topology is static reference data and is
// tagged with a version so that derived distance matrices can be cached.
type Topology struct {
	version string
	adj     map[int64][]int64
}

// NewTopology creates an empty topology with the given version tag
func NewTopology(version string) *Topology {
	return &Topology{
		version: version,
		adj:     make(map[int64][]int64),
	}
}

// Version returns the topology version tag
func (t *Topology) Version() string {
	return t.version
}

// AddGate adds a bidirectional stargate connection between two systems.
// Adding either endpoint registers both systems in the topology.
func (t *Topology) AddGate(fromSystem, toSystem int64) {
	t.adj[fromSystem] = append(t.adj[fromSystem], toSystem)
	t.adj[toSystem] = append(t.adj[toSystem], fromSystem)
}

// Neighbors returns the systems directly connected to the given system
func (t *Topology) Neighbors(systemID int64) []int64 {
	return t.adj[systemID]
}

// HasSystem reports whether the system appears in the topology
func (t *Topology) HasSystem(systemID int64) bool {
	_, ok := t.adj[systemID]
	return ok
}

// Systems returns all system ids in the topology, in no particular order
func (t *Topology) Systems() []int64 {
	ids := make([]int64, 0, len(t.adj))
	for id := range t.adj {
		ids = append(ids, id)
	}
	return ids
}

// SystemCount returns the number of systems in the topology
func (t *Topology) SystemCount() int {
	return len(t.adj)
}
