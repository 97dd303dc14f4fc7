package universe

import "context"

// HubRepository defines access to the static trade hub set
type HubRepository interface {
	ListHubs(ctx context.Context) ([]*Hub, error)
	SaveHubs(ctx context.Context, hubs []*Hub) error
}

// TopologyRepository defines access to the stargate topology
type TopologyRepository interface {
	// LoadTopology returns the full adjacency graph with its version tag
	LoadTopology(ctx context.Context) (*Topology, error)

	// SaveTopology replaces the stored topology
	SaveTopology(ctx context.Context, topology *Topology) error
}
