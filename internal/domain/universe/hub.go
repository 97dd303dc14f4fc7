package universe

import "github.com/andrescamacho/evetrade/internal/domain/shared"

// Hub is a trade location where order books are observed: a station inside a
// solar system, tied to the market region that system belongs to.
// Hubs are static reference data sourced from the universe import.
type Hub struct {
	SystemID   int64   // Solar system the hub station sits in
	Name       string  // Hub name, e.g. "Jita"
	RegionID   int64   // Market region the system belongs to
	RegionName string  // e.g. "The Forge"
	StationID  int64   // NPC station whose order book represents the hub
	Security   float64 // System security status, 0.0 (null) to 1.0 (highsec)
}

// NewHub creates a Hub with validation
func NewHub(systemID int64, name string, regionID int64, regionName string, stationID int64, security float64) (*Hub, error) {
	if systemID <= 0 {
		return nil, shared.NewValidationError("system_id", "must be positive")
	}
	if name == "" {
		return nil, shared.NewValidationError("name", "cannot be empty")
	}
	if regionID <= 0 {
		return nil, shared.NewValidationError("region_id", "must be positive")
	}
	if stationID <= 0 {
		return nil, shared.NewValidationError("station_id", "must be positive")
	}
	if security < 0.0 || security > 1.0 {
		return nil, shared.NewValidationError("security", "must be between 0.0 and 1.0")
	}
	return &Hub{
		SystemID:   systemID,
		Name:       name,
		RegionID:   regionID,
		RegionName: regionName,
		StationID:  stationID,
		Security:   security,
	}, nil
}
