package market

import "github.com/andrescamacho/evetrade/internal/domain/shared"

// Item is a tradable good (immutable reference data). Volume is the packaged
// volume per unit in m³ and constrains how many units fit in a cargo hold.
type Item struct {
	TypeID int64
	Name   string
	Volume float64
}

// NewItem creates an Item with validation
func NewItem(typeID int64, name string, volume float64) (*Item, error) {
	if typeID <= 0 {
		return nil, shared.NewValidationError("type_id", "must be positive")
	}
	if name == "" {
		return nil, shared.NewValidationError("name", "cannot be empty")
	}
	if volume <= 0 {
		return nil, shared.NewValidationError("volume", "must be positive")
	}
	return &Item{TypeID: typeID, Name: name, Volume: volume}, nil
}
