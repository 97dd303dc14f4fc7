package trading

import (
	"errors"
	"fmt"

	"github.com/andrescamacho/evetrade/internal/domain/market"
	"github.com/andrescamacho/evetrade/internal/domain/universe"
)

// Opportunity represents one fully-specified, profitable buy-here/sell-there
// trade: a concrete quantity of an item bought at the ask of one hub and sold
// into the bid of another.
//
// An Opportunity is only valid for the snapshot and configuration that
// produced it; it is never merged across snapshots or mutated after creation.
// All fields are private with read-only getters.
type Opportunity struct {
	item          *market.Item
	buyHub        *universe.Hub
	sellHub       *universe.Hub
	quantity      int64
	askPrice      float64
	bidPrice      float64
	totalCost     float64
	revenue       float64
	profit        float64
	totalVolume   float64
	jumps         int
	profitPerJump float64
}

// NewOpportunity creates an Opportunity with validation. All derived values
// (cost, revenue, profit, hauled volume, profit-per-jump) are computed here.
func NewOpportunity(
	item *market.Item,
	buyHub *universe.Hub,
	sellHub *universe.Hub,
	quantity int64,
	askPrice float64,
	bidPrice float64,
	jumps int,
) (*Opportunity, error) {
	if item == nil {
		return nil, errors.New("item required")
	}
	if buyHub == nil {
		return nil, errors.New("buy hub required")
	}
	if sellHub == nil {
		return nil, errors.New("sell hub required")
	}
	if buyHub.SystemID == sellHub.SystemID {
		return nil, fmt.Errorf("buy and sell hub are the same system (%d)", buyHub.SystemID)
	}
	if quantity <= 0 {
		return nil, errors.New("quantity must be positive")
	}
	if askPrice <= 0 {
		return nil, errors.New("ask price must be positive")
	}
	if bidPrice <= 0 {
		return nil, errors.New("bid price must be positive")
	}
	if jumps < 1 {
		return nil, fmt.Errorf("jump count must be at least 1, got %d", jumps)
	}

	totalCost := float64(quantity) * askPrice
	revenue := float64(quantity) * bidPrice
	profit := revenue - totalCost

	return &Opportunity{
		item:          item,
		buyHub:        buyHub,
		sellHub:       sellHub,
		quantity:      quantity,
		askPrice:      askPrice,
		bidPrice:      bidPrice,
		totalCost:     totalCost,
		revenue:       revenue,
		profit:        profit,
		totalVolume:   float64(quantity) * item.Volume,
		jumps:         jumps,
		profitPerJump: profit / float64(jumps),
	}, nil
}

// Getters - read-only access to maintain immutability

func (o *Opportunity) Item() *market.Item {
	return o.item
}

func (o *Opportunity) BuyHub() *universe.Hub {
	return o.buyHub
}

func (o *Opportunity) SellHub() *universe.Hub {
	return o.sellHub
}

func (o *Opportunity) Quantity() int64 {
	return o.quantity
}

func (o *Opportunity) AskPrice() float64 {
	return o.askPrice
}

func (o *Opportunity) BidPrice() float64 {
	return o.bidPrice
}

func (o *Opportunity) TotalCost() float64 {
	return o.totalCost
}

func (o *Opportunity) Revenue() float64 {
	return o.revenue
}

func (o *Opportunity) Profit() float64 {
	return o.profit
}

// TotalVolume returns the hauled volume in m³ (quantity × item volume)
func (o *Opportunity) TotalVolume() float64 {
	return o.totalVolume
}

func (o *Opportunity) Jumps() int {
	return o.jumps
}

func (o *Opportunity) ProfitPerJump() float64 {
	return o.profitPerJump
}

// String returns a human-readable representation
func (o *Opportunity) String() string {
	return fmt.Sprintf("Opportunity{%s %s->%s qty=%d profit=%.2f jumps=%d}",
		o.item.Name, o.buyHub.Name, o.sellHub.Name, o.quantity, o.profit, o.jumps)
}
