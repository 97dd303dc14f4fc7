package types

import "github.com/andrescamacho/evetrade/internal/domain/trading"

// OpportunityDTO is the externally-visible shape of a ranked trade
// opportunity. The JSON field set is a published contract; do not rename or
// drop fields.
type OpportunityDTO struct {
	Item          string  `json:"item"`
	BuyRegion     string  `json:"buy_region"`
	SellRegion    string  `json:"sell_region"`
	Volume        float64 `json:"volume"`
	Amount        int64   `json:"amount"`
	TotalCost     float64 `json:"total_cost"`
	Profit        float64 `json:"profit"`
	Jumps         int     `json:"jumps"`
	ProfitPerJump float64 `json:"profit_per_jump"`
}

// SkipCountersDTO mirrors the engine's skip diagnostics for API consumers
type SkipCountersDTO struct {
	SameRegionPairs  int64 `json:"same_region_pairs"`
	UnreachablePairs int64 `json:"unreachable_pairs"`
	MissingQuotes    int64 `json:"missing_quotes"`
	NoSpread         int64 `json:"no_spread"`
	ZeroQuantity     int64 `json:"zero_quantity"`
	BelowThreshold   int64 `json:"below_threshold"`
	Total            int64 `json:"total"`
}

// FromOpportunity converts a domain opportunity to its DTO
func FromOpportunity(opp *trading.Opportunity) *OpportunityDTO {
	return &OpportunityDTO{
		Item:          opp.Item().Name,
		BuyRegion:     opp.BuyHub().Name,
		SellRegion:    opp.SellHub().Name,
		Volume:        opp.TotalVolume(),
		Amount:        opp.Quantity(),
		TotalCost:     opp.TotalCost(),
		Profit:        opp.Profit(),
		Jumps:         opp.Jumps(),
		ProfitPerJump: opp.ProfitPerJump(),
	}
}

// FromSkipCounters converts engine skip diagnostics to their DTO
func FromSkipCounters(s trading.SkipCounters) SkipCountersDTO {
	return SkipCountersDTO{
		SameRegionPairs:  s.SameRegionPairs,
		UnreachablePairs: s.UnreachablePairs,
		MissingQuotes:    s.MissingQuotes,
		NoSpread:         s.NoSpread,
		ZeroQuantity:     s.ZeroQuantity,
		BelowThreshold:   s.BelowThreshold,
		Total:            s.Total(),
	}
}
