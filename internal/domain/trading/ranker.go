package trading

import "sort"

// RankOpportunities sorts opportunities descending by profit, then by
// profit-per-jump, then ascending by (item, buy hub, sell hub) so the order
// is a strict total order with no ties, and truncates to limit. A
// non-positive limit keeps everything.
//
// The input slice is not modified.
func RankOpportunities(opportunities []*Opportunity, limit int) []*Opportunity {
	ranked := append([]*Opportunity(nil), opportunities...)

	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.Profit() != b.Profit() {
			return a.Profit() > b.Profit()
		}
		if a.ProfitPerJump() != b.ProfitPerJump() {
			return a.ProfitPerJump() > b.ProfitPerJump()
		}
		if a.Item().TypeID != b.Item().TypeID {
			return a.Item().TypeID < b.Item().TypeID
		}
		if a.BuyHub().SystemID != b.BuyHub().SystemID {
			return a.BuyHub().SystemID < b.BuyHub().SystemID
		}
		return a.SellHub().SystemID < b.SellHub().SystemID
	})

	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}
