package persistence

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/andrescamacho/evetrade/internal/domain/trading"
)

// GormOpportunityLogRepository appends reported opportunities to the
// opportunity_log table for later price research
type GormOpportunityLogRepository struct {
	db *gorm.DB
}

// NewGormOpportunityLogRepository creates a new GORM-based opportunity log
func NewGormOpportunityLogRepository(db *gorm.DB) *GormOpportunityLogRepository {
	return &GormOpportunityLogRepository{db: db}
}

// LogOpportunities records all opportunities reported by a run
func (r *GormOpportunityLogRepository) LogOpportunities(ctx context.Context, runID string, recordedAt time.Time, opportunities []*trading.Opportunity) error {
	if len(opportunities) == 0 {
		return nil
	}

	models := make([]OpportunityLogModel, 0, len(opportunities))
	for _, opp := range opportunities {
		models = append(models, OpportunityLogModel{
			RunID:         runID,
			RecordedAt:    recordedAt,
			ItemTypeID:    opp.Item().TypeID,
			ItemName:      opp.Item().Name,
			BuyHubSystem:  opp.BuyHub().SystemID,
			BuyHubName:    opp.BuyHub().Name,
			SellHubSystem: opp.SellHub().SystemID,
			SellHubName:   opp.SellHub().Name,
			Quantity:      opp.Quantity(),
			AskPrice:      opp.AskPrice(),
			BidPrice:      opp.BidPrice(),
			TotalCost:     opp.TotalCost(),
			Profit:        opp.Profit(),
			Jumps:         opp.Jumps(),
			ProfitPerJump: opp.ProfitPerJump(),
		})
	}

	if err := r.db.WithContext(ctx).CreateInBatches(&models, 200).Error; err != nil {
		return fmt.Errorf("failed to log opportunities: %w", err)
	}
	return nil
}

// RunEntries returns the logged opportunities for a run, best profit first
func (r *GormOpportunityLogRepository) RunEntries(ctx context.Context, runID string) ([]*trading.LoggedOpportunity, error) {
	var models []OpportunityLogModel
	err := r.db.WithContext(ctx).
		Where("run_id = ?", runID).
		Order("profit DESC").
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load opportunity log: %w", err)
	}

	entries := make([]*trading.LoggedOpportunity, 0, len(models))
	for _, model := range models {
		entries = append(entries, &trading.LoggedOpportunity{
			RunID:         model.RunID,
			RecordedAt:    model.RecordedAt,
			ItemTypeID:    model.ItemTypeID,
			ItemName:      model.ItemName,
			BuyHubSystem:  model.BuyHubSystem,
			BuyHubName:    model.BuyHubName,
			SellHubSystem: model.SellHubSystem,
			SellHubName:   model.SellHubName,
			Quantity:      model.Quantity,
			AskPrice:      model.AskPrice,
			BidPrice:      model.BidPrice,
			TotalCost:     model.TotalCost,
			Profit:        model.Profit,
			Jumps:         model.Jumps,
			ProfitPerJump: model.ProfitPerJump,
		})
	}
	return entries, nil
}
