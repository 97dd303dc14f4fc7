package trading

import (
	"fmt"
	"hash/fnv"
	"sort"

	"github.com/go-playground/validator/v10"

	"github.com/andrescamacho/evetrade/internal/domain/universe"
)

// TradeConfig holds the constraints for one engine run. Values are externally
// supplied (CLI flags, HTTP query params or config defaults) and validated
// before any enumeration happens.
type TradeConfig struct {
	// WalletBudget is the maximum ISK to spend on the buy side
	WalletBudget float64 `validate:"gt=0"`

	// CargoCapacity is the available cargo volume in m³
	CargoCapacity float64 `validate:"gt=0"`

	// MinProfit is the minimum total profit in ISK for an opportunity to be kept
	MinProfit float64 `validate:"gte=0"`

	// SecurityLimit excludes hubs whose system security is below it
	SecurityLimit float64 `validate:"gte=0,lte=1"`

	// HubSystemIDs selects the hubs to trade between
	HubSystemIDs []int64 `validate:"min=1"`
}

var configValidator = validator.New()

// Validate checks the configuration ranges and that every selected hub is
// known. Returns InvalidConfigError on the first violation.
func (c TradeConfig) Validate(knownHubs map[int64]*universe.Hub) error {
	if err := configValidator.Struct(c); err != nil {
		if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
			e := errs[0]
			return NewInvalidConfigError("field %s failed %s (value: %v)", e.Field(), e.Tag(), e.Value())
		}
		return NewInvalidConfigError("%v", err)
	}

	for _, systemID := range c.HubSystemIDs {
		if _, ok := knownHubs[systemID]; !ok {
			return NewInvalidConfigError("unknown hub system %d", systemID)
		}
	}
	return nil
}

// Hash returns a stable digest of the configuration, used together with the
// topology version and snapshot timestamp to key run results
func (c TradeConfig) Hash() string {
	sorted := append([]int64(nil), c.HubSystemIDs...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	h := fnv.New64a()
	fmt.Fprintf(h, "w=%g;c=%g;p=%g;s=%g;hubs=%v", c.WalletBudget, c.CargoCapacity, c.MinProfit, c.SecurityLimit, sorted)
	return fmt.Sprintf("%016x", h.Sum64())
}
