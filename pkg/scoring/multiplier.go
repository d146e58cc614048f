package scoring

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/mpapenbr/rally-championship/pkg/model"
)

//nolint:gochecknoglobals // fixed championship data
var multipliers = map[model.EventTier]decimal.Decimal{
	model.TierRegular:      decimal.NewFromInt(1),
	model.TierChampionship: decimal.New(15, -1),
}

// Multiplier returns the factor applied to the base points of an event of
// the given tier. The tier set is closed, an unknown tier panics.
func Multiplier(tier model.EventTier) decimal.Decimal {
	m, ok := multipliers[tier]
	if !ok {
		panic(fmt.Sprintf("scoring: unknown event tier %s", tier))
	}
	return m
}
