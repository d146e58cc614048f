package scoring

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/mpapenbr/rally-championship/pkg/model"
)

// Rules holds the points tables used for scoring. A Rules value is
// immutable after creation and safe for concurrent use.
type Rules struct {
	tables map[model.CompetitionClass]PointsTable
}

//nolint:gochecknoglobals // immutable
var defaultRules = &Rules{tables: defaultTables}

// DefaultRules returns the championship's standard points tables.
func DefaultRules() *Rules {
	return defaultRules
}

// NewRules creates rules from the given tables. Classes without an entry
// keep their default table. Each table must have exactly TableSize
// non-negative, non-increasing entries.
func NewRules(tables map[model.CompetitionClass][]int) (*Rules, error) {
	ret := &Rules{tables: make(map[model.CompetitionClass]PointsTable, len(defaultTables))}
	for c, t := range defaultTables {
		ret.tables[c] = t
	}
	for c, values := range tables {
		if !c.Valid() {
			return nil, model.NewInvalidInput("pointsTables", int(c), "unknown competition class")
		}
		if len(values) != TableSize {
			return nil, model.NewInvalidInput(
				fmt.Sprintf("pointsTables.%s", c), len(values),
				fmt.Sprintf("table must have exactly %d entries", TableSize))
		}
		var t PointsTable
		copy(t[:], values)
		if err := t.validate(c); err != nil {
			return nil, err
		}
		ret.tables[c] = t
	}
	return ret, nil
}

// Table returns the points table of class. An unknown class panics.
func (r *Rules) Table(class model.CompetitionClass) PointsTable {
	t, ok := r.tables[class]
	if !ok {
		panic(fmt.Sprintf("scoring: unknown competition class %s", class))
	}
	return t
}

func (r *Rules) BasePoints(class model.CompetitionClass, position int) int {
	return r.Table(class).Points(position)
}

// Score computes the points of one entrant at one event:
// round(basePoints * multiplier) + bonus. Only the base points are
// multiplied, the bonus is added after rounding.
//
//nolint:whitespace // can't make both editor and linter happy
func (r *Rules) Score(
	class model.CompetitionClass,
	position int,
	tier model.EventTier,
	stageWins int,
	powerStagePosition int,
) (int, error) {
	bonus, err := Bonus(stageWins, powerStagePosition)
	if err != nil {
		return 0, err
	}
	weighted := decimal.NewFromInt(int64(r.BasePoints(class, position))).
		Mul(Multiplier(tier)).
		Round(0)
	return int(weighted.IntPart()) + bonus, nil
}

// Award computes the points award for entry at event. The power stage bonus
// only applies if the event has a power stage.
func (r *Rules) Award(entry *model.ResultEntry, event *model.Event) (model.PointsAward, error) {
	psPos := entry.PowerStagePosition
	if !event.PowerStage {
		psPos = 0
	}
	points, err := r.Score(entry.Class, entry.Position, event.Tier, entry.StageWins, psPos)
	if err != nil {
		return model.PointsAward{}, fmt.Errorf("entrant %s at %s: %w",
			entry.EntrantID, entry.EventID, err)
	}
	return model.PointsAward{
		EntrantID: entry.EntrantID,
		EventID:   entry.EventID,
		Points:    points,
	}, nil
}

// Score computes the points using the default rules.
//
//nolint:whitespace // can't make both editor and linter happy
func Score(
	class model.CompetitionClass,
	position int,
	tier model.EventTier,
	stageWins int,
	powerStagePosition int,
) (int, error) {
	return defaultRules.Score(class, position, tier, stageWins, powerStagePosition)
}
