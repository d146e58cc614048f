package scoring

import (
	"fmt"

	"github.com/mpapenbr/rally-championship/pkg/model"
)

// TableSize is the number of scoring positions of a points table.
const TableSize = 10

// PointsTable maps finishing position 1..TableSize to base points.
type PointsTable [TableSize]int

//nolint:gochecknoglobals // fixed championship data
var defaultTables = map[model.CompetitionClass]PointsTable{
	model.ClassTop:   {25, 18, 15, 12, 10, 8, 6, 4, 2, 1},
	model.ClassMid:   {20, 15, 12, 10, 8, 6, 4, 3, 2, 1},
	model.ClassEntry: {15, 12, 10, 8, 6, 5, 4, 3, 2, 1},
}

// Points returns the points for position. Positions outside 1..TableSize
// score zero.
func (t PointsTable) Points(position int) int {
	if position < 1 || position > TableSize {
		return 0
	}
	return t[position-1]
}

func (t PointsTable) validate(class model.CompetitionClass) error {
	for i, p := range t {
		if p < 0 {
			return model.NewInvalidInput(
				fmt.Sprintf("pointsTables.%s[%d]", class, i), p, "must not be negative")
		}
		if i > 0 && p > t[i-1] {
			return model.NewInvalidInput(
				fmt.Sprintf("pointsTables.%s[%d]", class, i), p,
				"table must be non-increasing")
		}
	}
	return nil
}

// BasePoints resolves the base points of the default rules.
func BasePoints(class model.CompetitionClass, position int) int {
	return defaultRules.BasePoints(class, position)
}
