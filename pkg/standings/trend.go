package standings

import (
	"github.com/samber/lo"

	"github.com/mpapenbr/rally-championship/pkg/model"
)

// Trend diffs two standings snapshots, usually "after event N-1" and
// "after event N". The result follows the order of current.
// Entrants missing in previous are reported as new.
func Trend(previous, current []model.StandingsRow) []model.Movement {
	prevRanks := lo.SliceToMap(previous, func(r model.StandingsRow) (string, int) {
		return r.EntrantID, r.Rank
	})
	return lo.Map(current, func(r model.StandingsRow, _ int) model.Movement {
		m := model.Movement{EntrantID: r.EntrantID, Rank: r.Rank}
		prevRank, ok := prevRanks[r.EntrantID]
		if !ok {
			m.Direction = model.DirectionNew
			return m
		}
		m.PreviousRank = prevRank
		m.Change = prevRank - r.Rank
		switch {
		case m.Change > 0:
			m.Direction = model.DirectionUp
		case m.Change < 0:
			m.Direction = model.DirectionDown
		default:
			m.Direction = model.DirectionStable
		}
		return m
	})
}
