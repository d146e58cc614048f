package standings

import (
	"cmp"
	"slices"

	"github.com/samber/lo"

	"github.com/mpapenbr/rally-championship/pkg/model"
)

// ComputeTeams builds the team standings. A team scores the sum of the
// points of its members, results without a team are ignored.
// Ordering and ranking follow the rules of Compute with the team name as
// final tie-break.
//
//nolint:whitespace // can't make both editor and linter happy
func ComputeTeams(
	results []model.ResultEntry,
	events []model.Event,
	opts ...Option,
) ([]model.TeamStandingsRow, error) {
	items, err := collect(results, events, newOptions(opts...))
	if err != nil {
		return nil, err
	}
	items = lo.Filter(items, func(s scored, _ int) bool { return s.entry.Team != "" })
	byTeam := lo.GroupBy(items, func(s scored) string { return s.entry.Team })
	rows := lo.MapToSlice(byTeam, func(team string, items []scored) model.TeamStandingsRow {
		row := model.TeamStandingsRow{Team: team}
		for _, s := range items {
			row.Points += s.points
			if s.entry.Position == 1 {
				row.Wins++
			}
			if s.entry.Position <= 3 {
				row.Podiums++
			}
		}
		row.Entrants = lo.Uniq(lo.Map(items,
			func(s scored, _ int) string { return s.entry.EntrantID }))
		slices.Sort(row.Entrants)
		return row
	})

	slices.SortFunc(rows, func(a, b model.TeamStandingsRow) int {
		if c := compareRecord(a.Points, a.Wins, a.Podiums, b.Points, b.Wins, b.Podiums); c != 0 {
			return c
		}
		return cmp.Compare(a.Team, b.Team)
	})
	assignRanks(rows,
		func(a, b *model.TeamStandingsRow) bool {
			return a.Points == b.Points && a.Wins == b.Wins && a.Podiums == b.Podiums
		},
		func(r *model.TeamStandingsRow, rank int) { r.Rank = rank })
	return rows, nil
}
