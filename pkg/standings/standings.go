package standings

import (
	"cmp"
	"slices"

	"github.com/samber/lo"

	"github.com/mpapenbr/rally-championship/pkg/model"
)

// scored is a result of a completed event together with its points.
type scored struct {
	entry  *model.ResultEntry
	event  *model.Event
	points int
}

// Compute builds the driver standings from the full result set.
//
// Only results of completed events count. Rows are ordered by points, wins
// and podiums (all descending), then by entrant id. Entrants equal on
// points, wins and podiums share a rank (competition ranking, "1224").
// The computation is deterministic and does not modify its inputs.
//
//nolint:whitespace // can't make both editor and linter happy
func Compute(
	results []model.ResultEntry,
	events []model.Event,
	opts ...Option,
) ([]model.StandingsRow, error) {
	items, err := collect(results, events, newOptions(opts...))
	if err != nil {
		return nil, err
	}
	byEntrant := lo.GroupBy(items, func(s scored) string { return s.entry.EntrantID })
	rows := lo.MapToSlice(byEntrant, func(entrant string, items []scored) model.StandingsRow {
		return buildRow(entrant, items)
	})

	slices.SortFunc(rows, func(a, b model.StandingsRow) int {
		if c := compareRecord(a.Points, a.Wins, a.Podiums, b.Points, b.Wins, b.Podiums); c != 0 {
			return c
		}
		return cmp.Compare(a.EntrantID, b.EntrantID)
	})
	assignRanks(rows,
		func(a, b *model.StandingsRow) bool {
			return a.Points == b.Points && a.Wins == b.Wins && a.Podiums == b.Podiums
		},
		func(r *model.StandingsRow, rank int) { r.Rank = rank })
	return rows, nil
}

// Awards returns the points award of every result of a completed event in
// the order of results.
//
//nolint:whitespace // can't make both editor and linter happy
func Awards(
	results []model.ResultEntry,
	events []model.Event,
	opts ...Option,
) ([]model.PointsAward, error) {
	items, err := collect(results, events, newOptions(opts...))
	if err != nil {
		return nil, err
	}
	return lo.Map(items, func(s scored, _ int) model.PointsAward {
		return model.PointsAward{
			EntrantID: s.entry.EntrantID,
			EventID:   s.entry.EventID,
			Points:    s.points,
		}
	}), nil
}

//nolint:whitespace // can't make both editor and linter happy
func collect(
	results []model.ResultEntry,
	events []model.Event,
	o *options,
) ([]scored, error) {
	if o.maxResults > 0 && len(results) > o.maxResults {
		return nil, model.NewInvalidInput("results", len(results), "too many results")
	}
	if dups := lo.FindDuplicatesBy(results,
		func(r model.ResultEntry) model.ResultKey { return r.Key() }); len(dups) > 0 {
		return nil, &model.DuplicateResultError{
			EntrantID: dups[0].EntrantID,
			EventID:   dups[0].EventID,
		}
	}
	if dups := lo.FindDuplicatesBy(events,
		func(e model.Event) string { return e.ID }); len(dups) > 0 {
		return nil, model.NewInvalidInput("event.id", dups[0].ID, "duplicate event id")
	}
	eventLookup := make(map[string]*model.Event, len(events))
	for i := range events {
		if err := events[i].Validate(); err != nil {
			return nil, err
		}
		eventLookup[events[i].ID] = &events[i]
	}

	ret := make([]scored, 0, len(results))
	for i := range results {
		entry := &results[i]
		if err := entry.Validate(); err != nil {
			return nil, err
		}
		event, ok := eventLookup[entry.EventID]
		if !ok {
			return nil, model.NewInvalidInput("result.event", entry.EventID,
				"event not in calendar")
		}
		if !event.IsCompleted() {
			continue
		}
		award, err := o.rules.Award(entry, event)
		if err != nil {
			return nil, err
		}
		ret = append(ret, scored{entry: entry, event: event, points: award.Points})
	}
	return ret, nil
}

func buildRow(entrant string, items []scored) model.StandingsRow {
	row := model.StandingsRow{EntrantID: entrant}
	for _, s := range items {
		row.Points += s.points
		row.Events++
		row.StageWins += s.entry.StageWins
		if s.entry.Position == 1 {
			row.Wins++
		}
		if s.entry.Position <= 3 {
			row.Podiums++
		}
		if s.event.PowerStage && s.entry.PowerStagePosition == 1 {
			row.PowerStageWins++
		}
		if row.BestFinish == 0 || s.entry.Position < row.BestFinish {
			row.BestFinish = s.entry.Position
		}
	}
	return row
}

// compareRecord orders by points, wins, podiums, higher values first.
func compareRecord(aPoints, aWins, aPodiums, bPoints, bWins, bPodiums int) int {
	if c := cmp.Compare(bPoints, aPoints); c != 0 {
		return c
	}
	if c := cmp.Compare(bWins, aWins); c != 0 {
		return c
	}
	return cmp.Compare(bPodiums, aPodiums)
}

// assignRanks sets 1-based competition ranks on sorted rows. Rows for which
// same reports true share the rank of their predecessor.
func assignRanks[T any](rows []T, same func(a, b *T) bool, set func(r *T, rank int)) {
	rank := 0
	for i := range rows {
		if i == 0 || !same(&rows[i-1], &rows[i]) {
			rank = i + 1
		}
		set(&rows[i], rank)
	}
}
