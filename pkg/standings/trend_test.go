package standings

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mpapenbr/rally-championship/pkg/model"
	"github.com/mpapenbr/rally-championship/testsupport/basedata"
)

func TestTrend_sampleSeason(t *testing.T) {
	events := basedata.SampleEvents()
	// standings after the first event only
	before := make([]model.Event, len(events))
	copy(before, events)
	before[1].Status = model.StatusActive

	prev, err := Compute(basedata.SampleResults()[:5], before)
	require.NoError(t, err)
	curr, err := Compute(basedata.SampleResults(), events)
	require.NoError(t, err)

	assert.Equal(t, []model.Movement{
		{EntrantID: "maria-santos", Rank: 1, PreviousRank: 2, Change: 1, Direction: model.DirectionUp},
		{EntrantID: "alex-chen", Rank: 2, PreviousRank: 1, Change: -1, Direction: model.DirectionDown},
		{EntrantID: "tommi-virtanen", Rank: 3, PreviousRank: 3, Change: 0, Direction: model.DirectionStable},
		{EntrantID: "james-wilson", Rank: 4, PreviousRank: 4, Change: 0, Direction: model.DirectionStable},
		{EntrantID: "sophie-laurent", Rank: 5, PreviousRank: 5, Change: 0, Direction: model.DirectionStable},
	}, Trend(prev, curr))
}

func TestTrend_newEntrant(t *testing.T) {
	prev := []model.StandingsRow{{Rank: 1, EntrantID: "a"}}
	curr := []model.StandingsRow{{Rank: 1, EntrantID: "b"}, {Rank: 2, EntrantID: "a"}}
	assert.Equal(t, []model.Movement{
		{EntrantID: "b", Rank: 1, Direction: model.DirectionNew},
		{EntrantID: "a", Rank: 2, PreviousRank: 1, Change: -1, Direction: model.DirectionDown},
	}, Trend(prev, curr))
}

func TestTrend_empty(t *testing.T) {
	assert.Empty(t, Trend(nil, nil))
}
