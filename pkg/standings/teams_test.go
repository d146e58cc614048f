package standings

import (
	"testing"

	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"

	"github.com/mpapenbr/rally-championship/pkg/model"
	"github.com/mpapenbr/rally-championship/testsupport/basedata"
)

func TestComputeTeams(t *testing.T) {
	got, err := ComputeTeams(basedata.SampleResults(), basedata.SampleEvents())
	assert.NilError(t, err)
	assert.DeepEqual(t, []model.TeamStandingsRow{
		{
			Rank: 1, Team: "Hyundai Motorsport", Points: 131, Wins: 1, Podiums: 4,
			Entrants: []string{"alex-chen", "tommi-virtanen"},
		},
		{
			Rank: 2, Team: "Toyota Gazoo Racing", Points: 78, Wins: 1, Podiums: 2,
			Entrants: []string{"maria-santos"},
		},
		{
			Rank: 3, Team: "M-Sport Ford", Points: 65, Wins: 0, Podiums: 0,
			Entrants: []string{"james-wilson", "sophie-laurent"},
		},
	}, got)
}

func TestComputeTeams_ignoresEntrantsWithoutTeam(t *testing.T) {
	events := []model.Event{completedEvent("e1", model.TierRegular)}
	results := []model.ResultEntry{
		result("solo", "e1", 1),
		{EntrantID: "b", EventID: "e1", Class: model.ClassTop, Position: 2, Team: "Beta"},
		{EntrantID: "a", EventID: "e1", Class: model.ClassTop, Position: 3, Team: "Alpha"},
		{EntrantID: "c", EventID: "e1", Class: model.ClassEntry, Position: 1, Team: "Alpha"},
	}
	got, err := ComputeTeams(results, events)
	assert.NilError(t, err)
	assert.Assert(t, is.Len(got, 2))
	// Alpha: 15+15, Beta: 18
	assert.Equal(t, got[0].Team, "Alpha")
	assert.Equal(t, got[0].Points, 30)
	assert.Equal(t, got[0].Wins, 1)
	assert.Equal(t, got[1].Team, "Beta")
	assert.Equal(t, got[1].Rank, 2)
}

func TestComputeTeams_duplicate(t *testing.T) {
	results := append(basedata.SampleResults(), basedata.SampleResults()[0])
	_, err := ComputeTeams(results, basedata.SampleEvents())
	assert.ErrorIs(t, err, model.ErrDuplicateResult)
}
