package basedata

import (
	"path/filepath"
	"runtime"
	"time"

	"github.com/mpapenbr/rally-championship/pkg/model"
)

// Expected standings of the sample season (all values computed by hand)
//
//	after monte-carlo: alex-chen 46, maria-santos 32, tommi-virtanen 28,
//	                   james-wilson 18, sophie-laurent 14
//	after sweden:      maria-santos 78, alex-chen 70, tommi-virtanen 61,
//	                   james-wilson 33, sophie-laurent 32
//	teams:             Hyundai Motorsport 131, Toyota Gazoo Racing 78,
//	                   M-Sport Ford 65

func TestTime() time.Time {
	t, _ := time.Parse(time.RFC3339, "2024-04-28T11:10:12Z")
	return t
}

func date(s string) time.Time {
	t, _ := time.Parse(time.DateOnly, s)
	return t
}

// SampleEvents returns the 2024 calendar. Two events are completed, one is
// active.
func SampleEvents() []model.Event {
	return []model.Event{
		{
			ID: "monte-carlo", Name: "Monte Carlo Rally", Tier: model.TierChampionship,
			Terrain: "Snow/Ice", Status: model.StatusCompleted, PowerStage: true,
			Date: date("2024-01-25"),
		},
		{
			ID: "sweden", Name: "Rally Sweden", Tier: model.TierChampionship,
			Terrain: "Snow/Ice", Status: model.StatusCompleted, PowerStage: true,
			Date: date("2024-02-15"),
		},
		{
			ID: "portugal", Name: "Rally Portugal", Tier: model.TierRegular,
			Terrain: "Gravel", Status: model.StatusActive, PowerStage: true,
			Date: date("2024-05-09"),
		},
		{
			ID: "italy", Name: "Rally Italy", Tier: model.TierRegular,
			Terrain: "Gravel", Status: model.StatusUpcoming, PowerStage: true,
			Date: date("2024-05-30"),
		},
		{
			ID: "finland", Name: "Rally Finland", Tier: model.TierChampionship,
			Terrain: "Gravel", Status: model.StatusUpcoming, PowerStage: true,
			Date: date("2024-08-01"),
		},
		{
			ID: "germany", Name: "Rally Germany", Tier: model.TierRegular,
			Terrain: "Tarmac", Status: model.StatusUpcoming, PowerStage: true,
			Date: date("2024-08-22"),
		},
	}
}

//nolint:lll // readability
func SampleResults() []model.ResultEntry {
	return []model.ResultEntry{
		{EntrantID: "alex-chen", EventID: "monte-carlo", Class: model.ClassTop, Position: 1, StageWins: 3, PowerStagePosition: 1, Team: "Hyundai Motorsport"},
		{EntrantID: "maria-santos", EventID: "monte-carlo", Class: model.ClassTop, Position: 2, StageWins: 2, PowerStagePosition: 3, Team: "Toyota Gazoo Racing"},
		{EntrantID: "tommi-virtanen", EventID: "monte-carlo", Class: model.ClassTop, Position: 3, StageWins: 1, PowerStagePosition: 2, Team: "Hyundai Motorsport"},
		{EntrantID: "james-wilson", EventID: "monte-carlo", Class: model.ClassTop, Position: 4, Team: "M-Sport Ford"},
		{EntrantID: "sophie-laurent", EventID: "monte-carlo", Class: model.ClassMid, Position: 5, PowerStagePosition: 4, Team: "M-Sport Ford"},

		{EntrantID: "maria-santos", EventID: "sweden", Class: model.ClassTop, Position: 1, StageWins: 4, PowerStagePosition: 2, Team: "Toyota Gazoo Racing"},
		{EntrantID: "tommi-virtanen", EventID: "sweden", Class: model.ClassTop, Position: 2, StageWins: 1, PowerStagePosition: 1, Team: "Hyundai Motorsport"},
		{EntrantID: "alex-chen", EventID: "sweden", Class: model.ClassTop, Position: 3, StageWins: 1, Team: "Hyundai Motorsport"},
		{EntrantID: "sophie-laurent", EventID: "sweden", Class: model.ClassMid, Position: 4, PowerStagePosition: 3, Team: "M-Sport Ford"},
		{EntrantID: "james-wilson", EventID: "sweden", Class: model.ClassTop, Position: 5, Team: "M-Sport Ford"},
	}
}

// SampleSeasonFile returns the path of the yaml file containing the sample
// season.
func SampleSeasonFile() string {
	_, file, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(file), "testdata", "season-2024.yml")
}
