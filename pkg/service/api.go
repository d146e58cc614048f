package service

import "github.com/mpapenbr/rally-championship/pkg/model"

// ScoreRequest is the input of the what-if points calculator.
type ScoreRequest struct {
	Class              model.CompetitionClass `json:"class"`
	Position           int                    `json:"position"`
	Tier               model.EventTier        `json:"tier"`
	StageWins          int                    `json:"stageWins"`
	PowerStagePosition int                    `json:"powerStagePosition"`
}

func (r *ScoreRequest) Validate() error {
	if !r.Class.Valid() {
		return model.NewInvalidInput("class", int(r.Class), "unknown competition class")
	}
	if !r.Tier.Valid() {
		return model.NewInvalidInput("tier", int(r.Tier), "unknown event tier")
	}
	return nil
}

// Standings is a computed standings snapshot.
type Standings struct {
	Version uint64                   `json:"version"`
	After   int                      `json:"after"` // number of completed events included
	Drivers []model.StandingsRow     `json:"drivers"`
	Teams   []model.TeamStandingsRow `json:"teams"`
}

type UpdateKind string

const (
	UpdateEventStarted   UpdateKind = "eventStarted"
	UpdateEventCompleted UpdateKind = "eventCompleted"
	UpdateReloaded       UpdateKind = "reloaded"
)

// Update notifies subscribers about a change of the season data.
type Update struct {
	Kind    UpdateKind `json:"kind"`
	EventID string     `json:"eventId,omitempty"`
	Version uint64     `json:"version"`
}
