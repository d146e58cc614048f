package model

import "time"

// Event is one scheduled competition of the season calendar.
type Event struct {
	ID         string      `json:"id"                yaml:"id"`
	Name       string      `json:"name"              yaml:"name"`
	Tier       EventTier   `json:"tier"              yaml:"tier"`
	Terrain    string      `json:"terrain,omitempty" yaml:"terrain,omitempty"`
	Status     EventStatus `json:"status"            yaml:"status"`
	PowerStage bool        `json:"powerStage"        yaml:"powerStage"`
	Date       time.Time   `json:"date,omitzero"     yaml:"date,omitempty"`
}

func (e *Event) IsCompleted() bool {
	return e.Status == StatusCompleted
}

func (e *Event) Validate() error {
	switch {
	case e.ID == "":
		return NewInvalidInput("event.id", e.ID, "must not be empty")
	case !e.Tier.Valid():
		return NewInvalidInput("event.tier", int(e.Tier), "unknown event tier")
	case !e.Status.Valid():
		return NewInvalidInput("event.status", int(e.Status), "unknown event status")
	}
	return nil
}

// ResultEntry is the outcome of one entrant at one event.
type ResultEntry struct {
	EntrantID string           `json:"entrantId"      yaml:"entrant"`
	EventID   string           `json:"eventId"        yaml:"event"`
	Class     CompetitionClass `json:"class"          yaml:"class"`
	Position  int              `json:"position"       yaml:"position"`
	StageWins int              `json:"stageWins"      yaml:"stageWins"`
	// 0: did not score, 1-5 eligible for bonus points
	PowerStagePosition int    `json:"powerStagePosition" yaml:"powerStage"`
	Team               string `json:"team,omitempty"     yaml:"team,omitempty"`
}

// ResultKey identifies a result. There is at most one result per key.
type ResultKey struct {
	EntrantID string
	EventID   string
}

func (r *ResultEntry) Key() ResultKey {
	return ResultKey{EntrantID: r.EntrantID, EventID: r.EventID}
}

// Validate checks the structural invariants of a result. Scoring relies on
// them and does not check again.
func (r *ResultEntry) Validate() error {
	switch {
	case r.EntrantID == "":
		return NewInvalidInput("result.entrant", r.EntrantID, "must not be empty")
	case r.EventID == "":
		return NewInvalidInput("result.event", r.EventID, "must not be empty")
	case !r.Class.Valid():
		return NewInvalidInput("result.class", int(r.Class), "unknown competition class")
	case r.Position < 1:
		return NewInvalidInput("result.position", r.Position, "must be at least 1")
	case r.StageWins < 0:
		return NewInvalidInput("result.stageWins", r.StageWins, "must not be negative")
	case r.PowerStagePosition < 0:
		return NewInvalidInput("result.powerStage", r.PowerStagePosition,
			"must not be negative")
	}
	return nil
}

type PointsAward struct {
	EntrantID string `json:"entrantId"`
	EventID   string `json:"eventId"`
	Points    int    `json:"points"`
}
