package model

// StandingsRow is a read model. It is always rebuilt from the full result
// set, never edited.
type StandingsRow struct {
	Rank           int    `json:"rank"           yaml:"rank"`
	EntrantID      string `json:"entrantId"      yaml:"entrant"`
	Points         int    `json:"points"         yaml:"points"`
	Wins           int    `json:"wins"           yaml:"wins"`
	Podiums        int    `json:"podiums"        yaml:"podiums"`
	Events         int    `json:"events"         yaml:"events"`
	StageWins      int    `json:"stageWins"      yaml:"stageWins"`
	PowerStageWins int    `json:"powerStageWins" yaml:"powerStageWins"`
	BestFinish     int    `json:"bestFinish"     yaml:"bestFinish"`
}

type TeamStandingsRow struct {
	Rank     int      `json:"rank"     yaml:"rank"`
	Team     string   `json:"team"     yaml:"team"`
	Points   int      `json:"points"   yaml:"points"`
	Wins     int      `json:"wins"     yaml:"wins"`
	Podiums  int      `json:"podiums"  yaml:"podiums"`
	Entrants []string `json:"entrants" yaml:"entrants"`
}

type Direction string

const (
	DirectionUp     Direction = "up"
	DirectionDown   Direction = "down"
	DirectionStable Direction = "stable"
	DirectionNew    Direction = "new"
)

// Movement describes the rank change of an entrant between two standings
// snapshots. Change is positive when the entrant moved up.
type Movement struct {
	EntrantID    string    `json:"entrantId"    yaml:"entrant"`
	Rank         int       `json:"rank"         yaml:"rank"`
	PreviousRank int       `json:"previousRank" yaml:"previousRank"`
	Change       int       `json:"change"       yaml:"change"`
	Direction    Direction `json:"direction"    yaml:"direction"`
}
