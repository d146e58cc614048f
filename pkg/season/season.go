package season

import (
	"errors"
	"fmt"
	"slices"

	"github.com/samber/lo"

	"github.com/mpapenbr/rally-championship/pkg/model"
	"github.com/mpapenbr/rally-championship/pkg/scoring"
)

var (
	ErrEventNotFound     = errors.New("event not found")
	ErrInvalidTransition = errors.New("invalid event status transition")
)

// Season owns the calendar and the results. Events are ordered by calendar
// position.
type Season struct {
	Name string `yaml:"name"`
	Year int    `yaml:"year"`
	// optional override of the default points tables, key is the class name
	PointsTables map[string][]int    `yaml:"pointsTables,omitempty"`
	Events       []model.Event       `yaml:"events"`
	Results      []model.ResultEntry `yaml:"results"`
}

// Rules returns the scoring rules of this season.
func (s *Season) Rules() (*scoring.Rules, error) {
	if len(s.PointsTables) == 0 {
		return scoring.DefaultRules(), nil
	}
	tables := make(map[model.CompetitionClass][]int, len(s.PointsTables))
	for name, values := range s.PointsTables {
		c, err := model.ParseCompetitionClass(name)
		if err != nil {
			return nil, err
		}
		tables[c] = values
	}
	return scoring.NewRules(tables)
}

// Validate checks the calendar and the results.
// Completed events must precede all other events and at most one event may
// be active. Results may only exist for completed events.
func (s *Season) Validate() error {
	if dups := lo.FindDuplicatesBy(s.Events,
		func(e model.Event) string { return e.ID }); len(dups) > 0 {
		return model.NewInvalidInput("event.id", dups[0].ID, "duplicate event id")
	}
	lastCompleted := -1
	active := 0
	for i := range s.Events {
		e := &s.Events[i]
		if err := e.Validate(); err != nil {
			return err
		}
		switch e.Status {
		case model.StatusCompleted:
			if lastCompleted != i-1 {
				return fmt.Errorf("%w: event %s completed after unfinished events",
					ErrInvalidTransition, e.ID)
			}
			lastCompleted = i
		case model.StatusActive:
			active++
			if active > 1 {
				return fmt.Errorf("%w: more than one active event", ErrInvalidTransition)
			}
			if lastCompleted != i-1 {
				return fmt.Errorf("%w: event %s active after unfinished events",
					ErrInvalidTransition, e.ID)
			}
		case model.StatusUpcoming:
		}
	}

	if dups := lo.FindDuplicatesBy(s.Results,
		func(r model.ResultEntry) model.ResultKey { return r.Key() }); len(dups) > 0 {
		return &model.DuplicateResultError{EntrantID: dups[0].EntrantID, EventID: dups[0].EventID}
	}
	for i := range s.Results {
		r := &s.Results[i]
		if err := r.Validate(); err != nil {
			return err
		}
		e, err := s.event(r.EventID)
		if err != nil {
			return model.NewInvalidInput("result.event", r.EventID, "event not in calendar")
		}
		if !e.IsCompleted() {
			return model.NewInvalidInput("result.event", r.EventID, "event is not completed")
		}
	}
	_, err := s.Rules()
	return err
}

func (s *Season) event(id string) (*model.Event, error) {
	idx := s.eventIndex(id)
	if idx < 0 {
		return nil, fmt.Errorf("%w: %s", ErrEventNotFound, id)
	}
	return &s.Events[idx], nil
}

func (s *Season) eventIndex(id string) int {
	return slices.IndexFunc(s.Events, func(e model.Event) bool { return e.ID == id })
}

// Start moves the next event of the calendar from upcoming to active.
func (s *Season) Start(eventID string) error {
	idx := s.eventIndex(eventID)
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrEventNotFound, eventID)
	}
	e := &s.Events[idx]
	if e.Status != model.StatusUpcoming {
		return fmt.Errorf("%w: event %s is %s", ErrInvalidTransition, eventID, e.Status)
	}
	for i := range idx {
		if !s.Events[i].IsCompleted() {
			return fmt.Errorf("%w: event %s must be completed before %s",
				ErrInvalidTransition, s.Events[i].ID, eventID)
		}
	}
	e.Status = model.StatusActive
	return nil
}

// Complete moves the active event to completed and stores its results.
// Either all results are stored or none.
func (s *Season) Complete(eventID string, results []model.ResultEntry) error {
	e, err := s.event(eventID)
	if err != nil {
		return err
	}
	if e.Status != model.StatusActive {
		return fmt.Errorf("%w: event %s is %s", ErrInvalidTransition, eventID, e.Status)
	}
	seen := make(map[string]struct{}, len(results))
	for i := range results {
		r := &results[i]
		if err := r.Validate(); err != nil {
			return err
		}
		if r.EventID != eventID {
			return model.NewInvalidInput("result.event", r.EventID,
				fmt.Sprintf("expected results for %s", eventID))
		}
		if _, ok := seen[r.EntrantID]; ok {
			return &model.DuplicateResultError{EntrantID: r.EntrantID, EventID: eventID}
		}
		seen[r.EntrantID] = struct{}{}
	}
	s.Results = append(s.Results, results...)
	e.Status = model.StatusCompleted
	return nil
}

// CompletedEvents returns the number of completed events.
func (s *Season) CompletedEvents() int {
	return lo.CountBy(s.Events, func(e model.Event) bool { return e.IsCompleted() })
}

// Progress returns the share of completed events in percent.
func (s *Season) Progress() float64 {
	if len(s.Events) == 0 {
		return 0
	}
	return float64(s.CompletedEvents()) / float64(len(s.Events)) * 100
}

// After returns a copy of the season as it was after the first n completed
// events. Later completed events are reported as upcoming, their results
// stay in place but no longer count.
func (s *Season) After(n int) *Season {
	ret := s.Clone()
	count := 0
	for i := range ret.Events {
		if !ret.Events[i].IsCompleted() {
			continue
		}
		count++
		if count > n {
			ret.Events[i].Status = model.StatusUpcoming
		}
	}
	return ret
}

func (s *Season) Clone() *Season {
	ret := &Season{
		Name:    s.Name,
		Year:    s.Year,
		Events:  slices.Clone(s.Events),
		Results: slices.Clone(s.Results),
	}
	if s.PointsTables != nil {
		ret.PointsTables = make(map[string][]int, len(s.PointsTables))
		for k, v := range s.PointsTables {
			ret.PointsTables[k] = slices.Clone(v)
		}
	}
	return ret
}
