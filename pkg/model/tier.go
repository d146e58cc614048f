package model

import (
	"fmt"
	"strings"
)

type EventTier int

const (
	TierRegular EventTier = iota + 1
	TierChampionship
)

var tierNames = map[EventTier]string{
	TierRegular:      "regular",
	TierChampionship: "championship",
}

func (t EventTier) Valid() bool {
	_, ok := tierNames[t]
	return ok
}

func (t EventTier) String() string {
	if name, ok := tierNames[t]; ok {
		return name
	}
	return fmt.Sprintf("EventTier(%d)", int(t))
}

func (t EventTier) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, NewInvalidInput("tier", int(t), "unknown event tier")
	}
	return []byte(t.String()), nil
}

func (t *EventTier) UnmarshalText(text []byte) error {
	v, err := ParseEventTier(string(text))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

func ParseEventTier(s string) (EventTier, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	for t, name := range tierNames {
		if name == key {
			return t, nil
		}
	}
	return 0, NewInvalidInput("tier", s, "unknown event tier")
}

type EventStatus int

const (
	StatusUpcoming EventStatus = iota + 1
	StatusActive
	StatusCompleted
)

var statusNames = map[EventStatus]string{
	StatusUpcoming:  "upcoming",
	StatusActive:    "active",
	StatusCompleted: "completed",
}

func (s EventStatus) Valid() bool {
	_, ok := statusNames[s]
	return ok
}

func (s EventStatus) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("EventStatus(%d)", int(s))
}

func (s EventStatus) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, NewInvalidInput("status", int(s), "unknown event status")
	}
	return []byte(s.String()), nil
}

func (s *EventStatus) UnmarshalText(text []byte) error {
	v, err := ParseEventStatus(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

func ParseEventStatus(s string) (EventStatus, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	for st, name := range statusNames {
		if name == key {
			return st, nil
		}
	}
	return 0, NewInvalidInput("status", s, "unknown event status")
}
