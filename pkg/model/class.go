package model

import (
	"fmt"
	"strings"
)

type CompetitionClass int

// the zero value is not a valid class
const (
	ClassTop CompetitionClass = iota + 1
	ClassMid
	ClassEntry
)

// Classes lists all competition classes in championship order.
var Classes = []CompetitionClass{ClassTop, ClassMid, ClassEntry}

var classNames = map[CompetitionClass]string{
	ClassTop:   "top",
	ClassMid:   "mid",
	ClassEntry: "entry",
}

// the car class names used on the public site map onto the classes
var classAliases = map[string]CompetitionClass{
	"wrc":      ClassTop,
	"r5":       ClassMid,
	"historic": ClassEntry,
}

func (c CompetitionClass) Valid() bool {
	_, ok := classNames[c]
	return ok
}

func (c CompetitionClass) String() string {
	if name, ok := classNames[c]; ok {
		return name
	}
	return fmt.Sprintf("CompetitionClass(%d)", int(c))
}

func (c CompetitionClass) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, NewInvalidInput("class", int(c), "unknown competition class")
	}
	return []byte(c.String()), nil
}

func (c *CompetitionClass) UnmarshalText(text []byte) error {
	v, err := ParseCompetitionClass(string(text))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

func ParseCompetitionClass(s string) (CompetitionClass, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	for c, name := range classNames {
		if name == key {
			return c, nil
		}
	}
	if c, ok := classAliases[key]; ok {
		return c, nil
	}
	return 0, NewInvalidInput("class", s, "unknown competition class")
}
