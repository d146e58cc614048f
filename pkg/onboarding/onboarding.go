package onboarding

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mpapenbr/rally-championship/pkg/model"
)

var ErrGuard = errors.New("step requirements not met")

type Step int

const (
	StepWelcome Step = iota
	StepPersonal
	StepExperience
	StepRules
	StepPreferences
	StepComplete
)

type Action int

const (
	Next Action = iota
	Previous
)

//nolint:gochecknoglobals // fixed wizard data
var stepInfo = []struct {
	name     string
	title    string
	progress int
}{
	{"welcome", "Welcome", 0},
	{"personal", "Personal Info", 20},
	{"experience", "Racing Experience", 40},
	{"rules", "Rules & Guidelines", 60},
	{"preferences", "Preferences", 80},
	{"complete", "Complete", 100},
}

func (s Step) Valid() bool {
	return s >= StepWelcome && s <= StepComplete
}

func (s Step) String() string {
	if !s.Valid() {
		return fmt.Sprintf("Step(%d)", int(s))
	}
	return stepInfo[s].name
}

// Title returns the display title of s.
func Title(s Step) string {
	if !s.Valid() {
		return ""
	}
	return stepInfo[s].title
}

// Progress returns the completion percentage when s is shown.
func Progress(s Step) int {
	if !s.Valid() {
		return 0
	}
	return stepInfo[s].progress
}

type Experience string

const (
	ExperienceRookie  Experience = "rookie"
	ExperienceAmateur Experience = "amateur"
	ExperiencePro     Experience = "pro"
	ExperienceLegend  Experience = "legend"
)

func (e Experience) Valid() bool {
	switch e {
	case ExperienceRookie, ExperienceAmateur, ExperiencePro, ExperienceLegend:
		return true
	}
	return false
}

func ParseExperience(s string) (Experience, error) {
	e := Experience(strings.ToLower(strings.TrimSpace(s)))
	if !e.Valid() {
		return "", model.NewInvalidInput("experience", s,
			"expected one of rookie, amateur, pro, legend")
	}
	return e, nil
}

// Form collects the data entered during onboarding.
type Form struct {
	Name           string                 `json:"name"`
	Email          string                 `json:"email"`
	Handle         string                 `json:"handle"`
	Experience     Experience             `json:"experience"`
	PreferredClass model.CompetitionClass `json:"preferredClass"`
	Platform       string                 `json:"platform,omitempty"`
	Timezone       string                 `json:"timezone,omitempty"`
}

// Transition computes the step following s. Previous on the first step and
// Next on the last step keep the current step. Moving forward out of a step
// with requirements fails with ErrGuard if form does not satisfy them.
func Transition(s Step, a Action, form *Form) (Step, error) {
	if !s.Valid() {
		return s, fmt.Errorf("invalid step %d", int(s))
	}
	switch a {
	case Previous:
		if s == StepWelcome {
			return s, nil
		}
		return s - 1, nil
	case Next:
		if s == StepComplete {
			return s, nil
		}
		if missing := missingFields(s, form); len(missing) > 0 {
			return s, fmt.Errorf("%w: %s requires %s",
				ErrGuard, s, strings.Join(missing, ", "))
		}
		return s + 1, nil
	default:
		return s, fmt.Errorf("invalid action %d", int(a))
	}
}

func missingFields(s Step, form *Form) []string {
	if form == nil {
		form = &Form{}
	}
	var missing []string
	switch s {
	case StepPersonal:
		if strings.TrimSpace(form.Name) == "" {
			missing = append(missing, "name")
		}
		if strings.TrimSpace(form.Email) == "" {
			missing = append(missing, "email")
		}
		if strings.TrimSpace(form.Handle) == "" {
			missing = append(missing, "handle")
		}
	case StepExperience:
		if !form.Experience.Valid() {
			missing = append(missing, "experience")
		}
	case StepPreferences:
		if !form.PreferredClass.Valid() {
			missing = append(missing, "preferred class")
		}
	default:
	}
	return missing
}
