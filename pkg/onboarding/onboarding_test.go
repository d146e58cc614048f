//nolint:funlen // ok for tests
package onboarding

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mpapenbr/rally-championship/pkg/model"
	"github.com/mpapenbr/rally-championship/testsupport/basedata"
)

func completeForm() *Form {
	return &Form{
		Name:           "Alex Chen",
		Email:          "alex@example.com",
		Handle:         "achen",
		Experience:     ExperiencePro,
		PreferredClass: model.ClassTop,
	}
}

func TestTransition(t *testing.T) {
	tests := []struct {
		name    string
		step    Step
		action  Action
		form    *Form
		want    Step
		wantErr error
	}{
		{"welcome next", StepWelcome, Next, nil, StepPersonal, nil},
		{"welcome previous stays", StepWelcome, Previous, nil, StepWelcome, nil},
		{"complete next stays", StepComplete, Next, nil, StepComplete, nil},
		{"complete previous", StepComplete, Previous, nil, StepPreferences, nil},
		{"personal without data", StepPersonal, Next, &Form{}, StepPersonal, ErrGuard},
		{"personal missing handle", StepPersonal, Next, &Form{Name: "a", Email: "b"}, StepPersonal, ErrGuard},
		{"personal complete", StepPersonal, Next, completeForm(), StepExperience, nil},
		{"personal previous without data", StepPersonal, Previous, &Form{}, StepWelcome, nil},
		{"experience missing", StepExperience, Next, &Form{}, StepExperience, ErrGuard},
		{"experience unknown", StepExperience, Next, &Form{Experience: "guru"}, StepExperience, ErrGuard},
		{"experience set", StepExperience, Next, completeForm(), StepRules, nil},
		{"rules no guard", StepRules, Next, &Form{}, StepPreferences, nil},
		{"preferences missing class", StepPreferences, Next, &Form{}, StepPreferences, ErrGuard},
		{"preferences complete", StepPreferences, Next, completeForm(), StepComplete, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Transition(tt.step, tt.action, tt.form)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTransition_guardNamesMissingFields(t *testing.T) {
	_, err := Transition(StepPersonal, Next, &Form{Name: "Alex"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "email, handle")
	assert.NotContains(t, err.Error(), "name")
}

func TestTransition_invalid(t *testing.T) {
	_, err := Transition(Step(42), Next, nil)
	assert.Error(t, err)
	_, err = Transition(StepWelcome, Action(7), nil)
	assert.Error(t, err)
}

func TestProgressAndTitle(t *testing.T) {
	want := []struct {
		progress int
		title    string
	}{
		{0, "Welcome"},
		{20, "Personal Info"},
		{40, "Racing Experience"},
		{60, "Rules & Guidelines"},
		{80, "Preferences"},
		{100, "Complete"},
	}
	for s := StepWelcome; s <= StepComplete; s++ {
		assert.Equal(t, want[s].progress, Progress(s), s.String())
		assert.Equal(t, want[s].title, Title(s), s.String())
	}
	assert.Equal(t, 0, Progress(Step(-1)))
	assert.Equal(t, "", Title(Step(9)))
	assert.Equal(t, "Step(9)", Step(9).String())
}

func TestParseExperience(t *testing.T) {
	got, err := ParseExperience(" Legend ")
	require.NoError(t, err)
	assert.Equal(t, ExperienceLegend, got)

	_, err = ParseExperience("guru")
	assert.ErrorIs(t, err, model.ErrInvalidInput)
}

func TestWizard(t *testing.T) {
	w := NewWizard(WithClock(basedata.TestTime))
	_, err := w.Registration()
	assert.ErrorIs(t, err, ErrNotComplete)

	require.NoError(t, w.Next())
	assert.Equal(t, StepPersonal, w.Step())
	assert.ErrorIs(t, w.Next(), ErrGuard)
	assert.Equal(t, 20, w.Progress())

	w.Form = *completeForm()
	for w.Step() != StepComplete {
		require.NoError(t, w.Next())
	}
	reg, err := w.Registration()
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, reg.MemberID)
	assert.Equal(t, "achen", reg.Form.Handle)
	assert.Equal(t, basedata.TestTime(), reg.RegisteredAt)

	// going back and forth keeps the registration
	require.NoError(t, w.Previous())
	require.NoError(t, w.Next())
	again, err := w.Registration()
	require.NoError(t, err)
	assert.Equal(t, reg.MemberID, again.MemberID)
}

func TestWizard_Run(t *testing.T) {
	w := NewWizard()
	_, err := w.Run()
	assert.ErrorIs(t, err, ErrGuard)
	assert.Equal(t, StepPersonal, w.Step())

	w.Form = *completeForm()
	reg, err := w.Run()
	require.NoError(t, err)
	assert.Equal(t, StepComplete, w.Step())
	assert.Equal(t, model.ClassTop, reg.Form.PreferredClass)
	assert.WithinDuration(t, time.Now(), reg.RegisteredAt, time.Minute)
}
