package onboarding

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/mpapenbr/rally-championship/log"
)

var ErrNotComplete = errors.New("onboarding not complete")

// Registration is the result of a completed onboarding.
type Registration struct {
	MemberID     uuid.UUID `json:"memberId"     yaml:"memberId"`
	Form         Form      `json:"form"         yaml:"form"`
	RegisteredAt time.Time `json:"registeredAt" yaml:"registeredAt"`
}

type WizardOption func(w *Wizard)

func WithClock(now func() time.Time) WizardOption {
	return func(w *Wizard) {
		w.now = now
	}
}

// Wizard keeps the current step and the form of a single onboarding.
type Wizard struct {
	Form Form
	step Step
	reg  *Registration
	now  func() time.Time
	l    *log.Logger
}

func NewWizard(opts ...WizardOption) *Wizard {
	ret := &Wizard{
		step: StepWelcome,
		now:  time.Now,
		l:    log.Default().Named("onboarding"),
	}
	for _, opt := range opts {
		opt(ret)
	}
	return ret
}

func (w *Wizard) Step() Step {
	return w.step
}

func (w *Wizard) Progress() int {
	return Progress(w.step)
}

func (w *Wizard) Next() error {
	return w.apply(Next)
}

func (w *Wizard) Previous() error {
	return w.apply(Previous)
}

func (w *Wizard) apply(a Action) error {
	next, err := Transition(w.step, a, &w.Form)
	if err != nil {
		w.l.Debug("transition rejected", log.String("step", w.step.String()), log.ErrorField(err))
		return err
	}
	if next != w.step {
		w.l.Debug("transition",
			log.String("from", w.step.String()),
			log.String("to", next.String()))
	}
	w.step = next
	if w.step == StepComplete && w.reg == nil {
		w.reg = &Registration{
			MemberID:     uuid.New(),
			Form:         w.Form,
			RegisteredAt: w.now().UTC(),
		}
		w.l.Info("registration complete", log.String("memberId", w.reg.MemberID.String()))
	}
	return nil
}

// Registration returns the registration once the wizard reached the
// complete step. The member id does not change on subsequent calls.
func (w *Wizard) Registration() (*Registration, error) {
	if w.reg == nil {
		return nil, ErrNotComplete
	}
	ret := *w.reg
	return &ret, nil
}

// Run moves the wizard forward until it is complete or a guard fails.
func (w *Wizard) Run() (*Registration, error) {
	for w.step != StepComplete {
		if err := w.Next(); err != nil {
			return nil, err
		}
	}
	return w.Registration()
}
