// Package planner implements the WorldCup Planner: a short wizard that
// collects a match, an optional host city, a budget tier and an accommodation
// type, and maps the answers onto a city content bundle.
package planner

import (
	"errors"
	"fmt"

	"github.com/atlasborder/site/internal/atlas"
)

var (
	ErrUnknownOption = errors.New("unknown option")
	ErrWrongStep     = errors.New("answer does not belong to the current step")
	ErrHostNotNeeded = errors.New("selected match is in a single host city")
	ErrUnknownField  = errors.New("unknown answer field")
	ErrNoMatchChosen = errors.New("no match chosen")
)

type Step string

const (
	StepIntro         Step = "intro"
	StepMatch         Step = "match"
	StepHost          Step = "host"
	StepBudget        Step = "budget"
	StepAccommodation Step = "accommodation"
	StepResults       Step = "results"
)

// Field names an answer the visitor can set.
type Field string

const (
	FieldMatch         Field = "match"
	FieldHost          Field = "host"
	FieldBudget        Field = "budget"
	FieldAccommodation Field = "accommodation"
)

func ParseField(s string) (Field, error) {
	switch f := Field(s); f {
	case FieldMatch, FieldHost, FieldBudget, FieldAccommodation:
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownField, s)
}

// stepFields lists the answer each step collects.
var stepFields = map[Step]Field{
	StepMatch:         FieldMatch,
	StepHost:          FieldHost,
	StepBudget:        FieldBudget,
	StepAccommodation: FieldAccommodation,
}

// Catalog is the reference data the wizard validates answers against.
type Catalog interface {
	Match(id string) (atlas.Match, bool)
	HostCity(id string) (atlas.HostCity, bool)
	Budget(id string) (atlas.BudgetTier, bool)
	Accommodation(id string) (atlas.Accommodation, bool)
	CityBundle(key atlas.CityKey) atlas.CityBundle
}

// Wizard is one visitor's planner session. It is not safe for concurrent use.
type Wizard struct {
	catalog Catalog
	step    Step
	answers atlas.Answers

	reported bool
}

func New(c Catalog) *Wizard {
	return &Wizard{catalog: c, step: StepIntro}
}

func (w *Wizard) Step() Step             { return w.step }
func (w *Wizard) Answers() atlas.Answers { return w.answers }

// NeedsHost reports whether the selected match requires the host step.
func (w *Wizard) NeedsHost() bool {
	m, ok := w.catalog.Match(w.answers.MatchID)
	return ok && RequiresHost(m.City)
}

// Steps returns the current step sequence. The host step is present only for
// ambiguous matches.
func (w *Wizard) Steps() []Step {
	steps := []Step{StepIntro, StepMatch}
	if w.NeedsHost() {
		steps = append(steps, StepHost)
	}
	return append(steps, StepBudget, StepAccommodation, StepResults)
}

func (w *Wizard) position() int {
	for i, s := range w.Steps() {
		if s == w.step {
			return i
		}
	}
	return 0
}

// Start leaves the intro. It does nothing on any other step.
func (w *Wizard) Start() bool {
	if w.step != StepIntro {
		return false
	}
	w.step = StepMatch
	return true
}

// Select records an answer for the current step. Picking a different match
// clears the host city.
func (w *Wizard) Select(field Field, id string) error {
	if stepFields[w.step] != field {
		return fmt.Errorf("%w: %s on step %s", ErrWrongStep, field, w.step)
	}

	switch field {
	case FieldMatch:
		if _, ok := w.catalog.Match(id); !ok {
			return fmt.Errorf("%w: match %q", ErrUnknownOption, id)
		}
		if id != w.answers.MatchID {
			w.answers.HostCityID = ""
		}
		w.answers.MatchID = id
	case FieldHost:
		if !w.NeedsHost() {
			return ErrHostNotNeeded
		}
		if _, ok := w.catalog.HostCity(id); !ok {
			return fmt.Errorf("%w: host city %q", ErrUnknownOption, id)
		}
		w.answers.HostCityID = id
	case FieldBudget:
		if _, ok := w.catalog.Budget(id); !ok {
			return fmt.Errorf("%w: budget %q", ErrUnknownOption, id)
		}
		w.answers.BudgetID = id
	case FieldAccommodation:
		if _, ok := w.catalog.Accommodation(id); !ok {
			return fmt.Errorf("%w: accommodation %q", ErrUnknownOption, id)
		}
		w.answers.AccommodationID = id
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	return nil
}

func (w *Wizard) answered(f Field) bool {
	switch f {
	case FieldMatch:
		return w.answers.MatchID != ""
	case FieldHost:
		return w.answers.HostCityID != ""
	case FieldBudget:
		return w.answers.BudgetID != ""
	case FieldAccommodation:
		return w.answers.AccommodationID != ""
	}
	return false
}

// CanAdvance reports whether Next would move forward. The intro advances via
// Start and results is terminal.
func (w *Wizard) CanAdvance() bool {
	f, ok := stepFields[w.step]
	return ok && w.answered(f)
}

func (w *Wizard) CanGoBack() bool { return w.position() > 0 }

// Next advances one step when the current step is answered. It returns false
// and leaves the wizard unchanged otherwise.
func (w *Wizard) Next() bool {
	if !w.CanAdvance() {
		return false
	}
	steps := w.Steps()
	w.step = steps[w.position()+1]
	return true
}

// Back walks the same sequence as Next in reverse. Answers are kept.
func (w *Wizard) Back() bool {
	i := w.position()
	if i == 0 {
		return false
	}
	w.step = w.Steps()[i-1]
	return true
}

// StartOver returns to the intro and clears every answer.
func (w *Wizard) StartOver() {
	w.step = StepIntro
	w.answers = atlas.Answers{}
	w.reported = false
}

// FirstResult reports whether the wizard is on the results step for the first
// time since it was created or started over. Later calls return false.
func (w *Wizard) FirstResult() bool {
	if w.step != StepResults || w.reported {
		return false
	}
	w.reported = true
	return true
}

// CityKey returns the normalized key for the current answers. ok is false
// until a match is chosen.
func (w *Wizard) CityKey() (key atlas.CityKey, ok bool) {
	m, found := w.catalog.Match(w.answers.MatchID)
	if !found {
		return 0, false
	}
	return NormalizeCityKey(m.City, w.answers.HostCityID), true
}

// Profile builds the content bundle for the current answers.
func (w *Wizard) Profile(lang atlas.Lang) (atlas.CityProfile, error) {
	key, ok := w.CityKey()
	if !ok {
		return atlas.CityProfile{}, ErrNoMatchChosen
	}
	return BuildProfile(w.catalog.CityBundle(key), lang, w.answers, w.NeedsHost()), nil
}
