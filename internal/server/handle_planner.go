package server

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/atlasborder/site/internal/atlas"
	"github.com/atlasborder/site/internal/content"
	"github.com/atlasborder/site/internal/metrics"
	"github.com/atlasborder/site/internal/planner"
	"github.com/atlasborder/site/internal/session"
)

type Option struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

type MatchOption struct {
	ID        string `json:"id"`
	Label     string `json:"label"`
	Date      string `json:"date"`
	City      string `json:"city"`
	NeedsHost bool   `json:"needsHost"`
}

type BudgetOption struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	WeeklyRange string `json:"weeklyRange"`
}

type PlannerOptionsResponse struct {
	Lang           atlas.Lang     `json:"lang"`
	Matches        []MatchOption  `json:"matches"`
	Hosts          []Option       `json:"hosts"`
	Budgets        []BudgetOption `json:"budgets"`
	Accommodations []Option       `json:"accommodations"`
}

func handlePlannerOptions(c *content.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lang := langFrom(r)
		resp := PlannerOptionsResponse{Lang: lang}

		for _, m := range c.Matches() {
			resp.Matches = append(resp.Matches, MatchOption{
				ID:        m.ID,
				Label:     m.Label.In(lang),
				Date:      m.Date,
				City:      m.City,
				NeedsHost: planner.RequiresHost(m.City),
			})
		}
		for _, h := range c.HostCities() {
			resp.Hosts = append(resp.Hosts, Option{ID: h.ID, Label: h.Label.In(lang)})
		}
		for _, b := range c.Budgets() {
			resp.Budgets = append(resp.Budgets, BudgetOption{ID: b.ID, Label: b.Label.In(lang), WeeklyRange: b.WeeklyRange.In(lang)})
		}
		for _, a := range c.Accommodations() {
			resp.Accommodations = append(resp.Accommodations, Option{ID: a.ID, Label: a.Label.In(lang)})
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

// PlannerView is the full state of one wizard session.
type PlannerView struct {
	ID         string             `json:"id"`
	Step       planner.Step       `json:"step"`
	Steps      []planner.Step     `json:"steps"`
	Answers    atlas.Answers      `json:"answers"`
	CanAdvance bool               `json:"canAdvance"`
	CanGoBack  bool               `json:"canGoBack"`
	NeedsHost  bool               `json:"needsHost"`
	Profile    *atlas.CityProfile `json:"profile,omitempty"`
}

func plannerView(id string, w *planner.Wizard, lang atlas.Lang) PlannerView {
	v := PlannerView{
		ID:         id,
		Step:       w.Step(),
		Steps:      w.Steps(),
		Answers:    w.Answers(),
		CanAdvance: w.CanAdvance(),
		CanGoBack:  w.CanGoBack(),
		NeedsHost:  w.NeedsHost(),
	}
	if w.Step() == planner.StepResults {
		if p, err := w.Profile(lang); err == nil {
			v.Profile = &p
		}
	}
	return v
}

func handleCreatePlanner(c *content.Catalog, reg *session.Registry[*planner.Wizard]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Nobody else holds the id until the response is sent.
		wiz := planner.New(c)
		id := reg.Create(wiz)
		writeJSON(w, http.StatusCreated, plannerView(id, wiz, langFrom(r)))
	}
}

func handleGetPlanner(reg *session.Registry[*planner.Wizard]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		var view PlannerView
		err := reg.Do(id, func(wiz *planner.Wizard) error {
			view = plannerView(id, wiz, langFrom(r))
			return nil
		})
		if err != nil {
			writePlannerError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, view)
	}
}

type plannerAction int

const (
	actionStart plannerAction = iota
	actionNext
	actionBack
	actionReset
)

var errStepIncomplete = errors.New("current step is not answered")

// handlePlannerAction applies a navigation action. Start and Back are no-ops
// where they do not apply; Next on an unanswered step is a conflict.
func handlePlannerAction(reg *session.Registry[*planner.Wizard], action plannerAction) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		var view PlannerView
		err := reg.Do(id, func(wiz *planner.Wizard) error {
			switch action {
			case actionStart:
				wiz.Start()
			case actionNext:
				if wiz.Step() == planner.StepIntro || wiz.Step() == planner.StepResults {
					break
				}
				if !wiz.Next() {
					return errStepIncomplete
				}
				if key, ok := wiz.CityKey(); ok && wiz.FirstResult() {
					metrics.ObservePlannerResult(key.String())
				}
			case actionBack:
				wiz.Back()
			case actionReset:
				wiz.StartOver()
			}
			view = plannerView(id, wiz, langFrom(r))
			return nil
		})
		if err != nil {
			writePlannerError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, view)
	}
}

type AnswerRequest struct {
	Value string `json:"value"`
}

func handleAnswer(reg *session.Registry[*planner.Wizard]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		field, err := planner.ParseField(chi.URLParam(r, "field"))
		if err != nil {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		var req AnswerRequest
		if err := readJSON(w, r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		id := chi.URLParam(r, "id")
		var view PlannerView
		err = reg.Do(id, func(wiz *planner.Wizard) error {
			if err := wiz.Select(field, req.Value); err != nil {
				return err
			}
			view = plannerView(id, wiz, langFrom(r))
			return nil
		})
		if err != nil {
			writePlannerError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, view)
	}
}

func handlePlannerProfile(reg *session.Registry[*planner.Wizard]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var profile atlas.CityProfile
		err := reg.Do(chi.URLParam(r, "id"), func(wiz *planner.Wizard) error {
			var err error
			profile, err = wiz.Profile(langFrom(r))
			return err
		})
		if err != nil {
			writePlannerError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, profile)
	}
}

func writePlannerError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, session.ErrNotFound):
		writeError(w, http.StatusNotFound, "planner session not found")
	case errors.Is(err, planner.ErrUnknownOption):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, planner.ErrWrongStep),
		errors.Is(err, planner.ErrHostNotNeeded),
		errors.Is(err, planner.ErrNoMatchChosen),
		errors.Is(err, errStepIncomplete):
		writeError(w, http.StatusConflict, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
