package server

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/atlasborder/site/internal/atlas"
	"github.com/atlasborder/site/internal/checklist"
	"github.com/atlasborder/site/internal/content"
	"github.com/atlasborder/site/internal/metrics"
	"github.com/atlasborder/site/internal/session"
)

type ChecklistItemView struct {
	ID      string `json:"id"`
	Label   string `json:"label"`
	Checked bool   `json:"checked"`
}

type ChecklistView struct {
	ID         string              `json:"id"`
	Items      []ChecklistItemView `json:"items"`
	CheckedIDs []string            `json:"checkedIds"`
	Checked    int                 `json:"checked"`
	Total      int                 `json:"total"`
	Remaining  int                 `json:"remaining"`
	Progress   int                 `json:"progress"`
	Complete   bool                `json:"complete"`
}

func checklistView(id string, l *checklist.List, c *content.Catalog, lang atlas.Lang) ChecklistView {
	labels := make(map[string]string, len(c.ChecklistItems()))
	for _, it := range c.ChecklistItems() {
		labels[it.ID] = it.Label.In(lang)
	}

	v := ChecklistView{
		ID:         id,
		Items:      make([]ChecklistItemView, 0, l.Total()),
		CheckedIDs: l.CheckedIDs(),
		Checked:    l.Checked(),
		Total:      l.Total(),
		Remaining:  l.Remaining(),
		Progress:   l.Progress(),
		Complete:   l.Complete(),
	}
	for _, it := range l.Items() {
		v.Items = append(v.Items, ChecklistItemView{ID: it, Label: labels[it], Checked: l.IsChecked(it)})
	}
	return v
}

func handleCreateChecklist(c *content.Catalog, reg *session.Registry[*checklist.List]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ids := make([]string, 0, len(c.ChecklistItems()))
		for _, it := range c.ChecklistItems() {
			ids = append(ids, it.ID)
		}
		l := checklist.New(ids)
		id := reg.Create(l)
		writeJSON(w, http.StatusCreated, checklistView(id, l, c, langFrom(r)))
	}
}

func handleGetChecklist(c *content.Catalog, reg *session.Registry[*checklist.List]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		var view ChecklistView
		err := reg.Do(id, func(l *checklist.List) error {
			view = checklistView(id, l, c, langFrom(r))
			return nil
		})
		if err != nil {
			writeChecklistError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, view)
	}
}

func handleToggleItem(c *content.Catalog, reg *session.Registry[*checklist.List]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		item := chi.URLParam(r, "item")

		var view ChecklistView
		err := reg.Do(id, func(l *checklist.List) error {
			checked, err := l.Toggle(item)
			if err != nil {
				return err
			}
			if checked {
				metrics.ObserveChecklist("check")
			} else {
				metrics.ObserveChecklist("uncheck")
			}
			if l.Complete() {
				metrics.ObserveChecklist("complete")
			}
			view = checklistView(id, l, c, langFrom(r))
			return nil
		})
		if err != nil {
			writeChecklistError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, view)
	}
}

func handleResetChecklist(c *content.Catalog, reg *session.Registry[*checklist.List]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		var view ChecklistView
		err := reg.Do(id, func(l *checklist.List) error {
			l.Reset()
			metrics.ObserveChecklist("reset")
			view = checklistView(id, l, c, langFrom(r))
			return nil
		})
		if err != nil {
			writeChecklistError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, view)
	}
}

// handleDeleteSession drops a planner or checklist session. Unknown ids are
// not an error.
func handleDeleteSession[T any](reg *session.Registry[T]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reg.Delete(chi.URLParam(r, "id"))
		w.WriteHeader(http.StatusNoContent)
	}
}

func writeChecklistError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, session.ErrNotFound):
		writeError(w, http.StatusNotFound, "checklist session not found")
	case errors.Is(err, checklist.ErrUnknownItem):
		writeError(w, http.StatusNotFound, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
