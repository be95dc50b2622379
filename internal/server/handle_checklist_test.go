package server

import (
	"net/http"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestChecklistFlow(t *testing.T) {
	h := testRouter(t, testDeps(t))

	w := do(t, h, http.MethodPost, "/api/checklist", nil)
	expectStatus(t, w, http.StatusCreated)
	view := decode[ChecklistView](t, w)
	if view.Total != 8 || view.Checked != 0 || view.Progress != 0 || view.Complete {
		t.Fatalf("new checklist: %+v", view)
	}
	if view.Items[0].ID != "photo" || view.Items[0].Label == "" {
		t.Errorf("first item: %+v", view.Items[0])
	}
	base := "/api/checklist/" + view.ID

	for _, item := range []string{"photo", "fees", "insurance"} {
		w = do(t, h, http.MethodPost, base+"/items/"+item+"/toggle", nil)
		expectStatus(t, w, http.StatusOK)
	}
	view = decode[ChecklistView](t, w)
	if view.Checked != 3 || view.Progress != 38 || view.Remaining != 5 || view.Complete {
		t.Errorf("after three toggles: %+v", view)
	}
	if diff := cmp.Diff([]string{"photo", "fees", "insurance"}, view.CheckedIDs); diff != "" {
		t.Errorf("checked ids (-want +got):\n%s", diff)
	}

	w = do(t, h, http.MethodPost, base+"/items/visa/toggle", nil)
	expectStatus(t, w, http.StatusNotFound)

	w = do(t, h, http.MethodGet, base, nil)
	expectStatus(t, w, http.StatusOK)
	if v := decode[ChecklistView](t, w); v.Checked != 3 {
		t.Errorf("unknown item changed state: %+v", v)
	}

	for _, item := range []string{"passport", "forms", "copies", "translations", "financials"} {
		w = do(t, h, http.MethodPost, base+"/items/"+item+"/toggle", nil)
	}
	if v := decode[ChecklistView](t, w); v.Progress != 100 || !v.Complete {
		t.Errorf("all checked: %+v", v)
	}

	w = do(t, h, http.MethodPost, base+"/reset", nil)
	expectStatus(t, w, http.StatusOK)
	if v := decode[ChecklistView](t, w); v.Checked != 0 || v.Complete {
		t.Errorf("after reset: %+v", v)
	}

	expectStatus(t, do(t, h, http.MethodGet, "/api/checklist/missing", nil), http.StatusNotFound)
}

func TestChecklistLabelsFollowLanguage(t *testing.T) {
	h := testRouter(t, testDeps(t))

	en := decode[ChecklistView](t, do(t, h, http.MethodPost, "/api/checklist?lang=en", nil))
	ar := decode[ChecklistView](t, do(t, h, http.MethodGet, "/api/checklist/"+en.ID+"?lang=ar", nil))
	if en.Items[0].Label == ar.Items[0].Label {
		t.Errorf("label not translated: %q", ar.Items[0].Label)
	}
}

func TestCreatedChecklistIsRegistered(t *testing.T) {
	h := testRouter(t, testDeps(t))

	w := do(t, h, http.MethodPost, "/api/checklist", nil)
	expectStatus(t, w, http.StatusCreated)
	created := decode[ChecklistView](t, w)

	w = do(t, h, http.MethodGet, "/api/checklist/"+created.ID, nil)
	expectStatus(t, w, http.StatusOK)
	if diff := cmp.Diff(created, decode[ChecklistView](t, w)); diff != "" {
		t.Errorf("created view differs from stored session (-created +stored):\n%s", diff)
	}
}

func TestDeleteSessions(t *testing.T) {
	h := testRouter(t, testDeps(t))

	for _, kind := range []string{"planner", "checklist"} {
		t.Run(kind, func(t *testing.T) {
			w := do(t, h, http.MethodPost, "/api/"+kind, nil)
			expectStatus(t, w, http.StatusCreated)
			path := "/api/" + kind + "/" + decode[struct{ ID string }](t, w).ID

			expectStatus(t, do(t, h, http.MethodDelete, path, nil), http.StatusNoContent)
			expectStatus(t, do(t, h, http.MethodGet, path, nil), http.StatusNotFound)
			expectStatus(t, do(t, h, http.MethodDelete, path, nil), http.StatusNoContent)
		})
	}
}
