package planner_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/atlasborder/site/internal/atlas"
	"github.com/atlasborder/site/internal/content"
	"github.com/atlasborder/site/internal/planner"
)

func loadCatalog(t *testing.T) *content.Catalog {
	t.Helper()
	c, err := content.Load()
	if err != nil {
		t.Fatalf("loading content: %v", err)
	}
	return c
}

// walk starts the wizard and answers each step in turn.
func walk(t *testing.T, w *planner.Wizard, answers ...string) {
	t.Helper()
	if !w.Start() {
		t.Fatalf("start from %s failed", w.Step())
	}
	for _, id := range answers {
		field := planner.Field(w.Step())
		if err := w.Select(field, id); err != nil {
			t.Fatalf("select %s=%s: %v", field, id, err)
		}
		if !w.Next() {
			t.Fatalf("next from %s failed", w.Step())
		}
	}
}

func TestSingleCityMatchSkipsHost(t *testing.T) {
	w := planner.New(loadCatalog(t))
	walk(t, w, "final", "premium", "hotel")

	if w.Step() != planner.StepResults {
		t.Fatalf("step = %s, want results", w.Step())
	}
	want := []planner.Step{
		planner.StepIntro, planner.StepMatch, planner.StepBudget,
		planner.StepAccommodation, planner.StepResults,
	}
	if diff := cmp.Diff(want, w.Steps()); diff != "" {
		t.Errorf("steps mismatch (-want +got):\n%s", diff)
	}

	key, ok := w.CityKey()
	if !ok || key != atlas.CityNY {
		t.Errorf("city key = %v, %v, want ny", key, ok)
	}

	p, err := w.Profile(atlas.LangEN)
	if err != nil {
		t.Fatalf("profile: %v", err)
	}
	var ids []string
	for _, r := range p.Risks {
		ids = append(ids, r.ID)
	}
	if diff := cmp.Diff([]string{"ny-stay", "ny-transport", "ny-health"}, ids); diff != "" {
		t.Errorf("risks mismatch (-want +got):\n%s", diff)
	}
}

func TestMultiCityMatchAsksForHost(t *testing.T) {
	tests := []struct {
		host string
		want atlas.CityKey
	}{
		{"atlanta", atlas.CityAtlanta},
		{"dallas", atlas.CityDallas},
	}
	for _, tt := range tests {
		t.Run(tt.host, func(t *testing.T) {
			w := planner.New(loadCatalog(t))
			walk(t, w, "knockout-sf")
			if w.Step() != planner.StepHost {
				t.Fatalf("step = %s, want host", w.Step())
			}
			if w.CanAdvance() {
				t.Error("host step should block until answered")
			}
			if w.Next() {
				t.Error("next should fail without a host")
			}
			if err := w.Select(planner.FieldHost, tt.host); err != nil {
				t.Fatalf("select host: %v", err)
			}
			if !w.Next() || w.Step() != planner.StepBudget {
				t.Fatalf("step = %s, want budget", w.Step())
			}
			key, _ := w.CityKey()
			if key != tt.want {
				t.Errorf("city key = %s, want %s", key, tt.want)
			}
		})
	}
}

func TestVariousMatchAsksForHost(t *testing.T) {
	w := planner.New(loadCatalog(t))
	walk(t, w, "follow-team")
	if !w.NeedsHost() || w.Step() != planner.StepHost {
		t.Fatalf("step = %s, needsHost = %v", w.Step(), w.NeedsHost())
	}
}

func TestSelectValidation(t *testing.T) {
	w := planner.New(loadCatalog(t))

	if err := w.Select(planner.FieldMatch, "final"); !errors.Is(err, planner.ErrWrongStep) {
		t.Errorf("select on intro: got %v, want ErrWrongStep", err)
	}
	w.Start()
	if err := w.Select(planner.FieldMatch, "semi-final"); !errors.Is(err, planner.ErrUnknownOption) {
		t.Errorf("unknown match: got %v, want ErrUnknownOption", err)
	}
	if err := w.Select(planner.FieldBudget, "budget"); !errors.Is(err, planner.ErrWrongStep) {
		t.Errorf("budget on match step: got %v, want ErrWrongStep", err)
	}
	if w.CanAdvance() {
		t.Error("match step should block until answered")
	}

	if _, err := planner.ParseField("colour"); !errors.Is(err, planner.ErrUnknownField) {
		t.Errorf("ParseField: got %v, want ErrUnknownField", err)
	}
}

func TestChangingMatchClearsHost(t *testing.T) {
	w := planner.New(loadCatalog(t))
	walk(t, w, "knockout-sf", "atlanta")

	if !w.Back() || !w.Back() || w.Step() != planner.StepMatch {
		t.Fatalf("step = %s, want match", w.Step())
	}
	if w.Answers().HostCityID != "atlanta" {
		t.Fatal("back should keep answers")
	}

	// Reselecting the same match keeps the host.
	if err := w.Select(planner.FieldMatch, "knockout-sf"); err != nil {
		t.Fatal(err)
	}
	if w.Answers().HostCityID != "atlanta" {
		t.Error("host cleared on same match")
	}

	if err := w.Select(planner.FieldMatch, "group-dallas"); err != nil {
		t.Fatal(err)
	}
	if w.Answers().HostCityID != "" {
		t.Error("host should be cleared when the match changes")
	}
	if w.NeedsHost() {
		t.Error("group-dallas is a single city")
	}
	if !w.Next() || w.Step() != planner.StepBudget {
		t.Errorf("step = %s, want budget", w.Step())
	}
}

func TestHostFieldOutsideHostStep(t *testing.T) {
	w := planner.New(loadCatalog(t))
	walk(t, w, "final")
	if err := w.Select(planner.FieldHost, "ny"); !errors.Is(err, planner.ErrWrongStep) {
		t.Errorf("got %v, want ErrWrongStep", err)
	}
}

func TestBackMirrorsNext(t *testing.T) {
	w := planner.New(loadCatalog(t))
	walk(t, w, "knockout-sf", "dallas", "mid", "airbnb")

	var forward []planner.Step
	forward = append(forward, w.Steps()...)

	var backward []planner.Step
	backward = append(backward, w.Step())
	for w.Back() {
		backward = append(backward, w.Step())
	}
	for i, j := 0, len(backward)-1; i < j; i, j = i+1, j-1 {
		backward[i], backward[j] = backward[j], backward[i]
	}
	if diff := cmp.Diff(forward, backward); diff != "" {
		t.Errorf("back path mismatch (-next +back):\n%s", diff)
	}
	if w.CanGoBack() {
		t.Error("intro has no previous step")
	}
}

func TestNextIsNoopAtEnds(t *testing.T) {
	w := planner.New(loadCatalog(t))
	if w.Next() || w.Step() != planner.StepIntro {
		t.Error("next on intro should do nothing")
	}
	walk(t, w, "opener", "budget", "hostel")
	if w.Next() || w.Step() != planner.StepResults {
		t.Error("next on results should do nothing")
	}
	if w.Start() {
		t.Error("start is only valid on intro")
	}
}

func TestStartOver(t *testing.T) {
	w := planner.New(loadCatalog(t))
	walk(t, w, "canada-opener", "budget", "friends")
	w.StartOver()

	if w.Step() != planner.StepIntro {
		t.Errorf("step = %s, want intro", w.Step())
	}
	if diff := cmp.Diff(atlas.Answers{}, w.Answers()); diff != "" {
		t.Errorf("answers not cleared:\n%s", diff)
	}
	if _, err := w.Profile(atlas.LangEN); !errors.Is(err, planner.ErrNoMatchChosen) {
		t.Errorf("profile after reset: got %v", err)
	}
}

func TestProfileIsDeterministic(t *testing.T) {
	c := loadCatalog(t)
	run := func() atlas.CityProfile {
		w := planner.New(c)
		walk(t, w, "knockout-sf", "atlanta", "budget", "airbnb")
		p, err := w.Profile(atlas.LangAR)
		if err != nil {
			t.Fatalf("profile: %v", err)
		}
		return p
	}
	first := run()
	for i := 0; i < 5; i++ {
		if diff := cmp.Diff(first, run()); diff != "" {
			t.Fatalf("replay %d differs:\n%s", i, diff)
		}
	}
	if first.CityName != "أتلانتا" || first.Lang != atlas.LangAR {
		t.Errorf("profile not localized: %q %q", first.CityName, first.Lang)
	}
}

func TestBackAndForthKeepsResult(t *testing.T) {
	c := loadCatalog(t)

	straight := planner.New(c)
	walk(t, straight, "knockout-sf", "atlanta", "budget", "airbnb")

	w := planner.New(c)
	walk(t, w, "knockout-sf", "atlanta", "budget", "airbnb")
	for i := 0; i < 4; i++ {
		if !w.Back() {
			t.Fatalf("back %d from %s failed", i, w.Step())
		}
	}
	if w.Step() != planner.StepMatch {
		t.Fatalf("step = %s, want match", w.Step())
	}
	w.Next()
	w.Back()
	for w.Step() != planner.StepResults {
		if !w.Next() {
			t.Fatalf("next from %s failed", w.Step())
		}
	}

	if diff := cmp.Diff(straight.Answers(), w.Answers()); diff != "" {
		t.Errorf("answers differ (-straight +revisited):\n%s", diff)
	}
	want, err := straight.Profile(atlas.LangEN)
	if err != nil {
		t.Fatalf("profile: %v", err)
	}
	got, err := w.Profile(atlas.LangEN)
	if err != nil {
		t.Fatalf("profile: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("profile differs (-straight +revisited):\n%s", diff)
	}
}

func TestFirstResultOncePerPlan(t *testing.T) {
	w := planner.New(loadCatalog(t))
	if w.FirstResult() {
		t.Fatal("first result on intro")
	}
	walk(t, w, "final", "premium", "hotel")
	if !w.FirstResult() {
		t.Fatal("expected first result on results")
	}
	if w.FirstResult() {
		t.Error("second call on the same visit reported again")
	}

	w.Back()
	w.Next()
	if w.FirstResult() {
		t.Error("back then next reported again")
	}

	w.StartOver()
	walk(t, w, "final", "budget", "hostel")
	if !w.FirstResult() {
		t.Error("new plan after start over did not report")
	}
}
