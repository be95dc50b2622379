package server

import (
	"encoding/json"
	"net/http"

	openapi "github.com/swaggest/openapi-go"
	"github.com/swaggest/openapi-go/openapi3"

	"github.com/atlasborder/site/internal/atlas"
)

// ErrorResponse is returned for all error responses.
type ErrorResponse struct {
	Error string `json:"error"`
}

// HealthResponse maps each dependency to its status.
type HealthResponse map[string]struct {
	Status string `json:"status"`
}

type langQuery struct {
	Lang string `query:"lang" enum:"en,ar" description:"Overrides the stored language for this request."`
}

type routesQuery struct {
	Path string `query:"path" description:"Report whether this client path is a known page."`
}

type pagePath struct {
	langQuery
	Page string `path:"page" enum:"home,immigration,shell,toronto,verify"`
}

type plannerPath struct {
	langQuery
	ID string `path:"id" format:"uuid"`
}

type answerPath struct {
	AnswerRequest
	langQuery
	ID    string `path:"id" format:"uuid"`
	Field string `path:"field" enum:"match,host,budget,accommodation"`
}

type checklistPath struct {
	langQuery
	ID string `path:"id" format:"uuid"`
}

type checklistItemPath struct {
	langQuery
	ID   string `path:"id" format:"uuid"`
	Item string `path:"item"`
}

// operation describes one documented route. alsoStatus lists further
// statuses that return resp rather than an ErrorResponse.
type operation struct {
	method      string
	path        string
	summary     string
	description string
	req         any
	resp        any
	status      int
	errors      []int
	alsoStatus  []int
}

func newOpenAPISpec() *openapi3.Spec {
	r := openapi3.NewReflector()
	r.Spec.Info.Title = "AtlasBorder API"
	r.Spec.Info.Version = "0.1.0"
	r.Spec.Info.WithDescription("Backend API for the AtlasBorder site: language preference, page content, WorldCup planner and application checklist.")

	ops := []operation{
		{http.MethodGet, "/healthz", "Health check", "Returns the status of the preference store.", nil, HealthResponse{}, http.StatusOK, nil, []int{http.StatusServiceUnavailable}},
		{http.MethodGet, "/api/lang", "Current language", "Returns the visitor's UI language, text direction and shared interface strings.", langQuery{}, LangResponse{}, http.StatusOK, nil, nil},
		{http.MethodPut, "/api/lang", "Set language", "Stores the visitor's UI language. The last write wins.", LangRequest{}, LangResponse{}, http.StatusOK, []int{http.StatusBadRequest}, nil},
		{http.MethodGet, "/api/routes", "Site routes", "Lists the client page paths.", routesQuery{}, RoutesResponse{}, http.StatusOK, nil, nil},
		{http.MethodGet, "/api/pages", "Page names", "Lists the pages served by /api/pages/{page}.", nil, PageNamesResponse{}, http.StatusOK, nil, nil},
		{http.MethodGet, "/api/pages/{page}", "Page content", "Returns a page's copy in the active language.", pagePath{}, PageResponse{}, http.StatusOK, []int{http.StatusNotFound}, nil},
		{http.MethodGet, "/api/planner/options", "Planner options", "Matches, host cities, budget tiers and accommodation types.", langQuery{}, PlannerOptionsResponse{}, http.StatusOK, nil, nil},
		{http.MethodPost, "/api/planner", "Start planner session", "Creates a wizard session on the intro step.", langQuery{}, PlannerView{}, http.StatusCreated, nil, nil},
		{http.MethodGet, "/api/planner/{id}", "Get planner session", "Returns the wizard state.", plannerPath{}, PlannerView{}, http.StatusOK, []int{http.StatusNotFound}, nil},
		{http.MethodDelete, "/api/planner/{id}", "End planner session", "Drops the wizard session.", plannerPath{}, nil, http.StatusNoContent, nil, nil},
		{http.MethodPost, "/api/planner/{id}/start", "Leave intro", "Moves from the intro to the match step.", plannerPath{}, PlannerView{}, http.StatusOK, []int{http.StatusNotFound}, nil},
		{http.MethodPut, "/api/planner/{id}/answers/{field}", "Answer step", "Records the answer for the current step. A different match clears the host city.", answerPath{}, PlannerView{}, http.StatusOK, []int{http.StatusBadRequest, http.StatusNotFound, http.StatusConflict}, nil},
		{http.MethodPost, "/api/planner/{id}/next", "Next step", "Advances when the current step is answered.", plannerPath{}, PlannerView{}, http.StatusOK, []int{http.StatusNotFound, http.StatusConflict}, nil},
		{http.MethodPost, "/api/planner/{id}/back", "Previous step", "Walks the step sequence backwards, keeping answers.", plannerPath{}, PlannerView{}, http.StatusOK, []int{http.StatusNotFound}, nil},
		{http.MethodPost, "/api/planner/{id}/reset", "Start over", "Returns to the intro and clears all answers.", plannerPath{}, PlannerView{}, http.StatusOK, []int{http.StatusNotFound}, nil},
		{http.MethodGet, "/api/planner/{id}/profile", "City profile", "Localized areas, pitfalls, top risks and transit links for the current answers.", plannerPath{}, atlas.CityProfile{}, http.StatusOK, []int{http.StatusNotFound, http.StatusConflict}, nil},
		{http.MethodPost, "/api/checklist", "Start checklist", "Creates a checklist session with every item unchecked.", langQuery{}, ChecklistView{}, http.StatusCreated, nil, nil},
		{http.MethodGet, "/api/checklist/{id}", "Get checklist", "Returns items, progress and completion.", checklistPath{}, ChecklistView{}, http.StatusOK, []int{http.StatusNotFound}, nil},
		{http.MethodDelete, "/api/checklist/{id}", "End checklist", "Drops the checklist session.", checklistPath{}, nil, http.StatusNoContent, nil, nil},
		{http.MethodPost, "/api/checklist/{id}/items/{item}/toggle", "Toggle item", "Flips one checklist item.", checklistItemPath{}, ChecklistView{}, http.StatusOK, []int{http.StatusNotFound}, nil},
		{http.MethodPost, "/api/checklist/{id}/reset", "Reset checklist", "Unchecks every item.", checklistPath{}, ChecklistView{}, http.StatusOK, []int{http.StatusNotFound}, nil},
	}

	for _, op := range ops {
		oc, _ := r.NewOperationContext(op.method, op.path)
		oc.SetSummary(op.summary)
		oc.SetDescription(op.description)
		if op.req != nil {
			oc.AddReqStructure(op.req)
		}
		oc.AddRespStructure(op.resp, openapi.WithHTTPStatus(op.status))
		for _, status := range op.alsoStatus {
			oc.AddRespStructure(op.resp, openapi.WithHTTPStatus(status))
		}
		for _, status := range op.errors {
			oc.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(status))
		}
		_ = r.AddOperation(oc)
	}

	return r.Spec
}

func handleOpenAPI() http.HandlerFunc {
	spec := newOpenAPISpec()
	data, _ := json.MarshalIndent(spec, "", "  ")

	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	}
}
