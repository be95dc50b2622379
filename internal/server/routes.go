package server

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/swaggest/swgui/v5emb"

	"github.com/atlasborder/site/internal/handler/health"
	"github.com/atlasborder/site/internal/metrics"
)

func addRoutes(r chi.Router, logger *slog.Logger, d Deps) {
	r.Get("/openapi.json", handleOpenAPI())
	r.Mount("/docs", v5emb.New("AtlasBorder API", "/openapi.json", "/docs"))
	r.Mount("/healthz", health.NewHandler(logger, d.Checks).Routes())
	if d.Metrics != nil {
		r.Handle("/metrics", metrics.Handler(d.Metrics))
	}

	r.Route("/api", func(r chi.Router) {
		r.Use(visitorMiddleware(d.CookieSecure))
		r.Use(langMiddleware(d.Lang, logger))
		r.NotFound(func(w http.ResponseWriter, r *http.Request) {
			writeError(w, http.StatusNotFound, "not found")
		})

		r.Get("/lang", handleGetLang())
		r.Put("/lang", handleSetLang(d.Lang, logger))
		r.Get("/routes", handleRoutes())
		r.Get("/pages", handlePageNames(d.Catalog))
		r.Get("/pages/{page}", handlePage(d.Catalog))

		r.Get("/planner/options", handlePlannerOptions(d.Catalog))
		r.Post("/planner", handleCreatePlanner(d.Catalog, d.Planners))
		r.Route("/planner/{id}", func(r chi.Router) {
			r.Get("/", handleGetPlanner(d.Planners))
			r.Delete("/", handleDeleteSession(d.Planners))
			r.Post("/start", handlePlannerAction(d.Planners, actionStart))
			r.Put("/answers/{field}", handleAnswer(d.Planners))
			r.Post("/next", handlePlannerAction(d.Planners, actionNext))
			r.Post("/back", handlePlannerAction(d.Planners, actionBack))
			r.Post("/reset", handlePlannerAction(d.Planners, actionReset))
			r.Get("/profile", handlePlannerProfile(d.Planners))
		})

		r.Post("/checklist", handleCreateChecklist(d.Catalog, d.Checklists))
		r.Route("/checklist/{id}", func(r chi.Router) {
			r.Get("/", handleGetChecklist(d.Catalog, d.Checklists))
			r.Delete("/", handleDeleteSession(d.Checklists))
			r.Post("/items/{item}/toggle", handleToggleItem(d.Catalog, d.Checklists))
			r.Post("/reset", handleResetChecklist(d.Catalog, d.Checklists))
		})
	})

	if d.SPADir != "" {
		if info, err := os.Stat(d.SPADir); err == nil && info.IsDir() {
			logger.Info("serving SPA", "dir", d.SPADir)
			r.NotFound(handleSPA(d.SPADir))
		}
	}
}
