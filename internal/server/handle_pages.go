package server

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/atlasborder/site/internal/atlas"
	"github.com/atlasborder/site/internal/content"
)

// SiteRoute is a client-side page path and the content page it renders.
type SiteRoute struct {
	Path string `json:"path"`
	Page string `json:"page"`
}

// The planner has no static page; its copy comes from /api/planner/options.
var siteRoutes = []SiteRoute{
	{Path: "/", Page: "home"},
	{Path: "/immigration", Page: "immigration"},
	{Path: "/verify", Page: "verify"},
	{Path: "/worldcup", Page: "planner"},
	{Path: "/worldcup/toronto", Page: "toronto"},
}

func lookupRoute(path string) (SiteRoute, bool) {
	p := strings.TrimRight(path, "/")
	if p == "" {
		p = "/"
	}
	for _, rt := range siteRoutes {
		if rt.Path == p {
			return rt, true
		}
	}
	return SiteRoute{}, false
}

type RoutesResponse struct {
	Routes []SiteRoute `json:"routes"`
	Path   string      `json:"path,omitempty"`
	Known  *bool       `json:"known,omitempty"`
	Page   string      `json:"page,omitempty"`
}

func handleRoutes() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := RoutesResponse{Routes: siteRoutes}
		if path := r.URL.Query().Get("path"); path != "" {
			rt, ok := lookupRoute(path)
			resp.Path = path
			resp.Known = &ok
			resp.Page = rt.Page
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

type PageNamesResponse struct {
	Pages []string `json:"pages"`
}

func handlePageNames(c *content.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, PageNamesResponse{Pages: c.PageNames()})
	}
}

type PageResponse struct {
	Page    string     `json:"page"`
	Lang    atlas.Lang `json:"lang"`
	Dir     string     `json:"dir"`
	Content any        `json:"content"`
}

func handlePage(c *content.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := chi.URLParam(r, "page")
		lang := langFrom(r)

		doc, ok := c.Page(name, lang)
		if !ok {
			writeError(w, http.StatusNotFound, "page not found")
			return
		}
		writeJSON(w, http.StatusOK, PageResponse{Page: name, Lang: lang, Dir: lang.Dir(), Content: doc})
	}
}
