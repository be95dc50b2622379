package server

import (
	"log/slog"
	"net/http"

	"github.com/atlasborder/site/internal/atlas"
	"github.com/atlasborder/site/internal/i18n"
)

type LangRequest struct {
	Lang string `json:"lang"`
}

type LangResponse struct {
	Lang    atlas.Lang   `json:"lang"`
	Dir     string       `json:"dir"`
	Strings i18n.Strings `json:"strings"`
}

func langResponse(lang atlas.Lang) LangResponse {
	return LangResponse{Lang: lang, Dir: lang.Dir(), Strings: i18n.For(lang)}
}

func handleGetLang() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, langResponse(langFrom(r)))
	}
}

func handleSetLang(p *i18n.Provider, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LangRequest
		if err := readJSON(w, r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		var lang atlas.Lang
		switch atlas.Lang(req.Lang) {
		case atlas.LangEN, atlas.LangAR:
			lang = atlas.Lang(req.Lang)
		default:
			writeError(w, http.StatusBadRequest, "lang must be en or ar")
			return
		}

		if err := p.SetLanguage(r.Context(), visitorFrom(r), lang); err != nil {
			logger.Error("saving language", "error", err)
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		writeJSON(w, http.StatusOK, langResponse(lang))
	}
}
