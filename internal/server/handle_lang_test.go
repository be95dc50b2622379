package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/atlasborder/site/internal/atlas"
)

func visitorCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == visitorCookieName {
			return c
		}
	}
	t.Fatal("no visitor cookie set")
	return nil
}

func TestLanguagePreference(t *testing.T) {
	h := testRouter(t, testDeps(t))

	w := do(t, h, http.MethodGet, "/api/lang", nil)
	expectStatus(t, w, http.StatusOK)
	cookie := visitorCookie(t, w)
	if !cookie.HttpOnly || cookie.Path != "/" {
		t.Errorf("cookie attributes: %+v", cookie)
	}
	resp := decode[LangResponse](t, w)
	if resp.Lang != atlas.LangEN || resp.Dir != "ltr" || resp.Strings.SiteName != "AtlasBorder" {
		t.Errorf("default language response: %+v", resp)
	}

	w = do(t, h, http.MethodPut, "/api/lang", LangRequest{Lang: "ar"}, cookie)
	expectStatus(t, w, http.StatusOK)
	if resp := decode[LangResponse](t, w); resp.Lang != atlas.LangAR || resp.Dir != "rtl" {
		t.Errorf("after set: %+v", resp)
	}

	// The same visitor gets Arabic back; a query parameter overrides it.
	w = do(t, h, http.MethodGet, "/api/lang", nil, cookie)
	if resp := decode[LangResponse](t, w); resp.Lang != atlas.LangAR || resp.Strings.SiteName != "أطلس بوردر" {
		t.Errorf("stored language: %+v", resp)
	}
	if got := w.Header().Get("Content-Language"); got != "ar" {
		t.Errorf("Content-Language = %q", got)
	}
	w = do(t, h, http.MethodGet, "/api/lang?lang=en", nil, cookie)
	if resp := decode[LangResponse](t, w); resp.Lang != atlas.LangEN {
		t.Errorf("query override: %+v", resp)
	}

	// A new visitor starts in English.
	w = do(t, h, http.MethodGet, "/api/lang", nil)
	if resp := decode[LangResponse](t, w); resp.Lang != atlas.LangEN {
		t.Errorf("new visitor: %+v", resp)
	}
}

func TestSetLanguageValidation(t *testing.T) {
	h := testRouter(t, testDeps(t))

	w := do(t, h, http.MethodPut, "/api/lang", LangRequest{Lang: "fr"})
	expectStatus(t, w, http.StatusBadRequest)

	w = do(t, h, http.MethodPut, "/api/lang", "not an object")
	expectStatus(t, w, http.StatusBadRequest)
}

func TestMalformedVisitorCookieIsReplaced(t *testing.T) {
	h := testRouter(t, testDeps(t))
	w := do(t, h, http.MethodGet, "/api/lang", nil, &http.Cookie{Name: visitorCookieName, Value: "prefs:other"})
	if c := visitorCookie(t, w); c.Value == "prefs:other" {
		t.Error("malformed cookie kept")
	}
}
