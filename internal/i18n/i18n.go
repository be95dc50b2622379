// Package i18n resolves and persists each visitor's UI language and holds the
// shared interface strings.
package i18n

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/atlasborder/site/internal/atlas"
)

// Store is the key/value port preferences are kept in.
type Store interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
}

type preferences struct {
	UILang string `json:"uiLang"`
}

func prefsKey(visitorID string) string { return "prefs:" + visitorID }

type Provider struct {
	store  Store
	logger *slog.Logger
}

func NewProvider(store Store, logger *slog.Logger) *Provider {
	return &Provider{store: store, logger: logger}
}

// Language returns the visitor's stored language. A missing or unreadable
// preference is English; only store failures are returned as errors.
func (p *Provider) Language(ctx context.Context, visitorID string) (atlas.Lang, error) {
	raw, ok, err := p.store.Get(ctx, prefsKey(visitorID))
	if err != nil {
		return atlas.LangEN, fmt.Errorf("reading preferences: %w", err)
	}
	if !ok {
		return atlas.LangEN, nil
	}
	var prefs preferences
	if err := json.Unmarshal([]byte(raw), &prefs); err != nil {
		p.logger.Warn("discarding corrupt preferences", "visitor", visitorID, "error", err)
		return atlas.LangEN, nil
	}
	return atlas.ParseLang(prefs.UILang), nil
}

// SetLanguage stores lang for the visitor. The last write wins.
func (p *Provider) SetLanguage(ctx context.Context, visitorID string, lang atlas.Lang) error {
	b, err := json.Marshal(preferences{UILang: string(lang)})
	if err != nil {
		return fmt.Errorf("encoding preferences: %w", err)
	}
	if err := p.store.Set(ctx, prefsKey(visitorID), string(b)); err != nil {
		return fmt.Errorf("writing preferences: %w", err)
	}
	return nil
}

type ctxKey int

const langKey ctxKey = iota

func WithLang(ctx context.Context, lang atlas.Lang) context.Context {
	return context.WithValue(ctx, langKey, lang)
}

// FromContext returns the request language, English when none was set.
func FromContext(ctx context.Context) atlas.Lang {
	if l, ok := ctx.Value(langKey).(atlas.Lang); ok {
		return l
	}
	return atlas.LangEN
}
