package content

import "github.com/atlasborder/site/internal/atlas"

// Localize walks a decoded YAML document and replaces every {en, ar} mapping
// with the string for lang. Other values are copied unchanged.
func Localize(v any, lang atlas.Lang) any {
	switch t := v.(type) {
	case map[string]any:
		if txt, ok := asText(t); ok {
			return txt.In(lang)
		}
		out := make(map[string]any, len(t))
		for k, child := range t {
			out[k] = Localize(child, lang)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, child := range t {
			out[i] = Localize(child, lang)
		}
		return out
	default:
		return v
	}
}

func asText(m map[string]any) (atlas.Text, bool) {
	if len(m) != 2 {
		return atlas.Text{}, false
	}
	en, ok := m["en"].(string)
	if !ok {
		return atlas.Text{}, false
	}
	ar, ok := m["ar"].(string)
	if !ok {
		return atlas.Text{}, false
	}
	return atlas.Text{EN: en, AR: ar}, true
}
