// Package content loads the site's bilingual reference data and page copy
// from YAML files embedded in the binary.
package content

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/atlasborder/site/internal/atlas"
)

//go:embed data
var embedded embed.FS

// minRisks is the number of risk candidates each city must offer so the
// results step can always show a full set of cards.
const minRisks = 3

type ChecklistItem struct {
	ID    string     `yaml:"id" json:"id"`
	Label atlas.Text `yaml:"label" json:"label"`
}

type plannerFile struct {
	Matches        []atlas.Match         `yaml:"matches"`
	Hosts          []atlas.HostCity      `yaml:"hosts"`
	Budgets        []atlas.BudgetTier    `yaml:"budgets"`
	Accommodations []atlas.Accommodation `yaml:"accommodations"`
	Checklist      []ChecklistItem       `yaml:"checklist"`
}

type cityFile struct {
	Name     atlas.Text            `yaml:"name"`
	Areas    []atlas.AreaText      `yaml:"areas"`
	Pitfalls []atlas.PitfallText   `yaml:"pitfalls"`
	Risks    []atlas.RiskCandidate `yaml:"risks"`
	Transit  []atlas.LinkText      `yaml:"transit"`
}

// Catalog is the immutable set of content the site serves. Slices returned by
// its accessors must not be modified.
type Catalog struct {
	ref    plannerFile
	cities map[atlas.CityKey]atlas.CityBundle
	pages  map[string]any
}

// Load parses the embedded content.
func Load() (*Catalog, error) {
	sub, err := fs.Sub(embedded, "data")
	if err != nil {
		return nil, fmt.Errorf("opening embedded content: %w", err)
	}
	return Parse(sub)
}

// Parse reads planner.yaml, cities.yaml and pages/*.yaml from fsys and
// validates them.
func Parse(fsys fs.FS) (*Catalog, error) {
	c := &Catalog{
		cities: make(map[atlas.CityKey]atlas.CityBundle),
		pages:  make(map[string]any),
	}

	if err := decodeFile(fsys, "planner.yaml", &c.ref); err != nil {
		return nil, err
	}

	var cities map[string]cityFile
	if err := decodeFile(fsys, "cities.yaml", &cities); err != nil {
		return nil, err
	}
	for name, cf := range cities {
		key, ok := atlas.ParseCityKey(name)
		if !ok {
			return nil, fmt.Errorf("cities.yaml: unknown city key %q", name)
		}
		c.cities[key] = atlas.CityBundle{
			Key:      key,
			Name:     cf.Name,
			Areas:    cf.Areas,
			Pitfalls: cf.Pitfalls,
			Risks:    cf.Risks,
			Transit:  cf.Transit,
		}
	}

	entries, err := fs.ReadDir(fsys, "pages")
	if err != nil {
		return nil, fmt.Errorf("reading pages: %w", err)
	}
	for _, e := range entries {
		if e.IsDir() || path.Ext(e.Name()) != ".yaml" {
			continue
		}
		var doc map[string]any
		if err := decodeFile(fsys, path.Join("pages", e.Name()), &doc); err != nil {
			return nil, err
		}
		c.pages[strings.TrimSuffix(e.Name(), ".yaml")] = doc
	}

	if err := c.validate(); err != nil {
		return nil, fmt.Errorf("invalid content: %w", err)
	}
	return c, nil
}

func decodeFile(fsys fs.FS, name string, dest any) error {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return fmt.Errorf("reading %s: %w", name, err)
	}
	if err := yaml.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("decoding %s: %w", name, err)
	}
	return nil
}

func (c *Catalog) validate() error {
	var errs []error

	for _, key := range atlas.AllCityKeys() {
		b, ok := c.cities[key]
		if !ok {
			errs = append(errs, fmt.Errorf("city %s has no content", key))
			continue
		}
		if b.Name.EN == "" {
			errs = append(errs, fmt.Errorf("city %s: missing name", key))
		}
		if len(b.Areas) == 0 {
			errs = append(errs, fmt.Errorf("city %s: no areas", key))
		}
		if len(b.Risks) < minRisks {
			errs = append(errs, fmt.Errorf("city %s: %d risks, need at least %d", key, len(b.Risks), minRisks))
		}
		seen := make(map[string]bool)
		for _, r := range b.Risks {
			if !r.Category.Valid() {
				errs = append(errs, fmt.Errorf("city %s: risk %q has unknown category %q", key, r.ID, r.Category))
			}
			if seen[r.ID] {
				errs = append(errs, fmt.Errorf("city %s: duplicate risk %q", key, r.ID))
			}
			seen[r.ID] = true
		}
	}

	errs = append(errs, uniqueIDs("match", len(c.ref.Matches), func(i int) string { return c.ref.Matches[i].ID })...)
	errs = append(errs, uniqueIDs("host city", len(c.ref.Hosts), func(i int) string { return c.ref.Hosts[i].ID })...)
	errs = append(errs, uniqueIDs("budget", len(c.ref.Budgets), func(i int) string { return c.ref.Budgets[i].ID })...)
	errs = append(errs, uniqueIDs("accommodation", len(c.ref.Accommodations), func(i int) string { return c.ref.Accommodations[i].ID })...)
	errs = append(errs, uniqueIDs("checklist item", len(c.ref.Checklist), func(i int) string { return c.ref.Checklist[i].ID })...)

	return errors.Join(errs...)
}

func uniqueIDs(kind string, n int, id func(int) string) []error {
	if n == 0 {
		return []error{fmt.Errorf("no %s entries", kind)}
	}
	var errs []error
	seen := make(map[string]bool, n)
	for i := 0; i < n; i++ {
		v := id(i)
		switch {
		case v == "":
			errs = append(errs, fmt.Errorf("%s #%d has no id", kind, i))
		case seen[v]:
			errs = append(errs, fmt.Errorf("duplicate %s %q", kind, v))
		}
		seen[v] = true
	}
	return errs
}

func (c *Catalog) Matches() []atlas.Match                { return c.ref.Matches }
func (c *Catalog) HostCities() []atlas.HostCity          { return c.ref.Hosts }
func (c *Catalog) Budgets() []atlas.BudgetTier           { return c.ref.Budgets }
func (c *Catalog) Accommodations() []atlas.Accommodation { return c.ref.Accommodations }
func (c *Catalog) ChecklistItems() []ChecklistItem       { return c.ref.Checklist }

func (c *Catalog) Match(id string) (atlas.Match, bool) {
	for _, m := range c.ref.Matches {
		if m.ID == id {
			return m, true
		}
	}
	return atlas.Match{}, false
}

func (c *Catalog) HostCity(id string) (atlas.HostCity, bool) {
	for _, h := range c.ref.Hosts {
		if h.ID == id {
			return h, true
		}
	}
	return atlas.HostCity{}, false
}

func (c *Catalog) Budget(id string) (atlas.BudgetTier, bool) {
	for _, b := range c.ref.Budgets {
		if b.ID == id {
			return b, true
		}
	}
	return atlas.BudgetTier{}, false
}

func (c *Catalog) Accommodation(id string) (atlas.Accommodation, bool) {
	for _, a := range c.ref.Accommodations {
		if a.ID == id {
			return a, true
		}
	}
	return atlas.Accommodation{}, false
}

// CityBundle returns the content for key. Every valid key has a bundle once
// the catalog has loaded.
func (c *Catalog) CityBundle(key atlas.CityKey) atlas.CityBundle {
	return c.cities[key]
}

// PageNames lists the available pages in sorted order.
func (c *Catalog) PageNames() []string {
	names := make([]string, 0, len(c.pages))
	for n := range c.pages {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Page returns the named page with every bilingual leaf resolved to lang.
func (c *Catalog) Page(name string, lang atlas.Lang) (any, bool) {
	doc, ok := c.pages[name]
	if !ok {
		return nil, false
	}
	return Localize(doc, lang), true
}
