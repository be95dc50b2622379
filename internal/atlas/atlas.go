// Package atlas defines the core domain types shared by the planner,
// checklist and content packages. It has zero external dependencies.
package atlas

import (
	"fmt"
	"strings"
)

type Lang string

const (
	LangEN Lang = "en"
	LangAR Lang = "ar"
)

// ParseLang maps user input onto the supported languages. Anything that is
// not Arabic is English.
func ParseLang(s string) Lang {
	if strings.EqualFold(strings.TrimSpace(s), string(LangAR)) {
		return LangAR
	}
	return LangEN
}

func (l Lang) IsRTL() bool { return l == LangAR }

// Dir is the value of the HTML dir attribute for the language.
func (l Lang) Dir() string {
	if l.IsRTL() {
		return "rtl"
	}
	return "ltr"
}

// BookingLocale is the lang query parameter used by hotel search links.
func (l Lang) BookingLocale() string {
	if l == LangAR {
		return "ar"
	}
	return "en-us"
}

// Text is a string authored in both site languages.
type Text struct {
	EN string `yaml:"en" json:"en"`
	AR string `yaml:"ar" json:"ar"`
}

// In returns the translation for l, falling back to English when the
// translation is missing.
func (t Text) In(l Lang) string {
	if l == LangAR && t.AR != "" {
		return t.AR
	}
	return t.EN
}

type Match struct {
	ID    string `yaml:"id"`
	Label Text   `yaml:"label"`
	Date  string `yaml:"date"`
	City  string `yaml:"city"`
}

type HostCity struct {
	ID    string `yaml:"id"`
	Label Text   `yaml:"label"`
}

type BudgetTier struct {
	ID          string `yaml:"id"`
	Label       Text   `yaml:"label"`
	WeeklyRange Text   `yaml:"weeklyRange"`
}

type Accommodation struct {
	ID    string `yaml:"id"`
	Label Text   `yaml:"label"`
}

// Budget tier ids.
const (
	BudgetLow     = "budget"
	BudgetMid     = "mid"
	BudgetPremium = "premium"
)

// Accommodation type ids.
const (
	StayHotel   = "hotel"
	StayAirbnb  = "airbnb"
	StayHostel  = "hostel"
	StayFriends = "friends"
)

// Answers is the planner session state. Empty fields are unanswered.
type Answers struct {
	MatchID         string `json:"matchId"`
	HostCityID      string `json:"hostCityId"`
	BudgetID        string `json:"budgetId"`
	AccommodationID string `json:"accommodationId"`
}

// CityKey selects a pre-authored content bundle.
type CityKey uint8

const (
	CityNY CityKey = iota
	CityMX
	CityTOR
	CityDallas
	CityAtlanta

	numCityKeys
)

var cityKeyNames = [...]string{
	CityNY:      "ny",
	CityMX:      "mx",
	CityTOR:     "tor",
	CityDallas:  "dallas",
	CityAtlanta: "atlanta",
}

// Both arrays have a negative length, and fail to compile, unless every
// CityKey has exactly one name.
var (
	_ [len(cityKeyNames) - int(numCityKeys)]struct{}
	_ [int(numCityKeys) - len(cityKeyNames)]struct{}
)

// AllCityKeys lists every key in declaration order.
func AllCityKeys() []CityKey {
	keys := make([]CityKey, 0, numCityKeys)
	for k := CityKey(0); k < numCityKeys; k++ {
		keys = append(keys, k)
	}
	return keys
}

func (k CityKey) Valid() bool { return k < numCityKeys }

func (k CityKey) String() string {
	if !k.Valid() {
		return fmt.Sprintf("CityKey(%d)", uint8(k))
	}
	return cityKeyNames[k]
}

func ParseCityKey(s string) (CityKey, bool) {
	for i, name := range cityKeyNames {
		if name == s {
			return CityKey(i), true
		}
	}
	return 0, false
}

func (k CityKey) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("invalid city key %d", uint8(k))
	}
	return []byte(k.String()), nil
}

func (k *CityKey) UnmarshalText(b []byte) error {
	parsed, ok := ParseCityKey(string(b))
	if !ok {
		return fmt.Errorf("unknown city key %q", b)
	}
	*k = parsed
	return nil
}

// RiskCategory groups risk candidates for the additive scoring rules.
type RiskCategory string

const (
	RiskStay      RiskCategory = "stay"
	RiskTransport RiskCategory = "transport"
	RiskCost      RiskCategory = "cost"
	RiskHealth    RiskCategory = "health"
	RiskEntry     RiskCategory = "entry"
)

func (c RiskCategory) Valid() bool {
	switch c {
	case RiskStay, RiskTransport, RiskCost, RiskHealth, RiskEntry:
		return true
	}
	return false
}

// CityBundle is the authored content for one city key.
type CityBundle struct {
	Key      CityKey
	Name     Text
	Areas    []AreaText
	Pitfalls []PitfallText
	Risks    []RiskCandidate
	Transit  []LinkText
}

type AreaText struct {
	Name Text `yaml:"name"`
	Body Text `yaml:"body"`
}

type PitfallText struct {
	Title Text `yaml:"title"`
	Body  Text `yaml:"body"`
}

type LinkText struct {
	Label Text   `yaml:"label"`
	URL   string `yaml:"url"`
}

type RiskCandidate struct {
	ID       string       `yaml:"id"`
	Category RiskCategory `yaml:"category"`
	Base     int          `yaml:"base"`
	Icon     string       `yaml:"icon"`
	Title    Text         `yaml:"title"`
	Problem  Text         `yaml:"problem"`
	Fix      Text         `yaml:"fix"`
	Action   *LinkText    `yaml:"action"`
}

// CityProfile is the localized bundle shown on the planner results step.
type CityProfile struct {
	City     CityKey    `json:"city"`
	CityName string     `json:"cityName"`
	Lang     Lang       `json:"lang"`
	Areas    []Area     `json:"areas"`
	Pitfalls []Pitfall  `json:"pitfalls"`
	Risks    []RiskCard `json:"risks"`
	Transit  []Link     `json:"transit"`
}

type Link struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

type Area struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	SearchURL   string `json:"searchUrl"`
}

type Pitfall struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type RiskCard struct {
	ID      string `json:"id"`
	Icon    string `json:"icon"`
	Title   string `json:"title"`
	Problem string `json:"problem"`
	Fix     string `json:"fix"`
	Action  *Link  `json:"action,omitempty"`
	Score   int    `json:"score"`
}
