package planner

import (
	"sort"

	"github.com/atlasborder/site/internal/atlas"
)

// TopRisks is the number of risk cards shown on the results step.
const TopRisks = 3

// BuildProfile localizes a city bundle and picks the highest scoring risks for
// the given answers. multiCity is true when the match needed a host city.
func BuildProfile(b atlas.CityBundle, lang atlas.Lang, a atlas.Answers, multiCity bool) atlas.CityProfile {
	p := atlas.CityProfile{
		City:     b.Key,
		CityName: b.Name.In(lang),
		Lang:     lang,
		Areas:    make([]atlas.Area, 0, len(b.Areas)),
		Pitfalls: make([]atlas.Pitfall, 0, len(b.Pitfalls)),
		Transit:  make([]atlas.Link, 0, len(b.Transit)),
	}

	// Search queries always use the English names; only the locale changes.
	for _, area := range b.Areas {
		p.Areas = append(p.Areas, atlas.Area{
			Name:        area.Name.In(lang),
			Description: area.Body.In(lang),
			SearchURL:   HotelSearchURL(area.Name.EN, b.Name.EN, lang),
		})
	}
	for _, pf := range b.Pitfalls {
		p.Pitfalls = append(p.Pitfalls, atlas.Pitfall{
			Title:       pf.Title.In(lang),
			Description: pf.Body.In(lang),
		})
	}
	for _, l := range b.Transit {
		p.Transit = append(p.Transit, localizeLink(l, lang))
	}
	p.Risks = RankRisks(b.Risks, lang, a, multiCity, TopRisks)
	return p
}

// RankRisks scores every candidate and returns the top n by descending score.
// Equal scores keep their authored order.
func RankRisks(cands []atlas.RiskCandidate, lang atlas.Lang, a atlas.Answers, multiCity bool, n int) []atlas.RiskCard {
	cards := make([]atlas.RiskCard, 0, len(cands))
	for _, c := range cands {
		card := atlas.RiskCard{
			ID:      c.ID,
			Icon:    c.Icon,
			Title:   c.Title.In(lang),
			Problem: c.Problem.In(lang),
			Fix:     c.Fix.In(lang),
			Score:   ScoreRisk(c, a, multiCity),
		}
		if c.Action != nil {
			l := localizeLink(*c.Action, lang)
			card.Action = &l
		}
		cards = append(cards, card)
	}

	sort.SliceStable(cards, func(i, j int) bool { return cards[i].Score > cards[j].Score })
	if len(cards) > n {
		cards = cards[:n]
	}
	return cards
}

// ScoreRisk applies the additive rules for the candidate's category on top of
// its base score.
func ScoreRisk(c atlas.RiskCandidate, a atlas.Answers, multiCity bool) int {
	score := c.Base
	switch c.Category {
	case atlas.RiskStay:
		switch a.BudgetID {
		case atlas.BudgetLow:
			score += 3
		case atlas.BudgetMid:
			score++
		}
		switch a.AccommodationID {
		case atlas.StayAirbnb:
			score += 2
		case atlas.StayHostel:
			score++
		}
	case atlas.RiskTransport:
		if multiCity {
			score += 2
		}
		if a.AccommodationID == atlas.StayFriends {
			score++
		}
	case atlas.RiskCost:
		switch a.BudgetID {
		case atlas.BudgetLow:
			score += 2
		case atlas.BudgetMid:
			score++
		}
	case atlas.RiskHealth:
		if a.BudgetID == atlas.BudgetLow {
			score++
		}
	}
	return score
}

func localizeLink(l atlas.LinkText, lang atlas.Lang) atlas.Link {
	return atlas.Link{Label: l.Label.In(lang), URL: l.URL}
}
