package planner

import (
	"net/url"

	"github.com/atlasborder/site/internal/atlas"
)

const hotelSearchBase = "https://www.booking.com/searchresults.html"

// HotelSearchURL builds a hotel search link for an area of a city. The link is
// only templated, never fetched.
func HotelSearchURL(area, city string, lang atlas.Lang) string {
	q := url.Values{}
	q.Set("ss", area+", "+city)
	q.Set("lang", lang.BookingLocale())
	return hotelSearchBase + "?" + q.Encode()
}
