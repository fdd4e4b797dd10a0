package weather

import (
	"regexp"
	"strings"
)

// LocationQuery is the structured form of free-text location input.
// It is one of ZipQuery, CityRegionQuery or GenericQuery.
type LocationQuery interface {
	// Text returns the query in a form suitable for logs and error messages.
	Text() string
	isLocationQuery()
}

// ZipQuery is a five-digit US postal code.
type ZipQuery struct {
	Code string `json:"code"`
}

// CityRegionQuery is "<city>, <XX>" where XX is a two-letter region code.
type CityRegionQuery struct {
	City       string `json:"city"`
	RegionCode string `json:"regionCode"`
}

// GenericQuery is any input that matched neither of the other shapes.
type GenericQuery struct {
	Raw string `json:"raw"`
}

func (q ZipQuery) Text() string        { return q.Code }
func (q CityRegionQuery) Text() string { return q.City + ", " + q.RegionCode }
func (q GenericQuery) Text() string    { return q.Raw }

func (ZipQuery) isLocationQuery()        {}
func (CityRegionQuery) isLocationQuery() {}
func (GenericQuery) isLocationQuery()    {}

var (
	zipPattern        = regexp.MustCompile(`^[0-9]{5}$`)
	cityRegionPattern = regexp.MustCompile(`^(.+?),\s?([A-Za-z]{2})$`)
)

// ParseQuery classifies free text. It never fails: anything that is not a zip
// code or "city, XX" becomes a GenericQuery, including the empty string.
func ParseQuery(input string) LocationQuery {
	text := strings.TrimSpace(input)

	if zipPattern.MatchString(text) {
		return ZipQuery{Code: text}
	}

	if m := cityRegionPattern.FindStringSubmatch(text); m != nil {
		if city := strings.TrimSpace(m[1]); city != "" {
			return CityRegionQuery{
				City:       city,
				RegionCode: strings.ToUpper(m[2]),
			}
		}
	}

	return GenericQuery{Raw: text}
}
