// Package location matches candidate locations against a partial
// Division → District → Sub-district filter.
package location

import (
	"encoding/json"
	"strings"

	"bloodlink/internal/geo"
	dErrors "bloodlink/pkg/domain-errors"
)

// Separator joins the levels of a free-text location, most specific first.
const Separator = ", "

// Location is a candidate's position in the geography tree. Any level may be
// empty when the source record did not carry it.
type Location struct {
	SubDistrict string `json:"sub_district,omitempty"`
	District    string `json:"district,omitempty"`
	Division    string `json:"division,omitempty"`
}

// Parse normalizes a free-text "SubDistrict, District, Division" string.
// Missing trailing parts become empty levels; extra parts are ignored.
func Parse(s string) Location {
	if strings.TrimSpace(s) == "" {
		return Location{}
	}
	parts := strings.Split(s, Separator)
	at := func(i int) string {
		if i < len(parts) {
			return strings.TrimSpace(parts[i])
		}
		return ""
	}
	return Location{SubDistrict: at(0), District: at(1), Division: at(2)}
}

// String renders the free-text form, dropping empty trailing levels.
func (l Location) String() string {
	parts := []string{l.SubDistrict, l.District, l.Division}
	end := len(parts)
	for end > 0 && parts[end-1] == "" {
		end--
	}
	return strings.Join(parts[:end], Separator)
}

func (l Location) IsZero() bool {
	return l == Location{}
}

// UnmarshalJSON accepts either the structured object or the free-text string.
// Values of any other shape decode to the empty location.
func (l *Location) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*l = Parse(s)
		return nil
	}
	type plain Location
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		*l = Location{}
		return nil
	}
	*l = Location(p)
	return nil
}

// Filter constrains matching per level; an empty level places no constraint.
// Filters are values: the With* methods return a new filter and reset every
// level below the one changed.
type Filter struct {
	Division    string `json:"division,omitempty"`
	District    string `json:"district,omitempty"`
	SubDistrict string `json:"sub_district,omitempty"`
}

func (f Filter) IsEmpty() bool {
	return f.Division == "" && f.District == "" && f.SubDistrict == ""
}

func (f Filter) WithDivision(division string) Filter {
	return Filter{Division: division}
}

func (f Filter) WithDistrict(district string) Filter {
	return Filter{Division: f.Division, District: district}
}

func (f Filter) WithSubDistrict(subDistrict string) Filter {
	return Filter{Division: f.Division, District: f.District, SubDistrict: subDistrict}
}

// Validate checks that every set level belongs to the level above it in the
// reference tree. Matching does not call it; callers that want strict input
// can. Levels below an unset level are reported as inconsistent.
//
// Errors: CodeValidation naming the first inconsistent level.
func (f Filter) Validate() error {
	if f.IsEmpty() {
		return nil
	}
	if f.Division == "" {
		return dErrors.New(dErrors.CodeValidation, "district or sub-district set without division")
	}
	if !geo.HasDivision(f.Division) {
		return dErrors.New(dErrors.CodeValidation, "unknown division: "+f.Division)
	}
	if f.District == "" {
		if f.SubDistrict != "" {
			return dErrors.New(dErrors.CodeValidation, "sub-district set without district")
		}
		return nil
	}
	if !geo.HasDistrict(f.Division, f.District) {
		return dErrors.New(dErrors.CodeValidation, "district "+f.District+" is not in "+f.Division)
	}
	if f.SubDistrict != "" && !geo.HasSubDistrict(f.Division, f.District, f.SubDistrict) {
		return dErrors.New(dErrors.CodeValidation, "sub-district "+f.SubDistrict+" is not in "+f.District)
	}
	return nil
}

// Matches reports whether candidate satisfies every non-empty level of f,
// using case-insensitive substring containment per level. An empty filter
// matches everything; an empty candidate level fails any constraint on it.
func Matches(candidate Location, f Filter) bool {
	return contains(candidate.Division, f.Division) &&
		contains(candidate.District, f.District) &&
		contains(candidate.SubDistrict, f.SubDistrict)
}

// MatchesString is Matches over a free-text candidate location.
func MatchesString(candidate string, f Filter) bool {
	return Matches(Parse(candidate), f)
}

func contains(value, want string) bool {
	if want == "" {
		return true
	}
	return strings.Contains(strings.ToLower(value), strings.ToLower(want))
}
