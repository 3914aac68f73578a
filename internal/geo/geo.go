// Package geo holds the Division → District → Sub-district reference tree
// used both for selecting a location and for filtering by one.
package geo

import "strings"

// Division is a level-1 node. Names are unique across divisions.
type Division struct {
	Name      string     `json:"name"`
	Districts []District `json:"districts"`
}

// District is a level-2 node. Names are unique within their division.
type District struct {
	Name         string   `json:"name"`
	SubDistricts []string `json:"sub_districts"`
}

// Tree returns a deep copy of the full hierarchy in display order.
func Tree() []Division {
	out := make([]Division, len(divisions))
	for i, d := range divisions {
		out[i] = d.clone()
	}
	return out
}

// Divisions lists division names in display order.
func Divisions() []string {
	names := make([]string, len(divisions))
	for i, d := range divisions {
		names[i] = d.Name
	}
	return names
}

// Districts lists the districts of division. ok is false for an unknown division.
func Districts(division string) (names []string, ok bool) {
	d, ok := findDivision(division)
	if !ok {
		return nil, false
	}
	names = make([]string, len(d.Districts))
	for i, dist := range d.Districts {
		names[i] = dist.Name
	}
	return names, true
}

// SubDistricts lists the sub-districts of district within division.
// ok is false when either level is unknown or the district is not in the division.
func SubDistricts(division, district string) (names []string, ok bool) {
	dist, ok := findDistrict(division, district)
	if !ok {
		return nil, false
	}
	return append([]string(nil), dist.SubDistricts...), true
}

// HasDivision reports whether division exists. Lookups ignore case.
func HasDivision(division string) bool {
	_, ok := findDivision(division)
	return ok
}

// HasDistrict reports whether district belongs to division.
func HasDistrict(division, district string) bool {
	_, ok := findDistrict(division, district)
	return ok
}

// HasSubDistrict reports whether subDistrict belongs to district within division.
func HasSubDistrict(division, district, subDistrict string) bool {
	dist, ok := findDistrict(division, district)
	if !ok {
		return false
	}
	for _, s := range dist.SubDistricts {
		if strings.EqualFold(s, subDistrict) {
			return true
		}
	}
	return false
}

func findDivision(name string) (Division, bool) {
	for _, d := range divisions {
		if strings.EqualFold(d.Name, name) {
			return d, true
		}
	}
	return Division{}, false
}

func findDistrict(division, district string) (District, bool) {
	d, ok := findDivision(division)
	if !ok {
		return District{}, false
	}
	for _, dist := range d.Districts {
		if strings.EqualFold(dist.Name, district) {
			return dist, true
		}
	}
	return District{}, false
}

func (d Division) clone() Division {
	out := Division{Name: d.Name, Districts: make([]District, len(d.Districts))}
	for i, dist := range d.Districts {
		out.Districts[i] = District{
			Name:         dist.Name,
			SubDistricts: append([]string(nil), dist.SubDistricts...),
		}
	}
	return out
}
