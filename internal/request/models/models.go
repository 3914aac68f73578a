package models

import (
	"strings"
	"time"

	"bloodlink/internal/location"
	"bloodlink/pkg/domain"
)

const (
	defaultPatientName = "Anonymous Patient"
	defaultQuantity    = 1
)

// Request is the canonical blood request. BloodGroup holds the raw stored
// value and may be invalid; Urgency is always canonical.
type Request struct {
	ID          string               `json:"id"`
	PatientName string               `json:"patient_name"`
	BloodGroup  domain.BloodGroup    `json:"blood_group"`
	Quantity    int                  `json:"quantity"`
	Urgency     domain.Urgency       `json:"urgency"`
	Location    location.Location    `json:"location"`
	Hospital    string               `json:"hospital,omitempty"`
	Status      domain.RequestStatus `json:"status"`
	CreatedAt   time.Time            `json:"created_at"`
}

// StoredRequest is a request document as persisted. Older documents use
// bloodType and units instead of bloodGroup and quantity, the emergency/
// urgent/normal urgency vocabulary, and either a string or a map location.
type StoredRequest struct {
	ID          string    `firestore:"-"`
	PatientName string    `firestore:"patientName"`
	BloodGroup  string    `firestore:"bloodGroup"`
	BloodType   string    `firestore:"bloodType"`
	Quantity    int       `firestore:"quantity"`
	Units       int       `firestore:"units"`
	Urgency     string    `firestore:"urgency"`
	Location    any       `firestore:"location"`
	Hospital    string    `firestore:"hospital"`
	Status      string    `firestore:"status"`
	CreatedAt   time.Time `firestore:"createdAt"`
}

// FromStored normalizes a stored document. Missing quantities default to one
// unit and unknown urgencies to Moderate.
func FromStored(s StoredRequest) Request {
	group := s.BloodGroup
	if strings.TrimSpace(group) == "" {
		group = s.BloodType
	}
	quantity := s.Quantity
	if quantity <= 0 {
		quantity = s.Units
	}
	if quantity <= 0 {
		quantity = defaultQuantity
	}
	name := strings.TrimSpace(s.PatientName)
	if name == "" {
		name = defaultPatientName
	}
	return Request{
		ID:          s.ID,
		PatientName: name,
		BloodGroup:  bloodGroup(group),
		Quantity:    quantity,
		Urgency:     domain.NormalizeUrgency(s.Urgency),
		Location:    locationOf(s.Location),
		Hospital:    strings.TrimSpace(s.Hospital),
		Status:      domain.RequestStatus(strings.ToLower(strings.TrimSpace(s.Status))),
		CreatedAt:   s.CreatedAt,
	}
}

func locationOf(v any) location.Location {
	switch loc := v.(type) {
	case string:
		return location.Parse(loc)
	case map[string]any:
		str := func(key string) string {
			s, _ := loc[key].(string)
			return strings.TrimSpace(s)
		}
		return location.Location{
			SubDistrict: str("subDistrict"),
			District:    str("district"),
			Division:    str("division"),
		}
	default:
		return location.Location{}
	}
}

func bloodGroup(raw string) domain.BloodGroup {
	if g, err := domain.ParseBloodGroup(raw); err == nil {
		return g
	}
	return domain.BloodGroup(strings.TrimSpace(raw))
}

// Order selects how blood-group summaries are ordered.
type Order string

const (
	// OrderFirstSeen keeps groups in the order their first request appears.
	OrderFirstSeen Order = "first_seen"
	// OrderReference uses A+, A-, B+, B-, AB+, AB-, O+, O-.
	OrderReference Order = "reference"
)

// ParseOrder maps query input to an Order; empty input is OrderFirstSeen.
func ParseOrder(s string) (Order, bool) {
	switch Order(strings.ToLower(strings.TrimSpace(s))) {
	case "", OrderFirstSeen:
		return OrderFirstSeen, true
	case OrderReference:
		return OrderReference, true
	default:
		return "", false
	}
}

// Summary rolls up the requests for one blood group. Urgency is the most
// severe urgency among them.
type Summary struct {
	BloodGroup   domain.BloodGroup `json:"blood_group"`
	TotalUnits   int               `json:"total_units"`
	RequestCount int               `json:"request_count"`
	Urgency      domain.Urgency    `json:"urgency"`
}

// GroupResult carries the summaries plus the number of requests left out
// because their blood group is invalid.
type GroupResult struct {
	Summaries    []Summary `json:"summaries"`
	SkippedCount int       `json:"skipped_count"`
}

// Criteria narrows a request listing. Empty fields place no constraint.
type Criteria struct {
	Location   location.Filter
	BloodGroup domain.BloodGroup
	Urgency    domain.Urgency
}
