package models

import (
	"strings"
	"time"

	"bloodlink/internal/eligibility"
	"bloodlink/internal/location"
	"bloodlink/pkg/domain"
)

// SourceKind tags where a donor record came from.
type SourceKind string

const (
	SourceQuick       SourceKind = "quick"
	SourceRegistered  SourceKind = "registered"
	SourceCurrentUser SourceKind = "current_user"
)

const anonymousName = "Anonymous"

// Donor is the canonical donor record every source is normalized into.
// BloodGroup holds the raw stored value; it may be invalid and callers check
// BloodGroup.IsValid before trusting it.
type Donor struct {
	ID           string            `json:"id"`
	Name         string            `json:"name"`
	BloodGroup   domain.BloodGroup `json:"blood_group"`
	Location     location.Location `json:"location"`
	LastDonation *time.Time        `json:"last_donation,omitempty"`
	ContactPhone string            `json:"contact_phone,omitempty"`
	Email        string            `json:"email,omitempty"`
	Source       SourceKind        `json:"source"`
}

// QuickUser is a donor who registered through the quick form with only a
// name, blood group, phone and free-text location.
type QuickUser struct {
	ID           string    `firestore:"-" json:"id"`
	Name         string    `firestore:"name" json:"name"`
	BloodGroup   string    `firestore:"bloodGroup" json:"blood_group"`
	Phone        string    `firestore:"phone" json:"phone"`
	Location     string    `firestore:"location" json:"location"`
	RegisteredAt time.Time `firestore:"registeredAt" json:"registered_at"`
}

// RegisteredUser is a full account profile. LastDonation is left untyped
// because stored documents carry it as a timestamp, a date string, or a map.
type RegisteredUser struct {
	ID             string    `firestore:"-" json:"id"`
	FullName       string    `firestore:"fullName" json:"full_name"`
	Role           string    `firestore:"role" json:"role"`
	BloodGroup     string    `firestore:"bloodGroup" json:"blood_group"`
	Location       string    `firestore:"location" json:"location"`
	LastDonation   any       `firestore:"lastDonation" json:"last_donation"`
	WhatsappNumber string    `firestore:"whatsappNumber" json:"whatsapp_number"`
	Phone          string    `firestore:"phone" json:"phone"`
	Email          string    `firestore:"email" json:"email"`
	CreatedAt      time.Time `firestore:"createdAt" json:"created_at"`
}

// CurrentUser is the authenticated caller as seen by donor search.
type CurrentUser struct {
	ID           string
	Name         string
	Role         domain.Role
	BloodGroup   string
	LastDonation *time.Time
	Location     string
	Phone        string
	Email        string
}

// Criteria narrows a donor search. An empty BloodGroup accepts every group.
type Criteria struct {
	BloodGroup domain.BloodGroup
	Location   location.Filter
}

// Result is the output of aggregation. SkippedCount counts records whose
// stored blood group is not one of the eight valid groups.
type Result struct {
	Donors       []Donor `json:"donors"`
	SkippedCount int     `json:"skipped_count"`
}

// SearchResult adds the sources that could not be read to an aggregation.
type SearchResult struct {
	Result
	FailedSources []SourceKind `json:"failed_sources,omitempty"`
}

// FromQuickUser normalizes a quick registration. Quick donors carry no
// donation history.
func FromQuickUser(u QuickUser) Donor {
	return Donor{
		ID:           u.ID,
		Name:         nameOrAnonymous(u.Name),
		BloodGroup:   bloodGroup(u.BloodGroup),
		Location:     location.Parse(u.Location),
		ContactPhone: strings.TrimSpace(u.Phone),
		Source:       SourceQuick,
	}
}

// FromRegisteredUser normalizes an account profile. The WhatsApp number is
// preferred over the plain phone number as the contact.
func FromRegisteredUser(u RegisteredUser) Donor {
	phone := strings.TrimSpace(u.WhatsappNumber)
	if phone == "" {
		phone = strings.TrimSpace(u.Phone)
	}
	return Donor{
		ID:           u.ID,
		Name:         nameOrAnonymous(u.FullName),
		BloodGroup:   bloodGroup(u.BloodGroup),
		Location:     location.Parse(u.Location),
		LastDonation: eligibility.ParseLastDonation(u.LastDonation),
		ContactPhone: phone,
		Email:        strings.TrimSpace(u.Email),
		Source:       SourceRegistered,
	}
}

// FromCurrentUser builds the synthetic record for the signed-in donor.
func FromCurrentUser(u CurrentUser) Donor {
	return Donor{
		ID:           u.ID,
		Name:         nameOrAnonymous(u.Name),
		BloodGroup:   bloodGroup(u.BloodGroup),
		Location:     location.Parse(u.Location),
		LastDonation: u.LastDonation,
		ContactPhone: u.Phone,
		Email:        u.Email,
		Source:       SourceCurrentUser,
	}
}

// CurrentUserFromProfile overlays a stored profile onto the token identity.
// Token fields win when set, so a fresh token is never overridden by a stale
// document.
func CurrentUserFromProfile(base CurrentUser, profile RegisteredUser) CurrentUser {
	out := base
	if out.Name == "" {
		out.Name = profile.FullName
	}
	if out.Role == "" {
		out.Role = domain.Role(profile.Role)
	}
	if out.BloodGroup == "" {
		out.BloodGroup = profile.BloodGroup
	}
	if out.LastDonation == nil {
		out.LastDonation = eligibility.ParseLastDonation(profile.LastDonation)
	}
	if out.Location == "" {
		out.Location = profile.Location
	}
	if out.Phone == "" {
		out.Phone = FromRegisteredUser(profile).ContactPhone
	}
	if out.Email == "" {
		out.Email = profile.Email
	}
	return out
}

func nameOrAnonymous(name string) string {
	if n := strings.TrimSpace(name); n != "" {
		return n
	}
	return anonymousName
}

// bloodGroup keeps invalid values verbatim so aggregation can count them.
func bloodGroup(raw string) domain.BloodGroup {
	if g, err := domain.ParseBloodGroup(raw); err == nil {
		return g
	}
	return domain.BloodGroup(strings.TrimSpace(raw))
}
