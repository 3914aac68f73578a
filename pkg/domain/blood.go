package domain

import (
	"strings"

	dErrors "bloodlink/pkg/domain-errors"
)

// BloodGroup is an ABO/Rh blood group.
// Invariant: the value is one of the eight groups in AllBloodGroups.
//
// Usage: construct via ParseBloodGroup at trust boundaries; direct casting
// bypasses validation and is only safe for constants.
type BloodGroup string

const (
	BloodGroupAPos  BloodGroup = "A+"
	BloodGroupANeg  BloodGroup = "A-"
	BloodGroupBPos  BloodGroup = "B+"
	BloodGroupBNeg  BloodGroup = "B-"
	BloodGroupABPos BloodGroup = "AB+"
	BloodGroupABNeg BloodGroup = "AB-"
	BloodGroupOPos  BloodGroup = "O+"
	BloodGroupONeg  BloodGroup = "O-"
)

// AllBloodGroups lists the valid groups in the order the selectors display them.
var AllBloodGroups = []BloodGroup{
	BloodGroupAPos, BloodGroupANeg,
	BloodGroupBPos, BloodGroupBNeg,
	BloodGroupABPos, BloodGroupABNeg,
	BloodGroupOPos, BloodGroupONeg,
}

var bloodGroupRank = func() map[BloodGroup]int {
	m := make(map[BloodGroup]int, len(AllBloodGroups))
	for i, g := range AllBloodGroups {
		m[g] = i
	}
	return m
}()

// ParseBloodGroup validates external input. Surrounding whitespace is
// ignored and the Unicode minus sign is accepted for the negative groups.
//
// Errors: CodeInvalidInput when the value is empty or not one of the eight groups.
func ParseBloodGroup(s string) (BloodGroup, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, "−", "-")
	if s == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "blood group cannot be empty")
	}
	g := BloodGroup(s)
	if !g.IsValid() {
		return "", dErrors.New(dErrors.CodeInvalidInput, "invalid blood group: "+s)
	}
	return g, nil
}

// ParseBloodGroupQuery is ParseBloodGroup for URL query values, where an
// unescaped "+" arrives as a space: "A " and "AB " read as A+ and AB+.
func ParseBloodGroupQuery(s string) (BloodGroup, error) {
	g, err := ParseBloodGroup(s)
	if err == nil || !strings.HasSuffix(s, " ") {
		return g, err
	}
	if plus, plusErr := ParseBloodGroup(strings.TrimSpace(s) + "+"); plusErr == nil {
		return plus, nil
	}
	return "", err
}

// IsValid checks if the blood group is one of the supported values.
func (g BloodGroup) IsValid() bool {
	_, ok := bloodGroupRank[g]
	return ok
}

// Rank is the position of the group in AllBloodGroups, or -1 if invalid.
func (g BloodGroup) Rank() int {
	if r, ok := bloodGroupRank[g]; ok {
		return r
	}
	return -1
}

func (g BloodGroup) String() string {
	return string(g)
}

// Urgency is the canonical urgency of a blood request.
//
// Two vocabularies exist in stored data: Critical/Urgent/Moderate (also
// written Normal) and emergency/urgent/normal. Critical is the canonical
// name for emergency, Moderate for normal.
type Urgency string

const (
	UrgencyCritical Urgency = "Critical"
	UrgencyUrgent   Urgency = "Urgent"
	UrgencyModerate Urgency = "Moderate"
)

var urgencyAliases = map[string]Urgency{
	"critical":  UrgencyCritical,
	"emergency": UrgencyCritical,
	"urgent":    UrgencyUrgent,
	"moderate":  UrgencyModerate,
	"normal":    UrgencyModerate,
}

// ParseUrgency maps either vocabulary, case-insensitively, onto the canonical one.
//
// Errors: CodeInvalidInput for empty or unknown values.
func ParseUrgency(s string) (Urgency, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if key == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "urgency cannot be empty")
	}
	u, ok := urgencyAliases[key]
	if !ok {
		return "", dErrors.New(dErrors.CodeInvalidInput, "invalid urgency: "+s)
	}
	return u, nil
}

// NormalizeUrgency is ParseUrgency for stored records: anything that does not
// parse is treated as Moderate, the level requests default to when created.
func NormalizeUrgency(s string) Urgency {
	u, err := ParseUrgency(s)
	if err != nil {
		return UrgencyModerate
	}
	return u
}

// Severity orders urgencies; higher is more severe.
func (u Urgency) Severity() int {
	switch u {
	case UrgencyCritical:
		return 2
	case UrgencyUrgent:
		return 1
	default:
		return 0
	}
}

func (u Urgency) IsValid() bool {
	return u == UrgencyCritical || u == UrgencyUrgent || u == UrgencyModerate
}

func (u Urgency) String() string {
	return string(u)
}

// RequestStatus is the lifecycle state of a blood request.
type RequestStatus string

const (
	RequestStatusActive    RequestStatus = "active"
	RequestStatusPending   RequestStatus = "pending"
	RequestStatusFulfilled RequestStatus = "fulfilled"
	RequestStatusCompleted RequestStatus = "completed"
	RequestStatusCancelled RequestStatus = "cancelled"
)

// Role is the account role of a registered user.
type Role string

const (
	RoleDonor     Role = "donor"
	RoleRecipient Role = "recipient"
	RoleHospital  Role = "hospital"
	RoleAdmin     Role = "admin"
)

func (r Role) String() string {
	return string(r)
}
