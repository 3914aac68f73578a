package jwttoken

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"bloodlink/internal/eligibility"
	"bloodlink/pkg/domain"
	dErrors "bloodlink/pkg/domain-errors"
	"bloodlink/pkg/requestcontext"
)

// Claims carries the caller profile the matching engine needs: the subject,
// its role, and the donor fields used for the current-user record.
type Claims struct {
	Role         string `json:"role,omitempty"`
	BloodGroup   string `json:"blood_group,omitempty"`
	LastDonation string `json:"last_donation,omitempty"`
	Location     string `json:"location,omitempty"`
	jwt.RegisteredClaims
}

// JWTService signs and validates HS256 bearer tokens.
type JWTService struct {
	signingKey []byte
	issuer     string
	audience   string
}

func NewJWTService(signingKey string, issuer string, audience string) *JWTService {
	return &JWTService{
		signingKey: []byte(signingKey),
		issuer:     issuer,
		audience:   audience,
	}
}

// GenerateToken issues a token for identity. Used by local tooling and tests;
// production tokens come from the identity provider with the same claims.
func (s *JWTService) GenerateToken(identity requestcontext.Identity, now time.Time, expiresIn time.Duration) (string, error) {
	claims := Claims{
		Role:       identity.Role.String(),
		BloodGroup: identity.BloodGroup,
		Location:   identity.Location,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity.UserID,
			ExpiresAt: jwt.NewNumericDate(now.Add(expiresIn)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    s.issuer,
			Audience:  []string{s.audience},
			ID:        uuid.NewString(),
		},
	}
	if identity.LastDonation != nil {
		claims.LastDonation = identity.LastDonation.UTC().Format(time.RFC3339)
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.signingKey)
	if err != nil {
		return "", err
	}
	return signed, nil
}

func (s *JWTService) ValidateToken(tokenString string) (*Claims, error) {
	opts := []jwt.ParserOption{jwt.WithIssuer(s.issuer), jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if s.audience != "" {
		opts = append(opts, jwt.WithAudience(s.audience))
	}
	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenUnverifiable
		}
		return s.signingKey, nil
	}, opts...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, dErrors.New(dErrors.CodeUnauthorized, "token has expired")
		}
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid token")
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid token claims")
	}
	if claims.Subject == "" {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "token has no subject")
	}
	return claims, nil
}

// ValidateIdentity validates the token and maps its claims onto a request identity.
// An unparseable last_donation claim is treated as never donated.
func (s *JWTService) ValidateIdentity(tokenString string) (requestcontext.Identity, error) {
	claims, err := s.ValidateToken(tokenString)
	if err != nil {
		return requestcontext.Identity{}, err
	}
	return requestcontext.Identity{
		UserID:       claims.Subject,
		Role:         domain.Role(claims.Role),
		BloodGroup:   claims.BloodGroup,
		LastDonation: eligibility.ParseLastDonation(claims.LastDonation),
		Location:     claims.Location,
	}, nil
}
