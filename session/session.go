package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Company types carried in the token claims.
const (
	CompanyTypeBuyer    = "BUYER"
	CompanyTypeSupplier = "SUPPLIER"
)

var (
	// ErrTokenExpired signals the token's expiry timestamp is in the past.
	ErrTokenExpired = errors.New("session: token expired")
	// ErrMalformedToken signals the token could not be decoded at all.
	ErrMalformedToken = errors.New("session: malformed token")
)

// Session is the decoded identity derived from the bearer token. It is only
// ever exposed fully populated and unexpired; there is no partial state.
type Session struct {
	UserID      int
	FullName    string
	CompanyID   int
	CompanyType string
	IsAdmin     bool
	ExpiresAt   time.Time
}

// IsBuyer reports whether the session belongs to a buyer-type company.
func (s *Session) IsBuyer() bool { return s.CompanyType == CompanyTypeBuyer }

// IsSupplier reports whether the session belongs to a supplier-type company.
func (s *Session) IsSupplier() bool { return s.CompanyType == CompanyTypeSupplier }

// decodeToken extracts the claim set from a bearer token without verifying
// its signature. Verification happens server-side on every request; the
// client only needs the identity fields and the expiry.
func decodeToken(raw string, now time.Time) (*Session, error) {
	token, _, err := jwt.NewParser().ParseUnverified(raw, jwt.MapClaims{})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrMalformedToken
	}

	expiry, err := claims.GetExpirationTime()
	if err != nil || expiry == nil {
		return nil, fmt.Errorf("%w: missing exp claim", ErrMalformedToken)
	}
	if !expiry.After(now) {
		return nil, ErrTokenExpired
	}

	userID, ok := claimInt(claims, "sub")
	if !ok {
		return nil, fmt.Errorf("%w: missing sub claim", ErrMalformedToken)
	}
	companyID, ok := claimInt(claims, "company_id")
	if !ok {
		return nil, fmt.Errorf("%w: missing company_id claim", ErrMalformedToken)
	}

	return &Session{
		UserID:      userID,
		FullName:    claimString(claims, "full_name"),
		CompanyID:   companyID,
		CompanyType: claimString(claims, "company_type"),
		IsAdmin:     claimBool(claims, "is_admin"),
		ExpiresAt:   expiry.Time,
	}, nil
}

// claimInt reads a numeric claim. JSON numbers decode as float64.
func claimInt(claims jwt.MapClaims, key string) (int, bool) {
	value, ok := claims[key].(float64)
	if !ok {
		return 0, false
	}
	return int(value), true
}

func claimString(claims jwt.MapClaims, key string) string {
	value, _ := claims[key].(string)
	return value
}

func claimBool(claims jwt.MapClaims, key string) bool {
	value, _ := claims[key].(bool)
	return value
}
