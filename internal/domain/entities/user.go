package entities

import (
	"slices"
	"time"

	"revamp/internal/domain"
)

// User is a student profile keyed by the identity-service UID.
type User struct {
	UID                string
	Email              string
	Name               string
	College            string
	Year               int
	PrimaryDomain      string
	Domains            []string
	Points             int
	Tier               domain.Tier
	Badges             []string
	Streak             int
	LastActiveAt       time.Time
	Role               string
	VerificationStatus string
	CollegeIDURL       string
	StudentIDNumber    string
	PhotoURL           string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

func (u *User) IsAdmin() bool {
	return u.Role == domain.RoleAdmin
}

func (u *User) HasBadge(badge string) bool {
	return slices.Contains(u.Badges, badge)
}

// ValidateDomains checks that 1 to 3 domains are selected and the primary
// domain is one of them.
func ValidateDomains(primary string, domains []string) error {
	if len(domains) < 1 || len(domains) > 3 {
		return domain.ErrInvalidDomains
	}
	if !slices.Contains(domains, primary) {
		return domain.ErrInvalidDomains
	}
	return nil
}
