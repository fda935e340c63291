package domain

import (
	"fmt"
	"strings"
	"time"
)

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleEmployee Role = "employee"
)

// Principal is an authenticated identity. Email doubles as the
// requestedBy value on borrow requests.
type Principal struct {
	UID         string `json:"uid"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name,omitempty"`
	Role        Role   `json:"role"`
}

// RoleFor resolves the role by comparing the principal email with the single
// configured admin address, case-insensitively. There are no other tiers.
func RoleFor(email, adminEmail string) Role {
	if strings.EqualFold(email, adminEmail) {
		return RoleAdmin
	}
	return RoleEmployee
}

// SynthesizeEmail maps a short login username to a plus-addressed email on
// the provisioning account, e.g. base "ops24", domain "gmail.com",
// username "alice" → "ops24+alice@gmail.com". The domain is accepted with
// or without a leading "@". A provisioning convenience, not a security
// boundary.
func SynthesizeEmail(baseUser, domain, username string) string {
	if !strings.HasPrefix(domain, "@") {
		domain = "@" + domain
	}
	return fmt.Sprintf("%s+%s%s", baseUser, username, domain)
}

// ShortName recovers the human-chosen username from a plus-addressed email,
// falling back to the full address.
func ShortName(email string) string {
	local, _, ok := strings.Cut(email, "@")
	if !ok {
		return email
	}
	_, name, ok := strings.Cut(local, "+")
	if !ok || name == "" {
		return email
	}
	return name
}

// Session is a stored refresh-token record; TokenHash is a bcrypt hash,
// never the raw token.
type Session struct {
	ID        string    `json:"-" firestore:"-"`
	Email     string    `json:"email" firestore:"email"`
	TokenHash string    `json:"-" firestore:"tokenHash"`
	ExpiresAt time.Time `json:"expires_at" firestore:"expiresAt"`
	CreatedAt time.Time `json:"created_at" firestore:"createdAt,serverTimestamp"`
}
