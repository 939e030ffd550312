package domain

import (
	"strings"
	"time"
)

// Role represents the authorization level of an account.
type Role string

const (
	RoleExplorer Role = "EXPLORER"
	RoleAdvisor  Role = "ADVISOR"
	RoleAdmin    Role = "ADMIN"
)

// User is the domain model for program members. Explorers accumulate
// sign-offs, advisors grant them, admins run the post.
type User struct {
	ID           string
	Username     string
	DisplayName  string
	Email        *string
	Role         Role
	PasswordHash string
	ProfilePhoto *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Instructor reports whether the user may sign off skills.
func (u *User) Instructor() bool {
	return u.Role == RoleAdvisor
}

// GenerateUsername derives the conventional login name from a display
// name: first initial plus last name, lowercased. Single-word names are
// lowercased as-is.
func GenerateUsername(displayName string) string {
	parts := strings.Fields(strings.TrimSpace(displayName))
	if len(parts) < 2 {
		return strings.ToLower(displayName)
	}
	return strings.ToLower(parts[0][:1] + parts[len(parts)-1])
}
