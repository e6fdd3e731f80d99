package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	SubscriptionStarter  = "starter"
	SubscriptionPro      = "pro"
	SubscriptionBusiness = "business"
)

// ValidSubscription reports whether tier is one of the accepted plans.
func ValidSubscription(tier string) bool {
	switch tier {
	case SubscriptionStarter, SubscriptionPro, SubscriptionBusiness:
		return true
	}
	return false
}

// User is an account record. VerificationToken is present while the email is
// unverified; Token holds the active bearer token and is nil after logout.
type User struct {
	ID                uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Email             string    `gorm:"not null;size:255;uniqueIndex" json:"email"`
	Password          string    `gorm:"not null" json:"-"`
	Subscription      string    `gorm:"size:20;default:'starter'" json:"subscription"`
	AvatarURL         string    `gorm:"size:255" json:"avatarURL"`
	Verify            bool      `gorm:"default:false" json:"verify"`
	VerificationToken *string   `gorm:"size:64;index" json:"-"`
	Token             *string   `json:"-"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}
