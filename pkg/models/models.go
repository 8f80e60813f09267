package models

import "time"

// EmailCampaign represents a creator's email campaign draft
type EmailCampaign struct {
	ID          string     `json:"id"`
	CreatorID   string     `json:"creator_id"`
	Subject     string     `json:"subject"`
	Body        string     `json:"body"`
	Segment     string     `json:"segment"`
	Status      string     `json:"status"` // draft, queued, sent
	ScheduledAt *time.Time `json:"scheduled_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// InviteCode represents a limited-use invite code
type InviteCode struct {
	ID        string     `json:"id"`
	CreatorID string     `json:"creator_id"`
	Code      string     `json:"code"`
	MaxUses   int        `json:"max_uses"` // 0 means unlimited
	UseCount  int        `json:"use_count"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// Promotion represents a time-boxed promotion
type Promotion struct {
	ID              string    `json:"id"`
	CreatorID       string    `json:"creator_id"`
	Title           string    `json:"title"`
	DiscountPercent int       `json:"discount_percent"`
	StartsAt        time.Time `json:"starts_at"`
	EndsAt          time.Time `json:"ends_at"`
	IsActive        bool      `json:"is_active"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Fan represents a fan record in the creator's CRM
type Fan struct {
	ID          string    `json:"id"`
	CreatorID   string    `json:"creator_id"`
	DisplayName string    `json:"display_name"`
	Email       string    `json:"email"`
	Platform    string    `json:"platform"`
	Tags        []string  `json:"tags"`
	Notes       string    `json:"notes"`
	FirstSeen   time.Time `json:"first_seen"`
	LastSeen    time.Time `json:"last_seen"`
}

// CalendarEntry represents a planned content item on the calendar
type CalendarEntry struct {
	ID           string    `json:"id"`
	CreatorID    string    `json:"creator_id"`
	Title        string    `json:"title"`
	Channel      string    `json:"channel"`
	Status       string    `json:"status"` // planned, drafted, published
	Notes        string    `json:"notes"`
	ScheduledFor time.Time `json:"scheduled_for"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
