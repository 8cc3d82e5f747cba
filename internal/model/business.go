package model

import "time"

// BusinessCategories is the closed set of storefront categories accepted by
// the API. Requests carrying a category outside this set are rejected with
// a 400 before anything is written.
var BusinessCategories = map[string]bool{
	"alimentacao":  true,
	"automotivo":   true,
	"beleza":       true,
	"construcao":   true,
	"educacao":     true,
	"eletronicos":  true,
	"imoveis":      true,
	"moda":         true,
	"pets":         true,
	"saude":        true,
	"servicos":     true,
	"tecnologia":   true,
	"transporte":   true,
	"outros":       true,
}

// Business mirrors the `businesses` table, the single canonical storefront
// record. Categories are stored as a comma-joined set of the closed enum
// above. Approval by an admin sets IsVerified as a side effect.
type Business struct {
	ID               uint64     // businesses.id
	UserID           uint64     // businesses.user_id
	BusinessName     string     // businesses.business_name
	ContactName      string     // businesses.contact_name
	Email            string     // businesses.email
	Phone            string     // businesses.phone
	Whatsapp         string     // businesses.whatsapp
	Categories       []string   // businesses.categories (comma-joined set)
	Description      string     // businesses.description
	Address          string     // businesses.address
	City             string     // businesses.city
	State            string     // businesses.state
	ModerationStatus string     // businesses.moderation_status
	ModerationReason string     // businesses.moderation_reason
	ModeratedBy      *uint64    // businesses.moderated_by (nullable)
	ModeratedAt      *time.Time // businesses.moderated_at (nullable)
	IsVerified       bool       // businesses.is_verified
	CreatedAt        time.Time  // businesses.created_at
	UpdatedAt        time.Time  // businesses.updated_at
}
