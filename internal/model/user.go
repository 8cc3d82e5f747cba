package model

import "time"

// Roles recognised across the API. The JWT "role" claim carries one of
// these values and the RequireRole middleware enforces them.
const (
	RoleVisitor    = "VISITOR"
	RoleAdvertiser = "ADVERTISER"
	RoleAdmin      = "ADMIN"
)

// User mirrors the `users` table. Subscription-plan fields live directly on
// the user row so entitlement checks need a single read; the subscriptions
// table keeps the gateway-facing history.
//
// Fields:
//  ID             – primary key identifier.
//  Name           – display name shown on listings.
//  Email          – unique, lowercased email.
//  PasswordHash   – bcrypt hashed password.
//  Phone          – contact phone (optional).
//  Whatsapp       – WhatsApp number (optional, shown on listings).
//  Role           – VISITOR, ADVERTISER or ADMIN.
//  Plan           – current subscription plan name (see entitlement).
//  PlanStartedAt  – start of the current plan period (nullable).
//  PlanExpiresAt  – end of the current plan period (nullable).
//  FreeAdUsed     – whether the user has ever consumed a free ad.
//  LastFreeAdAt   – creation time of the most recent free ad (nullable).
//  IsVerified     – verified badge; granted on paid upgrade or business approval.
//  VerifiedReason – why the badge was granted.
//  VerifiedAt     – when the badge was granted (nullable).
//  IsBlocked      – blocked accounts cannot publish.
type User struct {
	ID             uint64     // users.id
	Name           string     // users.name
	Email          string     // users.email
	PasswordHash   string     // users.password_hash
	Phone          string     // users.phone
	Whatsapp       string     // users.whatsapp
	Role           string     // users.role
	Plan           string     // users.plan
	PlanStartedAt  *time.Time // users.plan_started_at (nullable)
	PlanExpiresAt  *time.Time // users.plan_expires_at (nullable)
	FreeAdUsed     bool       // users.free_ad_used
	LastFreeAdAt   *time.Time // users.last_free_ad_at (nullable)
	IsVerified     bool       // users.is_verified
	VerifiedReason string     // users.verified_reason
	VerifiedAt     *time.Time // users.verified_at (nullable)
	IsBlocked      bool       // users.is_blocked
	CreatedAt      time.Time  // users.created_at
	UpdatedAt      time.Time  // users.updated_at
}

// RefreshToken models a row in `refresh_tokens`. Only the SHA-256 hash of
// the raw token is stored; the raw value is returned to the client once.
type RefreshToken struct {
	ID        uint64     // refresh_tokens.id
	UserID    uint64     // refresh_tokens.user_id
	TokenHash string     // refresh_tokens.token_hash
	ExpiresAt time.Time  // refresh_tokens.expires_at
	RevokedAt *time.Time // refresh_tokens.revoked_at (nullable)
	CreatedAt time.Time  // refresh_tokens.created_at
}
