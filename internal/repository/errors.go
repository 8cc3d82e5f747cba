// Package repository implements raw-SQL data access for the marketplace.
// Sentinel errors defined here let handlers translate failure modes into
// HTTP codes without inspecting driver errors: ErrNotFound -> 404,
// ErrConflict/ErrFreeAdCooldown/ErrCouponExhausted -> 409, ErrForbidden ->
// 403 and ErrQuotaExceeded -> 402 (plan limit).
package repository

import "errors"

// ErrNotFound is returned when the requested row does not exist. Admin
// moderation endpoints surface this as a 404 instead of silently
// succeeding on unknown ids.
var ErrNotFound = errors.New("not found")

// ErrForbidden is returned when the caller attempts an operation on a
// resource owned by someone else.
var ErrForbidden = errors.New("forbidden")

// ErrConflict is returned when an operation cannot proceed due to
// conflicting state, such as creating a coupon code that already exists.
var ErrConflict = errors.New("conflict")

// ErrEmailExists is returned by user creation when the email is taken.
var ErrEmailExists = errors.New("email already exists")

// ErrQuotaExceeded is returned when publishing an ad would exceed the
// owner's plan slot quota. Handlers map it to 402.
var ErrQuotaExceeded = errors.New("plan ad quota exceeded")

// ErrFreeAdCooldown is returned when a free-ad insert is refused because
// an active free ad already exists inside the 90-day window.
var ErrFreeAdCooldown = errors.New("free ad cooldown active")

// ErrCouponExhausted is returned when an atomic redemption finds the
// coupon inactive, expired or at its usage limit.
var ErrCouponExhausted = errors.New("coupon not redeemable")
