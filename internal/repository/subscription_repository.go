package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/buscaaquibdc/marketplace-api/internal/model"
)

// SubscriptionRepo provides access to the `subscriptions` table, the
// gateway-facing history of plan periods.
type SubscriptionRepo struct{ DB *sql.DB }

func NewSubscriptionRepo(db *sql.DB) *SubscriptionRepo { return &SubscriptionRepo{DB: db} }

const subscriptionColumns = `id,user_id,plan,status,gateway_id,period_start,period_end,
	created_at,updated_at`

func scanSubscription(scan func(dest ...any) error) (model.Subscription, error) {
	var s model.Subscription
	err := scan(&s.ID, &s.UserID, &s.Plan, &s.Status, &s.GatewayID,
		&s.PeriodStart, &s.PeriodEnd, &s.CreatedAt, &s.UpdatedAt)
	return s, err
}

// Create records a new subscription period and returns its id.
func (r *SubscriptionRepo) Create(ctx context.Context, s *model.Subscription) (uint64, error) {
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO subscriptions (user_id, plan, status, gateway_id, period_start, period_end)
		 VALUES (?,?,?,?,?,?)`,
		s.UserID, s.Plan, s.Status, s.GatewayID, s.PeriodStart, s.PeriodEnd)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByID fetches a subscription. Returns ErrNotFound for unknown ids.
func (r *SubscriptionRepo) GetByID(ctx context.Context, id uint64) (model.Subscription, error) {
	s, err := scanSubscription(r.DB.QueryRowContext(ctx,
		"SELECT "+subscriptionColumns+" FROM subscriptions WHERE id=? LIMIT 1", id).Scan)
	if err == sql.ErrNoRows {
		return model.Subscription{}, ErrNotFound
	}
	return s, err
}

// ActiveForUser returns the user's most recent ACTIVE subscription.
func (r *SubscriptionRepo) ActiveForUser(ctx context.Context, userID uint64) (model.Subscription, error) {
	s, err := scanSubscription(r.DB.QueryRowContext(ctx,
		`SELECT `+subscriptionColumns+` FROM subscriptions
		 WHERE user_id=? AND status=? ORDER BY period_start DESC LIMIT 1`,
		userID, model.SubscriptionActive).Scan)
	if err == sql.ErrNoRows {
		return model.Subscription{}, ErrNotFound
	}
	return s, err
}

// Cancel flips an ACTIVE subscription to CANCELLED for its owner. Access
// continues until period_end, which is returned as validUntil. Unknown ids
// (or someone else's subscription) return ErrNotFound; an already
// cancelled one returns ErrConflict.
func (r *SubscriptionRepo) Cancel(ctx context.Context, id, userID uint64) (time.Time, error) {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE subscriptions SET status=?, updated_at=UTC_TIMESTAMP()
		 WHERE id=? AND user_id=? AND status=?`,
		model.SubscriptionCancelled, id, userID, model.SubscriptionActive)
	if err != nil {
		return time.Time{}, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		var status string
		err := r.DB.QueryRowContext(ctx,
			"SELECT status FROM subscriptions WHERE id=? AND user_id=?", id, userID).Scan(&status)
		if err == sql.ErrNoRows {
			return time.Time{}, ErrNotFound
		}
		if err != nil {
			return time.Time{}, err
		}
		return time.Time{}, ErrConflict
	}
	var periodEnd time.Time
	if err := r.DB.QueryRowContext(ctx,
		"SELECT period_end FROM subscriptions WHERE id=?", id).Scan(&periodEnd); err != nil {
		return time.Time{}, err
	}
	return periodEnd, nil
}
