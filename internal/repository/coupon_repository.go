package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/buscaaquibdc/marketplace-api/internal/model"
)

// CouponRepo provides access to the `coupons` table. Codes are compared
// with BINARY so lookups stay case-sensitive regardless of the table
// collation, and the code column is never updated after creation.
type CouponRepo struct{ DB *sql.DB }

func NewCouponRepo(db *sql.DB) *CouponRepo { return &CouponRepo{DB: db} }

const couponColumns = `code,discount_type,discount_value,usage_limit,usage_count,
	valid_until,plan_ids,is_active,created_at,updated_at`

func scanCoupon(scan func(dest ...any) error) (model.Coupon, error) {
	var (
		c       model.Coupon
		planIDs string
	)
	err := scan(&c.Code, &c.DiscountType, &c.DiscountValue, &c.UsageLimit, &c.UsageCount,
		&c.ValidUntil, &planIDs, &c.IsActive, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return model.Coupon{}, err
	}
	if planIDs != "" {
		c.PlanIDs = strings.Split(planIDs, ",")
	}
	return c, nil
}

// Create inserts a coupon. Duplicate codes return ErrConflict.
func (r *CouponRepo) Create(ctx context.Context, c *model.Coupon) error {
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO coupons (code, discount_type, discount_value, usage_limit,
			valid_until, plan_ids, is_active)
		 VALUES (?,?,?,?,?,?,?)`,
		c.Code, c.DiscountType, c.DiscountValue, c.UsageLimit, c.ValidUntil,
		strings.Join(c.PlanIDs, ","), c.IsActive)
	if err != nil && strings.Contains(strings.ToLower(err.Error()), "1062") {
		return ErrConflict
	}
	return err
}

// GetByCode fetches a coupon by exact, case-sensitive code.
func (r *CouponRepo) GetByCode(ctx context.Context, code string) (model.Coupon, error) {
	c, err := scanCoupon(r.DB.QueryRowContext(ctx,
		"SELECT "+couponColumns+" FROM coupons WHERE BINARY code=? LIMIT 1", code).Scan)
	if err == sql.ErrNoRows {
		return model.Coupon{}, ErrNotFound
	}
	return c, err
}

// List returns all coupons for the admin panel, newest first. The
// "effectively active" state is derived by callers at read time, never
// stored.
func (r *CouponRepo) List(ctx context.Context) ([]model.Coupon, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+couponColumns+" FROM coupons ORDER BY created_at DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var cs []model.Coupon
	for rows.Next() {
		c, err := scanCoupon(rows.Scan)
		if err != nil {
			return nil, err
		}
		cs = append(cs, c)
	}
	return cs, rows.Err()
}

// Update edits a coupon's discount, validity, limits and plan restriction.
// The code itself is immutable; it only selects the row. Unknown codes
// return ErrNotFound.
func (r *CouponRepo) Update(ctx context.Context, code string, discountType string, discountValue, usageLimit uint64, validUntil time.Time, planIDs []string, isActive bool) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE coupons SET discount_type=?, discount_value=?, usage_limit=?,
			valid_until=?, plan_ids=?, is_active=?, updated_at=UTC_TIMESTAMP()
		 WHERE BINARY code=?`,
		discountType, discountValue, usageLimit, validUntil,
		strings.Join(planIDs, ","), isActive, code)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		var exists int
		if err := r.DB.QueryRowContext(ctx, "SELECT 1 FROM coupons WHERE BINARY code=?", code).Scan(&exists); err == sql.ErrNoRows {
			return ErrNotFound
		}
	}
	return nil
}

// Delete removes a coupon. Unknown codes return ErrNotFound.
func (r *CouponRepo) Delete(ctx context.Context, code string) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM coupons WHERE BINARY code=?", code)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// Redeem increments usage_count by exactly one, but only while the coupon
// is active, unexpired and below its usage limit. The guard is part of the
// UPDATE, so usage_count can never pass usage_limit no matter how many
// redemptions race; losers see zero affected rows and get
// ErrCouponExhausted (or ErrNotFound when the code does not exist).
// It returns the usage count after the increment.
func (r *CouponRepo) Redeem(ctx context.Context, code string) (uint64, error) {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE coupons SET usage_count = usage_count + 1, updated_at=UTC_TIMESTAMP()
		 WHERE BINARY code=? AND is_active=1
		   AND valid_until > UTC_TIMESTAMP()
		   AND usage_count < usage_limit`,
		code)
	if err != nil {
		return 0, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		var exists int
		if err := r.DB.QueryRowContext(ctx, "SELECT 1 FROM coupons WHERE BINARY code=?", code).Scan(&exists); err == sql.ErrNoRows {
			return 0, ErrNotFound
		}
		return 0, ErrCouponExhausted
	}
	var count uint64
	if err := r.DB.QueryRowContext(ctx,
		"SELECT usage_count FROM coupons WHERE BINARY code=?", code).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}
