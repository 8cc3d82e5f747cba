package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/buscaaquibdc/marketplace-api/internal/model"
	"github.com/buscaaquibdc/marketplace-api/internal/utils"
)

// UserRepo provides access to the `users` table.
type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

const userColumns = `id,name,email,password_hash,phone,whatsapp,role,plan,
	plan_started_at,plan_expires_at,free_ad_used,last_free_ad_at,
	is_verified,verified_reason,verified_at,is_blocked,created_at,updated_at`

// Create inserts a user on the FREE plan and returns its ID.
func (r *UserRepo) Create(ctx context.Context, name, email, password, phone, whatsapp, role, plan string, cost int) (uint64, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (name, email, password_hash, phone, whatsapp, role, plan) VALUES (?,?,?,?,?,?,?)",
		name, email, hash, phone, whatsapp, role, plan)
	if err != nil {
		// 1062 = duplicate key on the unique email index
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return 0, ErrEmailExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

func (r *UserRepo) scanRow(row *sql.Row) (model.User, error) {
	var (
		u              model.User
		planStarted    sql.NullTime
		planExpires    sql.NullTime
		lastFreeAd     sql.NullTime
		verifiedReason sql.NullString
		verifiedAt     sql.NullTime
	)
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Phone, &u.Whatsapp,
		&u.Role, &u.Plan, &planStarted, &planExpires, &u.FreeAdUsed, &lastFreeAd,
		&u.IsVerified, &verifiedReason, &verifiedAt, &u.IsBlocked, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return model.User{}, err
	}
	if planStarted.Valid {
		t := planStarted.Time
		u.PlanStartedAt = &t
	}
	if planExpires.Valid {
		t := planExpires.Time
		u.PlanExpiresAt = &t
	}
	if lastFreeAd.Valid {
		t := lastFreeAd.Time
		u.LastFreeAdAt = &t
	}
	if verifiedReason.Valid {
		u.VerifiedReason = verifiedReason.String
	}
	if verifiedAt.Valid {
		t := verifiedAt.Time
		u.VerifiedAt = &t
	}
	return u, nil
}

// GetByEmail fetches a user by normalized email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	return r.scanRow(r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE email=? LIMIT 1", email))
}

// GetByID fetches a user by id. Returns ErrNotFound for unknown ids.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	u, err := r.scanRow(r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE id=? LIMIT 1", id))
	if err == sql.ErrNoRows {
		return model.User{}, ErrNotFound
	}
	return u, err
}

// UpdateProfile writes the mutable contact fields of a profile.
// Last write wins; the outbox consumer replays this exact statement when a
// live write fails.
func (r *UserRepo) UpdateProfile(ctx context.Context, id uint64, name, phone, whatsapp string) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE users SET name=?, phone=?, whatsapp=?, updated_at=UTC_TIMESTAMP() WHERE id=?",
		name, phone, whatsapp, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// RowsAffected is 0 both for unknown ids and no-op writes; only the
		// former is an error worth surfacing.
		var exists bool
		if err := r.DB.QueryRowContext(ctx, "SELECT 1 FROM users WHERE id=?", id).Scan(&exists); err == sql.ErrNoRows {
			return ErrNotFound
		}
	}
	return nil
}

// SetPlan switches the user's plan and period. Upgrading to a paid plan
// grants the verified badge with a recorded reason and timestamp; the badge
// is one-way, so downgrades leave is_verified untouched.
func (r *UserRepo) SetPlan(ctx context.Context, id uint64, plan string, start, end time.Time, verify bool, verifyReason string) error {
	var (
		res sql.Result
		err error
	)
	if verify {
		res, err = r.DB.ExecContext(ctx,
			`UPDATE users SET plan=?, plan_started_at=?, plan_expires_at=?,
				is_verified=1, verified_reason=?, verified_at=UTC_TIMESTAMP(),
				updated_at=UTC_TIMESTAMP()
			 WHERE id=?`,
			plan, start, end, verifyReason, id)
	} else {
		res, err = r.DB.ExecContext(ctx,
			`UPDATE users SET plan=?, plan_started_at=?, plan_expires_at=?,
				updated_at=UTC_TIMESTAMP()
			 WHERE id=?`,
			plan, start, end, id)
	}
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		var exists bool
		if err := r.DB.QueryRowContext(ctx, "SELECT 1 FROM users WHERE id=?", id).Scan(&exists); err == sql.ErrNoRows {
			return ErrNotFound
		}
	}
	return nil
}
