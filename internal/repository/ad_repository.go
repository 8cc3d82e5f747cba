package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/buscaaquibdc/marketplace-api/internal/entitlement"
	"github.com/buscaaquibdc/marketplace-api/internal/model"
)

// AdRepo provides access to the `ads` table. The invariants that need
// exactly-once accounting (one free ad per 90-day window, paid ads within
// the plan quota) are enforced by guarded INSERT statements so that two
// concurrent requests cannot both slip through a read-then-write gap.
type AdRepo struct{ DB *sql.DB }

func NewAdRepo(db *sql.DB) *AdRepo { return &AdRepo{DB: db} }

const adColumns = `id,user_id,title,description,price_cents,category,city,state,images,
	status,moderation_status,moderation_reason,moderated_by,moderated_at,
	is_free_ad,view_count,click_count,created_at,expires_at,updated_at`

func scanAd(scan func(dest ...any) error) (model.Ad, error) {
	var (
		a           model.Ad
		images      sql.NullString
		reason      sql.NullString
		moderatedBy sql.NullInt64
		moderatedAt sql.NullTime
		expiresAt   sql.NullTime
	)
	err := scan(&a.ID, &a.UserID, &a.Title, &a.Description, &a.PriceCents, &a.Category,
		&a.City, &a.State, &images, &a.Status, &a.ModerationStatus, &reason,
		&moderatedBy, &moderatedAt, &a.IsFreeAd, &a.ViewCount, &a.ClickCount,
		&a.CreatedAt, &expiresAt, &a.UpdatedAt)
	if err != nil {
		return model.Ad{}, err
	}
	if images.Valid && images.String != "" {
		_ = json.Unmarshal([]byte(images.String), &a.Images)
	}
	if reason.Valid {
		a.ModerationReason = reason.String
	}
	if moderatedBy.Valid {
		id := uint64(moderatedBy.Int64)
		a.ModeratedBy = &id
	}
	if moderatedAt.Valid {
		t := moderatedAt.Time
		a.ModeratedAt = &t
	}
	if expiresAt.Valid {
		t := expiresAt.Time
		a.ExpiresAt = &t
	}
	return a, nil
}

// GetByID fetches a single ad. Returns ErrNotFound for unknown ids.
func (r *AdRepo) GetByID(ctx context.Context, id uint64) (model.Ad, error) {
	a, err := scanAd(r.DB.QueryRowContext(ctx,
		"SELECT "+adColumns+" FROM ads WHERE id=? LIMIT 1", id).Scan)
	if err == sql.ErrNoRows {
		return model.Ad{}, ErrNotFound
	}
	return a, err
}

// GetVisible fetches a single ad through the public visibility predicate:
// active, approved and unexpired. Anything else — pending, rejected,
// paused, expired or unknown — comes back as ErrNotFound so guests cannot
// distinguish hidden content from absent content.
func (r *AdRepo) GetVisible(ctx context.Context, id uint64) (model.Ad, error) {
	a, err := scanAd(r.DB.QueryRowContext(ctx,
		"SELECT "+adColumns+` FROM ads
		 WHERE id=? AND status=? AND moderation_status=?
		   AND (expires_at IS NULL OR expires_at > UTC_TIMESTAMP())
		 LIMIT 1`,
		id, model.AdStatusActive, entitlement.ModerationApproved).Scan)
	if err == sql.ErrNoRows {
		return model.Ad{}, ErrNotFound
	}
	return a, err
}

// LatestActiveFreeAd returns the id and creation time of the user's most
// recent active free ad. ErrNotFound means the user has none and is
// immediately eligible.
func (r *AdRepo) LatestActiveFreeAd(ctx context.Context, userID uint64) (uint64, time.Time, error) {
	var (
		id        uint64
		createdAt time.Time
	)
	err := r.DB.QueryRowContext(ctx,
		`SELECT id, created_at FROM ads
		 WHERE user_id=? AND is_free_ad=1 AND status=?
		 ORDER BY created_at DESC LIMIT 1`,
		userID, model.AdStatusActive).Scan(&id, &createdAt)
	if err == sql.ErrNoRows {
		return 0, time.Time{}, ErrNotFound
	}
	return id, createdAt, err
}

// CountActivePaid counts the user's paid ads that currently occupy a plan
// slot (active or awaiting moderation).
func (r *AdRepo) CountActivePaid(ctx context.Context, userID uint64) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM ads
		 WHERE user_id=? AND is_free_ad=0 AND status IN (?,?)`,
		userID, model.AdStatusActive, model.AdStatusPending).Scan(&n)
	return n, err
}

// CreateFree inserts a free ad only when no active free ad exists inside
// the 90-day window. The guard lives in the INSERT itself, so concurrent
// requests race on the database, not in application code; the loser sees
// zero affected rows and gets ErrFreeAdCooldown. On success the owner's
// free-ad bookkeeping fields are updated in the same transaction.
func (r *AdRepo) CreateFree(ctx context.Context, a *model.Ad) (uint64, error) {
	images, err := json.Marshal(a.Images)
	if err != nil {
		return 0, err
	}
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO ads (user_id, title, description, price_cents, category, city, state,
			images, status, moderation_status, is_free_ad, expires_at)
		 SELECT ?,?,?,?,?,?,?,?,?,?,1,? FROM DUAL
		 WHERE NOT EXISTS (
			SELECT 1 FROM ads
			WHERE user_id=? AND is_free_ad=1 AND status=?
			  AND created_at > UTC_TIMESTAMP() - INTERVAL 90 DAY
		 )`,
		a.UserID, a.Title, a.Description, a.PriceCents, a.Category, a.City, a.State,
		string(images), model.AdStatusActive, entitlement.ModerationPending, a.ExpiresAt,
		a.UserID, model.AdStatusActive)
	if err != nil {
		return 0, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return 0, ErrFreeAdCooldown
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	// Consuming the free ad is one-way; the next eligible date is derived
	// from created_at, never stored.
	if _, err := tx.ExecContext(ctx,
		`UPDATE users SET free_ad_used=1, last_free_ad_at=UTC_TIMESTAMP(),
			updated_at=UTC_TIMESTAMP() WHERE id=?`,
		a.UserID); err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// CreatePaid inserts a paid ad only while the owner's count of
// slot-occupying paid ads stays below quota. The count comparison happens
// inside the INSERT, closing the read-then-write race; zero affected rows
// means the quota is full and the caller gets ErrQuotaExceeded.
func (r *AdRepo) CreatePaid(ctx context.Context, a *model.Ad, quota int) (uint64, error) {
	if quota <= 0 {
		return 0, ErrQuotaExceeded
	}
	images, err := json.Marshal(a.Images)
	if err != nil {
		return 0, err
	}
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO ads (user_id, title, description, price_cents, category, city, state,
			images, status, moderation_status, is_free_ad, expires_at)
		 SELECT ?,?,?,?,?,?,?,?,?,?,0,? FROM DUAL
		 WHERE (
			SELECT COUNT(*) FROM ads
			WHERE user_id=? AND is_free_ad=0 AND status IN (?,?)
		 ) < ?`,
		a.UserID, a.Title, a.Description, a.PriceCents, a.Category, a.City, a.State,
		string(images), model.AdStatusActive, entitlement.ModerationPending, a.ExpiresAt,
		a.UserID, model.AdStatusActive, model.AdStatusPending, quota)
	if err != nil {
		return 0, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return 0, ErrQuotaExceeded
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// UpdateContent edits an ad's content on behalf of its owner and resets
// moderation to pending, since edited content has not been reviewed.
func (r *AdRepo) UpdateContent(ctx context.Context, id, ownerID uint64, title, description string, priceCents uint64, category, city, state string, imageList []string) error {
	images, err := json.Marshal(imageList)
	if err != nil {
		return err
	}
	res, err := r.DB.ExecContext(ctx,
		`UPDATE ads SET title=?, description=?, price_cents=?, category=?, city=?, state=?,
			images=?, moderation_status=?, moderation_reason='', moderated_by=NULL,
			moderated_at=NULL, updated_at=UTC_TIMESTAMP()
		 WHERE id=? AND user_id=?`,
		title, description, priceCents, category, city, state, string(images),
		entitlement.ModerationPending, id, ownerID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return r.ownerCheck(ctx, id, ownerID)
	}
	return nil
}

// SetStatus pauses or resumes an ad on behalf of its owner. The moderation
// field is untouched: approval is terminal for moderation even when the
// advertiser pauses the listing afterwards.
func (r *AdRepo) SetStatus(ctx context.Context, id, ownerID uint64, status string) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE ads SET status=?, updated_at=UTC_TIMESTAMP() WHERE id=? AND user_id=?",
		status, id, ownerID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return r.ownerCheck(ctx, id, ownerID)
	}
	return nil
}

// ownerCheck distinguishes "row missing" from "row owned by someone else"
// after an owner-scoped write touched nothing.
func (r *AdRepo) ownerCheck(ctx context.Context, id, ownerID uint64) error {
	var owner uint64
	err := r.DB.QueryRowContext(ctx, "SELECT user_id FROM ads WHERE id=?", id).Scan(&owner)
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	if owner != ownerID {
		return ErrForbidden
	}
	return nil
}

// Moderate applies an admin decision to an ad. Rejection also flips the
// advertiser-facing status to rejected; approval activates a pending ad.
// Unknown ids return ErrNotFound.
func (r *AdRepo) Moderate(ctx context.Context, id uint64, d entitlement.Decision) error {
	status := model.AdStatusActive
	if d.Status == entitlement.ModerationRejected {
		status = model.AdStatusRejected
	}
	res, err := r.DB.ExecContext(ctx,
		`UPDATE ads SET moderation_status=?, moderation_reason=?, moderated_by=?,
			moderated_at=?, status=?, updated_at=UTC_TIMESTAMP()
		 WHERE id=?`,
		d.Status, d.Reason, d.ModeratorID, d.DecidedAt, status, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		var exists int
		if err := r.DB.QueryRowContext(ctx, "SELECT 1 FROM ads WHERE id=?", id).Scan(&exists); err == sql.ErrNoRows {
			return ErrNotFound
		}
	}
	return nil
}

// IncrementViews bumps the view counter atomically in SQL.
func (r *AdRepo) IncrementViews(ctx context.Context, id uint64) error {
	_, err := r.DB.ExecContext(ctx, "UPDATE ads SET view_count=view_count+1 WHERE id=?", id)
	return err
}

// IncrementClicks bumps the click counter atomically in SQL.
func (r *AdRepo) IncrementClicks(ctx context.Context, id uint64) error {
	_, err := r.DB.ExecContext(ctx, "UPDATE ads SET click_count=click_count+1 WHERE id=?", id)
	return err
}

// DeleteByOwner removes an ad owned by the given user.
func (r *AdRepo) DeleteByOwner(ctx context.Context, id, ownerID uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM ads WHERE id=? AND user_id=?", id, ownerID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return r.ownerCheck(ctx, id, ownerID)
	}
	return nil
}
