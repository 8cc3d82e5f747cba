package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/buscaaquibdc/marketplace-api/internal/entitlement"
	"github.com/buscaaquibdc/marketplace-api/internal/model"
)

// HighlightRepo provides access to the `highlights` table (stories and
// banners, "destaques").
type HighlightRepo struct{ DB *sql.DB }

func NewHighlightRepo(db *sql.DB) *HighlightRepo { return &HighlightRepo{DB: db} }

const highlightColumns = `id,user_id,title,media_url,media_type,priority,
	moderation_status,moderation_reason,moderated_by,moderated_at,is_active,
	view_count,like_count,created_at,expires_at`

func scanHighlight(scan func(dest ...any) error) (model.Highlight, error) {
	var (
		h           model.Highlight
		reason      sql.NullString
		moderatedBy sql.NullInt64
		moderatedAt sql.NullTime
	)
	err := scan(&h.ID, &h.UserID, &h.Title, &h.MediaURL, &h.MediaType, &h.Priority,
		&h.ModerationStatus, &reason, &moderatedBy, &moderatedAt, &h.IsActive,
		&h.ViewCount, &h.LikeCount, &h.CreatedAt, &h.ExpiresAt)
	if err != nil {
		return model.Highlight{}, err
	}
	if reason.Valid {
		h.ModerationReason = reason.String
	}
	if moderatedBy.Valid {
		id := uint64(moderatedBy.Int64)
		h.ModeratedBy = &id
	}
	if moderatedAt.Valid {
		t := moderatedAt.Time
		h.ModeratedAt = &t
	}
	return h, nil
}

// Create inserts a highlight in pending moderation state and returns its id.
func (r *HighlightRepo) Create(ctx context.Context, h *model.Highlight) (uint64, error) {
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO highlights (user_id, title, media_url, media_type, priority,
			moderation_status, is_active, expires_at)
		 VALUES (?,?,?,?,?,?,1,?)`,
		h.UserID, h.Title, h.MediaURL, h.MediaType, h.Priority,
		entitlement.ModerationPending, h.ExpiresAt)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByID fetches a highlight. Returns ErrNotFound for unknown ids.
func (r *HighlightRepo) GetByID(ctx context.Context, id uint64) (model.Highlight, error) {
	h, err := scanHighlight(r.DB.QueryRowContext(ctx,
		"SELECT "+highlightColumns+" FROM highlights WHERE id=? LIMIT 1", id).Scan)
	if err == sql.ErrNoRows {
		return model.Highlight{}, ErrNotFound
	}
	return h, err
}

// HighlightQuery filters the highlight listing. Status filters on
// moderation status; AdminOnly restricts to ADMIN-priority entries.
type HighlightQuery struct {
	Status    string
	AdminOnly bool
}

// List returns highlights matching the query. Ordering and active-set
// filtering are done by the entitlement rules in memory so display order
// stays in one place.
func (r *HighlightRepo) List(ctx context.Context, q HighlightQuery) ([]model.Highlight, error) {
	where := []string{"1=1"}
	args := []any{}
	if q.Status != "" {
		where = append(where, "moderation_status = ?")
		args = append(args, q.Status)
	}
	if q.AdminOnly {
		where = append(where, "priority = ?")
		args = append(args, model.PriorityAdmin)
	}
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+highlightColumns+" FROM highlights WHERE "+strings.Join(where, " AND "),
		args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var hs []model.Highlight
	for rows.Next() {
		h, err := scanHighlight(rows.Scan)
		if err != nil {
			return nil, err
		}
		hs = append(hs, h)
	}
	return hs, rows.Err()
}

// Moderate applies an admin decision to a highlight. Unknown ids return
// ErrNotFound.
func (r *HighlightRepo) Moderate(ctx context.Context, id uint64, d entitlement.Decision) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE highlights SET moderation_status=?, moderation_reason=?, moderated_by=?,
			moderated_at=?
		 WHERE id=?`,
		d.Status, d.Reason, d.ModeratorID, d.DecidedAt, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		var exists int
		if err := r.DB.QueryRowContext(ctx, "SELECT 1 FROM highlights WHERE id=?", id).Scan(&exists); err == sql.ErrNoRows {
			return ErrNotFound
		}
	}
	return nil
}

// Deactivate manually removes an approved highlight from the rotation.
// This is distinct from rejection: the moderation history stays approved.
// Deactivating an unknown or non-approved highlight returns ErrNotFound.
func (r *HighlightRepo) Deactivate(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE highlights SET is_active=0 WHERE id=? AND moderation_status=? AND is_active=1",
		id, entitlement.ModerationApproved)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a highlight. Unknown ids return ErrNotFound.
func (r *HighlightRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM highlights WHERE id=?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// IncrementViews bumps the view counter atomically in SQL.
func (r *HighlightRepo) IncrementViews(ctx context.Context, id uint64) error {
	_, err := r.DB.ExecContext(ctx, "UPDATE highlights SET view_count=view_count+1 WHERE id=?", id)
	return err
}

// IncrementLikes bumps the like counter atomically in SQL.
func (r *HighlightRepo) IncrementLikes(ctx context.Context, id uint64) error {
	_, err := r.DB.ExecContext(ctx, "UPDATE highlights SET like_count=like_count+1 WHERE id=?", id)
	return err
}
