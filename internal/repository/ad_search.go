package repository

import (
	"context"
	"strings"

	"github.com/buscaaquibdc/marketplace-api/internal/entitlement"
	"github.com/buscaaquibdc/marketplace-api/internal/model"
)

// AdQuery defines filters and pagination for browsing or moderating ads.
// ModerationStatus is only honoured for admin queries; public browsing is
// pinned to active+approved.
type AdQuery struct {
	Category         string
	City             string
	Search           string
	ModerationStatus string
	Limit            int
	Offset           int
}

func (q *AdQuery) normalize() {
	if q.Limit <= 0 || q.Limit > 100 {
		q.Limit = 20
	}
	if q.Offset < 0 {
		q.Offset = 0
	}
}

// SearchPublic returns publicly visible ads (active and approved) matching
// the filters, newest first, plus the total match count for pagination.
func (r *AdRepo) SearchPublic(ctx context.Context, q AdQuery) ([]model.Ad, int64, error) {
	q.normalize()
	where := []string{"status = ?", "moderation_status = ?", "(expires_at IS NULL OR expires_at > UTC_TIMESTAMP())"}
	args := []any{model.AdStatusActive, entitlement.ModerationApproved}
	where, args = appendAdFilters(where, args, q)
	return r.search(ctx, where, args, q)
}

// SearchForModeration returns ads for the admin review queue, optionally
// filtered by moderation status, oldest pending first so the queue drains
// in order.
func (r *AdRepo) SearchForModeration(ctx context.Context, q AdQuery) ([]model.Ad, int64, error) {
	q.normalize()
	where := []string{"1=1"}
	args := []any{}
	if q.ModerationStatus != "" {
		where = append(where, "moderation_status = ?")
		args = append(args, q.ModerationStatus)
	}
	where, args = appendAdFilters(where, args, q)
	cond := strings.Join(where, " AND ")

	var total int64
	if err := r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM ads WHERE "+cond, args...).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+adColumns+" FROM ads WHERE "+cond+" ORDER BY created_at ASC LIMIT ? OFFSET ?",
		append(args, q.Limit, q.Offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var ads []model.Ad
	for rows.Next() {
		a, err := scanAd(rows.Scan)
		if err != nil {
			return nil, 0, err
		}
		ads = append(ads, a)
	}
	return ads, total, rows.Err()
}

func appendAdFilters(where []string, args []any, q AdQuery) ([]string, []any) {
	if q.Category != "" {
		where = append(where, "category = ?")
		args = append(args, q.Category)
	}
	if q.City != "" {
		where = append(where, "LOWER(city) = ?")
		args = append(args, strings.ToLower(q.City))
	}
	if q.Search != "" {
		where = append(where, "(LOWER(title) LIKE ? OR LOWER(description) LIKE ?)")
		pat := "%" + strings.ToLower(q.Search) + "%"
		args = append(args, pat, pat)
	}
	return where, args
}

func (r *AdRepo) search(ctx context.Context, where []string, args []any, q AdQuery) ([]model.Ad, int64, error) {
	cond := strings.Join(where, " AND ")
	var total int64
	if err := r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM ads WHERE "+cond, args...).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+adColumns+" FROM ads WHERE "+cond+" ORDER BY created_at DESC LIMIT ? OFFSET ?",
		append(args, q.Limit, q.Offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var ads []model.Ad
	for rows.Next() {
		a, err := scanAd(rows.Scan)
		if err != nil {
			return nil, 0, err
		}
		ads = append(ads, a)
	}
	return ads, total, rows.Err()
}
