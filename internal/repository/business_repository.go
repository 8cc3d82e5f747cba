package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/buscaaquibdc/marketplace-api/internal/entitlement"
	"github.com/buscaaquibdc/marketplace-api/internal/model"
)

// BusinessRepo provides access to the `businesses` table, the single
// canonical storefront record.
type BusinessRepo struct{ DB *sql.DB }

func NewBusinessRepo(db *sql.DB) *BusinessRepo { return &BusinessRepo{DB: db} }

const businessColumns = `id,user_id,business_name,contact_name,email,phone,whatsapp,
	categories,description,address,city,state,moderation_status,moderation_reason,
	moderated_by,moderated_at,is_verified,created_at,updated_at`

func scanBusiness(scan func(dest ...any) error) (model.Business, error) {
	var (
		b           model.Business
		categories  string
		reason      sql.NullString
		moderatedBy sql.NullInt64
		moderatedAt sql.NullTime
	)
	err := scan(&b.ID, &b.UserID, &b.BusinessName, &b.ContactName, &b.Email, &b.Phone,
		&b.Whatsapp, &categories, &b.Description, &b.Address, &b.City, &b.State,
		&b.ModerationStatus, &reason, &moderatedBy, &moderatedAt, &b.IsVerified,
		&b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return model.Business{}, err
	}
	if categories != "" {
		b.Categories = strings.Split(categories, ",")
	}
	if reason.Valid {
		b.ModerationReason = reason.String
	}
	if moderatedBy.Valid {
		id := uint64(moderatedBy.Int64)
		b.ModeratedBy = &id
	}
	if moderatedAt.Valid {
		t := moderatedAt.Time
		b.ModeratedAt = &t
	}
	return b, nil
}

// Create registers a storefront in pending moderation state. One
// storefront per user: a second insert for the same user returns
// ErrConflict.
func (r *BusinessRepo) Create(ctx context.Context, b *model.Business) (uint64, error) {
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO businesses (user_id, business_name, contact_name, email, phone,
			whatsapp, categories, description, address, city, state, moderation_status)
		 VALUES (?,?,?,?,?,?,?,?,?,?,?,?)`,
		b.UserID, b.BusinessName, b.ContactName, b.Email, b.Phone, b.Whatsapp,
		strings.Join(b.Categories, ","), b.Description, b.Address, b.City, b.State,
		entitlement.ModerationPending)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return 0, ErrConflict
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByID fetches a storefront. Returns ErrNotFound for unknown ids.
func (r *BusinessRepo) GetByID(ctx context.Context, id uint64) (model.Business, error) {
	b, err := scanBusiness(r.DB.QueryRowContext(ctx,
		"SELECT "+businessColumns+" FROM businesses WHERE id=? LIMIT 1", id).Scan)
	if err == sql.ErrNoRows {
		return model.Business{}, ErrNotFound
	}
	return b, err
}

// BusinessQuery defines admin listing filters and pagination.
type BusinessQuery struct {
	Status   string // moderation status filter
	Category string // member of the closed category set
	Search   string // matched against business and contact names
	Limit    int
	Offset   int
}

// Search lists storefronts for the admin panel with the total match count.
func (r *BusinessRepo) Search(ctx context.Context, q BusinessQuery) ([]model.Business, int64, error) {
	if q.Limit <= 0 || q.Limit > 100 {
		q.Limit = 20
	}
	if q.Offset < 0 {
		q.Offset = 0
	}
	where := []string{"1=1"}
	args := []any{}
	if q.Status != "" {
		where = append(where, "moderation_status = ?")
		args = append(args, q.Status)
	}
	if q.Category != "" {
		// categories is a comma-joined set; match a whole element
		where = append(where, "FIND_IN_SET(?, categories) > 0")
		args = append(args, q.Category)
	}
	if q.Search != "" {
		where = append(where, "(LOWER(business_name) LIKE ? OR LOWER(contact_name) LIKE ?)")
		pat := "%" + strings.ToLower(q.Search) + "%"
		args = append(args, pat, pat)
	}
	cond := strings.Join(where, " AND ")

	var total int64
	if err := r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM businesses WHERE "+cond, args...).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+businessColumns+" FROM businesses WHERE "+cond+" ORDER BY created_at DESC LIMIT ? OFFSET ?",
		append(args, q.Limit, q.Offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var bs []model.Business
	for rows.Next() {
		b, err := scanBusiness(rows.Scan)
		if err != nil {
			return nil, 0, err
		}
		bs = append(bs, b)
	}
	return bs, total, rows.Err()
}

// Moderate applies an admin decision to a storefront. Approval also grants
// the verified flag on the business and on its owner, inside one
// transaction. Unknown ids return ErrNotFound.
func (r *BusinessRepo) Moderate(ctx context.Context, id uint64, d entitlement.Decision) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	verified := 0
	if d.Status == entitlement.ModerationApproved {
		verified = 1
	}
	res, err := tx.ExecContext(ctx,
		`UPDATE businesses SET moderation_status=?, moderation_reason=?, moderated_by=?,
			moderated_at=?, is_verified=?, updated_at=UTC_TIMESTAMP()
		 WHERE id=?`,
		d.Status, d.Reason, d.ModeratorID, d.DecidedAt, verified, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		var exists int
		if err := tx.QueryRowContext(ctx, "SELECT 1 FROM businesses WHERE id=?", id).Scan(&exists); err == sql.ErrNoRows {
			return ErrNotFound
		}
	}
	if d.Status == entitlement.ModerationApproved {
		if _, err := tx.ExecContext(ctx,
			`UPDATE users u JOIN businesses b ON b.user_id = u.id
			 SET u.is_verified=1, u.verified_reason='business approved',
				u.verified_at=UTC_TIMESTAMP(), u.updated_at=UTC_TIMESTAMP()
			 WHERE b.id=? AND u.is_verified=0`,
			id); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// Delete removes a storefront. Unknown ids return ErrNotFound.
func (r *BusinessRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM businesses WHERE id=?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
