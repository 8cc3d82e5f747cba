package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/buscaaquibdc/marketplace-api/internal/model"
	"github.com/buscaaquibdc/marketplace-api/internal/repository"
)

// AdminBusinessHandler covers the storefront moderation panel: listing
// with filters, decisions and removal. Approving a storefront also grants
// the owning user the verified badge in the same transaction.
type AdminBusinessHandler struct {
	Businesses *repository.BusinessRepo
}

func NewAdminBusinessHandler(b *repository.BusinessRepo) *AdminBusinessHandler {
	if b == nil {
		panic("nil repository passed to NewAdminBusinessHandler")
	}
	return &AdminBusinessHandler{Businesses: b}
}

type adminBusinessView struct {
	ID               uint64   `json:"id"`
	UserID           uint64   `json:"user_id"`
	BusinessName     string   `json:"business_name"`
	ContactName      string   `json:"contact_name"`
	Email            string   `json:"email"`
	Phone            string   `json:"phone"`
	Whatsapp         string   `json:"whatsapp"`
	Categories       []string `json:"categories"`
	City             string   `json:"city"`
	State            string   `json:"state"`
	ModerationStatus string   `json:"moderation_status"`
	ModerationReason string   `json:"moderation_reason,omitempty"`
	IsVerified       bool     `json:"is_verified"`
	CreatedAt        string   `json:"created_at"`
}

func toAdminBusinessView(b *model.Business) adminBusinessView {
	return adminBusinessView{
		ID: b.ID, UserID: b.UserID, BusinessName: b.BusinessName,
		ContactName: b.ContactName, Email: b.Email, Phone: b.Phone,
		Whatsapp: b.Whatsapp, Categories: b.Categories, City: b.City,
		State: b.State, ModerationStatus: b.ModerationStatus,
		ModerationReason: b.ModerationReason, IsVerified: b.IsVerified,
		CreatedAt: b.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// List handles GET /api/admin/businesses with status/category/search
// filters and the pagination envelope.
func (h *AdminBusinessHandler) List(c echo.Context) error {
	q := repository.BusinessQuery{
		Status:   c.QueryParam("status"),
		Category: c.QueryParam("category"),
		Search:   c.QueryParam("search"),
		Limit:    queryInt(c, "limit", 20),
		Offset:   queryInt(c, "offset", 0),
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeoutSeconds*time.Second)
	defer cancel()

	bs, total, err := h.Businesses.Search(ctx, q)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "list businesses failed"})
	}
	out := make([]adminBusinessView, 0, len(bs))
	for i := range bs {
		out = append(out, toAdminBusinessView(&bs[i]))
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success":    true,
		"data":       out,
		"pagination": pagination{Total: total, Limit: q.Limit, Offset: q.Offset},
	})
}

// Moderate handles PUT /api/admin/businesses/:id. Re-deciding an already
// decided storefront is allowed; the latest decision wins. Unknown ids
// return 404.
func (h *AdminBusinessHandler) Moderate(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "invalid id"})
	}
	d, ok := bindDecision(c)
	if !ok {
		return nil
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeoutSeconds*time.Second)
	defer cancel()

	if err := h.Businesses.Moderate(ctx, id, d); err != nil {
		return repoError(c, err, "business")
	}
	announceDecision(c, "business", id, d)
	b, err := h.Businesses.GetByID(ctx, id)
	if err != nil {
		return repoError(c, err, "business")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": toAdminBusinessView(&b)})
}

// Delete handles DELETE /api/admin/businesses/:id.
func (h *AdminBusinessHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "invalid id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeoutSeconds*time.Second)
	defer cancel()

	if err := h.Businesses.Delete(ctx, id); err != nil {
		return repoError(c, err, "business")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}
