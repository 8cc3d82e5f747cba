package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/buscaaquibdc/marketplace-api/internal/entitlement"
	"github.com/buscaaquibdc/marketplace-api/internal/model"
	"github.com/buscaaquibdc/marketplace-api/internal/repository"
)

// AdminAdHandler covers the listing moderation queue.
type AdminAdHandler struct {
	Ads *repository.AdRepo
}

func NewAdminAdHandler(ads *repository.AdRepo) *AdminAdHandler {
	if ads == nil {
		panic("nil repository passed to NewAdminAdHandler")
	}
	return &AdminAdHandler{Ads: ads}
}

// adminAdView exposes the moderation fields hidden from the public view.
type adminAdView struct {
	ID               uint64   `json:"id"`
	UserID           uint64   `json:"user_id"`
	Title            string   `json:"title"`
	Description      string   `json:"description"`
	PriceCents       uint64   `json:"price_cents"`
	Category         string   `json:"category"`
	City             string   `json:"city"`
	State            string   `json:"state"`
	Images           []string `json:"images"`
	Status           string   `json:"status"`
	ModerationStatus string   `json:"moderation_status"`
	ModerationReason string   `json:"moderation_reason,omitempty"`
	IsFreeAd         bool     `json:"is_free_ad"`
	CreatedAt        string   `json:"created_at"`
}

func toAdminAdView(a *model.Ad) adminAdView {
	return adminAdView{
		ID: a.ID, UserID: a.UserID, Title: a.Title, Description: a.Description,
		PriceCents: a.PriceCents, Category: a.Category, City: a.City, State: a.State,
		Images: a.Images, Status: a.Status, ModerationStatus: a.ModerationStatus,
		ModerationReason: a.ModerationReason, IsFreeAd: a.IsFreeAd,
		CreatedAt: a.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// List handles GET /api/admin/ads: the moderation queue, oldest first so
// nothing starves. Defaults to pending; ?status= selects another state.
func (h *AdminAdHandler) List(c echo.Context) error {
	status := c.QueryParam("status")
	if status == "" {
		status = entitlement.ModerationPending
	}
	q := repository.AdQuery{
		ModerationStatus: status,
		Category:         c.QueryParam("category"),
		City:             c.QueryParam("city"),
		Search:           c.QueryParam("search"),
		Limit:            queryInt(c, "limit", 20),
		Offset:           queryInt(c, "offset", 0),
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeoutSeconds*time.Second)
	defer cancel()

	ads, total, err := h.Ads.SearchForModeration(ctx, q)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "list ads failed"})
	}
	out := make([]adminAdView, 0, len(ads))
	for i := range ads {
		out = append(out, toAdminAdView(&ads[i]))
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success":    true,
		"data":       out,
		"pagination": pagination{Total: total, Limit: q.Limit, Offset: q.Offset},
	})
}

// Moderate handles PUT /api/admin/ads/:id. Approval flips the ad to
// active; rejection to rejected. Unknown ids return 404.
func (h *AdminAdHandler) Moderate(c echo.Context) error {
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

	if err := h.Ads.Moderate(ctx, id, d); err != nil {
		return repoError(c, err, "ad")
	}
	announceDecision(c, "ad", id, d)
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{
		"id":                id,
		"moderation_status": d.Status,
		"moderation_reason": d.Reason,
	}})
}
