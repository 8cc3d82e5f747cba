package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/buscaaquibdc/marketplace-api/internal/entitlement"
	"github.com/buscaaquibdc/marketplace-api/internal/model"
	"github.com/buscaaquibdc/marketplace-api/internal/repository"
)

// AdHandler covers the advertiser-facing ad operations: publishing (free or
// against the plan quota), editing, pausing and the free-ad eligibility
// check.
type AdHandler struct {
	Ads   *repository.AdRepo
	Users *repository.UserRepo
}

func NewAdHandler(ads *repository.AdRepo, users *repository.UserRepo) *AdHandler {
	if ads == nil || users == nil {
		panic("nil repository passed to NewAdHandler")
	}
	return &AdHandler{Ads: ads, Users: users}
}

type createAdReq struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	PriceCents  uint64   `json:"price_cents"`
	Category    string   `json:"category"`
	City        string   `json:"city"`
	State       string   `json:"state"`
	Images      []string `json:"images"`
	IsFreeAd    bool     `json:"is_free_ad"`
}

func (r *createAdReq) validate() string {
	r.Title = strings.TrimSpace(r.Title)
	r.Description = strings.TrimSpace(r.Description)
	r.Category = strings.TrimSpace(r.Category)
	r.City = strings.TrimSpace(r.City)
	r.State = strings.TrimSpace(r.State)
	switch {
	case r.Title == "":
		return "title is required"
	case r.Description == "":
		return "description is required"
	case r.Category == "":
		return "category is required"
	case len(r.Images) > 10:
		return "at most 10 images allowed"
	}
	return ""
}

// Create handles POST /api/ads. Free ads take the atomic cooldown path;
// paid ads take the atomic quota path. Both concurrency guards live in the
// repository so two simultaneous requests can never both succeed past the
// limit.
func (h *AdHandler) Create(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "error": "unauthorized"})
	}
	var req createAdReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "invalid request body"})
	}
	if msg := req.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": msg})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeoutSeconds*time.Second)
	defer cancel()

	u, err := h.Users.GetByID(ctx, userID)
	if err != nil {
		return repoError(c, err, "user")
	}
	if u.IsBlocked {
		return c.JSON(http.StatusForbidden, echo.Map{"success": false, "error": "account is blocked"})
	}

	ad := &model.Ad{
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		PriceCents:  req.PriceCents,
		Category:    req.Category,
		City:        req.City,
		State:       req.State,
		Images:      req.Images,
		IsFreeAd:    req.IsFreeAd,
	}

	var id uint64
	if req.IsFreeAd {
		id, err = h.Ads.CreateFree(ctx, ad)
	} else {
		quota := entitlement.ResolveSlots(u.Plan)
		if quota == 0 {
			return c.JSON(http.StatusPaymentRequired, echo.Map{
				"success": false,
				"error":   "current plan has no ad slots; upgrade or publish a free ad",
			})
		}
		id, err = h.Ads.CreatePaid(ctx, ad, quota)
	}
	if err != nil {
		return repoError(c, err, "ad")
	}
	return c.JSON(http.StatusCreated, echo.Map{"success": true, "data": echo.Map{"id": id, "status": model.AdStatusActive, "moderation_status": entitlement.ModerationPending}})
}

type updateAdReq struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	PriceCents  uint64   `json:"price_cents"`
	Category    string   `json:"category"`
	City        string   `json:"city"`
	State       string   `json:"state"`
	Images      []string `json:"images"`
	Status      string   `json:"status"` // optional: active or paused
}

// Update handles PUT /api/ads/:id. Content edits reset moderation to
// pending; a bare status field toggles active/paused without re-moderation.
func (h *AdHandler) Update(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "error": "unauthorized"})
	}
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "invalid id"})
	}
	var req updateAdReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "invalid request body"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeoutSeconds*time.Second)
	defer cancel()

	if req.Status != "" {
		if req.Status != model.AdStatusActive && req.Status != model.AdStatusPaused {
			return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "status must be active or paused"})
		}
		if err := h.Ads.SetStatus(ctx, id, userID, req.Status); err != nil {
			return repoError(c, err, "ad")
		}
		return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"id": id, "status": req.Status}})
	}

	req.Title = strings.TrimSpace(req.Title)
	req.Description = strings.TrimSpace(req.Description)
	if req.Title == "" || req.Description == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "title and description are required"})
	}
	if err := h.Ads.UpdateContent(ctx, id, userID, req.Title, req.Description, req.PriceCents, req.Category, req.City, req.State, req.Images); err != nil {
		return repoError(c, err, "ad")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"id": id, "moderation_status": entitlement.ModerationPending}})
}

// Delete handles DELETE /api/ads/:id for the owner.
func (h *AdHandler) Delete(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "error": "unauthorized"})
	}
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "invalid id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeoutSeconds*time.Second)
	defer cancel()

	if err := h.Ads.DeleteByOwner(ctx, id, userID); err != nil {
		return repoError(c, err, "ad")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// FreeAdCheck handles GET /api/ads/free-ad-check. The response bundles the
// caller's identity, the free-ad window state and the paid-slot picture so
// the publish form needs a single round trip.
func (h *AdHandler) FreeAdCheck(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "error": "unauthorized"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeoutSeconds*time.Second)
	defer cancel()

	u, err := h.Users.GetByID(ctx, userID)
	if err != nil {
		return repoError(c, err, "user")
	}

	// The eligibility clock runs off the latest active free ad, not the
	// stored flag: an expired or deleted free ad frees the window again.
	var lastAt *time.Time
	var lastID uint64
	if adID, createdAt, err := h.Ads.LatestActiveFreeAd(ctx, userID); err == nil {
		lastAt, lastID = &createdAt, adID
	} else if err != repository.ErrNotFound {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "free ad check failed"})
	}
	status := entitlement.CheckFreeAd(time.Now().UTC(), lastAt, lastID)

	quota := entitlement.ResolveSlots(u.Plan)
	used, err := h.Ads.CountActivePaid(ctx, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "free ad check failed"})
	}
	available := quota - used
	if available < 0 {
		available = 0
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"user":    echo.Map{"id": u.ID, "name": u.Name, "plan": u.Plan, "verified": u.IsVerified},
		"freeAd":  status,
		"subscription": echo.Map{
			"type":             u.Plan,
			"availableAdSlots": available,
		},
	})
}
