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

// HighlightHandler covers the "destaques" rotation: public listing,
// advertiser submission, like/view counters and manual deactivation.
type HighlightHandler struct {
	Highlights *repository.HighlightRepo
}

func NewHighlightHandler(h *repository.HighlightRepo) *HighlightHandler {
	if h == nil {
		panic("nil repository passed to NewHighlightHandler")
	}
	return &HighlightHandler{Highlights: h}
}

type highlightView struct {
	ID        uint64 `json:"id"`
	Title     string `json:"title"`
	MediaURL  string `json:"media_url"`
	MediaType string `json:"media_type"`
	Priority  int    `json:"priority"`
	ViewCount uint64 `json:"view_count"`
	LikeCount uint64 `json:"like_count"`
	CreatedAt string `json:"created_at"`
	ExpiresAt string `json:"expires_at"`
}

func toHighlightView(h *model.Highlight) highlightView {
	return highlightView{
		ID: h.ID, Title: h.Title, MediaURL: h.MediaURL, MediaType: h.MediaType,
		Priority: h.Priority, ViewCount: h.ViewCount, LikeCount: h.LikeCount,
		CreatedAt: h.CreatedAt.UTC().Format(time.RFC3339),
		ExpiresAt: h.ExpiresAt.UTC().Format(time.RFC3339),
	}
}

// List handles GET /api/destaques. By default only the active set is
// returned, in display order (priority desc, newest first). ?admin=true
// returns the raw rows including inactive and expired ones, and
// ?adminOnly=true restricts to ADMIN-priority entries.
func (h *HighlightHandler) List(c echo.Context) error {
	q := repository.HighlightQuery{
		Status:    c.QueryParam("status"),
		AdminOnly: c.QueryParam("adminOnly") == "true",
	}
	raw := c.QueryParam("admin") == "true"
	if !raw && q.Status == "" {
		q.Status = entitlement.ModerationApproved
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeoutSeconds*time.Second)
	defer cancel()

	hs, err := h.Highlights.List(ctx, q)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "list highlights failed"})
	}
	if raw {
		entitlement.SortHighlights(hs)
	} else {
		hs = entitlement.FilterActive(hs, time.Now().UTC())
	}
	out := make([]highlightView, 0, len(hs))
	for i := range hs {
		out = append(out, toHighlightView(&hs[i]))
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": out})
}

type createHighlightReq struct {
	Title     string `json:"title"`
	MediaURL  string `json:"media_url"`
	MediaType string `json:"media_type"`
	Days      int    `json:"days"`
}

// Create handles POST /api/destaques. Submissions always enter at NORMAL
// priority and pending moderation; priority bumps are an admin operation.
func (h *HighlightHandler) Create(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "error": "unauthorized"})
	}
	var req createHighlightReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "invalid request body"})
	}
	req.Title = strings.TrimSpace(req.Title)
	req.MediaURL = strings.TrimSpace(req.MediaURL)
	switch {
	case req.Title == "":
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "title is required"})
	case req.MediaURL == "":
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "media_url is required"})
	case req.MediaType != model.MediaImage && req.MediaType != model.MediaVideo:
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "media_type must be image or video"})
	}
	if req.Days <= 0 || req.Days > 30 {
		req.Days = 7
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeoutSeconds*time.Second)
	defer cancel()

	id, err := h.Highlights.Create(ctx, &model.Highlight{
		UserID:    userID,
		Title:     req.Title,
		MediaURL:  req.MediaURL,
		MediaType: req.MediaType,
		Priority:  model.PriorityNormal,
		ExpiresAt: time.Now().UTC().AddDate(0, 0, req.Days),
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "create highlight failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"success": true, "data": echo.Map{
		"id":                id,
		"moderation_status": entitlement.ModerationPending,
	}})
}

type deactivateHighlightReq struct {
	ID uint64 `json:"id"`
}

// Deactivate handles PATCH /api/destaques: pulls an approved highlight out
// of the rotation without touching its moderation history. Unknown ids and
// highlights that are not currently approved+active return 404.
func (h *HighlightHandler) Deactivate(c echo.Context) error {
	var req deactivateHighlightReq
	if err := c.Bind(&req); err != nil || req.ID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "id is required"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeoutSeconds*time.Second)
	defer cancel()

	if err := h.Highlights.Deactivate(ctx, req.ID); err != nil {
		return repoError(c, err, "highlight")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"id": req.ID, "is_active": false}})
}

// View handles POST /api/destaques/:id/view.
func (h *HighlightHandler) View(c echo.Context) error {
	return h.bump(c, h.Highlights.IncrementViews)
}

// Like handles POST /api/destaques/:id/like.
func (h *HighlightHandler) Like(c echo.Context) error {
	return h.bump(c, h.Highlights.IncrementLikes)
}

func (h *HighlightHandler) bump(c echo.Context, inc func(context.Context, uint64) error) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "invalid id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeoutSeconds*time.Second)
	defer cancel()

	if err := inc(ctx, id); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "counter update failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}
