package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/buscaaquibdc/marketplace-api/internal/entitlement"
	"github.com/buscaaquibdc/marketplace-api/internal/repository"
)

// AdminHighlightHandler covers the highlight moderation panel.
type AdminHighlightHandler struct {
	Highlights *repository.HighlightRepo
}

func NewAdminHighlightHandler(h *repository.HighlightRepo) *AdminHighlightHandler {
	if h == nil {
		panic("nil repository passed to NewAdminHighlightHandler")
	}
	return &AdminHighlightHandler{Highlights: h}
}

// List handles GET /api/admin/highlights: the raw rows, defaulting to the
// pending queue, in display order.
func (h *AdminHighlightHandler) List(c echo.Context) error {
	status := c.QueryParam("status")
	if status == "" {
		status = entitlement.ModerationPending
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeoutSeconds*time.Second)
	defer cancel()

	hs, err := h.Highlights.List(ctx, repository.HighlightQuery{Status: status})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "list highlights failed"})
	}
	entitlement.SortHighlights(hs)
	out := make([]highlightView, 0, len(hs))
	for i := range hs {
		out = append(out, toHighlightView(&hs[i]))
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": out})
}

// Moderate handles PUT /api/admin/highlights/:id. Unknown ids return 404;
// re-deciding is last-write-wins.
func (h *AdminHighlightHandler) Moderate(c echo.Context) error {
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

	if err := h.Highlights.Moderate(ctx, id, d); err != nil {
		return repoError(c, err, "highlight")
	}
	announceDecision(c, "highlight", id, d)
	hl, err := h.Highlights.GetByID(ctx, id)
	if err != nil {
		return repoError(c, err, "highlight")
	}
	view := toHighlightView(&hl)
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{
		"highlight":         view,
		"moderation_status": hl.ModerationStatus,
		"moderation_reason": hl.ModerationReason,
	}})
}

// Delete handles DELETE /api/admin/highlights/:id.
func (h *AdminHighlightHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "invalid id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeoutSeconds*time.Second)
	defer cancel()

	if err := h.Highlights.Delete(ctx, id); err != nil {
		return repoError(c, err, "highlight")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}
