package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/buscaaquibdc/marketplace-api/internal/entitlement"
	"github.com/buscaaquibdc/marketplace-api/internal/queue"
	queuepub "github.com/buscaaquibdc/marketplace-api/internal/service"
)

// moderationReq is the decision body shared by every admin moderation
// endpoint: ads, businesses and highlights.
type moderationReq struct {
	Status string `json:"status"` // approved | rejected
	Reason string `json:"reason"` // required when rejecting
}

// bindDecision binds and validates a moderation decision from the request.
// Invalid transitions and missing rejection reasons come back as a 400
// already written to the client (the returned bool reports whether the
// decision is usable).
func bindDecision(c echo.Context) (entitlement.Decision, bool) {
	var req moderationReq
	if err := c.Bind(&req); err != nil {
		_ = c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "invalid request body"})
		return entitlement.Decision{}, false
	}
	adminID, err := getUserID(c)
	if err != nil {
		_ = c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "error": "unauthorized"})
		return entitlement.Decision{}, false
	}
	d, err := entitlement.NewDecision(req.Status, req.Reason, adminID, time.Now().UTC())
	if err != nil {
		_ = c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": err.Error()})
		return entitlement.Decision{}, false
	}
	return d, true
}

// announceDecision publishes the decision on the moderation.decided queue.
// The queue is an audit tap, not part of the request's success: a publish
// failure is logged and swallowed.
func announceDecision(c echo.Context, kind string, id uint64, d entitlement.Decision) {
	event := queue.ModerationDecidedEvent{
		EntityKind:  kind,
		EntityID:    id,
		Status:      d.Status,
		Reason:      d.Reason,
		ModeratorID: d.ModeratorID,
		DecidedAt:   d.DecidedAt.Format(time.RFC3339),
	}
	if err := queuepub.PublishModerationDecided(context.Background(), event); err != nil {
		c.Logger().Warnf("moderation event publish failed for %s %d: %v", kind, id, err)
	}
}
