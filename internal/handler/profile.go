package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/buscaaquibdc/marketplace-api/internal/queue"
	"github.com/buscaaquibdc/marketplace-api/internal/repository"
	queuepub "github.com/buscaaquibdc/marketplace-api/internal/service"
)

// ProfileHandler covers PUT /api/profile. When the database write fails the
// desired state is queued on the profile.sync outbox and the request is
// acknowledged with 202; the consumer replays it until it lands.
type ProfileHandler struct {
	Users *repository.UserRepo
}

func NewProfileHandler(users *repository.UserRepo) *ProfileHandler {
	if users == nil {
		panic("nil repository passed to NewProfileHandler")
	}
	return &ProfileHandler{Users: users}
}

type updateProfileReq struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Whatsapp string `json:"whatsapp"`
}

// Update handles PUT /api/profile.
func (h *ProfileHandler) Update(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "error": "unauthorized"})
	}
	var req updateProfileReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "invalid request body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "name is required"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeoutSeconds*time.Second)
	defer cancel()

	err = h.Users.UpdateProfile(ctx, userID, req.Name, req.Phone, req.Whatsapp)
	if err == nil {
		return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{
			"name": req.Name, "phone": req.Phone, "whatsapp": req.Whatsapp,
		}})
	}
	if err == repository.ErrNotFound {
		return repoError(c, err, "user")
	}

	// Database unavailable or timed out: enqueue the full desired state so
	// the write is not lost. If the broker is down too the client gets the
	// real error.
	event := queue.ProfileSyncEvent{
		UserID:   userID,
		Name:     req.Name,
		Phone:    req.Phone,
		Whatsapp: req.Whatsapp,
		QueuedAt: time.Now().UTC().Format(time.RFC3339),
	}
	if pubErr := queuepub.PublishProfileSync(context.Background(), event); pubErr != nil {
		c.Logger().Errorf("profile update failed and outbox publish failed: %v / %v", err, pubErr)
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "profile update failed"})
	}
	c.Logger().Warnf("profile update for user %d deferred to outbox: %v", userID, err)
	return c.JSON(http.StatusAccepted, echo.Map{
		"success": true,
		"queued":  true,
		"message": "profile update accepted and will be applied shortly",
	})
}
