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

// BusinessHandler covers storefront registration. One storefront per user;
// new registrations enter the moderation queue as pending.
type BusinessHandler struct {
	Businesses *repository.BusinessRepo
}

func NewBusinessHandler(b *repository.BusinessRepo) *BusinessHandler {
	if b == nil {
		panic("nil repository passed to NewBusinessHandler")
	}
	return &BusinessHandler{Businesses: b}
}

type registerBusinessReq struct {
	BusinessName string   `json:"business_name"`
	ContactName  string   `json:"contact_name"`
	Email        string   `json:"email"`
	Phone        string   `json:"phone"`
	Whatsapp     string   `json:"whatsapp"`
	Categories   []string `json:"categories"`
	Description  string   `json:"description"`
	Address      string   `json:"address"`
	City         string   `json:"city"`
	State        string   `json:"state"`
}

func (r *registerBusinessReq) validate() string {
	r.BusinessName = strings.TrimSpace(r.BusinessName)
	r.ContactName = strings.TrimSpace(r.ContactName)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	switch {
	case r.BusinessName == "":
		return "business_name is required"
	case r.ContactName == "":
		return "contact_name is required"
	case r.Email == "":
		return "email is required"
	case len(r.Categories) == 0:
		return "at least one category is required"
	}
	seen := make(map[string]bool, len(r.Categories))
	clean := r.Categories[:0]
	for _, cat := range r.Categories {
		cat = strings.ToLower(strings.TrimSpace(cat))
		if !model.BusinessCategories[cat] {
			return "unknown category: " + cat
		}
		if !seen[cat] {
			seen[cat] = true
			clean = append(clean, cat)
		}
	}
	r.Categories = clean
	return ""
}

// Register handles POST /api/businesses. A duplicate registration for the
// same user returns 409.
func (h *BusinessHandler) Register(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "error": "unauthorized"})
	}
	var req registerBusinessReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "invalid request body"})
	}
	if msg := req.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": msg})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeoutSeconds*time.Second)
	defer cancel()

	id, err := h.Businesses.Create(ctx, &model.Business{
		UserID:       userID,
		BusinessName: req.BusinessName,
		ContactName:  req.ContactName,
		Email:        req.Email,
		Phone:        req.Phone,
		Whatsapp:     req.Whatsapp,
		Categories:   req.Categories,
		Description:  req.Description,
		Address:      req.Address,
		City:         req.City,
		State:        req.State,
	})
	if err == repository.ErrConflict {
		return c.JSON(http.StatusConflict, echo.Map{"success": false, "error": "a business is already registered for this account"})
	}
	if err != nil {
		return repoError(c, err, "business")
	}
	return c.JSON(http.StatusCreated, echo.Map{"success": true, "data": echo.Map{
		"id":                id,
		"moderation_status": entitlement.ModerationPending,
	}})
}
