package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/buscaaquibdc/marketplace-api/internal/repository"
)

// PublicHandler serves the unauthenticated browse endpoints. Responses are
// sanitized for guests and sit behind the Redis response cache.
type PublicHandler struct {
	Ads *repository.AdRepo
}

func NewPublicHandler(ads *repository.AdRepo) *PublicHandler {
	if ads == nil {
		panic("nil repository passed to NewPublicHandler")
	}
	return &PublicHandler{Ads: ads}
}

// publicAd is the guest-facing projection of an ad. Moderation metadata
// and owner bookkeeping stay internal.
type publicAd struct {
	ID          uint64   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	PriceCents  uint64   `json:"price_cents"`
	Price       float64  `json:"price"`
	Category    string   `json:"category"`
	City        string   `json:"city"`
	State       string   `json:"state"`
	Images      []string `json:"images"`
	ViewCount   uint64   `json:"view_count"`
	CreatedAt   string   `json:"created_at"`
}

// ListAds handles GET /api/ads with category/city/search filters and
// limit/offset pagination. Only active, approved, unexpired ads are
// returned.
func (h *PublicHandler) ListAds(c echo.Context) error {
	q := repository.AdQuery{
		Category: c.QueryParam("category"),
		City:     c.QueryParam("city"),
		Search:   c.QueryParam("search"),
		Limit:    queryInt(c, "limit", 20),
		Offset:   queryInt(c, "offset", 0),
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeoutSeconds*time.Second)
	defer cancel()

	ads, total, err := h.Ads.SearchPublic(ctx, q)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "list ads failed"})
	}
	out := make([]publicAd, 0, len(ads))
	for _, a := range ads {
		out = append(out, publicAd{
			ID: a.ID, Title: a.Title, Description: a.Description,
			PriceCents: a.PriceCents, Price: float64(a.PriceCents) / 100,
			Category: a.Category, City: a.City, State: a.State,
			Images: a.Images, ViewCount: a.ViewCount,
			CreatedAt: a.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success":    true,
		"data":       out,
		"pagination": pagination{Total: total, Limit: q.Limit, Offset: q.Offset},
	})
}

// GetAd handles GET /api/ads/:id. Only ads passing the public visibility
// predicate (active, approved, unexpired) are served; everything else is a
// 404. Fetching a visible ad bumps its view counter; the increment is a
// single SQL statement, so concurrent views never lose counts.
func (h *PublicHandler) GetAd(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "invalid id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeoutSeconds*time.Second)
	defer cancel()

	a, err := h.Ads.GetVisible(ctx, id)
	if err != nil {
		return repoError(c, err, "ad")
	}
	_ = h.Ads.IncrementViews(ctx, id) // best effort; a lost view is not an error
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": publicAd{
		ID: a.ID, Title: a.Title, Description: a.Description,
		PriceCents: a.PriceCents, Price: float64(a.PriceCents) / 100,
		Category: a.Category, City: a.City, State: a.State,
		Images: a.Images, ViewCount: a.ViewCount + 1,
		CreatedAt: a.CreatedAt.UTC().Format(time.RFC3339),
	}})
}

// ClickAd handles POST /api/ads/:id/click, the contact-button counter.
func (h *PublicHandler) ClickAd(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "invalid id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeoutSeconds*time.Second)
	defer cancel()

	if err := h.Ads.IncrementClicks(ctx, id); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "click failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}
