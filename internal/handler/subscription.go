package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/buscaaquibdc/marketplace-api/internal/config"
	"github.com/buscaaquibdc/marketplace-api/internal/entitlement"
	"github.com/buscaaquibdc/marketplace-api/internal/model"
	"github.com/buscaaquibdc/marketplace-api/internal/payment"
	"github.com/buscaaquibdc/marketplace-api/internal/repository"
	"github.com/buscaaquibdc/marketplace-api/internal/utils"
)

// SubscriptionHandler covers plan upgrades, free-plan activation and
// cancellation. The payment gateway is called before any local state
// changes; a gateway failure leaves the user's plan untouched.
type SubscriptionHandler struct {
	Cfg     config.Config
	Users   *repository.UserRepo
	Subs    *repository.SubscriptionRepo
	Coupons *repository.CouponRepo
	Gateway *payment.AsaasClient
}

func NewSubscriptionHandler(cfg config.Config, users *repository.UserRepo, subs *repository.SubscriptionRepo, coupons *repository.CouponRepo, gw *payment.AsaasClient) *SubscriptionHandler {
	if users == nil || subs == nil || coupons == nil || gw == nil {
		panic("nil dependency passed to NewSubscriptionHandler")
	}
	return &SubscriptionHandler{Cfg: cfg, Users: users, Subs: subs, Coupons: coupons, Gateway: gw}
}

type upgradeReq struct {
	PlanID     string `json:"planId"`
	CouponCode string `json:"couponCode"`
}

// Upgrade handles POST /api/subscription/upgrade. On success the user's
// plan is set, the verified badge granted, and a subscription row recorded
// with the gateway's id. An optional coupon discounts the charged value;
// the coupon is redeemed only after the gateway accepts the subscription.
func (h *SubscriptionHandler) Upgrade(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "error": "unauthorized"})
	}
	var req upgradeReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "invalid request body"})
	}
	if !entitlement.IsPaidPlan(req.PlanID) {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "planId must be a paid plan"})
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

	value := entitlement.PlanPrice(req.PlanID)
	var coupon *model.Coupon
	if req.CouponCode != "" {
		cp, err := h.Coupons.GetByCode(ctx, req.CouponCode)
		if err != nil && err != repository.ErrNotFound {
			return repoError(c, err, "coupon")
		}
		if err == nil {
			coupon = &cp
		}
		res := entitlement.ValidateCoupon(coupon, req.PlanID, time.Now().UTC())
		if !res.Valid {
			return c.JSON(http.StatusUnprocessableEntity, echo.Map{"success": false, "error": "coupon rejected", "reason": res.Reason})
		}
		value = entitlement.ApplyDiscount(coupon, value)
	}

	gw, err := h.Gateway.CreateSubscription(ctx, u.Email, req.PlanID, value)
	if err != nil {
		c.Logger().Errorf("gateway subscription for user %d failed: %v", userID, err)
		return c.JSON(http.StatusBadGateway, echo.Map{"success": false, "error": "payment gateway rejected the subscription"})
	}

	if coupon != nil {
		if _, err := h.Coupons.Redeem(ctx, coupon.Code); err != nil {
			// Raced past the usage cap between validate and redeem. The
			// gateway subscription is rolled back and the caller retries.
			_ = h.Gateway.CancelSubscription(ctx, gw.ID)
			return repoError(c, err, "coupon")
		}
	}

	now := time.Now().UTC()
	periodEnd := now.AddDate(0, 1, 0)
	if err := h.Users.SetPlan(ctx, userID, req.PlanID, now, periodEnd, true, "paid_upgrade"); err != nil {
		return repoError(c, err, "user")
	}
	subID, err := h.Subs.Create(ctx, &model.Subscription{
		UserID:      userID,
		Plan:        req.PlanID,
		Status:      model.SubscriptionActive,
		GatewayID:   gw.ID,
		PeriodStart: now,
		PeriodEnd:   periodEnd,
	})
	if err != nil {
		return repoError(c, err, "subscription")
	}

	token, err := utils.NewAccessToken(h.Cfg.JWTSecret, userID, u.Role, req.PlanID, h.Cfg.AccessTTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "token generation failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"subscription": echo.Map{
			"id":          subID,
			"plan":        req.PlanID,
			"status":      model.SubscriptionActive,
			"gatewayId":   gw.ID,
			"validUntil":  periodEnd.Format(time.RFC3339),
			"chargedCents": value,
		},
		"user":  echo.Map{"id": userID, "plan": req.PlanID, "verified": true},
		"token": echo.Map{"access_token": token.Token, "expires_at": token.Exp.Format(time.RFC3339)},
	})
}

// ActivateFree handles POST /api/subscriptions/activate-free. Dropping to
// the FREE plan never revokes an already granted verified badge. The
// response carries a freshly signed token so the session's plan claim
// matches immediately.
func (h *SubscriptionHandler) ActivateFree(c echo.Context) error {
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

	// Dropping to FREE closes out any still-active paid subscription so
	// the gateway stops charging. A missing active row is the common case.
	if sub, err := h.Subs.ActiveForUser(ctx, userID); err == nil {
		if sub.GatewayID != "" {
			if err := h.Gateway.CancelSubscription(ctx, sub.GatewayID); err != nil {
				c.Logger().Errorf("gateway cancel for subscription %d failed: %v", sub.ID, err)
				return c.JSON(http.StatusBadGateway, echo.Map{"success": false, "error": "payment gateway cancel failed"})
			}
		}
		if _, err := h.Subs.Cancel(ctx, sub.ID, userID); err != nil {
			return repoError(c, err, "subscription")
		}
	} else if err != repository.ErrNotFound {
		return repoError(c, err, "subscription")
	}

	now := time.Now().UTC()
	if err := h.Users.SetPlan(ctx, userID, entitlement.PlanFree, now, now, false, ""); err != nil {
		return repoError(c, err, "user")
	}
	token, err := utils.NewAccessToken(h.Cfg.JWTSecret, userID, u.Role, entitlement.PlanFree, h.Cfg.AccessTTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "token generation failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"user":    echo.Map{"id": userID, "plan": entitlement.PlanFree, "verified": u.IsVerified},
		"token":   echo.Map{"access_token": token.Token, "expires_at": token.Exp.Format(time.RFC3339)},
	})
}

type cancelReq struct {
	SubscriptionID uint64 `json:"subscriptionId"`
}

// Cancel handles POST /api/subscriptions/cancel. The gateway is cancelled
// first; the local row then flips ACTIVE→CANCELLED and access runs until
// period_end.
func (h *SubscriptionHandler) Cancel(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "error": "unauthorized"})
	}
	var req cancelReq
	if err := c.Bind(&req); err != nil || req.SubscriptionID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "subscriptionId is required"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeoutSeconds*time.Second)
	defer cancel()

	sub, err := h.Subs.GetByID(ctx, req.SubscriptionID)
	if err != nil {
		return repoError(c, err, "subscription")
	}
	if sub.UserID != userID {
		return c.JSON(http.StatusForbidden, echo.Map{"success": false, "error": "subscription belongs to another account"})
	}
	if sub.GatewayID != "" {
		if err := h.Gateway.CancelSubscription(ctx, sub.GatewayID); err != nil {
			c.Logger().Errorf("gateway cancel for subscription %d failed: %v", sub.ID, err)
			return c.JSON(http.StatusBadGateway, echo.Map{"success": false, "error": "payment gateway cancel failed"})
		}
	}
	validUntil, err := h.Subs.Cancel(ctx, sub.ID, userID)
	if err != nil {
		return repoError(c, err, "subscription")
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"subscription": echo.Map{
			"id":         sub.ID,
			"status":     model.SubscriptionCancelled,
			"validUntil": validUntil.Format(time.RFC3339),
		},
	})
}
