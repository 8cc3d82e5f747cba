package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/buscaaquibdc/marketplace-api/internal/config"
	"github.com/buscaaquibdc/marketplace-api/internal/database"
	"github.com/buscaaquibdc/marketplace-api/internal/handler"
	"github.com/buscaaquibdc/marketplace-api/internal/payment"
	"github.com/buscaaquibdc/marketplace-api/internal/queue"
	"github.com/buscaaquibdc/marketplace-api/internal/repository"
	"github.com/buscaaquibdc/marketplace-api/internal/router"
)

func main() {
	_ = godotenv.Load() // .env is optional; real deployments use the environment
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	rdb := config.NewRedisClient() // nil when Redis is unreachable; cache and limiter degrade

	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	ads := repository.NewAdRepo(db)
	businesses := repository.NewBusinessRepo(db)
	coupons := repository.NewCouponRepo(db)
	highlights := repository.NewHighlightRepo(db)
	subs := repository.NewSubscriptionRepo(db)

	gateway := payment.NewAsaasClient(cfg.AsaasBaseURL, cfg.AsaasAPIKey)

	auth := handler.NewAuthHandler(cfg, users, tokens)
	public := handler.NewPublicHandler(ads)
	adH := handler.NewAdHandler(ads, users)
	bizH := handler.NewBusinessHandler(businesses)
	profH := handler.NewProfileHandler(users)
	subH := handler.NewSubscriptionHandler(cfg, users, subs, coupons, gateway)
	couponH := handler.NewCouponHandler(coupons)
	hlH := handler.NewHighlightHandler(highlights)
	adminBiz := handler.NewAdminBusinessHandler(businesses)
	adminCoupon := handler.NewAdminCouponHandler(coupons)
	adminHl := handler.NewAdminHighlightHandler(highlights)
	adminAd := handler.NewAdminAdHandler(ads)

	queue.SetBrokerURL(cfg.AmqpURL)
	go func() {
		if err := queue.StartModerationConsumer(); err != nil {
			log.Printf("moderation consumer: %v", err)
		}
	}()
	go func() {
		if err := queue.StartProfileSyncConsumer(users); err != nil {
			log.Printf("profile sync consumer: %v", err)
		}
	}()

	e := echo.New()
	e.HideBanner = true
	router.RegisterRoutes(e)
	router.RegisterAuth(e, auth, cfg.JWTSecret)
	router.RegisterPublic(e, public, hlH, rdb)
	router.RegisterUser(e, adH, bizH, profH, subH, couponH, hlH, cfg.JWTSecret)
	router.RegisterAdmin(e, adminBiz, adminCoupon, couponH, adminHl, hlH, adminAd, cfg.JWTSecret)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
