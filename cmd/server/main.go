package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/Ranlix-IT/cs2-mini-app-secure/internal/cache"
	"github.com/Ranlix-IT/cs2-mini-app-secure/internal/cases"
	"github.com/Ranlix-IT/cs2-mini-app-secure/internal/config"
	"github.com/Ranlix-IT/cs2-mini-app-secure/internal/handler"
	"github.com/Ranlix-IT/cs2-mini-app-secure/internal/middleware"
	"github.com/Ranlix-IT/cs2-mini-app-secure/internal/repository"
	"github.com/Ranlix-IT/cs2-mini-app-secure/internal/service"
	"github.com/Ranlix-IT/cs2-mini-app-secure/internal/telegram"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Connect to database
	repo, err := repository.New(cfg.Database.DSN())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer repo.Close()

	// Redis is optional; without it promo listings just skip the cache
	redisCache, err := cache.Connect(cfg)
	if err != nil {
		log.Printf("Warning: Redis unavailable, promo cache disabled: %v", err)
	}
	defer redisCache.Close()

	// Create services
	userService := service.NewUserService(repo)
	balanceSvc := service.NewBalanceService(repo)
	caseSvc := service.NewCaseService(repo, cases.Default())
	promoSvc := service.NewPromoService(repo, redisCache)
	referralSvc := service.NewReferralService(repo, cfg.Telegram.BotUsername)
	dailyBonusSvc := service.NewDailyBonusService(repo)
	verificationSvc := service.NewVerificationService(repo, cfg)

	// Create Telegram bot
	var bot *telegram.Bot
	if cfg.Telegram.BotToken != "" {
		bot, err = telegram.NewBot(cfg, userService, balanceSvc, referralSvc, dailyBonusSvc)
		if err != nil {
			log.Printf("Warning: Failed to create Telegram bot: %v", err)
		} else {
			log.Printf("Telegram bot @%s initialized", bot.GetBotUsername())
		}
	}

	var notifier service.WithdrawalNotifier
	if bot != nil {
		notifier = bot
	}
	withdrawalSvc := service.NewWithdrawalService(repo, notifier)

	// Create handlers
	h := handler.New(cfg, userService, balanceSvc, caseSvc, promoSvc, referralSvc, dailyBonusSvc, verificationSvc, withdrawalSvc)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.Server.AllowOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-Telegram-Init-Data",
	}))

	// Health check
	app.Get("/health", h.Health)

	// API routes with Telegram authentication
	api := app.Group("/api", middleware.TelegramAuth(cfg))

	api.Get("/user", h.GetUser)
	api.Get("/user/transactions", h.GetTransactions)
	api.Post("/set-trade-link", h.SetTradeLink)

	api.Get("/cases", h.GetCases)
	api.Post("/open-case", h.OpenCase)
	api.Get("/inventory", h.GetInventory)
	api.Post("/withdraw-item", h.WithdrawItem)

	api.Post("/daily-bonus", h.ClaimDailyBonus)
	api.Post("/activate-promo", h.ActivatePromo)
	api.Get("/available-promos", h.GetAvailablePromos)

	api.Post("/earn/invite-friend", h.InviteFriend)
	api.Get("/earn/referral-info", h.GetReferralInfo)
	api.Post("/earn/check-telegram", h.CheckTelegram)
	api.Post("/earn/check-steam", h.CheckSteam)

	// Admin routes (Telegram auth + configured admin ids)
	admin := app.Group("/api/admin", middleware.TelegramAuth(cfg), middleware.AdminAuth(cfg))
	admin.Post("/promo", h.AdminCreatePromo)
	admin.Post("/promo/:code/deactivate", h.AdminDeactivatePromo)
	admin.Get("/withdrawals", h.AdminListWithdrawals)
	admin.Post("/withdrawals/:id/resolve", h.AdminResolveWithdrawal)
	admin.Post("/settings/referral-bonus", h.AdminSetReferralBonus)

	// Start background jobs
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if bot != nil {
		go bot.StartPolling(ctx)
		log.Println("Telegram bot started with long polling")
	}

	recheckWorker := service.NewRecheckWorker(repo, cfg.Game.RecheckInterval)
	go recheckWorker.Start(ctx)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("Shutting down server...")
		cancel()
		_ = app.Shutdown()
	}()

	// Start server
	log.Printf("Server starting on port %s", cfg.Server.Port)
	if err := app.Listen(":" + cfg.Server.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
