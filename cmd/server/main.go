package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/chathub/backend/internal/bootstrap"
	"github.com/chathub/backend/internal/config"
	"github.com/chathub/backend/internal/handlers"
	"github.com/chathub/backend/internal/middleware"
	"github.com/chathub/backend/internal/services"
	"github.com/chathub/backend/pkg/logger"
	"github.com/chathub/backend/pkg/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

func main() {
	logger.Init()

	cfg := config.Load()
	utils.ConfigureJWT(cfg.JWT.Secret, cfg.JWT.ExpirationHours)

	sink, err := bootstrap.OpenSink(cfg.Snapshot)
	if err != nil {
		log.Fatalf("snapshot sink initialization failed: %v", err)
	}

	entityStore, err := bootstrap.LoadStore(sink, cfg.Seed)
	if err != nil {
		log.Fatalf("store initialization failed: %v", err)
	}

	membershipService := services.NewMembershipService(entityStore, sink)
	interestService := services.NewInterestService(entityStore, sink, cfg.Interests.OpenListing)
	reportService := services.NewReportService(entityStore, sink)

	authHandler := handlers.NewAuthHandler(membershipService)
	usersHandler := handlers.NewUsersHandler(membershipService)
	groupsHandler := handlers.NewGroupsHandler(membershipService)
	channelsHandler := handlers.NewChannelsHandler(membershipService)
	interestsHandler := handlers.NewInterestsHandler(interestService)
	reportsHandler := handlers.NewReportsHandler(reportService)

	authMiddleware := middleware.NewAuthMiddleware(entityStore)

	app := fiber.New(fiber.Config{BodyLimit: 1 * 1024 * 1024})
	app.Use(recover.New(recover.Config{EnableStackTrace: true}))
	app.Use(middleware.CORS())
	app.Use(middleware.RequestLogger())
	app.Use(middleware.SecurityLogger())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")
	api.Get("/version", handlers.GetVersion)

	authRoutes := api.Group("/auth")
	authRoutes.Post("/register", authHandler.Register)
	authRoutes.Post("/login", authHandler.Login)
	authRoutes.Get("/me", authMiddleware.RequireAuth, authHandler.Me)
	authRoutes.Delete("/me", authMiddleware.RequireAuth, authHandler.DeleteMe)

	userRoutes := api.Group("/users", authMiddleware.RequireAuth)
	userRoutes.Get("/", usersHandler.List)
	userRoutes.Post("/", usersHandler.Create)
	userRoutes.Delete("/:id", usersHandler.Delete)
	userRoutes.Post("/:id/group-admin", usersHandler.PromoteGroupAdmin)
	userRoutes.Delete("/:id/group-admin", usersHandler.DemoteGroupAdmin)
	userRoutes.Post("/:id/super-admin", usersHandler.PromoteSuperAdmin)

	groupRoutes := api.Group("/groups", authMiddleware.RequireAuth)
	groupRoutes.Post("/", groupsHandler.Create)
	groupRoutes.Get("/", groupsHandler.List)
	groupRoutes.Get("/:id", groupsHandler.Get)
	groupRoutes.Delete("/:id", groupsHandler.Delete)
	groupRoutes.Post("/:id/members", groupsHandler.AddMember)
	groupRoutes.Delete("/:id/members/:userId", groupsHandler.RemoveMember)
	groupRoutes.Post("/:id/leave", groupsHandler.Leave)
	groupRoutes.Post("/:id/channels", channelsHandler.Create)
	groupRoutes.Get("/:id/channels", channelsHandler.ListByGroup)
	groupRoutes.Post("/:id/interests", interestsHandler.Register)
	groupRoutes.Get("/:id/interests", interestsHandler.List)
	groupRoutes.Post("/:id/interests/:interestId/approve", interestsHandler.Approve)
	groupRoutes.Post("/:id/interests/:interestId/reject", interestsHandler.Reject)

	channelRoutes := api.Group("/channels", authMiddleware.RequireAuth)
	channelRoutes.Delete("/:id", channelsHandler.Delete)
	channelRoutes.Post("/:id/members", channelsHandler.AddMember)
	channelRoutes.Delete("/:id/members/:userId", channelsHandler.RemoveMember)
	channelRoutes.Post("/:id/bans", channelsHandler.Ban)
	channelRoutes.Delete("/:id/bans/:userId", channelsHandler.Unban)

	reportRoutes := api.Group("/reports", authMiddleware.RequireAuth)
	reportRoutes.Post("/", reportsHandler.Submit)
	reportRoutes.Get("/", reportsHandler.List)

	listenAddr := fmt.Sprintf(":%s", cfg.Server.Port)

	logger.Info("server_starting", map[string]interface{}{
		"port":             cfg.Server.Port,
		"address":          listenAddr,
		"snapshot_backend": cfg.Snapshot.Backend,
	})

	errCh := make(chan error, 1)
	go func() {
		errCh <- app.Listen(listenAddr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		log.Printf("shutting down server due to signal: %s", sig)
		shutdownDone := make(chan struct{})
		go func() {
			_ = app.Shutdown()
			close(shutdownDone)
		}()
		select {
		case <-shutdownDone:
		case <-time.After(10 * time.Second):
			log.Print("forced shutdown timeout reached")
		}
		// Final snapshot so a mutation committed just before the signal is
		// not lost to the best-effort persistence model.
		if err := sink.Persist(entityStore.Snapshot()); err != nil {
			logger.Error("final_snapshot_failed", map[string]interface{}{
				"error": err.Error(),
			})
		}
	case err := <-errCh:
		if err != nil {
			log.Fatalf("server error: %v", err)
		}
	}
}
