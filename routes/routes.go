package routes

import (
	"context"
	"net/http"

	"TeleAdmin/backend"
	"TeleAdmin/cache"
	"TeleAdmin/config"
	"TeleAdmin/console"
	"TeleAdmin/controllers"
	"TeleAdmin/feed"
	"TeleAdmin/handlers"
	"TeleAdmin/middlewares"
	"TeleAdmin/notify"
	"TeleAdmin/repositories"
	"TeleAdmin/services"
	"TeleAdmin/session"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

// SetupRoutes wires the console together and returns the HTTP handler plus
// the application state container.
func SetupRoutes(store *cache.Store, config *config.AppConfig, redisClient *redis.Client) (http.Handler, *console.App, error) {
	// Set Gin to release mode
	gin.SetMode(gin.ReleaseMode)

	router := gin.Default()

	corsConfig := middlewares.DefaultCorsConfig(config.AllowedOrigins)
	router.Use(middlewares.CorsMiddleware(corsConfig))

	router.Use(middlewares.NewRateLimiterMiddleware(middlewares.RateLimiterConfig{
		RequestsPerSecond: 15,
		Burst:             30,
	}))

	router.Use(middlewares.LoggingMiddleware())

	sessions, err := session.NewManager(config.GetSymmetricKey(), store)
	if err != nil {
		return nil, nil, err
	}

	// An upstream 401 tears the session down; the in-flight request that
	// observed it is already aborted by the client.
	api := backend.NewClient(config.UpstreamBaseURL, sessions.UpstreamToken, func() {
		sessions.ForceLogout(context.Background())
	})

	userRepo := repositories.NewUserRepository(api, store)
	doctorRepo := repositories.NewDoctorRepository(api, store)
	patientRepo := repositories.NewPatientRepository(api, store)
	paymentRepo := repositories.NewPaymentRepository(api)
	reportRepo := repositories.NewReportRepository(api)

	toasts := notify.New()
	liveFeed := feed.New(redisClient)

	app := &console.App{
		Sessions:  sessions,
		Tabs:      console.NewController(),
		Auth:      services.NewAuthService(api, userRepo, sessions),
		Dashboard: services.NewDashboardService(reportRepo, paymentRepo, liveFeed, toasts),
		Users:     services.NewUserService(userRepo, toasts),
		Doctors:   services.NewDoctorService(doctorRepo, toasts),
		Patients:  services.NewPatientService(patientRepo, toasts),
		Payments:  services.NewPaymentService(paymentRepo, toasts),
		Toasts:    toasts,
		Feed:      liveFeed,
	}
	app.Wire()

	gate := middlewares.SessionGate(sessions)

	authController := controllers.NewAuthController(handlers.NewAuthHandler(app.Auth))
	authController.RegisterRoutes(router, gate)

	controllers.SetupConsoleRoutes(
		router,
		gate,
		handlers.NewTabHandler(app),
		handlers.NewDashboardHandler(app.Dashboard),
		handlers.NewUserHandler(app.Users),
		handlers.NewDoctorHandler(app.Doctors),
		handlers.NewPatientHandler(app.Patients),
		handlers.NewPaymentHandler(app.Payments),
		handlers.NewNotifyHandler(toasts, liveFeed),
	)

	controllers.SetupRootRoute(router)

	return router, app, nil
}
