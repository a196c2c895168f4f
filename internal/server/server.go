package server

import (
	"fmt"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/farellandr/eventku/config"
	"github.com/farellandr/eventku/internal/handlers"
	"github.com/farellandr/eventku/internal/middleware"
	"github.com/farellandr/eventku/internal/notification"
)

func Start() error {
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %v", err)
	}

	db, err := config.InitDatabase(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %v", err)
	}

	var publisher *notification.Publisher
	if cfg.RabbitMQURL != "" {
		publisher, err = notification.NewPublisher(cfg.RabbitMQURL, log.Logger)
		if err != nil {
			return fmt.Errorf("failed to connect to rabbitmq: %v", err)
		}
		defer publisher.Close()
	}

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Authorization"},
	}))
	r.Static("/media", "./media")

	setupRoutes(r, db, publisher)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Info().Str("port", port).Msg("server starting")
	return r.Run(":" + port)
}

func setupRoutes(r *gin.Engine, db *gorm.DB, publisher *notification.Publisher) {
	r.Use(middleware.DatabaseMiddleware(db))
	r.Use(middleware.NotificationMiddleware(publisher))

	public := r.Group("")
	{
		public.POST("/profile/register", handlers.Register)
		public.POST("/profile/login", handlers.Login)

		eventPublic := public.Group("/events")
		{
			eventPublic.GET("", handlers.ListEvents)
			eventPublic.GET("/:id", handlers.GetEvent)
		}

		// Bookings are addressable by code alone: whoever holds the code
		// can view, cancel or render it.
		bookingPublic := public.Group("/bookings")
		{
			bookingPublic.GET("/:code", handlers.GetBooking)
			bookingPublic.PATCH("/:code/cancel", handlers.CancelBooking)
			bookingPublic.GET("/:code/qr", handlers.BookingQR)
		}
	}

	protected := r.Group("")
	protected.Use(middleware.JWTAuthMiddleware())
	{
		protected.GET("/profile/me", handlers.CurrentUser)
		protected.PUT("/profile/edit", handlers.UpdateProfile)
		protected.PATCH("/profile/edit", handlers.UpdateProfile)
		protected.POST("/profile/logout", handlers.Logout)

		protected.GET("/bookings", handlers.ListBookings)
		protected.POST("/bookings/create", handlers.CreateBooking)
	}

	admin := r.Group("/events")
	admin.Use(middleware.JWTAuthMiddleware(), middleware.StaffRequired())
	{
		admin.POST("", handlers.CreateEvent)
		admin.PUT("/:id", handlers.UpdateEvent)
		admin.DELETE("/:id", handlers.DeleteEvent)
	}
}
