package server

import (
	"fmt"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/xendit/xendit-go/v6"
	"gorm.io/gorm"

	"github.com/petsuhq/petsu-backend/config"
	"github.com/petsuhq/petsu-backend/internal/handlers"
	"github.com/petsuhq/petsu-backend/internal/middleware"
	"github.com/petsuhq/petsu-backend/internal/services/consultation"
	"github.com/petsuhq/petsu-backend/internal/workers"
)

func Start() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %v", err)
	}

	db, err := config.InitDatabase(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %v", err)
	}

	xnd, err := config.LoadXenditConfig()
	if err != nil {
		return fmt.Errorf("failed to load xendit config: %v", err)
	}
	xenditClient, err := config.InitXenditClient(xnd)
	if err != nil {
		return fmt.Errorf("failed to initialize xendit client: %v", err)
	}

	stop := make(chan struct{})
	defer close(stop)
	startWorkers(db, stop)

	r := gin.Default()

	setupRoutes(r, db, xenditClient)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	return r.Run(":" + port)
}

// startWorkers launches the outbox mailer and the consultation expiry sweep.
// Both stop when the stop channel closes.
func startWorkers(db *gorm.DB, stop <-chan struct{}) {
	sender := workers.NewFunctionSender(
		os.Getenv("NOTIFY_FUNCTION_URL"),
		os.Getenv("NOTIFY_FUNCTION_KEY"),
	)
	mailer := workers.NewMailer(workers.NewMailbox(db), sender)
	go mailer.Start(15*time.Second, stop)

	consultationSvc := consultation.NewService(consultation.NewStore(db))
	go workers.StartConsultationExpirer(consultationSvc, 10*time.Second, stop)
}

func setupRoutes(r *gin.Engine, db *gorm.DB, xenditClient *xendit.APIClient) {
	r.Use(middleware.DatabaseMiddleware(db))
	r.Use(middleware.XenditMiddleware(xenditClient))
	r.Use(middleware.MetricsMiddleware())

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.Static("/uploads", "./uploads")

	public := r.Group("/v1")
	{
		public.POST("/register", handlers.Register)
		public.POST("/login", handlers.Login)

		eventPublic := public.Group("/events")
		{
			eventPublic.GET("", handlers.ListEvents)
			eventPublic.GET("/:id", handlers.GetEvent)
		}

		groomerPublic := public.Group("/groomers")
		{
			groomerPublic.GET("", handlers.ListGroomers)
			groomerPublic.GET("/:id", handlers.GetGroomer)
			groomerPublic.GET("/:id/slots", handlers.ListAvailableSlots)
		}

		public.GET("/banners", handlers.ListActiveBanners)
	}

	protected := r.Group("/v1")
	protected.Use(middleware.JWTAuthMiddleware())
	{
		protected.GET("/profile", handlers.GetProfile)

		eventProtected := protected.Group("/events")
		{
			eventProtected.POST("", handlers.CreateEvent)
			eventProtected.PUT("/:id", handlers.UpdateEvent)
			eventProtected.DELETE("/:id", handlers.DeleteEvent)
			eventProtected.POST("/:id/bookings", handlers.BookEvent)
		}

		bookingProtected := protected.Group("/bookings")
		{
			bookingProtected.GET("", handlers.ListMyBookings)
			bookingProtected.DELETE("/:id", handlers.CancelBooking)
			bookingProtected.GET("/:id/qr", handlers.GenerateBookingQR)
			bookingProtected.POST("/validate", handlers.ValidateBooking)
		}

		groomerProtected := protected.Group("/groomers")
		{
			groomerProtected.POST("/apply", handlers.ApplyGroomer)
			groomerProtected.PUT("/availability", handlers.SetGroomerAvailability)
			groomerProtected.POST("/packages", handlers.CreateGroomingPackage)
			groomerProtected.DELETE("/packages/:packageId", handlers.DeleteGroomingPackage)
			groomerProtected.POST("/slots", handlers.AddTimeSlots)
		}

		groomingProtected := protected.Group("/grooming")
		{
			groomingProtected.POST("/quote", handlers.QuoteGrooming)
			groomingProtected.POST("/bookings", handlers.CreateGroomingBooking)
			groomingProtected.GET("/bookings", handlers.ListMyGroomingBookings)
			groomingProtected.GET("/appointments", handlers.ListGroomerAppointments)
		}

		vetProtected := protected.Group("/vets")
		{
			vetProtected.POST("/apply", handlers.ApplyVet)
			vetProtected.PUT("/online", handlers.SetVetOnline)
			vetProtected.GET("/queue", handlers.ListPendingConsultations)
		}

		consultationProtected := protected.Group("/consultations")
		{
			consultationProtected.POST("", handlers.RequestConsultation)
			consultationProtected.GET("/:id", handlers.GetConsultation)
			consultationProtected.POST("/:id/accept", handlers.AcceptConsultation)
			consultationProtected.POST("/:id/complete", handlers.CompleteConsultation)
			consultationProtected.POST("/:id/messages", handlers.PostConsultationMessage)
			consultationProtected.GET("/:id/messages", handlers.ListConsultationMessages)
		}

		payoutProtected := protected.Group("/payouts")
		{
			payoutProtected.POST("", handlers.CreatePayout)
			payoutProtected.GET("", handlers.ListMyPayouts)
		}

		protected.POST("/payments", handlers.CreatePaymentLink)
	}

	admin := r.Group("/v1/admin")
	admin.Use(middleware.JWTAuthMiddleware(), middleware.RequireRole("admin"))
	{
		admin.GET("/events/pending", handlers.ListPendingEvents)
		admin.PUT("/events/:id/review", handlers.ReviewEvent)

		admin.GET("/groomers/pending", handlers.ListPendingGroomerApplications)
		admin.PUT("/groomers/:id/review", handlers.ReviewGroomerApplication)

		admin.GET("/vets/pending", handlers.ListPendingVetApplications)
		admin.PUT("/vets/:id/review", handlers.ReviewVetApplication)

		admin.GET("/payouts", handlers.ListPayouts)
		admin.PUT("/payouts/:id/approve", handlers.ApprovePayout)
		admin.PUT("/payouts/:id/paid", handlers.MarkPayoutPaid)
		admin.PUT("/payouts/:id/reject", handlers.RejectPayout)

		admin.POST("/banners", handlers.CreateBanner)
		admin.PUT("/banners/:id", handlers.UpdateBanner)
		admin.DELETE("/banners/:id", handlers.DeleteBanner)
	}
}
