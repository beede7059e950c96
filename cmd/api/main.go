package main

import (
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/orionte/placement-api/internal/entity"
	"github.com/orionte/placement-api/internal/infra/database"
	"github.com/orionte/placement-api/internal/infra/http/handlers"
	"github.com/orionte/placement-api/internal/infra/http/middleware"
	"github.com/orionte/placement-api/internal/infra/mail"
	"github.com/orionte/placement-api/internal/infra/queue"
	"github.com/orionte/placement-api/internal/infra/storage"
	"github.com/orionte/placement-api/internal/usecase"
)

func main() {
	godotenv.Load()

	db, err := database.NewDBConnection(os.Getenv("DATABASE_URL"))
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	rabbitMQ, err := queue.NewRabbitMQ(
		os.Getenv("RABBITMQ_USER"), os.Getenv("RABBITMQ_PASS"),
		os.Getenv("RABBITMQ_HOST"), os.Getenv("RABBITMQ_PORT"),
	)
	if err != nil {
		log.Fatal(err)
	}
	defer rabbitMQ.Conn.Close()
	defer rabbitMQ.Ch.Close()

	uploadDir := os.Getenv("UPLOAD_DIR")
	if uploadDir == "" {
		uploadDir = "uploads"
	}
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("JWT_SECRET is required")
	}

	// Repositories
	leadRepo := database.NewLeadRepository(db)
	paymentRepo := database.NewPaymentRepository(db)
	conversionRepo := database.NewConversionRepository(db)
	stageRepo := database.NewStageRepository(db)
	documentRepo := database.NewDocumentRepository(db)
	priceRepo := database.NewServicePriceRepository(db)
	userRepo := database.NewUserRepository(db)
	logRepo := database.NewLogRepository(db)

	// Adapters
	store := storage.NewLocalStore(uploadDir)
	producer := queue.NewProducer(rabbitMQ.Conn, rabbitMQ.Ch)
	mailPort, _ := strconv.Atoi(os.Getenv("MAIL_PORT"))
	if mailPort == 0 {
		mailPort = 587
	}
	mailSender := mail.NewEmailSender(
		os.Getenv("MAIL_HOST"), mailPort, os.Getenv("MAIL_USER"), os.Getenv("MAIL_PASS"),
		os.Getenv("MAIL_FROM"),
	)

	// Worker consuming conversion events and emailing the new client
	worker := queue.NewWorker(rabbitMQ.Ch, mailSender)
	go worker.Start(queue.QueueName)

	// UseCases
	ledgerUC := usecase.NewLedgerUseCase(paymentRepo, leadRepo, priceRepo, logRepo)
	conversionUC := usecase.NewConversionUseCase(conversionRepo, paymentRepo, leadRepo, priceRepo, logRepo, producer)
	leadUC := usecase.NewLeadUseCase(leadRepo, stageRepo, documentRepo, logRepo)
	progressUC := usecase.NewProgressUseCase(stageRepo, logRepo)
	documentUC := usecase.NewDocumentUseCase(documentRepo, leadRepo, stageRepo, store, logRepo)
	priceUC := usecase.NewServicePriceUseCase(priceRepo, logRepo)
	userUC := usecase.NewUserUseCase(userRepo, logRepo)

	// Handlers
	authHandler := handlers.NewAuthHandler(userRepo, jwtSecret, 12*time.Hour)
	leadHandler := handlers.NewLeadHandler(leadUC)
	paymentHandler := handlers.NewPaymentHandler(ledgerUC, conversionUC, store)
	documentHandler := handlers.NewDocumentHandler(documentUC)
	stageHandler := handlers.NewStageHandler(progressUC)
	priceHandler := handlers.NewServicePriceHandler(priceUC)
	userHandler := handlers.NewUserHandler(userUC)
	healthHandler := handlers.NewHealthHandler(db, rabbitMQ.Conn, uploadDir)

	// Router
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"http://localhost:3000", "*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}))
	r.Use(middleware.Metrics)

	r.Get("/health", healthHandler.Handle)
	r.Handle("/metrics", promhttp.Handler())
	r.Post("/auth/login", authHandler.Login)

	// Uploaded files, served from the upload directory
	fileServer := http.FileServer(http.Dir(uploadDir))
	r.Get("/documents/*", fileServer.ServeHTTP)
	r.Get("/videocv/*", fileServer.ServeHTTP)
	r.Get("/payments/*", fileServer.ServeHTTP)

	// Staff and admin routes
	r.Group(func(r chi.Router) {
		r.Use(middleware.JWTAuth(jwtSecret))
		r.Use(middleware.RequireRole(entity.RoleAdmin, entity.RoleStaff))

		r.Post("/leads", leadHandler.Create)
		r.Get("/leads", leadHandler.List)
		r.Get("/leads/{id}", leadHandler.Tracker)
		r.Put("/leads/{id}", leadHandler.Update)
		r.Delete("/leads/{id}", leadHandler.Delete)
		r.Get("/leads/{id}/stages", stageHandler.ListForLead)
		r.Get("/converted-clients", leadHandler.ConvertedClients)

		r.Post("/payments", paymentHandler.AcceptInitialPayment)
		r.Get("/payments/check-transaction-id", paymentHandler.CheckTransactionID)
		r.Get("/payments/issue-transaction-id", paymentHandler.IssueTransactionID)
		r.Get("/payments/total-paid", paymentHandler.TotalPaid)
		r.Post("/payments/total-paid", paymentHandler.RecordPayment)
		r.Get("/payments/balance", paymentHandler.OutstandingBalance)

		r.Post("/documents/upload", documentHandler.Upload)
		r.Delete("/documents/{id}", documentHandler.Delete)
		r.Post("/videocv/{id}", documentHandler.UploadVideoCV)

		r.Patch("/stages/{id}", stageHandler.Complete)

		r.Get("/service-prices", priceHandler.List)
		r.Put("/service-prices", priceHandler.UpdateAll)
	})

	// Admin-only routes
	r.Group(func(r chi.Router) {
		r.Use(middleware.JWTAuth(jwtSecret))
		r.Use(middleware.RequireRole(entity.RoleAdmin))

		r.Post("/users", userHandler.Create)
		r.Get("/users", userHandler.List)
		r.Put("/users/{id}", userHandler.Update)
		r.Delete("/users/{id}", userHandler.Delete)
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("placement API listening on :%s", port)
	http.ListenAndServe(":"+port, r)
}
