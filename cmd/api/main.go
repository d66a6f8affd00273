package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/xavierca1/leadrunner/internal/config"
	"github.com/xavierca1/leadrunner/internal/infra/database"
	"github.com/xavierca1/leadrunner/internal/infra/http/handlers"
	"github.com/xavierca1/leadrunner/internal/infra/http/middleware"
	"github.com/xavierca1/leadrunner/internal/infra/integration/apollo"
	"github.com/xavierca1/leadrunner/internal/infra/integration/razorpay"
	"github.com/xavierca1/leadrunner/internal/infra/integration/stripe"
	"github.com/xavierca1/leadrunner/internal/infra/mail"
	"github.com/xavierca1/leadrunner/internal/infra/queue"
	"github.com/xavierca1/leadrunner/internal/infra/worker"
	"github.com/xavierca1/leadrunner/internal/usecase"
)

func main() {
	godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	settings, err := config.OpenSettings(cfg.SettingsFile)
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.NewDBConnection(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	rabbitMQ, err := queue.NewRabbitMQ(cfg.RabbitUser, cfg.RabbitPass, cfg.RabbitHost, cfg.RabbitPort)
	if err != nil {
		log.Fatal(err)
	}
	defer rabbitMQ.Conn.Close()
	defer rabbitMQ.Ch.Close()

	// 1. Repositórios
	leadRepo := database.NewLeadRepository(db)
	dealRepo := database.NewDealRepository(db)

	// 2. Gateways e Adapters
	apolloClient := apollo.NewClient(cfg.ApolloAPIKey, cfg.ApolloBaseURL)
	stripeClient := stripe.NewClient(cfg.StripeSecretKey)
	razorpayClient := razorpay.NewClient(cfg.RazorpayKeyID, cfg.RazorpayKeySecret)
	producer := queue.NewProducer(rabbitMQ.Conn, rabbitMQ.Ch)
	mailSender := mail.NewEmailSender(
		mail.SMTPAccount{Host: cfg.USSMTPHost, Port: cfg.USSMTPPort, User: cfg.USSMTPUser, Password: cfg.USSMTPPass},
		mail.SMTPAccount{Host: cfg.INSMTPHost, Port: cfg.INSMTPPort, User: cfg.INSMTPUser, Password: cfg.INSMTPPass},
	)

	// 3. UseCases
	searchUC := usecase.NewSearchLeadsUseCase(apolloClient, leadRepo)
	outreachUC := usecase.NewStartOutreachUseCase(leadRepo, mailSender, settings)
	recordEventUC := usecase.NewRecordEventUseCase(leadRepo, dealRepo, mailSender, settings)
	updateUC := usecase.NewUpdateLeadUseCase(leadRepo)
	paymentUC := usecase.NewCreatePaymentUseCase(leadRepo, dealRepo, stripeClient, razorpayClient, mailSender, settings)
	analyticsUC := usecase.NewAnalyticsUseCase(leadRepo, dealRepo)

	// 4. Workers (fila de eventos inbound + sweep periódico da cadência)
	eventWorker := queue.NewWorker(rabbitMQ.Ch, recordEventUC)
	go eventWorker.Start(queue.QueueName)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cadenceWorker := worker.NewCadenceWorker(outreachUC)
	cadenceWorker.OnResult = handlers.RecordOutreachMetrics
	go cadenceWorker.Start(ctx)

	// 5. Handlers
	leadHandler := handlers.NewLeadHandler(searchUC, updateUC, leadRepo)
	outreachHandler := handlers.NewOutreachHandler(outreachUC)
	paymentHandler := handlers.NewPaymentHandler(paymentUC)
	analyticsHandler := handlers.NewAnalyticsHandler(analyticsUC)
	settingsHandler := handlers.NewSettingsHandler(settings)
	webhookLimiter := handlers.NewRateLimiter(60, time.Minute)
	webhookHandler := handlers.NewWebhookHandler(producer, webhookLimiter)
	healthHandler := handlers.NewHealthHandler(db, rabbitMQ.Conn)

	// 6. Router
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{cfg.DashboardOrigin},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Post("/api/leads/search", leadHandler.Search)
	r.Get("/api/leads", leadHandler.List)
	r.Post("/api/lead/update", leadHandler.Update)
	r.Post("/api/outreach/start", outreachHandler.Start)
	r.Post("/api/payment/create", paymentHandler.Create)
	r.Get("/api/payment/suggest/{leadId}", paymentHandler.Suggest)
	r.Get("/api/analytics/get", analyticsHandler.Get)
	r.Post("/api/webhook/email", webhookHandler.Email)
	r.Post("/api/webhook/payment", webhookHandler.Payment)
	r.Get("/api/settings", settingsHandler.Get)
	r.Post("/api/settings", settingsHandler.Update)
	r.Get("/health", healthHandler.Handle)
	r.Handle("/metrics", promhttp.Handler())

	addr := ":" + cfg.Port
	log.Printf("🔥 LeadRunner rodando na porta %s", addr)
	if err := http.ListenAndServe(addr, r); err != nil {
		log.Fatal(err)
	}
}
