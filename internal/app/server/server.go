package server

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"hrms/internal/domain/auth"
	"hrms/internal/domain/bankdetails"
	"hrms/internal/domain/benefits"
	"hrms/internal/domain/compliance"
	"hrms/internal/domain/employee"
	"hrms/internal/domain/history"
	"hrms/internal/domain/leave"
	"hrms/internal/domain/organization"
	"hrms/internal/domain/performance"
	"hrms/internal/domain/recruitment"
	"hrms/internal/domain/training"
	"hrms/internal/platform/config"
	"hrms/internal/platform/db"
	"hrms/internal/platform/jobs"
	"hrms/internal/platform/seed"
	authhandler "hrms/internal/transport/http/handlers/auth"
	bankdetailshandler "hrms/internal/transport/http/handlers/bankdetails"
	benefitshandler "hrms/internal/transport/http/handlers/benefits"
	compliancehandler "hrms/internal/transport/http/handlers/compliance"
	employeehandler "hrms/internal/transport/http/handlers/employees"
	historyhandler "hrms/internal/transport/http/handlers/history"
	leavehandler "hrms/internal/transport/http/handlers/leave"
	organizationhandler "hrms/internal/transport/http/handlers/organization"
	performancehandler "hrms/internal/transport/http/handlers/performance"
	recruitmenthandler "hrms/internal/transport/http/handlers/recruitment"
	traininghandler "hrms/internal/transport/http/handlers/training"
	"hrms/internal/transport/http/middleware"
)

func Run() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config invalid: %v", err)
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}
	defer pool.Close()

	if cfg.RunMigrations {
		if err := db.Migrate(ctx, pool, "migrations"); err != nil {
			log.Fatalf("migrations failed: %v", err)
		}
	}
	if cfg.RunSeed {
		if err := seed.Seed(ctx, pool, cfg); err != nil {
			log.Fatalf("seed failed: %v", err)
		}
	}

	authService := auth.NewService(pool, cfg.JWTSecret)
	employeeStore := employee.NewStore(pool)
	employeeService := employee.NewService(employeeStore)
	organizationStore := organization.NewStore(pool)
	organizationService := organization.NewService(organizationStore)
	bankStore := bankdetails.NewStore(pool)
	bankService := bankdetails.NewService(bankStore)
	historyStore := history.NewStore(pool)
	historyService := history.NewService(historyStore)
	benefitsService := benefits.NewService(pool)
	complianceService := compliance.NewService(pool, slog.Default())
	recruitmentService := recruitment.NewService(pool)
	performanceService := performance.NewService(pool)
	trainingService := training.NewService(pool)
	leaveService := leave.NewService(pool)

	jobsService := jobs.New(pool, cfg, employeeService, complianceService, benefitsService)
	jobsService.Start(ctx)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.BodyLimit(cfg.MaxBodyBytes))
	router.Use(middleware.Auth(cfg.JWTSecret))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := pool.Ping(ctx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	router.Route("/api/v1", func(r chi.Router) {
		authhandler.NewHandler(authService).RegisterRoutes(r)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireUser)

			employeehandler.NewHandler(employeeService).RegisterRoutes(r)
			organizationhandler.NewHandler(organizationService).RegisterRoutes(r)
			bankdetailshandler.NewHandler(bankService).RegisterRoutes(r)
			historyhandler.NewHandler(historyService).RegisterRoutes(r)
			benefitshandler.NewHandler(benefitsService).RegisterRoutes(r)
			compliancehandler.NewHandler(complianceService, cfg.ReportDir).RegisterRoutes(r)
			recruitmenthandler.NewHandler(recruitmentService).RegisterRoutes(r)
			performancehandler.NewHandler(performanceService).RegisterRoutes(r)
			traininghandler.NewHandler(trainingService).RegisterRoutes(r)
			leavehandler.NewHandler(leaveService).RegisterRoutes(r)
		})
	})

	log.Printf("HRMS server listening on %s", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, router); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
