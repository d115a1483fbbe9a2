package http

import (
	"log/slog"
	"os"

	"github.com/driveline-dms/payroll-backend-go/internal/handler/http/middleware"
	"github.com/driveline-dms/payroll-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(JWTService jwt.Service, payrollHandler PayrollHandler, timeoffHandler TimeOffHandler) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "driveline-payroll"),
		slog.String("version", "v1.0.0"),
		slog.String("env", "development"),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService.JWTAuth()))

			r.Route("/payroll", func(r chi.Router) {
				// Employee self-service
				r.Get("/paystubs", payrollHandler.GetMyPaystubs)
				r.Get("/paystubs/{id}/pdf", payrollHandler.GetPaystubPDF)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Get("/settings", payrollHandler.GetSettings)
					r.Put("/settings", payrollHandler.UpdateSettings)
					r.Get("/schedule", payrollHandler.GetSchedule)
					r.Post("/runs", payrollHandler.RunPayroll)
					r.Get("/runs", payrollHandler.ListRuns)
					r.Get("/runs/{id}", payrollHandler.GetRun)
					r.Get("/runs/{id}/export", payrollHandler.ExportRun)
				})
			})

			r.Route("/timeoff", func(r chi.Router) {
				r.Post("/requests", timeoffHandler.SubmitRequest)
				r.Get("/requests", timeoffHandler.GetMyRequests)
				r.Get("/balance", timeoffHandler.GetMyBalance)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Get("/requests/all", timeoffHandler.ListRequests)
					r.Post("/requests/{id}/decision", timeoffHandler.DecideRequest)
				})
			})
		})
	})
	return r
}
