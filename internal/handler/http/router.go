package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/Pydah-Soft-Projects/li-hrms-sub004/internal/handler/http/middleware"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(ja *jwtauth.JWTAuth, payrollHandler PayrollHandler, reportHandler ReportHandler) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "li-hrms-payroll"),
		slog.String("version", "v1.0.0"),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
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

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok\n"))
	})

	r.Route("/api/v1", func(r chi.Router) {
		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(ja))
			r.Use(middleware.AuthRequired(ja))

			r.Route("/payroll", func(r chi.Router) {
				r.Route("/configuration", func(r chi.Router) {
					r.Get("/", payrollHandler.GetConfiguration)
					r.Put("/", payrollHandler.ReplaceConfiguration)
				})

				r.Post("/run", payrollHandler.RunMonth)
				r.Post("/calculate/{employeeID}", payrollHandler.CalculateEmployee)

				r.Get("/payslips", payrollHandler.ListPayslips)
				r.Get("/payslips/{employeeID}", payrollHandler.GetPayslip)
				r.Get("/paysheet", payrollHandler.GetPaysheet)
			})

			r.Route("/reports", func(r chi.Router) {
				r.Get("/paysheet", reportHandler.ExportPaysheet)
			})
		})
	})
	return r
}
