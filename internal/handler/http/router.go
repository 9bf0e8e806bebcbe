package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"

	"github.com/staffhub/staffhub-backend-go/internal/config"
	"github.com/staffhub/staffhub-backend-go/internal/domain/user"
	"github.com/staffhub/staffhub-backend-go/internal/handler/http/middleware"
	"github.com/staffhub/staffhub-backend-go/internal/pkg/jwt"
)

type RouterDeps struct {
	Config            *config.Config
	JWTService        jwt.Service
	Roles             *user.RoleConfig
	AuthHandler       AuthHandler
	AttendanceHandler AttendanceHandler
	LeaveHandler      LeaveHandler
	ReportHandler     ReportHandler
	DashboardHandler  DashboardHandler
}

func NewRouter(deps RouterDeps) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "staffhub"),
		slog.String("env", deps.Config.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{deps.Config.App.FrontendURL},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/healthz"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", deps.AuthHandler.Login)
			r.Post("/refresh", deps.AuthHandler.RefreshToken)
			r.Post("/logout", deps.AuthHandler.Logout)
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(deps.JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(deps.JWTService))

			r.Route("/attendance", func(r chi.Router) {
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(deps.Roles, user.PermissionAttendanceCreate))
					r.Post("/sign-in", deps.AttendanceHandler.SignIn)
					r.Post("/break/start", deps.AttendanceHandler.StartBreak)
					r.Post("/break/end", deps.AttendanceHandler.EndBreak)
					r.Post("/sign-out", deps.AttendanceHandler.SignOut)
				})

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(deps.Roles, user.PermissionAttendanceViewOwn))
					r.Get("/today", deps.AttendanceHandler.GetToday)
					r.Get("/my", deps.AttendanceHandler.GetMyAttendance)
				})

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(deps.Roles, user.PermissionAttendanceViewAll))
					r.Get("/", deps.AttendanceHandler.List)
				})

				r.Get("/{id}", deps.AttendanceHandler.Get)
			})

			r.Route("/leave", func(r chi.Router) {
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(deps.Roles, user.PermissionLeaveCreate))
					r.Post("/", deps.LeaveHandler.Submit)
					r.Post("/{id}/cancel", deps.LeaveHandler.Cancel)
				})

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(deps.Roles, user.PermissionLeaveViewOwn))
					r.Get("/my", deps.LeaveHandler.GetMyRequests)
					r.Get("/my/quota", deps.LeaveHandler.GetMyQuota)
				})

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(deps.Roles, user.PermissionLeaveViewAll))
					r.Get("/", deps.LeaveHandler.List)
				})

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(deps.Roles, user.PermissionLeaveApprove))
					r.Patch("/{id}/decision", deps.LeaveHandler.Decide)
				})

				r.Get("/{id}", deps.LeaveHandler.Get)
			})

			r.Route("/reports", func(r chi.Router) {
				r.Use(middleware.RequirePermission(deps.Roles, user.PermissionReportsView))
				r.Get("/attendance", deps.ReportHandler.AttendanceReport)
				r.Get("/attendance/csv", deps.ReportHandler.AttendanceReportCSV)
				r.Get("/leave", deps.ReportHandler.LeaveReport)
				r.Get("/leave/csv", deps.ReportHandler.LeaveReportCSV)
			})

			r.Route("/dashboard", func(r chi.Router) {
				r.Use(middleware.RequirePermission(deps.Roles, user.PermissionDashboardView))
				r.Get("/summary", deps.DashboardHandler.GetSummary)
			})
		})
	})
	return r
}
