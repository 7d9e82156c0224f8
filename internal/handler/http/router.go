package http

import (
	"log/slog"

	"github.com/cmlabs-hris/smarthr-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/smarthr-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/smarthr-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

type Handlers struct {
	Attendance  AttendanceHandler
	LateRequest LateRequestHandler
	Leave       LeaveHandler
	Dashboard   DashboardHandler
	User        UserHandler

	// Upload serves signed links to local attachments. Nil when files live in S3.
	Upload UploadHandler
}

type RouterOptions struct {
	Logger         *slog.Logger
	LogLevel       slog.Level
	AllowedOrigins []string
}

func NewRouter(JWTService jwt.Service, h Handlers, opts RouterOptions) *chi.Mux {
	r := chi.NewRouter()

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  opts.LogLevel,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {
		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService.JWTAuth()))

			r.Route("/attendance", func(r chi.Router) {
				r.With(middleware.RequirePermission(user.PermissionAttendanceCreate)).Post("/check-in", h.Attendance.CheckIn)
				r.With(middleware.RequirePermission(user.PermissionAttendanceCreate)).Post("/check-out", h.Attendance.CheckOut)
				r.With(middleware.RequirePermission(user.PermissionAttendanceViewOwn)).Get("/my-history", h.Attendance.MyHistory)
				r.With(middleware.RequirePermission(user.PermissionAttendanceViewOwn)).Get("/today", h.Attendance.Today)
				r.With(middleware.RequirePermission(user.PermissionLateRequestCreate)).Post("/late-requests", h.LateRequest.Create)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireAdmin)
					r.Use(middleware.RequirePermission(user.PermissionAttendanceViewAll))
					r.Get("/history/{userID}", h.Attendance.HistoryByUser)
					r.Get("/all", h.Attendance.All)
					r.Get("/recent", h.Attendance.Recent)
				})
			})

			r.Route("/late-requests", func(r chi.Router) {
				r.With(middleware.RequirePermission(user.PermissionLateRequestCreate)).Get("/my-status", h.LateRequest.MyStatus)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireAdmin)
					r.With(middleware.RequirePermission(user.PermissionLateRequestViewAll)).Get("/pending", h.LateRequest.Pending)
					r.With(middleware.RequirePermission(user.PermissionLateRequestDecide)).Put("/{id}/approve", h.LateRequest.Approve)
					r.With(middleware.RequirePermission(user.PermissionLateRequestDecide)).Put("/{id}/reject", h.LateRequest.Reject)
				})
			})

			r.Route("/leaves", func(r chi.Router) {
				r.With(middleware.RequirePermission(user.PermissionLeaveCreate)).Post("/", h.Leave.Apply)
				r.With(middleware.RequirePermission(user.PermissionLeaveViewOwn)).Get("/my", h.Leave.My)
				r.With(middleware.RequirePermission(user.PermissionLeaveViewOwn)).Get("/balance", h.Leave.Balance)
				r.With(middleware.RequirePermission(user.PermissionLeaveViewOwn)).Get("/{id}/attachment", h.Leave.Attachment)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireAdmin)
					r.With(middleware.RequirePermission(user.PermissionLeaveViewAll)).Get("/", h.Leave.All)
					r.With(middleware.RequirePermission(user.PermissionLeaveApprove)).Put("/{id}/approve", h.Leave.Approve)
					r.With(middleware.RequirePermission(user.PermissionLeaveApprove)).Put("/{id}/reject", h.Leave.Reject)
				})
			})

			r.Route("/dashboard", func(r chi.Router) {
				r.With(middleware.RequirePermission(user.PermissionDashboardViewOwn)).Get("/me", h.Dashboard.Me)
				r.With(middleware.RequireAdmin, middleware.RequirePermission(user.PermissionDashboardViewSystem)).Get("/admin", h.Dashboard.Admin)
			})

			r.Route("/users", func(r chi.Router) {
				r.Get("/me", h.User.Me)
				r.Put("/{id}", h.User.Update)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireAdmin)
					r.Get("/", h.User.List)
					r.Post("/", h.User.Create)
					r.Get("/{id}", h.User.Get)
				})
			})
		})
	})

	if h.Upload != nil {
		r.Get("/uploads/*", h.Upload.Serve)
	}

	return r
}
