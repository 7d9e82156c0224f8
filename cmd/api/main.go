package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cmlabs-hris/smarthr-backend-go/internal/config"
	"github.com/cmlabs-hris/smarthr-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/smarthr-backend-go/internal/domain/laterequest"
	"github.com/cmlabs-hris/smarthr-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/smarthr-backend-go/internal/domain/user"
	appHTTP "github.com/cmlabs-hris/smarthr-backend-go/internal/handler/http"
	"github.com/cmlabs-hris/smarthr-backend-go/internal/pkg/calendar"
	"github.com/cmlabs-hris/smarthr-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/smarthr-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/smarthr-backend-go/internal/pkg/storage"
	"github.com/cmlabs-hris/smarthr-backend-go/internal/repository/memory"
	"github.com/cmlabs-hris/smarthr-backend-go/internal/repository/postgresql"
	attendanceService "github.com/cmlabs-hris/smarthr-backend-go/internal/service/attendance"
	dashboardService "github.com/cmlabs-hris/smarthr-backend-go/internal/service/dashboard"
	"github.com/cmlabs-hris/smarthr-backend-go/internal/service/file"
	lateRequestService "github.com/cmlabs-hris/smarthr-backend-go/internal/service/laterequest"
	leaveService "github.com/cmlabs-hris/smarthr-backend-go/internal/service/leave"
	userService "github.com/cmlabs-hris/smarthr-backend-go/internal/service/user"
	"github.com/go-chi/httplog/v3"
)

type repositories struct {
	tx           database.Transactor
	users        user.UserRepository
	attendances  attendance.AttendanceRepository
	lateRequests laterequest.LateRequestRepository
	leaves       leave.LeaveRequestRepository
	close        func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Error loading config", "error", err)
		os.Exit(1)
	}

	logFormat := httplog.SchemaECS.Concise(cfg.App.Env != "production")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       cfg.SlogLevel(),
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "smarthr"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.App.Env),
	)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("Server stopped with error", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	cal, err := calendar.Load(cfg.App.Timezone)
	if err != nil {
		return fmt.Errorf("invalid APP_TIMEZONE: %w", err)
	}
	clock := calendar.SystemClock{}

	repos, err := openRepositories(ctx, cfg)
	if err != nil {
		return err
	}
	defer repos.close()

	fileStorage, localStorage, err := openStorage(ctx, cfg)
	if err != nil {
		return err
	}

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	fileService := file.NewFileService(fileStorage, clock)

	attendanceSvc := attendanceService.NewAttendanceService(repos.attendances, repos.lateRequests, repos.users, clock, cal)
	lateRequestSvc := lateRequestService.NewLateRequestService(repos.tx, repos.lateRequests, repos.users, clock, cal)
	leaveSvc := leaveService.NewLeaveService(
		repos.tx,
		repos.leaves,
		repos.users,
		fileService,
		leaveService.NewQuotaCalculator(nil),
		clock,
	)
	dashboardSvc := dashboardService.NewDashboardService(repos.attendances, repos.leaves, repos.users, clock, cal)
	userSvc := userService.NewUserService(repos.users)

	if cfg.Admin.Seed {
		if _, err := userSvc.EnsureAdmin(ctx, user.AdminSeed{
			ID:       cfg.Admin.ID,
			Username: cfg.Admin.Username,
			Email:    cfg.Admin.Email,
			FullName: cfg.Admin.FullName,
		}); err != nil {
			return err
		}
	}

	handlers := appHTTP.Handlers{
		Attendance:  appHTTP.NewAttendanceHandler(attendanceSvc),
		LateRequest: appHTTP.NewLateRequestHandler(lateRequestSvc),
		Leave:       appHTTP.NewLeaveHandler(leaveSvc),
		Dashboard:   appHTTP.NewDashboardHandler(dashboardSvc),
		User:        appHTTP.NewUserHandler(userSvc),
	}
	if localStorage != nil {
		handlers.Upload = appHTTP.NewUploadHandler(localStorage)
	}

	router := appHTTP.NewRouter(JWTService, handlers, appHTTP.RouterOptions{
		Logger:         logger,
		LogLevel:       cfg.SlogLevel(),
		AllowedOrigins: cfg.App.AllowedOrigins,
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server running", "addr", server.Addr, "timezone", cfg.App.Timezone, "db_driver", cfg.Database.Driver, "storage", cfg.Storage.Type)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func openRepositories(ctx context.Context, cfg *config.Config) (*repositories, error) {
	if cfg.Database.Driver == config.DriverMemory {
		slog.Warn("Using in-memory store, data is lost on restart")
		return &repositories{
			tx:           memory.NewTransactor(),
			users:        memory.NewUserRepository(),
			attendances:  memory.NewAttendanceRepository(),
			lateRequests: memory.NewLateRequestRepository(),
			leaves:       memory.NewLeaveRequestRepository(),
			close:        func() {},
		}, nil
	}

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	db, err := database.NewPostgreSQLDB(connectCtx, cfg.DatabaseURL())
	if err != nil {
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}

	if cfg.Database.AutoMigrate {
		if err := db.EnsureSchema(connectCtx); err != nil {
			db.Close()
			return nil, err
		}
		slog.Info("Database schema ensured")
	}

	return &repositories{
		tx:           postgresql.NewTransactor(db),
		users:        postgresql.NewUserRepository(db),
		attendances:  postgresql.NewAttendanceRepository(db),
		lateRequests: postgresql.NewLateRequestRepository(db),
		leaves:       postgresql.NewLeaveRequestRepository(db),
		close:        db.Close,
	}, nil
}

// openStorage returns the attachment store and, for local storage, the same
// store again so its signed links can be served.
func openStorage(ctx context.Context, cfg *config.Config) (storage.FileStorage, *storage.LocalStorage, error) {
	switch cfg.Storage.Type {
	case config.StorageLocal:
		local, err := storage.NewLocalStorage(cfg.Storage.BasePath, cfg.Storage.BaseURL, []byte(cfg.Storage.SigningKey))
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize local storage: %w", err)
		}
		return local, local, nil
	case config.StorageS3:
		s3, err := storage.NewS3Storage(ctx, storage.S3Options{
			Bucket:   cfg.Storage.S3Bucket,
			Region:   cfg.Storage.S3Region,
			Prefix:   cfg.Storage.S3Prefix,
			Endpoint: cfg.Storage.S3Endpoint,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize s3 storage: %w", err)
		}
		return s3, nil, nil
	default:
		return nil, nil, fmt.Errorf("unsupported storage type: %s", cfg.Storage.Type)
	}
}
