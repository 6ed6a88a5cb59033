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

	"github.com/hudoor/hudoor-backend-go/internal/config"
	devicereader "github.com/hudoor/hudoor-backend-go/internal/device"
	"github.com/hudoor/hudoor-backend-go/internal/domain/attendance"
	"github.com/hudoor/hudoor-backend-go/internal/domain/device"
	appHTTP "github.com/hudoor/hudoor-backend-go/internal/handler/http"
	"github.com/hudoor/hudoor-backend-go/internal/pkg/cron"
	"github.com/hudoor/hudoor-backend-go/internal/pkg/database"
	"github.com/hudoor/hudoor-backend-go/internal/pkg/jwt"
	"github.com/hudoor/hudoor-backend-go/internal/repository/postgresql"
	attendanceService "github.com/hudoor/hudoor-backend-go/internal/service/attendance"
	authService "github.com/hudoor/hudoor-backend-go/internal/service/auth"
	syncService "github.com/hudoor/hudoor-backend-go/internal/service/sync"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		os.Exit(1)
	}
	defer db.Close()

	lateThreshold, err := attendance.ParseClock(cfg.Sync.LateThreshold)
	if err != nil {
		fmt.Println("Error parsing LATE_THRESHOLD:", err)
		os.Exit(1)
	}
	opts := attendance.Options{
		LateAfter: lateThreshold,
		TieBreak:  attendance.TieBreak(cfg.Sync.TieBreak),
	}

	var reader device.Reader
	mode := "mock"
	if cfg.Device.ProxyURL != "" {
		reader = devicereader.NewProxyClient(cfg.Device.ProxyURL, cfg.Device.FetchTimeout, cfg.Device.HealthTimeout)
		mode = "proxy"
	} else {
		reader = devicereader.NewMockReader(cfg.Sync.StartYear, time.Now().UnixNano())
	}

	attendanceRepo := postgresql.NewAttendanceRepository(db)

	jwtSvc := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	authSvc := authService.NewAuthService(cfg.Admin, jwtSvc)
	attendanceSvc := attendanceService.NewAttendanceService(opts)
	syncSvc := syncService.NewSyncService(reader, attendanceRepo, attendanceSvc, opts, cfg.Sync.StartYear)

	authHandler := appHTTP.NewAuthHandler(authSvc)
	healthHandler := appHTTP.NewHealthHandler(reader, mode)
	syncHandler := appHTTP.NewSyncHandler(syncSvc)
	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)

	router := appHTTP.NewRouter(
		appHTTP.RouterConfig{
			Env:         cfg.App.Env,
			FrontendURL: cfg.App.FrontendURL,
		},
		jwtSvc,
		authHandler,
		healthHandler,
		syncHandler,
		attendanceHandler,
	)

	scheduler := cron.NewScheduler()
	scheduler.AddJob("device-sync", cfg.Sync.Interval, func(ctx context.Context) error {
		_, err := syncSvc.Run(ctx)
		return err
	})
	scheduler.Start()

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.App.Port),
		Handler: router,
	}

	go func() {
		slog.Info("server running", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down")
	scheduler.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown error", "error", err)
	}
}
