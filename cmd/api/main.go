package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/scprithiviraj/smarthr/internal/config"
	"github.com/scprithiviraj/smarthr/internal/domain/attendance"
	appHTTP "github.com/scprithiviraj/smarthr/internal/handler/http"
	"github.com/scprithiviraj/smarthr/internal/pkg/cache"
	"github.com/scprithiviraj/smarthr/internal/pkg/cron"
	"github.com/scprithiviraj/smarthr/internal/pkg/database"
	"github.com/scprithiviraj/smarthr/internal/pkg/jwt"
	"github.com/scprithiviraj/smarthr/internal/pkg/metrics"
	"github.com/scprithiviraj/smarthr/internal/repository/postgresql"
	attendanceService "github.com/scprithiviraj/smarthr/internal/service/attendance"
	authService "github.com/scprithiviraj/smarthr/internal/service/auth"
	calendarService "github.com/scprithiviraj/smarthr/internal/service/calendar"
	dashboardService "github.com/scprithiviraj/smarthr/internal/service/dashboard"
	leaveService "github.com/scprithiviraj/smarthr/internal/service/leave"
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

	var redisCache *cache.Cache
	if cfg.Redis.Enabled {
		redisCache = cache.NewCache(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if !redisCache.Healthy(context.Background()) {
			slog.Warn("Redis unreachable, calendar caching disabled", "addr", cfg.Redis.Addr)
			redisCache = nil
		}
		defer redisCache.Close()
	}

	location := cfg.Location()
	appMetrics := metrics.New()

	userRepo := postgresql.NewUserRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	lateRequestRepo := postgresql.NewLateRequestRepository(db)
	leaveRequestRepo := postgresql.NewLeaveRequestRepository(db)
	dashboardRepo := postgresql.NewDashboardRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)

	clockPolicy := attendance.ClockPolicy{
		StartHour:    cfg.Attendance.StartHour,
		GraceMinutes: cfg.Attendance.GraceMinutes,
		EndOfDayHour: cfg.Attendance.EndOfDayHour,
	}

	invalidator := calendarService.NewCacheInvalidator(redisCache)
	runTx := func(ctx context.Context, fn func(ctx context.Context) error) error {
		return postgresql.WithTransaction(ctx, db, fn)
	}
	authSvc := authService.NewAuthService(userRepo, jwtService, runTx)
	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo, lateRequestRepo, clockPolicy, appMetrics, invalidator, location)
	leaveSvc := leaveService.NewLeaveService(leaveRequestRepo, appMetrics, invalidator, location)
	calendarSvc := calendarService.NewCalendarService(attendanceRepo, leaveRequestRepo, redisCache, appMetrics)
	dashboardSvc := dashboardService.NewDashboardService(dashboardRepo, userRepo, location)

	authHandler := appHTTP.NewAuthHandler(authSvc)
	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	leaveHandler := appHTTP.NewLeaveHandler(leaveSvc)
	calendarHandler := appHTTP.NewCalendarHandler(calendarSvc)
	dashboardHandler := appHTTP.NewDashboardHandler(dashboardSvc)

	router := appHTTP.NewRouter(
		appHTTP.RouterConfig{
			AllowedOrigins: cfg.App.AllowedOrigins,
			Environment:    cfg.App.Env,
		},
		jwtService,
		authHandler,
		attendanceHandler,
		leaveHandler,
		calendarHandler,
		dashboardHandler,
	)

	scheduler := cron.NewScheduler()
	attendanceJobs := cron.NewAttendanceJobs(attendanceRepo, userRepo, appMetrics, location)
	attendanceJobs.RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		slog.Info("Server starting", "addr", addr, "env", cfg.App.Env)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Forced shutdown", "error", err)
	}
}
