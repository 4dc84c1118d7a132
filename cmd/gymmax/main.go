package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"golang.org/x/sync/errgroup"

	"github.com/gymmax/gymmax/internal/app"
	"github.com/gymmax/gymmax/internal/auth"
	"github.com/gymmax/gymmax/internal/authz"
	"github.com/gymmax/gymmax/internal/clubs"
	"github.com/gymmax/gymmax/internal/entry"
	"github.com/gymmax/gymmax/internal/gymclass"
	"github.com/gymmax/gymmax/internal/members"
	"github.com/gymmax/gymmax/internal/notifications"
	"github.com/gymmax/gymmax/internal/observability"
	"github.com/gymmax/gymmax/internal/platform/cache"
	"github.com/gymmax/gymmax/internal/platform/db"
	"github.com/gymmax/gymmax/internal/trainingplan"
	"github.com/gymmax/gymmax/internal/users"
	"github.com/gymmax/gymmax/internal/workday"
	"github.com/gymmax/gymmax/internal/workoutgoal"
	"github.com/gymmax/gymmax/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	dbpool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer dbpool.Close()

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Error("connect redis", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	tokens, err := auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL)
	if err != nil {
		logger.Error("init token manager", slog.Any("error", err))
		os.Exit(1)
	}

	authzStore := authz.NewService(dbpool)
	gate := authz.Middleware{Tokens: tokens, Store: authzStore, Logger: logger}

	membersRepo := members.NewRepository(dbpool)
	membersService := members.NewService(membersRepo)
	membersHandler := members.NewHandler(logger, membersService, gate)

	usersRepo := users.NewRepository(dbpool)
	usersService := users.NewService(usersRepo)
	usersHandler := users.NewHandler(logger, usersService, gate)

	authService := auth.NewService(membersService, usersService, tokens)
	authHandler := auth.NewHandler(logger, authService)

	gymClassRepo := gymclass.NewRepository(dbpool)
	gymClassService := gymclass.NewService(gymClassRepo)
	gymClassHandler := gymclass.NewHandler(logger, gymClassService, gate)

	trainingPlanRepo := trainingplan.NewRepository(dbpool)
	trainingPlanService := trainingplan.NewService(trainingPlanRepo)
	trainingPlanHandler := trainingplan.NewHandler(logger, trainingPlanService, gate)

	workoutGoalRepo := workoutgoal.NewRepository(dbpool)
	workoutGoalService := workoutgoal.NewService(workoutGoalRepo)
	workoutGoalHandler := workoutgoal.NewHandler(logger, workoutGoalService, gate)

	clubsRepo := clubs.NewRepository(dbpool)
	clubsService := clubs.NewService(clubsRepo)
	clubsHandler := clubs.NewHandler(logger, clubsService, gate)

	workDayRepo := workday.NewRepository(dbpool)
	workDayService := workday.NewService(workDayRepo)
	workDayHandler := workday.NewHandler(logger, workDayService, gate)

	notificationsRepo := notifications.NewRepository(dbpool)
	notificationsService := notifications.NewService(notificationsRepo)
	notificationsHandler := notifications.NewHandler(logger, notificationsService, gate)

	jobClient, err := jobs.NewClient(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	if err != nil {
		logger.Error("init job client", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := jobClient.Close(); err != nil {
			logger.Warn("job client close", slog.Any("error", err))
		}
	}()

	gateway := entry.NewGateway(logger, redisClient, jobClient)
	entryHandler := entry.NewHandler(logger, gateway)

	inspector := asynq.NewInspector(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	defer func() {
		if err := inspector.Close(); err != nil {
			logger.Warn("inspector close", slog.Any("error", err))
		}
	}()
	jobHandler := jobs.NewHandler(inspector, logger)

	metrics := observability.NewMetrics()

	router := app.NewRouter(app.RouterParams{
		Logger:               logger,
		Config:               cfg,
		AuthHandler:          authHandler,
		MembersHandler:       membersHandler,
		UsersHandler:         usersHandler,
		GymClassHandler:      gymClassHandler,
		TrainingPlanHandler:  trainingPlanHandler,
		WorkoutGoalHandler:   workoutGoalHandler,
		ClubsHandler:         clubsHandler,
		WorkDayHandler:       workDayHandler,
		NotificationsHandler: notificationsHandler,
		EntryHandler:         entryHandler,
		JobHandler:           jobHandler,
		Metrics:              metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		return gateway.Run(groupCtx)
	})

	group.Go(func() error {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	group.Go(func() error {
		<-groupCtx.Done()
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := group.Wait(); err != nil && err != context.Canceled {
		logger.Error("server stopped", slog.Any("error", err))
		os.Exit(1)
	}
}
