package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi"
	"github.com/spf13/cobra"

	"github.com/mohanbhogavarapu07/vsm-backend/internal"
	"github.com/mohanbhogavarapu07/vsm-backend/internal/auth"
	"github.com/mohanbhogavarapu07/vsm-backend/internal/backlog"
	backlogstore "github.com/mohanbhogavarapu07/vsm-backend/internal/backlog/supabase"
	"github.com/mohanbhogavarapu07/vsm-backend/internal/chat"
	chatstore "github.com/mohanbhogavarapu07/vsm-backend/internal/chat/supabase"
	"github.com/mohanbhogavarapu07/vsm-backend/internal/dashboard"
	dashboardstore "github.com/mohanbhogavarapu07/vsm-backend/internal/dashboard/supabase"
	"github.com/mohanbhogavarapu07/vsm-backend/internal/performance"
	performancestore "github.com/mohanbhogavarapu07/vsm-backend/internal/performance/supabase"
	"github.com/mohanbhogavarapu07/vsm-backend/internal/postgrest"
	"github.com/mohanbhogavarapu07/vsm-backend/internal/project"
	projectstore "github.com/mohanbhogavarapu07/vsm-backend/internal/project/supabase"
	"github.com/mohanbhogavarapu07/vsm-backend/internal/sprint"
	sprintstore "github.com/mohanbhogavarapu07/vsm-backend/internal/sprint/supabase"
	"github.com/mohanbhogavarapu07/vsm-backend/internal/task"
	taskstore "github.com/mohanbhogavarapu07/vsm-backend/internal/task/supabase"
	"github.com/mohanbhogavarapu07/vsm-backend/internal/transport/rest"
	"github.com/mohanbhogavarapu07/vsm-backend/internal/user"
	userstore "github.com/mohanbhogavarapu07/vsm-backend/internal/user/supabase"
	"github.com/mohanbhogavarapu07/vsm-backend/pkg/logger"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config   *internal.Config
	Store    *postgrest.Client
	Router   *chi.Mux
	Handlers rest.Handlers
	Logger   *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	rest.RegisterAllRoutes(deps.Router, deps.Store, deps.Handlers, deps.Config.Server.Origins(), deps.Logger)

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	deps.Logger.Info("starting HTTP server", "address", addr, "env", deps.Config.Env)

	server := &http.Server{
		Addr:         addr,
		Handler:      deps.Router,
		ReadTimeout:  deps.Config.Server.ReadTimeout,
		WriteTimeout: deps.Config.Server.WriteTimeout,
		IdleTimeout:  deps.Config.Server.IdleTimeout,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		deps.Logger.Info("received signal, shutting down", "signal", sig.String())
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			deps.Logger.Error("server shutdown error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			deps.Logger.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}

	deps.Logger.Info("server stopped")
}

func initializeDependencies() (*Dependencies, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(cfg.Env)
	lg := logger.LoggerWrapper()

	store := postgrest.NewClient(postgrest.Config{
		URL:     cfg.Supabase.URL,
		APIKey:  cfg.Supabase.Key(),
		Timeout: cfg.Supabase.RequestTimeout,
	}, lg)

	userRepo := userstore.NewRepo(store)
	projectRepo := projectstore.NewRepo(store)
	backlogRepo := backlogstore.NewRepo(store)
	sprintRepo := sprintstore.NewRepo(store)
	taskRepo := taskstore.NewRepo(store)
	performanceRepo := performancestore.NewRepo(store)
	chatRepo := chatstore.NewRepo(store)
	dashboardRepo := dashboardstore.NewRepo(store)

	codec := auth.NewTokenCodec(cfg.Security.JWTSecret, cfg.Security.TokenLifetimeHours)

	authService := auth.NewService(userRepo, codec, lg)
	userService := user.NewService(userRepo, lg)
	projectService := project.NewService(projectRepo, userRepo, lg)
	backlogService := backlog.NewService(backlogRepo, projectRepo, lg)
	sprintService := sprint.NewService(sprintRepo, projectRepo, lg)
	taskService := task.NewService(taskRepo, sprintRepo, projectRepo, userRepo, lg)
	performanceService := performance.NewService(performanceRepo, userRepo, taskRepo, lg)
	chatService := chat.NewService(chatRepo, projectRepo, taskRepo, lg)
	dashboardService := dashboard.NewService(dashboardRepo, lg)

	handlers := rest.Handlers{
		Auth:        auth.NewHandler(authService),
		AuthMW:      auth.NewMiddleware(codec, lg),
		User:        user.NewHandler(userService),
		Project:     project.NewHandler(projectService),
		Backlog:     backlog.NewHandler(backlogService),
		Sprint:      sprint.NewHandler(sprintService),
		Task:        task.NewHandler(taskService),
		Performance: performance.NewHandler(performanceService),
		Chat:        chat.NewHandler(chatService),
		Dashboard:   dashboard.NewHandler(dashboardService),
	}

	return &Dependencies{
		Config:   cfg,
		Store:    store,
		Router:   chi.NewRouter(),
		Handlers: handlers,
		Logger:   lg,
	}, nil
}
