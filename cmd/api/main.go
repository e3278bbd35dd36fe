package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/taskfeed/taskfeed-go/internal/config"
	"github.com/taskfeed/taskfeed-go/internal/handler"
	"github.com/taskfeed/taskfeed-go/internal/middleware"
	"github.com/taskfeed/taskfeed-go/internal/repository"
	"github.com/taskfeed/taskfeed-go/internal/service"
	"github.com/taskfeed/taskfeed-go/web"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file found, using environment variables")
	}

	cfg := config.Load()

	db, err := repository.NewDB(cfg.DatabaseDSN)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	tokens := service.TokenConfig{
		AccessSecret:    cfg.AccessSecret,
		RefreshSecret:   cfg.RefreshSecret,
		AccessTokenTTL:  cfg.AccessTokenTTL,
		RefreshTokenTTL: cfg.RefreshTokenTTL,
	}

	authService := service.NewAuthService(repository.NewUserRepository(db), tokens)
	authHandler := handler.NewAuthHandler(authService)

	todoService := service.NewTodoService(repository.NewTodoRepository(db))
	todoHandler := handler.NewTodoHandler(todoService)

	postService := service.NewPostService(repository.NewPostRepository(db))
	postHandler := handler.NewPostHandler(postService)

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{cfg.CORSOrigin},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	// Anonymous auth endpoints, rate limited per IP.
	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimit(5, 10))
		r.Post("/api/auth/signup", authHandler.HandleSignup)
		r.Post("/api/auth/signin", authHandler.HandleSignin)
		r.Post("/api/auth/refresh", authHandler.HandleRefresh)
	})

	r.Get("/api/posts", postHandler.HandleList)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(cfg.AccessSecret))
		r.Get("/api/auth/me", authHandler.HandleMe)

		r.Get("/api/todos", todoHandler.HandleList)
		r.Post("/api/todos", todoHandler.HandleCreate)
		r.Put("/api/todos/{id}", todoHandler.HandleUpdate)
		r.Delete("/api/todos/{id}", todoHandler.HandleDelete)

		r.Post("/api/posts", postHandler.HandleCreate)
		r.Put("/api/posts/{id}", postHandler.HandleUpdate)
		r.Delete("/api/posts/{id}", postHandler.HandleDelete)
		r.Post("/api/posts/{id}/like", postHandler.HandleLike)
		r.Post("/api/posts/{id}/dislike", postHandler.HandleDislike)
		r.Delete("/api/posts/{id}/reaction", postHandler.HandleRemoveReaction)
	})

	r.Handle("/*", web.Handler())

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		slog.Info("server starting", "port", cfg.Port, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped")
}
