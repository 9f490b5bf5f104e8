package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/kmansoor/sims-backend/internal/api"
	"github.com/kmansoor/sims-backend/internal/clients/webhook"
	"github.com/kmansoor/sims-backend/internal/repository"
	"github.com/kmansoor/sims-backend/internal/service"
	"github.com/kmansoor/sims-backend/pkg/broker"
	"github.com/kmansoor/sims-backend/pkg/cache"
	"github.com/kmansoor/sims-backend/pkg/config"
	"github.com/kmansoor/sims-backend/pkg/job"
	"github.com/kmansoor/sims-backend/pkg/logger"
	"github.com/kmansoor/sims-backend/pkg/postgres"
)

const (
	ReadTimeout  = 5 * time.Second
	WriteTimeout = 10 * time.Second
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.New(".env")
	panicOnErr("load config", err)

	_, err = logger.New(cfg.Logger.Level, cfg.Logger.Format)
	panicOnErr("create logger", err)

	pool, err := postgres.Connect(ctx, cfg.Postgres.DSN, cfg.Postgres.MaxConn)
	panicOnErr("connect to postgres", err)
	defer pool.Close()

	err = postgres.UpMigrations(cfg.Postgres.DSN)
	panicOnErr("up migrations", err)

	repo := repository.New(pool)

	redisCache := cache.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	defer redisCache.Close()

	producer := broker.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.InvoiceEventTopic)
	defer producer.Close()

	notifier := webhook.NewClient(cfg.Webhook.URL)

	s := service.New(repo, producer, redisCache, notifier,
		cfg.Auth.JWTSecret, time.Duration(cfg.Auth.TokenTTL)*time.Minute)

	runner := job.NewRunner().
		Register("mark overdue invoices", time.Hour, s.MarkOverdueInvoices).
		Register("refresh dashboard summary", time.Minute, s.RefreshDashboard)
	runner.Start(ctx)

	defer runner.Stop()

	handler := api.NewHandler(s)
	mw := api.NewMiddleware(s, cfg.HTTP.APIKeyEnabled, cfg.HTTP.APIKey)

	router := api.NewRouter(handler, mw)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler:      router,
		ReadTimeout:  ReadTimeout,
		WriteTimeout: WriteTimeout,
	}

	var wg sync.WaitGroup

	wg.Add(1)

	go func() {
		defer wg.Done()

		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Panicf("listen and serve: %s", err)
		}
	}()

	slog.InfoContext(ctx, "service started", "port", cfg.HTTP.Port)

	wg.Add(1)

	go func() {
		defer wg.Done()

		ch := make(chan os.Signal, 1)
		signal.Notify(ch, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
		sig := <-ch

		slog.InfoContext(ctx, "got OS signal", "signal", sig.String())

		err = server.Shutdown(ctx)
		if err != nil {
			slog.ErrorContext(ctx, "server shutdown", "error", err)
		}
	}()

	wg.Wait()
}

func panicOnErr(msg string, err error) {
	if err != nil {
		log.Panicf("%s: %s", msg, err)
	}
}
