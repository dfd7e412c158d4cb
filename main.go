package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"adisyon-report-service/internal/config"
	"adisyon-report-service/internal/db"
	httpapi "adisyon-report-service/internal/http"
	"adisyon-report-service/internal/logger"
	"adisyon-report-service/internal/queue"
	"adisyon-report-service/internal/ws"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	log, err := logger.New(cfg.Env)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	ctx := context.Background()
	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal("database connection failed", zap.Error(err))
	}
	defer pool.Close()

	wsServer := ws.New(pool, log, cfg)

	if cfg.RabbitMQURL != "" {
		log.Info("rabbitmq enabled", zap.String("queue", queue.ReportRefreshQueue))
		qc, err := queue.New(cfg.RabbitMQURL)
		if err != nil {
			if cfg.Env == "production" {
				log.Fatal("rabbitmq connection failed", zap.Error(err))
			}
			log.Warn("rabbitmq connection failed; continuing without live refresh", zap.Error(err))
			qc = nil
		}
		if qc != nil {
			if err := queue.EnsureReportRefreshTopology(qc); err != nil {
				if cfg.Env == "production" {
					log.Fatal("rabbitmq topology failed", zap.Error(err))
				}
				log.Warn("rabbitmq topology failed; continuing without live refresh", zap.Error(err))
				_ = qc.Close()
				qc = nil
			}
		}

		if qc != nil {
			defer qc.Close()
			if cfg.RabbitMQWorkerMode == "daemon" {
				log.Info("report refresh consumer enabled", zap.String("mode", "daemon"))
				go func() {
					err := qc.ConsumeWithRetry(queue.ReportRefreshQueue, func(ctx context.Context, body []byte) error {
						return queue.ProcessOrderEvent(ctx, body, wsServer)
					}, 5, 5*time.Second)
					if err != nil {
						log.Error("consumer stopped", zap.Error(err))
					}
				}()
			} else {
				log.Info("report refresh consumer disabled", zap.String("mode", cfg.RabbitMQWorkerMode))
			}
		}
	} else {
		log.Info("live refresh disabled (RABBITMQ_URL is empty); ws falls back to polling")
	}

	apiServer := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      httpapi.NewRouter(pool, log, cfg, wsServer),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("report api ready", zap.String("base", "/api/reports"))
		log.Info("report ws ready", zap.String("base", "/ws/reports"))
		log.Info("report service listening", zap.String("addr", cfg.HTTPAddr))
		if err := apiServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("http server failed", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := apiServer.Shutdown(ctxShutdown); err != nil {
		log.Error("http server shutdown failed", zap.Error(err))
	}
}
