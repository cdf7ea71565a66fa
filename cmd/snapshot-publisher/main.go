package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/radieske/bet-board/internal/shared/config"
	"github.com/radieske/bet-board/internal/shared/kafka"
	"github.com/radieske/bet-board/internal/shared/logger"
	"github.com/radieske/bet-board/internal/shared/metrics"
	"github.com/radieske/bet-board/internal/snapshot-publisher/fixture"
	"github.com/radieske/bet-board/internal/snapshot-publisher/publisher"
)

func main() {
	cfg := config.Load()
	log, err := logger.New(cfg.ServiceName, cfg.Env, cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	log.Info("Kafka brokers", zap.String("brokers", cfg.KafkaBrokers))

	pub, err := publisher.NewKafkaPublisher(kafka.Brokers(cfg.KafkaBrokers), cfg.TopicBetSnapshots, cfg.Env, log)
	if err != nil {
		log.Fatal("kafka publisher init", zap.Error(err))
	}
	defer pub.Close()

	published := prometheus.NewCounter(prometheus.CounterOpts{Name: "snapshot_publisher_published_total", Help: "snapshots publicados"})
	failures := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "snapshot_publisher_errors_total", Help: "erros por estágio"}, []string{"stage"})
	prometheus.MustRegister(published, failures)

	// graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// relê o fixture a cada envio, então edições no arquivo viram um snapshot novo
	publishOnce := func() {
		snap, err := fixture.Load(cfg.FixturePath)
		if err != nil {
			failures.WithLabelValues("fixture").Inc()
			log.Error("fixture load failed", zap.String("path", cfg.FixturePath), zap.Error(err))
			return
		}
		pctx, pcancel := context.WithTimeout(ctx, 15*time.Second)
		defer pcancel()
		if _, err := pub.Publish(pctx, snap); err != nil {
			failures.WithLabelValues("publish").Inc()
			return
		}
		published.Inc()
	}

	publishOnce()
	if cfg.PublishInterval <= 0 {
		return
	}

	msrv := metrics.StartMetricsServer(cfg.MetricsPort, nil)
	log.Info("metrics/health listening", zap.String("addr", msrv.Addr))
	defer msrv.Close()

	t := time.NewTicker(cfg.PublishInterval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			log.Info("shutdown signal received")
			return
		case <-t.C:
			publishOnce()
		}
	}
}
