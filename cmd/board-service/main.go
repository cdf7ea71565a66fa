package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/radieske/bet-board/internal/board"
	snapcache "github.com/radieske/bet-board/internal/board-service/cache"
	"github.com/radieske/bet-board/internal/board-service/consumer"
	httpapi "github.com/radieske/bet-board/internal/board-service/http"
	"github.com/radieske/bet-board/internal/board-service/pubsub"
	"github.com/radieske/bet-board/internal/board-service/repo"
	"github.com/radieske/bet-board/internal/board-service/session"
	"github.com/radieske/bet-board/internal/board-service/snapshot"
	"github.com/radieske/bet-board/internal/board-service/ws"
	sharedcache "github.com/radieske/bet-board/internal/shared/cache"
	"github.com/radieske/bet-board/internal/shared/config"
	"github.com/radieske/bet-board/internal/shared/db"
	"github.com/radieske/bet-board/internal/shared/kafka"
	"github.com/radieske/bet-board/internal/shared/logger"
	"github.com/radieske/bet-board/internal/shared/metrics"
)

func main() {
	cfg := config.Load()
	log, err := logger.New(cfg.ServiceName, cfg.Env, cfg.LogLevel)
	if err != nil {
		panic(fmt.Errorf("logger init: %w", err))
	}
	defer log.Sync()

	log.Info("starting service", zap.String("service", cfg.ServiceName), zap.String("env", cfg.Env))

	order, err := board.ParseGroupOrder(cfg.GroupOrder)
	if err != nil {
		log.Fatal("invalid GROUP_ORDER", zap.Error(err))
	}

	// Inicializa dependências: Postgres e Redis
	pg, err := db.ConnectPostgres(cfg.PostgresDSN)
	if err != nil {
		log.Fatal("postgres connect", zap.Error(err))
	}
	defer pg.Close()

	redisClient, err := sharedcache.ConnectRedis(cfg.RedisAddr)
	if err != nil {
		log.Fatal("redis connect", zap.Error(err))
	}
	defer redisClient.Close()

	// Métricas Prometheus
	applied := prometheus.NewCounter(prometheus.CounterOpts{Name: "board_snapshots_applied_total", Help: "snapshots aplicados"})
	errorsBy := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "board_snapshot_errors_total", Help: "erros por estágio"}, []string{"stage"})
	invalid := prometheus.NewGauge(prometheus.GaugeOpts{Name: "board_invalid_records", Help: "registros rejeitados no snapshot atual"})
	duplicates := prometheus.NewGauge(prometheus.GaugeOpts{Name: "board_duplicate_records", Help: "ids repetidos no snapshot atual"})
	toggles := prometheus.NewCounter(prometheus.CounterOpts{Name: "board_toggles_total", Help: "toggles de grupo"})
	sessions := prometheus.NewGauge(prometheus.GaugeOpts{Name: "board_active_sessions", Help: "sessões de visualização ativas"})
	wsConns := prometheus.NewGauge(prometheus.GaugeOpts{Name: "board_ws_connections", Help: "conexões WebSocket abertas"})
	consumed := prometheus.NewCounter(prometheus.CounterOpts{Name: "board_snapshot_messages_consumed_total", Help: "mensagens consumidas do Kafka"})
	cached := prometheus.NewCounter(prometheus.CounterOpts{Name: "board_snapshot_cache_sets_total", Help: "snapshots gravados no Redis"})
	noticed := prometheus.NewCounter(prometheus.CounterOpts{Name: "board_snapshot_notices_published_total", Help: "avisos publicados no Pub/Sub"})
	prometheus.MustRegister(applied, errorsBy, invalid, duplicates, toggles, sessions, wsConns, consumed, cached, noticed)

	// Núcleo: snapshot atual + agrupamento memoizado
	store := board.NewRecordStore()
	brd := board.New(store, order)

	registry := session.NewRegistry(cfg.SessionTTL)
	registry.OnChange = func(n int) { sessions.Set(float64(n)) }

	hub := ws.NewHub(log, func(r *http.Request) bool { return true }) // CORS liberado no POC
	hub.OnConnect = wsConns.Inc
	hub.OnDisconnect = wsConns.Dec

	scache := snapcache.New(redisClient)
	loader := &snapshot.Loader{
		Log:    log,
		Store:  store,
		Board:  brd,
		Cache:  scache,
		Source: repo.NewReadRepo(pg),
		Hub:    hub,
		OnApplied: func(rep board.Report) {
			applied.Inc()
			invalid.Set(float64(len(rep.Invalid)))
			duplicates.Set(float64(len(rep.Duplicates)))
		},
		OnError: func(stage string) { errorsBy.WithLabelValues(stage).Inc() },
	}

	// Sinalização para shutdown gracioso (SIGINT/SIGTERM)
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Boot sem snapshot não é fatal: a tabela fica vazia até o primeiro aviso
	bootCtx, bootCancel := context.WithTimeout(ctx, 10*time.Second)
	if err := loader.Bootstrap(bootCtx); err != nil {
		log.Warn("snapshot bootstrap failed", zap.Error(err))
	}
	bootCancel()

	pubsub.StartSubscriber(ctx, redisClient, cfg.RedisSnapshotChannel, log, loader.HandleNotice)
	go registry.Run(ctx, time.Minute)

	// Consumer Kafka: uma instância do grupo grava no Redis, todas recebem o aviso
	reader := kafka.NewReader(cfg.KafkaBrokers, cfg.TopicBetSnapshots, cfg.KafkaGroupID)
	defer reader.Close()
	dlq := kafka.NewWriter(cfg.KafkaBrokers, cfg.TopicBetSnapshotsDLQ)
	defer dlq.Close()

	proc := &consumer.Processor{
		Log:       log,
		Reader:    reader,
		Cache:     scache,
		Publisher: pubsub.NewRedisBroadcaster(redisClient, cfg.RedisSnapshotChannel),
		DLQ:       dlq,

		OnConsumed:  consumed.Inc,
		OnCached:    cached.Inc,
		OnPublished: noticed.Inc,
		OnError:     func(stage string) { errorsBy.WithLabelValues(stage).Inc() },
	}
	go func() {
		if err := proc.Run(ctx); err != nil && ctx.Err() == nil {
			log.Error("processor stopped with error", zap.Error(err))
		}
	}()

	// Servidor HTTP para métricas e health check
	msrv := metrics.StartMetricsServer(cfg.MetricsPort, func(ctx context.Context) error {
		if err := pg.PingContext(ctx); err != nil {
			return fmt.Errorf("postgres: %w", err)
		}
		if err := redisClient.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("redis: %w", err)
		}
		return nil
	})
	log.Info("metrics/health listening", zap.String("addr", msrv.Addr))

	api := &httpapi.API{
		Log:      log,
		Board:    brd,
		Sessions: registry,
		WS:       hub,
		OnToggle: toggles.Inc,
	}
	srv := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: api.Router(),
	}
	go func() {
		log.Info("board-service listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("http server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("shutting down", zap.Int("ws_clients", hub.Len()))

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	_ = srv.Shutdown(shutdownCtx)
	_ = msrv.Shutdown(shutdownCtx)
	log.Info("board-service stopped")
}
