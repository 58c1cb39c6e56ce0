package bootstrap

import (
	"context"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/tbeaudouin05/paygate/api/config"
	"github.com/tbeaudouin05/paygate/api/database"
	"github.com/tbeaudouin05/paygate/api/health"
	"github.com/tbeaudouin05/paygate/api/logger"
	omnipaydb "github.com/tbeaudouin05/paygate/api/services/omnipay/db"
	"github.com/tbeaudouin05/paygate/api/session"

	// Gateway drivers register themselves by short name.
	_ "github.com/tbeaudouin05/paygate/api/services/omnipay/gateway/dummy"
	_ "github.com/tbeaudouin05/paygate/api/services/omnipay/gateway/esewa"
	_ "github.com/tbeaudouin05/paygate/api/services/omnipay/gateway/khalti"
	_ "github.com/tbeaudouin05/paygate/api/services/omnipay/gateway/stripe"
)

// PaymentReader loads payments by id.
type PaymentReader interface {
	GetPayment(ctx context.Context, id string) (omnipaydb.Payment, error)
}

var (
	log          *zap.SugaredLogger
	paymentStore PaymentReader
	gateways     *config.Gateways
	sessions     *session.Manager
	healthServer *health.Server

	initOnce sync.Once
	initErr  error
)

// Init initializes config, database, sessions and the gateway configuration.
func Init() error {
	// If dependencies have already been injected (e.g., tests), do not override or init heavy deps.
	if paymentStore != nil && gateways != nil && sessions != nil {
		return nil
	}
	ctx := context.Background()
	var err error
	if config.AppConfig == nil {
		config.AppConfig, err = config.LoadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
	}
	cfg := config.AppConfig

	if log == nil {
		log, err = logger.New(cfg.LogLevel)
		if err != nil {
			return fmt.Errorf("failed to create logger: %w", err)
		}
	}

	if gateways == nil {
		gateways, err = config.LoadGateways(cfg.OmnipayConfig)
		if err != nil {
			return err
		}
	}

	checks := map[string]health.Check{}
	if paymentStore == nil {
		if err := database.Initialize(ctx, cfg.DatabaseURL); err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}
		store := omnipaydb.New(database.GetDB())
		if err := store.EnsureSchema(ctx); err != nil {
			return err
		}
		paymentStore = store
		checks["database"] = func(ctx context.Context) error { return database.GetDB().PingContext(ctx) }
	}

	if sessions == nil {
		ttl, err := cfg.SessionLifetime()
		if err != nil {
			return err
		}
		var store session.Store = session.NewMemoryStore()
		if cfg.RedisURL != "" {
			opts, err := redis.ParseURL(cfg.RedisURL)
			if err != nil {
				return fmt.Errorf("invalid REDIS_URL: %w", err)
			}
			rdb := redis.NewClient(opts)
			if err := rdb.Ping(ctx).Err(); err != nil {
				log.Warnw("redis ping failed, using in-memory sessions", "err", err)
				_ = rdb.Close()
			} else {
				store = session.NewRedisStore(rdb)
				checks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
			}
		}
		sessions = session.NewManager(store, config.SessionCookieName, ttl)
	}

	if healthServer == nil {
		healthServer = health.NewServer(checks)
	}
	return nil
}

func GetLogger() *zap.SugaredLogger {
	if log == nil {
		return zap.NewNop().Sugar()
	}
	return log
}

func GetPaymentStore() PaymentReader      { return paymentStore }
func GetGateways() *config.Gateways       { return gateways }
func GetSessionManager() *session.Manager { return sessions }
func GetHealth() *health.Server           { return healthServer }

// SetLogger, SetPaymentStore, SetGateways and SetSessionManager allow tests to inject dependencies.
func SetLogger(l *zap.SugaredLogger)       { log = l }
func SetPaymentStore(s PaymentReader)      { paymentStore = s }
func SetGateways(g *config.Gateways)       { gateways = g }
func SetSessionManager(m *session.Manager) { sessions = m }

// Ensure runs Init() once per process and returns any initialization error.
func Ensure() error {
	initOnce.Do(func() {
		initErr = Init()
	})
	return initErr
}
