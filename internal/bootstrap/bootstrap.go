// Package bootstrap assembles the runtime graph shared by the binaries:
// logger, telemetry, lookup cache and providers, database and partner services.
package bootstrap

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	gormlogger "gorm.io/gorm/logger"

	appintegration "github.com/forniture-store/backend/internal/application/integration"
	apppartner "github.com/forniture-store/backend/internal/application/partner"
	"github.com/forniture-store/backend/internal/domain/integration"
	"github.com/forniture-store/backend/internal/infrastructure/cache"
	"github.com/forniture-store/backend/internal/infrastructure/config"
	"github.com/forniture-store/backend/internal/infrastructure/logger"
	"github.com/forniture-store/backend/internal/infrastructure/lookup"
	"github.com/forniture-store/backend/internal/infrastructure/persistence"
	"github.com/forniture-store/backend/internal/infrastructure/telemetry"
)

const shutdownTimeout = 5 * time.Second

// Runtime owns everything a command needs and releases it in Close.
type Runtime struct {
	Config    *config.Config
	Logger    *zap.Logger
	Telemetry *telemetry.Providers

	closers []func()
}

// New loads the configuration and starts logging and telemetry.
// Logs go to stderr so stdout stays free for command output.
func New(ctx context.Context) (*Runtime, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: "stderr",
	})
	if err != nil {
		return nil, fmt.Errorf("initialize logger: %w", err)
	}

	providers, err := telemetry.Setup(ctx, telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		_ = log.Sync()
		return nil, fmt.Errorf("initialize telemetry: %w", err)
	}

	rt := &Runtime{
		Config:    cfg,
		Logger:    providers.Logs.Bridge(log, zapcore.InfoLevel),
		Telemetry: providers,
	}
	rt.closers = append(rt.closers, func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := providers.Shutdown(shutdownCtx); err != nil {
			log.Warn("Telemetry shutdown failed", zap.Error(err))
		}
		_ = log.Sync()
	})
	return rt, nil
}

// Close releases resources in reverse order of acquisition.
func (rt *Runtime) Close() {
	for i := len(rt.closers) - 1; i >= 0; i-- {
		rt.closers[i]()
	}
	rt.closers = nil
}

// LookupService builds the cache, ViaCEP with BrasilAPI as fallback and the
// BrasilAPI CNPJ registry.
func (rt *Runtime) LookupService() (*appintegration.LookupService, error) {
	cfg, log := rt.Config, rt.Logger

	store, err := cache.NewLookupCacheFactory(cfg.Redis,
		cache.WithLogger(log),
		cache.WithKeyPrefix(cfg.Lookup.CacheKeyPrefix),
		cache.WithInMemoryFallback(!cfg.App.IsProduction()),
	).CreateStore(cfg.Lookup.CacheBackend)
	if err != nil {
		return nil, err
	}
	rt.closers = append(rt.closers, func() {
		if err := store.Close(); err != nil {
			log.Warn("Failed to close lookup cache", zap.Error(err))
		}
	})

	lookupCfg := &lookup.Config{
		ViaCEPBaseURL:    cfg.Lookup.ViaCEPBaseURL,
		BrasilAPIBaseURL: cfg.Lookup.BrasilAPIBaseURL,
		Timeout:          cfg.Lookup.Timeout,
	}
	viaCEP, err := lookup.NewViaCEPProvider(lookupCfg)
	if err != nil {
		return nil, err
	}
	brasilAPI, err := lookup.NewBrasilAPICEPProvider(lookupCfg)
	if err != nil {
		return nil, err
	}
	registry, err := lookup.NewBrasilAPICNPJRegistry(lookupCfg)
	if err != nil {
		return nil, err
	}

	metrics, err := telemetry.NewLookupMetrics(rt.Telemetry.Meter.Meter("lookup"))
	if err != nil {
		return nil, fmt.Errorf("register lookup metrics: %w", err)
	}

	return appintegration.NewLookupService(store,
		[]integration.PostalCodeProvider{viaCEP, brasilAPI},
		appintegration.WithCompanyRegistry(registry),
		appintegration.WithCacheTTL(cfg.Lookup.CacheTTL),
		appintegration.WithProviderTimeout(cfg.Lookup.Timeout),
		appintegration.WithLookupMetrics(metrics),
		appintegration.WithLogger(log),
	), nil
}

// Database opens the PostgreSQL pool with zap logging and optional SQL tracing.
func (rt *Runtime) Database() (*persistence.Database, error) {
	cfg := rt.Config

	tracing := telemetry.DefaultDBTracingConfig()
	tracing.Enabled = cfg.Telemetry.Enabled && cfg.Telemetry.DBTracing
	tracing.WithVariables = !cfg.App.IsProduction()
	if cfg.Telemetry.DBSlowQueryThresh > 0 {
		tracing.SlowQueryThresh = cfg.Telemetry.DBSlowQueryThresh
	}

	logLevel := gormlogger.Warn
	if cfg.Log.Level == "debug" {
		logLevel = gormlogger.Info
	}

	db, err := persistence.NewDatabase(&cfg.Database,
		persistence.WithLogger(rt.Logger, logLevel),
		persistence.WithSlowQueryThreshold(tracing.SlowQueryThresh),
		persistence.WithTracing(tracing),
	)
	if err != nil {
		return nil, err
	}
	rt.closers = append(rt.closers, func() {
		if err := db.Close(); err != nil {
			rt.Logger.Warn("Failed to close database", zap.Error(err))
		}
	})
	return db, nil
}

// PartnerServices groups the customer and supplier services.
type PartnerServices struct {
	Customers *apppartner.CustomerService
	Suppliers *apppartner.SupplierService
}

// NewPartnerServices wires repositories, the transaction scope and the save
// workflow over db, enriching companies through companies.
func NewPartnerServices(db *persistence.Database, companies apppartner.CompanyLookup, log *zap.Logger) *PartnerServices {
	customers := persistence.NewGormCustomerRepository(db.DB)
	suppliers := persistence.NewGormSupplierRepository(db.DB)
	addresses := persistence.NewGormAddressRepository(db.DB)
	scope := persistence.NewGormTransactionScope(db.DB)
	workflow := apppartner.NewSaveWorkflow(scope, companies, log)

	return &PartnerServices{
		Customers: apppartner.NewCustomerService(customers, addresses, scope, workflow, log),
		Suppliers: apppartner.NewSupplierService(suppliers, addresses, scope, workflow, log),
	}
}
