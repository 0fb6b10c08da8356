package cmd

import (
	"context"
	"database/sql"
	"net/http"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
	"github.com/vibast-solutions/ms-go-atobarai/app/factory"
	"github.com/vibast-solutions/ms-go-atobarai/app/postal"
	"github.com/vibast-solutions/ms-go-atobarai/app/provider"
	"github.com/vibast-solutions/ms-go-atobarai/app/provider/atobarai"
	"github.com/vibast-solutions/ms-go-atobarai/app/repository"
	"github.com/vibast-solutions/ms-go-atobarai/app/service"
	"github.com/vibast-solutions/ms-go-atobarai/config"

	_ "github.com/go-sql-driver/mysql"
)

func mustLoadConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}
	mustConfigureLogging(cfg)
	return cfg
}

func mustConfigureLogging(cfg *config.Config) {
	if err := configureLogging(cfg); err != nil {
		logrus.WithError(err).Fatal("Failed to configure logging")
	}
}

func apiConfig(cfg *config.Config) atobarai.ApiConfig {
	return atobarai.ApiConfig{
		MerchantCode:   cfg.NPAtobarai.MerchantCode,
		SPCode:         cfg.NPAtobarai.SPCode,
		TerminalID:     cfg.NPAtobarai.TerminalID,
		TestMode:       cfg.NPAtobarai.TestMode,
		ProductionURL:  cfg.NPAtobarai.ProductionURL,
		TestURL:        cfg.NPAtobarai.TestURL,
		RequestTimeout: cfg.NPAtobarai.RequestTimeout,
	}
}

// mustCreatePostalLookup loads the dataset and, when Redis is configured,
// fronts it with the shared cache.
func mustCreatePostalLookup(cfg *config.Config) (postal.Lookup, func()) {
	dataset, err := postal.LoadDataset(cfg.Postal.DatasetPath)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load postal dataset")
	}
	logrus.WithField("localities", dataset.Len()).Info("Postal dataset loaded")

	if cfg.Redis.Addr == "" {
		return dataset, func() {}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := client.Ping(context.Background()).Err(); err != nil {
		logrus.WithError(err).Warn("Redis is unreachable, postal lookups will bypass the cache")
	}

	lookup := postal.NewCachedLookup(dataset, client, cfg.Postal.CacheTTL, factory.NewModuleLogger("postal-cache"))
	cleanup := func() {
		if err := client.Close(); err != nil {
			logrus.WithError(err).Warn("Failed to close redis client")
		}
	}
	return lookup, cleanup
}

func mustCreateTransactionService() (*config.Config, *service.TransactionService, func()) {
	cfg := mustLoadConfig()

	db, err := sql.Open("mysql", cfg.MySQL.DSN)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to connect to database")
	}

	db.SetMaxOpenConns(cfg.MySQL.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MySQL.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.MySQL.ConnMaxLifetime)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		logrus.WithError(err).Fatal("Failed to ping database")
	}

	transactionRepo := repository.NewTransactionRepository(db)
	eventRepo := repository.NewTransactionEventRepository(db)

	lookup, closeLookup := mustCreatePostalLookup(cfg)
	gateway := atobarai.NewGateway(atobarai.NewClient(&http.Client{}), lookup, transactionRepo)
	providerRegistry := provider.NewRegistry(atobarai.NewProvider(gateway, apiConfig(cfg)))

	transactionService := service.NewTransactionService(
		transactionRepo,
		eventRepo,
		providerRegistry,
		cfg.Jobs,
	)

	cleanup := func() {
		closeLookup()
		if err := db.Close(); err != nil {
			logrus.WithError(err).Warn("Failed to close database")
		}
	}

	return cfg, transactionService, cleanup
}
