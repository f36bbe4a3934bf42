package app

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"os"

	"github.com/niksmo/storefront/config"
	"github.com/niksmo/storefront/internal/adapter"
	"github.com/niksmo/storefront/internal/adapter/backend"
	"github.com/niksmo/storefront/internal/adapter/httphandler"
	"github.com/niksmo/storefront/internal/adapter/kafka"
	"github.com/niksmo/storefront/internal/adapter/storage"
	"github.com/niksmo/storefront/internal/core/port"
	"github.com/niksmo/storefront/internal/core/service"
	"github.com/niksmo/storefront/pkg/schema"
	"github.com/twmb/franz-go/pkg/sr"
)

type outbound struct {
	backend        *backend.Client
	store          port.KeyValueStore
	sqlDB          *storage.SQLDB
	searchProducer *kafka.CatalogSearchProducer
}

type App struct {
	ctx        context.Context
	cfg        config.Config
	outbound   outbound
	service    service.Service
	httpServer httphandler.HTTPServer
}

func New(ctx context.Context, cfg config.Config) *App {
	app := &App{ctx: ctx, cfg: cfg}

	app.initLogger()
	app.initStorage()
	app.initBackend()
	app.initSearchProducer()
	app.initCoreService()
	app.initInboundAdapters()

	return app
}

func (app *App) initLogger() {
	opts := &slog.HandlerOptions{Level: app.cfg.LogLevel}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, opts))
	slog.SetDefault(logger)
}

func (app *App) initStorage() {
	const op = "App.initStorage"
	log := slog.With("op", op)

	if app.cfg.SQLDB == "" {
		log.Warn("sql_db is not set, carts are kept in memory")
		app.outbound.store = storage.NewMemoryStore()
		return
	}

	db, err := storage.NewSQLDB(app.ctx, app.cfg.SQLDB)
	if err != nil {
		app.fallDown(op, err)
	}
	app.outbound.sqlDB = &db
	app.outbound.store = storage.NewClientStateRepository(db)
}

func (app *App) initBackend() {
	const op = "App.initBackend"

	cl, err := backend.NewClient(
		app.cfg.Backend.BaseURL,
		backend.TimeoutOpt(app.cfg.Backend.Timeout),
	)
	if err != nil {
		app.fallDown(op, err)
	}
	app.outbound.backend = cl
}

func (app *App) initSearchProducer() {
	const op = "App.initSearchProducer"
	log := slog.With("op", op)

	brokerCfg := app.cfg.Broker
	if !brokerCfg.Enabled() {
		log.Info("seed brokers are not set, catalog searches are not published")
		return
	}

	srClient, err := sr.NewClient(sr.URLs(brokerCfg.SchemaRegistryURLs...))
	if err != nil {
		app.fallDown(op, err)
	}

	topic := brokerCfg.Topics.CatalogSearches
	searchSerde, err := schema.NewSerdeCatalogSearchV1(
		app.ctx,
		schema.SubjectOpt(topic+"-value"),
		schema.SchemaIdentifierOpt(schema.NewSchemaCreater(srClient)),
	)
	if err != nil {
		app.fallDown(op, err)
	}

	var tlsCfg *tls.Config
	if brokerCfg.TLS.Enabled() {
		tlsCfg, err = adapter.MakeTLSConfig(
			brokerCfg.TLS.CAFile, brokerCfg.TLS.CertFile, brokerCfg.TLS.KeyFile,
		)
		if err != nil {
			app.fallDown(op, err)
		}
	}

	p, err := kafka.NewCatalogSearchProducer(
		kafka.ProducerClientOpt(app.ctx, brokerCfg.SeedBrokers, topic, tlsCfg),
		kafka.ProducerEncoderOpt(searchSerde),
	)
	if err != nil {
		app.fallDown(op, err)
	}
	app.outbound.searchProducer = &p
}

func (app *App) initCoreService() {
	var searchProducer port.CatalogSearchProducer
	if app.outbound.searchProducer != nil {
		searchProducer = app.outbound.searchProducer
	}

	cl := app.outbound.backend
	app.service = service.New(
		cl, cl, cl, cl,
		app.outbound.store,
		searchProducer,
	)
}

func (app *App) initInboundAdapters() {
	r := httphandler.NewRouter()
	httphandler.RegisterCatalog(r, app.service, app.service)
	httphandler.RegisterCart(r, app.service)
	httphandler.RegisterCustomers(r, app.service)

	app.httpServer = httphandler.NewHTTPServer(app.cfg.HTTPServerAddr, r)
}

func (app *App) Run(stopFn context.CancelFunc) {
	go app.httpServer.Run(stopFn)

	slog.Info("application is running")
}

func (app *App) Close(ctx context.Context) {
	slog.Info("application is closing...")

	app.httpServer.Close(ctx)

	if app.outbound.searchProducer != nil {
		app.outbound.searchProducer.Close()
	}

	if app.outbound.sqlDB != nil {
		app.outbound.sqlDB.Close()
	}

	slog.Info("application is closed")
}

func (app *App) fallDown(op string, err error) {
	panic(fmt.Errorf("%s: %w", op, err))
}
