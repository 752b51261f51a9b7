package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/ahmadnk31/5gfones-search/config"
	"github.com/ahmadnk31/5gfones-search/internal/adapter/embedding"
	"github.com/ahmadnk31/5gfones-search/internal/adapter/httphandler"
	"github.com/ahmadnk31/5gfones-search/internal/adapter/kafka"
	"github.com/ahmadnk31/5gfones-search/internal/adapter/storage"
	"github.com/ahmadnk31/5gfones-search/internal/core/discount"
	"github.com/ahmadnk31/5gfones-search/internal/core/port"
	"github.com/ahmadnk31/5gfones-search/internal/core/service"
	"github.com/ahmadnk31/5gfones-search/pkg/schema"
	"github.com/twmb/franz-go/pkg/sr"
)

type App struct {
	ctx        context.Context
	cfg        config.Config
	storage    storage.Storage
	embedder   embedding.Embedder
	events     *kafka.SearchEventsProducer
	searcher   *service.Service
	discounts  *discount.Cache
	httpServer httphandler.HTTPServer
}

func New(ctx context.Context, cfg config.Config) *App {
	app := &App{ctx: ctx, cfg: cfg}

	app.initLogger()
	app.initOutboundAdapters()
	app.initCoreService()
	app.initInboundAdapters()

	return app
}

func (app *App) initLogger() {
	opts := &slog.HandlerOptions{Level: app.cfg.LogLevel}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, opts))
	slog.SetDefault(logger)
}

func (app *App) initOutboundAdapters() {
	const op = "App.initOutboundAdapters"

	s, err := storage.New(app.ctx, app.cfg.SQLDB)
	if err != nil {
		app.fallDown(op, err)
	}
	app.storage = s

	embedder, err := embedding.New(
		app.cfg.Embedding.BaseURL,
		app.cfg.Embedding.Model,
		app.cfg.Embedding.Token,
	)
	if err != nil {
		app.fallDown(op, err)
	}
	app.embedder = embedder

	if len(app.cfg.Broker.SeedBrokers) > 0 {
		app.initEventsProducer()
	}
}

// initEventsProducer wires the analytics topic. The search service
// treats a nil producer as "analytics off", so a broker is optional.
func (app *App) initEventsProducer() {
	const op = "App.initEventsProducer"

	srClient, err := sr.NewClient(
		sr.URLs(app.cfg.Broker.SchemaRegistryURLs...),
	)
	if err != nil {
		app.fallDown(op, err)
	}

	subject := app.cfg.Broker.SearchEventsTopic + "-value"
	serde, err := schema.NewSerdeSearchEventV1(
		app.ctx,
		schema.SubjectOpt(subject),
		schema.SchemaIdentifierOpt(schema.NewSchemaCreater(srClient)),
	)
	if err != nil {
		app.fallDown(op, err)
	}

	producer, err := kafka.NewSearchEventsProducer(
		kafka.ProducerClientOpt(
			app.ctx,
			app.cfg.Broker.SeedBrokers,
			app.cfg.Broker.SearchEventsTopic,
		),
		kafka.ProducerEncoderOpt(serde),
	)
	if err != nil {
		app.fallDown(op, err)
	}
	app.events = &producer
}

func (app *App) initCoreService() {
	const op = "App.initCoreService"

	var events port.SearchEventsProducer
	if app.events != nil {
		events = *app.events
	}

	searcher, err := service.New(
		app.storage,
		app.storage,
		app.embedder,
		app.storage,
		app.storage,
		events,
		app.cfg.Search.VariantPoolSize,
	)
	if err != nil {
		app.fallDown(op, err)
	}
	app.searcher = searcher

	app.discounts = discount.New(
		app.storage, app.cfg.Search.DiscountTTL, nil,
	)
}

func (app *App) initInboundAdapters() {
	mux := http.NewServeMux()
	httphandler.RegisterSearch(mux, app.searcher, app.discounts)

	handler := httphandler.AllowJSON(mux)
	app.httpServer = httphandler.NewHTTPServer(app.cfg.HTTPServerAddr, handler)
}

func (app *App) Run(stopFn context.CancelFunc) {
	go app.httpServer.Run(stopFn)

	slog.Info("application is running")
}

func (app *App) Close(ctx context.Context) {
	slog.Info("application is closing...")

	app.httpServer.Close(ctx)
	app.searcher.Close()
	if app.events != nil {
		app.events.Close()
	}
	app.storage.Close()

	slog.Info("application is closed")
}

func (app *App) fallDown(op string, err error) {
	panic(fmt.Errorf("%s: %w", op, err))
}
