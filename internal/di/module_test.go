package di

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/polkiloo/homekitchen/internal/adapter/events"
	"github.com/polkiloo/homekitchen/internal/app"
	"github.com/polkiloo/homekitchen/internal/config"
	"github.com/polkiloo/homekitchen/internal/domain/repository"
	"github.com/polkiloo/homekitchen/internal/test"
)

func testConfig(t *testing.T) *config.Config {
	return &config.Config{
		RunAddress:         "127.0.0.1:0",
		StorageDriver:      config.StorageMemory,
		BackupDir:          t.TempDir(),
		Environment:        config.EnvDevelopment,
		ShutdownTimeout:    time.Second,
		MaxBodyBytes:       1 << 20,
		CORSAllowedOrigins: []string{"*"},
	}
}

func TestModuleComposesGraphWithReplacements(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	publisher := &test.PublisherStub{}

	var (
		facade  *app.KitchenFacade
		engine  *gin.Engine
		server  *http.Server
		backend repository.Backend
	)
	fxApp := fx.New(
		fx.NopLogger,
		fx.Provide(func() context.Context { return context.Background() }),
		Module(
			fx.Replace(testConfig(t)),
			fx.Replace(logger),
			fx.Replace(events.Publisher(eventsPublisher{publisher})),
		),
		fx.Populate(&facade, &engine, &server, &backend),
	)

	if err := fxApp.Err(); err != nil {
		t.Fatalf("fx app returned error: %v", err)
	}
	t.Cleanup(func() { _ = fxApp.Stop(context.Background()) })
	if facade == nil || engine == nil || server == nil || backend == nil {
		t.Fatal("expected graph to be fully populated")
	}
	if server.Addr != "127.0.0.1:0" {
		t.Fatalf("unexpected server address %q", server.Addr)
	}

	report, err := facade.Health(context.Background())
	if err != nil || report.Timestamp.IsZero() {
		t.Fatalf("unexpected health result %+v err=%v", report, err)
	}
	if _, err := facade.Backup(context.Background()); err != nil {
		t.Fatalf("backup through graph failed: %v", err)
	}
}

type eventsPublisher struct {
	*test.PublisherStub
}

func (eventsPublisher) Close() error { return nil }
