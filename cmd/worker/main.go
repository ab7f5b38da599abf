package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/ghuser/casedesk/pkg/app"
	"github.com/ghuser/casedesk/pkg/cache"
	"github.com/ghuser/casedesk/pkg/config"
	"github.com/ghuser/casedesk/pkg/database"
	"github.com/ghuser/casedesk/pkg/events"
	"github.com/ghuser/casedesk/pkg/logger"
	"github.com/ghuser/casedesk/pkg/telemetry"
	caseEvents "github.com/ghuser/casedesk/services/cases/domain/events"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if err := config.ValidateForProduction(cfg); err != nil {
		slog.Error("production config validation failed", "error", err)
		os.Exit(1)
	}

	log := logger.New(cfg)

	ctx := context.Background()

	otelShutdown, _, err := telemetry.Setup(ctx, cfg)
	if err != nil {
		log.Error("failed to setup otel", "error", err)
		os.Exit(1)
	}
	defer otelShutdown(ctx) //nolint:errcheck

	if err := telemetry.SetupSentry(cfg); err != nil {
		log.Warn("failed to setup sentry, continuing without crash reporting", "error", err)
	}
	defer telemetry.SentryFlush()

	pool, err := database.NewPool(ctx, cfg.DatabaseURL, log)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer pool.Close()
	log.Info("database pool connected")

	eventBus, err := events.NewEventBus(cfg, log)
	if err != nil {
		log.Error("failed to setup event bus", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer eventBus.Close() //nolint:errcheck

	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Error("failed to connect to redis", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer redisClient.Close() //nolint:errcheck
	log.Info("redis connected")

	//temporalClient, err := workflows.NewTemporalClient(ctx, cfg.TemporalHostPort, cfg.TemporalNamespace, log)
	//if err != nil {
	//	log.Error("failed to initialize temporal client", "error", err)
	//	os.Exit(1) //nolint:gocritic
	//}
	//defer temporalClient.Close()

	appConfig := &app.Application{
		Db:       pool,
		Logger:   log,
		EventBus: eventBus,
		Redis:    redisClient,
		//TemporalClient: temporalClient,
	}

	if err := registerSubscribers(ctx, appConfig); err != nil {
		log.Error("failed to register subscribers", "error", err)
		os.Exit(1) //nolint:gocritic
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down worker...")

	// EventBus.Close() (via defer) waits up to 30s for in-flight handlers.
	log.Info("worker stopped")
}

// registerSubscribers wires all domain event handlers.
// Add new topics here as more services publish events.
func registerSubscribers(ctx context.Context, a *app.Application) error {
	topics := map[string]func(context.Context, *message.Message) error{
		caseEvents.TopicCaseOpened: handleCaseOpened(a),
		caseEvents.TopicCaseClosed: handleCaseClosed(a),
	}

	registered := make([]string, 0, len(topics))
	for topic, handler := range topics {
		errCh, err := a.EventBus.Subscribe(ctx, topic, handler)
		if err != nil {
			return err
		}

		// Drain subscriber errors in background so the channel never blocks.
		go func(topic string) {
			for err := range errCh {
				a.Logger.ErrorContext(ctx, "subscriber error",
					"topic", topic,
					"error", err,
				)
			}
		}(topic)
		registered = append(registered, topic)
	}

	a.Logger.Info("event subscribers registered", "topics", registered)
	return nil
}

// handleCaseOpened returns a handler for case.opened events.
// Handlers must be idempotent; EventBus retries up to 3x on failure.
// Warms the Redis read-model cache so subsequent GetByID calls are served from cache.
func handleCaseOpened(a *app.Application) func(context.Context, *message.Message) error {
	caseCache := cache.NewCaseCache(a.Redis)
	return func(ctx context.Context, msg *message.Message) error {
		var evt caseEvents.CaseOpenedEvent
		if err := json.Unmarshal(msg.Payload, &evt); err != nil {
			return err
		}

		if err := caseCache.Set(ctx, &cache.CachedCase{
			ID:           evt.CaseID,
			OrgID:        evt.OrgID,
			CustomerKind: evt.CustomerKind,
			CustomerID:   evt.CustomerID,
			Subject:      evt.Subject,
			Status:       "active",
			CreatedAt:    evt.OccurredAt,
		}); err != nil {
			// Cache warming is best-effort; log but do not fail the handler.
			a.Logger.WarnContext(ctx, "cache warm failed for case.opened",
				"case_id", evt.CaseID, "error", err)
		} else {
			a.Logger.InfoContext(ctx, "cache warmed",
				"case_id", evt.CaseID, "org_id", evt.OrgID)
		}

		return nil
	}
}

// handleCaseClosed returns a handler for case.closed events.
// Evicts the cached read model; the next read repopulates it with the
// non-active status.
func handleCaseClosed(a *app.Application) func(context.Context, *message.Message) error {
	caseCache := cache.NewCaseCache(a.Redis)
	return func(ctx context.Context, msg *message.Message) error {
		var evt caseEvents.CaseClosedEvent
		if err := json.Unmarshal(msg.Payload, &evt); err != nil {
			return err
		}

		if err := caseCache.Delete(ctx, evt.OrgID, evt.CaseID); err != nil {
			a.Logger.WarnContext(ctx, "cache evict failed for case.closed",
				"case_id", evt.CaseID, "error", err)
		} else {
			a.Logger.InfoContext(ctx, "cache evicted",
				"case_id", evt.CaseID, "org_id", evt.OrgID, "status", evt.Status)
		}

		return nil
	}
}
