//go:build !test

package main

import (
	"context"
	"os"

	"github.com/GoogleCloudPlatform/functions-framework-go/funcframework"
	"github.com/GoogleCloudPlatform/functions-framework-go/functions"
	"github.com/cloudevents/sdk-go/v2/event"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/salrashid123/gcr-stats/internal/usageloader"
)

func main() {
	envErr := loadEnvFile()

	var (
		cfg    = usageloader.ConfigFromEnv(os.Getenv)
		logger = usageloader.NewLogger(os.Stdout, cfg.Debug)
	)
	if envErr != nil {
		level.Warn(logger).Log("msg", "ignoring .env file", "err", envErr)
	}

	wh, err := usageloader.NewBigQuery(context.Background(), cfg.Project)
	if err != nil {
		panic(err)
	}
	defer wh.Close()

	functions.CloudEvent("UsageLoader", func(ctx context.Context, e event.Event) error {
		h := handler{
			ul: &usageloader.Loader{
				Warehouse: wh,
				Logger:    log.With(logger, "event_id", e.ID()),
			},
		}
		return h.handle(ctx, e)
	})

	level.Info(logger).Log("msg", "starting function", "port", cfg.Port, "project", cfg.Project)
	if err := funcframework.Start(cfg.Port); err != nil {
		level.Error(logger).Log("msg", "function exited", "err", err)
		panic(err)
	}
}
