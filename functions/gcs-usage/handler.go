package main

import (
	"context"
	"fmt"

	"github.com/cloudevents/sdk-go/v2/event"
	"github.com/salrashid123/gcr-stats/internal/usageloader"
)

type handler struct {
	ul *usageloader.Loader
}

func (h *handler) handle(ctx context.Context, e event.Event) error {
	var n usageloader.Notification
	if err := e.DataAs(&n); err != nil {
		return fmt.Errorf("decode storage event %s: %w", e.ID(), err)
	}
	return h.ul.Handle(ctx, n)
}
