package server

import (
	"context"

	"github.com/preston-bernstein/f1-dashboard-service/internal/poller"
)

// Poller is the refresh loop as the server sees it. Status feeds /ready.
type Poller interface {
	Start(ctx context.Context)
	Stop(ctx context.Context) error
	Status() poller.Status
}

var _ Poller = (*poller.Poller)(nil)
