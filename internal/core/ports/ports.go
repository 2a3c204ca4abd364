package ports

import (
	"context"

	"github.com/lcalzada-xor/wparse/internal/core/domain"
)

// Capture defines the interface for frame capture adapters.
type Capture interface {
	// Run reads frames from the capture source and emits decoded networks
	// on the returned channel. It blocks until the source is exhausted or
	// the context is cancelled.
	Run(ctx context.Context, out chan<- domain.Network) error

	// Sources returns the capture files or interfaces this adapter reads.
	Sources() []string
}
