// Package replication defines the outbound sync contract. A replicator
// forwards record changes to a peer practice server so two offices stay
// aligned without a shared database.
package replication

import (
	"context"

	"clinic-dispense/internal/platform/changefeed"
)

type Replicator interface {
	// Connect verifies the peer is reachable. Implementations stay usable
	// when it fails; delivery keeps retrying in the background.
	Connect(ctx context.Context) error

	// RecordChanged ships one change to the peer.
	RecordChanged(ctx context.Context, c changefeed.Change) error

	Close() error
}
