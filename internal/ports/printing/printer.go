// Package printing is the contract between the dispense flow and whatever
// actually puts labels on paper. Submission is asynchronous: callers get a
// ticket back and decide whether to wait on it.
package printing

import "context"

// Ticket tracks one submitted job. Done is closed when the job leaves the
// queue; it yields nil on success or the terminal error.
type Ticket interface {
	Done() <-chan error
}

// Printer accepts rendered documents for printing.
type Printer interface {
	// Connect establishes whatever session the backend needs. Submitting
	// without a prior Connect is an error.
	Connect(ctx context.Context) error

	// Submit queues one document. The name is a human-readable job label
	// that backends may use for spool filenames or job titles.
	Submit(ctx context.Context, name string, doc []byte) (Ticket, error)

	Close() error
}
