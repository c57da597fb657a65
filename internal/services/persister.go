package services

import (
	"context"
	"log/slog"
	"time"

	"lineupplanner/internal/domain"
)

// persister writes serialized state in the background. Only the latest pending
// payload is kept: a newer snapshot replaces one that has not been written yet.
// Write failures are logged and dropped; in-memory state stays authoritative.
type persister struct {
	store   domain.StateStore
	logger  *slog.Logger
	timeout time.Duration
	pending chan []byte
	done    chan struct{}
}

func newPersister(store domain.StateStore, logger *slog.Logger, timeout time.Duration) *persister {
	p := &persister{
		store:   store,
		logger:  logger,
		timeout: timeout,
		pending: make(chan []byte, 1),
		done:    make(chan struct{}),
	}
	go p.run()
	return p
}

// enqueue must be called by a single producer at a time.
func (p *persister) enqueue(payload []byte) {
	for {
		select {
		case p.pending <- payload:
			return
		default:
		}
		select {
		case <-p.pending:
		default:
		}
	}
}

func (p *persister) run() {
	defer close(p.done)
	for payload := range p.pending {
		ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
		if err := p.store.Save(ctx, payload); err != nil {
			p.logger.Error("save lineup state failed", "err", err, "bytes", len(payload))
		}
		cancel()
	}
}

// close writes whatever is pending and waits for the writer to exit.
func (p *persister) close() {
	close(p.pending)
	<-p.done
}
