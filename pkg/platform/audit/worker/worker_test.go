package worker

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	audit "arbiter/pkg/platform/audit"
)

type fakeSink struct {
	mu        sync.Mutex
	published []audit.Entry
	failOn    string
	closed    bool
}

func (f *fakeSink) Publish(_ context.Context, entry audit.Entry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if entry.ID == f.failOn {
		return errors.New("broker unavailable")
	}
	f.published = append(f.published, entry)
	return nil
}

func (f *fakeSink) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
}

func (f *fakeSink) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.published)
}

func TestWorkerForwardsEntries(t *testing.T) {
	sink := &fakeSink{}
	inbox := make(chan audit.Entry, 4)
	w := New(sink, inbox, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	inbox <- audit.Entry{ID: "AUD-1", DecisionID: "DEC-1", Action: audit.ActionEvaluate}
	inbox <- audit.Entry{ID: "AUD-2", DecisionID: "DEC-1", Action: audit.ActionApprove}

	require.Eventually(t, func() bool { return sink.count() == 2 },
		time.Second, 5*time.Millisecond)

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
}

func TestWorkerSkipsFailedPublishes(t *testing.T) {
	sink := &fakeSink{failOn: "AUD-BAD"}
	inbox := make(chan audit.Entry, 4)
	w := New(sink, inbox, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = w.Run(ctx) }()

	inbox <- audit.Entry{ID: "AUD-BAD", DecisionID: "DEC-1", Action: audit.ActionEvaluate}
	inbox <- audit.Entry{ID: "AUD-OK", DecisionID: "DEC-2", Action: audit.ActionEvaluate}

	require.Eventually(t, func() bool { return sink.count() == 1 },
		time.Second, 5*time.Millisecond)
	assert.Equal(t, "AUD-OK", sink.published[0].ID)
}
