package event

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/Homestead_Go/internal/domain"
)

// flakyBus fails its first `failures` publishes
type flakyBus struct {
	mu       sync.Mutex
	calls    int
	failures int
}

func (b *flakyBus) Publish(ctx context.Context, e Event) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls++
	if b.calls <= b.failures {
		return errors.New("bus unavailable")
	}
	return nil
}

func (b *flakyBus) Subscribe(Type, Handler) {}

func (b *flakyBus) Calls() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.calls
}

func readDeadLetters(t *testing.T, path string) []DeadLetterEntry {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var entries []DeadLetterEntry
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var e DeadLetterEntry
		require.NoError(t, json.Unmarshal(sc.Bytes(), &e))
		entries = append(entries, e)
	}
	return entries
}

func testEvent() Event {
	return NewCropEvent(CropWithered, domain.Player{ID: "p1", Username: "alice"}, 0, "Turnip", 0, time.Unix(0, 0))
}

func TestResilientPublisher_FirstAttemptSucceeds(t *testing.T) {
	bus := &flakyBus{}
	rp := NewResilientPublisher(bus, ResilientConfig{RetryDelay: time.Millisecond})

	require.NoError(t, rp.Publish(context.Background(), testEvent()))
	require.NoError(t, rp.Shutdown(context.Background()))
	assert.Equal(t, 1, bus.Calls())
}

func TestResilientPublisher_RetriesUntilSuccess(t *testing.T) {
	bus := &flakyBus{failures: 2}
	rp := NewResilientPublisher(bus, ResilientConfig{MaxRetries: 3, RetryDelay: time.Millisecond})

	require.NoError(t, rp.Publish(context.Background(), testEvent()))

	assert.Eventually(t, func() bool { return bus.Calls() == 3 }, time.Second, 5*time.Millisecond)
	require.NoError(t, rp.Shutdown(context.Background()))
}

func TestResilientPublisher_DeadLettersAfterExhaustion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deadletter.jsonl")
	dlw, err := NewDeadLetterWriter(path)
	require.NoError(t, err)
	defer dlw.Close()

	bus := &flakyBus{failures: 100}
	rp := NewResilientPublisher(bus, ResilientConfig{MaxRetries: 2, RetryDelay: time.Millisecond, DeadLetter: dlw})

	require.NoError(t, rp.Publish(context.Background(), testEvent()))
	assert.Eventually(t, func() bool { return bus.Calls() == 3 }, time.Second, 5*time.Millisecond)
	require.NoError(t, rp.Shutdown(context.Background()))

	entries := readDeadLetters(t, path)
	require.Len(t, entries, 1)
	assert.Equal(t, CropWithered, entries[0].Event.Type)
	assert.Equal(t, 2, entries[0].Attempts)
	assert.Equal(t, "bus unavailable", entries[0].LastError)

	payload, err := DecodePayload[domain.CropPayload](entries[0].Event.Payload)
	require.NoError(t, err)
	assert.Equal(t, "alice", payload.Username)
}

func TestResilientPublisher_ShutdownAbortsBackoff(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deadletter.jsonl")
	dlw, err := NewDeadLetterWriter(path)
	require.NoError(t, err)
	defer dlw.Close()

	bus := &flakyBus{failures: 100}
	rp := NewResilientPublisher(bus, ResilientConfig{MaxRetries: 5, RetryDelay: time.Hour, DeadLetter: dlw})

	require.NoError(t, rp.Publish(context.Background(), testEvent()))

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, rp.Shutdown(ctx))

	assert.Equal(t, 1, bus.Calls())
	entries := readDeadLetters(t, path)
	require.Len(t, entries, 1)
	assert.Equal(t, 0, entries[0].Attempts)
}
