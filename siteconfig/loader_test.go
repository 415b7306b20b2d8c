package siteconfig

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFetcher struct {
	calls   atomic.Int32
	release chan struct{}
	started chan struct{}
	once    sync.Once
	config  json.RawMessage
	err     error
}

func (f *fakeFetcher) Get(ctx context.Context) (json.RawMessage, error) {
	f.calls.Add(1)
	if f.started != nil {
		f.once.Do(func() { close(f.started) })
	}
	if f.release != nil {
		<-f.release
	}
	return f.config, f.err
}

func TestFetchCachesConfig(t *testing.T) {
	f := &fakeFetcher{config: json.RawMessage(`{"titulo":"Tienda"}`)}
	l := NewLoader(f)

	_, ok := l.Config()
	assert.False(t, ok)

	require.NoError(t, l.Fetch(context.Background()))
	require.NoError(t, l.Fetch(context.Background()))

	cfg, ok := l.Config()
	assert.True(t, ok)
	assert.JSONEq(t, `{"titulo":"Tienda"}`, string(cfg))
	assert.EqualValues(t, 1, f.calls.Load())
}

func TestConcurrentFetchesShareOneCall(t *testing.T) {
	f := &fakeFetcher{
		config:  json.RawMessage(`{}`),
		release: make(chan struct{}),
		started: make(chan struct{}),
	}
	l := NewLoader(f)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		assert.NoError(t, l.Fetch(context.Background()))
	}()

	<-f.started
	assert.True(t, l.Loading())

	wg.Add(1)
	go func() {
		defer wg.Done()
		assert.NoError(t, l.Fetch(context.Background()))
	}()

	close(f.release)
	wg.Wait()

	assert.EqualValues(t, 1, f.calls.Load())
	assert.False(t, l.Loading())
	assert.True(t, l.Loaded())
}

func TestFetchFailureIsStoredAndRetryable(t *testing.T) {
	f := &fakeFetcher{err: errors.New("permission denied")}
	l := NewLoader(f)

	err := l.Fetch(context.Background())

	require.Error(t, err)
	assert.EqualError(t, l.Err(), "permission denied")
	assert.False(t, l.Loaded())
	assert.False(t, l.Loading())

	f.err = nil
	f.config = json.RawMessage(`{"ok":true}`)
	require.NoError(t, l.Fetch(context.Background()))
	assert.NoError(t, l.Err())
	assert.EqualValues(t, 2, f.calls.Load())
}

func TestResetAllowsRefetch(t *testing.T) {
	f := &fakeFetcher{config: json.RawMessage(`{"v":1}`)}
	l := NewLoader(f)
	require.NoError(t, l.Fetch(context.Background()))

	f.config = json.RawMessage(`{"v":2}`)
	l.Reset()
	assert.False(t, l.Loaded())

	require.NoError(t, l.Fetch(context.Background()))
	cfg, _ := l.Config()
	assert.JSONEq(t, `{"v":2}`, string(cfg))
	assert.EqualValues(t, 2, f.calls.Load())
}
