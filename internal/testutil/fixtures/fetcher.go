package fixtures

import (
	"context"
	"sync/atomic"
)

// CountingFetcher serves fixed artifact bytes and records how many fetches
// were attempted, so tests can assert the load happens at most once.
type CountingFetcher struct {
	Data  []byte
	Err   error
	count atomic.Int32
}

// Fetch implements wasm.Fetcher.
func (f *CountingFetcher) Fetch(ctx context.Context, artifact string) ([]byte, error) {
	f.count.Add(1)
	if f.Err != nil {
		return nil, f.Err
	}
	return f.Data, nil
}

// Count reports the number of Fetch calls observed so far.
func (f *CountingFetcher) Count() int {
	return int(f.count.Load())
}

// BlockingFetcher parks every fetch until Release is called, then serves
// its fixed bytes. Like the production file fetcher it ignores the caller's
// context, which is what lets tests observe an await abandoned by context
// cancellation while the load itself keeps going.
type BlockingFetcher struct {
	Data []byte
	gate chan struct{}
}

// NewBlockingFetcher creates a fetcher that blocks until released.
func NewBlockingFetcher(data []byte) *BlockingFetcher {
	return &BlockingFetcher{Data: data, gate: make(chan struct{})}
}

// Fetch implements wasm.Fetcher.
func (f *BlockingFetcher) Fetch(ctx context.Context, artifact string) ([]byte, error) {
	<-f.gate
	return f.Data, nil
}

// Release unparks all pending and future fetches. Call at most once.
func (f *BlockingFetcher) Release() {
	close(f.gate)
}
