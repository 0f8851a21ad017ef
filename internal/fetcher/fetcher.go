// Package fetcher runs scoreboard fetches on a bounded worker pool so the
// render loop never waits on the network. Requests for the same cache key
// are deduplicated: at most one fetch per key is in flight at a time.
package fetcher

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/ledmatrix/scorebug/adapters/espn"
	"github.com/ledmatrix/scorebug/internal/cache"
	"github.com/ledmatrix/scorebug/pkg/models"
)

const (
	defaultWorkers   = 3
	defaultQueueSize = 64

	// Completed results that nobody polls are dropped after this long.
	resultRetention = 10 * time.Minute
)

// ScoreboardFetcher is the slice of the HTTP client the service needs.
// Tests substitute a counting fake here.
type ScoreboardFetcher interface {
	FetchScoreboard(ctx context.Context, scoreboardURL string, opts espn.FetchOptions) ([]json.RawMessage, error)
}

// Request describes one background fetch.
type Request struct {
	Sport    string
	Year     int
	URL      string
	Dates    string
	Limit    int
	CacheKey string
	Headers  map[string]string

	// Timeout is per HTTP attempt; MaxRetries bounds attempts.
	Timeout    time.Duration
	MaxRetries int

	// Priority is a weak hint: 1 jumps the queue, anything else does
	// not. Correctness never depends on ordering.
	Priority int

	// Callback runs exactly once, from the dispatcher goroutine, after
	// the result is cached. It must only do bookkeeping, no network or
	// display work.
	Callback func(Result)
}

// Result is the terminal state of a request. Failed requests are not
// retried here beyond the HTTP client's own retries; callers resubmit on
// their next poll cycle.
type Result struct {
	RequestID string
	CacheKey  string
	Success   bool
	Events    []json.RawMessage
	Err       error
	Timestamp time.Time
}

type job struct {
	id  string
	req Request
}

// completion pairs a finished result with the request's callback so the
// dispatcher remains the single invocation site.
type completion struct {
	result   Result
	callback func(Result)
}

// Config sizes the worker pool.
type Config struct {
	Workers   int
	QueueSize int
}

// Service is the background fetch scheduler.
type Service struct {
	client ScoreboardFetcher
	store  cache.Store

	normal      chan job
	urgent      chan job
	completions chan completion

	mu       sync.Mutex
	inflight map[string]string // cache key -> request id
	results  map[string]Result
	expiry   map[string]time.Time
	seq      uint64

	workers  int
	stopChan chan struct{}
	wg       sync.WaitGroup
}

// New creates a service; call Start before submitting.
func New(client ScoreboardFetcher, store cache.Store, cfg Config) *Service {
	workers := cfg.Workers
	if workers <= 0 {
		workers = defaultWorkers
	}
	queueSize := cfg.QueueSize
	if queueSize <= 0 {
		queueSize = defaultQueueSize
	}

	return &Service{
		client:      client,
		store:       store,
		normal:      make(chan job, queueSize),
		urgent:      make(chan job, queueSize),
		completions: make(chan completion, queueSize),
		inflight:    make(map[string]string),
		results:     make(map[string]Result),
		expiry:      make(map[string]time.Time),
		workers:     workers,
		stopChan:    make(chan struct{}),
	}
}

// Start launches the worker pool and the dispatcher.
func (s *Service) Start(ctx context.Context) {
	for i := 0; i < s.workers; i++ {
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.runWorker(ctx)
		}()
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.runDispatcher(ctx)
	}()
}

// Stop shuts the pool down. In-flight fetches run to completion.
func (s *Service) Stop() {
	close(s.stopChan)
	s.wg.Wait()
}

// Submit enqueues a fetch and returns its request id. If a fetch for the
// same cache key is already outstanding, the in-flight request's id is
// returned and no second network call is started.
func (s *Service) Submit(req Request) (string, error) {
	if req.CacheKey == "" {
		return "", fmt.Errorf("fetch request requires a cache key")
	}

	s.mu.Lock()
	if id, ok := s.inflight[req.CacheKey]; ok {
		s.mu.Unlock()
		return id, nil
	}
	s.seq++
	id := fmt.Sprintf("%s-%d", req.CacheKey, s.seq)
	s.inflight[req.CacheKey] = id
	s.mu.Unlock()

	queue := s.normal
	if req.Priority == 1 {
		queue = s.urgent
	}

	select {
	case queue <- job{id: id, req: req}:
		return id, nil
	default:
		s.mu.Lock()
		delete(s.inflight, req.CacheKey)
		s.mu.Unlock()
		return "", fmt.Errorf("fetch queue full, dropping request for %s", req.CacheKey)
	}
}

// GetResult is a non-blocking poll for a completed request. The result is
// handed off exactly once: a successful read removes it from the table.
func (s *Service) GetResult(requestID string) *Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	res, ok := s.results[requestID]
	if !ok {
		return nil
	}
	delete(s.results, requestID)
	delete(s.expiry, requestID)
	return &res
}

// InFlight reports whether a fetch for the cache key is outstanding.
func (s *Service) InFlight(cacheKey string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.inflight[cacheKey]
	return ok
}

func (s *Service) runWorker(ctx context.Context) {
	for {
		// Drain urgent jobs first; priority stays a hint, not a guarantee.
		select {
		case <-s.stopChan:
			return
		case <-ctx.Done():
			return
		case j := <-s.urgent:
			s.execute(ctx, j)
			continue
		default:
		}

		select {
		case <-s.stopChan:
			return
		case <-ctx.Done():
			return
		case j := <-s.urgent:
			s.execute(ctx, j)
		case j := <-s.normal:
			s.execute(ctx, j)
		}
	}
}

func (s *Service) execute(ctx context.Context, j job) {
	events, err := s.client.FetchScoreboard(ctx, j.req.URL, espn.FetchOptions{
		Dates:      j.req.Dates,
		Limit:      j.req.Limit,
		Timeout:    j.req.Timeout,
		MaxRetries: j.req.MaxRetries,
		Headers:    j.req.Headers,
	})

	c := completion{
		result: Result{
			RequestID: j.id,
			CacheKey:  j.req.CacheKey,
			Success:   err == nil,
			Events:    events,
			Err:       err,
			Timestamp: time.Now(),
		},
		callback: j.req.Callback,
	}

	select {
	case s.completions <- c:
	case <-s.stopChan:
	case <-ctx.Done():
	}
}

// runDispatcher serializes all completion side effects on one goroutine:
// cache write, result bookkeeping, and the caller's callback. Callers
// never observe two callbacks running concurrently.
func (s *Service) runDispatcher(ctx context.Context) {
	prune := time.NewTicker(time.Minute)
	defer prune.Stop()

	for {
		select {
		case <-s.stopChan:
			return
		case <-ctx.Done():
			return
		case <-prune.C:
			s.pruneResults()
		case c := <-s.completions:
			s.finish(ctx, c)
		}
	}
}

func (s *Service) finish(ctx context.Context, c completion) {
	res := c.result

	if res.Success {
		payload, err := (&models.Schedule{Events: res.Events}).Marshal()
		if err == nil {
			if err := s.store.Set(ctx, res.CacheKey, payload); err != nil {
				log.Printf("[fetcher] cache write failed for %s: %v", res.CacheKey, err)
			}
		}
	} else {
		log.Printf("[fetcher] fetch failed for %s: %v", res.CacheKey, res.Err)
	}

	s.mu.Lock()
	delete(s.inflight, res.CacheKey)
	s.results[res.RequestID] = res
	s.expiry[res.RequestID] = res.Timestamp.Add(resultRetention)
	s.mu.Unlock()

	// Bookkeeping happens before the callback so a callback that checks
	// GetResult or resubmits sees consistent state.
	if c.callback != nil {
		c.callback(res)
	}
}

func (s *Service) pruneResults() {
	now := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, deadline := range s.expiry {
		if now.After(deadline) {
			delete(s.results, id)
			delete(s.expiry, id)
		}
	}
}
