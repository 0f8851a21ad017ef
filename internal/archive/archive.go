// Package archive keeps a durable history of final scores in Postgres.
// The panel itself never reads it back; it exists so a season of results
// survives the cache being cleared.
package archive

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/lib/pq"

	"github.com/ledmatrix/scorebug/pkg/models"
)

const (
	defaultBatchSize     = 50
	defaultFlushInterval = 30 * time.Second
)

// Writer batches final-game upserts.
type Writer struct {
	db *sql.DB

	batchSize     int
	flushInterval time.Duration

	buffer []models.Game
	mu     sync.Mutex

	// A game id is written once per process; finals reappear in every
	// poll cycle and don't need rewriting.
	seen   map[string]bool
	seenMu sync.Mutex

	stopChan chan struct{}
	wg       sync.WaitGroup
}

// NewWriter creates a batching archive writer.
func NewWriter(db *sql.DB) *Writer {
	return &Writer{
		db:            db,
		batchSize:     defaultBatchSize,
		flushInterval: defaultFlushInterval,
		buffer:        make([]models.Game, 0, defaultBatchSize),
		seen:          make(map[string]bool),
		stopChan:      make(chan struct{}),
	}
}

// Start begins the background flush ticker.
func (w *Writer) Start(ctx context.Context) {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		ticker := time.NewTicker(w.flushInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := w.Flush(ctx); err != nil {
					log.Printf("[archive] flush error: %v", err)
				}
			case <-w.stopChan:
				_ = w.Flush(ctx)
				return
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Stop flushes remaining games and shuts down.
func (w *Writer) Stop() {
	close(w.stopChan)
	w.wg.Wait()
}

// Record buffers final games for archival. Non-final games and games
// already recorded this process are ignored.
func (w *Writer) Record(games []models.Game) {
	fresh := make([]models.Game, 0, len(games))

	w.seenMu.Lock()
	for _, g := range games {
		if !g.IsFinal() || g.ID == "" || w.seen[g.ID] {
			continue
		}
		w.seen[g.ID] = true
		fresh = append(fresh, g)
	}
	w.seenMu.Unlock()

	if len(fresh) == 0 {
		return
	}

	w.mu.Lock()
	w.buffer = append(w.buffer, fresh...)
	shouldFlush := len(w.buffer) >= w.batchSize
	w.mu.Unlock()

	if shouldFlush {
		if err := w.Flush(context.Background()); err != nil {
			log.Printf("[archive] flush error: %v", err)
		}
	}
}

// Flush upserts the buffered games in one statement.
func (w *Writer) Flush(ctx context.Context) error {
	w.mu.Lock()
	if len(w.buffer) == 0 {
		w.mu.Unlock()
		return nil
	}
	games := w.buffer
	w.buffer = make([]models.Game, 0, w.batchSize)
	w.mu.Unlock()

	gameIDs := make([]string, len(games))
	leagues := make([]string, len(games))
	homeAbbrs := make([]string, len(games))
	awayAbbrs := make([]string, len(games))
	homeScores := make([]string, len(games))
	awayScores := make([]string, len(games))
	startTimes := make([]time.Time, len(games))
	statusTexts := make([]string, len(games))

	for i, g := range games {
		gameIDs[i] = g.ID
		leagues[i] = g.League
		homeAbbrs[i] = g.HomeAbbr
		awayAbbrs[i] = g.AwayAbbr
		homeScores[i] = g.HomeScore
		awayScores[i] = g.AwayScore
		startTimes[i] = g.StartTime
		statusTexts[i] = g.StatusText
	}

	query := `
		INSERT INTO game_results (
			game_id, league, home_abbr, away_abbr,
			home_score, away_score, start_time, status_text, archived_at
		)
		SELECT
			UNNEST($1::text[]), UNNEST($2::text[]), UNNEST($3::text[]), UNNEST($4::text[]),
			UNNEST($5::text[]), UNNEST($6::text[]), UNNEST($7::timestamptz[]), UNNEST($8::text[]), NOW()
		ON CONFLICT (game_id) DO UPDATE SET
			home_score = EXCLUDED.home_score,
			away_score = EXCLUDED.away_score,
			status_text = EXCLUDED.status_text,
			archived_at = NOW()
	`

	_, err := w.db.ExecContext(ctx, query,
		pq.Array(gameIDs),
		pq.Array(leagues),
		pq.Array(homeAbbrs),
		pq.Array(awayAbbrs),
		pq.Array(homeScores),
		pq.Array(awayScores),
		pq.Array(startTimes),
		pq.Array(statusTexts),
	)
	if err != nil {
		return fmt.Errorf("upsert game results: %w", err)
	}

	log.Printf("[archive] recorded %d final games", len(games))
	return nil
}

// Buffered reports how many games await flushing (used by tests).
func (w *Writer) Buffered() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.buffer)
}
