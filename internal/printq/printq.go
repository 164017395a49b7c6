// Package printq is the receipt print spool. On shared installs, render jobs
// go through a redis list consumed by a small worker pool (the printer is
// slow; checkout must not wait on it). On a standalone till without redis,
// rendering happens synchronously at enqueue time.
//
// Render failures are logged and the receipt stays available through the
// HTML route; nothing is retried automatically.
package printq

import (
	"context"
	"encoding/json"
	"time"

	"dukapos/internal/receipt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const QueueReceipts = "jobs:receipts"

// job is the envelope pushed onto the queue.
type job struct {
	Receipt *receipt.Projection `json:"receipt"`
}

// Spooler enqueues receipt render jobs. A nil redis client selects the
// synchronous fallback.
type Spooler struct {
	rdb *redis.Client
	dir string
}

func NewSpooler(rdb *redis.Client, dir string) *Spooler {
	return &Spooler{rdb: rdb, dir: dir}
}

// Enqueue schedules (or, without redis, performs) the PDF render for a
// receipt. Returns the output path when rendering ran synchronously.
func (s *Spooler) Enqueue(ctx context.Context, p *receipt.Projection) (string, error) {
	if s.rdb == nil {
		path, err := receipt.TicketPDF(p, s.dir)
		if err != nil {
			log.Error().Err(err).Int("receipt", p.Number).Msg("receipt render failed")
			return "", err
		}
		return path, nil
	}

	raw, err := json.Marshal(job{Receipt: p})
	if err != nil {
		return "", err
	}
	return "", s.rdb.LPush(ctx, QueueReceipts, raw).Err()
}

// Start launches numWorkers goroutines consuming the queue. Each blocks on
// BRPOP and costs nothing while idle. No-op without redis.
func (s *Spooler) Start(ctx context.Context, numWorkers int) {
	if s.rdb == nil {
		log.Info().Msg("print spool running synchronously (no redis)")
		return
	}
	for i := 0; i < numWorkers; i++ {
		go s.runWorker(ctx, i)
	}
	log.Info().Msgf("print spool started with %d workers", numWorkers)
}

func (s *Spooler) runWorker(ctx context.Context, id int) {
	for {
		select {
		case <-ctx.Done():
			log.Info().Msgf("print worker %d shutting down", id)
			return
		default:
			// Blocking pop, waits up to 5s then loops to check ctx
			result, err := s.rdb.BRPop(ctx, 5*time.Second, QueueReceipts).Result()
			if err != nil {
				continue // timeout or context cancelled
			}
			if len(result) < 2 {
				continue
			}
			s.process(result[1])
		}
	}
}

func (s *Spooler) process(raw string) {
	var j job
	if err := json.Unmarshal([]byte(raw), &j); err != nil || j.Receipt == nil {
		log.Error().Err(err).Msg("malformed print job dropped")
		return
	}
	path, err := receipt.TicketPDF(j.Receipt, s.dir)
	if err != nil {
		log.Error().Err(err).Int("receipt", j.Receipt.Number).Msg("receipt render failed")
		return
	}
	log.Info().Int("receipt", j.Receipt.Number).Str("path", path).Msg("receipt rendered")
}
