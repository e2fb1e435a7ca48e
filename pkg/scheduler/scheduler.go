// Package scheduler runs the periodic update pipeline: collect raw news,
// classify into intelligence records, archive and publish the dataset.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/inteldash/pkg/collector"
	"github.com/umputun/inteldash/pkg/domain"
)

//go:generate moq -out mocks/collector.go -pkg mocks -skip-ensure -fmt goimports . Collector
//go:generate moq -out mocks/classifier.go -pkg mocks -skip-ensure -fmt goimports . Classifier
//go:generate moq -out mocks/archive.go -pkg mocks -skip-ensure -fmt goimports . Archive
//go:generate moq -out mocks/publisher.go -pkg mocks -skip-ensure -fmt goimports . Publisher

// Collector gathers raw articles from all configured sources
type Collector interface {
	Collect(ctx context.Context) []collector.Article
}

// Classifier turns raw articles into intelligence records
type Classifier interface {
	Classify(ctx context.Context, articles []collector.Article) ([]domain.Record, error)
}

// Archive stores records
type Archive interface {
	AddRecords(ctx context.Context, records []domain.Record) (int, error)
}

// Publisher writes the dataset to its destinations
type Publisher interface {
	Publish(ctx context.Context, records []domain.Record) error
}

// Scheduler runs the update pipeline on a fixed interval
type Scheduler struct {
	collector  Collector
	classifier Classifier
	archive    Archive
	publisher  Publisher
	interval   time.Duration

	wg      sync.WaitGroup
	cancel  context.CancelFunc
	runLock sync.Mutex // serialize pipeline runs
}

// Config holds scheduler configuration
type Config struct {
	Collector  Collector
	Classifier Classifier
	Archive    Archive
	Publisher  Publisher
	Interval   time.Duration
}

// New creates a scheduler instance
func New(cfg Config) *Scheduler {
	if cfg.Interval == 0 {
		cfg.Interval = 6 * time.Hour
	}
	return &Scheduler{
		collector:  cfg.Collector,
		classifier: cfg.Classifier,
		archive:    cfg.Archive,
		publisher:  cfg.Publisher,
		interval:   cfg.Interval,
	}
}

// Start begins the periodic pipeline, first run fires immediately
func (s *Scheduler) Start(ctx context.Context) {
	ctx, s.cancel = context.WithCancel(ctx)

	s.wg.Add(1)
	go s.worker(ctx)

	lgr.Printf("[INFO] scheduler started with interval %v", s.interval)
}

// Stop gracefully stops the scheduler
func (s *Scheduler) Stop() {
	lgr.Printf("[INFO] stopping scheduler...")
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
	lgr.Printf("[INFO] scheduler stopped")
}

// RunNow triggers a single pipeline run, used by the update endpoint
func (s *Scheduler) RunNow(ctx context.Context) error {
	return s.run(ctx)
}

func (s *Scheduler) worker(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	// run immediately on start
	if err := s.run(ctx); err != nil {
		lgr.Printf("[ERROR] pipeline run failed: %v", err)
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.run(ctx); err != nil {
				lgr.Printf("[ERROR] pipeline run failed: %v", err)
			}
		}
	}
}

// run executes one pipeline pass: collect, classify, archive, publish.
// An empty collection skips the rest of the pass, nothing gets published
// when no new articles were fetched.
func (s *Scheduler) run(ctx context.Context) error {
	s.runLock.Lock()
	defer s.runLock.Unlock()

	started := time.Now()
	articles := s.collector.Collect(ctx)
	if len(articles) == 0 {
		lgr.Printf("[INFO] no articles collected, skipping run")
		return nil
	}
	lgr.Printf("[INFO] collected %d articles", len(articles))

	records, err := s.classifier.Classify(ctx, articles)
	if err != nil {
		return fmt.Errorf("classify articles: %w", err)
	}
	if len(records) == 0 {
		lgr.Printf("[INFO] no relevant records after classification, skipping publish")
		return nil
	}

	added, err := s.archive.AddRecords(ctx, records)
	if err != nil {
		return fmt.Errorf("archive records: %w", err)
	}

	if err := s.publisher.Publish(ctx, records); err != nil {
		return fmt.Errorf("publish dataset: %w", err)
	}

	lgr.Printf("[INFO] pipeline completed in %v: %d records, %d new in archive",
		time.Since(started).Round(time.Millisecond), len(records), added)
	return nil
}
