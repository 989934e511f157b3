// Package services holds the application service that coordinates the
// in-memory ledger, the local snapshot store and the remote endpoint.
package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"snackledger/internal/core"
	"snackledger/internal/ledger"
	"snackledger/internal/log"
	"snackledger/internal/remote"
)

var ErrRecordNotFound = errors.New("record not found")

// Snapshotter persists full ledger snapshots. *storage.Store satisfies it;
// tests plug in an in-memory fake.
type Snapshotter interface {
	Load(ctx context.Context) ([]core.Record, error)
	Save(ctx context.Context, records []core.Record) error
}

// Publisher queues mutations for an out-of-process push worker.
type Publisher interface {
	PublishUpsert(ctx context.Context, r core.Record) error
	PublishDelete(ctx context.Context, id int64, date core.CivilDate) error
}

// Service serializes every mutation: the ledger is updated and persisted
// locally first, then the remote push is attempted best-effort. A failed push
// never rolls back local state; the periodic resync reconciles later.
type Service struct {
	mu      sync.Mutex
	ledger  *ledger.Ledger
	store   Snapshotter
	fetcher remote.Fetcher
	pusher  remote.Pusher
	queue   Publisher
	logger  *log.Logger
	now     func() time.Time
}

type Options struct {
	Store   Snapshotter
	Fetcher remote.Fetcher
	// Pusher is used for direct pushes when no queue is configured.
	Pusher remote.Pusher
	// Queue, when set, takes precedence over Pusher: mutations are published
	// and a worker process performs the remote call.
	Queue  Publisher
	Logger *log.Logger
	// Now is overridable in tests; defaults to time.Now.
	Now func() time.Time
}

func New(opts Options) *Service {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(log.DefaultConfig()).WithComponent(log.ComponentLedger)
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Service{
		ledger:  ledger.New(),
		store:   opts.Store,
		fetcher: opts.Fetcher,
		pusher:  opts.Pusher,
		queue:   opts.Queue,
		logger:  logger,
		now:     now,
	}
}

// Start loads the persisted snapshot into memory. Called once before the
// service handles requests.
func (s *Service) Start(ctx context.Context) error {
	records, err := s.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("load snapshot: %w", err)
	}
	s.mu.Lock()
	s.ledger.ReplaceAll(records)
	s.mu.Unlock()
	s.logger.InfoContext(ctx, "Ledger loaded", log.FieldRecords, len(records))
	return nil
}

// SaveRecord validates and upserts a record, persists the snapshot, then
// mirrors the change to the remote. A zero ID gets a fresh millisecond
// timestamp, matching the id scheme of remotely created rows.
func (s *Service) SaveRecord(ctx context.Context, r core.Record) (core.Record, error) {
	if r.ID == 0 {
		r.ID = s.now().UnixMilli()
	}
	if err := r.Validate(); err != nil {
		return core.Record{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.ledger.Upsert(r)
	if err := s.store.Save(ctx, s.ledger.Snapshot()); err != nil {
		return core.Record{}, fmt.Errorf("persist snapshot: %w", err)
	}

	s.mirrorUpsert(ctx, r)
	return r, nil
}

// DeleteRecord removes a record, persists the snapshot and pushes a delete
// tombstone. Returns ErrRecordNotFound when the id is absent.
func (s *Service) DeleteRecord(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.ledger.Get(id)
	if !ok {
		return fmt.Errorf("%w: %d", ErrRecordNotFound, id)
	}
	s.ledger.Remove(id)
	if err := s.store.Save(ctx, s.ledger.Snapshot()); err != nil {
		return fmt.Errorf("persist snapshot: %w", err)
	}

	s.mirrorDelete(ctx, id, r.Date)
	return nil
}

// Resync replaces the whole ledger with the remote dataset and persists it.
// Returns the number of remote rows dropped during normalization. On fetch
// failure the local ledger is left untouched.
func (s *Service) Resync(ctx context.Context) (dropped int, err error) {
	records, dropped, err := s.fetcher.FetchAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("fetch remote: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.ledger.ReplaceAll(records)
	if err := s.store.Save(ctx, s.ledger.Snapshot()); err != nil {
		return dropped, fmt.Errorf("persist snapshot: %w", err)
	}

	s.logger.InfoContext(ctx, "Resync completed",
		log.FieldRecords, len(records),
		log.FieldDropped, dropped)
	return dropped, nil
}

// Snapshot returns a copy of the current ledger contents.
func (s *Service) Snapshot() []core.Record {
	return s.ledger.Snapshot()
}

// Get returns a single record by id.
func (s *Service) Get(id int64) (core.Record, bool) {
	return s.ledger.Get(id)
}

func (s *Service) mirrorUpsert(ctx context.Context, r core.Record) {
	switch {
	case s.queue != nil:
		if err := s.queue.PublishUpsert(ctx, r); err != nil {
			s.logger.ErrorContext(ctx, "Failed to queue record push",
				log.FieldRecordID, r.ID, log.FieldError, err)
		}
	case s.pusher != nil:
		if err := s.pusher.Push(ctx, r); err != nil {
			s.logger.ErrorContext(ctx, "Failed to push record",
				log.FieldRecordID, r.ID, log.FieldError, err)
		}
	}
}

func (s *Service) mirrorDelete(ctx context.Context, id int64, date core.CivilDate) {
	switch {
	case s.queue != nil:
		if err := s.queue.PublishDelete(ctx, id, date); err != nil {
			s.logger.ErrorContext(ctx, "Failed to queue delete push",
				log.FieldRecordID, id, log.FieldError, err)
		}
	case s.pusher != nil:
		if err := s.pusher.PushDelete(ctx, id, date); err != nil {
			s.logger.ErrorContext(ctx, "Failed to push delete",
				log.FieldRecordID, id, log.FieldError, err)
		}
	}
}
