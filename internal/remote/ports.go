// Package remote defines the ports for the spreadsheet-backed endpoint the
// ledger syncs against, plus the normalization that turns loosely typed remote
// rows into validated records. Concrete backends live in the subpackages.
package remote

import (
	"context"
	"errors"

	"snackledger/internal/core"
)

var (
	// ErrRemoteUnavailable wraps transport-level failures while fetching.
	ErrRemoteUnavailable = errors.New("remote endpoint unavailable")
	// ErrPushFailed wraps transport-level failures while pushing.
	ErrPushFailed = errors.New("remote push failed")
	// ErrDeleteUnsupported is returned by backends that cannot remove rows.
	ErrDeleteUnsupported = errors.New("remote delete not supported")
)

// Ports for outbound adapters.
type (
	// Fetcher downloads the full remote dataset. dropped counts rows the
	// backend discarded during normalization (missing or non-numeric amount).
	Fetcher interface {
		FetchAll(ctx context.Context) (records []core.Record, dropped int, err error)
	}

	// Pusher mirrors a single local mutation to the remote. Implementations
	// are best-effort: callers persist locally first and never retry.
	Pusher interface {
		Push(ctx context.Context, r core.Record) error
		PushDelete(ctx context.Context, id int64, date core.CivilDate) error
	}
)
