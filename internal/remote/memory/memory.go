// Package memory is an in-process remote backend. It backs tests and the
// "memory" backend option used for offline demos.
package memory

import (
	"context"
	"sync"

	"snackledger/internal/core"
	"snackledger/internal/remote"
)

type Client struct {
	mu      sync.Mutex
	rows    []core.Record
	deleted []int64

	// FailFetch / FailPush, when set, are returned by the corresponding
	// operations to simulate an unreachable remote.
	FailFetch error
	FailPush  error
}

var (
	_ remote.Fetcher = (*Client)(nil)
	_ remote.Pusher  = (*Client)(nil)
)

func New() *Client {
	return &Client{}
}

// Seed replaces the remote dataset.
func (c *Client) Seed(records []core.Record) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rows = append([]core.Record(nil), records...)
}

func (c *Client) FetchAll(ctx context.Context) ([]core.Record, int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.FailFetch != nil {
		return nil, 0, c.FailFetch
	}
	return append([]core.Record(nil), c.rows...), 0, nil
}

func (c *Client) Push(ctx context.Context, r core.Record) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.FailPush != nil {
		return c.FailPush
	}
	for i := range c.rows {
		if c.rows[i].ID == r.ID {
			c.rows[i] = r
			return nil
		}
	}
	c.rows = append(c.rows, r)
	return nil
}

func (c *Client) PushDelete(ctx context.Context, id int64, date core.CivilDate) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.FailPush != nil {
		return c.FailPush
	}
	for i := range c.rows {
		if c.rows[i].ID == id {
			c.rows = append(c.rows[:i], c.rows[i+1:]...)
			break
		}
	}
	c.deleted = append(c.deleted, id)
	return nil
}

// Deleted lists the ids PushDelete has seen, in order.
func (c *Client) Deleted() []int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]int64(nil), c.deleted...)
}

// Rows returns a copy of the current remote dataset.
func (c *Client) Rows() []core.Record {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]core.Record(nil), c.rows...)
}
