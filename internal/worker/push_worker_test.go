package worker

import (
	"context"
	"errors"
	"testing"

	"snackledger/internal/amqp"
	"snackledger/internal/core"
	"snackledger/internal/remote/memory"
)

func testRecord(id int64) core.Record {
	d, _ := core.ParseCivilDate("2024-03-01")
	return core.Record{ID: id, Date: d, Kind: core.Expense, Category: "食材", Amount: core.Money{Cents: 12000}}
}

func TestHandleUpsertMessage(t *testing.T) {
	client := memory.New()
	w := NewPushWorker(client)

	msg := amqp.NewUpsertMessage(testRecord(1))
	if err := w.HandleMessage(context.Background(), msg); err != nil {
		t.Fatal(err)
	}
	rows := client.Rows()
	if len(rows) != 1 || rows[0].ID != 1 {
		t.Fatalf("rows: %+v", rows)
	}
}

func TestHandleDeleteMessage(t *testing.T) {
	client := memory.New()
	client.Seed([]core.Record{testRecord(1)})
	w := NewPushWorker(client)

	d, _ := core.ParseCivilDate("2024-03-01")
	msg := amqp.NewDeleteMessage(1, d)
	if err := w.HandleMessage(context.Background(), msg); err != nil {
		t.Fatal(err)
	}
	if len(client.Rows()) != 0 {
		t.Fatalf("rows: %+v", client.Rows())
	}
	if got := client.Deleted(); len(got) != 1 || got[0] != 1 {
		t.Fatalf("deleted: %v", got)
	}
}

func TestHandleMessageRejectsInvalid(t *testing.T) {
	w := NewPushWorker(memory.New())
	tests := []struct {
		name string
		msg  amqp.SyncMessage
	}{
		{"upsert without record", amqp.SyncMessage{Action: amqp.ActionUpsert}},
		{"delete without id", amqp.SyncMessage{Action: amqp.ActionDelete}},
		{"delete with bad date", amqp.SyncMessage{Action: amqp.ActionDelete, ID: 1, Date: "yesterday"}},
		{"unknown action", amqp.SyncMessage{Action: "merge"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := w.HandleMessage(context.Background(), &tt.msg); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestHandleMessagePropagatesPushError(t *testing.T) {
	client := memory.New()
	boom := errors.New("remote down")
	client.FailPush = boom
	w := NewPushWorker(client)

	msg := amqp.NewUpsertMessage(testRecord(1))
	if err := w.HandleMessage(context.Background(), msg); !errors.Is(err, boom) {
		t.Fatalf("err = %v", err)
	}
}
