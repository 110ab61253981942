// Package commands contains the write-side handlers for tasks. Every state
// change runs inside a unit of work that saves the task and queues its domain
// events for sync in the same transaction.
package commands

import (
	"context"

	"github.com/Hamid-ijaz/mindmate/internal/productivity/domain/task"
	"github.com/Hamid-ijaz/mindmate/internal/syncqueue"
)

// enqueueEvents queues the task's uncommitted events and clears them. Must be
// called inside the same transaction as the task save.
func enqueueEvents(ctx context.Context, queue syncqueue.Repository, t *task.Task) error {
	events := t.DomainEvents()
	if len(events) == 0 {
		return nil
	}

	msgs := make([]*syncqueue.Message, 0, len(events))
	for _, event := range events {
		msg, err := syncqueue.NewMessage(event)
		if err != nil {
			return err
		}
		msgs = append(msgs, msg)
	}

	if err := queue.SaveBatch(ctx, msgs); err != nil {
		return err
	}

	t.ClearDomainEvents()
	return nil
}
