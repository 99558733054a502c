package actor

import "context"

// mailbox serializes all work for one entity id. Every operation is queued
// as a closure and executed by a single goroutine, so there is never more
// than one in-flight mutation per entity.
type mailbox struct {
	tasks chan func()
}

func newMailbox() *mailbox {
	m := &mailbox{
		tasks: make(chan func(), 16),
	}
	go m.loop()
	return m
}

func (m *mailbox) loop() {
	for fn := range m.tasks {
		fn()
	}
}

// do enqueues fn and waits for it to finish. Cancellation is best-effort: a
// task that already started keeps running (and may persist) even if the
// caller gives up waiting.
func (m *mailbox) do(ctx context.Context, fn func() error) error {
	done := make(chan error, 1)

	select {
	case m.tasks <- func() { done <- fn() }:
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (m *mailbox) close() {
	close(m.tasks)
}
