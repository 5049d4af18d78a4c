package notify

import (
	"errors"
	"testing"
	"time"
)

func TestDispatchRunsInBackground(t *testing.T) {
	done := make(chan struct{})
	Dispatch("test", func() error {
		close(done)
		return nil
	})
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("dispatched task never ran")
	}
}

func TestDispatchSwallowsErrors(t *testing.T) {
	done := make(chan struct{})
	Dispatch("failing", func() error {
		defer close(done)
		return errors.New("provider unavailable")
	})
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("dispatched task never ran")
	}
	// reaching here without the test binary dying is the contract
}

func TestDispatchRecoversPanics(t *testing.T) {
	started := make(chan struct{})
	Dispatch("panicking", func() error {
		close(started)
		panic("boom")
	})
	select {
	case <-started:
	case <-time.After(time.Second):
		t.Fatal("dispatched task never ran")
	}
	// give the deferred recover a moment, an unrecovered panic would kill
	// the test process
	time.Sleep(50 * time.Millisecond)
}
