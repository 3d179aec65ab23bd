package mailer

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeSender struct {
	mu       sync.Mutex
	calls    []string
	failures int
}

func (f *fakeSender) Send(to, subject, body string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, to+"|"+body)
	if f.failures > 0 {
		f.failures--
		return errors.New("connection refused")
	}
	return nil
}

func (f *fakeSender) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func newTestDispatcher(sender Sender) *Dispatcher {
	d := NewDispatcher(sender)
	d.backoff = time.Millisecond
	return d
}

func TestDispatcher_Delivers(t *testing.T) {
	sender := &fakeSender{}
	d := newTestDispatcher(sender)
	d.Start()

	d.EnqueueOTP("jane@x.com", "123456")
	d.Stop()

	assert.Equal(t, 1, sender.callCount())
	assert.Contains(t, sender.calls[0], "Your OTP is 123456")
}

func TestDispatcher_RetriesTransientFailure(t *testing.T) {
	sender := &fakeSender{failures: 2}
	d := newTestDispatcher(sender)
	d.Start()

	d.EnqueueOTP("jane@x.com", "123456")
	d.Stop()

	// Two failures then a success.
	assert.Equal(t, 3, sender.callCount())
}

func TestDispatcher_GivesUpAfterMaxRetries(t *testing.T) {
	sender := &fakeSender{failures: 100}
	d := newTestDispatcher(sender)
	d.Start()

	d.EnqueueOTP("jane@x.com", "123456")
	d.Stop()

	// Initial attempt plus maxRetries redeliveries, then dropped.
	assert.Equal(t, 1+maxRetries, sender.callCount())
}
