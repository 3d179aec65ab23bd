package mailer

import (
	"log"
	"sync"
	"time"
)

const (
	defaultQueueSize = 256

	// maxRetries and baseBackoff bound redelivery: a transiently failing
	// relay gets three more tries with doubling waits, then the job is
	// dropped with a log line. Delivery is best-effort by contract; the
	// user can always hit resend.
	maxRetries  = 3
	baseBackoff = time.Minute
)

type job struct {
	to      string
	subject string
	body    string
}

// Dispatcher is the deferred executor for outbound mail. EnqueueOTP
// never blocks and never surfaces delivery errors to the caller.
type Dispatcher struct {
	sender  Sender
	jobs    chan job
	wg      sync.WaitGroup
	backoff time.Duration
}

func NewDispatcher(sender Sender) *Dispatcher {
	return &Dispatcher{
		sender:  sender,
		jobs:    make(chan job, defaultQueueSize),
		backoff: baseBackoff,
	}
}

// Start launches the delivery worker. Call once at boot.
func (d *Dispatcher) Start() {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		for j := range d.jobs {
			d.deliver(j)
		}
	}()
}

// Stop drains the queue and waits for in-flight deliveries.
func (d *Dispatcher) Stop() {
	close(d.jobs)
	d.wg.Wait()
}

// EnqueueOTP queues a verification code email. A full queue drops the
// job rather than stalling the originating request.
func (d *Dispatcher) EnqueueOTP(to, code string) {
	j := job{
		to:      to,
		subject: "Your OTP Verification Code",
		body:    "Your OTP is " + code,
	}
	select {
	case d.jobs <- j:
	default:
		log.Printf("mail queue full, dropping OTP email to %s", to)
	}
}

func (d *Dispatcher) deliver(j job) {
	backoff := d.backoff
	for attempt := 0; ; attempt++ {
		err := d.sender.Send(j.to, j.subject, j.body)
		if err == nil {
			return
		}
		if attempt >= maxRetries {
			log.Printf("giving up on email to %s after %d attempts: %v", j.to, attempt+1, err)
			return
		}
		log.Printf("email to %s failed (attempt %d): %v", j.to, attempt+1, err)
		time.Sleep(backoff)
		backoff *= 2
	}
}
