package sync

import (
	"context"
	gosync "sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sonic/sonic-task-hub/internal/api"
	"github.com/sonic/sonic-task-hub/internal/model"
)

// SweepState represents the current state of the background sweep.
type SweepState int

const (
	SweepIdle SweepState = iota
	SweepRunning
	SweepError
)

// SweepStatus holds the state of the unsnooze sweep loop.
type SweepStatus struct {
	State     SweepState
	LastSweep time.Time
	Error     error
}

// SweepResultMsg is a tea.Msg sent when an unsnooze sweep completes.
// Woken holds the items whose snooze window elapsed and whose status the
// backend flipped back to pending.
type SweepResultMsg struct {
	Woken []model.Item
	Error error
}

// sweepTimeout is the maximum time allowed for a single sweep call.
const sweepTimeout = 30 * time.Second

// Poller periodically asks the backend to wake items whose snooze window
// has elapsed, and forwards the results into the Bubble Tea runtime so
// the visible list can refresh.
type Poller struct {
	client   *api.Client
	userID   int64
	interval time.Duration
	status   SweepStatus
	resultCh chan SweepResultMsg
	trigger  chan struct{}
	stopCh   chan struct{}
	mu       gosync.Mutex
	running  bool
}

// New creates a Poller sweeping on behalf of the given user. A
// non-positive interval falls back to two minutes.
func New(client *api.Client, userID int64, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = 2 * time.Minute
	}
	return &Poller{
		client:   client,
		userID:   userID,
		interval: interval,
		resultCh: make(chan SweepResultMsg, 16),
		trigger:  make(chan struct{}, 16),
		stopCh:   make(chan struct{}),
	}
}

// Start launches the sweep goroutine and returns a subscription command
// that delivers SweepResultMsg messages to the Bubble Tea runtime.
func (p *Poller) Start() tea.Cmd {
	p.mu.Lock()
	if p.running {
		p.mu.Unlock()
		return nil
	}
	p.running = true
	p.mu.Unlock()

	go p.loop()

	return p.waitForResult()
}

// Stop halts the sweep goroutine.
func (p *Poller) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.running {
		return
	}

	close(p.stopCh)
	p.running = false
}

// TriggerSweep requests an immediate sweep outside the regular interval.
func (p *Poller) TriggerSweep() tea.Cmd {
	select {
	case p.trigger <- struct{}{}:
	default:
		// Channel full; a sweep is already queued
	}
	return nil
}

// Status returns the current sweep status.
func (p *Poller) Status() SweepStatus {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.status
}

func (p *Poller) loop() {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	// Sweep once on startup so items snoozed past a previous session
	// wake without waiting a full interval.
	p.sweep()

	for {
		select {
		case <-p.stopCh:
			return
		case <-ticker.C:
			p.sweep()
		case <-p.trigger:
			p.sweep()
		}
	}
}

// sweep performs one unsnooze call and publishes the result.
func (p *Poller) sweep() {
	p.setStatus(SweepRunning, nil)

	ctx, cancel := context.WithTimeout(context.Background(), sweepTimeout)
	defer cancel()

	woken, err := p.client.UnsnoozeReady(ctx, p.userID)
	if err != nil {
		p.setStatus(SweepError, err)
		p.sendResult(SweepResultMsg{Error: err})
		return
	}

	p.setStatus(SweepIdle, nil)
	p.sendResult(SweepResultMsg{Woken: woken})
}

func (p *Poller) setStatus(state SweepState, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.status.State = state
	p.status.Error = err
	if state == SweepIdle && err == nil {
		p.status.LastSweep = time.Now()
	}
}

// sendResult publishes a result without blocking the sweep loop.
func (p *Poller) sendResult(msg SweepResultMsg) {
	select {
	case p.resultCh <- msg:
	default:
	}
}

// waitForResult returns a tea.Cmd that blocks until the next sweep
// result arrives.
func (p *Poller) waitForResult() tea.Cmd {
	return func() tea.Msg {
		result, ok := <-p.resultCh
		if !ok {
			return nil
		}
		return result
	}
}

// WaitForNextResult re-subscribes after a SweepResultMsg was handled.
func (p *Poller) WaitForNextResult() tea.Cmd {
	return p.waitForResult()
}
