// Package sse implements a Server-Sent Events broker that tells clients
// when the content catalog has been rebuilt.
package sse

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"slices"
	"sync/atomic"
	"time"
)

// Event types.
const (
	EventReloaded     = "catalog.reloaded"
	EventReloadFailed = "catalog.reload_failed"
)

// Event represents an SSE event to broadcast.
type Event struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// Reload describes a rebuilt catalog.
type Reload struct {
	Version  string   `json:"version"`
	Projects int      `json:"projects"`
	Changed  []string `json:"changed,omitempty"`
}

// Broker fans catalog events out to connected SSE clients.
//
// One goroutine owns the client set and the reload throttle; every public
// method talks to it over channels.
type Broker struct {
	reloadMin time.Duration
	keepAlive time.Duration

	joinCh    chan membership
	leaveCh   chan membership
	publishCh chan Event
	reloadCh  chan Reload

	clients atomic.Int64
	stopCh  chan struct{}
	stopped chan struct{}
	closed  atomic.Bool
}

// membership is a join or leave request; done is closed once the loop
// has applied it, so ClientCount is exact when the call returns.
type membership struct {
	ch   chan []byte
	done chan struct{}
}

// NewBroker creates a broker that emits at most one catalog.reloaded per
// throttle interval. Reloads inside the window are coalesced and sent
// when it closes, so the last one always reaches clients.
func NewBroker(throttle time.Duration) *Broker {
	if throttle <= 0 {
		throttle = 2 * time.Second
	}

	b := &Broker{
		reloadMin: throttle,
		keepAlive: 15 * time.Second,
		joinCh:    make(chan membership),
		leaveCh:   make(chan membership),
		publishCh: make(chan Event, 256),
		reloadCh:  make(chan Reload, 256),
		stopCh:    make(chan struct{}),
		stopped:   make(chan struct{}),
	}

	go b.run()
	return b
}

func frame(seq uint64, e Event) ([]byte, error) {
	payload, err := json.Marshal(e.Data)
	if err != nil {
		return nil, err
	}
	return fmt.Appendf(nil, "id: %d\nevent: %s\ndata: %s\n\n", seq, e.Type, payload), nil
}

func (b *Broker) run() {
	defer close(b.stopped)

	clients := make(map[chan []byte]struct{})
	var (
		seq     uint64
		last    time.Time
		pending *Reload
		window  *time.Timer
		windowC <-chan time.Time
	)

	send := func(e Event) {
		raw, err := frame(seq+1, e)
		if err != nil {
			return
		}
		seq++
		for ch := range clients {
			select {
			case ch <- raw:
			default: // slow client misses this one
			}
		}
	}

	flush := func() {
		if pending != nil {
			last = time.Now()
			send(Event{Type: EventReloaded, Data: *pending})
			pending = nil
		}
	}

	for {
		select {
		case <-b.stopCh:
			if window != nil {
				window.Stop()
			}
			for ch := range clients {
				close(ch)
			}
			b.clients.Store(0)
			return

		case m := <-b.joinCh:
			clients[m.ch] = struct{}{}
			b.clients.Store(int64(len(clients)))
			close(m.done)

		case m := <-b.leaveCh:
			if _, ok := clients[m.ch]; ok {
				delete(clients, m.ch)
				close(m.ch)
			}
			b.clients.Store(int64(len(clients)))
			close(m.done)

		case e := <-b.publishCh:
			send(e)

		case r := <-b.reloadCh:
			if pending != nil {
				r.Changed = mergePaths(pending.Changed, r.Changed)
			}
			pending = &r
			if windowC != nil {
				continue
			}
			if wait := b.reloadMin - time.Since(last); wait > 0 {
				window = time.NewTimer(wait)
				windowC = window.C
				continue
			}
			flush()

		case <-windowC:
			window, windowC = nil, nil
			flush()
		}
	}
}

// mergePaths unions two path lists, keeping first-seen order.
func mergePaths(a, b []string) []string {
	out := slices.Clone(a)
	for _, p := range b {
		if !slices.Contains(out, p) {
			out = append(out, p)
		}
	}
	return out
}

// Close stops the loop and closes every client channel. It is safe to
// call more than once.
func (b *Broker) Close() {
	if b.closed.CompareAndSwap(false, true) {
		close(b.stopCh)
	}
	<-b.stopped
}

// request hands m to the loop and waits for it to be applied. It reports
// false when the broker has stopped.
func (b *Broker) request(to chan membership, m membership) bool {
	select {
	case to <- m:
	case <-b.stopped:
		return false
	}
	// The loop closes done in the same step that accepted m.
	<-m.done
	return true
}

// Subscribe registers a client. The returned channel is closed by
// Unsubscribe or Close.
func (b *Broker) Subscribe() chan []byte {
	ch := make(chan []byte, 64)
	if b.closed.Load() || !b.request(b.joinCh, membership{ch: ch, done: make(chan struct{})}) {
		close(ch)
	}
	return ch
}

// Unsubscribe removes a client and closes its channel.
func (b *Broker) Unsubscribe(ch chan []byte) {
	if !b.closed.Load() {
		b.request(b.leaveCh, membership{ch: ch, done: make(chan struct{})})
	}
}

// ClientCount returns the number of connected clients.
func (b *Broker) ClientCount() int { return int(b.clients.Load()) }

// Publish sends an event to all connected clients immediately.
func (b *Broker) Publish(event Event) {
	if b.closed.Load() {
		return
	}
	select {
	case b.publishCh <- event:
	case <-b.stopped:
	}
}

// PublishReload announces a rebuilt catalog, subject to the throttle.
func (b *Broker) PublishReload(r Reload) {
	if b.closed.Load() {
		return
	}
	select {
	case b.reloadCh <- r:
	case <-b.stopped:
	}
}

// PublishReloadFailed announces a rebuild that kept the previous catalog.
func (b *Broker) PublishReloadFailed(err error) {
	b.Publish(Event{Type: EventReloadFailed, Data: map[string]string{"error": err.Error()}})
}

// ServeHTTP streams events to one client (GET /api/events). Idle
// connections get a comment line every keep-alive interval so proxies
// do not time them out.
func (b *Broker) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	h := w.Header()
	h.Set("Content-Type", "text/event-stream")
	h.Set("Cache-Control", "no-cache")
	h.Set("Connection", "keep-alive")
	h.Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, "retry: 3000\n\n")
	flusher.Flush()

	ch := b.Subscribe()
	defer b.Unsubscribe(ch)

	ping := time.NewTicker(b.keepAlive)
	defer ping.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-ping.C:
			_, _ = io.WriteString(w, ": ping\n\n")
			flusher.Flush()
		case msg, ok := <-ch:
			if !ok {
				return
			}
			_, _ = w.Write(msg)
			flusher.Flush()
		}
	}
}
