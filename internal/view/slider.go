package view

import (
	"fmt"
	"sync/atomic"
	"time"
)

// PausePolicy selects what a hovering pointer does to auto-advance.
type PausePolicy string

const (
	// PauseAnywhere pauses while the pointer is over the slider and
	// restarts the full interval when it leaves.
	PauseAnywhere PausePolicy = "anywhere"
	// PauseOnCTA pauses only while the pointer is over a call-to-action
	// and resumes with whatever was left of the interval.
	PauseOnCTA PausePolicy = "cta"
)

// ParsePausePolicy validates a policy name; empty selects PauseAnywhere.
func ParsePausePolicy(s string) (PausePolicy, error) {
	switch p := PausePolicy(s); p {
	case "":
		return PauseAnywhere, nil
	case PauseAnywhere, PauseOnCTA:
		return p, nil
	}
	return "", fmt.Errorf("view: unknown pause policy %q", s)
}

type sliderOp int

const (
	opNext sliderOp = iota
	opPrev
	opGoto
	opHoverEnter
	opHoverLeave
	opCTAEnter
	opCTALeave
)

type sliderCmd struct {
	op  sliderOp
	arg int
}

// Slider auto-advances through n slides. A single internal loop owns the
// index and the timer; public methods talk to it over channels. onChange
// runs on that loop after every index change and must not call back into
// the slider.
type Slider struct {
	n        int
	interval time.Duration
	policy   PausePolicy
	onChange func(int)

	cmdCh     chan sliderCmd
	currentCh chan chan int

	stopCh  chan struct{}
	stopped chan struct{}
	closed  atomic.Bool
}

// NewSlider starts a slider at slide 0. A non-positive interval or fewer
// than two slides disables auto-advance; manual controls still work.
func NewSlider(n int, interval time.Duration, policy PausePolicy, onChange func(int)) *Slider {
	if onChange == nil {
		onChange = func(int) {}
	}
	s := &Slider{
		n:         n,
		interval:  interval,
		policy:    policy,
		onChange:  onChange,
		cmdCh:     make(chan sliderCmd),
		currentCh: make(chan chan int),
		stopCh:    make(chan struct{}),
		stopped:   make(chan struct{}),
	}
	go s.run()
	return s
}

func (s *Slider) run() {
	defer close(s.stopped)

	idx := 0
	auto := s.interval > 0 && s.n > 1
	hover, cta := false, false

	var timer *time.Timer
	var tick <-chan time.Time
	var deadline time.Time
	var remaining time.Duration

	arm := func(d time.Duration) {
		if !auto {
			return
		}
		if timer != nil {
			timer.Stop()
		}
		timer = time.NewTimer(d)
		tick = timer.C
		deadline = time.Now().Add(d)
	}
	disarm := func() {
		if timer != nil {
			timer.Stop()
		}
		tick = nil
	}
	paused := func() bool { return hover || cta }
	show := func(i int) {
		if s.n == 0 {
			return
		}
		idx = ((i % s.n) + s.n) % s.n
		s.onChange(idx)
		if !paused() {
			arm(s.interval)
		}
	}

	arm(s.interval)

	for {
		select {
		case <-s.stopCh:
			disarm()
			return

		case <-tick:
			tick = nil
			show(idx + 1)

		case resp := <-s.currentCh:
			resp <- idx

		case cmd := <-s.cmdCh:
			switch cmd.op {
			case opNext:
				show(idx + 1)
			case opPrev:
				show(idx - 1)
			case opGoto:
				show(cmd.arg)

			case opHoverEnter:
				if s.policy == PauseAnywhere && !hover {
					hover = true
					disarm()
				}
			case opHoverLeave:
				if s.policy == PauseAnywhere && hover {
					hover = false
					arm(s.interval)
				}

			case opCTAEnter:
				if s.policy == PauseOnCTA && !cta {
					cta = true
					remaining = time.Until(deadline)
					disarm()
				}
			case opCTALeave:
				if s.policy == PauseOnCTA && cta {
					cta = false
					arm(max(remaining, 0))
				}
			}
		}
	}
}

func (s *Slider) send(cmd sliderCmd) {
	if s.closed.Load() {
		return
	}
	select {
	case s.cmdCh <- cmd:
	case <-s.stopped:
	}
}

// Next shows the following slide, wrapping around.
func (s *Slider) Next() { s.send(sliderCmd{op: opNext}) }

// Prev shows the preceding slide, wrapping around.
func (s *Slider) Prev() { s.send(sliderCmd{op: opPrev}) }

// Goto shows slide i.
func (s *Slider) Goto(i int) { s.send(sliderCmd{op: opGoto, arg: i}) }

func (s *Slider) HoverEnter() { s.send(sliderCmd{op: opHoverEnter}) }
func (s *Slider) HoverLeave() { s.send(sliderCmd{op: opHoverLeave}) }
func (s *Slider) CTAEnter()   { s.send(sliderCmd{op: opCTAEnter}) }
func (s *Slider) CTALeave()   { s.send(sliderCmd{op: opCTALeave}) }

// Current returns the visible slide index.
func (s *Slider) Current() int {
	if s.closed.Load() {
		return -1
	}
	resp := make(chan int, 1)
	select {
	case s.currentCh <- resp:
	case <-s.stopped:
		return -1
	}
	return <-resp
}

// Stop cancels auto-advance for good. It is safe to call more than once.
func (s *Slider) Stop() {
	if s.closed.CompareAndSwap(false, true) {
		close(s.stopCh)
	}
	<-s.stopped
}
