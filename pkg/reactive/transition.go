package reactive

// Scheduler stages batched state commits ("transitions"). A transition
// applies its mutation inside a Batch, then queues a completion callback
// that runs only after the outermost transition of the current burst has
// unwound. Transitions started synchronously from inside another
// transition's propagation (effects, memo re-evaluation) join the same
// burst: their mutations apply immediately, their completions queue behind.
//
// Supersession is the caller's concern: a completion callback decides for
// itself whether a later transition has overtaken it (the navigation engine
// snapshots its redirect-chain length for this). The Scheduler only
// guarantees that every completion of a burst runs, in start order, after
// the burst's last mutation has propagated.
//
// A Scheduler is owned by a single goroutine; it is not safe for concurrent
// use. That mirrors the cooperative model of the engine it serves.
type Scheduler struct {
	// depth counts transitions currently applying their mutation.
	depth int

	// draining is set while completion callbacks are being run.
	draining bool

	// queue holds completion callbacks for the current burst.
	queue []func()

	// routing reports whether a burst is in flight.
	routing *Signal[bool]
}

// NewScheduler creates a transition scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{
		routing: NewSignal(false),
	}
}

// Routing returns true while a transition burst is pending. Reactive read.
func (s *Scheduler) Routing() bool {
	return s.routing.Get()
}

// PeekRouting returns the pending flag without subscribing.
func (s *Scheduler) PeekRouting() bool {
	return s.routing.Peek()
}

// Start runs mutate inside a Batch and schedules done for when the current
// burst settles. done may be nil. done may itself call Start; the new
// transition joins the tail of the same drain.
func (s *Scheduler) Start(mutate func(), done func()) {
	if s.depth == 0 && !s.draining {
		s.routing.Set(true)
	}

	s.depth++
	Batch(mutate)
	s.depth--

	if done != nil {
		s.queue = append(s.queue, done)
	}

	if s.depth > 0 || s.draining {
		return
	}

	s.draining = true
	for len(s.queue) > 0 {
		next := s.queue[0]
		s.queue = s.queue[1:]
		next()
	}
	s.draining = false
	s.routing.Set(false)
}
