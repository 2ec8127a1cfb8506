package pqkem

import (
	"context"
	"io"
	"sync"
	"time"
)

// OpKind identifies the KEM operation a submitted task performs.
type OpKind int

const (
	OpKeyGen OpKind = iota + 1
	OpEncapsulate
	OpDecapsulate
)

// String returns the operation name for audit and log output.
func (k OpKind) String() string {
	switch k {
	case OpKeyGen:
		return "keygen"
	case OpEncapsulate:
		return "encapsulate"
	case OpDecapsulate:
		return "decapsulate"
	default:
		return "unknown"
	}
}

// AuditEvent describes one completed operation for monitoring sinks. It
// carries timing and outcome only — never key or secret bytes.
type AuditEvent struct {
	Kind     OpKind
	Duration time.Duration
	// Err is nil on success. Implicit rejection during decapsulation is
	// deliberately indistinguishable from success and never appears here.
	Err error
}

// AuditFunc receives audit events. See WithAuditHook.
type AuditFunc func(AuditEvent)

// Op describes one KEM operation to submit. Exactly the fields relevant to
// Kind are read: PublicKey for OpEncapsulate, SecretKey and Ciphertext for
// OpDecapsulate, none for OpKeyGen. Rand overrides the random source
// (crypto/rand if nil).
type Op struct {
	Kind       OpKind
	PublicKey  *PublicKey
	SecretKey  *SecretKey
	Ciphertext []byte
	Rand       io.Reader
}

// Result carries the outcome of a completed operation. Fields are populated
// according to the operation kind; Err reports typed failures.
type Result struct {
	PublicKey    *PublicKey
	SecretKey    *SecretKey
	Ciphertext   []byte
	SharedSecret []byte
	Err          error
}

// Handle tracks a submitted operation until its result is collected.
type Handle struct {
	done chan struct{}
	res  Result
}

// Wait blocks until the operation completes or ctx is cancelled, then
// returns the result. An in-flight operation is never interrupted by
// cancellation — partial abandonment of secret-bearing state is not safe —
// so cancelling Wait only abandons the caller, not the work.
func (h *Handle) Wait(ctx context.Context) (*Result, error) {
	select {
	case <-h.done:
		return &h.res, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Done returns a channel closed when the result is ready, for select loops.
func (h *Handle) Done() <-chan struct{} { return h.done }

// scratch is the reusable working set for one in-flight operation: the
// buffers that hold seed material while an operation runs. Each scratch is
// exclusively owned by one task at a time and wiped before going back in
// the pool.
type scratch struct {
	seed [SeedSize]byte
}

func (s *scratch) wipe() {
	for i := range s.seed {
		s.seed[i] = 0
	}
}

type task struct {
	op      Op
	buf     *scratch
	handle  *Handle
	started time.Time
}

// Scheduler dispatches independent KEM operations across a fixed pool of
// worker goroutines, with a bounded pool of scratch buffers providing
// backpressure. Operations have no cross-dependencies, so no ordering is
// guaranteed or needed; correctness is per-call.
type Scheduler struct {
	scheme *Scheme
	cfg    *schedulerConfig

	// buffers is the scratch pool; acquiring one admits an operation.
	buffers chan *scratch
	// queue feeds admitted tasks to the workers.
	queue chan *task

	wg       sync.WaitGroup
	mu       sync.Mutex
	closed   bool
	closedCh chan struct{}
}

// NewScheduler creates a scheduler executing operations against scheme.
// Callers must Close it to release the workers.
func NewScheduler(scheme *Scheme, opts ...SchedulerOption) *Scheduler {
	cfg := defaultSchedulerConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	s := &Scheduler{
		scheme:   scheme,
		cfg:      cfg,
		buffers:  make(chan *scratch, cfg.poolCapacity),
		queue:    make(chan *task, cfg.poolCapacity),
		closedCh: make(chan struct{}),
	}
	for i := 0; i < cfg.poolCapacity; i++ {
		s.buffers <- &scratch{}
	}
	for i := 0; i < cfg.workers; i++ {
		s.wg.Add(1)
		go s.worker()
	}
	return s
}

// Submit admits an operation, blocking while the scratch pool is exhausted.
// The wait is bounded by ctx: cancellation before admission returns
// ctx.Err() and the operation never starts. On success the returned handle
// collects the result via Wait.
func (s *Scheduler) Submit(ctx context.Context, op Op) (*Handle, error) {
	select {
	case <-s.closedCh:
		return nil, ErrSchedulerClosed
	default:
	}

	select {
	case buf := <-s.buffers:
		return s.enqueue(op, buf)
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-s.closedCh:
		return nil, ErrSchedulerClosed
	}
}

// SubmitBatch admits a batch of independent operations, blocking for
// admission the same way Submit does. Handles are returned in op order; if
// admission fails partway the handles admitted so far are returned with
// the error, and the caller should still collect them.
func (s *Scheduler) SubmitBatch(ctx context.Context, ops []Op) ([]*Handle, error) {
	handles := make([]*Handle, 0, len(ops))
	for _, op := range ops {
		h, err := s.Submit(ctx, op)
		if err != nil {
			return handles, err
		}
		handles = append(handles, h)
	}
	return handles, nil
}

// TrySubmit admits an operation only if a scratch buffer is immediately
// available, failing with ErrPoolExhausted otherwise. This is the
// non-blocking path for callers that implement their own shedding.
func (s *Scheduler) TrySubmit(op Op) (*Handle, error) {
	select {
	case <-s.closedCh:
		return nil, ErrSchedulerClosed
	default:
	}

	select {
	case buf := <-s.buffers:
		return s.enqueue(op, buf)
	default:
		return nil, ErrPoolExhausted
	}
}

func (s *Scheduler) enqueue(op Op, buf *scratch) (*Handle, error) {
	t := &task{
		op:      op,
		buf:     buf,
		handle:  &Handle{done: make(chan struct{})},
		started: time.Now(),
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		s.buffers <- buf
		return nil, ErrSchedulerClosed
	}
	s.queue <- t
	s.mu.Unlock()
	return t.handle, nil
}

// Close stops the scheduler. Queued-but-not-started operations fail with
// ErrSchedulerClosed; in-flight operations run to completion (interrupting
// them could leak partial secret state). Close blocks until the workers
// have drained, then wipes the scratch pool.
func (s *Scheduler) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	close(s.closedCh)
	close(s.queue)
	s.mu.Unlock()

	s.wg.Wait()

	for {
		select {
		case buf := <-s.buffers:
			buf.wipe()
		default:
			return
		}
	}
}

func (s *Scheduler) worker() {
	defer s.wg.Done()
	for t := range s.queue {
		select {
		case <-s.closedCh:
			// Dropped before starting.
			t.handle.res = Result{Err: ErrSchedulerClosed}
		default:
			s.execute(t)
		}
		t.buf.wipe()
		s.buffers <- t.buf
		close(t.handle.done)
	}
}

// execute runs one operation to completion on the worker goroutine. Seed
// material is read into the task's pooled scratch buffer, which the worker
// wipes before the buffer returns to the pool.
func (s *Scheduler) execute(t *task) {
	start := time.Now()
	res := &t.handle.res

	switch t.op.Kind {
	case OpKeyGen:
		seed := t.buf.seed[:SeedSize]
		if err := s.scheme.fillSeed(t.op.Rand, seed); err != nil {
			res.Err = err
			break
		}
		res.PublicKey, res.SecretKey, res.Err = s.scheme.GenerateKeyPairFromSeed(seed)
	case OpEncapsulate:
		if t.op.PublicKey == nil || t.op.PublicKey.set != s.scheme.set {
			res.Err = ErrMalformedPublicKey
			break
		}
		m := t.buf.seed[:EncapsulationSeedSize]
		if err := s.scheme.fillSeed(t.op.Rand, m); err != nil {
			res.Err = err
			break
		}
		res.Ciphertext, res.SharedSecret, res.Err = s.scheme.encapsulateWith(t.op.PublicKey, m)
	case OpDecapsulate:
		res.SharedSecret, res.Err = s.scheme.Decapsulate(t.op.Ciphertext, t.op.SecretKey)
	default:
		res.Err = ErrUnknownOperation
	}

	if s.cfg.audit != nil {
		s.cfg.audit(AuditEvent{
			Kind:     t.op.Kind,
			Duration: time.Since(start),
			Err:      res.Err,
		})
	}
}
