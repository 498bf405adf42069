// Package schedule implements Mint's bounded-parallelism build
// scheduler: a priority queue of ready targets, a worker pool running
// their actions concurrently up to a configurable job limit, and a
// filesystem watcher that re-triggers the ready-queue walk on source
// changes. Grounded on the teacher's lib/build/JobMgr.cpp.
package schedule

import (
	"container/heap"
	"fmt"
	"sync"

	"mint.build/mint/internal/diagnostics"
	"mint.build/mint/internal/eval"
	"mint.build/mint/internal/source"
	"mint.build/mint/internal/target"
)

// targetQueue is a min-heap over Target.Name, the Go equivalent of the
// teacher's std::priority_queue<Target*, ..., TargetLess> (TargetLess
// sorts lexicographically descending so pop() yields the lexicographically
// smallest path first; heap.Pop here does the same with a plain Less).
type targetQueue []*target.Target

func (q targetQueue) Len() int { return len(q) }
func (q targetQueue) Less(i, j int) bool {
	return q[i].String() < q[j].String()
}
func (q targetQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }
func (q *targetQueue) Push(x interface{}) {
	*q = append(*q, x.(*target.Target))
}
func (q *targetQueue) Pop() interface{} {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[:n-1]
	return item
}

// JobMgr runs targets' build actions with bounded parallelism, matching
// JobMgr::run's "never exceed maxJobCount concurrently running jobs"
// policy, but using goroutines and a WaitGroup instead of the teacher's
// single-threaded poll loop over non-blocking child processes.
type JobMgr struct {
	mu      sync.Mutex
	targets *target.Manager
	ev      *eval.Evaluator
	diags   *diagnostics.Sink
	out     *StreamBuffer

	ready   targetQueue
	maxJobs int
	running int
	cond    *sync.Cond
	errs    []error
}

// NewJobMgr creates a JobMgr bounded at maxJobs concurrent actions. out
// is kept on the JobMgr but never written to by it; job output goes to
// whatever writer the shell namespace was built with.
func NewJobMgr(targets *target.Manager, ev *eval.Evaluator, diags *diagnostics.Sink, out *StreamBuffer, maxJobs int) *JobMgr {
	if maxJobs < 1 {
		maxJobs = 1
	}
	jm := &JobMgr{targets: targets, ev: ev, diags: diags, out: out, maxJobs: maxJobs}
	jm.cond = sync.NewCond(&jm.mu)
	heap.Init(&jm.ready)
	return jm
}

// AddReady mirrors JobMgr::addReady: it checks t's up-to-date state,
// enqueues it if READY, and recurses into its dependencies if WAITING
// (so a stale dependency gets queued ahead of the target that needs it).
//
// The teacher's addReady stops there: once a WAITING target's
// dependencies are enqueued it never gets asked again, because nothing
// in the teacher's run() loop re-checks a target when the job it was
// waiting on finishes (run() only ever drains the ready queue, it never
// reacts to job completion). runJob calls AddReady again on every
// Dependent once a target finishes, so here a WAITING target whose
// dependencies have all now finished or errored gets reset to
// Initialized and re-walked through CheckState — otherwise it would
// stay WAITING forever once its dependency list was first enqueued.
func (jm *JobMgr) AddReady(t *target.Target) error {
	if t.State() == target.Initialized || t.State() == target.Uninit {
		if err := t.CheckState(); err != nil {
			return err
		}
	}

	switch t.State() {
	case target.Ready:
		jm.mu.Lock()
		heap.Push(&jm.ready, t)
		jm.mu.Unlock()
	case target.Waiting:
		allDone := true
		for _, dep := range t.Depends {
			if err := jm.AddReady(dep); err != nil {
				return err
			}
			if dep.State() != target.Finished && dep.State() != target.Errored {
				allDone = false
			}
		}
		if allDone {
			t.SetState(target.Initialized)
			return jm.AddReady(t)
		}
	case target.Finished, target.Building, target.Errored:
		// nothing to do
	default:
		return fmt.Errorf("invalid state for target %s: %s", t, t.State())
	}
	return nil
}

// AddAllReady enqueues every named target the Manager knows about.
func (jm *JobMgr) AddAllReady() error {
	for _, t := range jm.targets.Targets() {
		if t.Name == "" {
			continue
		}
		if err := jm.AddReady(t); err != nil {
			return err
		}
	}
	return nil
}

// Run drains the ready queue, running up to maxJobs targets' actions
// concurrently, and blocks until every queued target (and anything its
// completion newly unblocks) has finished or failed. It returns the
// first action error encountered, matching the build's overall
// exit-code decision (internal/diagnostics.Sink.HadError reports the
// rest).
//
// The loop only stops once the ready queue is empty AND no job is
// still running: a running job's completion can call AddReady on its
// dependents and refill the queue, so an empty queue alone never means
// there's nothing left to do.
func (jm *JobMgr) Run() error {
	var wg sync.WaitGroup

	jm.mu.Lock()
	for {
		for jm.ready.Len() == 0 && jm.running > 0 {
			jm.cond.Wait()
		}
		if jm.ready.Len() == 0 {
			break
		}
		for jm.running >= jm.maxJobs {
			jm.cond.Wait()
		}
		t := heap.Pop(&jm.ready).(*target.Target)
		jm.running++
		jm.mu.Unlock()

		wg.Add(1)
		go jm.runJob(t, &wg)

		jm.mu.Lock()
	}
	jm.mu.Unlock()

	wg.Wait()

	if len(jm.errs) > 0 {
		return jm.errs[0]
	}
	return nil
}

func (jm *JobMgr) runJob(t *target.Target, wg *sync.WaitGroup) {
	defer wg.Done()
	jm.diags.Statusf(nil, source.Pos{}, "starting job for: %s", t)
	t.SetState(target.Building)

	// Fork so this job's scope pushes don't race with any other job
	// running concurrently against the shared Evaluator.
	err := jm.ev.Fork().RunActions(t.Definition)

	jm.mu.Lock()
	defer jm.mu.Unlock()
	jm.running--
	if err != nil {
		t.SetState(target.Errored)
		jm.errs = append(jm.errs, fmt.Errorf("target %s: %w", t, err))
	} else {
		t.SetState(target.Finished)
		for _, dependent := range t.Dependents {
			jm.mu.Unlock()
			_ = jm.AddReady(dependent)
			jm.mu.Lock()
		}
	}
	jm.cond.Broadcast()
}

// ReadyCount reports how many targets are currently queued, mirroring
// JobMgr::readyCount.
func (jm *JobMgr) ReadyCount() int {
	jm.mu.Lock()
	defer jm.mu.Unlock()
	return jm.ready.Len()
}
