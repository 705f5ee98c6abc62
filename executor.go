package arena

import (
	"runtime"
	"sync"
)

// JobKind tags a unit of per-bot work dispatched to a BotExecutor.
type JobKind int

const (
	// JobMove asks the bot's brain for a decision and applies Snake.Move.
	JobMove JobKind = iota
	// JobCollisionCheck tests a bot's head against the segment map.
	JobCollisionCheck
)

// Job is one unit of per-bot work. Fn does the actual work and stores its
// result on the Job itself; the controller reads Result only after
// WaitForCompletion returns, never while a phase is in flight (spec.md §5).
type Job struct {
	Kind JobKind
	Bot  *Bot

	Fn func(*Bot) JobResult

	Result JobResult
}

// JobResult carries a job's output fields, tagged loosely enough to serve
// both job kinds: Steps and Invalid for a move job, Killer for a collision
// job.
type JobResult struct {
	Steps   int
	Killer  *Bot
	Invalid error
}

// BotExecutor is a fixed-size worker pool used to parallelise the two
// per-tick phases across bots. Grounded on the teacher's Analytics writer
// (analytics.go): a buffered channel feeding worker goroutines, a
// WaitGroup for drain-on-shutdown, generalised here to N persistent workers
// instead of one, and to a request/response pair per job instead of
// fire-and-forget events.
type BotExecutor struct {
	jobs chan *Job

	wg      sync.WaitGroup
	pending sync.WaitGroup

	doneMu sync.Mutex
	done   []*Job
}

// NewBotExecutor starts workers goroutines. If workers <= 0, it defaults to
// runtime.GOMAXPROCS(0).
func NewBotExecutor(workers int) *BotExecutor {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	e := &BotExecutor{
		jobs: make(chan *Job, workers*4),
	}
	e.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go e.worker()
	}
	return e
}

func (e *BotExecutor) worker() {
	defer e.wg.Done()
	for job := range e.jobs {
		job.Result = job.Fn(job.Bot)
		e.doneMu.Lock()
		e.done = append(e.done, job)
		e.doneMu.Unlock()
		e.pending.Done()
	}
}

// AddJob submits job to the pool. Safe to call only from the controller.
// The channel send may block until a worker frees a slot; that is not a
// suspension point the spec forbids, since it only delays submission, never
// observes another bot's state.
func (e *BotExecutor) AddJob(job *Job) {
	e.pending.Add(1)
	e.jobs <- job
}

// WaitForCompletion blocks until every job submitted since the last call has
// been dequeued and completed. No job started before AddJob, and none
// remains in-flight once this returns (spec.md §4.5).
func (e *BotExecutor) WaitForCompletion() {
	e.pending.Wait()
}

// DrainProcessed returns every completed job since the last drain, in
// unspecified order, and resets the completed set.
func (e *BotExecutor) DrainProcessed() []*Job {
	e.doneMu.Lock()
	defer e.doneMu.Unlock()
	out := e.done
	e.done = nil
	return out
}

// Close shuts down the worker goroutines. The executor must not be used
// afterward.
func (e *BotExecutor) Close() {
	close(e.jobs)
	e.wg.Wait()
}
