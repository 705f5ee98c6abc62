package arena

import (
	"sync/atomic"
	"testing"
)

func TestBotExecutorRunsAllJobs(t *testing.T) {
	e := NewBotExecutor(4)
	defer e.Close()

	var counter int64
	const n = 200
	jobs := make([]*Job, n)
	for i := 0; i < n; i++ {
		jobs[i] = &Job{
			Fn: func(*Bot) JobResult {
				atomic.AddInt64(&counter, 1)
				return JobResult{}
			},
		}
		e.AddJob(jobs[i])
	}
	e.WaitForCompletion()

	if counter != n {
		t.Fatalf("counter = %d, want %d", counter, n)
	}

	processed := e.DrainProcessed()
	if len(processed) != n {
		t.Fatalf("DrainProcessed returned %d jobs, want %d", len(processed), n)
	}
}

func TestBotExecutorResultsVisibleAfterBarrier(t *testing.T) {
	e := NewBotExecutor(2)
	defer e.Close()

	job := &Job{
		Fn: func(*Bot) JobResult { return JobResult{Steps: 7} },
	}
	e.AddJob(job)
	e.WaitForCompletion()

	if job.Result.Steps != 7 {
		t.Fatalf("job.Result.Steps = %d, want 7", job.Result.Steps)
	}
}

func TestBotExecutorDefaultsWorkerCount(t *testing.T) {
	e := NewBotExecutor(0)
	defer e.Close()

	job := &Job{Fn: func(*Bot) JobResult { return JobResult{} }}
	e.AddJob(job)
	e.WaitForCompletion()
}
