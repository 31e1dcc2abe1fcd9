package concurrent

import (
	"sync"
)

type JobFunc[T any, G any] func(job T) G

// WorkerPool fans a batch of independent jobs over a fixed number of
// goroutines. Used by the benchmark harness to run query batches.
type WorkerPool[T any, G any] struct {
	numWorkers int
	jobQueue   chan T
	results    chan G
	wg         sync.WaitGroup
}

func NewWorkerPool[T any, G any](numWorkers, jobQueueSize int) *WorkerPool[T, G] {
	return &WorkerPool[T, G]{
		numWorkers: numWorkers,
		jobQueue:   make(chan T, jobQueueSize),
		results:    make(chan G, jobQueueSize),
	}
}

func (wp *WorkerPool[T, G]) worker(jobFunc JobFunc[T, G]) {
	defer wp.wg.Done()
	for job := range wp.jobQueue {
		wp.results <- jobFunc(job)
	}
}

func (wp *WorkerPool[T, G]) Start(jobFunc JobFunc[T, G]) {
	for i := 0; i < wp.numWorkers; i++ {
		wp.wg.Add(1)
		go wp.worker(jobFunc)
	}
}

func (wp *WorkerPool[T, G]) Wait() {
	wp.wg.Wait()
	close(wp.results)
}

func (wp *WorkerPool[T, G]) AddJob(job T) {
	wp.jobQueue <- job
}

func (wp *WorkerPool[T, G]) CollectResults() chan G {
	return wp.results
}

func (wp *WorkerPool[T, G]) Close() {
	close(wp.jobQueue)
}

type poolTask struct {
	fn func(workerID int)
	wg *sync.WaitGroup
}

// SearchPool is the persistent worker lifecycle: goroutines created
// once and reused across search calls. Between searches the workers
// park on the task channel; RunSearch hands every worker the same loop
// body and blocks until all of them return.
type SearchPool struct {
	numWorkers int
	tasks      chan poolTask
	closeOnce  sync.Once
}

func NewSearchPool(numWorkers int) *SearchPool {
	p := &SearchPool{
		numWorkers: numWorkers,
		tasks:      make(chan poolTask),
	}
	for i := 0; i < numWorkers; i++ {
		go func(id int) {
			for task := range p.tasks {
				task.fn(id)
				task.wg.Done()
			}
		}(i)
	}
	return p
}

func (p *SearchPool) NumWorkers() int {
	return p.numWorkers
}

// RunSearch dispatches loop to every worker and waits for quiescence.
// The workers are parked afterwards, not destroyed.
func (p *SearchPool) RunSearch(loop func(workerID int)) {
	var wg sync.WaitGroup
	wg.Add(p.numWorkers)
	for i := 0; i < p.numWorkers; i++ {
		p.tasks <- poolTask{fn: loop, wg: &wg}
	}
	wg.Wait()
}

// Close stops the parked workers. The pool is unusable afterwards.
func (p *SearchPool) Close() {
	p.closeOnce.Do(func() {
		close(p.tasks)
	})
}
