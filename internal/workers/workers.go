package workers

type Workers struct {
	workers []Worker
}

func NewWorkers(workers ...Worker) *Workers {
	return &Workers{workers: workers}
}

// Run starts every registered worker in its own goroutine and returns
// immediately.
func (w *Workers) Run() {
	for _, worker := range w.workers {
		go worker.Run()
	}
}
