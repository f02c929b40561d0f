package pool

import (
	"context"
	"sync"
)

// Task is a unit of work executed by Run.
type Task func(ctx context.Context) error

// Run executes the given tasks with at most numWorkers in flight at once.
// It returns a slice containing any errors that occurred during processing.
func Run(ctx context.Context, tasks []Task, numWorkers int) []error {
	if numWorkers < 1 {
		numWorkers = 1
	}

	var wg sync.WaitGroup
	taskChan := make(chan Task, numWorkers)
	errChan := make(chan error, len(tasks))

	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for task := range taskChan {
				select {
				case <-ctx.Done():
					return
				default:
					if err := task(ctx); err != nil {
						errChan <- err
					}
				}
			}
		}()
	}

OUT:
	for _, task := range tasks {
		select {
		case taskChan <- task:
		case <-ctx.Done():
			// Stop feeding tasks if the context is cancelled
			break OUT
		}
	}
	close(taskChan)

	wg.Wait()
	close(errChan)

	var allErrors []error
	for err := range errChan {
		allErrors = append(allErrors, err)
	}
	return allErrors
}
