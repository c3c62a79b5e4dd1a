package tasks

// TaskSchedulerInterface defines the interface for background task
// scheduling. The main application uses it to manage the refresh worker
// pool; the API handlers use it to enqueue on-demand refreshes.
type TaskSchedulerInterface interface {
	Start()
	Stop()
	EnqueueTask(task TaskInterface) error
}
