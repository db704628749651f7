package culler

// CullerOption is a functional option for configuring a Culler at
// creation.
type CullerOption func(*cullerImpl)

// WithWorkers sets the worker pool size. Values below 1 are ignored.
//
// Parameters:
//   - workers: the worker count, default NumCPU-1 (at least 1)
//
// Returns:
//   - CullerOption: the configuration function
func WithWorkers(workers int) CullerOption {
	return func(c *cullerImpl) {
		if workers >= 1 {
			c.workers = workers
		}
	}
}
