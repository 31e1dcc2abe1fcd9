package pkg

const (
	INF_WEIGHT float64 = 1e15

	// number of lock stripes used by the striped visited-set and the
	// shared cost table. 64 stripes keep 2-6 workers mostly collision
	// free while the mutex array still fits in a handful of cache lines.
	DEFAULT_STRIPE_COUNT = 64

	// how many times a worker re-polls a fine-grained frontier before
	// yielding its OS thread.
	FRONTIER_SPIN_BUDGET = 64

	EARTH_RADIUS_KM = 6371.0
)

const (
	DEBUG = false
)
