package cache

// Metric names reported to stats.Tracker.
const (
	MetricHit        = "cache_hit"
	MetricMiss       = "cache_miss"
	MetricExpired    = "cache_expired"
	MetricWrite      = "cache_write"
	MetricBuild      = "cache_build"
	MetricFailed     = "cache_failed"
	MetricInvalidate = "cache_invalidate"
	MetricItems      = "cache_items"
)
