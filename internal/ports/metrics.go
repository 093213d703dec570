package ports

import "time"

// SyncMetrics records sync pipeline observability counters.
type SyncMetrics interface {
	// ObserveSync records one finished sync attempt with its outcome
	ObserveSync(status string, duration time.Duration)
	// AddProductsExported records how many products were submitted
	AddProductsExported(count int)
}
