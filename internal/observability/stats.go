package observability

import (
	"sync"
	"sync/atomic"
)

type StatsSnapshot struct {
	FetchesTotal    uint64            `json:"fetches_total"`
	OffersExtracted uint64            `json:"offers_extracted"`
	DefaultsApplied uint64            `json:"defaults_applied"`
	RowsPublished   uint64            `json:"rows_published"`
	SyncsCompleted  uint64            `json:"syncs_completed"`
	ErrorsTotal     uint64            `json:"errors_total"`
	SyncSecondsAvg  float64           `json:"sync_seconds_avg"`
	OffersBySource  map[string]uint64 `json:"offers_by_source,omitempty"`
	DefaultsByField map[string]uint64 `json:"defaults_by_field,omitempty"`
	ErrorsByType    map[string]uint64 `json:"errors_by_type,omitempty"`
}

var (
	fetchesTotal    uint64
	offersExtracted uint64
	defaultsApplied uint64
	rowsPublished   uint64
	syncsCompleted  uint64
	errorsTotal     uint64

	syncCount uint64
	syncNanos uint64

	statsMu         sync.Mutex
	offersBySource  = map[string]uint64{}
	defaultsByField = map[string]uint64{}
	errorsByType    = map[string]uint64{}
)

func IncFetch(_ string) {
	atomic.AddUint64(&fetchesTotal, 1)
}

func AddOffers(source string, n int) {
	if n <= 0 {
		return
	}
	atomic.AddUint64(&offersExtracted, uint64(n))
	statsMu.Lock()
	offersBySource[source] += uint64(n)
	statsMu.Unlock()
}

func IncDefault(source, field string) {
	atomic.AddUint64(&defaultsApplied, 1)
	statsMu.Lock()
	defaultsByField[source+"."+field]++
	statsMu.Unlock()
}

func AddRowsPublished(n int) {
	if n > 0 {
		atomic.AddUint64(&rowsPublished, uint64(n))
	}
}

func ObserveSyncDuration(seconds float64) {
	if seconds <= 0 {
		return
	}
	atomic.AddUint64(&syncsCompleted, 1)
	atomic.AddUint64(&syncCount, 1)
	atomic.AddUint64(&syncNanos, uint64(seconds*1e9))
}

func IncError(errType string) {
	if errType == "" {
		errType = ErrorUnknown
	}
	atomic.AddUint64(&errorsTotal, 1)
	statsMu.Lock()
	errorsByType[errType]++
	statsMu.Unlock()
}

func Snapshot() StatsSnapshot {
	statsMu.Lock()
	offersCopy := copyMap(offersBySource)
	defaultsCopy := copyMap(defaultsByField)
	errorsCopy := copyMap(errorsByType)
	statsMu.Unlock()

	count := atomic.LoadUint64(&syncCount)
	avg := 0.0
	if count > 0 {
		avg = float64(atomic.LoadUint64(&syncNanos)) / float64(count) / 1e9
	}

	return StatsSnapshot{
		FetchesTotal:    atomic.LoadUint64(&fetchesTotal),
		OffersExtracted: atomic.LoadUint64(&offersExtracted),
		DefaultsApplied: atomic.LoadUint64(&defaultsApplied),
		RowsPublished:   atomic.LoadUint64(&rowsPublished),
		SyncsCompleted:  atomic.LoadUint64(&syncsCompleted),
		ErrorsTotal:     atomic.LoadUint64(&errorsTotal),
		SyncSecondsAvg:  avg,
		OffersBySource:  offersCopy,
		DefaultsByField: defaultsCopy,
		ErrorsByType:    errorsCopy,
	}
}

func copyMap(src map[string]uint64) map[string]uint64 {
	if len(src) == 0 {
		return map[string]uint64{}
	}
	out := make(map[string]uint64, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}
