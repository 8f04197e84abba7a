package middleware

import (
	"fmt"
	"time"

	"github.com/VictoriaMetrics/metrics"
	"github.com/puzpuzpuz/xsync/v3"

	"github.com/ValentinKolb/gFlux/lib/store"
)

// NewMetrics creates a middleware that instruments the dispatch pipeline on
// the given metrics set:
//
//   - gflux_actions_total{type="..."} - counter per action type
//   - gflux_dispatch_errors_total     - counter of rejected dispatches
//   - gflux_dispatch_duration_seconds - histogram over successful dispatches
//
// Passing a nil set creates a private one; the set can be exposed in
// Prometheus format via its WritePrometheus method.
//
// Thread-safety: the per-type counter lookup is memoized with a concurrent
// map, so the set may be scraped from another goroutine while the (single
// threaded) store dispatches.
func NewMetrics[S any](set *metrics.Set) Middleware[S] {
	if set == nil {
		set = metrics.NewSet()
	}

	counters := xsync.NewMapOf[string, *metrics.Counter]()
	errTotal := set.GetOrCreateCounter("gflux_dispatch_errors_total")
	duration := set.GetOrCreateHistogram("gflux_dispatch_duration_seconds")

	return func(api API[S]) func(next store.Dispatcher) store.Dispatcher {
		return func(next store.Dispatcher) store.Dispatcher {
			return func(action store.IAction) (store.IAction, error) {
				start := time.Now()

				out, err := next(action)
				if err != nil {
					errTotal.Inc()
					return out, err
				}

				counter, _ := counters.LoadOrCompute(action.ActionType(), func() *metrics.Counter {
					return set.GetOrCreateCounter(fmt.Sprintf(`gflux_actions_total{type=%q}`, action.ActionType()))
				})
				counter.Inc()
				duration.UpdateDuration(start)

				return out, nil
			}
		}
	}
}
