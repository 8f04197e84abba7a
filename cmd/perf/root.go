package perf

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
	"testing"
	"time"

	gometrics "github.com/rcrowley/go-metrics"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ValentinKolb/gFlux/cmd/util"
	"github.com/ValentinKolb/gFlux/lib/middleware"
	"github.com/ValentinKolb/gFlux/lib/store"
	libutil "github.com/ValentinKolb/gFlux/lib/util"
)

// perfAction is the action type dispatched by every benchmark.
const perfAction = "perf/increment"

var (
	// PerfCmd benchmarks the dispatch pipeline in different configurations:
	// a bare store, a store with listeners, a store behind a middleware
	// chain and a store over a combined reducer.
	PerfCmd = &cobra.Command{
		Use:     "perf",
		Short:   "Performance testing tool for the gFlux store",
		Long:    "",
		RunE:    run,
		PreRunE: processPerfConfig,
	}

	perfListeners   = 8
	perfMiddlewares = 4
	perfKeys        = 8
	perfSamples     = 100000
	perfSkip        = make([]string, 0)
	perfCSV         = ""
)

func init() {
	// Initialize viper
	cobra.OnInitialize(util.InitConfig)

	// add flags
	key := "listeners"
	PerfCmd.Flags().Int(key, 8, util.WrapString("Number of listeners to subscribe for the listener benchmark"))
	key = "middlewares"
	PerfCmd.Flags().Int(key, 4, util.WrapString("Number of pass-through middlewares for the middleware benchmark"))
	key = "keys"
	PerfCmd.Flags().Int(key, 8, util.WrapString("Number of sub-reducers for the combined-reducer benchmark"))
	key = "samples"
	PerfCmd.Flags().Int(key, 100000, util.WrapString("Number of individually timed dispatches for the latency report"))
	key = "skip"
	PerfCmd.Flags().String(key, "", util.WrapString("Benchmarks to skip (comma separated - e.g. dispatch,dispatch-combined)"))
	key = "csv"
	PerfCmd.Flags().String(key, "", util.WrapString("Optional path to save benchmark results as CSV"))
}

func processPerfConfig(cmd *cobra.Command, _ []string) error {
	if err := util.BindCommandFlags(cmd); err != nil {
		return err
	}

	// Read the configuration from the command line flags and environment variables
	perfListeners = viper.GetInt("listeners")
	perfMiddlewares = viper.GetInt("middlewares")
	perfKeys = viper.GetInt("keys")
	perfSamples = viper.GetInt("samples")
	perfSkip = strings.Split(viper.GetString("skip"), ",")
	perfCSV = viper.GetString("csv")

	return nil
}

func shouldSkip(name string) bool {
	for _, skip := range perfSkip {
		if strings.TrimSpace(skip) == name {
			return true
		}
	}
	return false
}

// newCounterStore creates the bare store all benchmarks build on.
func newCounterStore() (store.IStore[int], error) {
	reducer := func(state int, action store.IAction) int {
		if action.ActionType() == perfAction {
			return state + 1
		}
		return state
	}
	return store.CreateStore(reducer, 0, nil)
}

func run(_ *cobra.Command, _ []string) error {
	fmt.Println("Performance testing tool for the gFlux store")

	// Print configuration
	fmt.Println()
	fmt.Println("Configuration:")
	fmt.Printf("Listeners: %d\n", perfListeners)
	fmt.Printf("Middlewares: %d\n", perfMiddlewares)
	fmt.Printf("Combined keys: %d\n", perfKeys)
	fmt.Printf("Latency samples: %d\n", perfSamples)
	fmt.Println()

	fmt.Println("starting benchmarks...")

	order := []string{"dispatch", "dispatch-listeners", "dispatch-middleware", "dispatch-combined"}
	benchmarks := map[string]func(b *testing.B){
		"dispatch":            benchDispatch,
		"dispatch-listeners":  benchDispatchListeners,
		"dispatch-middleware": benchDispatchMiddleware,
		"dispatch-combined":   benchDispatchCombined,
	}

	// Create results map
	results := make(map[string]testing.BenchmarkResult)

	for _, name := range order {
		if shouldSkip(name) {
			continue
		}
		result := testing.Benchmark(benchmarks[name])
		results[name] = result
		printResult(name, result)
	}

	if !shouldSkip("latency") {
		if err := reportLatency(); err != nil {
			return err
		}
	}

	if perfCSV != "" {
		if err := writeCSV(perfCSV, order, results); err != nil {
			return err
		}
		fmt.Printf("\nresults written to %s\n", perfCSV)
	}

	return nil
}

// --------------------------------------------------------------------------
// Benchmarks
// --------------------------------------------------------------------------

func benchDispatch(b *testing.B) {
	st, err := newCounterStore()
	if err != nil {
		b.Fatal(err)
	}

	action := store.Action{Type: perfAction}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := st.Dispatch(action); err != nil {
			b.Fatal(err)
		}
	}
}

func benchDispatchListeners(b *testing.B) {
	st, err := newCounterStore()
	if err != nil {
		b.Fatal(err)
	}

	// no-op listeners, the cost measured is the notification loop
	sink := 0
	for i := 0; i < perfListeners; i++ {
		if _, err := st.Subscribe(func() { sink++ }); err != nil {
			b.Fatal(err)
		}
	}

	action := store.Action{Type: perfAction}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := st.Dispatch(action); err != nil {
			b.Fatal(err)
		}
	}
}

func benchDispatchMiddleware(b *testing.B) {
	passthrough := func(api middleware.API[int]) func(next store.Dispatcher) store.Dispatcher {
		return func(next store.Dispatcher) store.Dispatcher {
			return next
		}
	}

	mws := make([]middleware.Middleware[int], perfMiddlewares)
	for i := range mws {
		mws[i] = passthrough
	}

	reducer := func(state int, action store.IAction) int {
		if action.ActionType() == perfAction {
			return state + 1
		}
		return state
	}

	st, err := store.CreateStore(reducer, 0, middleware.Apply(mws...))
	if err != nil {
		b.Fatal(err)
	}

	action := store.Action{Type: perfAction}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := st.Dispatch(action); err != nil {
			b.Fatal(err)
		}
	}
}

func benchDispatchCombined(b *testing.B) {
	reducers := make(map[string]store.Reducer[any], perfKeys)
	for i := 0; i < perfKeys; i++ {
		reducers[fmt.Sprintf("counter-%02d", i)] = func(state any, action store.IAction) any {
			count, _ := state.(int)
			if action.ActionType() == perfAction {
				return count + 1
			}
			return count
		}
	}

	rootReducer, err := store.CombineReducers(reducers)
	if err != nil {
		b.Fatal(err)
	}

	st, err := store.CreateStore(rootReducer, nil, nil)
	if err != nil {
		b.Fatal(err)
	}

	action := store.Action{Type: perfAction}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := st.Dispatch(action); err != nil {
			b.Fatal(err)
		}
	}
}

// --------------------------------------------------------------------------
// Latency Report
// --------------------------------------------------------------------------

// reportLatency times every single dispatch on a bare store and reports
// aggregate statistics alongside sampled and bucketed percentiles.
func reportLatency() error {
	st, err := newCounterStore()
	if err != nil {
		return err
	}

	sampled := gometrics.NewHistogram(gometrics.NewExpDecaySample(1028, 0.015))
	bucketed := libutil.NewLatencyHistogram()
	samples := make([]float64, 0, perfSamples)

	action := store.Action{Type: perfAction}

	for i := 0; i < perfSamples; i++ {
		start := time.Now()
		if _, err := st.Dispatch(action); err != nil {
			return err
		}
		ns := time.Since(start).Nanoseconds()

		sampled.Update(ns)
		bucketed.AddSample(ns)
		samples = append(samples, float64(ns))
	}

	stats := libutil.NewStats(samples)

	fmt.Println()
	fmt.Println("dispatch latency:")
	fmt.Printf("mean: %.0fns stddev: %.0fns min: %.0fns max: %.0fns\n",
		stats.Mean, stats.StdDeviation, stats.Min, stats.Max)
	fmt.Printf("p50: %.0fns p95: %.0fns p99: %.0fns (sampled)\n",
		sampled.Percentile(0.50), sampled.Percentile(0.95), sampled.Percentile(0.99))
	fmt.Printf("p50: %dns p99: %dns (bucketed estimate)\n",
		bucketed.MedianEstimate(), bucketed.GetPercentileEstimate(99))

	return nil
}

// --------------------------------------------------------------------------
// Output Helpers
// --------------------------------------------------------------------------

func printResult(name string, result testing.BenchmarkResult) {
	opsPerSec := 0.0
	if result.T > 0 {
		opsPerSec = float64(result.N) / result.T.Seconds()
	}
	fmt.Printf("%-20s %12d ops %10d ns/op %14.0f ops/s\n", name, result.N, result.NsPerOp(), opsPerSec)
}

func writeCSV(path string, order []string, results map[string]testing.BenchmarkResult) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write([]string{"benchmark", "iterations", "ns_per_op"}); err != nil {
		return err
	}

	for _, name := range order {
		result, ok := results[name]
		if !ok {
			continue
		}
		record := []string{
			name,
			strconv.Itoa(result.N),
			strconv.FormatInt(result.NsPerOp(), 10),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}
