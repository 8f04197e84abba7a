// Package util provides benchmarking and statistics tools for the gFlux
// performance tooling. This file implements a specialized latency histogram
// for efficient tracking and analysis of dispatch latency distributions. The
// histogram uses exponential bucket sizing to cover a wide range of values
// (nanoseconds to seconds) with minimal memory overhead.
//
// Key features include:
//   - Efficient memory usage through bucketing
//   - Thread-safe sample addition and querying
//   - Statistical estimators (median, percentiles)
//
// This utility is used by the perf command to report on dispatch latency
// characteristics without retaining every sample.
package util

import (
	"math"
	"sync"
)

// ----------------------------------------------------------------------------
// Aggregate statistics
// ----------------------------------------------------------------------------

type Stats struct {
	StdDeviation float64 `json:"std_deviation"`
	Min          float64 `json:"min"`
	Max          float64 `json:"max"`
	Mean         float64 `json:"mean"`
}

// NewStats computes the standard deviation, minimum, maximum and mean
// from an array of float64 values.
func NewStats(values []float64) Stats {
	if len(values) == 0 {
		return Stats{}
	}

	// initialize min and max with the first value
	min := values[0]
	max := values[0]

	// calculate sum for mean
	var sum float64
	for _, v := range values {
		sum += v

		// update min and max while iterating
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}

	// calculate mean
	mean := sum / float64(len(values))

	// calculate sum of squared differences from mean
	var sumSquaredDiffs float64
	for _, v := range values {
		diff := v - mean
		sumSquaredDiffs += diff * diff
	}

	// calculate standard deviation (population formula)
	stdDev := math.Sqrt(sumSquaredDiffs / float64(len(values)))

	return Stats{
		StdDeviation: stdDev,
		Min:          min,
		Max:          max,
		Mean:         mean,
	}
}

// ----------------------------------------------------------------------------
// LatencyHistogram
// ----------------------------------------------------------------------------

// LatencyHistogram tracks the distribution of latency samples in
// nanoseconds. It organizes samples into buckets for efficient memory usage
// while still providing accurate latency estimations.
// Supports tracking values from below a microsecond to multiple seconds.
type LatencyHistogram struct {
	mutex      sync.RWMutex
	boundaries []int64 // Bucket boundaries covering ns to multi-second range
	buckets    []int64 // Count of samples in each bucket
	count      int64   // Total number of samples
	sum        int64   // Sum of all sampled latencies
}

// NewLatencyHistogram creates a new latency histogram with default bucket
// boundaries, calibrated to handle latencies from nanoseconds to seconds.
func NewLatencyHistogram() *LatencyHistogram {
	// Using exponential bucket sizes to cover a wide range efficiently
	return &LatencyHistogram{
		boundaries: []int64{
			100, 250, 500, 1000, // sub-microsecond: 100ns to 1us
			2500, 5000, 10000, 25000, // 2.5us to 25us
			50000, 100000, 250000, 500000, // 50us to 500us
			1000000, 10000000, 100000000, // 1ms, 10ms, 100ms
		},
		buckets: make([]int64, 16), // 16 buckets (15 boundaries + 1 for larger values)
	}
}

// AddSample adds a latency sample (in nanoseconds) to the histogram
//
// Thread-safe: This method is safe for concurrent use
func (h *LatencyHistogram) AddSample(latencyNs int64) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	// Find the appropriate bucket for this sample
	bucketIndex := 0
	for i, boundary := range h.boundaries {
		if latencyNs <= boundary {
			bucketIndex = i
			break
		}
		bucketIndex = len(h.boundaries) // Last bucket for all larger values
	}

	// Update statistics
	h.buckets[bucketIndex]++
	h.count++
	h.sum += latencyNs
}

// GetCount returns the total number of samples
//
// Thread-safe: This method is safe for concurrent use
func (h *LatencyHistogram) GetCount() int64 {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return h.count
}

// AverageLatency returns the average latency (in nanoseconds) across all
// samples
//
// Thread-safe: This method is safe for concurrent use
func (h *LatencyHistogram) AverageLatency() int64 {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	if h.count == 0 {
		return 0
	}
	return h.sum / h.count
}

// MedianEstimate estimates the median latency based on the histogram
//
// Thread-safe: This method is safe for concurrent use
func (h *LatencyHistogram) MedianEstimate() int64 {
	return h.estimatePercentile(50)
}

// GetPercentileEstimate returns an estimate for the given percentile (0-100)
//
// Thread-safe: This method is safe for concurrent use
func (h *LatencyHistogram) GetPercentileEstimate(percentile int) int64 {
	return h.estimatePercentile(percentile)
}

func (h *LatencyHistogram) estimatePercentile(percentile int) int64 {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	if h.count == 0 || percentile < 0 || percentile > 100 {
		return 0
	}

	// Calculate target count for percentile
	targetCount := int64(math.Ceil(float64(h.count) * float64(percentile) / 100.0))
	cumulativeCount := int64(0)

	for i, count := range h.buckets {
		cumulativeCount += count
		if cumulativeCount >= targetCount {
			// Found the percentile bucket
			if i == 0 {
				// For the first bucket, estimate as half of the boundary
				return h.boundaries[0] / 2
			} else if i < len(h.boundaries) {
				// For middle buckets, use the average of boundaries
				return (h.boundaries[i-1] + h.boundaries[i]) / 2
			} else {
				// For the last bucket, estimate as 2x the last boundary
				return h.boundaries[len(h.boundaries)-1] * 2
			}
		}
	}

	// Shouldn't happen but as a fallback
	return h.sum / h.count
}

// Reset clears all histogram data
//
// Thread-safe: This method is safe for concurrent use
func (h *LatencyHistogram) Reset() {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	h.count = 0
	h.sum = 0
	for i := range h.buckets {
		h.buckets[i] = 0
	}
}

// LatencyDistribution returns the distribution of samples across buckets.
// Returns two slices: bucket boundaries and the percentage in each bucket
//
// Thread-safe: This method is safe for concurrent use
func (h *LatencyHistogram) LatencyDistribution() ([]int64, []float64) {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	if h.count == 0 {
		return h.boundaries, make([]float64, len(h.buckets))
	}

	// Calculate percentages
	percentages := make([]float64, len(h.buckets))
	for i, count := range h.buckets {
		percentages[i] = float64(count) * 100.0 / float64(h.count)
	}

	return h.boundaries, percentages
}
