// Package apportion implements exact integer apportionment of a total across
// weighted buckets using the largest remainder (Hamilton) method.
//
// The method guarantees that the assigned counts always sum to the requested
// total, that each count is within one of its ideal real-valued share, and
// that remainder ties are broken by declaration order, making the result
// fully deterministic for a given bucket ordering.
package apportion

import (
	"math"
	"sort"
)

// Bucket is one apportionment slot: a user class, or a worker within a class.
type Bucket struct {
	Name string

	// Weight is the relative share for proportional distribution. Ignored
	// when Fixed is set.
	Weight float64

	// Fixed marks the bucket as requiring exactly FixedCount units before
	// any proportional distribution happens.
	Fixed bool

	// FixedCount is the hard requirement for a fixed bucket.
	FixedCount int
}

// Proportional distributes total across buckets proportionally to their
// weights. Largest remainder: each bucket gets the floor of its ideal share,
// then leftover units go one at a time to the buckets with the largest
// fractional remainder, ties broken by declaration order.
//
// A zero total weight falls back to equal shares. When there are more buckets
// than units, buckets are filled 0/1 in declaration order.
func Proportional(total int, buckets []Bucket) map[string]int {
	counts := make(map[string]int, len(buckets))
	for _, b := range buckets {
		counts[b.Name] = 0
	}
	if total <= 0 || len(buckets) == 0 {
		return counts
	}

	weights := make([]float64, len(buckets))
	totalWeight := 0.0
	for i, b := range buckets {
		if b.Weight > 0 {
			weights[i] = b.Weight
		}
		totalWeight += weights[i]
	}
	if totalWeight == 0 {
		for i := range weights {
			weights[i] = 1
		}
		totalWeight = float64(len(weights))
	}

	type share struct {
		idx       int
		remainder float64
	}

	shares := make([]share, len(buckets))
	assigned := 0
	for i, b := range buckets {
		ideal := weights[i] / totalWeight * float64(total)
		floor := int(math.Floor(ideal))
		counts[b.Name] = floor
		assigned += floor
		shares[i] = share{idx: i, remainder: ideal - float64(floor)}
	}

	// Stable sort keeps declaration order for equal remainders.
	sort.SliceStable(shares, func(a, b int) bool {
		return shares[a].remainder > shares[b].remainder
	})
	for j := 0; j < total-assigned; j++ {
		counts[buckets[shares[j].idx].Name]++
	}

	return counts
}

// WithFixed distributes total across buckets honoring hard fixed counts: the
// fixed buckets receive exactly their FixedCount and the remainder is split
// proportionally over the non-fixed buckets.
//
// Degenerate cases: if the fixed counts alone exceed the total, the total is
// split across the fixed buckets proportionally to their fixed counts and the
// weighted buckets get zero. If a surplus remains but no weighted bucket
// exists, the surplus is likewise split across the fixed buckets on top of
// their fixed counts.
func WithFixed(total int, buckets []Bucket) map[string]int {
	var fixed, weighted []Bucket
	fixedSum := 0
	for _, b := range buckets {
		if b.Fixed {
			fixed = append(fixed, b)
			fixedSum += b.FixedCount
		} else {
			weighted = append(weighted, b)
		}
	}
	if len(fixed) == 0 {
		return Proportional(total, buckets)
	}

	counts := make(map[string]int, len(buckets))
	for _, b := range buckets {
		counts[b.Name] = 0
	}

	if fixedSum >= total {
		overflow := Proportional(total, asWeights(fixed))
		for name, n := range overflow {
			counts[name] = n
		}

		return counts
	}

	for _, b := range fixed {
		counts[b.Name] = b.FixedCount
	}

	remaining := total - fixedSum
	if len(weighted) > 0 {
		for name, n := range Proportional(remaining, weighted) {
			counts[name] = n
		}

		return counts
	}

	// All buckets are fixed and the target exceeds their sum: spread the
	// surplus across the fixed buckets proportionally to their fixed counts.
	for name, n := range Proportional(remaining, asWeights(fixed)) {
		counts[name] += n
	}

	return counts
}

// asWeights reinterprets fixed buckets as weighted ones, using the fixed
// count as the weight.
func asWeights(fixed []Bucket) []Bucket {
	out := make([]Bucket, len(fixed))
	for i, b := range fixed {
		out[i] = Bucket{Name: b.Name, Weight: float64(b.FixedCount)}
	}

	return out
}
