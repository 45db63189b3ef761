package types

// Assignment is a complete worker → user class → instance count mapping, the
// unit yielded by every dispatch iteration. Every worker known to the
// dispatcher has an entry, possibly all zeros.
type Assignment map[string]map[string]int

// Clone returns a deep copy of the assignment. Dispatchers yield clones so a
// caller can retain snapshots across iterations.
func (a Assignment) Clone() Assignment {
	out := make(Assignment, len(a))
	for worker, classes := range a {
		counts := make(map[string]int, len(classes))
		for name, n := range classes {
			counts[name] = n
		}
		out[worker] = counts
	}

	return out
}

// Aggregate sums the assignment per user class across all workers.
func (a Assignment) Aggregate() map[string]int {
	out := make(map[string]int)
	for _, classes := range a {
		for name, n := range classes {
			out[name] += n
		}
	}

	return out
}

// WorkerTotal returns the total user count on a single worker.
func (a Assignment) WorkerTotal(workerID string) int {
	total := 0
	for _, n := range a[workerID] {
		total += n
	}

	return total
}

// Total returns the total user count across all workers.
func (a Assignment) Total() int {
	total := 0
	for _, classes := range a {
		for _, n := range classes {
			total += n
		}
	}

	return total
}
