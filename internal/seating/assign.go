// Package seating computes seat number assignment within a seat class.
package seating

// Assign returns the lowest seat number in [1, capacity] that is not already
// taken. Scanning from 1 upward means a seat vacated by a cancellation is
// reused before a fresh number is handed out, keeping the numbering stable.
// The second result is false when every number up to capacity is taken.
func Assign(taken []int, capacity int) (int, bool) {
	used := make(map[int]struct{}, len(taken))
	for _, n := range taken {
		used[n] = struct{}{}
	}
	for n := 1; n <= capacity; n++ {
		if _, ok := used[n]; !ok {
			return n, true
		}
	}
	return 0, false
}
