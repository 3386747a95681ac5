package domain

// Interval half-open time interval [Start, End) in minutes since midnight
type Interval struct {
	Start int
	End   int
}

// Overlaps reports whether two half-open intervals intersect.
// Touching intervals (a.End == b.Start) do not overlap.
func (i Interval) Overlaps(other Interval) bool {
	return i.Start < other.End && other.Start < i.End
}

// IsEmpty reports whether the interval has no length
func (i Interval) IsEmpty() bool {
	return i.End <= i.Start
}
