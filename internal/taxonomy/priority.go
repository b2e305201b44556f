package taxonomy

// RankOf returns the sort rank of a mitigation priority, 0 being the
// most urgent.
func RankOf(p Priority) int {
	rank, ok := priorityRank[p]
	if !ok {
		return len(priorityRank) // unknown priorities sort last
	}
	return rank
}

var priorityRank = map[Priority]int{
	PriorityCritical: 0,
	PriorityHigh:     1,
	PriorityMedium:   2,
	PriorityLow:      3,
}

// Buckets returns the severity buckets from most to least severe.
func Buckets() []Bucket {
	return []Bucket{BucketHigh, BucketMedium, BucketLow, BucketNone}
}

// Mitigable reports whether clauses in this bucket receive mitigation
// strategies.
func (b Bucket) Mitigable() bool {
	return b == BucketHigh || b == BucketMedium
}
