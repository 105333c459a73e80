package view

import (
	"tableflip.dev/nova/pkg/bucket"
	"tableflip.dev/nova/pkg/note"
)

// BucketSummary is the overview card for one bucket.
type BucketSummary struct {
	Bucket    bucket.Bucket
	Count     int
	Completed int
	// Progress is the completed percentage of active notes, 0 when empty.
	Progress float64
}

// Summaries counts active notes per bucket in bucket order.
func Summaries(notes []*note.Note, buckets bucket.Set) []BucketSummary {
	out := make([]BucketSummary, 0, len(buckets))
	for _, b := range buckets {
		s := BucketSummary{Bucket: b}
		for _, n := range notes {
			if n.BucketID != b.ID || n.Partition() != note.Active {
				continue
			}
			s.Count++
			if n.IsCompleted {
				s.Completed++
			}
		}
		if s.Count > 0 {
			s.Progress = float64(s.Completed) / float64(s.Count) * 100
		}
		out = append(out, s)
	}
	return out
}

// Counts is the number of notes in each partition.
type Counts struct {
	Active   int
	Archived int
	Trash    int
}

// PartitionCounts tallies the collection.
func PartitionCounts(notes []*note.Note) Counts {
	var c Counts
	for _, n := range notes {
		switch n.Partition() {
		case note.Active:
			c.Active++
		case note.Archived:
			c.Archived++
		case note.Trash:
			c.Trash++
		}
	}
	return c
}
