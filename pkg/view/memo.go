package view

import (
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"

	"tableflip.dev/nova/pkg/note"
)

// Views memoizes pipeline results per collection revision. A result is only
// reused while the revision it was computed from is current, so stale entries
// are never served; expiry just bounds memory.
type Views struct {
	cache *cache.Cache
}

// NewViews builds a memo whose entries expire after ttl.
func NewViews(ttl time.Duration) *Views {
	return &Views{cache: cache.New(ttl, 2*ttl)}
}

// Apply returns Apply(notes, q), reusing a previous result computed at rev.
func (v *Views) Apply(rev uint64, notes []*note.Note, q Query) []*note.Note {
	key := fmt.Sprintf("apply|%d|%s", rev, q.Key())
	if x, found := v.cache.Get(key); found {
		return x.([]*note.Note)
	}
	out := Apply(notes, q)
	v.cache.Set(key, out, cache.DefaultExpiration)
	return out
}

// Timeline returns the day groups of Apply(notes, q), memoized like Apply.
func (v *Views) Timeline(rev uint64, notes []*note.Note, q Query) []DayGroup {
	key := fmt.Sprintf("timeline|%d|%s", rev, q.Key())
	if x, found := v.cache.Get(key); found {
		return x.([]DayGroup)
	}
	out := GroupByDay(v.Apply(rev, notes, q))
	v.cache.Set(key, out, cache.DefaultExpiration)
	return out
}

// Len is the number of cached results.
func (v *Views) Len() int {
	return v.cache.ItemCount()
}

// Flush drops every cached result.
func (v *Views) Flush() {
	v.cache.Flush()
}
