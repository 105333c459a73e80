package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"tableflip.dev/nova/pkg/bucket"
	"tableflip.dev/nova/pkg/errs"
	"tableflip.dev/nova/pkg/note"
	"tableflip.dev/nova/pkg/profile"
	"tableflip.dev/nova/pkg/timer"
)

// Document keys. One JSON document is stored per key.
const (
	KeyNotes    = "notes"
	KeyBuckets  = "buckets"
	KeyProfile  = "profile"
	KeySettings = "pomoSettings"
	KeyHistory  = "pomoHistory"
)

// Keys lists every document key in write order.
func Keys() []string {
	return []string{KeyNotes, KeyBuckets, KeyProfile, KeySettings, KeyHistory}
}

// Snapshot is the full persisted aggregate.
type Snapshot struct {
	Notes    []*note.Note
	Buckets  bucket.Set
	Profile  profile.Profile
	Settings timer.Settings
	History  []timer.HistoryItem
}

// Defaults is the first-run state: seed notes, default buckets and profile.
func Defaults(now time.Time, settings timer.Settings) Snapshot {
	return Snapshot{
		Notes:    note.Seed(now),
		Buckets:  bucket.Defaults(),
		Profile:  profile.Default(),
		Settings: settings.Normalize(),
		History:  []timer.HistoryItem{},
	}
}

// Load reads every document from b. A missing document takes its value from
// defaults. A corrupt one does too, and the failure is reported as a storage
// error alongside the usable snapshot.
func Load(b Backend, defaults Snapshot) (Snapshot, error) {
	out := defaults
	var failures []error

	read := func(key string, into func([]byte) error) {
		data, err := b.Read(key)
		if errors.Is(err, ErrNotFound) {
			return
		}
		if err == nil {
			err = into(data)
		}
		if err != nil {
			failures = append(failures, fmt.Errorf("%s: %w", key, err))
		}
	}

	read(KeyNotes, func(data []byte) error {
		notes, err := DecodeNotes(data)
		if err == nil {
			out.Notes = notes
		}
		return err
	})
	read(KeyBuckets, func(data []byte) error {
		set, err := bucket.UnmarshalList(data)
		if err == nil && len(set) > 0 {
			out.Buckets = set
		}
		return err
	})
	read(KeyProfile, func(data []byte) error {
		p := profile.Default()
		if err := json.Unmarshal(data, &p); err != nil {
			return err
		}
		if p.Socials == nil {
			p.Socials = []profile.SocialLink{}
		}
		out.Profile = p
		return nil
	})
	read(KeySettings, func(data []byte) error {
		s := defaults.Settings
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		out.Settings = s.Normalize()
		return nil
	})
	read(KeyHistory, func(data []byte) error {
		var h []timer.HistoryItem
		if err := json.Unmarshal(data, &h); err != nil {
			return err
		}
		if h == nil {
			h = []timer.HistoryItem{}
		}
		out.History = h
		return nil
	})

	if len(failures) > 0 {
		return out, errs.Storage("store.load", errors.Join(failures...))
	}
	return out, nil
}

// Save writes every document. It stops at the first failure.
func Save(b Backend, s Snapshot) error {
	docs := map[string]interface{}{
		KeyNotes:    nonNilNotes(s.Notes),
		KeyBuckets:  s.Buckets,
		KeyProfile:  s.Profile,
		KeySettings: s.Settings,
		KeyHistory:  nonNilHistory(s.History),
	}
	for _, key := range Keys() {
		data, err := json.Marshal(docs[key])
		if err != nil {
			return errs.Storage("store.save", fmt.Errorf("encode %s: %w", key, err))
		}
		if err := b.Write(key, data); err != nil {
			return errs.Storage("store.save", err)
		}
	}
	return nil
}

// DecodeNotes parses the notes document. Notes without an order take their
// array index; entries that are null or have no id are dropped.
func DecodeNotes(data []byte) ([]*note.Note, error) {
	var raw []*note.Note
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	out := make([]*note.Note, 0, len(raw))
	for i, n := range raw {
		if n == nil || n.ID == "" {
			continue
		}
		if !n.HasOrder() {
			n.Order = note.IntPtr(i)
		}
		out = append(out, n)
	}
	return out, nil
}

func nonNilNotes(n []*note.Note) []*note.Note {
	if n == nil {
		return []*note.Note{}
	}
	return n
}

func nonNilHistory(h []timer.HistoryItem) []timer.HistoryItem {
	if h == nil {
		return []timer.HistoryItem{}
	}
	return h
}
