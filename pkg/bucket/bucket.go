// Package bucket defines the named category containers notes are filed into.
package bucket

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Bucket is a named category container. Buckets are configured at first run
// and are never deleted.
type Bucket struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Icon        string `json:"icon"`
	Color       string `json:"color"`
	Description string `json:"description"`
}

// Defaults returns the bucket set installed on first run.
func Defaults() Set {
	return Set{
		{ID: "work", Name: "Work", Icon: "Briefcase", Color: "indigo", Description: "Professional tasks & projects"},
		{ID: "personal", Name: "Personal", Icon: "User", Color: "rose", Description: "Private life and hobbies"},
		{ID: "ideas", Name: "Ideas", Icon: "Lightbulb", Color: "amber", Description: "Quick sparks of inspiration"},
		{ID: "study", Name: "Study", Icon: "GraduationCap", Color: "emerald", Description: "Learning and research"},
		{ID: "goals", Name: "Goals", Icon: "Target", Color: "violet", Description: "Long-term aspirations"},
	}
}

// FallbackID is used when no bucket is configured at all.
const FallbackID = "personal"

// Set is an ordered list of buckets.
type Set []Bucket

// Has reports whether id names a bucket in the set.
func (s Set) Has(id string) bool {
	_, ok := s.Get(id)
	return ok
}

// Get looks up a bucket by id.
func (s Set) Get(id string) (Bucket, bool) {
	for _, b := range s {
		if b.ID == id {
			return b, true
		}
	}
	return Bucket{}, false
}

// DefaultID is the id new notes land in when none is given: the first
// configured bucket.
func (s Set) DefaultID() string {
	if len(s) == 0 {
		return FallbackID
	}
	return s[0].ID
}

// Resolve accepts a bucket id or a case-insensitive name.
func (s Set) Resolve(ref string) (Bucket, error) {
	ref = strings.TrimSpace(ref)
	if b, ok := s.Get(ref); ok {
		return b, nil
	}
	for _, b := range s {
		if strings.EqualFold(b.Name, ref) || strings.EqualFold(b.ID, ref) {
			return b, nil
		}
	}
	return Bucket{}, fmt.Errorf("bucket: unknown bucket %q", ref)
}

// Clone returns a copy that shares nothing with s.
func (s Set) Clone() Set {
	return append(Set(nil), s...)
}

// MarshalList serialises the set as an indented JSON array.
func MarshalList(s Set) ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}

// UnmarshalList decodes a JSON array of buckets, skipping entries without an id.
func UnmarshalList(data []byte) (Set, error) {
	if len(data) == 0 {
		return Set{}, nil
	}
	var raw Set
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	out := make(Set, 0, len(raw))
	for _, b := range raw {
		b.ID = strings.TrimSpace(b.ID)
		if b.ID == "" {
			continue
		}
		if b.Name == "" {
			b.Name = b.ID
		}
		out = append(out, b)
	}
	return out, nil
}

// palette maps color identifiers to their 500-weight swatch.
var palette = map[string]string{
	"indigo":  "#6366f1",
	"rose":    "#f43f5e",
	"amber":   "#f59e0b",
	"emerald": "#10b981",
	"violet":  "#8b5cf6",
	"sky":     "#0ea5e9",
	"zinc":    "#71717a",
}

// Color resolves a color identifier (or a literal hex value) to a color.
// Unknown identifiers fall back to zinc.
func Color(id string) colorful.Color {
	id = strings.ToLower(strings.TrimSpace(id))
	hex, ok := palette[id]
	if !ok {
		hex = id
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		c, _ = colorful.Hex(palette["zinc"])
	}
	return c
}

// Hex returns the bucket's color as #rrggbb.
func (b Bucket) Hex() string {
	return Color(b.Color).Hex()
}
