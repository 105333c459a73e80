package note

// Suggestion is the result of asking the assistant to classify a note body.
type Suggestion struct {
	Category           string   `json:"category"`
	Tags               []string `json:"tags"`
	PrioritySuggestion string   `json:"prioritySuggestion"`
}

// ApplySuggestion merges s into the draft. The category is replaced when the
// suggestion has one, tags are a case-sensitive union keeping first-seen
// order, and the priority is replaced only by one of the four labels.
// A nil suggestion leaves the draft unchanged.
func (d *Draft) ApplySuggestion(s *Suggestion) {
	if s == nil {
		return
	}
	if s.Category != "" {
		d.Category = s.Category
	}
	d.Tags = UnionTags(d.Tags, s.Tags)
	if p, ok := ParsePriority(s.PrioritySuggestion); ok {
		d.Priority = p
	}
}

// UnionTags returns the existing tags followed by any suggested tag not yet
// present. Duplicates already in existing are collapsed too.
func UnionTags(existing, suggested []string) []string {
	seen := make(map[string]struct{}, len(existing)+len(suggested))
	out := make([]string, 0, len(existing)+len(suggested))
	for _, list := range [][]string{existing, suggested} {
		for _, t := range list {
			if _, ok := seen[t]; ok {
				continue
			}
			seen[t] = struct{}{}
			out = append(out, t)
		}
	}
	return out
}
