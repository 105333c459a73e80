package note

import (
	"time"

	"tableflip.dev/nova/pkg/timeutil"
)

// Seed returns the notes installed on first run, dated relative to now.
func Seed(now time.Time) []*Note {
	at := func(ago time.Duration) timeutil.Timestamp { return timeutil.At(now.Add(-ago)) }
	mk := func(id, title, content, bucketID string, p Priority, category string, tags []string, ago time.Duration, order int) *Note {
		return &Note{
			ID:        id,
			Title:     title,
			Content:   content,
			BucketID:  bucketID,
			Priority:  p,
			Category:  category,
			Tags:      tags,
			Images:    []string{},
			Links:     []string{},
			SubTasks:  []SubTask{},
			CreatedAt: at(ago),
			UpdatedAt: at(ago),
			Order:     IntPtr(order),
		}
	}
	return []*Note{
		mk("1", "Project Zen Layout",
			"Review the masonry grid layout for the new dashboard. Focus on mobile responsiveness and smooth animations.",
			"work", High, "Design", []string{"UI", "UX"}, time.Hour, 0),
		mk("2", "Grocery List",
			"Milk, Eggs, Avocado, Bread, Spinach, Coffee beans.",
			"personal", Low, "Shopping", []string{"Food"}, 24*time.Hour, 1),
		mk("3", "AI Startup Pitch",
			"Focus on the minimalist interface as a key differentiator. The calming UI helps reduce decision fatigue.",
			"ideas", Medium, "Business", []string{"AI", "Pitch"}, 48*time.Hour, 2),
	}
}
