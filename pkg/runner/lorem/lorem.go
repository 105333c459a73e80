// Package lorem fills the store with generated notes for demos and manual
// testing of the list and calendar views.
package lorem

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/jaswdr/faker"

	"tableflip.dev/nova/pkg/app"
	"tableflip.dev/nova/pkg/note"
	"tableflip.dev/nova/pkg/timeutil"
)

// Lorem creates Count notes spread over the last Days days.
type Lorem struct {
	App   *app.App
	Count int
	Days  int
	// Seed makes the generated notes repeatable. Zero uses the clock.
	Seed int64
}

func (n *Lorem) Do(ctx context.Context) error {
	if n.App == nil {
		return errors.New("can not generate, no app")
	}
	created, err := Generate(n.App, n.Count, n.Days, n.Seed, time.Now())
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(color.Output, "generated %d notes\n", created)
	return nil
}

// Generate saves count fake notes with creation times within days of now.
func Generate(a *app.App, count, days int, seed int64, now time.Time) (int, error) {
	if count <= 0 {
		return 0, nil
	}
	if days <= 0 {
		days = 1
	}
	if seed == 0 {
		seed = now.UnixNano()
	}
	fake := faker.NewWithSeed(rand.NewSource(seed))
	buckets := a.Buckets()
	priorities := note.Priorities()

	for i := 0; i < count; i++ {
		d := a.Notes.Create(buckets[fake.IntBetween(0, len(buckets)-1)].ID)
		d.Title = strings.TrimSuffix(fake.Lorem().Sentence(fake.IntBetween(2, 5)), ".")
		d.Content = fake.Lorem().Paragraph(fake.IntBetween(1, 4))
		d.Priority = priorities[fake.IntBetween(0, len(priorities)-1)]
		for _, w := range fake.Lorem().Words(fake.IntBetween(0, 3)) {
			d.AddTag(w)
		}
		for j := fake.IntBetween(0, 3); j > 0; j-- {
			if st, ok := d.AddSubTask(fake.Lorem().Sentence(3)); ok && fake.Bool() {
				d.ToggleSubTask(st.ID)
			}
		}
		d.IsPinned = fake.IntBetween(0, 9) == 0
		d.IsCompleted = fake.IntBetween(0, 4) == 0
		age := time.Duration(fake.IntBetween(0, days*24*60)) * time.Minute
		d.CreatedAt = timeutil.At(now.Add(-age))
		d.UpdatedAt = d.CreatedAt
		if _, err := a.Notes.Save(d); err != nil {
			return i, err
		}
	}
	return count, nil
}
