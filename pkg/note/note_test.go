package note

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"tableflip.dev/nova/pkg/errs"
)

type bucketSet map[string]bool

func (b bucketSet) Has(id string) bool { return b[id] }

func TestPartitionPrecedence(t *testing.T) {
	cases := []struct {
		deleted, archived bool
		want              Partition
	}{
		{false, false, Active},
		{false, true, Archived},
		{true, false, Trash},
		{true, true, Trash},
	}
	for _, tc := range cases {
		n := &Note{IsDeleted: tc.deleted, IsArchived: tc.archived, IsPinned: true}
		if got := n.Partition(); got != tc.want {
			t.Fatalf("deleted=%v archived=%v: got %s want %s", tc.deleted, tc.archived, got, tc.want)
		}
	}
}

func TestCommitRequiresID(t *testing.T) {
	d := &Draft{BucketID: "work"}
	_, err := d.Commit(bucketSet{"work": true})
	if !errs.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if !strings.Contains(err.Error(), "(id)") {
		t.Fatalf("expected id field in error, got %v", err)
	}
}

func TestCommitRejectsUnknownBucket(t *testing.T) {
	d := &Draft{ID: "n1", BucketID: "garden"}
	if _, err := d.Commit(bucketSet{"work": true}); !errs.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestCommitRejectsBadPriority(t *testing.T) {
	d := &Draft{ID: "n1", BucketID: "work", Priority: "Urgent"}
	if _, err := d.Commit(nil); !errs.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestCommitDoesNotAliasDraft(t *testing.T) {
	d := &Draft{ID: "n1", BucketID: "work", Tags: []string{"a"}}
	n, err := d.Commit(nil)
	if err != nil {
		t.Fatalf("commit: %v", err)
	}
	d.Tags[0] = "mutated"
	if n.Tags[0] != "a" {
		t.Fatalf("committed note shares tag storage with draft")
	}
	if n.Priority != Medium {
		t.Fatalf("expected empty priority to default to Medium, got %s", n.Priority)
	}
}

func TestDraftChecklist(t *testing.T) {
	d := &Draft{ID: "n1", BucketID: "work"}
	if _, ok := d.AddSubTask("   "); ok {
		t.Fatalf("blank subtask should be ignored")
	}
	st, ok := d.AddSubTask("  buy milk ")
	if !ok || st.Text != "buy milk" || st.IsCompleted {
		t.Fatalf("unexpected subtask %+v", st)
	}
	if !d.ToggleSubTask(st.ID) || !d.SubTasks[0].IsCompleted {
		t.Fatalf("expected subtask to be completed")
	}
	if !d.RemoveSubTask(st.ID) || len(d.SubTasks) != 0 {
		t.Fatalf("expected subtask removal")
	}
	if d.AddLink(" ") {
		t.Fatalf("blank link should be ignored")
	}
	d.AddLink("https://a")
	d.AddLink("https://b")
	if !d.RemoveLink(0) || d.Links[0] != "https://b" {
		t.Fatalf("unexpected links %v", d.Links)
	}
	if d.RemoveLink(4) {
		t.Fatalf("out of range removal should fail")
	}
}

func TestApplySuggestionMerges(t *testing.T) {
	d := &Draft{ID: "n1", BucketID: "work", Category: "General", Priority: Medium, Tags: []string{"UI", "ui"}}
	d.ApplySuggestion(&Suggestion{Category: "Design", Tags: []string{"UX", "UI"}, PrioritySuggestion: "High"})
	if d.Category != "Design" || d.Priority != High {
		t.Fatalf("unexpected merge %+v", d)
	}
	want := []string{"UI", "ui", "UX"}
	if strings.Join(d.Tags, ",") != strings.Join(want, ",") {
		t.Fatalf("expected %v, got %v", want, d.Tags)
	}

	d.ApplySuggestion(&Suggestion{PrioritySuggestion: "whenever"})
	if d.Category != "Design" || d.Priority != High {
		t.Fatalf("empty suggestion should not clobber fields: %+v", d)
	}
	d.ApplySuggestion(nil)
}

func TestOrderSurvivesJSON(t *testing.T) {
	n := &Note{ID: "n1", BucketID: "work", Priority: Low, Order: IntPtr(0)}
	b, err := json.Marshal(n)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(b), `"order":0`) {
		t.Fatalf("expected explicit zero order, got %s", b)
	}

	var missing Note
	if err := json.Unmarshal([]byte(`{"id":"x","bucketId":"work"}`), &missing); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if missing.HasOrder() || missing.OrderValue() != 0 {
		t.Fatalf("expected missing order to stay unset")
	}
}

func TestSeed(t *testing.T) {
	now := time.Date(2024, time.January, 5, 12, 0, 0, 0, time.UTC)
	notes := Seed(now)
	if len(notes) != 3 {
		t.Fatalf("expected 3 seed notes, got %d", len(notes))
	}
	for i, n := range notes {
		if n.OrderValue() != i {
			t.Fatalf("seed note %s has order %d", n.ID, n.OrderValue())
		}
	}
	if !notes[0].CreatedAt.Equal(now.Add(-time.Hour)) {
		t.Fatalf("unexpected createdAt %v", notes[0].CreatedAt)
	}
}

func TestCloneIsDeep(t *testing.T) {
	n := &Note{ID: "a", SubTasks: []SubTask{{ID: "s"}}, Order: IntPtr(3)}
	c := n.Clone()
	c.SubTasks[0].IsCompleted = true
	*c.Order = 9
	if n.SubTasks[0].IsCompleted || n.OrderValue() != 3 {
		t.Fatalf("clone shares storage with original")
	}
}
