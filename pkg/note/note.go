// Package note holds the note entity, its lifecycle partitions and the draft
// type used to edit it.
package note

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"tableflip.dev/nova/pkg/timeutil"
)

// Priority ranks a note.
type Priority string

const (
	High    Priority = "High"
	Medium  Priority = "Medium"
	Low     Priority = "Low"
	Someday Priority = "Someday"
)

// PriorityAll is the filter value that matches every priority.
const PriorityAll = "All"

// Priorities lists the valid priorities from most to least urgent.
func Priorities() []Priority {
	return []Priority{High, Medium, Low, Someday}
}

// ParsePriority matches s case-insensitively against the four labels.
func ParsePriority(s string) (Priority, bool) {
	for _, p := range Priorities() {
		if strings.EqualFold(string(p), strings.TrimSpace(s)) {
			return p, true
		}
	}
	return "", false
}

func (p Priority) String() string { return string(p) }

// Partition is the view a note is visible in. Exactly one applies to any note.
type Partition int

const (
	Active Partition = iota
	Archived
	Trash
)

func (p Partition) String() string {
	switch p {
	case Archived:
		return "archived"
	case Trash:
		return "trash"
	default:
		return "active"
	}
}

// PartitionOf resolves the lifecycle flags. Deleted wins over archived.
func PartitionOf(deleted, archived bool) Partition {
	switch {
	case deleted:
		return Trash
	case archived:
		return Archived
	default:
		return Active
	}
}

// SubTask is a checklist item owned by a single note.
type SubTask struct {
	ID          string `json:"id" validate:"required"`
	Text        string `json:"text"`
	IsCompleted bool   `json:"isCompleted"`
}

// Note is a committed thought. Notes are treated as immutable once stored;
// mutations go through a Draft or produce a modified Clone.
type Note struct {
	ID          string             `json:"id"`
	Title       string             `json:"title"`
	Content     string             `json:"content"`
	BucketID    string             `json:"bucketId"`
	Priority    Priority           `json:"priority"`
	Category    string             `json:"category"`
	Tags        []string           `json:"tags"`
	Images      []string           `json:"images"`
	Links       []string           `json:"links"`
	SubTasks    []SubTask          `json:"subTasks"`
	Reminder    string             `json:"reminder,omitempty"`
	CreatedAt   timeutil.Timestamp `json:"createdAt"`
	UpdatedAt   timeutil.Timestamp `json:"updatedAt"`
	IsCompleted bool               `json:"isCompleted"`
	IsPinned    bool               `json:"isPinned"`
	IsArchived  bool               `json:"isArchived"`
	IsDeleted   bool               `json:"isDeleted"`
	// Order is the manual position. Nil means unset and sorts as 0.
	Order *int `json:"order,omitempty"`
}

// NewID returns a fresh identifier for notes and their children.
func NewID() string {
	return uuid.NewString()
}

// Partition reports which view the note belongs to.
func (n *Note) Partition() Partition {
	return PartitionOf(n.IsDeleted, n.IsArchived)
}

// OrderValue returns the manual order, treating unset as 0.
func (n *Note) OrderValue() int {
	if n.Order == nil {
		return 0
	}
	return *n.Order
}

// HasOrder reports whether an explicit order has been assigned.
func (n *Note) HasOrder() bool { return n.Order != nil }

// Clone returns a deep copy.
func (n *Note) Clone() *Note {
	if n == nil {
		return nil
	}
	c := *n
	c.Tags = cloneStrings(n.Tags)
	c.Images = cloneStrings(n.Images)
	c.Links = cloneStrings(n.Links)
	if n.SubTasks != nil {
		c.SubTasks = append([]SubTask{}, n.SubTasks...)
	}
	if n.Order != nil {
		c.Order = IntPtr(*n.Order)
	}
	return &c
}

// WithOrder returns a copy positioned at order.
func (n *Note) WithOrder(order int) *Note {
	c := n.Clone()
	c.Order = IntPtr(order)
	return c
}

// DisplayTitle is the title, or a placeholder for untitled notes.
func (n *Note) DisplayTitle() string {
	if strings.TrimSpace(n.Title) == "" {
		return "Untitled"
	}
	return n.Title
}

// CompletedSubTasks counts finished checklist items.
func (n *Note) CompletedSubTasks() int {
	done := 0
	for _, st := range n.SubTasks {
		if st.IsCompleted {
			done++
		}
	}
	return done
}

func (n *Note) String() string {
	return fmt.Sprintf("%s [%s/%s] %s", n.ID, n.BucketID, n.Priority, n.DisplayTitle())
}

// IntPtr is a helper for building optional order values.
func IntPtr(v int) *int { return &v }

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	return append([]string{}, in...)
}
