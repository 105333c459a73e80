package note

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"tableflip.dev/nova/pkg/errs"
	"tableflip.dev/nova/pkg/timeutil"
)

// BucketIndex answers whether a bucket id exists.
type BucketIndex interface {
	Has(id string) bool
}

// Draft is an in-progress edit buffer. Nothing in a Draft is visible to the
// repository until Commit succeeds.
type Draft struct {
	ID          string             `json:"id" validate:"required"`
	Title       string             `json:"title"`
	Content     string             `json:"content"`
	BucketID    string             `json:"bucketId" validate:"required"`
	Priority    Priority           `json:"priority" validate:"omitempty,oneof=High Medium Low Someday"`
	Category    string             `json:"category"`
	Tags        []string           `json:"tags"`
	Images      []string           `json:"images"`
	Links       []string           `json:"links"`
	SubTasks    []SubTask          `json:"subTasks" validate:"dive"`
	Reminder    string             `json:"reminder,omitempty"`
	CreatedAt   timeutil.Timestamp `json:"createdAt"`
	UpdatedAt   timeutil.Timestamp `json:"updatedAt"`
	IsCompleted bool               `json:"isCompleted"`
	IsPinned    bool               `json:"isPinned"`
	IsArchived  bool               `json:"isArchived"`
	IsDeleted   bool               `json:"isDeleted"`
	Order       *int               `json:"order,omitempty"`
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
	return validate
}

// Edit copies a committed note into a new draft.
func Edit(n *Note) *Draft {
	c := n.Clone()
	return &Draft{
		ID:          c.ID,
		Title:       c.Title,
		Content:     c.Content,
		BucketID:    c.BucketID,
		Priority:    c.Priority,
		Category:    c.Category,
		Tags:        c.Tags,
		Images:      c.Images,
		Links:       c.Links,
		SubTasks:    c.SubTasks,
		Reminder:    c.Reminder,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
		IsCompleted: c.IsCompleted,
		IsPinned:    c.IsPinned,
		IsArchived:  c.IsArchived,
		IsDeleted:   c.IsDeleted,
		Order:       c.Order,
	}
}

// Validate checks required fields without touching the bucket set.
func (d *Draft) Validate() error {
	if d == nil {
		return errs.Validation("note.commit", "draft", "nil draft")
	}
	err := validatorInstance().Struct(d)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return errs.Validation("note.commit", fe.Field(), "failed "+fe.Tag())
	}
	return errs.Validation("note.commit", "draft", err.Error())
}

// Commit validates the draft and promotes it to a Note. buckets may be nil to
// skip the existence check.
func (d *Draft) Commit(buckets BucketIndex) (*Note, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	if buckets != nil && !buckets.Has(d.BucketID) {
		return nil, errs.Validation("note.commit", "bucketId", "unknown bucket "+d.BucketID)
	}
	n := &Note{
		ID:          d.ID,
		Title:       d.Title,
		Content:     d.Content,
		BucketID:    d.BucketID,
		Priority:    d.Priority,
		Category:    d.Category,
		Tags:        d.Tags,
		Images:      d.Images,
		Links:       d.Links,
		SubTasks:    d.SubTasks,
		Reminder:    d.Reminder,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
		IsCompleted: d.IsCompleted,
		IsPinned:    d.IsPinned,
		IsArchived:  d.IsArchived,
		IsDeleted:   d.IsDeleted,
		Order:       d.Order,
	}
	if n.Priority == "" {
		n.Priority = Medium
	}
	return n.Clone(), nil
}

// SetPriority accepts any casing of the four labels.
func (d *Draft) SetPriority(p string) bool {
	parsed, ok := ParsePriority(p)
	if ok {
		d.Priority = parsed
	}
	return ok
}

// AddTag appends a trimmed, non-empty tag.
func (d *Draft) AddTag(tag string) bool {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return false
	}
	d.Tags = append(d.Tags, tag)
	return true
}

// RemoveTag drops the first occurrence of tag.
func (d *Draft) RemoveTag(tag string) bool {
	for i, t := range d.Tags {
		if t == tag {
			d.Tags = append(d.Tags[:i:i], d.Tags[i+1:]...)
			return true
		}
	}
	return false
}

// AddSubTask appends an open checklist item. Blank text is ignored.
func (d *Draft) AddSubTask(text string) (SubTask, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return SubTask{}, false
	}
	st := SubTask{ID: NewID(), Text: text}
	d.SubTasks = append(d.SubTasks, st)
	return st, true
}

// ToggleSubTask flips the completion flag of the subtask with id.
func (d *Draft) ToggleSubTask(id string) bool {
	for i := range d.SubTasks {
		if d.SubTasks[i].ID == id {
			d.SubTasks[i].IsCompleted = !d.SubTasks[i].IsCompleted
			return true
		}
	}
	return false
}

// RemoveSubTask deletes the subtask with id.
func (d *Draft) RemoveSubTask(id string) bool {
	for i := range d.SubTasks {
		if d.SubTasks[i].ID == id {
			d.SubTasks = append(d.SubTasks[:i:i], d.SubTasks[i+1:]...)
			return true
		}
	}
	return false
}

// AddLink appends a trimmed, non-empty link.
func (d *Draft) AddLink(link string) bool {
	link = strings.TrimSpace(link)
	if link == "" {
		return false
	}
	d.Links = append(d.Links, link)
	return true
}

// RemoveLink deletes the link at index i.
func (d *Draft) RemoveLink(i int) bool {
	if i < 0 || i >= len(d.Links) {
		return false
	}
	d.Links = append(d.Links[:i:i], d.Links[i+1:]...)
	return true
}

// AddImage appends an already-encoded image payload.
func (d *Draft) AddImage(payload string) bool {
	if payload == "" {
		return false
	}
	d.Images = append(d.Images, payload)
	return true
}

// RemoveImage deletes the image at index i.
func (d *Draft) RemoveImage(i int) bool {
	if i < 0 || i >= len(d.Images) {
		return false
	}
	d.Images = append(d.Images[:i:i], d.Images[i+1:]...)
	return true
}

func (d *Draft) TogglePinned()    { d.IsPinned = !d.IsPinned }
func (d *Draft) ToggleCompleted() { d.IsCompleted = !d.IsCompleted }
