package options

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"tableflip.dev/nova/pkg/bucket"
	"tableflip.dev/nova/pkg/note"
)

// NoteOptions are the editable fields of a note. Only flags that were set on
// the command line are applied to a draft.
type NoteOptions struct {
	Title      string
	Content    string
	Category   string
	Priority   string
	Bucket     string
	Reminder   string
	Tags       []string
	Untags     []string
	SubTasks   []string
	Check      []string
	Drop       []string
	Links      []string
	Unlinks    []int
	Images     []string
	Pinned     bool
	Completed  bool
	contentSet bool
}

func AddNoteArgs(cmd *cobra.Command, o *NoteOptions) {
	f := cmd.Flags()
	f.StringVarP(&o.Title, "title", "t", "", "Note title.")
	f.StringVar(&o.Content, "content", "", "Note body; markdown is rendered by show.")
	f.StringVar(&o.Category, "category", "", "Free-text category.")
	f.StringVarP(&o.Priority, "priority", "p", "", "High, Medium, Low or Someday.")
	AddBucketArg(cmd, &o.Bucket)
	f.StringVar(&o.Reminder, "reminder", "", "Reminder date, for example 2024-03-01.")
	f.StringSliceVar(&o.Tags, "tag", nil, "Add a tag. Repeatable.")
	f.StringSliceVar(&o.Untags, "untag", nil, "Remove a tag. Repeatable.")
	f.StringArrayVar(&o.SubTasks, "subtask", nil, "Add a checklist item. Repeatable.")
	f.StringSliceVar(&o.Check, "check", nil, "Toggle the checklist item with this id. Repeatable.")
	f.StringSliceVar(&o.Drop, "drop-subtask", nil, "Remove the checklist item with this id. Repeatable.")
	f.StringSliceVar(&o.Links, "link", nil, "Attach a link. Repeatable.")
	f.IntSliceVar(&o.Unlinks, "unlink", nil, "Remove the link at this 1-based position. Repeatable.")
	f.StringSliceVar(&o.Images, "image", nil, "Attach an image file. Repeatable.")
	f.BoolVar(&o.Pinned, "pinned", false, "Pin the note.")
	f.BoolVar(&o.Completed, "completed", false, "Mark the note completed.")
}

// SetContent supplies the body from positional arguments.
func (o *NoteOptions) SetContent(content string) {
	o.Content = content
	o.contentSet = true
}

// Apply copies the changed flags onto d.
func (o *NoteOptions) Apply(cmd *cobra.Command, d *note.Draft, buckets bucket.Set) error {
	changed := cmd.Flags().Changed
	if changed("title") {
		d.Title = o.Title
	}
	if changed("content") || o.contentSet {
		d.Content = o.Content
	}
	if changed("category") {
		d.Category = o.Category
	}
	if changed("priority") && !d.SetPriority(o.Priority) {
		return errUnknownPriority(o.Priority)
	}
	if changed("bucket") {
		b, err := buckets.Resolve(o.Bucket)
		if err != nil {
			return err
		}
		d.BucketID = b.ID
	}
	if changed("reminder") {
		d.Reminder = o.Reminder
	}
	if changed("pinned") {
		d.IsPinned = o.Pinned
	}
	if changed("completed") {
		d.IsCompleted = o.Completed
	}
	for _, t := range o.Tags {
		d.AddTag(t)
	}
	for _, t := range o.Untags {
		d.RemoveTag(t)
	}
	for _, s := range o.SubTasks {
		d.AddSubTask(s)
	}
	for _, id := range o.Check {
		if !d.ToggleSubTask(id) {
			return fmt.Errorf("options: no checklist item %q", id)
		}
	}
	for _, id := range o.Drop {
		if !d.RemoveSubTask(id) {
			return fmt.Errorf("options: no checklist item %q", id)
		}
	}
	for _, l := range o.Links {
		d.AddLink(l)
	}
	// Remove from the end so earlier positions stay valid.
	for i := len(o.Unlinks) - 1; i >= 0; i-- {
		if !d.RemoveLink(o.Unlinks[i] - 1) {
			return fmt.Errorf("options: no link at position %d", o.Unlinks[i])
		}
	}
	for _, path := range o.Images {
		payload, err := ImagePayload(path)
		if err != nil {
			return err
		}
		d.AddImage(payload)
	}
	return nil
}

// ImagePayload reads an image file into a data URL.
func ImagePayload(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	if len(b) == 0 {
		return "", errors.New("options: empty image " + path)
	}
	return "data:" + http.DetectContentType(b) + ";base64," + base64.StdEncoding.EncodeToString(b), nil
}

func errUnknownPriority(p string) error {
	return fmt.Errorf("options: unknown priority %q", p)
}
