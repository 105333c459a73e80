package printers

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wordwrap"

	"tableflip.dev/nova/pkg/bucket"
	"tableflip.dev/nova/pkg/note"
	"tableflip.dev/nova/pkg/view"
)

type PrettyPrint struct {
	Out    io.Writer
	ShowID bool
	// Width wraps long text. Zero means 80.
	Width int
	// Style is the glamour style for note bodies; "notty" disables color.
	Style string
}

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out == nil {
		return color.Output
	}
	return pp.Out
}

func (pp *PrettyPrint) width() int {
	if pp.Width <= 0 {
		return 80
	}
	return pp.Width
}

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.out())
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)
	_, _ = t.Fprintln(pp.out(), title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	_, _ = t.Fprint(pp.out(), title)
	_, _ = c.Fprintf(pp.out(), " - %d", count)

	switch count {
	case 1:
		_, _ = c.Fprintln(pp.out(), " note")
	default:
		_, _ = c.Fprintln(pp.out(), " notes")
	}
}

// BucketLabel renders a bucket name in its color.
func BucketLabel(b bucket.Bucket) string {
	name := b.Name
	if name == "" {
		name = b.ID
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(b.Hex())).Render(name)
}

func priorityColor(p note.Priority) *color.Color {
	switch p {
	case note.High:
		return color.New(color.FgHiRed, color.Bold)
	case note.Medium:
		return color.New(color.FgYellow)
	case note.Low:
		return color.New(color.FgGreen)
	default:
		return color.New(color.Faint)
	}
}

// PriorityLabel renders p in its color.
func PriorityLabel(p note.Priority) string {
	return priorityColor(p).Sprint(p)
}

func marker(n *note.Note) string {
	switch {
	case n.IsPinned && n.IsCompleted:
		return "*x"
	case n.IsPinned:
		return "* "
	case n.IsCompleted:
		return " x"
	default:
		return "  "
	}
}

// Notes prints one row per note.
func (pp *PrettyPrint) Notes(buckets bucket.Set, notes ...*note.Note) {
	if len(notes) == 0 {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Fprint(pp.out(), " none\n\n")
		return
	}

	tbl := uitable.New()
	tbl.MaxColWidth = uint(pp.width() / 2)
	tbl.Separator = "  "
	y := color.New(color.FgHiYellow, color.Italic, color.Faint)
	f := color.New(color.Faint)
	for _, n := range notes {
		b, ok := buckets.Get(n.BucketID)
		if !ok {
			b = bucket.Bucket{ID: n.BucketID}
		}
		row := []interface{}{marker(n)}
		if pp.ShowID {
			row = append(row, y.Sprint(n.ID))
		}
		tags := ""
		if len(n.Tags) > 0 {
			tags = f.Sprint("#" + strings.Join(n.Tags, " #"))
		}
		checklist := ""
		if len(n.SubTasks) > 0 {
			checklist = f.Sprintf("[%d/%d]", n.CompletedSubTasks(), len(n.SubTasks))
		}
		row = append(row,
			n.DisplayTitle(),
			BucketLabel(b),
			PriorityLabel(n.Priority),
			checklist,
			tags,
		)
		tbl.AddRow(row...)
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()
}

// Note prints a single note with its body rendered as markdown.
func (pp *PrettyPrint) Note(buckets bucket.Set, n *note.Note) error {
	b, ok := buckets.Get(n.BucketID)
	if !ok {
		b = bucket.Bucket{ID: n.BucketID}
	}
	f := color.New(color.Faint)
	w := pp.out()

	pp.Title(n.DisplayTitle())
	tbl := uitable.New()
	tbl.AddRow("id", n.ID)
	tbl.AddRow("bucket", BucketLabel(b))
	tbl.AddRow("priority", PriorityLabel(n.Priority))
	tbl.AddRow("category", n.Category)
	tbl.AddRow("state", stateLine(n))
	if len(n.Tags) > 0 {
		tbl.AddRow("tags", strings.Join(n.Tags, ", "))
	}
	if n.Reminder != "" {
		tbl.AddRow("reminder", n.Reminder)
	}
	tbl.AddRow("created", n.CreatedAt.String())
	tbl.AddRow("updated", n.UpdatedAt.String())
	_, _ = fmt.Fprintln(w, tbl)

	if strings.TrimSpace(n.Content) != "" {
		body, err := pp.renderMarkdown(n.Content)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprint(w, body)
	}

	if len(n.SubTasks) > 0 {
		_, _ = f.Fprintf(w, "\nchecklist %d/%d\n", n.CompletedSubTasks(), len(n.SubTasks))
		for _, st := range n.SubTasks {
			box := "[ ]"
			if st.IsCompleted {
				box = "[x]"
			}
			_, _ = fmt.Fprintf(w, "  %s %s\n", box, st.Text)
		}
	}
	if len(n.Links) > 0 {
		_, _ = f.Fprintln(w, "\nlinks")
		for i, l := range n.Links {
			_, _ = fmt.Fprintf(w, "  %d. %s\n", i+1, l)
		}
	}
	if len(n.Images) > 0 {
		_, _ = f.Fprintf(w, "\n%d image(s) attached\n", len(n.Images))
	}
	pp.NewLine()
	return nil
}

func stateLine(n *note.Note) string {
	parts := []string{n.Partition().String()}
	if n.IsPinned {
		parts = append(parts, "pinned")
	}
	if n.IsCompleted {
		parts = append(parts, "completed")
	}
	return strings.Join(parts, ", ")
}

func (pp *PrettyPrint) renderMarkdown(md string) (string, error) {
	style := pp.Style
	if style == "" {
		style = "dark"
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(pp.width()),
	)
	if err != nil {
		return "", err
	}
	return r.Render(md)
}

// Timeline prints notes grouped under their creation day with a short
// preview of each body.
func (pp *PrettyPrint) Timeline(buckets bucket.Set, groups []view.DayGroup) {
	if len(groups) == 0 {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Fprint(pp.out(), " none\n\n")
		return
	}
	d := color.New(color.Bold, color.FgHiWhite)
	f := color.New(color.Faint)
	for _, g := range groups {
		_, _ = d.Fprintln(pp.out(), g.Label)
		for _, n := range g.Notes {
			b, ok := buckets.Get(n.BucketID)
			if !ok {
				b = bucket.Bucket{ID: n.BucketID}
			}
			_, _ = fmt.Fprintf(pp.out(), "  %s %s  %s\n", n.CreatedAt.Format("15:04"), n.DisplayTitle(), BucketLabel(b))
			if preview := Preview(n.Content, pp.width()-6, 3); preview != "" {
				_, _ = f.Fprintln(pp.out(), indent.String(preview, 8))
			}
		}
		pp.NewLine()
	}
}

// Preview wraps content to width and keeps at most lines lines, the last one
// truncated with an ellipsis when content continues.
func Preview(content string, width, lines int) string {
	content = strings.TrimSpace(content)
	if content == "" || lines <= 0 {
		return ""
	}
	if width < 10 {
		width = 10
	}
	wrapped := strings.Split(wordwrap.String(content, width), "\n")
	if len(wrapped) <= lines {
		return strings.Join(wrapped, "\n")
	}
	wrapped = wrapped[:lines]
	wrapped[lines-1] = truncate.StringWithTail(wrapped[lines-1]+" ...", uint(width), "...")
	return strings.Join(wrapped, "\n")
}

// Buckets prints each bucket with its active count and completion progress.
func (pp *PrettyPrint) Buckets(summaries []view.BucketSummary) {
	tbl := uitable.New()
	tbl.Separator = "  "
	f := color.New(color.Faint)
	for _, s := range summaries {
		tbl.AddRow(
			BucketLabel(s.Bucket),
			fmt.Sprintf("%d", s.Count),
			progressBar(s.Progress, 20),
			fmt.Sprintf("%3.0f%%", s.Progress),
			f.Sprint(s.Bucket.Description),
		)
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()
}

func progressBar(percent float64, width int) string {
	filled := int(percent / 100 * float64(width))
	if filled < 0 {
		filled = 0
	}
	if filled > width {
		filled = width
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

// Counts prints the partition totals.
func (pp *PrettyPrint) Counts(c view.Counts) {
	f := color.New(color.Faint)
	_, _ = f.Fprintf(pp.out(), "active %d  vault %d  trash %d\n", c.Active, c.Archived, c.Trash)
}

// JSON writes v indented by two spaces.
func (pp *PrettyPrint) JSON(v interface{}) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(pp.out(), string(b))
	return err
}
