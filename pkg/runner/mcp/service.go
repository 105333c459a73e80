// Package mcp provides the Model Context Protocol server integration for nova.
package mcp

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"tableflip.dev/nova/pkg/app"
	"tableflip.dev/nova/pkg/note"
	"tableflip.dev/nova/pkg/runner/complete"
	"tableflip.dev/nova/pkg/timer"
	"tableflip.dev/nova/pkg/timeutil"
	"tableflip.dev/nova/pkg/view"
)

// Service adapts the app operations to transport-friendly values.
type Service struct {
	App *app.App
}

var errNoApp = errors.New("app is not configured")

// CreateNoteOptions captures the parameters used to create a new note.
type CreateNoteOptions struct {
	Title    string
	Content  string
	Bucket   string
	Priority string
	Category string
	Tags     []string
}

// UpdateNoteOptions replaces the non-nil fields of a note.
type UpdateNoteOptions struct {
	ID       string
	Title    *string
	Content  *string
	Bucket   *string
	Priority *string
	Category *string
	AddTags  []string
}

// NoteDTO is a transport-friendly projection of a note.
type NoteDTO struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Content     string         `json:"content,omitempty"`
	Bucket      string         `json:"bucket"`
	BucketName  string         `json:"bucketName"`
	Priority    string         `json:"priority"`
	Category    string         `json:"category,omitempty"`
	Tags        []string       `json:"tags"`
	SubTasks    []note.SubTask `json:"subTasks,omitempty"`
	Links       []string       `json:"links,omitempty"`
	ImageCount  int            `json:"imageCount,omitempty"`
	State       string         `json:"state"`
	IsPinned    bool           `json:"isPinned"`
	IsCompleted bool           `json:"isCompleted"`
	Order       int            `json:"order"`
	CreatedISO  string         `json:"created"`
	UpdatedISO  string         `json:"updated"`
}

// BucketDTO describes a bucket and its progress.
type BucketDTO struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Color       string  `json:"color"`
	Count       int     `json:"count"`
	Completed   int     `json:"completed"`
	Progress    float64 `json:"progress"`
}

// SessionDTO is one completed Pomodoro interval.
type SessionDTO struct {
	Label     string `json:"label"`
	Mode      string `json:"mode"`
	Duration  string `json:"duration"`
	Seconds   int    `json:"seconds"`
	TaskTitle string `json:"taskTitle,omitempty"`
	When      string `json:"when"`
}

// NewService builds a service wrapper around a.
func NewService(a *app.App) *Service {
	return &Service{App: a}
}

func (s *Service) dto(n *note.Note) NoteDTO {
	name := n.BucketID
	if b, ok := s.App.Buckets().Get(n.BucketID); ok {
		name = b.Name
	}
	return NoteDTO{
		ID:          n.ID,
		Title:       n.DisplayTitle(),
		Content:     n.Content,
		Bucket:      n.BucketID,
		BucketName:  name,
		Priority:    n.Priority.String(),
		Category:    n.Category,
		Tags:        append([]string{}, n.Tags...),
		SubTasks:    n.SubTasks,
		Links:       n.Links,
		ImageCount:  len(n.Images),
		State:       n.Partition().String(),
		IsPinned:    n.IsPinned,
		IsCompleted: n.IsCompleted,
		Order:       n.OrderValue(),
		CreatedISO:  n.CreatedAt.String(),
		UpdatedISO:  n.UpdatedAt.String(),
	}
}

func (s *Service) dtos(notes []*note.Note) []NoteDTO {
	out := make([]NoteDTO, 0, len(notes))
	for _, n := range notes {
		out = append(out, s.dto(n))
	}
	return out
}

// ListNotes runs the view pipeline. bucketRef may be an id or a name.
func (s *Service) ListNotes(viewName, bucketRef, priority string) ([]NoteDTO, error) {
	if s.App == nil {
		return nil, errNoApp
	}
	kind, err := view.ParseKind(viewName)
	if err != nil {
		return nil, err
	}
	q := view.Query{View: kind}
	if bucketRef != "" {
		b, err := s.App.Buckets().Resolve(bucketRef)
		if err != nil {
			return nil, err
		}
		q.BucketID = b.ID
		if kind == view.Notes {
			q.View = view.Bucket
		}
	}
	if priority != "" && !strings.EqualFold(priority, note.PriorityAll) {
		p, ok := note.ParsePriority(priority)
		if !ok {
			return nil, fmt.Errorf("unknown priority %q", priority)
		}
		q.Priority = p.String()
	}
	return s.dtos(s.App.Query(q)), nil
}

// SearchNotes matches query against every note that is not in the trash.
func (s *Service) SearchNotes(query string, limit int) ([]NoteDTO, error) {
	if s.App == nil {
		return nil, errNoApp
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, errors.New("query is required")
	}
	var hits []*note.Note
	for _, k := range []view.Kind{view.Notes, view.Vault} {
		hits = append(hits, s.App.Query(view.Query{View: k, Search: query})...)
	}
	if limit > 0 && len(hits) > limit {
		hits = hits[:limit]
	}
	return s.dtos(hits), nil
}

// GetNote fetches one note by id or unique id prefix.
func (s *Service) GetNote(ref string) (*NoteDTO, error) {
	if s.App == nil {
		return nil, errNoApp
	}
	id, err := s.App.Notes.Resolve(ref)
	if err != nil {
		return nil, err
	}
	n, err := s.App.Notes.Get(id)
	if err != nil {
		return nil, err
	}
	dto := s.dto(n)
	return &dto, nil
}

// CreateNote saves a new note. An empty bucket uses the first bucket.
func (s *Service) CreateNote(opts CreateNoteOptions) (*NoteDTO, error) {
	if s.App == nil {
		return nil, errNoApp
	}
	bucketID := ""
	if opts.Bucket != "" {
		b, err := s.App.Buckets().Resolve(opts.Bucket)
		if err != nil {
			return nil, err
		}
		bucketID = b.ID
	}
	d := s.App.Notes.Create(bucketID)
	d.Title = strings.TrimSpace(opts.Title)
	d.Content = opts.Content
	if opts.Category != "" {
		d.Category = opts.Category
	}
	if opts.Priority != "" && !d.SetPriority(opts.Priority) {
		return nil, fmt.Errorf("unknown priority %q", opts.Priority)
	}
	for _, t := range opts.Tags {
		d.AddTag(t)
	}
	n, err := s.App.Notes.Save(d)
	if err != nil {
		return nil, err
	}
	dto := s.dto(n)
	return &dto, nil
}

// UpdateNote edits an existing note.
func (s *Service) UpdateNote(opts UpdateNoteOptions) (*NoteDTO, error) {
	if s.App == nil {
		return nil, errNoApp
	}
	id, err := s.App.Notes.Resolve(opts.ID)
	if err != nil {
		return nil, err
	}
	d, err := s.App.Notes.Edit(id)
	if err != nil {
		return nil, err
	}
	if opts.Title != nil {
		d.Title = *opts.Title
	}
	if opts.Content != nil {
		d.Content = *opts.Content
	}
	if opts.Category != nil {
		d.Category = *opts.Category
	}
	if opts.Bucket != nil {
		b, err := s.App.Buckets().Resolve(*opts.Bucket)
		if err != nil {
			return nil, err
		}
		d.BucketID = b.ID
	}
	if opts.Priority != nil && !d.SetPriority(*opts.Priority) {
		return nil, fmt.Errorf("unknown priority %q", *opts.Priority)
	}
	for _, t := range opts.AddTags {
		d.AddTag(t)
	}
	n, err := s.App.Notes.Save(d)
	if err != nil {
		return nil, err
	}
	dto := s.dto(n)
	return &dto, nil
}

// ToggleNote flips one lifecycle flag.
func (s *Service) ToggleNote(ref string, flag complete.Flag) (*NoteDTO, error) {
	if s.App == nil {
		return nil, errNoApp
	}
	id, err := s.App.Notes.Resolve(ref)
	if err != nil {
		return nil, err
	}
	var n *note.Note
	switch flag {
	case complete.Completed:
		n, err = s.App.Notes.ToggleCompleted(id)
	case complete.Pinned:
		n, err = s.App.Notes.TogglePinned(id)
	case complete.Archived:
		n, err = s.App.Notes.ToggleArchived(id)
	case complete.Deleted:
		n, err = s.App.Notes.ToggleDeleted(id)
	default:
		return nil, fmt.Errorf("unknown flag %q", flag)
	}
	if err != nil {
		return nil, err
	}
	dto := s.dto(n)
	return &dto, nil
}

// MoveNote places a note at the position of another.
func (s *Service) MoveNote(ref, ontoRef string) ([]NoteDTO, error) {
	if s.App == nil {
		return nil, errNoApp
	}
	id, err := s.App.Notes.Resolve(ref)
	if err != nil {
		return nil, err
	}
	onto, err := s.App.Notes.Resolve(ontoRef)
	if err != nil {
		return nil, err
	}
	if !s.App.Notes.Move(id, onto) {
		return nil, errors.New("note is already in that position")
	}
	return s.dtos(s.App.Query(view.Query{View: view.Notes})), nil
}

// ListBuckets returns every bucket with its counts.
func (s *Service) ListBuckets() ([]BucketDTO, error) {
	if s.App == nil {
		return nil, errNoApp
	}
	summaries := s.App.Summaries()
	out := make([]BucketDTO, 0, len(summaries))
	for _, sm := range summaries {
		out = append(out, BucketDTO{
			ID:          sm.Bucket.ID,
			Name:        sm.Bucket.Name,
			Description: sm.Bucket.Description,
			Color:       sm.Bucket.Hex(),
			Count:       sm.Count,
			Completed:   sm.Completed,
			Progress:    sm.Progress,
		})
	}
	return out, nil
}

// TimerHistory lists the sessions completed within window, e.g. "1w".
func (s *Service) TimerHistory(window string, now time.Time) ([]SessionDTO, error) {
	if s.App == nil {
		return nil, errNoApp
	}
	d, _, err := timeutil.ParseWindow(window)
	if err != nil {
		return nil, err
	}
	items := s.App.Timer.HistorySince(now.Add(-d))
	out := make([]SessionDTO, 0, len(items))
	for _, h := range items {
		out = append(out, sessionDTO(h))
	}
	return out, nil
}

func sessionDTO(h timer.HistoryItem) SessionDTO {
	return SessionDTO{
		Label:     h.Label,
		Mode:      h.Mode.String(),
		Duration:  timeutil.FormatClock(h.Duration),
		Seconds:   h.Duration,
		TaskTitle: h.TaskTitle,
		When:      h.Timestamp.String(),
	}
}
