package app

import (
	"errors"
	"strings"
	"sync"
	"time"

	"tableflip.dev/nova/pkg/bucket"
	"tableflip.dev/nova/pkg/errs"
	"tableflip.dev/nova/pkg/note"
	"tableflip.dev/nova/pkg/timeutil"
)

var (
	ErrNotFound      = errors.New("app: note not found")
	ErrAmbiguous     = errors.New("app: id prefix matches more than one note")
	ErrUserCancelled = errors.New("app: cancelled by user")
)

// DefaultCategory is assigned to every new note.
const DefaultCategory = "General"

// Confirmer approves a permanent removal.
type Confirmer interface {
	Confirm(n *note.Note) (bool, error)
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(n *note.Note) (bool, error)

func (f ConfirmFunc) Confirm(n *note.Note) (bool, error) { return f(n) }

// Always approves without asking.
var Always Confirmer = ConfirmFunc(func(*note.Note) (bool, error) { return true, nil })

// NoteStore is the note repository. The slice is copy-on-write: mutations
// replace the affected note with a modified clone, so notes returned by
// readers are never changed underneath them and must be treated as read-only.
type NoteStore struct {
	mu       sync.RWMutex
	notes    []*note.Note
	buckets  bucket.Set
	rev      uint64
	now      func() time.Time
	onChange func()
}

// NewNoteStore wraps notes in the order they were loaded.
func NewNoteStore(notes []*note.Note, buckets bucket.Set, now func() time.Time) *NoteStore {
	if now == nil {
		now = time.Now
	}
	if len(buckets) == 0 {
		buckets = bucket.Defaults()
	}
	return &NoteStore{
		notes:   append([]*note.Note{}, notes...),
		buckets: buckets.Clone(),
		now:     now,
	}
}

// OnChange registers fn to run after every mutation. fn runs under the store
// lock, so a revision bump and its dirty mark are never seen apart; it must
// not call back into the store.
func (s *NoteStore) OnChange(fn func()) {
	s.mu.Lock()
	s.onChange = fn
	s.mu.Unlock()
}

// Revision increases on every mutation.
func (s *NoteStore) Revision() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rev
}

// All returns the collection in storage order.
func (s *NoteStore) All() []*note.Note {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]*note.Note{}, s.notes...)
}

// Len is the size of the whole collection.
func (s *NoteStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.notes)
}

// Buckets returns the bucket set.
func (s *NoteStore) Buckets() bucket.Set {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.buckets.Clone()
}

// Get returns a copy of the note with id.
func (s *NoteStore) Get(id string) (*note.Note, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.indexLocked(id)
	if i < 0 {
		return nil, ErrNotFound
	}
	return s.notes[i].Clone(), nil
}

// Resolve expands ref to a full note id. ref is either an exact id or a
// prefix shared by exactly one note.
func (s *NoteStore) Resolve(ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", ErrNotFound
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.indexLocked(ref) >= 0 {
		return ref, nil
	}
	found := ""
	for _, n := range s.notes {
		if !strings.HasPrefix(n.ID, ref) {
			continue
		}
		if found != "" {
			return "", ErrAmbiguous
		}
		found = n.ID
	}
	if found == "" {
		return "", ErrNotFound
	}
	return found, nil
}

// ReplaceAt swaps the whole collection for one read back from disk, but only
// if nothing changed since rev. It does not call OnChange. It reports whether
// the collection was replaced.
func (s *NoteStore) ReplaceAt(rev uint64, notes []*note.Note, buckets bucket.Set) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.rev != rev {
		return false
	}
	s.notes = append([]*note.Note{}, notes...)
	if len(buckets) > 0 {
		s.buckets = buckets.Clone()
	}
	s.rev++
	return true
}

// Create returns a draft for a new note in bucketID, or in the first bucket
// when bucketID is empty. Nothing is stored until Save.
func (s *NoteStore) Create(bucketID string) *note.Draft {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if bucketID == "" {
		bucketID = s.buckets.DefaultID()
	}
	active := 0
	for _, n := range s.notes {
		if n.Partition() == note.Active {
			active++
		}
	}
	now := timeutil.At(s.now())
	return &note.Draft{
		ID:        note.NewID(),
		BucketID:  bucketID,
		Priority:  note.Medium,
		Category:  DefaultCategory,
		Tags:      []string{},
		Images:    []string{},
		Links:     []string{},
		SubTasks:  []note.SubTask{},
		CreatedAt: now,
		UpdatedAt: now,
		Order:     note.IntPtr(active),
	}
}

// Edit opens a draft of an existing note.
func (s *NoteStore) Edit(id string) (*note.Draft, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.indexLocked(id)
	if i < 0 {
		return nil, ErrNotFound
	}
	return note.Edit(s.notes[i]), nil
}

// Save commits d. An existing note with the same id is replaced in place,
// otherwise the note is prepended. A note without an order is placed after
// the whole collection. Validation failures leave the store untouched.
func (s *NoteStore) Save(d *note.Draft) (*note.Note, error) {
	s.mu.RLock()
	buckets := s.buckets
	s.mu.RUnlock()

	n, err := d.Commit(buckets)
	if err != nil {
		return nil, err
	}

	s.mutate(func() bool {
		now := timeutil.At(s.now())
		n.UpdatedAt = now
		if n.CreatedAt.IsZero() {
			n.CreatedAt = now
		}
		if !n.HasOrder() {
			n.Order = note.IntPtr(len(s.notes))
		}
		if i := s.indexLocked(n.ID); i >= 0 {
			next := append([]*note.Note{}, s.notes...)
			next[i] = n
			s.notes = next
			return true
		}
		s.notes = append([]*note.Note{n}, s.notes...)
		return true
	})
	return n.Clone(), nil
}

// ToggleArchived moves a note between the active partition and the vault.
func (s *NoteStore) ToggleArchived(id string) (*note.Note, error) {
	return s.modify(id, func(n *note.Note) { n.IsArchived = !n.IsArchived })
}

// ToggleDeleted moves a note into or out of the trash.
func (s *NoteStore) ToggleDeleted(id string) (*note.Note, error) {
	return s.modify(id, func(n *note.Note) { n.IsDeleted = !n.IsDeleted })
}

// ToggleCompleted flips the completed flag.
func (s *NoteStore) ToggleCompleted(id string) (*note.Note, error) {
	return s.modify(id, func(n *note.Note) { n.IsCompleted = !n.IsCompleted })
}

// TogglePinned flips the pin flag.
func (s *NoteStore) TogglePinned(id string) (*note.Note, error) {
	return s.modify(id, func(n *note.Note) { n.IsPinned = !n.IsPinned })
}

// PermanentlyRemove erases a note from the trash after confirmation. Unknown
// ids are a no-op. A declined confirmation returns ErrUserCancelled and
// leaves the note in place.
func (s *NoteStore) PermanentlyRemove(id string, c Confirmer) error {
	target, err := s.Get(id)
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	if target.Partition() != note.Trash {
		return errs.Validation("notes.remove", "isDeleted", "note is not in the trash")
	}
	if c == nil {
		c = Always
	}
	ok, err := c.Confirm(target)
	if err != nil {
		return err
	}
	if !ok {
		return ErrUserCancelled
	}

	s.mutate(func() bool {
		i := s.indexLocked(id)
		if i < 0 {
			return false
		}
		next := make([]*note.Note, 0, len(s.notes)-1)
		next = append(next, s.notes[:i]...)
		s.notes = append(next, s.notes[i+1:]...)
		return true
	})
	return nil
}

// EmptyTrash permanently removes every trashed note after one confirmation
// and returns how many were removed. The confirmer is called with a nil note.
func (s *NoteStore) EmptyTrash(c Confirmer) (int, error) {
	if c == nil {
		c = Always
	}
	var trashed []*note.Note
	for _, n := range s.All() {
		if n.Partition() == note.Trash {
			trashed = append(trashed, n)
		}
	}
	if len(trashed) == 0 {
		return 0, nil
	}
	ok, err := c.Confirm(nil)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, ErrUserCancelled
	}
	removed := 0
	s.mutate(func() bool {
		next := make([]*note.Note, 0, len(s.notes))
		for _, n := range s.notes {
			if n.Partition() == note.Trash {
				removed++
				continue
			}
			next = append(next, n)
		}
		s.notes = next
		return removed > 0
	})
	return removed, nil
}

// Move places dragged at target's position in the collection and renumbers
// every note's order to its new index. Moving a note onto itself, or using
// an unknown id, changes nothing and reports false.
func (s *NoteStore) Move(draggedID, targetID string) bool {
	if draggedID == "" || draggedID == targetID {
		return false
	}
	return s.mutate(func() bool {
		from, to := s.indexLocked(draggedID), s.indexLocked(targetID)
		if from < 0 || to < 0 {
			return false
		}
		next := make([]*note.Note, 0, len(s.notes))
		next = append(next, s.notes[:from]...)
		next = append(next, s.notes[from+1:]...)
		moved := s.notes[from]
		next = append(next[:to], append([]*note.Note{moved}, next[to:]...)...)
		for i, n := range next {
			if n.HasOrder() && n.OrderValue() == i {
				continue
			}
			next[i] = n.WithOrder(i)
		}
		s.notes = next
		return true
	})
}

// modify applies fn to a clone of the note and stamps updatedAt.
func (s *NoteStore) modify(id string, fn func(*note.Note)) (*note.Note, error) {
	var out *note.Note
	found := s.mutate(func() bool {
		i := s.indexLocked(id)
		if i < 0 {
			return false
		}
		c := s.notes[i].Clone()
		fn(c)
		c.UpdatedAt = timeutil.At(s.now())
		next := append([]*note.Note{}, s.notes...)
		next[i] = c
		s.notes = next
		out = c.Clone()
		return true
	})
	if !found {
		return nil, ErrNotFound
	}
	return out, nil
}

func (s *NoteStore) mutate(fn func() bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	changed := fn()
	if changed {
		s.rev++
		if s.onChange != nil {
			s.onChange()
		}
	}
	return changed
}

func (s *NoteStore) indexLocked(id string) int {
	for i, n := range s.notes {
		if n.ID == id {
			return i
		}
	}
	return -1
}
