package timer

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PomodoroState is a read-only copy of the countdown.
type PomodoroState struct {
	Mode      Mode
	Remaining int
	Total     int
	Running   bool
	Progress  float64
	Label     string
	Settings  Settings
}

// StopwatchState is a read-only copy of the stopwatch.
type StopwatchState struct {
	Elapsed int
	Running bool
	Laps    []Lap
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides time.Now for completion timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithTickSource attaches the source that drives running tracks. Without one
// the caller is expected to call TickPomodoro and TickStopwatch itself.
func WithTickSource(src TickSource) Option {
	return func(s *Store) { s.ticks = src }
}

// WithLogger sets the logger for tick source failures.
func WithLogger(l *zap.Logger) Option {
	return func(s *Store) { s.log = l }
}

// WithIDs overrides history item id generation.
func WithIDs(next func() string) Option {
	return func(s *Store) { s.newID = next }
}

// Store owns both timer tracks and the session history. Persisted state
// (settings and history) bumps the revision; countdown ticks do not.
type Store struct {
	mu      sync.Mutex
	pomo    *Pomodoro
	sw      Stopwatch
	history []HistoryItem
	rev     uint64

	now      func() time.Time
	newID    func() string
	ticks    TickSource
	log      *zap.Logger
	onChange func()
}

// NewStore builds a store from persisted settings and history.
func NewStore(settings Settings, history []HistoryItem, opts ...Option) *Store {
	s := &Store{
		pomo:    NewPomodoro(settings),
		history: append([]HistoryItem{}, history...),
		now:     time.Now,
		newID:   uuid.NewString,
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// OnChange registers fn to be called after persisted state changes. fn runs
// under the store lock and must not call back into the store.
func (s *Store) OnChange(fn func()) {
	s.mu.Lock()
	s.onChange = fn
	s.mu.Unlock()
}

// Revision increases whenever settings or history change.
func (s *Store) Revision() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rev
}

// Pomodoro returns the countdown state.
func (s *Store) Pomodoro() PomodoroState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return PomodoroState{
		Mode:      s.pomo.Mode(),
		Remaining: s.pomo.Remaining(),
		Total:     s.pomo.Total(),
		Running:   s.pomo.Running(),
		Progress:  s.pomo.Progress(),
		Label:     s.pomo.Label(),
		Settings:  s.pomo.Settings(),
	}
}

// Stopwatch returns the stopwatch state.
func (s *Store) Stopwatch() StopwatchState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return StopwatchState{Elapsed: s.sw.Elapsed(), Running: s.sw.Running(), Laps: s.sw.Laps()}
}

// Settings returns the configured durations.
func (s *Store) Settings() Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pomo.Settings()
}

// History returns the session log, most recent first.
func (s *Store) History() []HistoryItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]HistoryItem{}, s.history...)
}

// HistorySince returns sessions completed at or after since.
func (s *Store) HistorySince(since time.Time) []HistoryItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []HistoryItem
	for _, h := range s.history {
		if !h.Timestamp.Before(since) {
			out = append(out, h)
		}
	}
	return out
}

// Load replaces settings and history. The countdown restarts in the current
// mode only when the durations changed.
func (s *Store) Load(settings Settings, history []HistoryItem) {
	s.mutate(true, func() { s.loadLocked(settings, history) })
}

// LoadAt is Load for state read back from disk: it applies only if nothing
// changed since rev and does not call OnChange. It reports whether it applied.
func (s *Store) LoadAt(rev uint64, settings Settings, history []HistoryItem) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.rev != rev {
		return false
	}
	s.loadLocked(settings, history)
	s.rev++
	s.syncTicksLocked()
	return true
}

func (s *Store) loadLocked(settings Settings, history []HistoryItem) {
	if settings.Normalize() != s.pomo.settings {
		s.pomo.ApplySettings(settings)
	}
	s.history = append([]HistoryItem{}, history...)
}

func (s *Store) SelectMode(m Mode) {
	s.mutate(false, func() { s.pomo.SelectMode(m) })
}

// TogglePomodoro starts or pauses the countdown and reports whether it is
// running afterwards.
func (s *Store) TogglePomodoro() bool {
	s.mutate(false, func() { s.pomo.Toggle() })
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pomo.Running()
}

func (s *Store) ResetPomodoro() {
	s.mutate(false, func() { s.pomo.Reset() })
}

func (s *Store) SetLabel(label string) {
	s.mutate(false, func() { s.pomo.SetLabel(label) })
}

func (s *Store) SetTask(id, title string) {
	s.mutate(false, func() { s.pomo.SetTask(id, title) })
}

// SetDuration updates one duration without disturbing the countdown.
func (s *Store) SetDuration(m Mode, minutes int) {
	s.mutate(true, func() { s.pomo.SetDuration(m, minutes) })
}

// ApplySettings replaces the durations and resets the current mode.
func (s *Store) ApplySettings(settings Settings) {
	s.mutate(true, func() { s.pomo.ApplySettings(settings) })
}

// TickPomodoro advances the countdown by one second and returns the history
// item recorded if the interval completed.
func (s *Store) TickPomodoro() *HistoryItem {
	var item *HistoryItem
	s.mu.Lock()
	item = s.pomo.Tick(s.now(), s.newID())
	if item != nil {
		s.history = append([]HistoryItem{*item}, s.history...)
		s.rev++
	}
	s.syncTicksLocked()
	if item != nil && s.onChange != nil {
		s.onChange()
	}
	s.mu.Unlock()
	return item
}

func (s *Store) ToggleStopwatch() bool {
	s.mutate(false, func() { s.sw.Toggle() })
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sw.Running()
}

func (s *Store) ResetStopwatch() {
	s.mutate(false, func() { s.sw.Reset() })
}

func (s *Store) RecordLap() (Lap, bool) {
	var (
		lap Lap
		ok  bool
	)
	s.mutate(false, func() { lap, ok = s.sw.RecordLap() })
	return lap, ok
}

func (s *Store) TickStopwatch() {
	s.mu.Lock()
	s.sw.Tick()
	s.mu.Unlock()
}

// Close stops any running tick source.
func (s *Store) Close() {
	s.mu.Lock()
	src := s.ticks
	s.mu.Unlock()
	if src != nil {
		src.Stop(TrackPomodoro)
		src.Stop(TrackStopwatch)
	}
}

func (s *Store) mutate(persisted bool, fn func()) {
	s.mu.Lock()
	fn()
	if persisted {
		s.rev++
	}
	s.syncTicksLocked()
	if persisted && s.onChange != nil {
		s.onChange()
	}
	s.mu.Unlock()
}

// syncTicksLocked keeps exactly one tick entry per running track. A track
// that cannot be scheduled is paused rather than left running without ticks.
func (s *Store) syncTicksLocked() {
	if s.ticks == nil {
		return
	}
	if !s.pomo.Running() {
		s.ticks.Stop(TrackPomodoro)
	} else if !s.ticks.Active(TrackPomodoro) {
		if err := s.ticks.Start(TrackPomodoro, func() { s.TickPomodoro() }); err != nil {
			s.log.Error("pomodoro tick source failed, pausing", zap.Error(err))
			s.pomo.running = false
		}
	}
	if !s.sw.Running() {
		s.ticks.Stop(TrackStopwatch)
	} else if !s.ticks.Active(TrackStopwatch) {
		if err := s.ticks.Start(TrackStopwatch, s.TickStopwatch); err != nil {
			s.log.Error("stopwatch tick source failed, pausing", zap.Error(err))
			s.sw.running = false
		}
	}
}
