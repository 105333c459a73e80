package timer

import (
	"errors"
	"fmt"
	"testing"
	"time"
)

var fixedNow = time.Date(2024, time.January, 5, 10, 0, 0, 0, time.UTC)

func TestPomodoroInitialState(t *testing.T) {
	p := NewPomodoro(DefaultSettings())
	if p.Mode() != Work || p.Running() || p.Remaining() != 25*60 {
		t.Fatalf("unexpected initial state mode=%s running=%v remaining=%d", p.Mode(), p.Running(), p.Remaining())
	}
	if p.Progress() != 0 {
		t.Fatalf("expected zero progress, got %f", p.Progress())
	}
}

func TestPomodoroWorkSessionCompletes(t *testing.T) {
	p := NewPomodoro(Settings{Work: 1, Short: 5, Long: 15})
	p.Toggle()

	var done []*HistoryItem
	prev := p.Remaining()
	for i := 0; i < 60; i++ {
		item := p.Tick(fixedNow, fmt.Sprintf("h%d", i))
		if p.Remaining() != prev-1 {
			t.Fatalf("tick %d: expected remaining %d, got %d", i, prev-1, p.Remaining())
		}
		prev = p.Remaining()
		if item != nil {
			done = append(done, item)
		}
	}
	if p.Remaining() != 0 || p.Running() {
		t.Fatalf("expected stopped at zero, remaining=%d running=%v", p.Remaining(), p.Running())
	}
	if len(done) != 1 {
		t.Fatalf("expected exactly one completion, got %d", len(done))
	}
	h := done[0]
	if h.Mode != Work || h.Duration != 60 || h.Label != "Work" {
		t.Fatalf("unexpected history item %+v", h)
	}
	if p.Progress() != 1 {
		t.Fatalf("expected full progress, got %f", p.Progress())
	}

	// Paused at zero: further ticks do nothing.
	if item := p.Tick(fixedNow, "x"); item != nil || p.Remaining() != 0 {
		t.Fatalf("tick while paused must not change state")
	}
}

func TestPomodoroBreakLabelAndSessionLabel(t *testing.T) {
	p := NewPomodoro(Settings{Work: 1, Short: 1, Long: 1})
	p.SelectMode(Short)
	p.Toggle()
	var item *HistoryItem
	for i := 0; i < 60; i++ {
		item = p.Tick(fixedNow, "b")
	}
	if item == nil || item.Label != "Break" || item.Mode != Short {
		t.Fatalf("unexpected break item %+v", item)
	}

	p.SelectMode(Work)
	p.SetLabel("Deep work")
	p.SetTask("n1", "Project Zen Layout")
	p.Toggle()
	for i := 0; i < 60; i++ {
		item = p.Tick(fixedNow, "w")
	}
	if item.Label != "Deep work" || item.TaskID != "n1" || item.TaskTitle != "Project Zen Layout" {
		t.Fatalf("unexpected labelled item %+v", item)
	}
}

func TestPomodoroSelectModeStopsAndResets(t *testing.T) {
	p := NewPomodoro(DefaultSettings())
	p.Toggle()
	p.Tick(fixedNow, "")
	p.SelectMode(Long)
	if p.Running() || p.Remaining() != 15*60 || p.Mode() != Long {
		t.Fatalf("unexpected state after select: %s %v %d", p.Mode(), p.Running(), p.Remaining())
	}
}

func TestPomodoroToggleKeepsCountdown(t *testing.T) {
	p := NewPomodoro(DefaultSettings())
	p.Toggle()
	p.Tick(fixedNow, "")
	p.Tick(fixedNow, "")
	p.Toggle()
	if p.Remaining() != 25*60-2 {
		t.Fatalf("pause changed countdown: %d", p.Remaining())
	}
	p.Reset()
	if p.Remaining() != 25*60 || p.Running() {
		t.Fatalf("reset did not restore countdown")
	}
}

func TestPomodoroSettings(t *testing.T) {
	p := NewPomodoro(DefaultSettings())
	p.Toggle()
	p.Tick(fixedNow, "")

	// Changing another mode's duration leaves the running countdown alone.
	p.SetDuration(Short, 10)
	if !p.Running() || p.Remaining() != 25*60-1 {
		t.Fatalf("set duration disturbed countdown: running=%v remaining=%d", p.Running(), p.Remaining())
	}

	p.ApplySettings(Settings{Work: 50, Short: 10, Long: 0})
	if p.Running() || p.Remaining() != 50*60 {
		t.Fatalf("apply did not reset current mode: running=%v remaining=%d", p.Running(), p.Remaining())
	}
	if p.Settings().Long != 1 {
		t.Fatalf("expected long clamped to 1, got %d", p.Settings().Long)
	}
}

func TestProgressClamped(t *testing.T) {
	p := NewPomodoro(Settings{Work: 10, Short: 5, Long: 15})
	p.SetDuration(Work, 1)
	if p.Progress() != 0 {
		t.Fatalf("expected progress clamped to 0, got %f", p.Progress())
	}
}

func TestStopwatchLaps(t *testing.T) {
	var sw Stopwatch
	if _, ok := sw.RecordLap(); ok {
		t.Fatalf("lap while stopped should be refused")
	}
	sw.Toggle()
	for i := 0; i < 5; i++ {
		sw.Tick()
	}
	sw.RecordLap()
	for i := 0; i < 3; i++ {
		sw.Tick()
	}
	sw.RecordLap()

	sw.Toggle()
	sw.Tick()
	if sw.Elapsed() != 8 {
		t.Fatalf("expected elapsed 8 after pause, got %d", sw.Elapsed())
	}

	laps := sw.Laps()
	if len(laps) != 2 || laps[0].Number != 2 || laps[0].Seconds != 8 || laps[1].Number != 1 || laps[1].Seconds != 5 {
		t.Fatalf("unexpected laps %+v", laps)
	}

	sw.Toggle()
	sw.Reset()
	if sw.Elapsed() != 0 || len(sw.Laps()) != 0 || sw.Running() {
		t.Fatalf("reset did not clear stopwatch")
	}
}

type fakeTicks struct {
	active map[Track]func()
	starts map[Track]int
}

func newFakeTicks() *fakeTicks {
	return &fakeTicks{active: map[Track]func(){}, starts: map[Track]int{}}
}

func (f *fakeTicks) Start(track Track, fn func()) error {
	f.active[track] = fn
	f.starts[track]++
	return nil
}

func (f *fakeTicks) Stop(track Track) { delete(f.active, track) }

func (f *fakeTicks) Active(track Track) bool {
	_, ok := f.active[track]
	return ok
}

func TestStoreDrivesSingleTickSource(t *testing.T) {
	ticks := newFakeTicks()
	ids := 0
	s := NewStore(Settings{Work: 1, Short: 5, Long: 15}, nil,
		WithTickSource(ticks),
		WithClock(func() time.Time { return fixedNow }),
		WithIDs(func() string { ids++; return fmt.Sprintf("h%d", ids) }),
	)
	changes := 0
	s.OnChange(func() { changes++ })

	s.TogglePomodoro()
	s.SetLabel("focus")
	if ticks.starts[TrackPomodoro] != 1 {
		t.Fatalf("expected a single pomodoro entry, got %d starts", ticks.starts[TrackPomodoro])
	}
	for i := 0; i < 60; i++ {
		fn, ok := ticks.active[TrackPomodoro]
		if !ok {
			t.Fatalf("tick source stopped early at %d", i)
		}
		fn()
	}
	if ticks.Active(TrackPomodoro) {
		t.Fatalf("expected tick source removed on completion")
	}
	hist := s.History()
	if len(hist) != 1 || hist[0].Label != "focus" || hist[0].Duration != 60 {
		t.Fatalf("unexpected history %+v", hist)
	}
	if changes != 1 {
		t.Fatalf("expected one persisted change, got %d", changes)
	}

	s.ToggleStopwatch()
	if !ticks.Active(TrackStopwatch) {
		t.Fatalf("expected stopwatch tick source")
	}
	ticks.active[TrackStopwatch]()
	s.ResetStopwatch()
	if ticks.Active(TrackStopwatch) || s.Stopwatch().Elapsed != 0 {
		t.Fatalf("reset should stop the stopwatch track")
	}
}

func TestStoreHistoryMostRecentFirst(t *testing.T) {
	now := fixedNow
	s := NewStore(Settings{Work: 1, Short: 1, Long: 1}, nil, WithClock(func() time.Time { return now }))
	for _, m := range []Mode{Work, Short} {
		s.SelectMode(m)
		s.TogglePomodoro()
		for i := 0; i < 60; i++ {
			s.TickPomodoro()
		}
		now = now.Add(time.Hour)
	}
	hist := s.History()
	if len(hist) != 2 || hist[0].Mode != Short || hist[1].Mode != Work {
		t.Fatalf("unexpected order %+v", hist)
	}
	if got := s.HistorySince(fixedNow.Add(30 * time.Minute)); len(got) != 1 {
		t.Fatalf("expected one item in window, got %d", len(got))
	}
}

func TestStoreLoadKeepsRunningCountdown(t *testing.T) {
	settings := Settings{Work: 1, Short: 5, Long: 15}
	s := NewStore(settings, nil, WithClock(func() time.Time { return fixedNow }))
	defer s.Close()
	s.TogglePomodoro()
	for i := 0; i < 10; i++ {
		s.TickPomodoro()
	}

	s.Load(settings, []HistoryItem{{ID: "x", Mode: Work, Duration: 60}})
	if st := s.Pomodoro(); !st.Running || st.Remaining != 50 {
		t.Fatalf("reload with the same settings must not reset, got %+v", st)
	}
	if len(s.History()) != 1 {
		t.Fatalf("expected loaded history")
	}

	s.Load(Settings{Work: 2, Short: 5, Long: 15}, nil)
	if st := s.Pomodoro(); st.Running || st.Remaining != 120 {
		t.Fatalf("changed settings reset the countdown, got %+v", st)
	}
}

func TestTickerSingleEntryPerTrack(t *testing.T) {
	tk := NewTicker()
	defer tk.Close()

	if err := tk.Start(TrackPomodoro, func() {}); err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := tk.Start(TrackPomodoro, func() {}); err != nil {
		t.Fatalf("restart: %v", err)
	}
	if n := len(tk.cron.Entries()); n != 1 {
		t.Fatalf("expected one cron entry, got %d", n)
	}
	tk.Stop(TrackPomodoro)
	if tk.Active(TrackPomodoro) || len(tk.cron.Entries()) != 0 {
		t.Fatalf("expected entry removed")
	}
}

func TestSteadyScheduleAnchorsToStart(t *testing.T) {
	start := fixedNow.Add(900 * time.Millisecond)
	s := steady{start: start, period: time.Second}

	for _, tc := range []struct {
		at, want time.Time
	}{
		{at: start, want: start.Add(time.Second)},
		{at: start.Add(100 * time.Millisecond), want: start.Add(time.Second)},
		{at: start.Add(time.Second), want: start.Add(2 * time.Second)},
		{at: start.Add(2500 * time.Millisecond), want: start.Add(3 * time.Second)},
		{at: start.Add(-time.Minute), want: start.Add(time.Second)},
	} {
		if got := s.Next(tc.at); !got.Equal(tc.want) {
			t.Fatalf("Next(%s) = %s, want %s", tc.at.Format("15:04:05.000"), got.Format("15:04:05.000"), tc.want.Format("15:04:05.000"))
		}
	}
}

func TestTickerFirstTickAfterFullSecond(t *testing.T) {
	tk := NewTicker()
	defer tk.Close()

	// Land the start just before a wall-clock second, where rounding to the
	// next whole second would fire almost immediately.
	now := time.Now()
	time.Sleep(now.Truncate(time.Second).Add(time.Second - 100*time.Millisecond).Sub(now))

	ticked := make(chan time.Time, 4)
	started := time.Now()
	if err := tk.Start(TrackStopwatch, func() { ticked <- time.Now() }); err != nil {
		t.Fatalf("start: %v", err)
	}
	select {
	case at := <-ticked:
		if d := at.Sub(started); d < 950*time.Millisecond {
			t.Fatalf("first tick after %s, want a full second", d)
		}
	case <-time.After(3 * time.Second):
		t.Fatalf("no tick")
	}
}

func TestTickerRejectsNilFunc(t *testing.T) {
	tk := NewTicker()
	defer tk.Close()
	if err := tk.Start(TrackPomodoro, nil); err == nil {
		t.Fatalf("expected an error for a nil tick func")
	}
	if tk.Active(TrackPomodoro) {
		t.Fatalf("failed start must not leave an entry")
	}
}

type brokenTicks struct{ fakeTicks }

func (b *brokenTicks) Start(Track, func()) error { return errors.New("no scheduler") }

func TestStorePausesWhenTickSourceFails(t *testing.T) {
	s := NewStore(DefaultSettings(), nil, WithTickSource(&brokenTicks{*newFakeTicks()}))
	if s.TogglePomodoro() {
		t.Fatalf("pomodoro must not report running without ticks")
	}
	if s.ToggleStopwatch() {
		t.Fatalf("stopwatch must not report running without ticks")
	}
	if s.Pomodoro().Running || s.Stopwatch().Running {
		t.Fatalf("expected both tracks paused")
	}
}

func TestStoreLoadAtSkipsWhenChanged(t *testing.T) {
	s := NewStore(DefaultSettings(), nil)
	changes := 0
	s.OnChange(func() { changes++ })

	rev := s.Revision()
	s.SetDuration(Long, 20)
	if s.LoadAt(rev, DefaultSettings(), []HistoryItem{{ID: "x"}}) {
		t.Fatalf("load over a newer local change must be refused")
	}
	if s.Settings().Long != 20 || len(s.History()) != 0 {
		t.Fatalf("local change lost: %+v", s.Settings())
	}

	if !s.LoadAt(s.Revision(), DefaultSettings(), []HistoryItem{{ID: "x"}}) {
		t.Fatalf("expected load at current revision")
	}
	if len(s.History()) != 1 || changes != 1 {
		t.Fatalf("expected history loaded without a change callback, got %d callbacks", changes)
	}
}

func TestParseMode(t *testing.T) {
	if m, err := ParseMode(" Short "); err != nil || m != Short {
		t.Fatalf("unexpected parse %v %v", m, err)
	}
	if _, err := ParseMode("nap"); err == nil {
		t.Fatalf("expected error")
	}
}
