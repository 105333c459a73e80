package timer

// Stopwatch counts elapsed seconds and records laps, most recent first.
type Stopwatch struct {
	elapsed int
	running bool
	laps    []int
}

// Lap is a recorded split. Number 1 is the first lap recorded.
type Lap struct {
	Number  int `json:"number"`
	Seconds int `json:"seconds"`
}

func (s *Stopwatch) Elapsed() int  { return s.elapsed }
func (s *Stopwatch) Running() bool { return s.running }

// Toggle flips the running flag without resetting elapsed time.
func (s *Stopwatch) Toggle() bool {
	s.running = !s.running
	return s.running
}

// Tick adds one second while running.
func (s *Stopwatch) Tick() {
	if s.running {
		s.elapsed++
	}
}

// Reset stops the stopwatch, zeroes the elapsed time and clears laps.
func (s *Stopwatch) Reset() {
	s.running = false
	s.elapsed = 0
	s.laps = nil
}

// RecordLap prepends the current elapsed time. Laps are only taken while running.
func (s *Stopwatch) RecordLap() (Lap, bool) {
	if !s.running {
		return Lap{}, false
	}
	s.laps = append([]int{s.elapsed}, s.laps...)
	return Lap{Number: len(s.laps), Seconds: s.elapsed}, true
}

// Laps returns the laps most recent first, numbered from len down to 1.
func (s *Stopwatch) Laps() []Lap {
	out := make([]Lap, len(s.laps))
	for i, secs := range s.laps {
		out[i] = Lap{Number: len(s.laps) - i, Seconds: secs}
	}
	return out
}
