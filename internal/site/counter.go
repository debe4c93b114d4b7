package site

import (
	"math"
	"strings"
	"time"
)

// CounterDuration is how long a stat takes to count up.
const CounterDuration = 1500 * time.Millisecond

// Counter animates a stat such as "1,250+" from zero to its value.
type Counter struct {
	Target   float64
	Plus     bool
	Percent  bool
	Duration time.Duration
}

// ParseCounter keeps only the digits and dots of text as the target and
// remembers whether a plus or percent sign was present.
func ParseCounter(text string) (Counter, error) {
	text = strings.TrimSpace(text)
	var num strings.Builder
	for _, r := range text {
		if (r >= '0' && r <= '9') || r == '.' {
			num.WriteRune(r)
		}
	}
	target, err := parseLeadingFloat(num.String())
	if err != nil {
		return Counter{}, err
	}
	return Counter{
		Target:   target,
		Plus:     strings.Contains(text, "+"),
		Percent:  strings.Contains(text, "%"),
		Duration: CounterDuration,
	}, nil
}

// EaseOutCubic maps progress p in [0, 1] onto a decelerating curve.
func EaseOutCubic(p float64) float64 {
	return 1 - math.Pow(1-p, 3)
}

func (c Counter) progress(elapsed time.Duration) float64 {
	if c.Duration <= 0 {
		return 1
	}
	return math.Min(math.Max(float64(elapsed)/float64(c.Duration), 0), 1)
}

// Value is the whole number shown after elapsed.
func (c Counter) Value(elapsed time.Duration) int {
	return int(math.Floor(EaseOutCubic(c.progress(elapsed)) * c.Target))
}

// At renders the counter text after elapsed.
func (c Counter) At(elapsed time.Duration) string {
	s := Thousands(c.Value(elapsed))
	if c.Plus {
		s += "+"
	}
	if c.Percent {
		s += "%"
	}
	return s
}

func (c Counter) Done(elapsed time.Duration) bool { return c.progress(elapsed) >= 1 }

// VisibleThreshold is the share of a stat that must be on screen before it
// starts counting.
const VisibleThreshold = 0.5

// Stat is one counter on the page; it animates the first time it becomes
// visible and never again.
type Stat struct {
	Counter  Counter
	Original string
	started  bool
	start    time.Duration
}

func NewStat(text string) (*Stat, error) {
	c, err := ParseCounter(text)
	if err != nil {
		return nil, err
	}
	return &Stat{Counter: c, Original: text}, nil
}

// Observe reports how much of the stat is visible at time now. It returns
// true only on the call that starts the animation.
func (s *Stat) Observe(visible float64, now time.Duration) bool {
	if s.started || visible < VisibleThreshold {
		return false
	}
	s.started = true
	s.start = now
	return true
}

func (s *Stat) Started() bool { return s.started }

// Text is what the stat shows at time now; before it starts that is the
// original text.
func (s *Stat) Text(now time.Duration) string {
	if !s.started {
		return s.Original
	}
	return s.Counter.At(now - s.start)
}
