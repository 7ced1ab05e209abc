// Package model defines shared data structures.
package model

// Config defines practice settings resolved from defaults, the config file
// and command-line flags.
type Config struct {
	Curriculum    string
	ContentLength int
	WordLength    int
	FocusWeight   float64
	OnFinish      string
	Backend       string
	StatePath     string
	NatsURL       string
	Subject       string
	Reset         bool
}

// StatsConfig defines filters and options for stats output.
type StatsConfig struct {
	Lesson string
	Window int
	Height int
}

// DefaultConfig returns the built-in practice settings.
func DefaultConfig() Config {
	return Config{
		Curriculum:    "bone",
		ContentLength: 100,
		WordLength:    5,
		FocusWeight:   1,
		OnFinish:      "repeat",
		Backend:       "json",
		Subject:       "keydrill.records",
	}
}
