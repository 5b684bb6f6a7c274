package game

import (
	"io"
	"math/rand/v2"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/pokerhands/internal/history"
	"github.com/lox/pokerhands/internal/randutil"
)

// Option configures a Game during creation.
type Option func(*config)

type config struct {
	id       string
	rng      *rand.Rand
	clock    quartz.Clock
	logger   *log.Logger
	recorder history.Recorder
}

func defaultConfig() config {
	return config{
		clock:  quartz.NewReal(),
		logger: log.NewWithOptions(io.Discard, log.Options{}),
	}
}

// WithID fixes the game ID instead of generating one. Rounds recorded under
// an existing ID continue its sequence numbers.
func WithID(id string) Option {
	return func(c *config) { c.id = id }
}

// WithSeed deals from a deterministic deck. A zero seed picks a time-based one.
func WithSeed(seed int64) Option {
	return func(c *config) { c.rng = randutil.New(randutil.Seed(seed)) }
}

// WithClock sets the clock used to timestamp deals.
func WithClock(clock quartz.Clock) Option {
	return func(c *config) { c.clock = clock }
}

func WithLogger(logger *log.Logger) Option {
	return func(c *config) { c.logger = logger }
}

// WithRecorder records every deal and roster change.
func WithRecorder(r history.Recorder) Option {
	return func(c *config) { c.recorder = r }
}
