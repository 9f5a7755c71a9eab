package scoring

import (
	"log"

	"github.com/persona-lab/archetype-engine/internal/archetype"
)

// Engine scores quiz responses against one catalogue edition. Apart
// from the read-only catalogue and the logger it holds no state, so a
// single engine is safe for concurrent use.
type Engine struct {
	cat    *archetype.Catalogue
	logger *log.Logger
}

// Engine options

type Option func(*Engine)

// WithLogger routes skip/fallback warnings somewhere other than the
// process-default logger.
func WithLogger(l *log.Logger) Option { return func(e *Engine) { e.logger = l } }

// NewEngine builds an engine over a catalogue. A nil catalogue selects
// the built-in default edition.
func NewEngine(cat *archetype.Catalogue, opts ...Option) *Engine {
	e := &Engine{cat: cat, logger: log.Default()}
	if e.cat == nil {
		e.cat = archetype.Default()
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Catalogue returns the engine's catalogue.
func (e *Engine) Catalogue() *archetype.Catalogue { return e.cat }

func (e *Engine) logf(format string, args ...any) {
	if e.logger != nil {
		e.logger.Printf(format, args...)
	}
}
