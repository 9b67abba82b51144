package engine

type EngineOpt func(*Engine)

// WithPublisher broadcasts every non-empty channel after each tick.
func WithPublisher(p Publisher) EngineOpt {
	return func(e *Engine) {
		e.publisher = p
	}
}

// WithAutosave saves the world to path after every command.
func WithAutosave(path string) EngineOpt {
	return func(e *Engine) {
		e.autosave = path
	}
}
