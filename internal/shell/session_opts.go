package shell

type SessionOpt func(*Session)

func WithPrompt(prompt string) SessionOpt {
	return func(s *Session) {
		s.prompt = prompt
	}
}

// WithGreeting prints msg once when the session starts.
func WithGreeting(msg string) SessionOpt {
	return func(s *Session) {
		s.greeting = msg
	}
}

// WithStartCommands runs lines before the first prompt, e.g. "look".
func WithStartCommands(lines ...string) SessionOpt {
	return func(s *Session) {
		s.start = append(s.start, lines...)
	}
}
