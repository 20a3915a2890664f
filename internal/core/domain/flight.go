package domain

// Flight is a submitted question whose answer is awaited off the event loop.
// Await may be called from any goroutine; it touches no shared state.
type Flight struct {
	// LocalID is the live exchange this flight will update.
	LocalID uint64

	// Generation identifies the submission that started the flight.
	Generation uint64

	// Question is what was asked.
	Question Question

	await func() (string, error)
}

// NewFlight creates a flight that resolves by calling await.
func NewFlight(localID, generation uint64, question Question, await func() (string, error)) *Flight {
	return &Flight{
		LocalID:    localID,
		Generation: generation,
		Question:   question,
		await:      await,
	}
}

// Await blocks until the backend responds or the flight's token is cancelled.
func (f *Flight) Await() Completion {
	answer, err := f.await()
	return Completion{
		LocalID:    f.LocalID,
		Generation: f.Generation,
		SessionID:  f.Question.SessionID,
		Answer:     answer,
		Err:        err,
	}
}

// Completion is the raw result of a flight, before classification.
type Completion struct {
	LocalID    uint64
	Generation uint64
	SessionID  string
	Answer     string
	Err        error
}

// Outcome describes what applying a Completion did.
type Outcome struct {
	LocalID   uint64
	SessionID string

	// Applied is false when the completion was stale and discarded.
	Applied bool

	// Err is the failure, if any. Kind is meaningful only when Err is set.
	Err  error
	Kind ErrorKind

	// Fatal means the failure could not be rendered inline and the
	// workspace must notify the user and reset navigation.
	Fatal bool

	// ClearInput is set after a successful answer.
	ClearInput bool
}
