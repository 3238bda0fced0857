package quiz

import "time"

// SessionSize is the number of questions served per session.
const SessionSize = 10

// PassingScore is the score at which the results verdict turns positive.
const PassingScore = 8

// NoSelection marks a question that has not been answered yet.
const NoSelection = -1

// State is the engine's position in the quiz lifecycle.
type State int

const (
	StateNotStarted State = iota // No session yet
	StateUnanswered              // In progress, waiting for an answer
	StateAnswered                // In progress, feedback shown
	StateFinished                // Final score available
)

func (s State) String() string {
	switch s {
	case StateNotStarted:
		return "not-started"
	case StateUnanswered:
		return "unanswered"
	case StateAnswered:
		return "answered"
	case StateFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// Session is one attempt at the quiz.
type Session struct {
	// ID correlates log lines for this attempt.
	ID string

	// Questions holds the drawn questions with shuffled options and
	// remapped answers.
	Questions []Question

	// CurrentIndex is the position of the active question.
	CurrentIndex int

	// Score is the number of correct answers so far.
	Score int

	// Selected is the option picked for the active question, or NoSelection.
	Selected int

	// FeedbackShown is true once the active question has been answered.
	FeedbackShown bool

	// Finished is true after advancing past the last question.
	Finished bool

	StartedAt time.Time
}

// Current returns the active question.
func (s *Session) Current() Question {
	return s.Questions[s.CurrentIndex]
}

// Total returns the number of questions in the session.
func (s *Session) Total() int {
	return len(s.Questions)
}

// LastAnswerCorrect reports whether the recorded pick is correct.
func (s *Session) LastAnswerCorrect() bool {
	return s.FeedbackShown && s.Current().IsCorrect(s.Selected)
}

// IsLast reports whether the active question is the final one.
func (s *Session) IsLast() bool {
	return s.CurrentIndex+1 >= len(s.Questions)
}

// Verdict returns the results message for the final score.
func (s *Session) Verdict() string {
	if s.Score >= PassingScore {
		return "Advanced Security Consciousness."
	}
	return "Further training recommended."
}
