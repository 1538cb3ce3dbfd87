package quizgen

import "sync"

// Session tracks questions generated so far so that prompts can steer
// the model away from repeats. Safe for concurrent use.
type Session struct {
	mu        sync.Mutex
	questions []SessionQuestion
}

func NewSession() *Session {
	return &Session{}
}

// Add records a generated question.
func (s *Session) Add(q *Question) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.questions = append(s.questions, SessionQuestion{Text: q.Text, Answer: q.Answer})
}

// Recent returns up to n of the most recently added questions, oldest
// first.
func (s *Session) Recent(n int) []SessionQuestion {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n <= 0 || len(s.questions) == 0 {
		return nil
	}
	start := len(s.questions) - n
	if start < 0 {
		start = 0
	}
	out := make([]SessionQuestion, len(s.questions)-start)
	copy(out, s.questions[start:])
	return out
}

// Len reports how many questions the session has recorded.
func (s *Session) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.questions)
}
