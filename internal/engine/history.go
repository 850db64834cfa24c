package engine

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultHistoryLimit bounds the per-session transcript; older messages are
// dropped from the front.
const DefaultHistoryLimit = 20

// contextWindow is how many trailing messages feed the cache key and the
// generative prompt.
const contextWindow = 5

// Message is one half of a conversation turn.
type Message struct {
	ID       string
	FromUser bool
	Text     string
	At       time.Time
}

func newMessage(fromUser bool, text string, at time.Time) Message {
	return Message{ID: uuid.NewString(), FromUser: fromUser, Text: text, At: at}
}

// session holds per-conversation state: the bounded transcript and the
// generation counter used to discard generative results that a newer message
// has superseded.
type session struct {
	mu      sync.Mutex
	gen     uint64
	history []Message
	limit   int
}

func newSession(limit int) *session {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return &session{limit: limit}
}

// begin marks the start of a turn and returns its generation number.
func (s *session) begin() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	return s.gen
}

// current reports whether gen is still the newest turn.
func (s *session) current(gen uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gen == gen
}

func (s *session) append(m Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = append(s.history, m)
	if over := len(s.history) - s.limit; over > 0 {
		s.history = append([]Message(nil), s.history[over:]...)
	}
}

// tail returns up to n trailing messages, oldest first.
func (s *session) tail(n int) []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	start := len(s.history) - n
	if start < 0 {
		start = 0
	}
	out := make([]Message, len(s.history)-start)
	copy(out, s.history[start:])
	return out
}

func (e *Engine) session(id string) *session {
	e.sessMu.Lock()
	defer e.sessMu.Unlock()
	s, ok := e.sessions[id]
	if !ok {
		s = newSession(e.historyLimit)
		e.sessions[id] = s
	}
	return s
}
