// Package capture tracks short-lived camera capture sessions. A session is
// opened before the camera page is shown, receives at most one photo and
// expires on a deadline, replacing any guesswork about whether the user
// actually took a picture.
package capture

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vizz0r/tic-tac-toe/internal/dependencies/clock"
	"github.com/vizz0r/tic-tac-toe/internal/model"
)

// State is the lifecycle phase of a capture session.
type State string

const (
	StateAwaiting  State = "awaiting_capture"
	StateCaptured  State = "captured"
	StateAbandoned State = "abandoned"
)

// DefaultTTL is how long a session waits for a photo before it is
// considered abandoned.
const DefaultTTL = 2 * time.Minute

// Session is one camera interaction. Photo is set once, by Attach.
type Session struct {
	ID       string    `json:"id"`
	State    State     `json:"state"`
	Deadline time.Time `json:"deadline"`
	Photo    []byte    `json:"-"`
}

// Service holds sessions in memory. A restart abandons every open session.
type Service struct {
	clock  clock.Clock
	logger *slog.Logger
	ttl    time.Duration

	mu       sync.Mutex
	sessions map[string]*Session
}

// New creates a capture service. A non-positive ttl falls back to
// DefaultTTL.
func New(clk clock.Clock, ttl time.Duration, logger *slog.Logger) *Service {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Service{
		clock:    clk,
		logger:   logger,
		ttl:      ttl,
		sessions: make(map[string]*Session),
	}
}

// Begin opens a new session awaiting a photo.
func (s *Service) Begin(ctx context.Context) Session {
	sess := &Session{
		ID:       uuid.NewString(),
		State:    StateAwaiting,
		Deadline: s.clock.Now().Add(s.ttl),
	}

	s.mu.Lock()
	s.sweep()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()

	s.logger.Info("capture session opened", slog.String("capture_id", sess.ID))
	return *sess
}

// Attach stores the captured photo on an awaiting session. A session past
// its deadline or already holding a photo rejects the attach.
func (s *Service) Attach(ctx context.Context, id string, photo []byte) (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return Session{}, model.ErrCaptureNotFound
	}
	s.refresh(sess)
	if sess.State != StateAwaiting {
		return Session{}, model.ErrCaptureFinished
	}
	if len(photo) == 0 {
		return Session{}, model.ErrNoFile
	}

	sess.Photo = append([]byte(nil), photo...)
	sess.State = StateCaptured
	s.logger.Info("capture session completed", slog.String("capture_id", id))
	return *sess, nil
}

// Get returns the session with its state evaluated against the clock.
func (s *Service) Get(ctx context.Context, id string) (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return Session{}, model.ErrCaptureNotFound
	}
	s.refresh(sess)
	return *sess, nil
}

// Take returns a captured session's photo and removes the session, so a
// photo is consumed at most once.
func (s *Service) Take(ctx context.Context, id string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, model.ErrCaptureNotFound
	}
	s.refresh(sess)
	if sess.State != StateCaptured {
		return nil, model.ErrCaptureFinished
	}

	delete(s.sessions, id)
	return sess.Photo, nil
}

// sweep drops sessions a full ttl past their deadline, whatever their
// state, so the map is bounded. The grace window keeps an abandoned
// session observable and a captured photo claimable for a while after
// expiry. Callers hold the lock.
func (s *Service) sweep() {
	cutoff := s.clock.Now().Add(-s.ttl)
	for id, sess := range s.sessions {
		if sess.Deadline.Before(cutoff) {
			delete(s.sessions, id)
		}
	}
}

// refresh abandons an awaiting session past its deadline. Callers hold the
// lock.
func (s *Service) refresh(sess *Session) {
	if sess.State == StateAwaiting && s.clock.Now().After(sess.Deadline) {
		sess.State = StateAbandoned
		s.logger.Info("capture session abandoned", slog.String("capture_id", sess.ID))
	}
}
