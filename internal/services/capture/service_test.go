package capture

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/vizz0r/tic-tac-toe/internal/dependencies/mocks"
	"github.com/vizz0r/tic-tac-toe/internal/model"
	"github.com/vizz0r/tic-tac-toe/internal/testutil"
)

type ServiceTestSuite struct {
	suite.Suite
	clock   *mocks.MockClock
	service *Service
	ctx     context.Context
}

func TestServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ServiceTestSuite))
}

func (s *ServiceTestSuite) SetupTest() {
	s.clock = mocks.NewMockClock(time.UnixMilli(1700000000000))
	s.service = New(s.clock, DefaultTTL, testutil.NopLogger())
	s.ctx = context.Background()
}

func (s *ServiceTestSuite) TestBeginOpensAwaitingSession() {
	sess := s.service.Begin(s.ctx)

	s.NotEmpty(sess.ID)
	s.Equal(StateAwaiting, sess.State)
	s.Equal(s.clock.Now().Add(DefaultTTL), sess.Deadline)
}

func (s *ServiceTestSuite) TestAttachStoresPhoto() {
	sess := s.service.Begin(s.ctx)

	got, err := s.service.Attach(s.ctx, sess.ID, []byte("photo"))

	s.Require().NoError(err)
	s.Equal(StateCaptured, got.State)

	photo, err := s.service.Take(s.ctx, sess.ID)
	s.Require().NoError(err)
	s.Equal([]byte("photo"), photo)
}

func (s *ServiceTestSuite) TestAttachRejectsEmptyPhoto() {
	sess := s.service.Begin(s.ctx)

	_, err := s.service.Attach(s.ctx, sess.ID, nil)

	s.ErrorIs(err, model.ErrNoFile)
}

func (s *ServiceTestSuite) TestAttachUnknownSession() {
	_, err := s.service.Attach(s.ctx, "nope", []byte("photo"))

	s.ErrorIs(err, model.ErrCaptureNotFound)
}

func (s *ServiceTestSuite) TestAttachAfterDeadlineFails() {
	sess := s.service.Begin(s.ctx)
	s.clock.Advance(DefaultTTL + time.Second)

	_, err := s.service.Attach(s.ctx, sess.ID, []byte("photo"))

	s.ErrorIs(err, model.ErrCaptureFinished)

	got, err := s.service.Get(s.ctx, sess.ID)
	s.Require().NoError(err)
	s.Equal(StateAbandoned, got.State)
}

func (s *ServiceTestSuite) TestAttachTwiceFails() {
	sess := s.service.Begin(s.ctx)
	_, err := s.service.Attach(s.ctx, sess.ID, []byte("one"))
	s.Require().NoError(err)

	_, err = s.service.Attach(s.ctx, sess.ID, []byte("two"))

	s.ErrorIs(err, model.ErrCaptureFinished)
}

func (s *ServiceTestSuite) TestCapturedSessionSurvivesDeadline() {
	sess := s.service.Begin(s.ctx)
	_, err := s.service.Attach(s.ctx, sess.ID, []byte("photo"))
	s.Require().NoError(err)
	s.clock.Advance(DefaultTTL + time.Hour)

	got, err := s.service.Get(s.ctx, sess.ID)

	s.Require().NoError(err)
	s.Equal(StateCaptured, got.State)
}

func (s *ServiceTestSuite) TestTakeConsumesSession() {
	sess := s.service.Begin(s.ctx)
	_, err := s.service.Attach(s.ctx, sess.ID, []byte("photo"))
	s.Require().NoError(err)

	_, err = s.service.Take(s.ctx, sess.ID)
	s.Require().NoError(err)

	_, err = s.service.Take(s.ctx, sess.ID)
	s.ErrorIs(err, model.ErrCaptureNotFound)
}

func (s *ServiceTestSuite) TestBeginSweepsStaleSessions() {
	stale := s.service.Begin(s.ctx)
	captured := s.service.Begin(s.ctx)
	_, err := s.service.Attach(s.ctx, captured.ID, []byte("photo"))
	s.Require().NoError(err)

	s.clock.Advance(2*DefaultTTL + time.Second)
	s.service.Begin(s.ctx)

	_, err = s.service.Get(s.ctx, stale.ID)
	s.ErrorIs(err, model.ErrCaptureNotFound)
	_, err = s.service.Get(s.ctx, captured.ID)
	s.ErrorIs(err, model.ErrCaptureNotFound)
}

func (s *ServiceTestSuite) TestAbandonedSessionObservableWithinGraceWindow() {
	sess := s.service.Begin(s.ctx)
	s.clock.Advance(DefaultTTL + time.Second)
	s.service.Begin(s.ctx)

	got, err := s.service.Get(s.ctx, sess.ID)

	s.Require().NoError(err)
	s.Equal(StateAbandoned, got.State)
}

func (s *ServiceTestSuite) TestTakeBeforeCaptureFails() {
	sess := s.service.Begin(s.ctx)

	_, err := s.service.Take(s.ctx, sess.ID)

	s.ErrorIs(err, model.ErrCaptureFinished)
}
