package score

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/vizz0r/tic-tac-toe/internal/model"
	"github.com/vizz0r/tic-tac-toe/internal/storage/memory"
	"github.com/vizz0r/tic-tac-toe/internal/testutil"
)

type ServiceTestSuite struct {
	suite.Suite
	storage *memory.Storage
	service *Service
	ctx     context.Context
}

func TestServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ServiceTestSuite))
}

func (s *ServiceTestSuite) SetupTest() {
	s.storage = memory.New()
	s.service = New(s.storage, testutil.NopLogger())
	s.ctx = context.Background()
}

func (s *ServiceTestSuite) TestGetDefaultsToZero() {
	score, err := s.service.Get(s.ctx, "player1")

	s.Require().NoError(err)
	s.Zero(score)
}

func (s *ServiceTestSuite) TestIncrement() {
	score, err := s.service.Increment(s.ctx, "player1")
	s.Require().NoError(err)
	s.Equal(1, score)

	score, err = s.service.Increment(s.ctx, "player1")
	s.Require().NoError(err)
	s.Equal(2, score)
}

func (s *ServiceTestSuite) TestStartMatchRequiresReadySelection() {
	err := s.service.StartMatch(s.ctx, model.Selection{})

	s.ErrorIs(err, model.ErrSelectionNotReady)
}

func (s *ServiceTestSuite) TestStartMatchResetsOnNewPairing() {
	s.Require().NoError(s.storage.SaveScore(s.ctx, "player1", 4))
	s.Require().NoError(s.storage.SaveScore(s.ctx, "player2", 2))

	err := s.service.StartMatch(s.ctx, model.SelectionOf("player1", "player2"))

	s.Require().NoError(err)
	score, err := s.service.Get(s.ctx, "player1")
	s.Require().NoError(err)
	s.Zero(score)
	score, err = s.service.Get(s.ctx, "player2")
	s.Require().NoError(err)
	s.Zero(score)

	last, err := s.storage.GetLastMatch(s.ctx)
	s.Require().NoError(err)
	s.Equal("player1-player2", last)
}

func (s *ServiceTestSuite) TestStartMatchKeepsScoresOnRematch() {
	s.Require().NoError(s.service.StartMatch(s.ctx, model.SelectionOf("player1", "player2")))
	_, err := s.service.Increment(s.ctx, "player1")
	s.Require().NoError(err)

	s.Require().NoError(s.service.StartMatch(s.ctx, model.SelectionOf("player1", "player2")))

	score, err := s.service.Get(s.ctx, "player1")
	s.Require().NoError(err)
	s.Equal(1, score)
}

func (s *ServiceTestSuite) TestStartMatchOrderMatters() {
	s.Require().NoError(s.service.StartMatch(s.ctx, model.SelectionOf("player1", "player2")))
	_, err := s.service.Increment(s.ctx, "player1")
	s.Require().NoError(err)

	s.Require().NoError(s.service.StartMatch(s.ctx, model.SelectionOf("player2", "player1")))

	score, err := s.service.Get(s.ctx, "player1")
	s.Require().NoError(err)
	s.Zero(score)
}

func (s *ServiceTestSuite) TestReset() {
	s.Require().NoError(s.storage.SaveScore(s.ctx, "player1", 7))

	s.Require().NoError(s.service.Reset(s.ctx, "player1", "player2"))

	score, err := s.service.Get(s.ctx, "player1")
	s.Require().NoError(err)
	s.Zero(score)
}
