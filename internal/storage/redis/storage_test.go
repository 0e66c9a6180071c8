package redis

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/vizz0r/tic-tac-toe/internal/model"
)

type StorageSuite struct {
	suite.Suite
	mini    *miniredis.Miniredis
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())

	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})

	s.storage = NewWithClient(client, DefaultConfig())
	s.ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
	if s.mini != nil {
		s.mini.Close()
	}
}

func (s *StorageSuite) TestGetPlayersEmpty() {
	players, err := s.storage.GetPlayers(s.ctx)
	s.Require().NoError(err)
	s.Nil(players)
}

func (s *StorageSuite) TestPlayersRoundTrip() {
	roster := append(model.DefaultPlayers(), model.Player{
		ID:     "player_1700000000000",
		Name:   "Casey",
		Avatar: "data:image/png;base64,aGk=",
	})
	s.Require().NoError(s.storage.SavePlayers(s.ctx, roster))

	got, err := s.storage.GetPlayers(s.ctx)
	s.Require().NoError(err)
	s.Equal(roster, got)
}

func (s *StorageSuite) TestSelectionRoundTrip() {
	sel := model.SelectionOf("player1", "player2")
	s.Require().NoError(s.storage.SaveSelection(s.ctx, sel))

	got, err := s.storage.GetSelection(s.ctx)
	s.Require().NoError(err)
	s.Require().NotNil(got)
	s.Equal(model.PlayerID("player1"), *got.Player1)
	s.Equal(model.PlayerID("player2"), *got.Player2)
}

func (s *StorageSuite) TestSelectionWithEmptySlot() {
	p1 := model.PlayerID("player1")
	s.Require().NoError(s.storage.SaveSelection(s.ctx, model.Selection{Player1: &p1}))

	got, err := s.storage.GetSelection(s.ctx)
	s.Require().NoError(err)
	s.Require().NotNil(got)
	s.Equal(1, got.Size())
	s.Nil(got.Player2)
}

func (s *StorageSuite) TestGetSelectionEmpty() {
	got, err := s.storage.GetSelection(s.ctx)
	s.Require().NoError(err)
	s.Nil(got)
}

func (s *StorageSuite) TestScoreRoundTrip() {
	score, err := s.storage.GetScore(s.ctx, "player1")
	s.Require().NoError(err)
	s.Equal(0, score)

	s.Require().NoError(s.storage.SaveScore(s.ctx, "player1", 7))
	score, err = s.storage.GetScore(s.ctx, "player1")
	s.Require().NoError(err)
	s.Equal(7, score)

	s.Require().NoError(s.storage.DeleteScore(s.ctx, "player1"))
	score, _ = s.storage.GetScore(s.ctx, "player1")
	s.Equal(0, score)
}

func (s *StorageSuite) TestLastMatchRoundTrip() {
	key, err := s.storage.GetLastMatch(s.ctx)
	s.Require().NoError(err)
	s.Equal("", key)

	s.Require().NoError(s.storage.SaveLastMatch(s.ctx, "player1-player2"))
	key, err = s.storage.GetLastMatch(s.ctx)
	s.Require().NoError(err)
	s.Equal("player1-player2", key)
}
