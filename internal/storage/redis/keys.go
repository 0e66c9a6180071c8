package redis

import (
	"fmt"

	"github.com/vizz0r/tic-tac-toe/internal/model"
)

// Key prefix for all roster-related data
const keyPrefix = "tictactoe"

// playersKey returns the Redis key for the roster document
func playersKey() string {
	return fmt.Sprintf("%s:players", keyPrefix)
}

// selectionKey returns the Redis key for the selected pair
func selectionKey() string {
	return fmt.Sprintf("%s:selected_players", keyPrefix)
}

// scoreKey returns the Redis key for a player's score counter
func scoreKey(id model.PlayerID) string {
	return fmt.Sprintf("%s:score:%s", keyPrefix, id)
}

// lastMatchKey returns the Redis key for the last started pairing
func lastMatchKey() string {
	return fmt.Sprintf("%s:last_match", keyPrefix)
}
