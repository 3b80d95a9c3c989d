package models

import "encoding/json"

// GameType identifies which payout calculator settles a bet
type GameType string

const (
	GameMines      GameType = "mines"
	GameCrash      GameType = "crash"
	GameBlackjack  GameType = "blackjack"
	GameTower      GameType = "tower"
	GamePlinko     GameType = "plinko"
	GameAviamaster GameType = "aviamaster"
)

// BetRequest represents the request body for POST /api/gambling/bet.
// GameData carries per-game outcome parameters and is decoded by the
// matching calculator.
type BetRequest struct {
	Username   string          `json:"username"`
	Token      string          `json:"token"`
	GameType   GameType        `json:"gameType"`
	BetAmount  int             `json:"betAmount"`
	GameData   json.RawMessage `json:"gameData"`
	ClientSeed string          `json:"clientSeed,omitempty"`
	Nonce      int             `json:"nonce,omitempty"`
}

// GameResult is the settled outcome of a single bet
type GameResult struct {
	RoundID    string  `json:"round_id"`
	Winnings   int     `json:"winnings"`
	Multiplier float64 `json:"multiplier"`
	Commitment string  `json:"commitment"`
}
