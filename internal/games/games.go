// Package games settles casino-style bets server-side. Each game type
// has a payout calculator taking the client-reported outcome
// parameters; the portal's economy couples the resulting winnings to
// account lifetime, so settlement itself stays a pure computation.
package games

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"veldrith-backend/internal/models"
)

var ErrUnknownGame = errors.New("unknown game type")

// Outcome is a settled wager before it touches any balance
type Outcome struct {
	Winnings   int
	Multiplier float64
}

type minesData struct {
	SafeTiles int `json:"safeTiles"`
	Bombs     int `json:"bombs"`
}

type cashoutData struct {
	CashoutMultiplier float64 `json:"cashoutMultiplier"`
}

type blackjackData struct {
	PlayerTotal int  `json:"playerTotal"`
	DealerTotal int  `json:"dealerTotal"`
	IsBlackjack bool `json:"isBlackjack"`
}

type towerData struct {
	Level int `json:"level"`
}

type plinkoData struct {
	Multiplier float64 `json:"multiplier"`
}

// Settle computes the payout for a bet. Winnings are floored, never
// negative; a losing outcome pays zero and the stake is simply gone.
func Settle(gameType models.GameType, bet int, gameData json.RawMessage) (Outcome, error) {
	switch gameType {
	case models.GameMines:
		var d minesData
		if err := decode(gameData, &d); err != nil {
			return Outcome{}, err
		}
		multiplier := math.Pow(1+float64(d.Bombs)*0.1, float64(d.SafeTiles))
		return payout(bet, multiplier), nil

	case models.GameCrash, models.GameAviamaster:
		var d cashoutData
		if err := decode(gameData, &d); err != nil {
			return Outcome{}, err
		}
		return payout(bet, d.CashoutMultiplier), nil

	case models.GameBlackjack:
		var d blackjackData
		if err := decode(gameData, &d); err != nil {
			return Outcome{}, err
		}
		return payout(bet, blackjackMultiplier(d)), nil

	case models.GameTower:
		var d towerData
		if err := decode(gameData, &d); err != nil {
			return Outcome{}, err
		}
		return payout(bet, math.Pow(1.2, float64(d.Level))), nil

	case models.GamePlinko:
		var d plinkoData
		if err := decode(gameData, &d); err != nil {
			return Outcome{}, err
		}
		return payout(bet, d.Multiplier), nil
	}
	return Outcome{}, fmt.Errorf("%w: %q", ErrUnknownGame, gameType)
}

func blackjackMultiplier(d blackjackData) float64 {
	switch {
	case d.PlayerTotal > 21:
		return 0
	case d.DealerTotal > 21:
		return 2
	case d.IsBlackjack:
		return 2.5
	case d.PlayerTotal > d.DealerTotal:
		return 2
	case d.PlayerTotal == d.DealerTotal:
		return 1 // push, stake back
	default:
		return 0
	}
}

func payout(bet int, multiplier float64) Outcome {
	if multiplier < 0 {
		multiplier = 0
	}
	return Outcome{
		Winnings:   int(math.Floor(float64(bet) * multiplier)),
		Multiplier: multiplier,
	}
}

func decode(raw json.RawMessage, v interface{}) error {
	if len(raw) == 0 {
		return errors.New("missing game data")
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("invalid game data: %w", err)
	}
	return nil
}
