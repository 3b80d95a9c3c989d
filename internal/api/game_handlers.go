package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"veldrith-backend/internal/credits"
	"veldrith-backend/internal/games"
	"veldrith-backend/internal/models"
	"veldrith-backend/internal/store"
)

// betHandler handles POST /api/gambling/bet. Winning shifts the
// account expiration forward, losing shifts it backward; admin
// accounts play without any balance mutation.
func (h *Handlers) betHandler(c echo.Context) error {
	var req models.BetRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	if req.Username == "" || req.Token == "" || req.GameType == "" || req.BetAmount == 0 {
		return fail(c, http.StatusBadRequest, "Missing required fields")
	}
	if req.BetAmount < 1 {
		return fail(c, http.StatusBadRequest, "bet amount must be positive")
	}

	if !h.Auth.Validate(req.Username, req.Token) {
		return fail(c, http.StatusUnauthorized, "Invalid session")
	}

	user, err := h.Users.Get(req.Username)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return fail(c, http.StatusNotFound, "User not found")
		}
		c.Logger().Error("get user error: ", err)
		return fail(c, http.StatusInternalServerError, "Internal server error")
	}

	now := h.Users.Now()
	balance := credits.Balance(user, now)
	if !credits.CanAfford(balance, req.BetAmount) {
		return fail(c, http.StatusBadRequest, "Insufficient credits")
	}

	outcome, err := games.Settle(req.GameType, req.BetAmount, req.GameData)
	if err != nil {
		if errors.Is(err, games.ErrUnknownGame) {
			return fail(c, http.StatusBadRequest, "unknown game type")
		}
		return fail(c, http.StatusBadRequest, err.Error())
	}

	round, err := games.NewRound(req.ClientSeed, req.Nonce)
	if err != nil {
		c.Logger().Error("round generation error: ", err)
		return fail(c, http.StatusInternalServerError, "Internal server error")
	}

	newCredits := balance
	if !user.IsAdmin() && user.ExpiresAt != nil {
		newExpiration := credits.Shifted(*user.ExpiresAt, req.BetAmount, outcome.Winnings)
		if err := h.Users.SetExpiration(req.Username, newExpiration); err != nil {
			c.Logger().Error("set expiration error: ", err)
			return fail(c, http.StatusInternalServerError, "Internal server error")
		}
		shifted := *user
		shifted.ExpiresAt = &newExpiration
		newCredits = credits.Balance(&shifted, now)
	}

	h.audit(c, req.Username, models.ActionGameBet, string(req.GameType), map[string]interface{}{
		"bet":        req.BetAmount,
		"winnings":   outcome.Winnings,
		"multiplier": outcome.Multiplier,
		"round_id":   round.ID,
	})

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"result": models.GameResult{
			RoundID:    round.ID,
			Winnings:   outcome.Winnings,
			Multiplier: outcome.Multiplier,
			Commitment: round.Commitment,
		},
		"newCredits": newCredits,
	})
}
