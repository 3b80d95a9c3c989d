package api

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// A crash bet of 5 cashing out at 3x pays 15, netting +10 days: three
// remaining days become thirteen.
func TestBetShiftsExpirationByNetWinnings(t *testing.T) {
	env := newTestEnv(t)
	password := env.createUser(t, "gambler", 3)
	token := env.login(t, "gambler", password)

	c, rec := env.request(t, http.MethodPost, "/api/gambling/bet", map[string]interface{}{
		"username":  "gambler",
		"token":     token,
		"gameType":  "crash",
		"betAmount": 5,
		"gameData":  map[string]float64{"cashoutMultiplier": 3},
	})
	require.NoError(t, env.handlers.betHandler(c))
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	require.Equal(t, true, body["success"])
	require.Equal(t, float64(13), body["newCredits"])

	result := body["result"].(map[string]interface{})
	require.Equal(t, float64(15), result["winnings"])
	require.NotEmpty(t, result["round_id"])
	require.NotEmpty(t, result["commitment"])

	user, err := env.users.Get("gambler")
	require.NoError(t, err)
	require.Equal(t, env.now.AddDate(0, 0, 13), *user.ExpiresAt)
}

func TestBetRejectsInsufficientCredits(t *testing.T) {
	env := newTestEnv(t)
	password := env.createUser(t, "broke", 2)
	token := env.login(t, "broke", password)

	c, rec := env.request(t, http.MethodPost, "/api/gambling/bet", map[string]interface{}{
		"username":  "broke",
		"token":     token,
		"gameType":  "crash",
		"betAmount": 50,
		"gameData":  map[string]float64{"cashoutMultiplier": 2},
	})
	require.NoError(t, env.handlers.betHandler(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBetRequiresValidSession(t *testing.T) {
	env := newTestEnv(t)
	env.createUser(t, "gambler", 3)

	c, rec := env.request(t, http.MethodPost, "/api/gambling/bet", map[string]interface{}{
		"username":  "gambler",
		"token":     "bogus",
		"gameType":  "crash",
		"betAmount": 1,
		"gameData":  map[string]float64{"cashoutMultiplier": 2},
	})
	require.NoError(t, env.handlers.betHandler(c))
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestBetValidation(t *testing.T) {
	env := newTestEnv(t)
	password := env.createUser(t, "gambler", 3)
	token := env.login(t, "gambler", password)

	// Missing game type
	c, rec := env.request(t, http.MethodPost, "/api/gambling/bet", map[string]interface{}{
		"username": "gambler", "token": token, "betAmount": 1,
	})
	require.NoError(t, env.handlers.betHandler(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	// Unknown game
	c, rec = env.request(t, http.MethodPost, "/api/gambling/bet", map[string]interface{}{
		"username": "gambler", "token": token, "gameType": "roulette", "betAmount": 1,
		"gameData": map[string]float64{},
	})
	require.NoError(t, env.handlers.betHandler(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	// Negative bet
	c, rec = env.request(t, http.MethodPost, "/api/gambling/bet", map[string]interface{}{
		"username": "gambler", "token": token, "gameType": "crash", "betAmount": -5,
		"gameData": map[string]float64{"cashoutMultiplier": 2},
	})
	require.NoError(t, env.handlers.betHandler(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

// A total loss can push the expiration into the past; the account is
// then blocked at the next credential check rather than crashing here.
func TestTotalLossExpiresAccountImmediately(t *testing.T) {
	env := newTestEnv(t)
	password := env.createUser(t, "unlucky", 2)
	token := env.login(t, "unlucky", password)

	c, rec := env.request(t, http.MethodPost, "/api/gambling/bet", map[string]interface{}{
		"username":  "unlucky",
		"token":     token,
		"gameType":  "crash",
		"betAmount": 2,
		"gameData":  map[string]float64{"cashoutMultiplier": 0},
	})
	require.NoError(t, env.handlers.betHandler(c))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, float64(0), decodeBody(t, rec)["newCredits"])

	// Next credential check refuses the expired account
	*env.now = env.now.Add(time.Second)
	c, rec = env.request(t, http.MethodPost, "/api/auth/login", map[string]string{
		"username": "unlucky", "password": password,
	})
	require.NoError(t, env.handlers.loginHandler(c))
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

// Admin accounts play without any balance mutation
func TestAdminBetIsBalanceNoOp(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.users.CreateAdmin("root", "supersecret"))
	token := env.login(t, "root", "supersecret")

	c, rec := env.request(t, http.MethodPost, "/api/gambling/bet", map[string]interface{}{
		"username":  "root",
		"token":     token,
		"gameType":  "crash",
		"betAmount": 1000,
		"gameData":  map[string]float64{"cashoutMultiplier": 0},
	})
	require.NoError(t, env.handlers.betHandler(c))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, float64(-1), decodeBody(t, rec)["newCredits"])

	admin, err := env.users.Get("root")
	require.NoError(t, err)
	require.Nil(t, admin.ExpiresAt)
}
