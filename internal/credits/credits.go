// Package credits derives a spendable balance from account lifetime:
// each whole day remaining before expiration is one credit. Nothing is
// stored; the projection reads the account's expiration on demand.
package credits

import (
	"time"

	"veldrith-backend/internal/models"
)

// Unlimited is the admin balance sentinel, distinct from any finite
// balance. Displayed as "∞" and never decremented.
const Unlimited = -1

// Day is the credit unit
const Day = 24 * time.Hour

// Balance returns the user's spendable credits at the given instant.
// Admin accounts are unlimited; everyone else gets the whole days left
// before expiration, floored at zero. An expiration exactly equal to
// now yields zero.
func Balance(u *models.User, now time.Time) int {
	if u.IsAdmin() || u.ExpiresAt == nil {
		return Unlimited
	}
	remaining := u.ExpiresAt.Sub(now)
	if remaining <= 0 {
		return 0
	}
	days := int(remaining / Day)
	if remaining%Day > 0 {
		days++
	}
	return days
}

// CanAfford reports whether the balance covers the bet. Unlimited
// covers everything.
func CanAfford(balance, bet int) bool {
	return balance == Unlimited || bet <= balance
}

// Shifted returns the account expiration after settling a wager: a bet
// of `bet` paying out `winnings` nets to a (winnings - bet) day shift,
// forward or backward. Losing can push the expiration into the past,
// which makes the account immediately expired; callers treat that as
// an auth-blocking condition, not an error here.
func Shifted(expiresAt time.Time, bet, winnings int) time.Time {
	return expiresAt.Add(time.Duration(winnings-bet) * Day)
}
