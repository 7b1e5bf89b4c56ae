package domain

import "time"

// PendingCode is a transient record holding a one-time verification code,
// created on sign-up/sign-in and consumed on verify. It lives in Redis
// keyed by email, not in the relational store.
type PendingCode struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Avatar     string `json:"avatar"`
	Code       string `json:"code"`
	Expiration int64  `json:"expiration"` // epoch milliseconds
}

// ExpiredAt reports whether the code is expired at the given instant.
// The code is valid up to and including the expiration millisecond.
func (p *PendingCode) ExpiredAt(now time.Time) bool {
	return p.Expiration < now.UnixMilli()
}
