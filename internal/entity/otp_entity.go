package entity

import "time"

type Otp struct {
	Email     string
	Code      string
	ExpiresAt time.Time
}

func (o *Otp) Expired(now time.Time) bool {
	return now.After(o.ExpiresAt)
}

type BlacklistedToken struct {
	Token     string
	CreatedAt time.Time
}
