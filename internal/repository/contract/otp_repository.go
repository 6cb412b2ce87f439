package contract

import (
	"context"

	"sticky-notes-be/internal/entity"
)

type OtpRepository interface {
	// Upsert stores otp as the only live code for otp.Email, dropping any previous
	// one, in a single atomic step. It returns ErrOtpCodeInUse when otp.Code is
	// currently live for another email.
	Upsert(ctx context.Context, otp *entity.Otp) error

	// Take atomically reads and deletes the record for code. Returns (nil, nil)
	// when there is none.
	Take(ctx context.Context, code string) (*entity.Otp, error)

	// TakeFor is Take restricted to email: a record held by another email is
	// left in place and reported as (nil, nil).
	TakeFor(ctx context.Context, code, email string) (*entity.Otp, error)
}
