package dto

import "github.com/google/uuid"

type RegisterRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type VerifyOtpRequest struct {
	Otp string `json:"otp" validate:"required,len=6,numeric"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type SignupRequest struct {
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=6,max=72"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password"`
}

type GoogleSignInRequest struct {
	Token string `json:"token" validate:"required"`
}

type SendOtpRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type VerifyResetOtpRequest struct {
	Email string `json:"email" validate:"required,email"`
	Otp   string `json:"otp" validate:"required,len=6,numeric"`
}

type ResetPasswordRequest struct {
	Email       string `json:"email" validate:"required,email"`
	NewPassword string `json:"newPassword" validate:"required,min=6,max=72"`
}

type UserDTO struct {
	Id    uuid.UUID `json:"id"`
	Email string    `json:"email"`
}

type LoginResponse struct {
	Token   string  `json:"token"`
	Message string  `json:"message"`
	User    UserDTO `json:"user"`
}

type GoogleSignInResponse struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
