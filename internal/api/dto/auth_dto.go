package dto

import "time"

// LoginRequest payload.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"senha"`
}

// LoginResponse carries the issued token plus its owner.
type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expira_em"`
	User      UserResponse `json:"usuario"`
}
