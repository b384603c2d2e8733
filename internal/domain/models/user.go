package models

import (
	"time"

	"transitbook/internal/domain"
)

type User struct {
	ID           int64       `json:"user_id"`
	Username     string      `json:"username"`
	PasswordHash string      `json:"-"`
	Role         domain.Role `json:"role"`
	CreatedAt    time.Time   `json:"created_at"`
}
