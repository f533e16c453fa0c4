package domain

import "time"

type User struct {
	ID           string
	Email        string
	Username     string
	Name         string
	LastName     string
	PasswordHash string
	CreatedAt    time.Time
}
