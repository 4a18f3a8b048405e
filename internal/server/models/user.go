package models

import "time"

type User struct {
	ID        string
	Login     string
	Salt      []byte
	Verifier  []byte
	CreatedAt time.Time
}
