package domain

import "time"

type GuardianRecord struct {
	ID        string
	Name      string
	Email     string
	PetsCount int
	CreatedAt time.Time
}
