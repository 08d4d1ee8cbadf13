package domain

import "time"

type PetRecord struct {
	ID         string
	GuardianID string
	Species    string
	Breed      string
	IsNeutered bool
	BirthDate  *time.Time
	CreatedAt  time.Time
}
