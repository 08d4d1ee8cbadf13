package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type ConsultationRecord struct {
	ID               string
	PetID            string
	VeterinarianID   string
	CreatedAt        time.Time
	Diagnosis        string
	Status           string
	PetSpecies       string
	PetBreed         string
	VeterinarianName string
	Value            *decimal.Decimal // Valor cobrado, quando informado
}
