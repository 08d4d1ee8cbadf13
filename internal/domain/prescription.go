package domain

import "time"

type PrescriptionItem struct {
	Quantity int    `json:"quantity"`
	Category string `json:"category"`
}

type PrescriptionRecord struct {
	ID               string
	PetID            string
	VeterinarianID   string
	StartDate        time.Time
	Status           string
	VeterinarianName string
	Items            []PrescriptionItem
}
