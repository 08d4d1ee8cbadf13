package domain

import "time"

type AppointmentStatus string

const (
	AppointmentScheduled  AppointmentStatus = "SCHEDULED"
	AppointmentConfirmed  AppointmentStatus = "CONFIRMED"
	AppointmentInProgress AppointmentStatus = "IN_PROGRESS"
	AppointmentCompleted  AppointmentStatus = "COMPLETED"
	AppointmentCancelled  AppointmentStatus = "CANCELLED"
)

// AppointmentRecord é a visão achatada de um agendamento, já com os campos
// desnormalizados de pet, tutor e veterinário
type AppointmentRecord struct {
	ID               string
	PetID            string
	GuardianID       string
	VeterinarianID   string
	Date             time.Time
	Status           AppointmentStatus
	PetSpecies       string
	PetBreed         string
	VeterinarianName string
	VeterinarianRole string
	GuardianName     string
	GuardianEmail    string
}
