package domain

type VeterinarianRecord struct {
	ID     string
	Name   string
	Role   string
	Active bool
}
