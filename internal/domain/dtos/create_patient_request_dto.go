package dtos

import (
	"time"

	"patient-registry/internal/domain/entities"
)

// CreatePatientRequest defines the payload for creating a new patient.
type CreatePatientRequest struct {
	Nom           string    `json:"nom" validate:"required"`
	DateNaissance time.Time `json:"date_naissance"`
	Malade        bool      `json:"malade"`
	Score         int       `json:"score"`
}

// ToEntity builds an unsaved patient from the request.
func (r CreatePatientRequest) ToEntity() *entities.Patient {
	return &entities.Patient{
		Nom:           r.Nom,
		DateNaissance: r.DateNaissance,
		Malade:        r.Malade,
		Score:         r.Score,
	}
}
