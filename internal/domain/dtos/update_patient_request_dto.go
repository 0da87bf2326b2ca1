package dtos

import (
	"time"

	"patient-registry/internal/domain/entities"
)

// UpdatePatientRequest defines the payload for updating an existing patient.
// Nil fields are left untouched.
type UpdatePatientRequest struct {
	Nom           *string    `json:"nom,omitempty" validate:"omitempty,min=1"`
	DateNaissance *time.Time `json:"date_naissance,omitempty"`
	Malade        *bool      `json:"malade,omitempty"`
	Score         *int       `json:"score,omitempty"`
}

// ApplyTo copies the set fields onto p. The id is never changed.
func (r UpdatePatientRequest) ApplyTo(p *entities.Patient) {
	if r.Nom != nil {
		p.Nom = *r.Nom
	}
	if r.DateNaissance != nil {
		p.DateNaissance = *r.DateNaissance
	}
	if r.Malade != nil {
		p.Malade = *r.Malade
	}
	if r.Score != nil {
		p.Score = *r.Score
	}
}
