package dtos

import (
	"patient-registry/internal/domain/entities"
)

// DateLayout is the format of DateNaissance in DTOs.
const DateLayout = "2006-01-02"

// PatientDTO is the JSON shape printed for a patient.
type PatientDTO struct {
	ID            int64  `json:"id"`
	Nom           string `json:"nom"`
	DateNaissance string `json:"date_naissance"` // Formatted as YYYY-MM-DD
	Malade        bool   `json:"malade"`
	Score         int    `json:"score"`
}

// ToPatientDTO returns nil for a nil patient so it encodes as JSON null.
func ToPatientDTO(p *entities.Patient) *PatientDTO {
	if p == nil {
		return nil
	}
	dto := &PatientDTO{
		ID:     p.ID,
		Nom:    p.Nom,
		Malade: p.Malade,
		Score:  p.Score,
	}
	if !p.DateNaissance.IsZero() {
		dto.DateNaissance = p.DateNaissance.Format(DateLayout)
	}
	return dto
}

func ToPatientDTOs(patients []*entities.Patient) []*PatientDTO {
	out := make([]*PatientDTO, 0, len(patients))
	for _, p := range patients {
		out = append(out, ToPatientDTO(p))
	}
	return out
}
