package entities

import (
	"fmt"
	"time"
)

// Patient represents a patient in the registry.
// ID is zero until the store assigns one on first save.
type Patient struct {
	ID            int64     `json:"id" db:"id" gorm:"column:id;primaryKey;autoIncrement"`
	Nom           string    `json:"nom" db:"nom" gorm:"column:nom;not null" validate:"required"`
	DateNaissance time.Time `json:"date_naissance" db:"date_naissance" gorm:"column:date_naissance"`
	Malade        bool      `json:"malade" db:"malade" gorm:"column:malade;not null"`
	Score         int       `json:"score" db:"score" gorm:"column:score;not null"`
}

// TableName pins the table created by the versioned migrations.
func (Patient) TableName() string {
	return "patients"
}

// IsNew reports whether the patient has not been persisted yet.
func (p *Patient) IsNew() bool {
	return p.ID == 0
}

func (p *Patient) String() string {
	if p == nil {
		return "null"
	}
	return fmt.Sprintf("Patient(id=%d, nom=%s, dateNaissance=%s, malade=%t, score=%d)",
		p.ID, p.Nom, p.DateNaissance.Format(time.RFC3339), p.Malade, p.Score)
}
