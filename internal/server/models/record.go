package models

import "time"

// MedicalRecord is owned by exactly one patient and append-only: there is no
// edit or delete path.
type MedicalRecord struct {
	ID          string
	PatientID   string
	Title       string
	Description string
	CreatedAt   time.Time
}
