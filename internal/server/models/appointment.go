package models

import "time"

// AppointmentScheduled is the only status this server produces; the column
// permits other values written by external tooling.
const AppointmentScheduled = "scheduled"

// Appointment links exactly one doctor and one patient at a point in time.
type Appointment struct {
	ID              string
	DoctorID        string
	PatientID       string
	AppointmentTime time.Time
	Status          string
	CreatedAt       time.Time
}
