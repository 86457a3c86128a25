package models

import "time"

// Patient is a person under care. DoctorID is empty when the patient is
// unassigned. UserID links to the patient's login account when one exists.
type Patient struct {
	ID        string
	UserID    string
	Name      string
	Age       int
	DoctorID  string
	CreatedAt time.Time
}

// Doctor is an identity-linked care provider.
type Doctor struct {
	ID        string
	UserID    string
	FullName  string
	Email     string
	CreatedAt time.Time
}
