package models

import "time"

// PatientFile is metadata for an uploaded document. FileName is the object
// storage key, generated as "<patient_id>/<uuid>.<ext>" so keys never collide
// and ownership is scoped by path prefix.
type PatientFile struct {
	ID           string
	PatientID    string
	FileName     string
	OriginalName string
	UploadedAt   time.Time
}
