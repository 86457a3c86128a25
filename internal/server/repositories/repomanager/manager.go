package repomanager

import (
	"context"
	"database/sql"

	"github.com/afyalink/afyalink/internal/dbx"
	"github.com/afyalink/afyalink/internal/server/repositories/accounts"
	"github.com/afyalink/afyalink/internal/server/repositories/appointments"
	"github.com/afyalink/afyalink/internal/server/repositories/doctors"
	"github.com/afyalink/afyalink/internal/server/repositories/patientfiles"
	"github.com/afyalink/afyalink/internal/server/repositories/patients"
	"github.com/afyalink/afyalink/internal/server/repositories/records"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Accounts(db dbx.DBTX) accounts.Repository
	Patients(db dbx.DBTX) patients.Repository
	Doctors(db dbx.DBTX) doctors.Repository
	Records(db dbx.DBTX) records.Repository
	Appointments(db dbx.DBTX) appointments.Repository
	PatientFiles(db dbx.DBTX) patientfiles.Repository
}
