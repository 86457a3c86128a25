package services

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/afyalink/afyalink/internal/dbx"
	"github.com/afyalink/afyalink/internal/server/config"
	"github.com/afyalink/afyalink/internal/server/identity"
	"github.com/afyalink/afyalink/internal/server/models"
	accountsrepo "github.com/afyalink/afyalink/internal/server/repositories/accounts"
	appointmentsrepo "github.com/afyalink/afyalink/internal/server/repositories/appointments"
	doctorsrepo "github.com/afyalink/afyalink/internal/server/repositories/doctors"
	patientfilesrepo "github.com/afyalink/afyalink/internal/server/repositories/patientfiles"
	patientsrepo "github.com/afyalink/afyalink/internal/server/repositories/patients"
	recordsrepo "github.com/afyalink/afyalink/internal/server/repositories/records"
)

// --- shared helpers ---

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return db, mock
}

func newTestConfig() *config.Config {
	return &config.Config{
		SecretKey:                  "k",
		CredentialValidityDuration: time.Hour,
		StoreTimeout:               2 * time.Second,
		ReadRetries:                1,
	}
}

// --- fake repositories ---

type fakeAccountsRepo struct {
	createOut *models.Account
	createErr error
	getOut    *models.Account
	getErr    error
	listOut   []*models.Account
	listErr   error
}

func (f *fakeAccountsRepo) Create(context.Context, *models.Account) (*models.Account, error) {
	return f.createOut, f.createErr
}
func (f *fakeAccountsRepo) GetByEmail(context.Context, string) (*models.Account, error) {
	return f.getOut, f.getErr
}
func (f *fakeAccountsRepo) GetByID(context.Context, string) (*models.Account, error) {
	return f.getOut, f.getErr
}
func (f *fakeAccountsRepo) List(context.Context) ([]*models.Account, error) {
	return f.listOut, f.listErr
}

type fakePatientsRepo struct {
	createIn  *models.Patient
	createErr error

	listByDoctorOut []*models.Patient
	listByDoctorErr error
	listAllOut      []*models.Patient
	listAllErr      error

	exists    bool
	existsErr error
	getOut    *models.Patient
	getErr    error

	unassigned  []string
	unassignErr error
	reassigned  [][2]string
	reassignErr error
}

func (f *fakePatientsRepo) Create(_ context.Context, p *models.Patient) (*models.Patient, error) {
	f.createIn = p
	if f.createErr != nil {
		return nil, f.createErr
	}
	p.ID = "p-1"
	return p, nil
}
func (f *fakePatientsRepo) ListByDoctor(context.Context, string) ([]*models.Patient, error) {
	return f.listByDoctorOut, f.listByDoctorErr
}
func (f *fakePatientsRepo) ListAll(context.Context) ([]*models.Patient, error) {
	return f.listAllOut, f.listAllErr
}
func (f *fakePatientsRepo) ExistsByUserID(context.Context, string) (bool, error) {
	return f.exists, f.existsErr
}
func (f *fakePatientsRepo) GetByUserID(context.Context, string) (*models.Patient, error) {
	return f.getOut, f.getErr
}
func (f *fakePatientsRepo) Unassign(_ context.Context, patientID string) error {
	if f.unassignErr != nil {
		return f.unassignErr
	}
	f.unassigned = append(f.unassigned, patientID)
	return nil
}
func (f *fakePatientsRepo) Reassign(_ context.Context, patientID, doctorID string) error {
	if f.reassignErr != nil {
		return f.reassignErr
	}
	f.reassigned = append(f.reassigned, [2]string{patientID, doctorID})
	return nil
}

type fakeDoctorsRepo struct {
	createIn  *models.Doctor
	createErr error
	exists    bool
	existsErr error
	getOut    *models.Doctor
	getErr    error
	listOut   []*models.Doctor
	listErr   error
}

func (f *fakeDoctorsRepo) Create(_ context.Context, d *models.Doctor) (*models.Doctor, error) {
	f.createIn = d
	if f.createErr != nil {
		return nil, f.createErr
	}
	d.ID = "d-1"
	return d, nil
}
func (f *fakeDoctorsRepo) ExistsByUserID(context.Context, string) (bool, error) {
	return f.exists, f.existsErr
}
func (f *fakeDoctorsRepo) GetByUserID(context.Context, string) (*models.Doctor, error) {
	return f.getOut, f.getErr
}
func (f *fakeDoctorsRepo) ListAll(context.Context) ([]*models.Doctor, error) {
	return f.listOut, f.listErr
}

type fakeRecordsRepo struct {
	createCalls int
	createErr   error
	listOut     []*models.MedicalRecord
	listErr     error
}

func (f *fakeRecordsRepo) Create(_ context.Context, r *models.MedicalRecord) (*models.MedicalRecord, error) {
	f.createCalls++
	if f.createErr != nil {
		return nil, f.createErr
	}
	r.ID = "r-1"
	return r, nil
}
func (f *fakeRecordsRepo) ListByPatient(context.Context, string) ([]*models.MedicalRecord, error) {
	return f.listOut, f.listErr
}

type fakeAppointmentsRepo struct {
	createIn       *models.Appointment
	createErr      error
	byDoctorOut    []*models.Appointment
	byDoctorCalls  int
	byPatientOut   []*models.Appointment
	byPatientCalls int
	listErr        error
}

func (f *fakeAppointmentsRepo) Create(_ context.Context, a *models.Appointment) (*models.Appointment, error) {
	f.createIn = a
	if f.createErr != nil {
		return nil, f.createErr
	}
	a.ID = "a-1"
	return a, nil
}
func (f *fakeAppointmentsRepo) ListByDoctor(context.Context, string) ([]*models.Appointment, error) {
	f.byDoctorCalls++
	return f.byDoctorOut, f.listErr
}
func (f *fakeAppointmentsRepo) ListByPatient(context.Context, string) ([]*models.Appointment, error) {
	f.byPatientCalls++
	return f.byPatientOut, f.listErr
}

type fakePatientFilesRepo struct {
	createIn    *models.PatientFile
	createCalls int
	createErr   error
	listOut     []*models.PatientFile
	listErr     error
}

func (f *fakePatientFilesRepo) Create(_ context.Context, pf *models.PatientFile) (*models.PatientFile, error) {
	f.createCalls++
	f.createIn = pf
	if f.createErr != nil {
		return nil, f.createErr
	}
	pf.ID = "f-1"
	return pf, nil
}
func (f *fakePatientFilesRepo) ListByPatient(context.Context, string) ([]*models.PatientFile, error) {
	return f.listOut, f.listErr
}

// --- fake repository manager ---

type fakeRepoManager struct {
	accounts     *fakeAccountsRepo
	patients     *fakePatientsRepo
	doctors      *fakeDoctorsRepo
	records      *fakeRecordsRepo
	appointments *fakeAppointmentsRepo
	files        *fakePatientFilesRepo
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Accounts(dbx.DBTX) accountsrepo.Repository    { return m.accounts }
func (m *fakeRepoManager) Patients(dbx.DBTX) patientsrepo.Repository    { return m.patients }
func (m *fakeRepoManager) Doctors(dbx.DBTX) doctorsrepo.Repository      { return m.doctors }
func (m *fakeRepoManager) Records(dbx.DBTX) recordsrepo.Repository      { return m.records }
func (m *fakeRepoManager) Appointments(dbx.DBTX) appointmentsrepo.Repository {
	return m.appointments
}
func (m *fakeRepoManager) PatientFiles(dbx.DBTX) patientfilesrepo.Repository {
	return m.files
}

// --- fake identity provider ---

type fakeProvider struct {
	signInOut  *identity.SignInResult
	signInErr  error
	signUpOut  *identity.User
	signUpErr  error
	signUpName string
}

func (f *fakeProvider) SignInWithPassword(context.Context, string, string) (*identity.SignInResult, error) {
	return f.signInOut, f.signInErr
}
func (f *fakeProvider) SignUp(_ context.Context, _, _, fullName string) (*identity.User, error) {
	f.signUpName = fullName
	return f.signUpOut, f.signUpErr
}

// --- fake object storage ---

type fakeStorage struct {
	uploadErr     error
	uploadedKeys  []string
	uploadedTypes []string
	presignErr    error
}

func (f *fakeStorage) Upload(_ context.Context, key string, _ []byte, contentType string) error {
	if f.uploadErr != nil {
		return f.uploadErr
	}
	f.uploadedKeys = append(f.uploadedKeys, key)
	f.uploadedTypes = append(f.uploadedTypes, contentType)
	return nil
}
func (f *fakeStorage) PublicURL(key string) string { return "http://files.local/" + key }
func (f *fakeStorage) PresignedGetURL(_ context.Context, key string) (string, error) {
	if f.presignErr != nil {
		return "", f.presignErr
	}
	return "http://files.local/presigned/" + key, nil
}
