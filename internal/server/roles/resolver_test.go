package roles

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/afyalink/afyalink/internal/common"
	"github.com/afyalink/afyalink/internal/dbx"
	"github.com/afyalink/afyalink/internal/server/models"
	accountsrepo "github.com/afyalink/afyalink/internal/server/repositories/accounts"
	appointmentsrepo "github.com/afyalink/afyalink/internal/server/repositories/appointments"
	doctorsrepo "github.com/afyalink/afyalink/internal/server/repositories/doctors"
	patientfilesrepo "github.com/afyalink/afyalink/internal/server/repositories/patientfiles"
	patientsrepo "github.com/afyalink/afyalink/internal/server/repositories/patients"
	recordsrepo "github.com/afyalink/afyalink/internal/server/repositories/records"
)

type fakePatientsRepo struct {
	exists    bool
	existsErr error
}

func (f *fakePatientsRepo) Create(context.Context, *models.Patient) (*models.Patient, error) {
	return nil, nil
}
func (f *fakePatientsRepo) ListByDoctor(context.Context, string) ([]*models.Patient, error) {
	return nil, nil
}
func (f *fakePatientsRepo) ListAll(context.Context) ([]*models.Patient, error) { return nil, nil }
func (f *fakePatientsRepo) ExistsByUserID(context.Context, string) (bool, error) {
	return f.exists, f.existsErr
}
func (f *fakePatientsRepo) GetByUserID(context.Context, string) (*models.Patient, error) {
	return nil, nil
}
func (f *fakePatientsRepo) Unassign(context.Context, string) error         { return nil }
func (f *fakePatientsRepo) Reassign(context.Context, string, string) error { return nil }

type fakeDoctorsRepo struct {
	exists    bool
	existsErr error
}

func (f *fakeDoctorsRepo) Create(context.Context, *models.Doctor) (*models.Doctor, error) {
	return nil, nil
}
func (f *fakeDoctorsRepo) ExistsByUserID(context.Context, string) (bool, error) {
	return f.exists, f.existsErr
}
func (f *fakeDoctorsRepo) GetByUserID(context.Context, string) (*models.Doctor, error) {
	return nil, nil
}
func (f *fakeDoctorsRepo) ListAll(context.Context) ([]*models.Doctor, error) { return nil, nil }

type fakeRepoManager struct {
	p *fakePatientsRepo
	d *fakeDoctorsRepo
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error      { return nil }
func (m *fakeRepoManager) Accounts(dbx.DBTX) accountsrepo.Repository         { return nil }
func (m *fakeRepoManager) Patients(dbx.DBTX) patientsrepo.Repository         { return m.p }
func (m *fakeRepoManager) Doctors(dbx.DBTX) doctorsrepo.Repository           { return m.d }
func (m *fakeRepoManager) Records(dbx.DBTX) recordsrepo.Repository           { return nil }
func (m *fakeRepoManager) Appointments(dbx.DBTX) appointmentsrepo.Repository { return nil }
func (m *fakeRepoManager) PatientFiles(dbx.DBTX) patientfilesrepo.Repository { return nil }

func newResolver(p *fakePatientsRepo, d *fakeDoctorsRepo) *Resolver {
	return NewResolver(nil, &fakeRepoManager{p: p, d: d})
}

func TestResolve_Patient(t *testing.T) {
	r := newResolver(&fakePatientsRepo{exists: true}, &fakeDoctorsRepo{})

	role, err := r.Resolve(context.Background(), "u-1")
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if role != models.RolePatient {
		t.Fatalf("want patient, got %v", role)
	}
}

func TestResolve_PatientWinsOverDoctor(t *testing.T) {
	// A user present in both membership tables resolves to patient, because
	// the patient probe runs first.
	r := newResolver(&fakePatientsRepo{exists: true}, &fakeDoctorsRepo{exists: true})

	role, err := r.Resolve(context.Background(), "u-1")
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if role != models.RolePatient {
		t.Fatalf("want patient, got %v", role)
	}
}

func TestResolve_Doctor(t *testing.T) {
	r := newResolver(&fakePatientsRepo{}, &fakeDoctorsRepo{exists: true})

	role, err := r.Resolve(context.Background(), "u-1")
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if role != models.RoleDoctor {
		t.Fatalf("want doctor, got %v", role)
	}
}

func TestResolve_DoubleMissIsAdmin(t *testing.T) {
	r := newResolver(&fakePatientsRepo{}, &fakeDoctorsRepo{})

	role, err := r.Resolve(context.Background(), "u-1")
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if role != models.RoleAdmin {
		t.Fatalf("want admin, got %v", role)
	}
}

func TestResolve_PatientProbeError(t *testing.T) {
	// A failed probe is never treated as a miss; otherwise a database outage
	// would grant admin to everyone.
	r := newResolver(&fakePatientsRepo{existsErr: errors.New("db down")}, &fakeDoctorsRepo{exists: true})

	role, err := r.Resolve(context.Background(), "u-1")
	if !errors.Is(err, common.ErrRoleUnresolved) {
		t.Fatalf("want ErrRoleUnresolved, got %v", err)
	}
	if role != "" {
		t.Fatalf("want empty role on failure, got %v", role)
	}
}

func TestResolve_DoctorProbeError(t *testing.T) {
	r := newResolver(&fakePatientsRepo{}, &fakeDoctorsRepo{existsErr: errors.New("db down")})

	_, err := r.Resolve(context.Background(), "u-1")
	if !errors.Is(err, common.ErrRoleUnresolved) {
		t.Fatalf("want ErrRoleUnresolved, got %v", err)
	}
}
