package services

import (
	"context"
	"errors"
	"testing"

	"github.com/afyalink/afyalink/internal/common"
	"github.com/afyalink/afyalink/internal/server/models"
)

func newDirectoryService(t *testing.T, rm *fakeRepoManager) *DirectoryService {
	t.Helper()
	db, _ := newSQLMockDB(t)
	t.Cleanup(func() { db.Close() })
	return NewDirectoryService(db, rm, newTestConfig())
}

func TestListPatientsForDoctor_EmptyIsNotError(t *testing.T) {
	s := newDirectoryService(t, &fakeRepoManager{patients: &fakePatientsRepo{}})

	got, err := s.ListPatientsForDoctor(context.Background(), "d-1")
	if err != nil {
		t.Fatalf("ListPatientsForDoctor error: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("want empty slice, got %#v", got)
	}
}

func TestListPatientsForDoctor_MissingID(t *testing.T) {
	s := newDirectoryService(t, &fakeRepoManager{patients: &fakePatientsRepo{}})

	_, err := s.ListPatientsForDoctor(context.Background(), "")
	if !errors.Is(err, common.ErrValidation) {
		t.Fatalf("want ErrValidation, got %v", err)
	}
}

func TestListAllPatients(t *testing.T) {
	rm := &fakeRepoManager{patients: &fakePatientsRepo{
		listAllOut: []*models.Patient{{ID: "p-1", Name: "Asha"}, {ID: "p-2", Name: "Zuri"}},
	}}
	s := newDirectoryService(t, rm)

	got, err := s.ListAllPatients(context.Background())
	if err != nil {
		t.Fatalf("ListAllPatients error: %v", err)
	}
	if len(got) != 2 || got[0].Name != "Asha" {
		t.Fatalf("unexpected patients: %#v", got)
	}
}

func TestListAllUsers_StoreError(t *testing.T) {
	rm := &fakeRepoManager{accounts: &fakeAccountsRepo{listErr: errors.New("db down")}}
	s := newDirectoryService(t, rm)

	_, err := s.ListAllUsers(context.Background())
	if !errors.Is(err, common.ErrStore) {
		t.Fatalf("want ErrStore, got %v", err)
	}
}

func TestDoctorForUser_NotFoundPassesThrough(t *testing.T) {
	// A user without a doctor row is a clean miss, not a store failure.
	rm := &fakeRepoManager{doctors: &fakeDoctorsRepo{getErr: common.ErrorNotFound}}
	s := newDirectoryService(t, rm)

	_, err := s.DoctorForUser(context.Background(), "u-1")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want ErrorNotFound, got %v", err)
	}
	if errors.Is(err, common.ErrStore) {
		t.Fatalf("clean miss reported as store failure: %v", err)
	}
}

func TestPatientForUser_Found(t *testing.T) {
	rm := &fakeRepoManager{patients: &fakePatientsRepo{
		getOut: &models.Patient{ID: "p-1", UserID: "u-1", Name: "Asha"},
	}}
	s := newDirectoryService(t, rm)

	got, err := s.PatientForUser(context.Background(), "u-1")
	if err != nil {
		t.Fatalf("PatientForUser error: %v", err)
	}
	if got.ID != "p-1" {
		t.Fatalf("unexpected patient: %+v", got)
	}
}

func TestAddPatient_Validation(t *testing.T) {
	rm := &fakeRepoManager{patients: &fakePatientsRepo{}}
	s := newDirectoryService(t, rm)

	if _, err := s.AddPatient(context.Background(), "", 30, ""); !errors.Is(err, common.ErrValidation) {
		t.Fatalf("want ErrValidation for missing name, got %v", err)
	}
	if _, err := s.AddPatient(context.Background(), "Asha", -1, ""); !errors.Is(err, common.ErrValidation) {
		t.Fatalf("want ErrValidation for negative age, got %v", err)
	}
	if rm.patients.createIn != nil {
		t.Fatalf("store touched on invalid input")
	}
}

func TestAddPatient_Unassigned(t *testing.T) {
	rm := &fakeRepoManager{patients: &fakePatientsRepo{}}
	s := newDirectoryService(t, rm)

	got, err := s.AddPatient(context.Background(), "Asha", 30, "")
	if err != nil {
		t.Fatalf("AddPatient error: %v", err)
	}
	if got.ID == "" || got.DoctorID != "" {
		t.Fatalf("unexpected patient: %+v", got)
	}
}

func TestUnassignPatient(t *testing.T) {
	rm := &fakeRepoManager{patients: &fakePatientsRepo{}}
	s := newDirectoryService(t, rm)

	if err := s.UnassignPatient(context.Background(), "p-1"); err != nil {
		t.Fatalf("UnassignPatient error: %v", err)
	}
	if len(rm.patients.unassigned) != 1 || rm.patients.unassigned[0] != "p-1" {
		t.Fatalf("unassign not applied: %#v", rm.patients.unassigned)
	}
}

func TestReassignPatient(t *testing.T) {
	rm := &fakeRepoManager{patients: &fakePatientsRepo{}}
	s := newDirectoryService(t, rm)

	if err := s.ReassignPatient(context.Background(), "p-1", "d-2"); err != nil {
		t.Fatalf("ReassignPatient error: %v", err)
	}
	if len(rm.patients.reassigned) != 1 || rm.patients.reassigned[0] != [2]string{"p-1", "d-2"} {
		t.Fatalf("reassign not applied: %#v", rm.patients.reassigned)
	}
}

func TestReassignPatient_StoreError(t *testing.T) {
	rm := &fakeRepoManager{patients: &fakePatientsRepo{reassignErr: errors.New("db down")}}
	s := newDirectoryService(t, rm)

	err := s.ReassignPatient(context.Background(), "p-1", "d-2")
	if !errors.Is(err, common.ErrStore) {
		t.Fatalf("want ErrStore, got %v", err)
	}
}
