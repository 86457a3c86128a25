package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/afyalink/afyalink/internal/common"
	"github.com/afyalink/afyalink/internal/server/models"
)

func newFileService(t *testing.T, rm *fakeRepoManager, store *fakeStorage) *FileService {
	t.Helper()
	db, _ := newSQLMockDB(t)
	t.Cleanup(func() { db.Close() })
	return NewFileService(db, rm, store, newTestConfig())
}

func TestStorageKey(t *testing.T) {
	k1 := StorageKey("p-1", "scan.pdf")
	k2 := StorageKey("p-1", "scan.pdf")

	if !strings.HasPrefix(k1, "p-1/") {
		t.Fatalf("key not scoped under patient: %q", k1)
	}
	if !strings.HasSuffix(k1, ".pdf") {
		t.Fatalf("extension not preserved: %q", k1)
	}
	if k1 == k2 {
		t.Fatalf("two uploads of the same name collided: %q", k1)
	}
}

func TestStorageKey_NoExtension(t *testing.T) {
	k := StorageKey("p-1", "README")
	if !strings.HasPrefix(k, "p-1/") || strings.Contains(k, ".") {
		t.Fatalf("unexpected key: %q", k)
	}
}

func TestUploadPatientFile_Success(t *testing.T) {
	rm := &fakeRepoManager{files: &fakePatientFilesRepo{}}
	store := &fakeStorage{}
	s := newFileService(t, rm, store)

	got, err := s.UploadPatientFile(context.Background(), "p-1", []byte("bytes"), "scan.pdf", "application/pdf", "cred")
	if err != nil {
		t.Fatalf("UploadPatientFile error: %v", err)
	}
	if len(store.uploadedKeys) != 1 {
		t.Fatalf("want 1 upload, got %d", len(store.uploadedKeys))
	}
	if got.FileName != store.uploadedKeys[0] {
		t.Fatalf("metadata key %q does not match uploaded key %q", got.FileName, store.uploadedKeys[0])
	}
	if got.OriginalName != "scan.pdf" || got.PatientID != "p-1" {
		t.Fatalf("unexpected metadata: %+v", got)
	}
	if store.uploadedTypes[0] != "application/pdf" {
		t.Fatalf("content type not passed to storage: %q", store.uploadedTypes[0])
	}
}

func TestUploadPatientFile_NoCredential(t *testing.T) {
	rm := &fakeRepoManager{files: &fakePatientFilesRepo{}}
	store := &fakeStorage{}
	s := newFileService(t, rm, store)

	_, err := s.UploadPatientFile(context.Background(), "p-1", []byte("bytes"), "scan.pdf", "application/pdf", "")
	if !errors.Is(err, common.ErrCredentialRequired) {
		t.Fatalf("want ErrCredentialRequired, got %v", err)
	}
	if len(store.uploadedKeys) != 0 || rm.files.createCalls != 0 {
		t.Fatalf("anonymous upload reached the backends")
	}
}

func TestUploadPatientFile_StorageFailureWritesNoMetadata(t *testing.T) {
	// Bytes first, metadata second: a failed upload must leave no orphan
	// metadata row behind.
	rm := &fakeRepoManager{files: &fakePatientFilesRepo{}}
	store := &fakeStorage{uploadErr: errors.New("bucket unreachable")}
	s := newFileService(t, rm, store)

	_, err := s.UploadPatientFile(context.Background(), "p-1", []byte("bytes"), "scan.pdf", "application/pdf", "cred")
	if !errors.Is(err, common.ErrStorageUpload) {
		t.Fatalf("want ErrStorageUpload, got %v", err)
	}
	if rm.files.createCalls != 0 {
		t.Fatalf("metadata written despite failed upload")
	}
}

func TestUploadPatientFile_Validation(t *testing.T) {
	rm := &fakeRepoManager{files: &fakePatientFilesRepo{}}
	store := &fakeStorage{}
	s := newFileService(t, rm, store)

	if _, err := s.UploadPatientFile(context.Background(), "", []byte("b"), "scan.pdf", "", "cred"); !errors.Is(err, common.ErrValidation) {
		t.Fatalf("want ErrValidation for missing patient id, got %v", err)
	}
	if _, err := s.UploadPatientFile(context.Background(), "p-1", nil, "scan.pdf", "", "cred"); !errors.Is(err, common.ErrValidation) {
		t.Fatalf("want ErrValidation for empty file, got %v", err)
	}
	if len(store.uploadedKeys) != 0 {
		t.Fatalf("storage touched on invalid input")
	}
}

func TestListPatientFiles_EmptyIsNotError(t *testing.T) {
	rm := &fakeRepoManager{files: &fakePatientFilesRepo{}}
	s := newFileService(t, rm, &fakeStorage{})

	got, err := s.ListPatientFiles(context.Background(), "p-1")
	if err != nil {
		t.Fatalf("ListPatientFiles error: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("want empty slice, got %#v", got)
	}
}

func TestListPatientFiles_Found(t *testing.T) {
	rm := &fakeRepoManager{files: &fakePatientFilesRepo{
		listOut: []*models.PatientFile{{ID: "f-1", PatientID: "p-1", FileName: "p-1/abc.pdf"}},
	}}
	s := newFileService(t, rm, &fakeStorage{})

	got, err := s.ListPatientFiles(context.Background(), "p-1")
	if err != nil {
		t.Fatalf("ListPatientFiles error: %v", err)
	}
	if len(got) != 1 || got[0].FileName != "p-1/abc.pdf" {
		t.Fatalf("unexpected files: %#v", got)
	}
}

func TestFileURL(t *testing.T) {
	s := newFileService(t, &fakeRepoManager{}, &fakeStorage{})
	if got := s.FileURL("p-1/abc.pdf"); got != "http://files.local/p-1/abc.pdf" {
		t.Fatalf("unexpected url: %q", got)
	}
}

func TestPresignedFileURL_Error(t *testing.T) {
	s := newFileService(t, &fakeRepoManager{}, &fakeStorage{presignErr: errors.New("sign failure")})

	_, err := s.PresignedFileURL(context.Background(), "p-1/abc.pdf")
	if !errors.Is(err, common.ErrStorageUpload) {
		t.Fatalf("want ErrStorageUpload, got %v", err)
	}
}
