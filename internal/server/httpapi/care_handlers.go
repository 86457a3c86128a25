package httpapi

import (
	"io"
	"net/http"
	"time"

	"github.com/afyalink/afyalink/internal/common"
	"github.com/afyalink/afyalink/internal/server/models"
	"github.com/afyalink/afyalink/internal/timex"
)

const maxUploadBytes = 20 << 20 // matches the dashboard's file picker limit

func (s *Server) handleDoctorPatients(w http.ResponseWriter, r *http.Request) {
	sess := SessionFromContext(r.Context())

	doctor, err := s.directory.DoctorForUser(r.Context(), sess.UserID)
	if err != nil {
		writeError(w, err)
		return
	}

	patients, err := s.directory.ListPatientsForDoctor(r.Context(), doctor.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, patients)
}

type addRecordRequest struct {
	PatientID   string `json:"patient_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

func (s *Server) handleAddRecord(w http.ResponseWriter, r *http.Request) {
	req := &addRecordRequest{}
	if err := decodeJSON(r, req); err != nil {
		writeError(w, err)
		return
	}

	record, err := s.records.AddMedicalRecord(r.Context(), req.PatientID, req.Title, req.Description)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, record)
}

type scheduleRequest struct {
	PatientID       string `json:"patient_id"`
	AppointmentTime string `json:"appointment_time"`
}

func (s *Server) handleScheduleAppointment(w http.ResponseWriter, r *http.Request) {
	sess := SessionFromContext(r.Context())

	req := &scheduleRequest{}
	if err := decodeJSON(r, req); err != nil {
		writeError(w, err)
		return
	}

	var when time.Time
	if req.AppointmentTime != "" {
		parsed, err := timex.ParseISO(req.AppointmentTime)
		if err != nil {
			writeError(w, common.ErrValidation)
			return
		}
		when = parsed
	}

	doctor, err := s.directory.DoctorForUser(r.Context(), sess.UserID)
	if err != nil {
		writeError(w, err)
		return
	}

	appointment, err := s.appointments.ScheduleAppointment(r.Context(), doctor.ID, req.PatientID, when)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, appointment)
}

func (s *Server) handleListAppointments(w http.ResponseWriter, r *http.Request) {
	sess := SessionFromContext(r.Context())

	var id string
	switch sess.Role {
	case models.RoleDoctor:
		doctor, err := s.directory.DoctorForUser(r.Context(), sess.UserID)
		if err != nil {
			writeError(w, err)
			return
		}
		id = doctor.ID
	case models.RolePatient:
		patient, err := s.directory.PatientForUser(r.Context(), sess.UserID)
		if err != nil {
			writeError(w, err)
			return
		}
		id = patient.ID
	}

	appointments, err := s.appointments.ListAppointmentsFor(r.Context(), id, sess.Role)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, appointments)
}

func (s *Server) handlePatientRecords(w http.ResponseWriter, r *http.Request) {
	sess := SessionFromContext(r.Context())

	patient, err := s.directory.PatientForUser(r.Context(), sess.UserID)
	if err != nil {
		writeError(w, err)
		return
	}

	records, err := s.records.ListRecordsForPatient(r.Context(), patient.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, records)
}

type fileResponse struct {
	ID           string    `json:"id"`
	PatientID    string    `json:"patient_id"`
	FileName     string    `json:"file_name"`
	OriginalName string    `json:"original_name"`
	UploadedAt   time.Time `json:"uploaded_at"`
	URL          string    `json:"url"`
}

func (s *Server) handleUploadFile(w http.ResponseWriter, r *http.Request) {
	sess := SessionFromContext(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, common.ErrValidation)
		return
	}

	formFile, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, common.ErrValidation)
		return
	}
	defer formFile.Close()

	data, err := io.ReadAll(formFile)
	if err != nil {
		writeError(w, err)
		return
	}

	patient, err := s.directory.PatientForUser(r.Context(), sess.UserID)
	if err != nil {
		writeError(w, err)
		return
	}

	file, err := s.files.UploadPatientFile(r.Context(), patient.ID, data, header.Filename,
		header.Header.Get("Content-Type"), sess.Credential)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, fileResponse{
		ID:           file.ID,
		PatientID:    file.PatientID,
		FileName:     file.FileName,
		OriginalName: file.OriginalName,
		UploadedAt:   file.UploadedAt,
		URL:          s.files.FileURL(file.FileName),
	})
}

func (s *Server) handleListFiles(w http.ResponseWriter, r *http.Request) {
	sess := SessionFromContext(r.Context())

	patient, err := s.directory.PatientForUser(r.Context(), sess.UserID)
	if err != nil {
		writeError(w, err)
		return
	}

	files, err := s.files.ListPatientFiles(r.Context(), patient.ID)
	if err != nil {
		writeError(w, err)
		return
	}

	result := make([]fileResponse, 0, len(files))
	for _, f := range files {
		result = append(result, fileResponse{
			ID:           f.ID,
			PatientID:    f.PatientID,
			FileName:     f.FileName,
			OriginalName: f.OriginalName,
			UploadedAt:   f.UploadedAt,
			URL:          s.files.FileURL(f.FileName),
		})
	}
	writeJSON(w, http.StatusOK, result)
}
