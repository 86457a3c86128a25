package httpapi

import (
	"net/http"

	"github.com/gorilla/mux"
)

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.directory.ListAllUsers(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

func (s *Server) handleListAllPatients(w http.ResponseWriter, r *http.Request) {
	patients, err := s.directory.ListAllPatients(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, patients)
}

func (s *Server) handleListDoctors(w http.ResponseWriter, r *http.Request) {
	doctors, err := s.directory.ListAllDoctors(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, doctors)
}

type addPatientRequest struct {
	Name     string `json:"name"`
	Age      int    `json:"age"`
	DoctorID string `json:"doctor_id"`
}

func (s *Server) handleAddPatient(w http.ResponseWriter, r *http.Request) {
	req := &addPatientRequest{}
	if err := decodeJSON(r, req); err != nil {
		writeError(w, err)
		return
	}

	patient, err := s.directory.AddPatient(r.Context(), req.Name, req.Age, req.DoctorID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, patient)
}

func (s *Server) handleUnassignPatient(w http.ResponseWriter, r *http.Request) {
	patientID := mux.Vars(r)["id"]

	if err := s.directory.UnassignPatient(r.Context(), patientID); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type reassignRequest struct {
	DoctorID string `json:"doctor_id"`
}

func (s *Server) handleReassignPatient(w http.ResponseWriter, r *http.Request) {
	patientID := mux.Vars(r)["id"]

	req := &reassignRequest{}
	if err := decodeJSON(r, req); err != nil {
		writeError(w, err)
		return
	}

	if err := s.directory.ReassignPatient(r.Context(), patientID, req.DoctorID); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
