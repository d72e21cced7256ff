package http

import (
	"encoding/json"
	"net/http"

	"github.com/adotaqui/platform-service/internal/application"
)

func (h *Handler) getOperatingHours(w http.ResponseWriter, r *http.Request) {
	ongID, ok := h.ongClaims(w, r)
	if !ok {
		return
	}
	resp, err := h.service.GetOperatingHours(r.Context(), ongID)
	if err != nil {
		status, code, msg := mapDomainError(err)
		writeError(w, status, code, msg)
		return
	}
	writeSuccess(w, http.StatusOK, resp)
}

func (h *Handler) putOperatingHours(w http.ResponseWriter, r *http.Request) {
	ongID, ok := h.ongClaims(w, r)
	if !ok {
		return
	}
	var req application.PutOperatingHoursRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid json body")
		return
	}
	resp, err := h.service.PutOperatingHours(r.Context(), ongID, req)
	if err != nil {
		status, code, msg := mapDomainError(err)
		writeError(w, status, code, msg)
		return
	}
	writeSuccess(w, http.StatusOK, resp)
}

func (h *Handler) addException(w http.ResponseWriter, r *http.Request) {
	ongID, ok := h.ongClaims(w, r)
	if !ok {
		return
	}
	var req application.AddExceptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid json body")
		return
	}
	resp, err := h.service.AddException(r.Context(), ongID, req)
	if err != nil {
		status, code, msg := mapDomainError(err)
		writeError(w, status, code, msg)
		return
	}
	writeSuccess(w, http.StatusCreated, resp)
}

func (h *Handler) deleteException(w http.ResponseWriter, r *http.Request) {
	ongID, ok := h.ongClaims(w, r)
	if !ok {
		return
	}
	exceptionID, ok := pathUUID(w, r, "exception_id")
	if !ok {
		return
	}
	if err := h.service.DeleteException(r.Context(), ongID, exceptionID); err != nil {
		status, code, msg := mapDomainError(err)
		writeError(w, status, code, msg)
		return
	}
	writeMessage(w, http.StatusOK, "exception deleted")
}

func (h *Handler) getSettings(w http.ResponseWriter, r *http.Request) {
	ongID, ok := h.ongClaims(w, r)
	if !ok {
		return
	}
	resp, err := h.service.GetAppointmentSettings(r.Context(), ongID)
	if err != nil {
		status, code, msg := mapDomainError(err)
		writeError(w, status, code, msg)
		return
	}
	writeSuccess(w, http.StatusOK, resp)
}

func (h *Handler) putSettings(w http.ResponseWriter, r *http.Request) {
	ongID, ok := h.ongClaims(w, r)
	if !ok {
		return
	}
	var req application.PutSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid json body")
		return
	}
	resp, err := h.service.PutAppointmentSettings(r.Context(), ongID, req)
	if err != nil {
		status, code, msg := mapDomainError(err)
		writeError(w, status, code, msg)
		return
	}
	writeSuccess(w, http.StatusOK, resp)
}

func (h *Handler) getAvailability(w http.ResponseWriter, r *http.Request) {
	ongID, ok := pathUUID(w, r, "ong_id")
	if !ok {
		return
	}
	resp, err := h.service.AvailableSlots(r.Context(), ongID, r.URL.Query().Get("from"), r.URL.Query().Get("to"))
	if err != nil {
		status, code, msg := mapDomainError(err)
		writeError(w, status, code, msg)
		return
	}
	writeSuccess(w, http.StatusOK, resp)
}

func (h *Handler) bookAppointment(w http.ResponseWriter, r *http.Request) {
	var req application.BookAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid json body")
		return
	}
	resp, err := h.service.BookAppointment(r.Context(), req, r.Header.Get("Idempotency-Key"))
	if err != nil {
		status, code, msg := mapDomainError(err)
		writeError(w, status, code, msg)
		return
	}
	writeSuccess(w, http.StatusCreated, resp)
}

func (h *Handler) cancelAppointment(w http.ResponseWriter, r *http.Request) {
	ongID, ok := h.ongClaims(w, r)
	if !ok {
		return
	}
	appointmentID, ok := pathUUID(w, r, "appointment_id")
	if !ok {
		return
	}
	if err := h.service.CancelAppointment(r.Context(), ongID, appointmentID); err != nil {
		status, code, msg := mapDomainError(err)
		writeError(w, status, code, msg)
		return
	}
	writeMessage(w, http.StatusOK, "appointment cancelled")
}
