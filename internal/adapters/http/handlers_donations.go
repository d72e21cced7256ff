package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/adotaqui/platform-service/internal/application"
)

func (h *Handler) createDonation(w http.ResponseWriter, r *http.Request) {
	var req application.CreateDonationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid json body")
		return
	}
	resp, err := h.service.CreateDonation(r.Context(), req, r.Header.Get("Idempotency-Key"))
	if err != nil {
		status, code, msg := mapDomainError(err)
		writeError(w, status, code, msg)
		return
	}
	writeSuccess(w, http.StatusCreated, resp)
}

func (h *Handler) getDonation(w http.ResponseWriter, r *http.Request) {
	donationID, ok := pathUUID(w, r, "donation_id")
	if !ok {
		return
	}
	resp, err := h.service.GetDonation(r.Context(), donationID)
	if err != nil {
		status, code, msg := mapDomainError(err)
		writeError(w, status, code, msg)
		return
	}
	writeSuccess(w, http.StatusOK, resp)
}

func (h *Handler) listDonations(w http.ResponseWriter, r *http.Request) {
	ongID, ok := h.ongClaims(w, r)
	if !ok {
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	resp, err := h.service.ListDonations(r.Context(), ongID, limit, offset)
	if err != nil {
		status, code, msg := mapDomainError(err)
		writeError(w, status, code, msg)
		return
	}
	writeSuccess(w, http.StatusOK, resp)
}

func (h *Handler) confirmDonation(w http.ResponseWriter, r *http.Request) {
	ongID, ok := h.ongClaims(w, r)
	if !ok {
		return
	}
	donationID, ok := pathUUID(w, r, "donation_id")
	if !ok {
		return
	}
	resp, err := h.service.ConfirmDonation(r.Context(), ongID, donationID)
	if err != nil {
		status, code, msg := mapDomainError(err)
		writeError(w, status, code, msg)
		return
	}
	writeSuccess(w, http.StatusOK, resp)
}
