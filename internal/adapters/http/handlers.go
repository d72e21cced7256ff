package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/adotaqui/platform-service/internal/application"
	"github.com/adotaqui/platform-service/internal/ports"
)

func (h *Handler) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, err := bearerTokenFromHeader(r.Header.Get("Authorization"))
		if err != nil {
			writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "invalid or missing credentials")
			return
		}
		claims, err := h.service.ValidateToken(raw)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "invalid or missing credentials")
			return
		}
		next.ServeHTTP(w, r.WithContext(contextWithClaims(r.Context(), claims)))
	})
}

func contextWithClaims(ctx context.Context, claims ports.AuthClaims) context.Context {
	return context.WithValue(ctx, ctxKeyClaims, claims)
}

// ongClaims resolves the {ong_id} path param and checks the bearer token is
// scoped to that ONG.
func (h *Handler) ongClaims(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	ongID, err := uuid.Parse(chi.URLParam(r, "ong_id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "ong_id must be a uuid")
		return uuid.Nil, false
	}
	claims, ok := claimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "invalid or missing credentials")
		return uuid.Nil, false
	}
	if claims.OngID != ongID.String() {
		writeError(w, http.StatusForbidden, "FORBIDDEN", "token is not scoped to this ong")
		return uuid.Nil, false
	}
	return ongID, true
}

func pathUUID(w http.ResponseWriter, r *http.Request, param string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, param))
	if err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", param+" must be a uuid")
		return uuid.Nil, false
	}
	return id, true
}

func (h *Handler) registerOng(w http.ResponseWriter, r *http.Request) {
	var req application.RegisterOngRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid json body")
		return
	}
	resp, err := h.service.RegisterOng(r.Context(), req, r.Header.Get("Idempotency-Key"))
	if err != nil {
		status, code, msg := mapDomainError(err)
		writeError(w, status, code, msg)
		return
	}
	writeSuccess(w, http.StatusCreated, resp)
}

func (h *Handler) listOngs(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	resp, err := h.service.ListOngs(r.Context(), limit, offset)
	if err != nil {
		status, code, msg := mapDomainError(err)
		writeError(w, status, code, msg)
		return
	}
	writeSuccess(w, http.StatusOK, resp)
}

func (h *Handler) getOng(w http.ResponseWriter, r *http.Request) {
	ongID, ok := pathUUID(w, r, "ong_id")
	if !ok {
		return
	}
	resp, err := h.service.GetOng(r.Context(), ongID)
	if err != nil {
		status, code, msg := mapDomainError(err)
		writeError(w, status, code, msg)
		return
	}
	writeSuccess(w, http.StatusOK, resp)
}

func (h *Handler) addPet(w http.ResponseWriter, r *http.Request) {
	ongID, ok := h.ongClaims(w, r)
	if !ok {
		return
	}
	var req application.AddPetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid json body")
		return
	}
	resp, err := h.service.AddPet(r.Context(), ongID, req, r.Header.Get("Idempotency-Key"))
	if err != nil {
		status, code, msg := mapDomainError(err)
		writeError(w, status, code, msg)
		return
	}
	writeSuccess(w, http.StatusCreated, resp)
}

func (h *Handler) listPets(w http.ResponseWriter, r *http.Request) {
	ongID, ok := pathUUID(w, r, "ong_id")
	if !ok {
		return
	}
	includeAdopted := r.URL.Query().Get("include_adopted") == "true"
	resp, err := h.service.ListPets(r.Context(), ongID, includeAdopted)
	if err != nil {
		status, code, msg := mapDomainError(err)
		writeError(w, status, code, msg)
		return
	}
	writeSuccess(w, http.StatusOK, resp)
}

func (h *Handler) markPetAdopted(w http.ResponseWriter, r *http.Request) {
	ongID, ok := h.ongClaims(w, r)
	if !ok {
		return
	}
	petID, ok := pathUUID(w, r, "pet_id")
	if !ok {
		return
	}
	resp, err := h.service.MarkPetAdopted(r.Context(), ongID, petID)
	if err != nil {
		status, code, msg := mapDomainError(err)
		writeError(w, status, code, msg)
		return
	}
	writeSuccess(w, http.StatusOK, resp)
}

func (h *Handler) putPaymentConfig(w http.ResponseWriter, r *http.Request) {
	ongID, ok := h.ongClaims(w, r)
	if !ok {
		return
	}
	var req application.PutPaymentConfigRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid json body")
		return
	}
	resp, err := h.service.PutPaymentConfig(r.Context(), ongID, req)
	if err != nil {
		status, code, msg := mapDomainError(err)
		writeError(w, status, code, msg)
		return
	}
	writeSuccess(w, http.StatusOK, resp)
}

// getPaymentConfig is public; a valid bearer token scoped to the ONG lifts
// the redaction of payout identifiers.
func (h *Handler) getPaymentConfig(w http.ResponseWriter, r *http.Request) {
	ongID, ok := pathUUID(w, r, "ong_id")
	if !ok {
		return
	}
	isOwner := false
	if raw, err := bearerTokenFromHeader(r.Header.Get("Authorization")); err == nil {
		if claims, err := h.service.ValidateToken(raw); err == nil && claims.OngID == ongID.String() {
			isOwner = true
		}
	}
	resp, err := h.service.GetPaymentConfig(r.Context(), ongID, isOwner)
	if err != nil {
		status, code, msg := mapDomainError(err)
		writeError(w, status, code, msg)
		return
	}
	writeSuccess(w, http.StatusOK, resp)
}
