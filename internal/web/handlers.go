package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"sheetsub/internal/core"
	"sheetsub/internal/logging"
)

// maxRegisterBody caps the registration request body size.
const maxRegisterBody = 64 * 1024

// handleHealth reports liveness.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleSubscriptionLookup is the read path: reconcile the identity query
// from the URL against a freshly fetched snapshot.
//
// GET /api/subscription?email=&phone=&username=
func (s *Server) handleSubscriptionLookup(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	query := core.IdentityQuery{
		Email:    q.Get("email"),
		Phone:    q.Get("phone"),
		Username: q.Get("username"),
	}

	if len(query.Populated()) == 0 {
		s.respondError(w, r, core.ErrAmbiguousQuery, http.StatusBadRequest)
		return
	}

	result, err := s.service.Lookup(r.Context(), query)
	if err != nil {
		s.respondError(w, r, err, lookupStatus(err))
		return
	}

	logging.FromContext(r.Context()).Info("subscription lookup",
		"found", result.Found,
		"matched_fields", result.MatchedFieldCount,
		"candidates", result.CandidateCount,
	)

	writeJSON(w, http.StatusOK, result.View())
}

// registerRequest is the write-path request body.
type registerRequest struct {
	Name             string `json:"name"`
	Email            string `json:"email"`
	Phone            string `json:"phone"`
	Username         string `json:"username"`
	SubscriptionType string `json:"subscriptionType"`
	PaymentMethod    string `json:"paymentMethod"`
}

// validate reports the missing fields, if any. All fields are required on
// the write path.
func (req registerRequest) validate() []string {
	var missing []string
	for name, value := range map[string]string{
		"name":             req.Name,
		"email":            req.Email,
		"phone":            req.Phone,
		"username":         req.Username,
		"subscriptionType": req.SubscriptionType,
		"paymentMethod":    req.PaymentMethod,
	} {
		if strings.TrimSpace(value) == "" {
			missing = append(missing, name)
		}
	}
	return missing
}

// registerResponse is the write-path success body.
type registerResponse struct {
	Success         bool   `json:"success"`
	Message         string `json:"message"`
	MatchingRecords int    `json:"matchingRecords"`
	InstructionID   string `json:"instructionId"`
}

// handleRegister is the write path: validate the registration, require a
// quorum match against a fresh snapshot, and post the update instruction to
// the store collaborator.
//
// POST /api/register
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	body := http.MaxBytesReader(w, r.Body, maxRegisterBody)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		s.respondError(w, r, errors.New("invalid JSON body"), http.StatusBadRequest)
		return
	}

	if missing := req.validate(); len(missing) > 0 {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error":   "all fields are required",
			"missing": missing,
		})
		return
	}

	result, err := s.service.Register(r.Context(), core.Registration{
		Name:             req.Name,
		Email:            req.Email,
		Phone:            req.Phone,
		Username:         req.Username,
		SubscriptionType: req.SubscriptionType,
		PaymentMethod:    req.PaymentMethod,
	})
	if err != nil {
		s.respondError(w, r, err, registerStatus(err))
		return
	}

	logging.FromContext(r.Context()).Info("registration accepted",
		"instruction_id", result.Instruction.InstructionID,
		"target_row", result.Instruction.TargetRowIndex,
		"candidates", result.CandidateCount,
	)

	writeJSON(w, http.StatusOK, registerResponse{
		Success:         true,
		Message:         "Registration successful",
		MatchingRecords: result.CandidateCount,
		InstructionID:   result.Instruction.InstructionID,
	})
}

// lookupStatus maps a read-path error to an HTTP status. A quorum miss is
// not an error on the read path, so the only client fault is an empty query;
// everything else means the snapshot collaborator failed us.
func lookupStatus(err error) int {
	if errors.Is(err, core.ErrAmbiguousQuery) {
		return http.StatusBadRequest
	}
	return http.StatusBadGateway
}

// registerStatus maps a write-path error to an HTTP status.
func registerStatus(err error) int {
	switch {
	case errors.Is(err, core.ErrAmbiguousQuery):
		return http.StatusBadRequest
	case errors.Is(err, core.ErrNoMatchingRecord):
		return http.StatusNotFound
	default:
		return http.StatusBadGateway
	}
}
