package enquiry

import (
	"errors"
	"net"
	"net/http"
	"strings"

	"github.com/carehome/carehome-api/internal/pkg/errorhandler"
	"github.com/carehome/carehome-api/internal/pkg/response"
	"github.com/carehome/carehome-api/internal/pkg/validator"
)

// Handler handles enquiry HTTP requests
type Handler struct {
	svc *Service
}

// NewHandler creates enquiry handler
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// Submit handles POST /enquiries (public)
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	var req SubmitRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		errorhandler.HandleErrorWithDetails(r.Context(), w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Validation failed", errs, nil)
		return
	}

	e, err := h.svc.Submit(r.Context(), &req, clientIP(r), r.UserAgent())
	if err != nil {
		var fieldErrs FieldErrors
		switch {
		case errors.As(err, &fieldErrs):
			response.ValidationError(w, fieldErrs)
		case errors.Is(err, ErrPropertyNotFound):
			response.ValidationError(w, map[string]string{"care_home_id": "Selected care home does not exist"})
		default:
			errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to submit enquiry", err)
		}
		return
	}

	response.Created(w, &SubmittedResponse{
		EnquiryID: e.ID,
		Reference: e.Reference(),
		Message:   "Your enquiry has been received.",
	})
}

// Properties handles GET /enquiries/properties
func (h *Handler) Properties(w http.ResponseWriter, r *http.Request) {
	options, err := h.svc.Properties(r.Context())
	if err != nil {
		errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load care homes", err)
		return
	}
	response.OK(w, options)
}

func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		if ip := net.ParseIP(strings.TrimSpace(strings.Split(fwd, ",")[0])); ip != nil {
			return ip.String()
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
