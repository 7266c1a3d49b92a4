package assessment

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/carehome/carehome-api/internal/pkg/errorhandler"
	"github.com/carehome/carehome-api/internal/pkg/response"
	"github.com/carehome/carehome-api/internal/pkg/validator"
)

// Handler handles medical assessment HTTP requests
type Handler struct {
	svc *Service
}

// NewHandler creates assessment handler
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// Create handles POST /assessments
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		errorhandler.HandleErrorWithDetails(r.Context(), w, http.StatusUnprocessableEntity, "VALIDATION_ERROR",
			"Please select a Resident and Assessment Type.", errs, nil)
		return
	}

	a, err := h.svc.Create(r.Context(), &req)
	if err != nil {
		var fieldErrs FieldErrors
		switch {
		case errors.As(err, &fieldErrs):
			response.ValidationError(w, fieldErrs)
		case errors.Is(err, ErrTypeNotFound):
			response.ValidationError(w, map[string]string{"assessment_type_id": "Selected assessment type does not exist"})
		default:
			errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create assessment", err)
		}
		return
	}

	response.Created(w, &CreatedResponse{
		AssessmentID: a.ID,
		Status:       a.Status,
		Message:      "Assessment created successfully.",
	})
}

// Types handles GET /assessments/types
func (h *Handler) Types(w http.ResponseWriter, r *http.Request) {
	types, err := h.svc.Types(r.Context())
	if err != nil {
		errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load assessment types", err)
		return
	}
	response.OK(w, types)
}

// Residents handles GET /assessments/residents
func (h *Handler) Residents(w http.ResponseWriter, r *http.Request) {
	residents, err := h.svc.Residents(r.Context())
	if err != nil {
		errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load residents", err)
		return
	}
	response.OK(w, residents)
}

// ListByRecord handles GET /records/{recordID}/assessments
func (h *Handler) ListByRecord(w http.ResponseWriter, r *http.Request) {
	recordID, err := uuid.Parse(chi.URLParam(r, "recordID"))
	if err != nil {
		response.BadRequest(w, "Invalid record ID")
		return
	}

	assessments, err := h.svc.ListByRecord(r.Context(), recordID)
	if err != nil {
		errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list assessments", err)
		return
	}
	response.WithTotal(w, assessments, len(assessments))
}
