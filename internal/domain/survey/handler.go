package survey

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/carehome/carehome-api/internal/domain/record"
	"github.com/carehome/carehome-api/internal/pkg/errorhandler"
	"github.com/carehome/carehome-api/internal/pkg/response"
	"github.com/carehome/carehome-api/internal/pkg/validator"
)

// Handler handles resident survey HTTP requests
type Handler struct {
	svc *Service
}

// NewHandler creates survey handler
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// Initial handles GET /records/{recordID}/survey
func (h *Handler) Initial(w http.ResponseWriter, r *http.Request) {
	recordID, err := uuid.Parse(chi.URLParam(r, "recordID"))
	if err != nil {
		response.BadRequest(w, "Invalid record ID")
		return
	}

	data, err := h.svc.InitialData(r.Context(), recordID)
	if err != nil {
		if errors.Is(err, record.ErrRecordNotFound) {
			response.NotFound(w, "Enquiry record not found")
			return
		}
		errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, "INTERNAL_ERROR", "Could not load survey data", err)
		return
	}
	response.OK(w, data)
}

// Submit handles POST /records/{recordID}/survey
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	recordID, err := uuid.Parse(chi.URLParam(r, "recordID"))
	if err != nil {
		response.BadRequest(w, "Invalid record ID")
		return
	}

	var req SubmitRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		errorhandler.HandleErrorWithDetails(r.Context(), w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Please fill in all ratings", errs, nil)
		return
	}

	resp, err := h.svc.Submit(r.Context(), recordID, &req)
	if err != nil {
		if errors.Is(err, record.ErrRecordNotFound) {
			response.NotFound(w, "Enquiry record not found")
			return
		}
		errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, "INTERNAL_ERROR", "Error submitting survey", err)
		return
	}

	response.Created(w, &SubmittedResponse{
		ResponseID:   resp.ID,
		ResponseDate: resp.ResponseDate.String(),
		Message:      "Survey submitted successfully!",
	})
}
