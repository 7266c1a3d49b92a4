package property

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/umahmood/haversine"

	"github.com/carehome/carehome-api/internal/pkg/errorhandler"
	"github.com/carehome/carehome-api/internal/pkg/response"
	"github.com/carehome/carehome-api/internal/pkg/validator"
)

// Handler handles property HTTP requests
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// careTypeParams returns every care_type value from the raw query.
// url.ParseQuery drops pairs containing a bare ';', so the raw string is split by hand.
func careTypeParams(rawQuery string) []string {
	var values []string
	for _, pair := range strings.Split(rawQuery, "&") {
		key, value, _ := strings.Cut(pair, "=")
		if key != "care_type" {
			continue
		}
		if unescaped, err := url.QueryUnescape(value); err == nil {
			value = unescaped
		}
		values = append(values, value)
	}
	return values
}

func splitCareTypes(raw string) []string {
	return strings.FieldsFunc(raw, func(r rune) bool { return r == ';' || r == ',' })
}

// parseListQuery reads care_type (repeatable, ';' or ',' separated) and near=lat,lng
func parseListQuery(r *http.Request) (ListQuery, map[string]string) {
	var q ListQuery
	details := map[string]string{}

	for _, raw := range careTypeParams(r.URL.RawQuery) {
		for _, ct := range splitCareTypes(raw) {
			ct = strings.TrimSpace(ct)
			if ct == "" {
				continue
			}
			if err := validator.ValidateVar(ct, "care_type"); err != nil {
				details["care_type"] = "Invalid care type. Must be: " + strings.Join(validator.CareTypes, ", ")
				continue
			}
			q.CareTypes = append(q.CareTypes, ct)
		}
	}

	if near := r.URL.Query().Get("near"); near != "" {
		parts := strings.Split(near, ",")
		var lat, lng float64
		var errLat, errLng error
		if len(parts) == 2 {
			lat, errLat = strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
			lng, errLng = strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		}
		if len(parts) != 2 || errLat != nil || errLng != nil || lat < -90 || lat > 90 || lng < -180 || lng > 180 {
			details["near"] = "near must be lat,lng"
		} else {
			q.Near = &haversine.Coord{Lat: lat, Lon: lng}
		}
	}
	return q, details
}

// List handles GET /properties
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	q, details := parseListQuery(r)
	if len(details) > 0 {
		response.ValidationError(w, details)
		return
	}

	props, err := h.service.List(r.Context(), q)
	if err != nil {
		errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list properties", err)
		return
	}
	response.WithTotal(w, props, len(props))
}

// Markers handles GET /properties/markers
func (h *Handler) Markers(w http.ResponseWriter, r *http.Request) {
	q, details := parseListQuery(r)
	if len(details) > 0 {
		response.ValidationError(w, details)
		return
	}

	markers, err := h.service.Markers(r.Context(), q)
	if err != nil {
		errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load map markers", err)
		return
	}
	response.OK(w, markers)
}
