package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func decode(t *testing.T, rr *httptest.ResponseRecorder) Response {
	t.Helper()
	var resp Response
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return resp
}

func TestOKEnvelope(t *testing.T) {
	rr := httptest.NewRecorder()
	OK(rr, map[string]string{"step": "search"})

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("unexpected content type %q", ct)
	}
	resp := decode(t, rr)
	if !resp.Success || resp.Error != nil {
		t.Fatalf("unexpected envelope: %+v", resp)
	}
}

func TestConflictDefaultsCode(t *testing.T) {
	rr := httptest.NewRecorder()
	Conflict(rr, "", "busy", nil)

	resp := decode(t, rr)
	if rr.Code != http.StatusConflict || resp.Error.Code != "CONFLICT" || resp.Success {
		t.Fatalf("unexpected conflict response: %d %+v", rr.Code, resp)
	}
}

func TestBadGatewayCarriesMessage(t *testing.T) {
	rr := httptest.NewRecorder()
	BadGateway(rr, "Room no longer available", map[string]string{"step": "confirm"})

	resp := decode(t, rr)
	if rr.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", rr.Code)
	}
	if resp.Error.Code != "SERVICE_ERROR" || resp.Error.Message != "Room no longer available" {
		t.Fatalf("unexpected error: %+v", resp.Error)
	}
	if resp.Data == nil {
		t.Fatal("payload must be kept alongside the error")
	}
}

func TestValidationErrorDetails(t *testing.T) {
	rr := httptest.NewRecorder()
	ValidationError(rr, map[string]string{"room_id": "This field is required"})

	resp := decode(t, rr)
	if rr.Code != http.StatusUnprocessableEntity || resp.Error.Details["room_id"] == "" {
		t.Fatalf("unexpected validation response: %d %+v", rr.Code, resp.Error)
	}
}
