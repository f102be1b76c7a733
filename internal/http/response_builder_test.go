package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/skprof1/expenses-tracker/internal/core"
)

func TestHTMXResponseBuilder_Triggers(t *testing.T) {
	w := httptest.NewRecorder()

	NewHTMXResponse().
		TriggerTransactionRecorded(core.Period{Year: 2024, Month: 1}).
		TriggerFormReset().
		TriggerNotification(NotificationSuccess, "Saved", 3000).
		Write(w)

	trigger := w.Header().Get("HX-Trigger")
	for _, part := range []string{
		`"transaction:recorded"`,
		`"form:reset"`,
		`"show-notification"`,
		`"year":2024`,
		`"month":1`,
		`"type":"success"`,
	} {
		if !strings.Contains(trigger, part) {
			t.Errorf("HX-Trigger missing %q: %s", part, trigger)
		}
	}
}

func TestHTMXResponseBuilder_NoTriggerHeaderWhenEmpty(t *testing.T) {
	w := httptest.NewRecorder()
	NewHTMXResponse().Header("X-Custom", "value").Write(w)

	if w.Header().Get("HX-Trigger") != "" {
		t.Error("HX-Trigger should not be set")
	}
	if w.Header().Get("X-Custom") != "value" {
		t.Error("custom header missing")
	}
}

func TestErrorResponseEscapes(t *testing.T) {
	w := httptest.NewRecorder()
	ErrorResponse(http.StatusUnprocessableEntity, `<script>alert("x")</script>`).Write(w)

	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("status = %d", w.Code)
	}
	if strings.Contains(w.Body.String(), "<script>") {
		t.Errorf("body not escaped: %s", w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("content type = %q", ct)
	}
}

func TestRespondError(t *testing.T) {
	w := httptest.NewRecorder()
	RespondError(w, http.StatusBadRequest, "invalid request", map[string]string{"field": "amount"})

	var body ErrorBody
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if w.Code != http.StatusBadRequest || body.Error != "invalid request" || body.Details == nil {
		t.Fatalf("unexpected response %d %+v", w.Code, body)
	}
}
