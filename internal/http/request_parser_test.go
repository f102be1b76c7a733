package http

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/skprof1/expenses-tracker/internal/core"
)

var fixedNow = time.Date(2025, 12, 15, 10, 0, 0, 0, time.UTC)

func TestParseMonthParams(t *testing.T) {
	tests := []struct {
		name  string
		query url.Values
		want  core.Period
	}{
		{"defaults", url.Values{}, core.Period{Year: 2025, Month: 12}},
		{"explicit", url.Values{"year": {"2024"}, "month": {"6"}}, core.Period{Year: 2024, Month: 6}},
		{"invalid ignored", url.Values{"year": {"abc"}, "month": {"13"}}, core.Period{Year: 2025, Month: 12}},
		{"only month", url.Values{"month": {" 3 "}}, core.Period{Year: 2025, Month: 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseMonthParams(tt.query, fixedNow); got != tt.want {
				t.Errorf("ParseMonthParams() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestParsePoint(t *testing.T) {
	p, err := ParsePoint(url.Values{"x": {"150.5"}, "y": {"45"}})
	if err != nil || p.X != 150.5 || p.Y != 45 {
		t.Fatalf("ParsePoint = %+v, %v", p, err)
	}
	if _, err := ParsePoint(url.Values{"x": {"1"}}); !errors.Is(err, errMissingCoordinate) {
		t.Errorf("missing y: err = %v", err)
	}
	if _, err := ParsePoint(url.Values{"x": {"a"}, "y": {"1"}}); err == nil {
		t.Error("expected error for non-numeric x")
	}
}

func TestParseStamp(t *testing.T) {
	tests := map[string]float64{
		"1734270000123": 1734270000123,
		"":              0,
		"soon":          0,
		"-5":            0,
	}
	for in, want := range tests {
		if got := ParseStamp(url.Values{"t": {in}}); got != want {
			t.Errorf("ParseStamp(%q) = %v, want %v", in, got, want)
		}
	}
}

func newBodyRequest(body, contentType string) *http.Request {
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	r.Header.Set("Content-Type", contentType)
	return r
}

func TestParseTransaction(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		ct        string
		wantErr   error
		wantCents int64
		wantDate  string
	}{
		{
			name:      "json",
			body:      `{"type":"Expense","category":"Car","amount":12.5,"date":"2025-12-03","note":"fuel"}`,
			ct:        "application/json",
			wantCents: 1250,
			wantDate:  "2025-12-03",
		},
		{
			name:      "form with decimal comma and default date",
			body:      "type=income&category=Salary&amount=3200%2C00",
			ct:        "application/x-www-form-urlencoded",
			wantCents: 320000,
			wantDate:  "2025-12-15",
		},
		{
			name:    "bad amount",
			body:    "type=expense&category=Car&amount=-4",
			ct:      "application/x-www-form-urlencoded",
			wantErr: core.ErrInvalidAmount,
		},
		{
			name:    "bad date",
			body:    `{"type":"expense","category":"Car","amount":"4","date":"03/12/2025"}`,
			ct:      "application/json",
			wantErr: core.ErrInvalidDate,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewRequestBodyParser(newBodyRequest(tt.body, tt.ct))
			if err := p.Parse(); err != nil {
				t.Fatalf("Parse: %v", err)
			}
			tx, err := p.ParseTransaction(fixedNow)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseTransaction: %v", err)
			}
			if tx.Amount.Cents != tt.wantCents || tx.Date.Format("2006-01-02") != tt.wantDate {
				t.Fatalf("tx = %+v", tx)
			}
			if err := tx.Validate(); err != nil {
				t.Fatalf("parsed transaction invalid: %v", err)
			}
		})
	}
}

func TestRequestBodyParserInvalidJSON(t *testing.T) {
	p := NewRequestBodyParser(newBodyRequest(`{"type":`, "application/json"))
	if err := p.Parse(); err == nil {
		t.Fatal("expected JSON error")
	}
}

func TestSanitizeInput(t *testing.T) {
	if got := sanitizeInput("  fuel\x00\x07 stop\t "); got != "fuel stop" {
		t.Errorf("sanitizeInput = %q", got)
	}
}
