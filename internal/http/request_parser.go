package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/skprof1/expenses-tracker/internal/chart"
	"github.com/skprof1/expenses-tracker/internal/core"
)

const maxBodyBytes = 64 << 10

var errMissingCoordinate = errors.New("x and y are required")

// ParseMonthParams reads year and month from the query, defaulting to the
// month of now. Out-of-range values fall back to the default as well.
func ParseMonthParams(query url.Values, now time.Time) core.Period {
	p := core.CurrentPeriod(now)
	if v := strings.TrimSpace(query.Get("year")); v != "" {
		if y, err := strconv.Atoi(v); err == nil && y > 0 {
			p.Year = y
		}
	}
	if v := strings.TrimSpace(query.Get("month")); v != "" {
		if m, err := strconv.Atoi(v); err == nil && m >= 1 && m <= 12 {
			p.Month = m
		}
	}
	return p
}

// ParsePoint reads the pointer position, in chart coordinates, from x and y.
func ParsePoint(query url.Values) (chart.Point, error) {
	xs, ys := strings.TrimSpace(query.Get("x")), strings.TrimSpace(query.Get("y"))
	if xs == "" || ys == "" {
		return chart.Point{}, errMissingCoordinate
	}
	x, err := strconv.ParseFloat(xs, 64)
	if err != nil {
		return chart.Point{}, fmt.Errorf("invalid x %q", xs)
	}
	y, err := strconv.ParseFloat(ys, 64)
	if err != nil {
		return chart.Point{}, fmt.Errorf("invalid y %q", ys)
	}
	return chart.Point{X: x, Y: y}, nil
}

// ParseStamp reads the optional client event stamp t (milliseconds).
// Missing or malformed stamps yield 0, meaning unordered.
func ParseStamp(query url.Values) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(query.Get("t")), 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}

// RequestBodyParser reads a JSON or form-encoded body once.
type RequestBodyParser struct {
	body     []byte
	jsonData map[string]any
	formData url.Values
	parsed   bool
	err      error
}

func NewRequestBodyParser(r *http.Request) *RequestBodyParser {
	p := &RequestBodyParser{}
	p.body, p.err = io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	return p
}

// Parse decodes the body as JSON when it looks like an object, as form
// values otherwise.
func (p *RequestBodyParser) Parse() error {
	if p.parsed {
		return p.err
	}
	p.parsed = true
	if p.err != nil {
		return p.err
	}

	if len(p.body) == 0 {
		p.formData = url.Values{}
		return nil
	}
	if p.body[0] == '{' {
		p.jsonData = make(map[string]any)
		p.err = json.Unmarshal(p.body, &p.jsonData)
		return p.err
	}
	p.formData, p.err = url.ParseQuery(string(p.body))
	return p.err
}

// Get returns a trimmed, sanitized value from the parsed data.
func (p *RequestBodyParser) Get(key string) string {
	if p.jsonData != nil {
		if val, ok := p.jsonData[key]; ok {
			return sanitizeInput(stringValue(val))
		}
		return ""
	}
	if p.formData != nil {
		return sanitizeInput(p.formData.Get(key))
	}
	return ""
}

func (p *RequestBodyParser) IsJSON() bool {
	return p.jsonData != nil
}

func stringValue(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	default:
		return ""
	}
}

// fieldError names the input that failed to parse.
type fieldError struct {
	Field string
	Err   error
}

func (e *fieldError) Error() string { return e.Field + ": " + e.Err.Error() }
func (e *fieldError) Unwrap() error { return e.Err }

// ParseTransaction builds an unsaved transaction from the fields type,
// category, amount, date (YYYY-MM-DD, default today) and note.
func (p *RequestBodyParser) ParseTransaction(now time.Time) (core.Transaction, error) {
	tx := core.Transaction{
		Type:     core.TransactionType(strings.ToLower(p.Get("type"))),
		Category: p.Get("category"),
		Note:     p.Get("note"),
	}

	cents, err := core.ParseDecimalToCents(p.Get("amount"))
	if err != nil {
		return core.Transaction{}, &fieldError{Field: "amount", Err: err}
	}
	tx.Amount = core.Money{Cents: cents}

	if ds := p.Get("date"); ds != "" {
		d, err := parseDate(ds)
		if err != nil {
			return core.Transaction{}, &fieldError{Field: "date", Err: core.ErrInvalidDate}
		}
		tx.Date = d
	} else {
		tx.Date = core.NewDate(now.Year(), int(now.Month()), now.Day())
	}
	return tx, nil
}
