package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
)

const maxBodyBytes = 100 << 10

type statusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		a.Logger.Warn().Err(err).Msg("write response")
	}
}

func (a *App) success(w http.ResponseWriter, message string) {
	a.json(w, http.StatusOK, statusResponse{Status: "success", Message: message})
}

func (a *App) error(w http.ResponseWriter, code int, message string) {
	if message == "" {
		message = http.StatusText(code)
	}
	a.json(w, code, statusResponse{Status: "error", Message: message})
}

// decodeBody reads a single JSON object into dst. An empty body decodes as {};
// anything after the first value is rejected. The returned status is
// meaningful only when err is non-nil.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) (int, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	err := dec.Decode(dst)
	if errors.Is(err, io.EOF) {
		return 0, nil
	}
	if err == nil {
		if err = expectEOF(dec); err == nil {
			return 0, nil
		}
	}

	var (
		maxErr  *http.MaxBytesError
		castErr *castError
	)
	switch {
	case errors.As(err, &maxErr):
		return http.StatusRequestEntityTooLarge, fmt.Errorf("request entity too large (limit %d bytes)", maxErr.Limit)
	case errors.As(err, &castErr):
		// Field type mismatches are record validation failures and share
		// the persistence failure response.
		return http.StatusInternalServerError, castErr
	default:
		return http.StatusBadRequest, fmt.Errorf("invalid JSON body: %w", err)
	}
}

var errTrailingData = errors.New("unexpected data after JSON value")

func expectEOF(dec *json.Decoder) error {
	var extra json.RawMessage
	err := dec.Decode(&extra)
	switch {
	case errors.Is(err, io.EOF):
		return nil
	case err == nil:
		return errTrailingData
	default:
		return err
	}
}

// text is a free-form form field. It accepts strings, numbers and booleans
// and keeps their textual form; objects and arrays fail with castError.
// A field that is absent or null stays unset, an empty string is kept.
type text struct {
	value string
	set   bool
}

// ptr returns the field for storage, nil when it was not submitted.
func (t text) ptr() *string {
	if !t.set {
		return nil
	}
	v := t.value
	return &v
}

type castError struct {
	value string
}

func (e *castError) Error() string {
	return fmt.Sprintf("cast to string failed for value %s", e.value)
}

func (t *text) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case len(b) == 0 || bytes.Equal(b, []byte("null")):
		*t = text{}
	case b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*t = text{value: s, set: true}
	case bytes.Equal(b, []byte("true")), bytes.Equal(b, []byte("false")):
		*t = text{value: string(b), set: true}
	case b[0] == '-' || (b[0] >= '0' && b[0] <= '9'):
		*t = text{value: formatNumber(b), set: true}
	default:
		value := string(b)
		if len(value) > 64 {
			value = value[:64] + "..."
		}
		return &castError{value: value}
	}
	return nil
}

// formatNumber renders a JSON number in plain decimal, so 1e3 is stored as
// "1000". Values outside float64 range keep their literal form.
func formatNumber(b []byte) string {
	f, err := strconv.ParseFloat(string(b), 64)
	if err != nil {
		return string(b)
	}
	if f == 0 {
		return "0"
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
