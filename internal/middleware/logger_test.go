package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
)

func TestLoggerWritesAccessLine(t *testing.T) {
	var buf bytes.Buffer
	l := zerolog.New(&buf)
	h := RequestID(Logger(l)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("boom"))
	})))

	req := httptest.NewRequest(http.MethodPost, "/donate", nil)
	req.Header.Set("X-Request-ID", "rid-1")
	h.ServeHTTP(httptest.NewRecorder(), req)

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("decode log line %q: %v", buf.String(), err)
	}
	if line["level"] != "error" {
		t.Fatalf("level = %v, want error", line["level"])
	}
	if line["status"] != float64(500) || line["bytes"] != float64(4) {
		t.Fatalf("status/bytes = %v/%v", line["status"], line["bytes"])
	}
	if line["request_id"] != "rid-1" || line["path"] != "/donate" || line["method"] != "POST" {
		t.Fatalf("unexpected fields: %v", line)
	}
}
