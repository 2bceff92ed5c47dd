package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestRecordTask(t *testing.T) {
	before := testutil.ToFloat64(TasksTotal.WithLabelValues("metrics_test", "success"))

	RecordTask("metrics_test", "success", 150*time.Millisecond)

	after := testutil.ToFloat64(TasksTotal.WithLabelValues("metrics_test", "success"))
	assert.Equal(t, before+1, after)
}

func TestRecordReply(t *testing.T) {
	okBefore := testutil.ToFloat64(RepliesTotal.WithLabelValues("metrics_test", "success"))
	errBefore := testutil.ToFloat64(RepliesTotal.WithLabelValues("metrics_test", "error"))

	RecordReply("metrics_test", nil)
	RecordReply("metrics_test", errors.New("boom"))

	assert.Equal(t, okBefore+1, testutil.ToFloat64(RepliesTotal.WithLabelValues("metrics_test", "success")))
	assert.Equal(t, errBefore+1, testutil.ToFloat64(RepliesTotal.WithLabelValues("metrics_test", "error")))
}

func TestServer_Endpoints(t *testing.T) {
	nopLogger := zerolog.Nop()
	RecordUpdate("message", "metrics_test")
	handler := NewServer(0, &nopLogger).Handler()

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "esbot_updates_total")
}
