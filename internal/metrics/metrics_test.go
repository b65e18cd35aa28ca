package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordRSVPSplitsByOutcome(t *testing.T) {
	created := testutil.ToFloat64(rsvpSubmissions.WithLabelValues("created"))
	updated := testutil.ToFloat64(rsvpSubmissions.WithLabelValues("updated"))

	RecordRSVP(true)
	RecordRSVP(false)
	RecordRSVP(false)

	assert.Equal(t, created+1, testutil.ToFloat64(rsvpSubmissions.WithLabelValues("created")))
	assert.Equal(t, updated+2, testutil.ToFloat64(rsvpSubmissions.WithLabelValues("updated")))
}

func TestHandlerExposesRegisteredCollectors(t *testing.T) {
	RecordHTTPRequest("GET", "", 404, 3*time.Millisecond)
	RecordPublish()

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.True(t, strings.Contains(body, `weddinghub_http_requests_total{method="GET",route="unmatched",status="404"}`))
	assert.True(t, strings.Contains(body, "weddinghub_invitations_published_total"))
}
