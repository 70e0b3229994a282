package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordDBQuery(t *testing.T) {
	before := testutil.ToFloat64(dbQueryTotal.WithLabelValues("select"))
	slowBefore := testutil.ToFloat64(dbSlowQueries.WithLabelValues("select"))

	RecordDBQuery("select", time.Millisecond)
	RecordDBQuery("select", 2*SlowQueryThreshold)

	assert.Equal(t, before+2, testutil.ToFloat64(dbQueryTotal.WithLabelValues("select")))
	assert.Equal(t, slowBefore+1, testutil.ToFloat64(dbSlowQueries.WithLabelValues("select")))
}

func TestRecordDBError(t *testing.T) {
	before := testutil.ToFloat64(dbQueryErrors.WithLabelValues("insert"))
	RecordDBError("insert")
	assert.Equal(t, before+1, testutil.ToFloat64(dbQueryErrors.WithLabelValues("insert")))
}

func TestRecordHTTPRequest(t *testing.T) {
	before := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "/api/posts", "200"))
	RecordHTTPRequest("GET", "/api/posts", 200, 5*time.Millisecond)
	assert.Equal(t, before+1, testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "/api/posts", "200")))
}
