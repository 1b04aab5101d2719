package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/SeanOsorio/ETLProjecto/pkg/model"
	"github.com/SeanOsorio/ETLProjecto/pkg/store"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "test.db"), zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	ctx := context.Background()
	require.NoError(t, st.InitSchema(ctx))

	_, err = st.DB().ExecContext(ctx, `
		INSERT INTO rides (ride_id, pickup_datetime, trip_distance, fare_amount)
		VALUES ('R1', '2024-03-01 08:30:00', 2.0, 10.0),
		       ('R2', '2024-03-01 09:00:00', 4.0, 20.0)
	`)
	require.NoError(t, err)

	return NewServer(st, zap.NewNop())
}

func doRequest(t *testing.T, s *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestHealthEndpoint(t *testing.T) {
	rec := doRequest(t, newTestServer(t), "/")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSummaryEndpoint(t *testing.T) {
	rec := doRequest(t, newTestServer(t), "/summary")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		TotalRecords int64            `json:"total_records"`
		Tables       map[string]int64 `json:"tables"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, int64(2), body.Tables["rides"])
	assert.Equal(t, int64(6), body.Tables["payment_types"])
}

func TestFilterEndpoint(t *testing.T) {
	s := newTestServer(t)
	rec := doRequest(t, s, "/filter?column=ride_id&value=r1")
	require.Equal(t, http.StatusOK, rec.Code)

	var rides []model.Ride
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rides))
	// substring match is case-insensitive
	require.Len(t, rides, 1)
	assert.Equal(t, "R1", rides[0].RideID)

	rec = doRequest(t, s, "/filter?column=trip_distance&value=4")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rides))
	require.Len(t, rides, 1)
	assert.Equal(t, "R2", rides[0].RideID)
}

func TestFilterEndpointNoMatches(t *testing.T) {
	rec := doRequest(t, newTestServer(t), "/filter?column=ride_id&value=nosuchride")
	require.Equal(t, http.StatusOK, rec.Code)

	var rides []model.Ride
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rides))
	assert.Empty(t, rides)
}

func TestFilterEndpointValidation(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(t, s, "/filter?column=created_at&value=2024")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(t, s, "/filter?column=rides;%20DROP%20TABLE%20rides&value=x")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(t, s, "/filter?column=ride_id")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestColumnStatsEndpoint(t *testing.T) {
	rec := doRequest(t, newTestServer(t), "/stats/trip_distance")
	require.Equal(t, http.StatusOK, rec.Code)

	var stats ColumnStats
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	assert.Equal(t, int64(2), stats.Count)
	require.NotNil(t, stats.Mean)
	assert.Equal(t, 3.0, *stats.Mean)
	require.NotNil(t, stats.Sum)
	assert.Equal(t, 6.0, *stats.Sum)
}

func TestColumnStatsRejectsUnknownColumn(t *testing.T) {
	rec := doRequest(t, newTestServer(t), "/stats/ride_id")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLogsEndpoint(t *testing.T) {
	s := newTestServer(t)
	rec := doRequest(t, s, "/logs?limit=5")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, s, "/logs?limit=-1")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
