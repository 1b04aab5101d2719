// pkg/api/handlers.go
package api

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/SeanOsorio/ETLProjecto/pkg/model"
)

// numeric rides columns available through /stats/{column}
var statsColumns = map[string]bool{
	"passenger_count": true,
	"trip_distance":   true,
	"fare_amount":     true,
	"extra":           true,
	"mta_tax":         true,
	"tip_amount":      true,
	"tolls_amount":    true,
	"total_amount":    true,
}

// all rides columns available through /filter
var filterColumns = map[string]bool{
	"ride_id":            true,
	"pickup_datetime":    true,
	"pickup_locationid":  true,
	"dropoff_locationid": true,
	"passenger_count":    true,
	"trip_distance":      true,
	"fare_amount":        true,
	"extra":              true,
	"mta_tax":            true,
	"tip_amount":         true,
	"tolls_amount":       true,
	"total_amount":       true,
	"payment_type":       true,
}

// ColumnStats holds basic statistics for one numeric rides column.
type ColumnStats struct {
	Column string   `json:"column"`
	Count  int64    `json:"count"`
	Mean   *float64 `json:"mean"`
	Sum    *float64 `json:"sum"`
	Min    *float64 `json:"min"`
	Max    *float64 `json:"max"`
}

// summaryResponse mirrors the database summary as JSON.
type summaryResponse struct {
	DatabasePath string           `json:"database_path"`
	TotalRecords int64            `json:"total_records"`
	Tables       map[string]int64 `json:"tables"`
}

type logEntry struct {
	LogID            int64  `json:"log_id"`
	ProcessName      string `json:"process_name"`
	StartTime        string `json:"start_time"`
	EndTime          string `json:"end_time,omitempty"`
	Status           string `json:"status"`
	RecordsProcessed int64  `json:"records_processed"`
	ErrorMessage     string `json:"error_message,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"message": "ride booking ETL API is running"})
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := s.store.Summarize(r.Context())
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}

	s.writeJSON(w, http.StatusOK, summaryResponse{
		DatabasePath: summary.DatabasePath,
		TotalRecords: summary.TotalRecords,
		Tables:       summary.TableCounts,
	})
}

func (s *Server) handleLogs(w http.ResponseWriter, r *http.Request) {
	limit := 10
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			s.writeError(w, http.StatusBadRequest, errors.New("limit must be a positive integer"))
			return
		}
		limit = n
	}

	logs, err := s.store.RecentLogs(r.Context(), limit)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}

	entries := make([]logEntry, 0, len(logs))
	for _, log := range logs {
		entry := logEntry{
			LogID:            log.LogID,
			ProcessName:      log.ProcessName,
			StartTime:        log.StartTime.Format("2006-01-02 15:04:05"),
			Status:           log.Status,
			RecordsProcessed: log.RecordsProcessed,
		}
		if log.EndTime.Valid {
			entry.EndTime = log.EndTime.Time.Format("2006-01-02 15:04:05")
		}
		if log.ErrorMessage.Valid {
			entry.ErrorMessage = log.ErrorMessage.String
		}
		entries = append(entries, entry)
	}

	s.writeJSON(w, http.StatusOK, map[string]interface{}{"logs": entries})
}

func (s *Server) handleFilter(w http.ResponseWriter, r *http.Request) {
	column := r.URL.Query().Get("column")
	if !filterColumns[column] {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("column %s does not exist", column))
		return
	}
	if !r.URL.Query().Has("value") {
		s.writeError(w, http.StatusBadRequest, errors.New("value query parameter is required"))
		return
	}
	value := r.URL.Query().Get("value")

	// column is validated against the whitelist above; LIKE gives the same
	// case-insensitive substring match as the original search
	query := fmt.Sprintf(`
		SELECT ride_id, pickup_datetime, pickup_locationid, dropoff_locationid,
		       passenger_count, trip_distance, fare_amount, extra, mta_tax,
		       tip_amount, tolls_amount, total_amount, payment_type
		FROM rides
		WHERE CAST(%s AS TEXT) LIKE '%%'||?||'%%'
		ORDER BY ride_id`, column)

	rides := []model.Ride{}
	if err := s.store.DB().SelectContext(r.Context(), &rides, query, value); err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}

	s.writeJSON(w, http.StatusOK, rides)
}

func (s *Server) handleColumnStats(w http.ResponseWriter, r *http.Request) {
	column := mux.Vars(r)["column"]
	if !statsColumns[column] {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("column %s is not a numeric rides column", column))
		return
	}

	// column is validated against the whitelist above
	query := fmt.Sprintf(
		`SELECT COUNT(%[1]s), AVG(%[1]s), SUM(%[1]s), MIN(%[1]s), MAX(%[1]s) FROM rides`,
		column)

	stats := ColumnStats{Column: column}
	var mean, sum, min, max sql.NullFloat64
	err := s.store.DB().QueryRowContext(r.Context(), query).
		Scan(&stats.Count, &mean, &sum, &min, &max)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}

	if mean.Valid {
		stats.Mean = &mean.Float64
	}
	if sum.Valid {
		stats.Sum = &sum.Float64
	}
	if min.Valid {
		stats.Min = &min.Float64
	}
	if max.Valid {
		stats.Max = &max.Float64
	}

	s.writeJSON(w, http.StatusOK, stats)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Error("Failed to encode response", zap.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	s.logger.Warn("Request failed", zap.Int("status", status), zap.Error(err))
	s.writeJSON(w, status, map[string]string{"error": err.Error()})
}
