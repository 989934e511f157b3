package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"snackledger/internal/calendar"
	"snackledger/internal/core"
	"snackledger/internal/report"
	"snackledger/internal/services"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func queryInt(r *http.Request, key string) (int, error) {
	v := r.URL.Query().Get(key)
	if v == "" {
		return 0, fmt.Errorf("missing %s", key)
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", key, v)
	}
	return n, nil
}

// handleCalendar returns the days of a month that have records.
func (s *Server) handleCalendar(w http.ResponseWriter, r *http.Request) {
	year, err := queryInt(r, "year")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	month, err := queryInt(r, "month")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if month < 1 || month > 12 {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid month %d", month))
		return
	}

	days := calendar.DaysWithRecords(s.service.Snapshot(), year, time.Month(month))
	writeJSON(w, http.StatusOK, map[string]any{
		"year":  year,
		"month": month,
		"days":  days,
	})
}

// handleDay returns all records of one civil date plus day totals.
func (s *Server) handleDay(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if _, err := core.ParseCivilDate(date); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid date %q", date))
		return
	}

	records := calendar.RecordsOnDate(s.service.Snapshot(), date)
	if records == nil {
		records = []core.Record{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"date":    date,
		"records": records,
		"totals":  report.PeriodTotals(records),
	})
}

// handleSaveRecord creates or updates a record. A payload without an id is a
// new record and gets one assigned.
func (s *Server) handleSaveRecord(w http.ResponseWriter, r *http.Request) {
	var rec core.Record
	if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
		writeError(w, http.StatusBadRequest, "invalid record payload")
		return
	}

	created := rec.ID == 0
	saved, err := s.service.SaveRecord(r.Context(), rec)
	if err != nil {
		slog.ErrorContext(r.Context(), "Save record failed", "error", err)
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	s.purgeReportCaches()

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	writeJSON(w, status, saved)
}

func (s *Server) handleDeleteRecord(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid record id")
		return
	}

	if err := s.service.DeleteRecord(r.Context(), id); err != nil {
		if errors.Is(err, services.ErrRecordNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		slog.ErrorContext(r.Context(), "Delete record failed", "error", err, "id", id)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.purgeReportCaches()
	w.WriteHeader(http.StatusNoContent)
}

// handleSummary returns income/expense/net totals for a year, or for one
// month when the month parameter is present.
func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	year, err := queryInt(r, "year")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	records := report.FilterByYear(s.service.Snapshot(), year)
	resp := map[string]any{"year": year}
	if r.URL.Query().Get("month") != "" {
		month, err := queryInt(r, "month")
		if err != nil || month < 1 || month > 12 {
			writeError(w, http.StatusBadRequest, "invalid month")
			return
		}
		records = report.FilterByYearMonth(records, year, time.Month(month))
		resp["month"] = month
	}
	resp["totals"] = report.PeriodTotals(records)
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleTrend(w http.ResponseWriter, r *http.Request) {
	year, err := queryInt(r, "year")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	granularity, err := report.ParseGranularity(r.URL.Query().Get("granularity"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	key := fmt.Sprintf("%d/%s", year, granularity)
	series, ok := s.trendCache.Get(key)
	if !ok {
		series, err = report.Trend(s.service.Snapshot(), granularity, year)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		s.trendCache.Set(key, series)
	}
	writeJSON(w, http.StatusOK, series)
}

// handleCost returns the expense breakdown by category, wage labels merged,
// largest first.
func (s *Server) handleCost(w http.ResponseWriter, r *http.Request) {
	year, err := queryInt(r, "year")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	key := strconv.Itoa(year)
	records := report.FilterByYear(s.service.Snapshot(), year)
	if r.URL.Query().Get("month") != "" {
		month, err := queryInt(r, "month")
		if err != nil || month < 1 || month > 12 {
			writeError(w, http.StatusBadRequest, "invalid month")
			return
		}
		records = report.FilterByYearMonth(records, year, time.Month(month))
		key = fmt.Sprintf("%d/%d", year, month)
	}

	breakdown, ok := s.costCache.Get(key)
	if !ok {
		breakdown = report.CostBreakdown(records)
		s.costCache.Set(key, breakdown)
	}
	writeJSON(w, http.StatusOK, map[string]any{"categories": breakdown})
}

func (s *Server) handleYears(w http.ResponseWriter, r *http.Request) {
	years := report.Years(s.service.Snapshot(), time.Now())
	writeJSON(w, http.StatusOK, map[string]any{"years": years})
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"income":  core.IncomeCategories(),
		"expense": core.ExpenseGroups(),
	})
}

// handleSync triggers a full resync against the remote endpoint.
func (s *Server) handleSync(w http.ResponseWriter, r *http.Request) {
	dropped, err := s.service.Resync(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Resync failed", "error", err)
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}

	s.purgeReportCaches()
	writeJSON(w, http.StatusOK, map[string]any{
		"records": len(s.service.Snapshot()),
		"dropped": dropped,
	})
}
