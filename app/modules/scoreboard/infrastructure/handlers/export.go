package scoreboardhandlers

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	scoreboardservice "github.com/Black-And-White-Club/scoreboard/app/modules/scoreboard/application"
	"github.com/xuri/excelize/v2"
)

const (
	exportSheet    = "History"
	xlsxMediaType  = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	exportBaseName = "scoreboard-history"
)

var exportHeader = []string{"timestamp", "categoryId", "player", "score", "previousScore", "sourceIp"}

// HandleExportHistory downloads the ledger as CSV (default) or XLSX.
func (h *ScoreboardHandlers) HandleExportHistory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	format := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("format")))
	if format == "" {
		format = "csv"
	}
	if format != "csv" && format != "xlsx" {
		writeError(w, http.StatusBadRequest, "Invalid format")
		return
	}

	entries, err := h.service.History(ctx, historyQuery(r, scoreboardservice.MaxHistoryLimit))
	if err != nil {
		if errors.Is(err, scoreboardservice.ErrValidation) {
			writeError(w, http.StatusBadRequest, "Invalid history filter")
			return
		}
		h.logger.ErrorContext(ctx, "Failed to load history for export", "error", err)
		writeError(w, http.StatusInternalServerError, "Server error")
		return
	}

	rows := exportRows(entries)
	var (
		data      []byte
		mediaType string
	)
	switch format {
	case "xlsx":
		data, err = encodeXLSX(rows)
		mediaType = xlsxMediaType
	default:
		data, err = encodeCSV(rows)
		mediaType = "text/csv; charset=utf-8"
	}
	if err != nil {
		h.logger.ErrorContext(ctx, "Failed to encode history export", "format", format, "error", err)
		writeError(w, http.StatusInternalServerError, "Server error")
		return
	}

	w.Header().Set("Content-Type", mediaType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", exportBaseName+"."+format))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func exportRows(entries []scoreboardservice.HistoryEntry) [][]string {
	rows := make([][]string, 0, len(entries)+1)
	rows = append(rows, exportHeader)
	for _, e := range entries {
		rows = append(rows, []string{
			formatTime(e.Timestamp),
			e.CategoryID,
			e.Player.String(),
			strconv.FormatInt(int64(e.Score), 10),
			strconv.FormatInt(int64(e.PreviousScore), 10),
			e.SourceIP,
		})
	}
	return rows
}

func encodeCSV(rows [][]string) ([]byte, error) {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)
	if err := cw.WriteAll(rows); err != nil {
		return nil, fmt.Errorf("failed to write CSV: %w", err)
	}
	return buf.Bytes(), nil
}

func encodeXLSX(rows [][]string) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), exportSheet); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	for idx, row := range rows {
		axis, err := excelize.CoordinatesToCellName(1, idx+1)
		if err != nil {
			return nil, err
		}
		cells := make([]interface{}, len(row))
		for i, val := range row {
			cells[i] = val
		}
		// Score columns are written as numbers below the header.
		if idx > 0 {
			cells[3], _ = strconv.Atoi(row[3])
			cells[4], _ = strconv.Atoi(row[4])
		}
		if err := f.SetSheetRow(exportSheet, axis, &cells); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", idx+1, err)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write XLSX: %w", err)
	}
	return buf.Bytes(), nil
}
