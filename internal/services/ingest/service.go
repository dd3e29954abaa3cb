package ingest

import (
	"bufio"
	"context"
	"crypto/sha256"
	"encoding/csv"
	"encoding/hex"
	"errors"
	"io"
	"log"
	"mime"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"fivec_analysis/internal/ports"
	"fivec_analysis/internal/tabular"
)

// Service reads a delimited or spreadsheet dataset into an in-memory raw
// table. Format detection is best-effort with cross-format fallback, and
// the stream is hashed while it is read so runs can be audited against
// their exact input bytes.
type Service struct {
	Opener ports.FileOpener
}

func NewService(opener ports.FileOpener) *Service {
	return &Service{Opener: opener}
}

type Result struct {
	Table  *tabular.Table
	Source string
	Format string
	Rows   int
	SHA256 string
	Size   int64
}

func (s *Service) ReadTable(ctx context.Context, filePath string) (Result, error) {
	t0 := time.Now()
	log.Printf("[ING][START] path=%q", filePath)

	rc, meta, err := s.Opener.Open(ctx, filePath)
	if err != nil {
		log.Printf("[ING][ERR] open: %v", err)
		return Result{}, err
	}
	defer rc.Close()

	format := detectFormat(filePath, meta.ContentType)
	log.Printf("[ING] source=%s content_type=%q size=%d detected_format=%s", meta.Source, meta.ContentType, meta.Size, format)

	hasher := sha256.New()
	tee := io.TeeReader(rc, hasher)

	var table *tabular.Table
	var readErr error

	switch format {
	case "xlsx":
		table, readErr = readXLSXFirstSheet(tee)
		if readErr != nil {
			log.Printf("[ING][XLSX][ERR] %v — fallback to CSV", readErr)
			table, readErr = readCSV(tee)
			if readErr == nil {
				format = "csv"
			}
		}
	case "csv":
		table, readErr = readCSV(tee)
		if readErr != nil {
			log.Printf("[ING][CSV][ERR] %v — fallback to XLSX", readErr)
			table, readErr = readXLSXFirstSheet(tee)
			if readErr == nil {
				format = "xlsx"
			}
		}
	default:
		log.Printf("[ING] unknown format — try XLSX then CSV")
		table, readErr = readXLSXFirstSheet(tee)
		if readErr != nil {
			table, readErr = readCSV(tee)
			if readErr == nil {
				format = "csv"
			}
		} else {
			format = "xlsx"
		}
	}

	if readErr != nil {
		log.Printf("[ING][ERR] read pipeline: %v", readErr)
		return Result{}, readErr
	}

	sum := hex.EncodeToString(hasher.Sum(nil))
	log.Printf("[ING][DONE] fmt=%s rows=%d sha256=%s duration=%s", format, table.Len(), sum, time.Since(t0))

	return Result{
		Table:  table,
		Source: meta.Source,
		Format: format,
		Rows:   table.Len(),
		SHA256: sum,
		Size:   meta.Size,
	}, nil
}

func readCSV(r io.Reader) (*tabular.Table, error) {
	reader := csv.NewReader(bufio.NewReader(r))
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, err
	}
	log.Printf("[ING][CSV] header=%v", header)

	t := headerTable(header)
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Printf("[ING][CSV][WARN] read row err: %v", err)
			continue
		}
		t.Append(toRow(t.Columns, record))
	}
	return t, nil
}

func readXLSXFirstSheet(r io.Reader) (*tabular.Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("xlsx has no sheets")
	}
	sheet := sheets[0]
	log.Printf("[ING][XLSX] first_sheet=%q", sheet)

	rows, err := f.Rows(sheet)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		if rows.Error() != nil {
			return nil, rows.Error()
		}
		return tabular.New(), nil
	}
	header, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	log.Printf("[ING][XLSX] header=%v", header)

	t := headerTable(header)
	for rows.Next() {
		cols, err := rows.Columns()
		if err != nil {
			log.Printf("[ING][XLSX][WARN] read row err: %v", err)
			continue
		}
		t.Append(toRow(t.Columns, cols))
	}
	if err := rows.Error(); err != nil {
		return nil, err
	}
	return t, nil
}

func headerTable(header []string) *tabular.Table {
	cols := make([]string, len(header))
	for i, h := range header {
		cols[i] = strings.TrimSpace(h)
	}
	return tabular.New(cols...)
}

func toRow(columns []string, record []string) tabular.Row {
	row := make(tabular.Row, len(columns))
	for i, col := range columns {
		if i < len(record) {
			if v := tabular.Parse(record[i]); !v.IsMissing() {
				row.Set(col, v)
			}
		}
	}
	return row
}

func detectFormat(filePath, contentType string) string {
	p := filePath
	if u, err := url.Parse(filePath); err == nil && u != nil && u.Path != "" {
		p = u.Path
	}
	ext := strings.ToLower(strings.TrimPrefix(path.Ext(p), "."))
	switch ext {
	case "xlsx":
		return "xlsx"
	case "csv":
		return "csv"
	}
	med, _, _ := mime.ParseMediaType(contentType)
	switch med {
	case "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet":
		return "xlsx"
	case "text/csv", "application/csv", "text/plain":
		return "csv"
	}
	return ""
}
