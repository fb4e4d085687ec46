package store

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"sync"

	"pulsecheck/internal/services"
)

// Columns is the fixed header of the tabular check-in file, in storage
// order.
var Columns = []string{
	"date", "user_pseudo_id", "role", "tenure_bucket", "team_id",
	"q1", "q2", "q3", "q4", "note_text", "note_text_redacted",
	"sentiment_score", "burnout_flag",
}

// CSVStore persists check-ins to a row-append CSV file. Appends are
// guarded by a mutex and write a single row; the file is never rewritten
// wholesale. First-time use creates the file with the header only.
type CSVStore struct {
	mu   sync.Mutex
	path string
}

func NewCSVStore(path string) (*CSVStore, error) {
	s := &CSVStore{path: path}
	if err := s.ensureFile(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *CSVStore) ensureFile() error {
	if _, err := os.Stat(s.path); err == nil {
		return s.checkHeader()
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("stat %s: %w", s.path, err)
	}
	f, err := os.OpenFile(s.path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("create %s: %w", s.path, err)
	}
	defer f.Close()
	w := csv.NewWriter(f)
	if err := w.Write(Columns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	w.Flush()
	return w.Error()
}

func (s *CSVStore) checkHeader() error {
	f, err := os.Open(s.path)
	if err != nil {
		return fmt.Errorf("open %s: %w", s.path, err)
	}
	defer f.Close()
	header, err := csv.NewReader(f).Read()
	if err == io.EOF {
		return fmt.Errorf("%s exists but is empty; refusing to use it", s.path)
	}
	if err != nil {
		return fmt.Errorf("read header of %s: %w", s.path, err)
	}
	if len(header) != len(Columns) {
		return fmt.Errorf("%s has %d columns, want %d", s.path, len(header), len(Columns))
	}
	for i, col := range Columns {
		if header[i] != col {
			return fmt.Errorf("%s column %d is %q, want %q", s.path, i, header[i], col)
		}
	}
	return nil
}

func (s *CSVStore) Append(c *services.Checkin) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open %s for append: %w", s.path, err)
	}
	defer f.Close()
	w := csv.NewWriter(f)
	if err := w.Write(recordToRow(c)); err != nil {
		return fmt.Errorf("append row: %w", err)
	}
	w.Flush()
	return w.Error()
}

func (s *CSVStore) LoadAll() ([]*services.Checkin, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", s.path, err)
	}
	defer f.Close()
	r := csv.NewReader(f)
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s is missing its header", s.path)
	}
	out := make([]*services.Checkin, 0, len(rows)-1)
	for i, row := range rows[1:] {
		rec, err := rowToRecord(row)
		if err != nil {
			return nil, fmt.Errorf("%s row %d: %w", s.path, i+2, err)
		}
		out = append(out, rec)
	}
	return out, nil
}

func recordToRow(c *services.Checkin) []string {
	return []string{
		c.Date,
		c.PseudoID,
		string(c.Role),
		string(c.TenureBucket),
		c.TeamID,
		strconv.Itoa(c.Q1),
		strconv.Itoa(c.Q2),
		strconv.Itoa(c.Q3),
		strconv.Itoa(c.Q4),
		c.NoteText,
		c.NoteTextRedacted,
		strconv.FormatFloat(c.SentimentScore, 'g', -1, 64),
		strconv.Itoa(c.BurnoutFlag),
	}
}

func rowToRecord(row []string) (*services.Checkin, error) {
	if len(row) != len(Columns) {
		return nil, fmt.Errorf("has %d fields, want %d", len(row), len(Columns))
	}
	qs := make([]int, 4)
	for i := 0; i < 4; i++ {
		v, err := strconv.Atoi(row[5+i])
		if err != nil {
			return nil, fmt.Errorf("parse q%d: %w", i+1, err)
		}
		qs[i] = v
	}
	sentiment, err := strconv.ParseFloat(row[11], 64)
	if err != nil {
		return nil, fmt.Errorf("parse sentiment_score: %w", err)
	}
	flag, err := strconv.Atoi(row[12])
	if err != nil {
		return nil, fmt.Errorf("parse burnout_flag: %w", err)
	}
	return &services.Checkin{
		Date:             row[0],
		PseudoID:         row[1],
		Role:             services.Role(row[2]),
		TenureBucket:     services.TenureBucket(row[3]),
		TeamID:           row[4],
		Q1:               qs[0],
		Q2:               qs[1],
		Q3:               qs[2],
		Q4:               qs[3],
		NoteText:         row[9],
		NoteTextRedacted: row[10],
		SentimentScore:   sentiment,
		BurnoutFlag:      flag,
	}, nil
}
