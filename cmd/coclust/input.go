package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/hupe1980/coclust/matrix"
)

// Record is one input row: id,text,type[,label].
type Record struct {
	ID    string
	Text  string
	Type  string
	Label string
}

var errMissingLabel = errors.New("record has no label")

// ReadRecords reads records from a CSV file with a header line.
// Rows need at least id and text; type and label are optional.
func ReadRecords(r io.Reader) ([]Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	if _, err := cr.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("read header: %w", err)
	}

	var records []Record
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if len(row) < 2 {
			line, _ := cr.FieldPos(0)
			return nil, fmt.Errorf("line %d: want at least id,text", line)
		}

		rec := Record{ID: row[0], Text: row[1]}
		if len(row) > 2 {
			rec.Type = row[2]
		}
		if len(row) > 3 {
			rec.Label = row[3]
		}
		records = append(records, rec)
	}
	return records, nil
}

func readRecordsFile(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadRecords(f)
}

// WriteRecords writes records with the id,text,type,label header.
func WriteRecords(w io.Writer, records []Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"id", "text", "type", "label"}); err != nil {
		return err
	}
	for _, r := range records {
		if err := cw.Write([]string{r.ID, r.Text, r.Type, r.Label}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteMatrix writes m as CSV, one row per line.
func WriteMatrix(w io.Writer, m *matrix.Symmetric) error {
	cw := csv.NewWriter(w)
	row := make([]string, m.N())
	for i := range m.N() {
		for j := range row {
			row[j] = strconv.FormatFloat(m.At(i, j), 'g', -1, 64)
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadMatrix parses a matrix written by WriteMatrix.
func ReadMatrix(r io.Reader) (*matrix.Symmetric, error) {
	rows, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, err
	}

	values := make([][]float64, len(rows))
	for i, row := range rows {
		values[i] = make([]float64, len(row))
		for j, cell := range row {
			if values[i][j], err = strconv.ParseFloat(cell, 64); err != nil {
				return nil, fmt.Errorf("row %d col %d: %w", i, j, err)
			}
		}
	}
	return matrix.FromRows(values)
}

func texts(records []Record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Text
	}
	return out
}

func hasTypes(records []Record) bool {
	for _, r := range records {
		if r.Type == "" {
			return false
		}
	}
	return len(records) > 0
}

// categoriesAndLabels extracts the type and integer label columns.
func categoriesAndLabels(records []Record) ([]string, []int, error) {
	cats := make([]string, len(records))
	labels := make([]int, len(records))
	for i, r := range records {
		if r.Label == "" {
			return nil, nil, fmt.Errorf("record %s: %w", r.ID, errMissingLabel)
		}
		l, err := strconv.Atoi(r.Label)
		if err != nil {
			return nil, nil, fmt.Errorf("record %s: label: %w", r.ID, err)
		}
		cats[i] = r.Type
		labels[i] = l
	}
	return cats, labels, nil
}

func createOutput(path string, stdout io.Writer) (io.WriteCloser, error) {
	if path == "" || path == "-" {
		return nopCloser{stdout}, nil
	}
	return os.Create(path)
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }
