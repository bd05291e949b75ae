// Package psmtable reads tab separated tables of scored identifications,
// such as Percolator input files or search engine exports.
package psmtable

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
)

var (
	ErrMissingColumn = errors.New("psmtable: column not found")
	ErrInvalidScore  = errors.New("psmtable: invalid score")
)

// Columns names the columns to read. ID is optional; when empty, the
// line number is used as identifier.
type Columns struct {
	ID    string
	Score string
	Label string
}

// Table holds the selected columns, one entry per data row
type Table struct {
	IDs    []string
	Scores []float64
	Labels []string
}

// Read reads a tab separated table with a header row. Lines starting
// with '#' are ignored.
func Read(r io.Reader, cols Columns) (Table, error) {
	var t Table
	cr := csv.NewReader(r)
	cr.Comma = '\t'
	cr.Comment = '#'
	cr.LazyQuotes = true
	// Percolator tables have a variable number of protein columns
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return t, fmt.Errorf("psmtable: reading header: %w", err)
	}
	idCol := -1
	if cols.ID != `` {
		if idCol, err = column(header, cols.ID); err != nil {
			return t, err
		}
	}
	scoreCol, err := column(header, cols.Score)
	if err != nil {
		return t, err
	}
	labelCol, err := column(header, cols.Label)
	if err != nil {
		return t, err
	}

	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return t, err
		}
		line, _ := cr.FieldPos(0)
		if len(rec) <= scoreCol || len(rec) <= labelCol || len(rec) <= idCol {
			return t, fmt.Errorf("psmtable: line %d has only %d fields", line, len(rec))
		}
		score, err := strconv.ParseFloat(rec[scoreCol], 64)
		if err != nil {
			return t, fmt.Errorf("%w: %q on line %d", ErrInvalidScore, rec[scoreCol], line)
		}
		id := strconv.Itoa(line)
		if idCol >= 0 {
			id = rec[idCol]
		}
		t.IDs = append(t.IDs, id)
		t.Scores = append(t.Scores, score)
		t.Labels = append(t.Labels, rec[labelCol])
	}
	return t, nil
}

func column(header []string, name string) (int, error) {
	for i, h := range header {
		if h == name {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: %q", ErrMissingColumn, name)
}
