// Package dataset reads and writes the plain-text problem format: a header
// of six integers followed by one six-integer record per job.
package dataset

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/kilianp07/ridesim/core/model"
)

// ErrEmptyInput is returned when the input holds no header.
var ErrEmptyInput = errors.New("empty input")

// fieldsPerRecord is the width of the header and of every job record.
const fieldsPerRecord = 6

// ParseError reports a malformed record. Line is 1-based.
type ParseError struct {
	Line int
	Msg  string
	Err  error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("line %d: %s: %v", e.Line, e.Msg, e.Err)
	}
	return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ReadFile parses the dataset stored at path.
func ReadFile(path string) (model.Problem, error) {
	f, err := os.Open(path)
	if err != nil {
		return model.Problem{}, err
	}
	defer f.Close()
	p, err := Parse(f)
	if err != nil {
		return model.Problem{}, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// Parse reads a whole dataset. Job ids follow record order. Blank lines are
// skipped; any record after the announced job count is an error.
func Parse(r io.Reader) (model.Problem, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	next := func() ([]int, bool, error) {
		for sc.Scan() {
			line++
			text := strings.TrimSpace(sc.Text())
			if text == "" {
				continue
			}
			rec, err := parseRecord(line, text)
			return rec, true, err
		}
		return nil, false, sc.Err()
	}

	head, ok, err := next()
	if err != nil {
		return model.Problem{}, err
	}
	if !ok {
		return model.Problem{}, ErrEmptyInput
	}
	for i, v := range head {
		if v < 0 {
			return model.Problem{}, &ParseError{Line: line, Msg: fmt.Sprintf("header field %d is negative", i+1)}
		}
	}
	p := model.Problem{
		Rows:     head[0],
		Cols:     head[1],
		Vehicles: head[2],
		Bonus:    head[4],
		MaxTicks: head[5],
	}
	count := head[3]
	p.Jobs = make([]model.Job, 0, min(count, 1<<16))

	for id := 0; id < count; id++ {
		rec, ok, err := next()
		if err != nil {
			return model.Problem{}, err
		}
		if !ok {
			return model.Problem{}, &ParseError{Line: line + 1, Msg: fmt.Sprintf("expected %d jobs, found %d", count, id)}
		}
		job := model.NewJob(id,
			model.Coord{X: rec[0], Y: rec[1]},
			model.Coord{X: rec[2], Y: rec[3]},
			rec[4], rec[5])
		if err := job.Validate(); err != nil {
			return model.Problem{}, &ParseError{Line: line, Msg: "invalid job", Err: err}
		}
		p.Jobs = append(p.Jobs, job)
	}

	if _, ok, err := next(); err != nil {
		return model.Problem{}, err
	} else if ok {
		return model.Problem{}, &ParseError{Line: line, Msg: fmt.Sprintf("unexpected record after %d jobs", count)}
	}
	return p, nil
}

func parseRecord(line int, text string) ([]int, error) {
	fields := strings.Fields(text)
	if len(fields) != fieldsPerRecord {
		return nil, &ParseError{Line: line, Msg: fmt.Sprintf("expected %d fields, got %d", fieldsPerRecord, len(fields))}
	}
	out := make([]int, fieldsPerRecord)
	for i, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return nil, &ParseError{Line: line, Msg: fmt.Sprintf("field %d", i+1), Err: err}
		}
		out[i] = v
	}
	return out, nil
}
