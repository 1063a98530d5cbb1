// Package export renders simulation results: the per-vehicle solution
// format and per-job outcome reports.
package export

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/kilianp07/ridesim/core/scoring"
)

// WriteSolution writes one line per vehicle: the job count followed by the
// job ids in assignment order. A vehicle without jobs yields a bare "0".
func WriteSolution(w io.Writer, assignments [][]int) error {
	bw := bufio.NewWriter(w)
	for _, jobs := range assignments {
		var sb strings.Builder
		sb.WriteString(strconv.Itoa(len(jobs)))
		for _, id := range jobs {
			sb.WriteByte(' ')
			sb.WriteString(strconv.Itoa(id))
		}
		sb.WriteByte('\n')
		if _, err := bw.WriteString(sb.String()); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Format selects the outcome report encoding.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
)

// WriteOutcomes dispatches to WriteCSV or WriteJSON.
func WriteOutcomes(w io.Writer, format Format, outcomes []scoring.Outcome) error {
	switch format {
	case FormatCSV, "":
		return WriteCSV(w, outcomes)
	case FormatJSON:
		return WriteJSON(w, outcomes)
	default:
		return fmt.Errorf("unknown export format %q", format)
	}
}

// WriteJSON writes the outcomes to w as a JSON array.
func WriteJSON(w io.Writer, outcomes []scoring.Outcome) error {
	enc := json.NewEncoder(w)
	return enc.Encode(outcomes)
}

// WriteCSV writes the outcomes to w in CSV format. The score column holds
// confirmed points only.
func WriteCSV(w io.Writer, outcomes []scoring.Outcome) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"job_id", "vehicle_id", "departure", "completion", "bonus", "status", "score"}); err != nil {
		return err
	}
	for _, o := range outcomes {
		completion := ""
		if o.Completed {
			completion = strconv.Itoa(o.Completion)
		}
		score, _ := o.Value.Confirmed()
		rec := []string{
			strconv.Itoa(o.Job),
			strconv.Itoa(o.Vehicle),
			strconv.Itoa(o.Departure),
			completion,
			strconv.FormatBool(o.Bonus),
			status(o),
			strconv.Itoa(score),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func status(o scoring.Outcome) string {
	switch {
	case !o.Completed:
		return "in_progress"
	case o.Late:
		return "late"
	default:
		return "on_time"
	}
}
