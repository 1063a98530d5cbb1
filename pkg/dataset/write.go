package dataset

import (
	"bufio"
	"fmt"
	"io"

	"github.com/kilianp07/ridesim/core/model"
)

// Write renders p in the format Parse accepts.
func Write(w io.Writer, p model.Problem) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "%d %d %d %d %d %d\n",
		p.Rows, p.Cols, p.Vehicles, len(p.Jobs), p.Bonus, p.MaxTicks); err != nil {
		return err
	}
	for _, j := range p.Jobs {
		if _, err := fmt.Fprintf(bw, "%d %d %d %d %d %d\n",
			j.Start.X, j.Start.Y, j.End.X, j.End.Y, j.EarliestStart, j.LatestFinish); err != nil {
			return err
		}
	}
	return bw.Flush()
}
