// Package scenarios runs YAML-described datasets through the engine and
// checks their expected outcome.
package scenarios

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/kilianp07/ridesim/core/model"
)

// ProblemDef is an inline dataset. Each job row is
// start_x start_y end_x end_y earliest_start latest_finish.
type ProblemDef struct {
	Rows     int     `yaml:"rows"`
	Cols     int     `yaml:"cols"`
	Vehicles int     `yaml:"vehicles"`
	Bonus    int     `yaml:"bonus"`
	Ticks    int     `yaml:"ticks"`
	Jobs     [][]int `yaml:"jobs"`
}

// ToModel builds the problem, numbering jobs in row order.
func (p ProblemDef) ToModel() (model.Problem, error) {
	out := model.Problem{
		Rows:     p.Rows,
		Cols:     p.Cols,
		Vehicles: p.Vehicles,
		Bonus:    p.Bonus,
		MaxTicks: p.Ticks,
		Jobs:     make([]model.Job, len(p.Jobs)),
	}
	for i, row := range p.Jobs {
		if len(row) != 6 {
			return model.Problem{}, fmt.Errorf("job %d: expected 6 fields, got %d", i, len(row))
		}
		out.Jobs[i] = model.NewJob(i,
			model.Coord{X: row[0], Y: row[1]},
			model.Coord{X: row[2], Y: row[3]},
			row[4], row[5])
	}
	return out, nil
}

// Expected lists the checked results. Nil fields are not checked.
type Expected struct {
	Assignments [][]int     `yaml:"assignments"`
	Score       int         `yaml:"score"`
	Remaining   *int        `yaml:"remaining,omitempty"`
	OnTime      *int        `yaml:"on_time,omitempty"`
	Late        *int        `yaml:"late,omitempty"`
	Bonus       *int        `yaml:"bonus,omitempty"`
	Relaxations []string    `yaml:"relaxations,omitempty"`
	Departures  map[int]int `yaml:"departures,omitempty"`
	Completions map[int]int `yaml:"completions,omitempty"`
}

type Scenario struct {
	Name        string     `yaml:"name"`
	Description string     `yaml:"description,omitempty"`
	Problem     ProblemDef `yaml:"problem"`
	Expected    Expected   `yaml:"expected"`
}

func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, err
	}
	if sc.Name == "" {
		return nil, fmt.Errorf("%s: scenario has no name", path)
	}
	return &sc, nil
}
