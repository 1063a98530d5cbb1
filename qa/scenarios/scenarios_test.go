package scenarios

import (
	"os"
	"path/filepath"
	"testing"
)

func TestScenario(t *testing.T) {
	files, err := filepath.Glob("*.yaml")
	if err != nil {
		t.Fatalf("glob: %v", err)
	}
	if len(files) == 0 {
		t.Fatal("no scenario files")
	}
	for _, f := range files {
		sc, err := Load(f)
		if err != nil {
			t.Fatalf("load %s: %v", f, err)
		}
		t.Run(sc.Name, func(t *testing.T) {
			RunScenario(t, sc)
		})
	}
}

func TestLoadInvalid(t *testing.T) {
	if _, err := Load("no-file.yaml"); err == nil {
		t.Fatal("expected error for missing file")
	}
	dir := t.TempDir()
	cases := map[string]string{
		"bad.yaml":     ":",
		"noname.yaml":  "problem:\n  vehicles: 1\n",
		"badtype.yaml": "name: x\nproblem:\n  jobs: nope\n",
	}
	for name, body := range cases {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
		if _, err := Load(path); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestProblemDefRejectsShortRows(t *testing.T) {
	def := ProblemDef{Vehicles: 1, Ticks: 5, Jobs: [][]int{{0, 0, 1}}}
	if _, err := def.ToModel(); err == nil {
		t.Fatal("expected error for short job row")
	}
}
