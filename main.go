package main

import (
	"fmt"
	"os"
	"time"

	"github.com/kilianp07/ridesim/cmd"
	coremon "github.com/kilianp07/ridesim/core/monitoring"
)

func main() {
	defer func() { coremon.Recovered(recover(), map[string]string{"module": "main"}) }()
	err := cmd.Execute()
	coremon.Flush(2 * time.Second)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
