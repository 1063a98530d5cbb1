package journal

import "fmt"

// Options selects and tunes a Store backend.
type Options struct {
	Backend    string
	Path       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// Open builds the store named by opts.Backend. A jsonl backend with a
// positive MaxSizeMB rotates.
func Open(opts Options) (Store, error) {
	switch opts.Backend {
	case "jsonl", "":
		if opts.MaxSizeMB > 0 {
			return NewRotatingJSONLStore(opts.Path, opts.MaxSizeMB, opts.MaxBackups, opts.MaxAgeDays)
		}
		return NewJSONLStore(opts.Path)
	case "sqlite":
		return NewSQLiteStore(opts.Path)
	default:
		return nil, fmt.Errorf("unknown journal backend %q", opts.Backend)
	}
}
