package errors

import (
	"encoding/json"
	"fmt"
	"os"
)

// fatalJSON is the shape emitted on stderr when FatalError is called with
// jsonOutput set, so scripted callers get a parseable line instead of
// free text.
type fatalJSON struct {
	Error string `json:"error"`
}

// FatalError prints a single diagnostic line identifying the failing
// operation and exits the process with status 1. Apart from main's
// own exits for --version and a missing FILE argument, it is the only
// place in ifcinspect that calls os.Exit; core packages (step,
// resolver, extract, export) always return an error instead.
func FatalError(err error, jsonOutput bool) {
	if err == nil {
		return
	}
	if jsonOutput {
		enc := json.NewEncoder(os.Stderr)
		_ = enc.Encode(fatalJSON{Error: err.Error()})
	} else {
		fmt.Fprintf(os.Stderr, "ifcinspect: %v\n", err)
	}
	os.Exit(1)
}
