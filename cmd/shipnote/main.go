package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/aretw0/shipnote/pkg/core"
)

func main() {
	// Local .env files are a convenience for development; absence is fine.
	_ = godotenv.Load()
	Execute()
}

func fatal(msg string, err error) {
	fmt.Fprintf(os.Stderr, "%s: %s: %v\n", msg, errorKind(err), err)
	os.Exit(1)
}

// errorKind names the failure class so operators can tell a bad
// credential from a flaky network without reading stack traces.
func errorKind(err error) string {
	switch {
	case errors.Is(err, core.ErrAuthentication):
		return "authentication error"
	case errors.Is(err, core.ErrConflict):
		return "conflict error"
	case errors.Is(err, core.ErrDuplicateVersion):
		return "duplicate version error"
	case errors.Is(err, core.ErrNoMatchingHistory):
		return "history error"
	case errors.Is(err, core.ErrTransientNetwork):
		return "transient network error"
	case errors.Is(err, core.ErrFatalAPI):
		return "API error"
	default:
		return "error"
	}
}
