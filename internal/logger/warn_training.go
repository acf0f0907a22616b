package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
)

var (
	once    sync.Once
	warnOut io.Writer = os.Stderr
)

// WarnOnce tells the user, a single time per process, that the estimator
// could not be trained.
func WarnOnce(err error) {
	once.Do(func() {
		fmt.Fprintf(warnOut, "⚠️ Unable to train the cooking time model: %v\n", err)
		fmt.Fprintln(warnOut, "🍲 Cooking time estimates are unavailable until the next start.")
	})
}
