// internal/cmdutil/log.go
package cmdutil

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
)

// NewLogger returns a leveled key/value logger writing to dst (normally stderr).
// quiet raises the level to errors only.
func NewLogger(dst io.Writer, prefix string, quiet bool, level string) (*log.Logger, error) {
	lvl := log.InfoLevel
	if level != "" {
		l, err := log.ParseLevel(level)
		if err != nil {
			return nil, fmt.Errorf("--log-level: %w", err)
		}
		lvl = l
	}
	if quiet {
		lvl = log.ErrorLevel
	}
	return log.NewWithOptions(dst, log.Options{
		Prefix: prefix,
		Level:  lvl,
	}), nil
}
