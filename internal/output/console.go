// Copyright 2025 SirSeer, LLC
//
// Licensed under the Business Source License 1.1 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://mariadb.com/bsl11
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package output

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

// Console prints diagnostics. Debug lines are only shown in verbose mode.
type Console struct {
	w       io.Writer
	verbose bool

	debug *color.Color
	warn  *color.Color
	err   *color.Color
}

// NewConsole creates a console writing to w. Colors follow the terminal
// detection of github.com/fatih/color unless noColor is set.
func NewConsole(w io.Writer, verbose, noColor bool) *Console {
	if w == nil {
		w = os.Stderr
	}

	c := &Console{
		w:       w,
		verbose: verbose,
		debug:   color.New(color.Faint),
		warn:    color.New(color.FgYellow),
		err:     color.New(color.FgRed, color.Bold),
	}

	if noColor {
		c.debug.DisableColor()
		c.warn.DisableColor()
		c.err.DisableColor()
	}

	return c
}

// Debugf prints a trace line in verbose mode.
func (c *Console) Debugf(format string, args ...interface{}) {
	if !c.verbose {
		return
	}
	c.line(c.debug, "Debug: ", format, args...)
}

// Infof prints a plain status line.
func (c *Console) Infof(format string, args ...interface{}) {
	_, _ = fmt.Fprintln(c.w, fmt.Sprintf(format, args...))
}

// Warnf prints a warning.
func (c *Console) Warnf(format string, args ...interface{}) {
	c.line(c.warn, "Warning: ", format, args...)
}

// Errorf prints an error.
func (c *Console) Errorf(format string, args ...interface{}) {
	c.line(c.err, "Error: ", format, args...)
}

func (c *Console) line(col *color.Color, prefix, format string, args ...interface{}) {
	_, _ = col.Fprintln(c.w, prefix+fmt.Sprintf(format, args...))
}
