// Package progress wraps pb bars with the template used when stderr is not a
// terminal.
package progress

import (
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/cheggaaa/pb/v3/termutil"
)

const plainTemplate = `{{with string . "prefix"}}{{.}} {{end}}{{counters . }} {{bar . }} {{percent . }} {{speed . }} {{rtime . "ETA %s"}}{{with string . "suffix"}} {{.}}{{end}}` + "\n"

// Bar is the subset of *pb.ProgressBar the pipeline uses. Nop satisfies it
// when progress output is disabled.
type Bar interface {
	Increment() *pb.ProgressBar
	Finish() *pb.ProgressBar
}

func Start(total int64, name string, refresh time.Duration) Bar {
	bar := pb.Start64(total)
	bar.Set("prefix", name)
	bar.SetRefreshRate(refresh)
	if w, err := termutil.TerminalWidth(); w == 0 || err != nil {
		bar.SetTemplateString(plainTemplate)
	}
	return bar
}

// New starts a bar when enabled and returns Nop otherwise.
func New(enabled bool, total int64, name string) Bar {
	if !enabled {
		return Nop{}
	}
	return Start(total, name, time.Second)
}

type Nop struct{}

func (Nop) Increment() *pb.ProgressBar { return nil }
func (Nop) Finish() *pb.ProgressBar    { return nil }
