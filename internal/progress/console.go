// Package progress renders query progress.
package progress

import (
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"

	"github.com/binarymatt/k4q/internal/domain"
)

// Console draws a progress bar for each query. The last status message becomes the
// bar's description.
type Console struct {
	out         io.Writer
	mu          sync.Mutex
	description string
}

func NewConsole(out io.Writer) *Console {
	return &Console{out: out}
}

func (c *Console) Notify(message string) {
	c.mu.Lock()
	c.description = message
	c.mu.Unlock()
	fmt.Fprintln(c.out, color.CyanString("»"), message)
}

func (c *Console) Start(estimatedMax domain.Count) domain.Progress {
	c.mu.Lock()
	description := c.description
	c.mu.Unlock()

	total := int64(estimatedMax)
	if total == 0 {
		total = -1
	}
	out := c.out
	return &consoleProgress{
		max: int64(estimatedMax),
		bar: progressbar.NewOptions64(total,
			progressbar.OptionSetWriter(out),
			progressbar.OptionSetDescription(description),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
			progressbar.OptionOnCompletion(func() {
				fmt.Fprintln(out)
			}),
		),
	}
}

type consoleProgress struct {
	bar      *progressbar.ProgressBar
	max      int64
	consumed int64
	done     bool
}

func (p *consoleProgress) Increment() {
	if p.done {
		return
	}
	p.consumed++
	// an estimate can undercount when the partition is compacted while we read
	if p.max > 0 && p.consumed > p.max {
		p.max = p.consumed
		p.bar.ChangeMax64(p.max)
	}
	_ = p.bar.Add(1)
}

func (p *consoleProgress) Complete() {
	if p.done {
		return
	}
	p.done = true
	_ = p.bar.Finish()
}
