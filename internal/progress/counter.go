package progress

import (
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
)

// Counter is a total-less spinner with a running file count, used for
// the sizing pass where the number of files is unknown up front.
type Counter struct {
	bar *progressbar.ProgressBar
}

func NewCounter(description string) *Counter {
	bar := progressbar.NewOptions64(
		-1,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetDescription(description),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("files"),
		progressbar.OptionThrottle(120*time.Millisecond),
	)
	return &Counter{bar: bar}
}

func (c *Counter) Inc() {
	_ = c.bar.Add(1)
}

func (c *Counter) Close() {
	_ = c.bar.Finish()
}
