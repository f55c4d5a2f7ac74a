package log

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// Component forwards the printf style loggers of badger and sarama into slog,
// tagging every line with the component name.
type Component struct {
	Name   string
	Logger *slog.Logger
}

func Badger() *Component {
	return &Component{Name: "badger"}
}

func Sarama() *Component {
	return &Component{Name: "sarama"}
}

func (c *Component) log(level slog.Level, line string) {
	logger := c.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Log(context.Background(), level, strings.TrimSuffix(line, "\n"), "component", c.Name)
}

func (c *Component) Errorf(msg string, args ...interface{}) {
	c.log(slog.LevelError, fmt.Sprintf(msg, args...))
}

func (c *Component) Warningf(msg string, args ...interface{}) {
	c.log(slog.LevelWarn, fmt.Sprintf(msg, args...))
}

func (c *Component) Infof(msg string, args ...interface{}) {
	c.log(slog.LevelInfo, fmt.Sprintf(msg, args...))
}

func (c *Component) Debugf(msg string, args ...interface{}) {
	c.log(slog.LevelDebug, fmt.Sprintf(msg, args...))
}

// Print, Printf and Println satisfy sarama.StdLogger. sarama only reports
// connection chatter through them, so they log at debug.
func (c *Component) Print(v ...interface{}) {
	c.log(slog.LevelDebug, fmt.Sprint(v...))
}

func (c *Component) Printf(format string, v ...interface{}) {
	c.log(slog.LevelDebug, fmt.Sprintf(format, v...))
}

func (c *Component) Println(v ...interface{}) {
	c.log(slog.LevelDebug, fmt.Sprintln(v...))
}
