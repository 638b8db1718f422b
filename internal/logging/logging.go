// Package logging builds the zap logger of a refresh run. Every run writes
// its own log file, which is later attached to the summary notification, and
// mirrors it to the console.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"go.uber.org/zap"
	"go.uber.org/zap/buffer"
	"go.uber.org/zap/zapcore"
)

const timestampLayout = "01.02.2006 15.04.05"

// Options configures New.
type Options struct {
	Dir     string
	Flow    string
	Now     time.Time
	Level   zapcore.Level
	Console io.Writer
}

// Logger is a zap logger bound to its run log file.
type Logger struct {
	*zap.Logger
	Path string
	file *os.File
}

// FileName is the name of the run log file for flow started at now.
func FileName(flow string, now time.Time) string {
	return fmt.Sprintf("refresh_%s_%s.log", flow, now.Format(timestampLayout))
}

// New creates the logs folder if needed and opens a new run log file in it.
func New(opts Options) (*Logger, error) {
	if opts.Now.IsZero() {
		opts.Now = time.Now()
	}
	if opts.Console == nil {
		opts.Console = os.Stderr
	}
	if err := os.MkdirAll(opts.Dir, 0755); err != nil {
		return nil, fmt.Errorf("creating logs folder: %w", err)
	}

	path := filepath.Join(opts.Dir, FileName(opts.Flow, opts.Now))
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}

	level := zap.NewAtomicLevelAt(opts.Level)
	core := zapcore.NewTee(
		zapcore.NewCore(encoder(false), zapcore.AddSync(f), level),
		zapcore.NewCore(encoder(colorful(opts.Console)), zapcore.AddSync(opts.Console), level),
	)
	return &Logger{Logger: zap.New(core), Path: path, file: f}, nil
}

// Close flushes and closes the log file.
func (l *Logger) Close() error {
	_ = l.Logger.Sync()
	return l.file.Close()
}

// lineTimeLayout is the timestamp between the level and the message.
const lineTimeLayout = "2006-01-02 15:04:05"

var levelStyles = map[zapcore.Level]lipgloss.Style{
	zapcore.DebugLevel: lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
	zapcore.InfoLevel:  lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
	zapcore.WarnLevel:  lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
}

var errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))

// encoder renders "[INFO] 2024-01-22 09:00:00 : message {fields}".
func encoder(color bool) zapcore.Encoder {
	cfg := zapcore.EncoderConfig{
		MessageKey:       "msg",
		EncodeDuration:   zapcore.StringDurationEncoder,
		ConsoleSeparator: " ",
	}
	return lineEncoder{Encoder: zapcore.NewConsoleEncoder(cfg), color: color}
}

// lineEncoder puts the bracketed level and the time in front of the message.
// The console encoder alone always writes the time first.
type lineEncoder struct {
	zapcore.Encoder
	color bool
}

func (e lineEncoder) Clone() zapcore.Encoder {
	return lineEncoder{Encoder: e.Encoder.Clone(), color: e.color}
}

func (e lineEncoder) EncodeEntry(ent zapcore.Entry, fields []zapcore.Field) (*buffer.Buffer, error) {
	ent.Message = levelTag(ent.Level, e.color) + " " + ent.Time.Format(lineTimeLayout) + " : " + ent.Message
	return e.Encoder.EncodeEntry(ent, fields)
}

func levelTag(l zapcore.Level, color bool) string {
	tag := "[" + l.CapitalString() + "]"
	if !color {
		return tag
	}
	style, ok := levelStyles[l]
	if !ok {
		style = errorStyle
	}
	return style.Render(tag)
}

func colorful(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
