package logger

import "os"

// Console writes log events to stdout.
type Console struct {
	writer *os.File
}

// NewConsole creates a Console writer on stdout.
func NewConsole() *Console {
	return &Console{writer: os.Stdout}
}

// Write writes event to the console.
func (w *Console) Write(event *Event) {
	w.writer.Write([]byte(event.fmsg))
}

// Sync is a no-op for Console; os.Stdout writes are unbuffered.
func (w *Console) Sync() {}
