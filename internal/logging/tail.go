package logging

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Tail returns up to limit of the most recent entries in the log file at path
// whose level is at least as severe as threshold. Lines without a level= field
// (wrapped output, panics) follow the entry before them. A missing file
// yields no lines.
func Tail(path string, limit int, threshold logrus.Level) ([]string, error) {
	if limit <= 0 {
		return nil, nil
	}
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer f.Close()

	window := newLineWindow(limit)
	keep := true
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if lvl, ok := lineLevel(line); ok {
			keep = lvl <= threshold
		}
		if keep {
			window.push(line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}
	return window.lines(), nil
}

// lineLevel extracts the level from a logrus text formatted line.
func lineLevel(line string) (logrus.Level, bool) {
	idx := strings.Index(line, "level=")
	if idx < 0 {
		return 0, false
	}
	rest := line[idx+len("level="):]
	if end := strings.IndexByte(rest, ' '); end >= 0 {
		rest = rest[:end]
	}
	lvl, err := logrus.ParseLevel(strings.Trim(rest, `"`))
	if err != nil {
		return 0, false
	}
	return lvl, true
}

// lineWindow keeps the last n lines pushed into it.
type lineWindow struct {
	buf   []string
	next  int
	count int
}

func newLineWindow(n int) *lineWindow {
	return &lineWindow{buf: make([]string, n)}
}

func (w *lineWindow) push(line string) {
	w.buf[w.next] = line
	w.next = (w.next + 1) % len(w.buf)
	if w.count < len(w.buf) {
		w.count++
	}
}

func (w *lineWindow) lines() []string {
	out := make([]string, w.count)
	start := (w.next - w.count + len(w.buf)) % len(w.buf)
	for i := range out {
		out[i] = w.buf[(start+i)%len(w.buf)]
	}
	return out
}
