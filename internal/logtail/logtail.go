package logtail

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ErrNoLog is returned when the debug log has not been written yet.
var ErrNoLog = errors.New("no debug log found; run ghscout --debug first")

// DefaultPath is where the interactive UI writes its debug log.
func DefaultPath() string {
	return filepath.Join(os.TempDir(), "ghscout-debug.log")
}

// Options selects which lines Tail returns.
type Options struct {
	Lines int    // last N matching lines; <= 0 returns every line
	Match string // case-insensitive substring filter; empty matches all
}

// Tail returns the last matching lines of the log at path, oldest first.
func Tail(path string, opts Options) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNoLog
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	lines, err := tail(file, opts)
	if err != nil {
		return nil, fmt.Errorf("read log %s: %w", path, err)
	}
	return lines, nil
}

func tail(r io.Reader, opts Options) ([]string, error) {
	match := strings.ToLower(strings.TrimSpace(opts.Match))
	keep := func(line string) bool {
		return match == "" || strings.Contains(strings.ToLower(line), match)
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	if opts.Lines <= 0 {
		var all []string
		for scanner.Scan() {
			if line := scanner.Text(); keep(line) {
				all = append(all, line)
			}
		}
		return all, scanner.Err()
	}

	// Ring of the last opts.Lines matches; idx is the oldest slot once full.
	ring := make([]string, opts.Lines)
	count, idx := 0, 0
	for scanner.Scan() {
		line := scanner.Text()
		if !keep(line) {
			continue
		}
		ring[idx] = line
		idx = (idx + 1) % len(ring)
		count++
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if count < len(ring) {
		return ring[:count], nil
	}
	return append(ring[idx:], ring[:idx]...), nil
}

// Write prints lines to w, one per line.
func Write(w io.Writer, lines []string) error {
	bw := bufio.NewWriter(w)
	for _, line := range lines {
		if _, err := bw.WriteString(line + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}
