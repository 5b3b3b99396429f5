package app

import (
	"io"

	"github.com/five82/ghscout/internal/logtail"
)

// DefaultLogLines is how much of the debug log `ghscout log` prints.
const DefaultLogLines = 50

// RunLog prints the end of the interactive UI's debug log.
func RunLog(opts Options, lines int, match string, w io.Writer) error {
	out, err := logtail.Tail(opts.logPath(), logtail.Options{Lines: lines, Match: match})
	if err != nil {
		return err
	}
	return logtail.Write(w, out)
}
