// Package logtail reads the debug log written by the interactive UI.
//
// The UI owns the terminal, so with --debug its log output goes to a file
// (DefaultPath unless --log-file is given). `ghscout log` prints the end of
// that file, optionally filtered:
//
//	ghscout log -n 20 --match "rate limit"
//
// Tail keeps only the last N matching lines in a ring buffer, so memory stays
// bounded regardless of log size. A missing file yields ErrNoLog.
package logtail
