// Package log provides simple leveled logging for lost.
//
// Messages are written with a colored level prefix: DEBUG, INFO and WARN go to
// stdout, ERROR goes to stderr. Debug messages are only shown in verbose mode.
//
// # Example Usage
//
//	log.Infof("Loaded %d sources from %s", n, path)
//	log.Warnf("Source %s is unchanged", url)
//	log.Errorf("Failed to update %s: %v", url, err)
//
// Commands that print a document to stdout route all logs to stderr:
//
//	log.SetForceStdErr(true)
//
// The package uses global state guarded by a mutex, so it is safe to call from
// the HTTP server goroutines.
package log
