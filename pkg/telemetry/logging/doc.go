// Package logging provides structured logging on top of log/slog.
//
// # Overview
//
//   - JSON, text and console output formats
//   - Configurable log levels (debug, info, warn, error)
//   - Context-aware logging: run IDs and document names stored in a
//     context are added to every record logged with it
//   - TraceObserver, a parser.Observer logging dispatcher transitions
//
// # Usage
//
//	logger, err := logging.New(logging.Config{
//	    Level:  "info",
//	    Format: "json",
//	})
//	if err != nil {
//	    return err
//	}
//
//	ctx = logging.WithRunID(ctx, runID)
//	logger.InfoContext(ctx, "Documents parsed", "documents", 2) // includes run_id
//
//	p := parser.NewParser().
//	    WithLogger(logger.Slog()).
//	    WithObserver(logging.NewTraceObserver(logger.Slog()))
package logging
