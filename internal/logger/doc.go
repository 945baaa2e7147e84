// Package logger wraps zap to provide:
//   - a global sugared logger writing console-encoded entries to stderr,
//   - context helpers (ToContext/FromContext/WithName),
//   - level parsing and switching for the --log-level flag,
//   - key-value helpers (InfoKV, WarnKV, etc.).
//
// Stdout is left untouched so that version-props can print the generated
// document there. Services take a context and pull the logger out of it.
package logger
