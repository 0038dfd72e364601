// Package logger wraps the Zap logging library with context-first helpers.
// A single sugared logger with an atomic level is shared by the whole process;
// contexts may carry a scoped logger with extra fields (for example a session id)
// so that every message of one run can be correlated.
package logger
