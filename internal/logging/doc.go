// Package logging provides leveled logging for the media runtime.
//
// The log level is controlled by the DEBUG and LOG_LEVEL environment
// variables. Messages are written through the standard library logger;
// additional writers may be attached with AddSink to receive a copy of
// every message, which is how the "logger" control interface mirrors
// the log stream to a file.
package logging
