// Package startup handles configuration loading and startup/shutdown
// logging for the media runtime. All configuration comes from
// environment variables; every effective setting is logged at startup.
package startup
