// Package console implements the "rc" control interface, a line-based
// command console on standard input.
package console
