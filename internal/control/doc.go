// Package control hosts the builtin control-interface modules and the
// line-command interpreter the console and telnet interfaces share.
package control
