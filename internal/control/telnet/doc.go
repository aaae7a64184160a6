// Package telnet implements the telnet control interface: the shared
// line-command protocol over TCP, optionally behind a bcrypt-checked
// password. The listen port and password can be set per instance
// through chain options ("telnet{port=4212,password=<hash>}") with
// environment-configured defaults.
package telnet
