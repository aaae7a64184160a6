// Package web implements the "http" control interface: a JSON API for
// playlist and interface management, the addable-interface choice
// list, and the Prometheus /metrics endpoint. All routes can be placed
// behind basic auth with a bcrypt password hash.
package web
