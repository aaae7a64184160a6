package control

import (
	"fmt"
	"strings"

	"media-runtime/internal/modules"
)

// Commander interprets the line-command protocol shared by the console
// and telnet interfaces.
type Commander struct {
	host modules.Host
}

// NewCommander creates a command interpreter bound to a runtime host.
func NewCommander(host modules.Host) *Commander {
	return &Commander{host: host}
}

// Execute runs one command line and returns the response text plus a
// flag indicating the session should end. Unknown commands produce an
// error message, never a session failure.
func (c *Commander) Execute(line string) (string, bool) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", false
	}
	cmd, args := fields[0], fields[1:]

	switch cmd {
	case "help", "?":
		return helpText, false

	case "status":
		s := c.host.MustPlaylist().Status()
		state := "paused"
		if s.Playing {
			state = "playing"
		}
		out := fmt.Sprintf("%s | %d item(s)", state, s.Count)
		if s.Current != nil {
			out += " | current: " + s.Current.Title
		}
		out += "\ninterfaces: " + strings.Join(c.host.ActiveInterfaces(), ", ")
		return out, false

	case "play":
		c.host.MustPlaylist().Play()
		return "playing", false

	case "pause":
		c.host.MustPlaylist().Pause()
		return "paused", false

	case "next":
		it, ok := c.host.MustPlaylist().Next()
		if !ok {
			return "end of playlist", false
		}
		return "now: " + it.Title, false

	case "prev":
		it, ok := c.host.MustPlaylist().Prev()
		if !ok {
			return "start of playlist", false
		}
		return "now: " + it.Title, false

	case "add":
		if len(args) == 0 {
			return "usage: add <path>", false
		}
		path := strings.Join(args, " ")
		c.host.MustPlaylist().Add(path, "")
		return "added " + path, false

	case "playlist":
		items := c.host.MustPlaylist().Items()
		if len(items) == 0 {
			return "playlist is empty", false
		}
		var b strings.Builder
		for i, it := range items {
			fmt.Fprintf(&b, "%3d. %s\n", i+1, it.Title)
		}
		return strings.TrimRight(b.String(), "\n"), false

	case "choices":
		choices := c.host.InterfaceChoices()
		var b strings.Builder
		for _, ch := range choices {
			fmt.Fprintf(&b, "%-10s %-16s %s\n", ch.Key, ch.Label, ch.Selector)
		}
		return strings.TrimRight(b.String(), "\n"), false

	case "intf-add":
		if len(args) == 0 {
			return "usage: intf-add <selector>", false
		}
		// Fire-and-forget: the request is always accepted here, even
		// if creation later fails.
		c.host.AddInterface(args[0])
		return "requested " + args[0], false

	case "quit", "logout", "exit":
		return "bye", true

	default:
		return fmt.Sprintf("unknown command %q (try help)", cmd), false
	}
}

const helpText = `commands:
  status              show playback state
  play | pause        control playback
  next | prev         move within the playlist
  add <path>          append an item to the playlist
  playlist            list playlist contents
  choices             list addable interfaces
  intf-add <selector> start another control interface
  quit                end this session`
