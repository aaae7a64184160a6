package console

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"media-runtime/internal/chain"
	"media-runtime/internal/control"
	"media-runtime/internal/intf"
	"media-runtime/internal/logging"
	"media-runtime/internal/modules"
)

// Console is the "rc" control interface: it reads line commands from
// standard input and writes responses to standard output.
type Console struct {
	cmd         *control.Commander
	in          io.Reader
	closer      io.Closer
	out         io.Writer
	interactive bool
	stop        chan struct{}
	done        chan struct{}
}

// Module returns the factory for the console interface. The factory
// never fails: a non-interactive stdin still accepts piped commands.
func Module() *modules.Factory {
	return &modules.Factory{
		Name:       "rc",
		Capability: intf.Capability,
		Score:      80,
		New: func(host modules.Host, cfg *chain.Chain) (modules.Instance, error) {
			interactive := term.IsTerminal(int(os.Stdin.Fd()))
			return start(host, os.Stdin, os.Stdout, interactive), nil
		},
	}
}

func start(host modules.Host, in io.Reader, out io.Writer, interactive bool) *Console {
	c := &Console{
		cmd:         control.NewCommander(host),
		in:          in,
		out:         out,
		interactive: interactive,
		stop:        make(chan struct{}),
		done:        make(chan struct{}),
	}
	if closer, ok := in.(io.Closer); ok {
		c.closer = closer
	}
	go c.run()
	return c
}

func (c *Console) run() {
	defer close(c.done)

	if c.interactive {
		fmt.Fprintln(c.out, "media runtime console (type help)")
	}

	scanner := bufio.NewScanner(c.in)
	for {
		if c.interactive {
			fmt.Fprint(c.out, "> ")
		}
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil && !c.stopping() {
				logging.Warn("Console read error: %v", err)
			}
			return
		}

		if c.stopping() {
			return
		}

		out, quit := c.cmd.Execute(scanner.Text())
		if out != "" {
			fmt.Fprintln(c.out, out)
		}
		if quit {
			return
		}
	}
}

func (c *Console) stopping() bool {
	select {
	case <-c.stop:
		return true
	default:
		return false
	}
}

// Stop signals the console to exit, closes the input stream when it
// supports closing to unblock a pending read, and waits for the
// reader goroutine to finish.
func (c *Console) Stop() {
	close(c.stop)
	if c.closer != nil {
		c.closer.Close()
	}
	<-c.done
}
