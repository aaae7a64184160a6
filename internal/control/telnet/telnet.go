package telnet

import (
	"bufio"
	"fmt"
	"net"
	"strings"
	"sync"

	"golang.org/x/crypto/bcrypt"

	"media-runtime/internal/chain"
	"media-runtime/internal/control"
	"media-runtime/internal/intf"
	"media-runtime/internal/logging"
	"media-runtime/internal/modules"
)

const defaultPort = "4212"

// Defaults carries the environment-derived settings a factory closes
// over; chain options override them per instance.
type Defaults struct {
	Port         string
	PasswordHash string // bcrypt hash; empty disables the password gate
}

// Telnet is the telnet control interface: a TCP line protocol speaking
// the shared command set, optionally behind a password.
type Telnet struct {
	cmd          *control.Commander
	ln           net.Listener
	passwordHash string
	stop         chan struct{}
	wg           sync.WaitGroup

	connMu sync.Mutex
	conns  map[net.Conn]struct{}
}

// Module returns the factory for the telnet interface. Binding the
// listen port happens inside the factory, so a busy port makes
// resolution skip to the next candidate.
func Module(defaults Defaults) *modules.Factory {
	return &modules.Factory{
		Name:       "telnet",
		Capability: intf.Capability,
		Score:      60,
		New: func(host modules.Host, cfg *chain.Chain) (modules.Instance, error) {
			port := cfg.Option("port", defaults.Port)
			if port == "" {
				port = defaultPort
			}
			hash := cfg.Option("password", defaults.PasswordHash)

			ln, err := net.Listen("tcp", net.JoinHostPort(cfg.Option("host", ""), port))
			if err != nil {
				return nil, fmt.Errorf("telnet listen failed: %w", err)
			}
			return start(host, ln, hash), nil
		},
	}
}

func start(host modules.Host, ln net.Listener, passwordHash string) *Telnet {
	t := &Telnet{
		cmd:          control.NewCommander(host),
		ln:           ln,
		passwordHash: passwordHash,
		stop:         make(chan struct{}),
		conns:        make(map[net.Conn]struct{}),
	}
	logging.Info("Telnet interface listening on %s", ln.Addr())

	t.wg.Add(1)
	go t.acceptLoop()
	return t
}

// Addr returns the listener address.
func (t *Telnet) Addr() net.Addr {
	return t.ln.Addr()
}

func (t *Telnet) acceptLoop() {
	defer t.wg.Done()
	for {
		conn, err := t.ln.Accept()
		if err != nil {
			select {
			case <-t.stop:
				return
			default:
				logging.Warn("Telnet accept error: %v", err)
				return
			}
		}

		t.wg.Add(1)
		go func() {
			defer t.wg.Done()
			t.serve(conn)
		}()
	}
}

func (t *Telnet) serve(conn net.Conn) {
	t.connMu.Lock()
	t.conns[conn] = struct{}{}
	t.connMu.Unlock()

	defer func() {
		conn.Close()
		t.connMu.Lock()
		delete(t.conns, conn)
		t.connMu.Unlock()
	}()

	// A connection accepted while Stop runs may miss the close pass
	// over the session map.
	select {
	case <-t.stop:
		return
	default:
	}

	reader := bufio.NewScanner(conn)

	if t.passwordHash != "" {
		fmt.Fprint(conn, "Password: ")
		if !reader.Scan() {
			return
		}
		password := strings.TrimSpace(reader.Text())
		if bcrypt.CompareHashAndPassword([]byte(t.passwordHash), []byte(password)) != nil {
			fmt.Fprintln(conn, "Wrong password")
			logging.Warn("Telnet login rejected from %s", conn.RemoteAddr())
			return
		}
		fmt.Fprintln(conn, "Welcome")
	}

	for reader.Scan() {
		select {
		case <-t.stop:
			return
		default:
		}

		out, quit := t.cmd.Execute(reader.Text())
		if out != "" {
			fmt.Fprintln(conn, out)
		}
		if quit {
			return
		}
	}
}

// Stop closes the listener and every active session, then waits for
// all connection goroutines to exit.
func (t *Telnet) Stop() {
	close(t.stop)
	if err := t.ln.Close(); err != nil {
		logging.Debug("Telnet listener close: %v", err)
	}

	t.connMu.Lock()
	for conn := range t.conns {
		conn.Close()
	}
	t.connMu.Unlock()

	t.wg.Wait()
}
