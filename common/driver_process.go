package common

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os/exec"
	"sync"
	"time"

	"github.com/browserkit/webdriver/log"
)

// ProcessState describes the lifecycle state of the supervised driver
// process.
type ProcessState int

// Supervised process states.
const (
	ProcessStarting ProcessState = iota
	ProcessRunning
	ProcessCrashed
	ProcessRestarting
	ProcessStopped
)

func (s ProcessState) String() string {
	switch s {
	case ProcessStarting:
		return "starting"
	case ProcessRunning:
		return "running"
	case ProcessCrashed:
		return "crashed"
	case ProcessRestarting:
		return "restarting"
	case ProcessStopped:
		return "stopped"
	default:
		return fmt.Sprintf("unknown(%d)", int(s))
	}
}

// ProbeFunc reports whether the driver process accepts requests at baseURL.
// A nil error means the process is ready.
type ProbeFunc func(ctx context.Context, baseURL string) error

// SupervisorOptions configures a Supervisor.
type SupervisorOptions struct {
	// Args are extra arguments passed to the driver binary after the
	// port selection flag.
	Args []string

	// ReadyTimeout bounds how long BaseURL waits for readiness.
	// Zero means DefaultReadyTimeout.
	ReadyTimeout time.Duration

	// Probe overrides the readiness check. Nil means an HTTP GET against
	// the driver's status endpoint.
	Probe ProbeFunc
}

// Supervisor owns a single driver subprocess: it spawns it, monitors its
// liveness and restarts it when it crashes. Restarts are one-for-one and
// unlimited; an explicit Stop is final. Sessions issued by a crashed
// process are not tracked here, callers observe their invalidation as
// transport failures.
type Supervisor struct {
	path         string
	args         []string
	readyTimeout time.Duration
	probe        ProbeFunc
	logger       *log.Logger

	mu       sync.Mutex
	state    ProcessState
	cmd      *exec.Cmd
	baseURL  string
	ready    chan struct{}
	procDone chan struct{}
	restarts int

	stopped chan struct{}
}

// NewSupervisor creates a supervisor for the driver binary at path. The
// binary must already be validated; the supervisor does not check versions.
func NewSupervisor(path string, opts SupervisorOptions, logger *log.Logger) *Supervisor {
	if opts.ReadyTimeout <= 0 {
		opts.ReadyTimeout = DefaultReadyTimeout
	}
	if opts.Probe == nil {
		opts.Probe = statusProbe
	}
	return &Supervisor{
		path:         path,
		args:         opts.Args,
		readyTimeout: opts.ReadyTimeout,
		probe:        opts.Probe,
		logger:       logger,
		state:        ProcessStarting,
		stopped:      make(chan struct{}),
	}
}

// Start spawns the driver process and begins supervising it.
func (s *Supervisor) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == ProcessStopped {
		return &ProcessError{Op: "start after stop"}
	}
	if s.cmd != nil {
		return &ProcessError{Op: "start", Err: fmt.Errorf("already started")}
	}
	return s.spawnLocked()
}

// spawnLocked starts a fresh child on a free port and kicks off the monitor
// and readiness goroutines. Callers must hold s.mu.
func (s *Supervisor) spawnLocked() error {
	port, err := freePort()
	if err != nil {
		return &ProcessError{Op: "selecting port", Err: err}
	}

	args := append([]string{fmt.Sprintf("--port=%d", port)}, s.args...)
	cmd := exec.Command(s.path, args...)
	if err := cmd.Start(); err != nil {
		s.state = ProcessCrashed
		return &ProcessError{Op: "spawn", Err: err}
	}

	s.cmd = cmd
	s.state = ProcessRunning
	s.baseURL = fmt.Sprintf("http://127.0.0.1:%d/", port)
	s.ready = make(chan struct{})
	s.procDone = make(chan struct{})

	s.logger.Debugf("Supervisor:spawn", "pid %d listening on %s", cmd.Process.Pid, s.baseURL)

	go s.awaitReady(s.baseURL, s.ready, s.procDone)
	go s.monitor(cmd, s.procDone)

	return nil
}

// monitor waits for the child to exit and applies the restart policy.
func (s *Supervisor) monitor(cmd *exec.Cmd, procDone chan struct{}) {
	err := cmd.Wait()
	close(procDone)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == ProcessStopped {
		s.logger.Debugf("Supervisor:monitor", "pid %d exited after stop", cmd.Process.Pid)
		return
	}

	s.logger.Errorf("Supervisor:monitor",
		"process with PID %d unexpectedly ended: %v", cmd.Process.Pid, err)

	s.state = ProcessCrashed
	s.restarts++

	s.state = ProcessRestarting
	if err := s.spawnLocked(); err != nil {
		// Respawn failure is fatal to the supervisor: release any
		// waiters instead of leaving them to time out.
		s.logger.Errorf("Supervisor:monitor", "restarting driver process: %v", err)
		s.state = ProcessStopped
		close(s.stopped)
	}
}

// awaitReady polls the readiness probe with backoff until the process
// accepts requests, exits, or the supervisor stops.
func (s *Supervisor) awaitReady(baseURL string, ready, procDone chan struct{}) {
	backoff := 50 * time.Millisecond
	const maxBackoff = 500 * time.Millisecond

	for {
		ctx, cancel := context.WithTimeout(context.Background(), backoff)
		err := s.probe(ctx, baseURL)
		cancel()
		if err == nil {
			s.logger.Debugf("Supervisor:awaitReady", "%s is ready", baseURL)
			close(ready)
			return
		}

		select {
		case <-s.stopped:
			return
		case <-procDone:
			return
		case <-time.After(backoff):
		}
		if backoff < maxBackoff {
			backoff *= 2
		}
	}
}

// BaseURL returns the address the driver process accepts requests on. It
// blocks until the process reports readiness, the supervisor is stopped, ctx
// is cancelled, or the ready timeout elapses. A restart during the wait is
// transparent: the wait re-arms against the fresh process.
func (s *Supervisor) BaseURL(ctx context.Context) (string, error) {
	deadline := time.NewTimer(s.readyTimeout)
	defer deadline.Stop()

	for {
		s.mu.Lock()
		if s.state == ProcessStopped {
			s.mu.Unlock()
			return "", &ProcessError{Op: "base URL", Err: fmt.Errorf("supervisor is stopped")}
		}
		if s.cmd == nil {
			s.mu.Unlock()
			return "", &ProcessError{Op: "base URL", Err: fmt.Errorf("supervisor not started")}
		}
		ready, procDone, baseURL := s.ready, s.procDone, s.baseURL
		s.mu.Unlock()

		select {
		case <-ready:
			return baseURL, nil
		case <-procDone:
			// Crashed; loop and pick up the respawned process.
		case <-s.stopped:
			return "", &ProcessError{Op: "base URL", Err: fmt.Errorf("supervisor is stopped")}
		case <-ctx.Done():
			return "", &ProcessError{Op: "base URL", Err: ctx.Err()}
		case <-deadline.C:
			return "", &ProcessError{Op: "base URL",
				Err: fmt.Errorf("process not ready in %s", s.readyTimeout)}
		}
	}
}

// Stop terminates the driver process. Stopping is final: the monitor will
// not restart the child, and in-flight BaseURL waits resolve to an error.
func (s *Supervisor) Stop() {
	s.mu.Lock()
	if s.state == ProcessStopped {
		s.mu.Unlock()
		return
	}
	s.state = ProcessStopped
	close(s.stopped)
	cmd := s.cmd
	s.mu.Unlock()

	if cmd != nil && cmd.Process != nil {
		s.logger.Debugf("Supervisor:Stop", "terminating pid %d", cmd.Process.Pid)
		_ = cmd.Process.Kill()
	}
}

// State returns the current lifecycle state.
func (s *Supervisor) State() ProcessState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Restarts returns how many times the child has been respawned.
func (s *Supervisor) Restarts() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.restarts
}

// Pid returns the driver process ID, or 0 before the first spawn.
func (s *Supervisor) Pid() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cmd == nil || s.cmd.Process == nil {
		return 0
	}
	return s.cmd.Process.Pid
}

// freePort asks the kernel for an unused TCP port on the loopback
// interface. The listener is closed before the child spawns, so the port
// can in principle be stolen in between; that surfaces as a spawn failure,
// which fails Start and is fatal to a restart (the supervisor stops and
// releases its waiters rather than retrying the respawn).
func freePort() (int, error) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return 0, err
	}
	defer l.Close()
	return l.Addr().(*net.TCPAddr).Port, nil
}

// statusProbe is the default readiness check: the driver is ready once its
// status endpoint answers with a 2xx.
func statusProbe(ctx context.Context, baseURL string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+"status", nil)
	if err != nil {
		return err
	}
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.StatusCode < 200 || res.StatusCode > 299 {
		return fmt.Errorf("status endpoint answered %d", res.StatusCode)
	}
	return nil
}
