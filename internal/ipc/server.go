package ipc

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/1broseidon/winsnap/internal/hotkeys"
	"github.com/1broseidon/winsnap/internal/placement"
	"github.com/1broseidon/winsnap/internal/snapping"
	"github.com/1broseidon/winsnap/internal/topology"
)

// ErrDaemonRunning is returned by NewServer when another daemon already
// answers on the socket.
var ErrDaemonRunning = errors.New("another winsnap daemon is already running")

// Snapper runs actions on behalf of clients.
type Snapper interface {
	Run(action placement.Action) snapping.Outcome
	Stats() snapping.Stats
	LastOutcome() (snapping.Outcome, bool)
	ResetScale() float64
}

// DisplayLister enumerates the current topology.
type DisplayLister interface {
	Enumerate() topology.Topology
}

// BindingLister exposes the active hotkey table.
type BindingLister interface {
	Table() hotkeys.Table
	State() hotkeys.State
}

// Deps are the daemon components the server answers from.
type Deps struct {
	Snapper  Snapper
	Displays DisplayLister
	Bindings BindingLister
	// Reload re-reads configuration; nil disables RELOAD.
	Reload func() error
	Logger *slog.Logger
}

// Server handles IPC requests from clients
type Server struct {
	socketPath   string
	listener     net.Listener
	deps         Deps
	logger       *slog.Logger
	startTime    time.Time
	wg           sync.WaitGroup
	shuttingDown bool
	shutdownMu   sync.Mutex
}

// NewServer creates a new IPC server bound to socketPath once started.
func NewServer(socketPath string, deps Deps) (*Server, error) {
	if socketPath == "" {
		return nil, fmt.Errorf("IPC socket path is empty")
	}
	if deps.Snapper == nil || deps.Displays == nil || deps.Bindings == nil {
		return nil, fmt.Errorf("IPC server requires snapper, displays and bindings")
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	if socketInUse(socketPath) {
		return nil, fmt.Errorf("%w: %s", ErrDaemonRunning, socketPath)
	}
	// Nothing answers; clear a stale socket left by a crashed daemon.
	os.Remove(socketPath)

	return &Server{
		socketPath: socketPath,
		deps:       deps,
		logger:     logger.With("component", "ipc"),
		startTime:  time.Now(),
	}, nil
}

func socketInUse(socketPath string) bool {
	conn, err := net.DialTimeout("unix", socketPath, time.Second)
	if err != nil {
		return false
	}
	conn.Close()
	return true
}

// SocketPath returns the path the server listens on.
func (s *Server) SocketPath() string {
	return s.socketPath
}

// Start begins listening for IPC connections
func (s *Server) Start() error {
	listener, err := net.Listen("unix", s.socketPath)
	if err != nil {
		return fmt.Errorf("failed to create IPC socket: %w", err)
	}
	s.listener = listener

	// Set socket permissions
	if err := os.Chmod(s.socketPath, 0600); err != nil {
		listener.Close()
		return fmt.Errorf("failed to set socket permissions: %w", err)
	}

	s.logger.Info("IPC server listening", "socket", s.socketPath)

	s.wg.Add(1)
	go s.acceptLoop()

	return nil
}

// acceptLoop accepts incoming connections
func (s *Server) acceptLoop() {
	defer s.wg.Done()
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			s.shutdownMu.Lock()
			if s.shuttingDown {
				s.shutdownMu.Unlock()
				return
			}
			s.shutdownMu.Unlock()
			s.logger.Warn("IPC accept error", "error", err)
			continue
		}

		go s.handleConnection(conn)
	}
}

// handleConnection handles a single IPC connection
func (s *Server) handleConnection(conn net.Conn) {
	defer conn.Close()

	reader := bufio.NewReader(conn)

	// Read the request (expect JSON on a single line)
	data, err := reader.ReadBytes('\n')
	if err != nil && err != io.EOF {
		s.logger.Warn("IPC read error", "error", err)
		return
	}

	req, err := ParseRequest(data)
	if err != nil {
		s.sendError(conn, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	resp := s.handleCommand(req)

	respData, err := resp.Marshal()
	if err != nil {
		s.logger.Error("failed to marshal response", "error", err)
		return
	}

	respData = append(respData, '\n')
	if _, err := conn.Write(respData); err != nil {
		s.logger.Warn("failed to send response", "error", err)
	}
}

// handleCommand processes an IPC command and returns a response
func (s *Server) handleCommand(req *Request) *Response {
	switch req.Command {
	case CommandSnap:
		return s.handleSnap(req.Payload)
	case CommandReload:
		return s.handleReload()
	case CommandGetStatus:
		return s.handleGetStatus()
	case CommandGetDisplays:
		return s.handleGetDisplays()
	case CommandGetBindings:
		return s.handleGetBindings()
	default:
		return NewErrorResponse(fmt.Sprintf("Unknown command: %s", req.Command))
	}
}

func (s *Server) handleSnap(payload json.RawMessage) *Response {
	var req SnapPayload
	if err := json.Unmarshal(payload, &req); err != nil {
		return NewErrorResponse(fmt.Sprintf("Invalid snap payload: %v", err))
	}
	action, err := placement.ParseAction(req.Action)
	if err != nil {
		return NewErrorResponse(err.Error())
	}

	s.logger.Debug("IPC snap", "action", action)
	out := s.deps.Snapper.Run(action)

	resp, err := NewOKResponse(SnapDataFromOutcome(out))
	if err != nil {
		return NewErrorResponse(err.Error())
	}
	return resp
}

// handleReload reloads the configuration
func (s *Server) handleReload() *Response {
	if s.deps.Reload == nil {
		return NewErrorResponse("reload is not supported")
	}
	s.logger.Info("received RELOAD command")

	if err := s.deps.Reload(); err != nil {
		return NewErrorResponse(fmt.Sprintf("Failed to reload config: %v", err))
	}

	resp, _ := NewOKResponse(nil)
	return resp
}

// handleGetStatus returns current daemon status
func (s *Server) handleGetStatus() *Response {
	stats := s.deps.Snapper.Stats()
	status := StatusData{
		DaemonRunning: true,
		UptimeSeconds: int64(time.Since(s.startTime).Seconds()),
		Platform:      runtime.GOOS,
		ListenerState: s.deps.Bindings.State().String(),
		ResetScale:    s.deps.Snapper.ResetScale(),
		DisplayCount:  s.deps.Displays.Enumerate().Len(),
		Applied:       stats.Applied,
		Skipped:       stats.Skipped,
		Failed:        stats.Failed,
	}
	if last, ok := s.deps.Snapper.LastOutcome(); ok {
		data := SnapDataFromOutcome(last)
		status.LastAction = &data
	}

	resp, _ := NewOKResponse(status)
	return resp
}

// handleGetDisplays returns information about all displays
func (s *Server) handleGetDisplays() *Response {
	topo := s.deps.Displays.Enumerate()

	displays := topo.Displays()
	infos := make([]DisplayInfo, len(displays))
	for i, d := range displays {
		infos[i] = DisplayInfoFrom(d)
	}

	resp, _ := NewOKResponse(DisplaysData{
		PrimaryHeight: topo.PrimaryHeight(),
		Displays:      infos,
	})
	return resp
}

func (s *Server) handleGetBindings() *Response {
	bindings := s.deps.Bindings.Table().Bindings()
	infos := make([]BindingInfo, len(bindings))
	for i, b := range bindings {
		infos[i] = BindingInfoFrom(b)
	}

	resp, _ := NewOKResponse(BindingsData{Bindings: infos})
	return resp
}

// sendError sends an error response
func (s *Server) sendError(conn net.Conn, errMsg string) {
	resp := NewErrorResponse(errMsg)
	data, _ := resp.Marshal()
	data = append(data, '\n')
	conn.Write(data)
}

// Stop gracefully shuts down the IPC server
func (s *Server) Stop() {
	s.shutdownMu.Lock()
	s.shuttingDown = true
	s.shutdownMu.Unlock()

	if s.listener != nil {
		s.listener.Close()
		s.wg.Wait()
	}
	os.Remove(s.socketPath)
}
