package registry

import (
	"fmt"

	"github.com/nimo-project/nimo/internal/collision"
	"github.com/nimo-project/nimo/internal/hash"
	"github.com/nimo-project/nimo/internal/log"
	"github.com/nimo-project/nimo/internal/options"
	"github.com/nimo-project/nimo/value"
)

// ServerConfig holds the tunables applied via functional Options at
// construction time.
type ServerConfig struct {
	DBPath string
}

// Option configures a Server at construction time.
type Option = options.Option[*ServerConfig]

// WithDBPath sets the SQLite database path used for channel persistence.
// Defaults to ":memory:".
func WithDBPath(path string) Option {
	return options.NoError[*ServerConfig](func(c *ServerConfig) {
		c.DBPath = path
	})
}

// Server answers registry requests: it persists channel registrations in a
// Store and tracks name/hash collisions with a collision.Tracker.
type Server struct {
	store   *Store
	tracker *collision.Tracker
}

// NewServer builds a Server, applying opts over the default configuration.
func NewServer(opts ...Option) (*Server, error) {
	cfg := &ServerConfig{DBPath: ":memory:"}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, fmt.Errorf("registry: apply options: %w", err)
	}

	store, err := OpenStore(cfg.DBPath)
	if err != nil {
		return nil, err
	}

	return &Server{store: store, tracker: collision.NewTracker()}, nil
}

// Close releases the Server's underlying store.
func (s *Server) Close() error {
	return s.store.Close()
}

// Handle dispatches req (an Array of operation code + args, as produced by
// encodeRequest) and returns the response Array. Handle never returns a Go
// error for a malformed request: it reports the failure as an OpError
// response, keeping every registry failure representable on the wire.
func (s *Server) Handle(req value.Value) *value.Array {
	op, arr, ok := decodeOperation(req)
	if !ok {
		return errorResponse(fmt.Errorf("registry: malformed request"))
	}

	switch op {
	case OpPing:
		return encodeRequest(OpPing)
	case OpRegisterChannel:
		return s.handleRegister(arr)
	case OpUnregisterChannel:
		return s.handleUnregister(arr)
	case OpLookupChannel:
		return s.handleLookup(arr)
	case OpListChannels:
		return s.handleList()
	default:
		return errorResponse(fmt.Errorf("registry: unknown operation %s", op))
	}
}

func (s *Server) handleRegister(arr *value.Array) *value.Array {
	ch, ok := channelFromArgs(arr)
	if !ok {
		return errorResponse(fmt.Errorf("registry: register: bad arguments"))
	}

	id := hash.ID(ch.Name)
	if err := s.tracker.TrackChannel(ch.Name, id); err != nil {
		return errorResponse(err)
	}

	if s.tracker.HasCollision() {
		log.Warnf("registry: hash collision registering channel %q", ch.Name)
	}

	if err := s.store.Insert(id, ch); err != nil {
		return errorResponse(err)
	}

	log.Infof("registry: registered channel %q at %s:%d/%s", ch.Name, ch.Address, ch.Port, ch.Transport)

	return encodeRequest(OpOK)
}

func (s *Server) handleUnregister(arr *value.Array) *value.Array {
	if arr.Len() < 2 {
		return errorResponse(fmt.Errorf("registry: unregister: missing channel name"))
	}
	name, ok := value.AsString(arr.At(1))
	if !ok {
		return errorResponse(fmt.Errorf("registry: unregister: channel name must be a string"))
	}

	if err := s.store.Delete(name.String()); err != nil {
		return errorResponse(err)
	}

	return encodeRequest(OpOK)
}

func (s *Server) handleLookup(arr *value.Array) *value.Array {
	if arr.Len() < 2 {
		return errorResponse(fmt.Errorf("registry: lookup: missing channel name"))
	}
	name, ok := value.AsString(arr.At(1))
	if !ok {
		return errorResponse(fmt.Errorf("registry: lookup: channel name must be a string"))
	}

	ch, ok := s.store.Lookup(name.String())
	if !ok {
		return errorResponse(fmt.Errorf("registry: lookup: no such channel %q", name.String()))
	}

	return encodeRequest(OpChannelInfo,
		value.NewString(ch.Name), value.NewString(ch.Address),
		value.NewInteger(ch.Port), value.NewString(ch.Transport))
}

func (s *Server) handleList() *value.Array {
	names, err := s.store.List()
	if err != nil {
		return errorResponse(err)
	}

	args := make([]value.Value, 0, len(names))
	for _, n := range names {
		args = append(args, value.NewString(n))
	}

	return encodeRequest(OpChannelList, args...)
}

func errorResponse(err error) *value.Array {
	return encodeRequest(OpError, value.NewString(err.Error()))
}

// channelFromArgs reads (name, address, port, transport) from a
// RegisterChannel request's trailing arguments.
func channelFromArgs(arr *value.Array) (Channel, bool) {
	if arr.Len() < 5 {
		return Channel{}, false
	}

	name, ok := value.AsString(arr.At(1))
	if !ok {
		return Channel{}, false
	}
	addr, ok := value.AsString(arr.At(2))
	if !ok {
		return Channel{}, false
	}
	port, ok := value.AsInteger(arr.At(3))
	if !ok {
		return Channel{}, false
	}
	transport, ok := value.AsString(arr.At(4))
	if !ok {
		return Channel{}, false
	}

	return Channel{
		Name:      name.String(),
		Address:   addr.String(),
		Port:      port.Int64(),
		Transport: transport.String(),
	}, true
}
