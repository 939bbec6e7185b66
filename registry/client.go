package registry

import (
	"fmt"
	"net"
	"time"

	"github.com/nimo-project/nimo/compress"
	"github.com/nimo-project/nimo/format"
	"github.com/nimo-project/nimo/internal/framing"
	"github.com/nimo-project/nimo/internal/options"
	"github.com/nimo-project/nimo/value"
)

// ClientConfig holds the tunables applied via functional Options at
// construction time.
type ClientConfig struct {
	Compression format.CompressionType
	Timeout     time.Duration
}

// ClientOption configures a Client at construction time.
type ClientOption = options.Option[*ClientConfig]

// WithCompression chooses the algorithm used to shrink request/response
// Messages before they cross the wire. Large registry snapshots (OpListChannels
// responses in particular) are the main beneficiary; this is a transport
// concern layered on top of the codec, not a codec feature.
func WithCompression(c format.CompressionType) ClientOption {
	return options.NoError[*ClientConfig](func(cfg *ClientConfig) {
		cfg.Compression = c
	})
}

// WithTimeout bounds how long a single request/response round trip may
// take.
func WithTimeout(d time.Duration) ClientOption {
	return options.NoError[*ClientConfig](func(cfg *ClientConfig) {
		cfg.Timeout = d
	})
}

// Client is a thin, stateless proxy over a registry Server: every call
// opens its own connection, sends one request Message, reads back one
// response Message, and closes the connection.
type Client struct {
	addr  string
	codec compress.Codec
	cfg   ClientConfig
}

// NewClient builds a Client that dials addr (host:port, TCP) for every
// call.
func NewClient(addr string, opts ...ClientOption) (*Client, error) {
	cfg := ClientConfig{Compression: format.CompressionNone, Timeout: 5 * time.Second}
	if err := options.Apply(&cfg, opts...); err != nil {
		return nil, fmt.Errorf("registry: apply options: %w", err)
	}

	codec, err := compress.GetCodec(cfg.Compression)
	if err != nil {
		return nil, err
	}

	return &Client{addr: addr, codec: codec, cfg: cfg}, nil
}

func (c *Client) call(req *value.Array) (*value.Array, error) {
	conn, err := net.DialTimeout("tcp", c.addr, c.cfg.Timeout)
	if err != nil {
		return nil, fmt.Errorf("registry: dial %s: %w", c.addr, err)
	}
	defer conn.Close()

	conn.SetDeadline(time.Now().Add(c.cfg.Timeout))

	if err := framing.Write(conn, c.codec, req); err != nil {
		return nil, err
	}

	resp, err := framing.Read(conn, c.codec)
	if err != nil {
		return nil, err
	}

	_, arr, ok := decodeOperation(resp)
	if !ok {
		return nil, fmt.Errorf("registry: malformed response")
	}

	return arr, nil
}

// Register registers ch with the registry.
func (c *Client) Register(ch Channel) error {
	req := encodeRequest(OpRegisterChannel,
		value.NewString(ch.Name), value.NewString(ch.Address),
		value.NewInteger(ch.Port), value.NewString(ch.Transport))

	return c.expectOK(req)
}

// Unregister removes name's registration.
func (c *Client) Unregister(name string) error {
	req := encodeRequest(OpUnregisterChannel, value.NewString(name))

	return c.expectOK(req)
}

// Lookup resolves name to its registered Channel.
func (c *Client) Lookup(name string) (Channel, error) {
	req := encodeRequest(OpLookupChannel, value.NewString(name))
	arr, err := c.call(req)
	if err != nil {
		return Channel{}, err
	}

	if op := opOf(arr); op == OpError {
		return Channel{}, responseError(arr)
	}

	if arr.Len() < 5 {
		return Channel{}, fmt.Errorf("registry: lookup: malformed response")
	}
	name2, _ := value.AsString(arr.At(1))
	addr, _ := value.AsString(arr.At(2))
	port, _ := value.AsInteger(arr.At(3))
	transport, _ := value.AsString(arr.At(4))

	return Channel{Name: name2.String(), Address: addr.String(), Port: port.Int64(), Transport: transport.String()}, nil
}

// List returns every currently registered channel name.
func (c *Client) List() ([]string, error) {
	req := encodeRequest(OpListChannels)
	arr, err := c.call(req)
	if err != nil {
		return nil, err
	}

	if op := opOf(arr); op == OpError {
		return nil, responseError(arr)
	}

	names := make([]string, 0, arr.Len()-1)
	for i := 1; i < arr.Len(); i++ {
		s, ok := value.AsString(arr.At(i))
		if !ok {
			continue
		}
		names = append(names, s.String())
	}

	return names, nil
}

// Ping checks that the registry is reachable.
func (c *Client) Ping() error {
	_, err := c.call(encodeRequest(OpPing))

	return err
}

func (c *Client) expectOK(req *value.Array) error {
	arr, err := c.call(req)
	if err != nil {
		return err
	}
	if op := opOf(arr); op == OpError {
		return responseError(arr)
	}

	return nil
}

func opOf(arr *value.Array) Operation {
	if arr.Len() == 0 {
		return 0
	}
	n, ok := value.AsInteger(arr.At(0))
	if !ok {
		return 0
	}

	return Operation(n.Int64())
}

func responseError(arr *value.Array) error {
	if arr.Len() < 2 {
		return fmt.Errorf("registry: request failed")
	}
	msg, ok := value.AsString(arr.At(1))
	if !ok {
		return fmt.Errorf("registry: request failed")
	}

	return fmt.Errorf("registry: %s", msg.String())
}
