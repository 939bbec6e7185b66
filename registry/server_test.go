package registry

import (
	"testing"

	"github.com/nimo-project/nimo/value"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	s, err := NewServer(WithDBPath(":memory:"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	return s
}

func TestServer_RegisterAndLookup(t *testing.T) {
	s := newTestServer(t)

	req := encodeRequest(OpRegisterChannel,
		value.NewString("sensors.cpu"), value.NewString("10.0.0.5"),
		value.NewInteger(9001), value.NewString("tcp"))

	resp := s.Handle(req)
	require.Equal(t, OpOK, opOf(resp))

	lookup := s.Handle(encodeRequest(OpLookupChannel, value.NewString("sensors.cpu")))
	require.Equal(t, OpChannelInfo, opOf(lookup))
	require.Equal(t, 5, lookup.Len())

	name, _ := value.AsString(lookup.At(1))
	addr, _ := value.AsString(lookup.At(2))
	port, _ := value.AsInteger(lookup.At(3))
	transport, _ := value.AsString(lookup.At(4))

	require.Equal(t, "sensors.cpu", name.String())
	require.Equal(t, "10.0.0.5", addr.String())
	require.Equal(t, int64(9001), port.Int64())
	require.Equal(t, "tcp", transport.String())
}

func TestServer_LookupMissingChannel(t *testing.T) {
	s := newTestServer(t)

	resp := s.Handle(encodeRequest(OpLookupChannel, value.NewString("missing")))
	require.Equal(t, OpError, opOf(resp))
}

func TestServer_RegisterDuplicateNameFails(t *testing.T) {
	s := newTestServer(t)

	ch := Channel{Name: "sensors.cpu", Address: "10.0.0.5", Port: 9001, Transport: "tcp"}
	req := encodeRequest(OpRegisterChannel,
		value.NewString(ch.Name), value.NewString(ch.Address),
		value.NewInteger(ch.Port), value.NewString(ch.Transport))

	require.Equal(t, OpOK, opOf(s.Handle(req)))
	require.Equal(t, OpError, opOf(s.Handle(req)))
}

func TestServer_UnregisterRemovesChannel(t *testing.T) {
	s := newTestServer(t)

	req := encodeRequest(OpRegisterChannel,
		value.NewString("sensors.cpu"), value.NewString("10.0.0.5"),
		value.NewInteger(9001), value.NewString("tcp"))
	require.Equal(t, OpOK, opOf(s.Handle(req)))

	unreg := s.Handle(encodeRequest(OpUnregisterChannel, value.NewString("sensors.cpu")))
	require.Equal(t, OpOK, opOf(unreg))

	lookup := s.Handle(encodeRequest(OpLookupChannel, value.NewString("sensors.cpu")))
	require.Equal(t, OpError, opOf(lookup))
}

func TestServer_ListChannels(t *testing.T) {
	s := newTestServer(t)

	for _, name := range []string{"a", "b", "c"} {
		req := encodeRequest(OpRegisterChannel,
			value.NewString(name), value.NewString("127.0.0.1"),
			value.NewInteger(1), value.NewString("udp"))
		require.Equal(t, OpOK, opOf(s.Handle(req)))
	}

	resp := s.Handle(encodeRequest(OpListChannels))
	require.Equal(t, OpChannelList, opOf(resp))
	require.Equal(t, 4, resp.Len()) // op + 3 names
}

func TestServer_Ping(t *testing.T) {
	s := newTestServer(t)

	resp := s.Handle(encodeRequest(OpPing))
	require.Equal(t, OpPing, opOf(resp))
}

func TestServer_MalformedRequest(t *testing.T) {
	s := newTestServer(t)

	resp := s.Handle(value.NewString("not an array"))
	require.Equal(t, OpError, opOf(resp))
}

func TestServer_UnknownOperation(t *testing.T) {
	s := newTestServer(t)

	resp := s.Handle(encodeRequest(Operation(999)))
	require.Equal(t, OpError, opOf(resp))
}
