package registry

import (
	"net"
	"testing"

	"github.com/nimo-project/nimo/format"
	"github.com/stretchr/testify/require"
)

func startTestRegistry(t *testing.T, compression format.CompressionType) string {
	t.Helper()

	s, err := NewServer(WithDBPath(":memory:"))
	require.NoError(t, err)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	go s.Serve(ln, compression)

	t.Cleanup(func() {
		ln.Close()
		s.Close()
	})

	return ln.Addr().String()
}

func TestClient_RegisterLookupList(t *testing.T) {
	addr := startTestRegistry(t, format.CompressionNone)

	client, err := NewClient(addr)
	require.NoError(t, err)

	require.NoError(t, client.Ping())

	ch := Channel{Name: "sensors.cpu", Address: "10.0.0.5", Port: 9001, Transport: "tcp"}
	require.NoError(t, client.Register(ch))

	got, err := client.Lookup("sensors.cpu")
	require.NoError(t, err)
	require.Equal(t, ch, got)

	names, err := client.List()
	require.NoError(t, err)
	require.Equal(t, []string{"sensors.cpu"}, names)

	require.NoError(t, client.Unregister("sensors.cpu"))

	_, err = client.Lookup("sensors.cpu")
	require.Error(t, err)
}

func TestClient_WithCompression(t *testing.T) {
	addr := startTestRegistry(t, format.CompressionS2)

	client, err := NewClient(addr, WithCompression(format.CompressionS2))
	require.NoError(t, err)

	ch := Channel{Name: "sensors.mem", Address: "10.0.0.6", Port: 9002, Transport: "udp"}
	require.NoError(t, client.Register(ch))

	got, err := client.Lookup("sensors.mem")
	require.NoError(t, err)
	require.Equal(t, ch, got)
}
