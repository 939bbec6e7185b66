package registry

import (
	"net"

	"github.com/nimo-project/nimo/compress"
	"github.com/nimo-project/nimo/format"
	"github.com/nimo-project/nimo/internal/framing"
	"github.com/nimo-project/nimo/internal/log"
)

// Serve accepts connections on ln, handling each with a fresh frame
// exchange: one request frame in, one response frame out, then the
// connection closes. It blocks until ln.Accept returns an error (typically
// because the listener was closed) and then returns that error.
func (s *Server) Serve(ln net.Listener, compression format.CompressionType) error {
	codec, err := compress.GetCodec(compression)
	if err != nil {
		return err
	}

	for {
		conn, err := ln.Accept()
		if err != nil {
			return err
		}

		go s.handleConn(conn, codec)
	}
}

func (s *Server) handleConn(conn net.Conn, codec compress.Codec) {
	defer conn.Close()

	req, err := framing.Read(conn, codec)
	if err != nil {
		log.Warnf("registry: read request: %v", err)
		return
	}

	resp := s.Handle(req)

	if err := framing.Write(conn, codec, resp); err != nil {
		log.Warnf("registry: write response: %v", err)
	}
}
