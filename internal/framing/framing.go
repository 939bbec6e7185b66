// Package framing implements the length-prefixed, optionally-compressed
// datagram framing the registry and the wiring tools (cmd/nimo-source,
// cmd/nimo-sink, cmd/nimo-filter) use on top of the binary Message codec:
// a 4-byte big-endian length prefix followed by that many bytes of
// (possibly compressed) Message payload. Framing is a transport concern
// layered outside the codec itself — wire.Write/Read never see it.
package framing

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/nimo-project/nimo"
	"github.com/nimo-project/nimo/compress"
	"github.com/nimo-project/nimo/value"
)

// MaxDatagramSize bounds a single WritePacket/ReadPacket frame: comfortably
// under the common 65507-byte UDP payload ceiling.
const MaxDatagramSize = 65000

// Write encodes v as a binary Message, compresses it with codec, and writes
// it to w as a 4-byte length prefix followed by the payload.
func Write(w io.Writer, codec compress.Codec, v value.Value) error {
	data, err := nimo.EncodeMessage(v)
	if err != nil {
		return fmt.Errorf("framing: encode: %w", err)
	}

	data, err = codec.Compress(data)
	if err != nil {
		return fmt.Errorf("framing: compress: %w", err)
	}

	var lenBuf [4]byte
	binary.BigEndian.PutUint32(lenBuf[:], uint32(len(data)))
	if _, err := w.Write(lenBuf[:]); err != nil {
		return fmt.Errorf("framing: write length: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("framing: write payload: %w", err)
	}

	return nil
}

// Read reads one length-prefixed, possibly-compressed frame from r and
// decodes it to a Value.
func Read(r io.Reader, codec compress.Codec) (value.Value, error) {
	var lenBuf [4]byte
	if _, err := io.ReadFull(r, lenBuf[:]); err != nil {
		return nil, fmt.Errorf("framing: read length: %w", err)
	}
	n := binary.BigEndian.Uint32(lenBuf[:])

	data := make([]byte, n)
	if _, err := io.ReadFull(r, data); err != nil {
		return nil, fmt.Errorf("framing: read payload: %w", err)
	}

	data, err := codec.Decompress(data)
	if err != nil {
		return nil, fmt.Errorf("framing: decompress: %w", err)
	}

	v, err := nimo.DecodeMessage(data)
	if err != nil {
		return nil, fmt.Errorf("framing: decode: %w", err)
	}

	return v, nil
}

// WritePacket is Write's datagram-safe counterpart: it assembles the length
// prefix and payload in memory and issues a single w.Write call, so the
// whole frame lands in one UDP datagram instead of being split across two
// Write calls (which would otherwise become two separate packets).
func WritePacket(w io.Writer, codec compress.Codec, v value.Value) error {
	data, err := nimo.EncodeMessage(v)
	if err != nil {
		return fmt.Errorf("framing: encode: %w", err)
	}

	data, err = codec.Compress(data)
	if err != nil {
		return fmt.Errorf("framing: compress: %w", err)
	}

	buf := make([]byte, 4+len(data))
	binary.BigEndian.PutUint32(buf[:4], uint32(len(data)))
	copy(buf[4:], data)

	if _, err := w.Write(buf); err != nil {
		return fmt.Errorf("framing: write packet: %w", err)
	}

	return nil
}

// ReadPacket is Read's datagram-safe counterpart: it issues a single Read
// call (a UDP read returns exactly one datagram) and parses the frame out
// of that one packet, rather than doing independent reads for the length
// prefix and the payload as Read does for streams.
func ReadPacket(r io.Reader, codec compress.Codec) (value.Value, error) {
	buf := make([]byte, MaxDatagramSize)
	n, err := r.Read(buf)
	if err != nil {
		return nil, fmt.Errorf("framing: read packet: %w", err)
	}

	return Read(bytes.NewReader(buf[:n]), codec)
}
