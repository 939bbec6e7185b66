// Package compress provides compression and decompression codecs for
// registry wire payloads.
//
// Payloads are encoded value.Value trees — request/response Messages built
// by the registry — serialized via wire.Write before being handed to a
// Codec. Compression is an optional second stage the registry applies on
// top of that encoding, chosen per connection via format.CompressionType.
//
// # Supported algorithms
//
//   - None: no compression (fastest, largest)
//   - Zstd: best compression ratio, moderate speed
//   - S2: balanced compression and speed
//   - LZ4: fastest decompression, moderate compression
//
// # Architecture
//
//	type Compressor interface {
//	    Compress(data []byte) ([]byte, error)
//	}
//
//	type Decompressor interface {
//	    Decompress(data []byte) ([]byte, error)
//	}
//
//	type Codec interface {
//	    Compressor
//	    Decompressor
//	}
//
// # Choosing an algorithm
//
// Registry payloads are mostly short, text-heavy Messages (channel names,
// addresses, transport descriptors), so Zstd and S2 both do well; LZ4 is a
// reasonable default for latency-sensitive discovery queries where
// decompression speed matters more than ratio.
//
// # Thread safety
//
// All codec implementations are safe for concurrent use.
package compress
