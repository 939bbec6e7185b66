// Command nimo-filter sits between an upstream source and a downstream
// sink: it reads framed Messages from an upstream TCP connection, forwards
// the ones that pass a selection rule to a downstream TCP connection, and
// drops the rest. Like nimo-source/nimo-sink it treats the wire codec as
// an opaque serializer/deserializer — it only ever inspects the outer
// value.Array shape, never channel semantics.
package main

import (
	"fmt"
	"net"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/nimo-project/nimo/compress"
	"github.com/nimo-project/nimo/format"
	"github.com/nimo-project/nimo/internal/framing"
	"github.com/nimo-project/nimo/internal/log"
	"github.com/nimo-project/nimo/value"
	"github.com/urfave/cli/v2"
)

func main() {
	_ = godotenv.Load()

	app := &cli.App{
		Name:  "nimo-filter",
		Usage: "relay framed Messages from an upstream TCP peer to a downstream one, dropping non-matching ones",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "upstream", Usage: "upstream address to dial, host:port", Required: true},
			&cli.StringFlag{Name: "downstream", Usage: "downstream address to dial, host:port", Required: true},
			&cli.StringFlag{Name: "match", Usage: "only forward Messages whose last string element contains this substring (empty forwards everything)"},
			&cli.StringFlag{Name: "compression", Value: "none", Usage: "none, zstd, s2 or lz4"},
			&cli.StringFlag{Name: "loglevel", Value: "info"},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func run(c *cli.Context) error {
	log.SetLevel(c.String("loglevel"))

	compression, err := parseCompression(c.String("compression"))
	if err != nil {
		return err
	}
	codec, err := compress.GetCodec(compression)
	if err != nil {
		return err
	}

	up, err := net.Dial("tcp", c.String("upstream"))
	if err != nil {
		return fmt.Errorf("nimo-filter: dial upstream: %w", err)
	}
	defer up.Close()

	down, err := net.Dial("tcp", c.String("downstream"))
	if err != nil {
		return fmt.Errorf("nimo-filter: dial downstream: %w", err)
	}
	defer down.Close()

	match := c.String("match")

	for {
		v, err := framing.Read(up, codec)
		if err != nil {
			return fmt.Errorf("nimo-filter: read upstream: %w", err)
		}

		if !matches(v, match) {
			log.Debugf("nimo-filter: dropped non-matching message")
			continue
		}

		if err := framing.Write(down, codec, v); err != nil {
			return fmt.Errorf("nimo-filter: write downstream: %w", err)
		}
	}
}

// matches reports whether v should be forwarded: every Message passes when
// substr is empty, otherwise v must be an Array whose last element is a
// String containing substr.
func matches(v value.Value, substr string) bool {
	if substr == "" {
		return true
	}

	arr, ok := value.AsArray(v)
	if !ok || arr.Len() == 0 {
		return false
	}

	s, ok := value.AsString(arr.At(arr.Len() - 1))
	if !ok {
		return false
	}

	return strings.Contains(s.String(), substr)
}

func parseCompression(name string) (format.CompressionType, error) {
	switch name {
	case "", "none":
		return format.CompressionNone, nil
	case "zstd":
		return format.CompressionZstd, nil
	case "s2":
		return format.CompressionS2, nil
	case "lz4":
		return format.CompressionLZ4, nil
	default:
		return 0, fmt.Errorf("nimo-filter: unknown compression %q", name)
	}
}
