// Command nimo-source reads lines from stdin and sends each one as a
// framed Message to a TCP or UDP peer, demonstrating the wire codec used
// purely as an opaque serializer: this tool never inspects channel
// semantics, it just wraps payloads and ships them.
package main

import (
	"bufio"
	"fmt"
	"net"
	"os"

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
		Name:  "nimo-source",
		Usage: "send stdin lines as framed Messages over TCP or UDP",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "addr", Usage: "peer address, host:port", Required: true},
			&cli.StringFlag{Name: "net", Value: "tcp", Usage: "tcp or udp"},
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

	conn, err := net.Dial(c.String("net"), c.String("addr"))
	if err != nil {
		return fmt.Errorf("nimo-source: dial: %w", err)
	}
	defer conn.Close()

	datagram := c.String("net") == "udp"

	scanner := bufio.NewScanner(os.Stdin)
	var seq int64
	for scanner.Scan() {
		arr := value.NewArray()
		arr.Append(value.NewInteger(seq))
		arr.Append(value.NewString(scanner.Text()))

		var err error
		if datagram {
			err = framing.WritePacket(conn, codec, arr)
		} else {
			err = framing.Write(conn, codec, arr)
		}
		if err != nil {
			return fmt.Errorf("nimo-source: send: %w", err)
		}
		log.Debugf("nimo-source: sent message %d", seq)
		seq++
	}

	return scanner.Err()
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
		return 0, fmt.Errorf("nimo-source: unknown compression %q", name)
	}
}
