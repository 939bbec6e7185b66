// Command nimo-sink listens on TCP or UDP, reads one framed Message per
// connection (or per datagram), and prints its text form to stdout. Like
// nimo-source, it treats the wire codec as an opaque serializer and never
// inspects channel semantics.
package main

import (
	"fmt"
	"net"
	"os"

	"github.com/joho/godotenv"
	"github.com/nimo-project/nimo"
	"github.com/nimo-project/nimo/compress"
	"github.com/nimo-project/nimo/format"
	"github.com/nimo-project/nimo/internal/framing"
	"github.com/nimo-project/nimo/internal/log"
	"github.com/urfave/cli/v2"
)

func main() {
	_ = godotenv.Load()

	app := &cli.App{
		Name:  "nimo-sink",
		Usage: "receive framed Messages over TCP or UDP and print them",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "addr", Usage: "address to listen on, host:port", Required: true},
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

	if c.String("net") == "udp" {
		return serveUDP(c.String("addr"), codec)
	}

	return serveTCP(c.String("addr"), codec)
}

func serveTCP(addr string, codec compress.Codec) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("nimo-sink: listen: %w", err)
	}
	defer ln.Close()
	log.Infof("nimo-sink: listening on tcp %s", addr)

	for {
		conn, err := ln.Accept()
		if err != nil {
			return err
		}
		go handleConn(conn, codec)
	}
}

func handleConn(conn net.Conn, codec compress.Codec) {
	defer conn.Close()

	v, err := framing.Read(conn, codec)
	if err != nil {
		log.Warnf("nimo-sink: read: %v", err)
		return
	}

	fmt.Println(nimo.EncodeText(v, false))
}

func serveUDP(addr string, codec compress.Codec) error {
	udpAddr, err := net.ResolveUDPAddr("udp", addr)
	if err != nil {
		return fmt.Errorf("nimo-sink: resolve: %w", err)
	}

	conn, err := net.ListenUDP("udp", udpAddr)
	if err != nil {
		return fmt.Errorf("nimo-sink: listen: %w", err)
	}
	defer conn.Close()
	log.Infof("nimo-sink: listening on udp %s", addr)

	for {
		v, err := framing.ReadPacket(conn, codec)
		if err != nil {
			log.Warnf("nimo-sink: read packet: %v", err)
			continue
		}

		fmt.Println(nimo.EncodeText(v, false))
	}
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
		return 0, fmt.Errorf("nimo-sink: unknown compression %q", name)
	}
}
