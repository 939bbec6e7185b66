// Package discovery announces and resolves channel transport endpoints
// using DNS TXT records, independent of the typed-value codec: the tuples
// it carries — address, port, transport — are plain strings assembled
// directly into TXT record content, never passed through wire or value.
package discovery

import (
	"fmt"
	"strconv"
	"strings"
)

// Endpoint is the (address, port, transport) tuple a node announces for one
// of its channels.
type Endpoint struct {
	Address   string
	Port      int
	Transport string
}

// encodeTXT packs an Endpoint into the single string carried by a TXT
// record, "<address>:<port>:<transport>".
func encodeTXT(e Endpoint) string {
	return fmt.Sprintf("%s:%d:%s", e.Address, e.Port, e.Transport)
}

// decodeTXT unpacks a TXT record string produced by encodeTXT. ok is false
// if txt doesn't have the expected three colon-separated fields.
func decodeTXT(txt string) (Endpoint, bool) {
	parts := strings.Split(txt, ":")
	if len(parts) != 3 {
		return Endpoint{}, false
	}
	port, err := strconv.Atoi(parts[1])
	if err != nil {
		return Endpoint{}, false
	}

	return Endpoint{Address: parts[0], Port: port, Transport: parts[2]}, true
}
