package discovery

import (
	"fmt"
	"time"

	"github.com/miekg/dns"
)

// Browser resolves channel names to transport endpoints by querying an
// Announcer's DNS server.
type Browser struct {
	server  string // announcer's address, "host:port"
	domain  string
	client  *dns.Client
	timeout time.Duration
}

// NewBrowser builds a Browser that queries server (the Announcer's
// "host:port") for names under domain.
func NewBrowser(server, domain string) *Browser {
	return &Browser{
		server:  server,
		domain:  dns.Fqdn(domain),
		client:  new(dns.Client),
		timeout: 2 * time.Second,
	}
}

// Resolve looks up name's published Endpoint. ok is false if no TXT record
// answers the query.
func (b *Browser) Resolve(name string) (Endpoint, bool, error) {
	m := new(dns.Msg)
	qname := fmt.Sprintf("%s.%s", name, b.domain)
	m.SetQuestion(dns.Fqdn(qname), dns.TypeTXT)

	b.client.Timeout = b.timeout
	resp, _, err := b.client.Exchange(m, b.server)
	if err != nil {
		return Endpoint{}, false, fmt.Errorf("discovery: resolve %q: %w", name, err)
	}

	for _, rr := range resp.Answer {
		txt, ok := rr.(*dns.TXT)
		if !ok || len(txt.Txt) == 0 {
			continue
		}

		endpoint, ok := decodeTXT(txt.Txt[0])
		if ok {
			return endpoint, true, nil
		}
	}

	return Endpoint{}, false, nil
}
