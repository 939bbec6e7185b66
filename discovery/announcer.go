package discovery

import (
	"sync"

	"github.com/miekg/dns"
	"github.com/nimo-project/nimo/internal/log"
)

// Announcer serves TXT records for a set of registered channel names over
// DNS (UDP), so a Browser on another node can resolve a channel name to its
// transport endpoint without talking to the central registry.
type Announcer struct {
	domain string
	server *dns.Server

	mu        sync.RWMutex
	endpoints map[string]Endpoint // channel name -> endpoint
}

// NewAnnouncer builds an Announcer that will answer queries under domain
// (e.g. "nimo.local.") once Start is called.
func NewAnnouncer(domain string) *Announcer {
	return &Announcer{
		domain:    dns.Fqdn(domain),
		endpoints: make(map[string]Endpoint),
	}
}

// Publish makes name resolvable to endpoint. Overwrites any prior
// publication for the same name.
func (a *Announcer) Publish(name string, endpoint Endpoint) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.endpoints[name] = endpoint
}

// Withdraw stops name from resolving.
func (a *Announcer) Withdraw(name string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	delete(a.endpoints, name)
}

// Start begins serving DNS queries on addr (host:port) over UDP. It
// returns once the server is listening; call Stop to shut it down.
func (a *Announcer) Start(addr string) error {
	mux := dns.NewServeMux()
	mux.HandleFunc(a.domain, a.handleQuery)

	a.server = &dns.Server{Addr: addr, Net: "udp", Handler: mux}

	started := make(chan error, 1)
	a.server.NotifyStartedFunc = func() { started <- nil }

	go func() {
		if err := a.server.ListenAndServe(); err != nil {
			log.Errorf("discovery: announcer stopped: %v", err)
		}
	}()

	return <-started
}

// Stop shuts the Announcer's DNS server down.
func (a *Announcer) Stop() error {
	if a.server == nil {
		return nil
	}

	return a.server.Shutdown()
}

func (a *Announcer) handleQuery(w dns.ResponseWriter, r *dns.Msg) {
	msg := new(dns.Msg)
	msg.SetReply(r)

	for _, q := range r.Question {
		if q.Qtype != dns.TypeTXT {
			continue
		}

		name, ok := trimDomain(q.Name, a.domain)
		if !ok {
			continue
		}

		a.mu.RLock()
		endpoint, ok := a.endpoints[name]
		a.mu.RUnlock()
		if !ok {
			continue
		}

		rr := &dns.TXT{
			Hdr: dns.RR_Header{Name: q.Name, Rrtype: dns.TypeTXT, Class: dns.ClassINET, Ttl: 60},
			Txt: []string{encodeTXT(endpoint)},
		}
		msg.Answer = append(msg.Answer, rr)
	}

	if err := w.WriteMsg(msg); err != nil {
		log.Warnf("discovery: write response: %v", err)
	}
}

// trimDomain strips the trailing ".<domain>" from qname, returning the
// channel-name label that precedes it. ok is false if qname isn't under
// domain at all.
func trimDomain(qname, domain string) (string, bool) {
	suffix := "." + domain
	if len(qname) <= len(suffix) || qname[len(qname)-len(suffix):] != suffix {
		return "", false
	}

	return qname[:len(qname)-len(suffix)], true
}
