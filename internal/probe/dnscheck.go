package probe

import (
	"context"
	"errors"
	"net"
	"net/url"
	"strings"
	"time"
)

// DNSDiagnosis explains why a host may have failed to resolve. It is
// logged alongside failed probes as operator context and never changes
// the probe outcome itself.
type DNSDiagnosis struct {
	Host        string
	IPs         []net.IP
	CNAME       string
	Nameservers []string
	Class       string // RESOLVES | NXDOMAIN | NO_A_RECORD | SERVFAIL_OR_TIMEOUT | INVALID_NAME
	ResolverErr string
}

var dnsTimeout = 3 * time.Second

// DiagnoseDNS resolves host with the OS resolver and classifies the result.
func DiagnoseDNS(host string) DNSDiagnosis {
	d := DNSDiagnosis{Host: strings.TrimSpace(host)}
	if d.Host == "" || strings.Contains(d.Host, "://") {
		d.Class = "INVALID_NAME"
		return d
	}

	ctx, cancel := context.WithTimeout(context.Background(), dnsTimeout)
	defer cancel()
	r := &net.Resolver{}

	ips, err := r.LookupIP(ctx, "ip", d.Host)
	switch {
	case err == nil && len(ips) > 0:
		d.IPs = ips
		d.Class = "RESOLVES"
	case err != nil:
		d.ResolverErr = err.Error()
		var de *net.DNSError
		if errors.As(err, &de) {
			if de.IsNotFound {
				d.Class = "NXDOMAIN"
			} else if de.IsTemporary || de.Timeout() {
				d.Class = "SERVFAIL_OR_TIMEOUT"
			}
		}
	}

	if cname, err := r.LookupCNAME(ctx, d.Host); err == nil && !strings.EqualFold(cname, d.Host+".") {
		d.CNAME = strings.TrimSuffix(cname, ".")
	}

	if ns, err := r.LookupNS(ctx, d.Host); err == nil && len(ns) > 0 {
		for _, n := range ns {
			d.Nameservers = append(d.Nameservers, strings.TrimSuffix(n.Host, "."))
		}
		// a delegated zone with no address records
		if d.Class == "NXDOMAIN" {
			d.Class = "NO_A_RECORD"
		}
	}

	if d.Class == "" {
		switch {
		case len(d.IPs) > 0:
			d.Class = "RESOLVES"
		case len(d.Nameservers) > 0:
			d.Class = "NO_A_RECORD"
		case d.ResolverErr != "":
			d.Class = "SERVFAIL_OR_TIMEOUT"
		default:
			d.Class = "NXDOMAIN"
		}
	}
	return d
}

// HostOf pulls the hostname out of a URL string, falling back to the raw
// input when it does not parse as a URL.
func HostOf(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Hostname() == "" {
		return raw
	}
	return u.Hostname()
}
