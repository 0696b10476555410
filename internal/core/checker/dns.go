package checker

import (
	"context"
	"errors"
	"net"
	"strings"
	"time"

	"github.com/fulmenhq/gofulmen/logging"
	"go.uber.org/zap"

	"github.com/domaingen/domaingen/internal/config"
	"github.com/domaingen/domaingen/internal/metrics"
)

// DNSChecker infers availability from DNS resolution.
//
// A failed lookup of any kind reports the name as available and a successful
// one reports it as taken. This is a heuristic rather than a registry query:
// a registered domain without address records, or a transient resolver
// failure, is indistinguishable from an unregistered name.
type DNSChecker struct {
	Resolver Resolver
	Timeout  time.Duration
	Logger   *logging.Logger
}

// NewDNSChecker builds a checker from configuration. An empty server uses the
// system resolver.
func NewDNSChecker(cfg config.DNSConfig, logger *logging.Logger) *DNSChecker {
	return &DNSChecker{
		Resolver: newResolver(cfg.Server),
		Timeout:  cfg.Timeout,
		Logger:   logger,
	}
}

func newResolver(server string) Resolver {
	server = strings.TrimSpace(server)
	if server == "" {
		return net.DefaultResolver
	}
	if _, _, err := net.SplitHostPort(server); err != nil {
		server = net.JoinHostPort(server, "53")
	}

	return &net.Resolver{
		PreferGo: true,
		Dial: func(ctx context.Context, network, _ string) (net.Conn, error) {
			var d net.Dialer
			return d.DialContext(ctx, network, server)
		},
	}
}

// IsAvailable performs one lookup for fqdn. There is no retry.
func (d *DNSChecker) IsAvailable(ctx context.Context, fqdn string) bool {
	if ctx == nil {
		ctx = context.Background()
	}

	if d.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.Timeout)
		defer cancel()
	}

	resolver := d.Resolver
	if resolver == nil {
		resolver = net.DefaultResolver
	}

	start := time.Now()
	addrs, err := resolver.LookupHost(ctx, fqdn)
	available := err != nil
	metrics.RecordDomainCheck(available, time.Since(start))

	if d.Logger != nil {
		fields := []zap.Field{
			zap.String("fqdn", fqdn),
			zap.Bool("available", available),
			zap.Duration("duration", time.Since(start)),
		}
		if err != nil {
			fields = append(fields, zap.String("dns_status", dnsStatus(err)))
		} else {
			fields = append(fields, zap.Int("records", len(addrs)))
		}
		d.Logger.Debug("Domain availability checked", fields...)
	}

	return available
}

func dnsStatus(err error) string {
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		switch {
		case dnsErr.IsNotFound:
			return "nxdomain"
		case dnsErr.IsTimeout:
			return "timeout"
		case dnsErr.IsTemporary:
			return "temporary"
		}
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return "timeout"
	}
	if errors.Is(err, context.Canceled) {
		return "canceled"
	}
	return "error"
}
