package checker

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/domaingen/domaingen/internal/config"
)

type stubResolver struct {
	addrs map[string][]string
	err   error
	seen  []string
}

func (s *stubResolver) LookupHost(ctx context.Context, host string) ([]string, error) {
	s.seen = append(s.seen, host)
	if s.err != nil {
		return nil, s.err
	}
	if addrs, ok := s.addrs[host]; ok {
		return addrs, nil
	}
	return nil, &net.DNSError{Err: "no such host", Name: host, IsNotFound: true}
}

func TestDNSCheckerResolvedNameIsTaken(t *testing.T) {
	resolver := &stubResolver{addrs: map[string][]string{"example.com": {"93.184.216.34"}}}
	checker := &DNSChecker{Resolver: resolver}

	require.False(t, checker.IsAvailable(context.Background(), "example.com"))
	require.Equal(t, []string{"example.com"}, resolver.seen)
}

func TestDNSCheckerNXDomainIsAvailable(t *testing.T) {
	checker := &DNSChecker{Resolver: &stubResolver{}}

	require.True(t, checker.IsAvailable(context.Background(), "sunflower.com.br"))
}

func TestDNSCheckerAnyErrorIsAvailable(t *testing.T) {
	errs := []error{
		errors.New("connection refused"),
		&net.DNSError{Err: "i/o timeout", IsTimeout: true},
		&net.DNSError{Err: "server misbehaving", IsTemporary: true},
		context.DeadlineExceeded,
	}

	for _, err := range errs {
		checker := &DNSChecker{Resolver: &stubResolver{err: err}}
		require.True(t, checker.IsAvailable(context.Background(), "example.com"), err.Error())
	}
}

func TestDNSCheckerAppliesTimeout(t *testing.T) {
	var deadline time.Time
	resolver := resolverFunc(func(ctx context.Context, host string) ([]string, error) {
		deadline, _ = ctx.Deadline()
		return []string{"127.0.0.1"}, nil
	})
	checker := &DNSChecker{Resolver: resolver, Timeout: time.Minute}

	require.False(t, checker.IsAvailable(context.Background(), "example.com"))
	require.False(t, deadline.IsZero())
}

func TestDNSCheckerNoTimeoutByDefault(t *testing.T) {
	hasDeadline := true
	resolver := resolverFunc(func(ctx context.Context, host string) ([]string, error) {
		_, hasDeadline = ctx.Deadline()
		return []string{"127.0.0.1"}, nil
	})
	checker := &DNSChecker{Resolver: resolver}

	checker.IsAvailable(context.Background(), "example.com")
	require.False(t, hasDeadline)
}

func TestDNSStatus(t *testing.T) {
	require.Equal(t, "nxdomain", dnsStatus(&net.DNSError{IsNotFound: true}))
	require.Equal(t, "timeout", dnsStatus(&net.DNSError{IsTimeout: true}))
	require.Equal(t, "temporary", dnsStatus(&net.DNSError{IsTemporary: true}))
	require.Equal(t, "canceled", dnsStatus(context.Canceled))
	require.Equal(t, "error", dnsStatus(errors.New("boom")))
}

func TestNewDNSChecker(t *testing.T) {
	system := NewDNSChecker(config.DNSConfig{}, nil)
	require.Same(t, net.DefaultResolver, system.Resolver)

	pinned := NewDNSChecker(config.DNSConfig{Server: "8.8.8.8", Timeout: time.Second}, nil)
	resolver, ok := pinned.Resolver.(*net.Resolver)
	require.True(t, ok)
	require.True(t, resolver.PreferGo)
	require.NotNil(t, resolver.Dial)
	require.Equal(t, time.Second, pinned.Timeout)
}

type resolverFunc func(ctx context.Context, host string) ([]string, error)

func (f resolverFunc) LookupHost(ctx context.Context, host string) ([]string, error) {
	return f(ctx, host)
}
