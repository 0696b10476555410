package checker

import (
	"context"
)

// Checker reports whether a fully qualified domain name appears unregistered.
type Checker interface {
	IsAvailable(ctx context.Context, fqdn string) bool
}

// Resolver is the subset of *net.Resolver used for availability checks.
type Resolver interface {
	LookupHost(ctx context.Context, host string) ([]string, error)
}
