package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fulmenhq/gofulmen/logging"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/domaingen/domaingen/internal/core"
	"github.com/domaingen/domaingen/internal/core/checker"
	"github.com/domaingen/domaingen/internal/metrics"
)

// ErrNameRequired is returned when GenerateForName receives a blank name.
var ErrNameRequired = errors.New("name is required")

// ItemSource lists stored fragments.
type ItemSource interface {
	ListItems(ctx context.Context) ([]core.Item, error)
}

// Generator builds domain candidates and checks their availability.
type Generator struct {
	Items   ItemSource
	Checker checker.Checker

	// Concurrency bounds in-flight checks. Values below 2 run checks one at a
	// time in output order.
	Concurrency int

	Logger *logging.Logger
}

// GenerateAll combines every prefix with every suffix (prefixes outer,
// suffixes inner) and checks each name under CombinationExtension.
// A store failure or cancelled context aborts the whole batch.
func (g *Generator) GenerateAll(ctx context.Context) ([]core.Candidate, error) {
	if err := g.validate(); err != nil {
		return nil, err
	}
	if g.Items == nil {
		return nil, errors.New("generator has no item source")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	start := time.Now()

	items, err := g.Items.ListItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}

	prefixes, suffixes := partition(items)
	candidates := make([]core.Candidate, 0, len(prefixes)*len(suffixes))
	for _, prefix := range prefixes {
		for _, suffix := range suffixes {
			name := strings.ToLower(prefix.Description + suffix.Description)
			candidates = append(candidates, core.Candidate{
				Name:     name,
				Checkout: CheckoutURL(name, CombinationExtension),
			})
		}
	}

	err = g.checkAll(ctx, candidates, func(c core.Candidate) string {
		return c.Name + CombinationExtension
	})
	if err != nil {
		return nil, err
	}

	g.logGenerated("combinations", len(candidates), start,
		zap.Int("prefixes", len(prefixes)),
		zap.Int("suffixes", len(suffixes)))
	return candidates, nil
}

// GenerateForName expands name across NameExtensions, preserving their order.
func (g *Generator) GenerateForName(ctx context.Context, name string) ([]core.Candidate, error) {
	if err := g.validate(); err != nil {
		return nil, err
	}
	if ctx == nil {
		ctx = context.Background()
	}

	base := strings.ToLower(strings.TrimSpace(name))
	if base == "" {
		return nil, ErrNameRequired
	}

	start := time.Now()

	candidates := make([]core.Candidate, 0, len(NameExtensions))
	for _, extension := range NameExtensions {
		candidates = append(candidates, core.Candidate{
			Name:      base,
			Extension: extension,
			Checkout:  CheckoutURL(base, extension),
		})
	}

	err := g.checkAll(ctx, candidates, func(c core.Candidate) string {
		return c.Name + c.Extension
	})
	if err != nil {
		return nil, err
	}

	g.logGenerated("name", len(candidates), start, zap.String("name", base))
	return candidates, nil
}

// checkAll fills Available on each candidate in place. Results land at the
// candidate's own index, so output order never depends on completion order.
func (g *Generator) checkAll(ctx context.Context, candidates []core.Candidate, fqdn func(core.Candidate) string) error {
	if g.Concurrency < 2 {
		for i := range candidates {
			if err := ctx.Err(); err != nil {
				return err
			}
			candidates[i].Available = g.Checker.IsAvailable(ctx, fqdn(candidates[i]))
		}
		return nil
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(g.Concurrency)
	for i := range candidates {
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}
			candidates[i].Available = g.Checker.IsAvailable(groupCtx, fqdn(candidates[i]))
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return err
	}
	// a parent cancelled after the last check started still aborts the batch
	return ctx.Err()
}

func (g *Generator) validate() error {
	if g == nil || g.Checker == nil {
		return errors.New("generator is not configured")
	}
	return nil
}

func (g *Generator) logGenerated(mode string, count int, start time.Time, extra ...zap.Field) {
	metrics.RecordCandidates(mode, count)
	if g.Logger == nil {
		return
	}

	fields := append([]zap.Field{
		zap.String("mode", mode),
		zap.Int("candidates", count),
		zap.Int("concurrency", max(g.Concurrency, 1)),
		zap.Duration("duration", time.Since(start)),
	}, extra...)
	g.Logger.Info("Generated domain candidates", fields...)
}

func partition(items []core.Item) (prefixes, suffixes []core.Item) {
	for _, item := range items {
		switch item.Type {
		case core.ItemTypePrefix:
			prefixes = append(prefixes, item)
		case core.ItemTypeSuffix:
			suffixes = append(suffixes, item)
		}
	}
	return prefixes, suffixes
}
