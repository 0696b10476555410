package cmd

import (
	"context"
	"testing"

	"github.com/fulmenhq/gofulmen/foundry"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/domaingen/domaingen/internal/config"
	"github.com/domaingen/domaingen/internal/core"
	"github.com/domaingen/domaingen/internal/core/engine"
	errwrap "github.com/domaingen/domaingen/internal/errors"
	"github.com/domaingen/domaingen/internal/output"
)

type availableSet map[string]bool

func (a availableSet) IsAvailable(ctx context.Context, fqdn string) bool {
	return a[fqdn]
}

func TestRenderCandidatesForName(t *testing.T) {
	gen := &engine.Generator{Checker: availableSet{"foo.org": true}}

	rendered, err := renderCandidates(context.Background(), gen, output.FormatMarkdown, "FOO")
	require.NoError(t, err)
	assert.Contains(t, rendered, "| foo.org | available |")
	assert.Contains(t, rendered, "| foo.com | taken |")
	assert.Contains(t, rendered, "**Available**: 1/4")
}

func TestRenderCandidatesCombinations(t *testing.T) {
	items := &memoryItemStore{items: []core.Item{
		{ID: 1, Type: core.ItemTypePrefix, Description: "Sun"},
		{ID: 2, Type: core.ItemTypeSuffix, Description: "Flower"},
	}}
	gen := &engine.Generator{Items: items, Checker: availableSet{}}

	rendered, err := renderCandidates(context.Background(), gen, output.FormatJSON, "")
	require.NoError(t, err)
	assert.JSONEq(t,
		`[{"name":"sunflower","checkout":"https://checkout.hostgator.com.br/?a=add&sld=sunflower&tld=.com.br","available":false}]`,
		rendered)
}

func TestRenderCandidatesBlankName(t *testing.T) {
	gen := &engine.Generator{Checker: availableSet{}}

	_, err := renderCandidates(context.Background(), gen, output.FormatTable, "   ")
	require.ErrorIs(t, err, engine.ErrNameRequired)
}

func TestNewGeneratorUsesDomainConfig(t *testing.T) {
	cfg := &config.Config{Domain: config.DomainConfig{Concurrency: 3}}

	gen := newGenerator(cfg, nil)
	assert.Equal(t, 3, gen.Concurrency)
	assert.NotNil(t, gen.Checker)
	assert.Nil(t, gen.Items)
}

func TestConfigureViperAppliesDefaultsAndEnv(t *testing.T) {
	t.Setenv("DOMAINGEN_DOMAIN_CONCURRENCY", "5")

	v := viper.New()
	configureViper(v, "")

	cfg, err := config.LoadFrom(v)
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Domain.Concurrency)
	assert.Equal(t, "libsql", cfg.Store.Driver)
	assert.Equal(t, 8080, cfg.Server.Port)
}

func TestExitCodeFor(t *testing.T) {
	cfgErr := errwrap.WrapConfigInvalid(context.Background(), nil, "bad port")
	assert.Equal(t, foundry.ExitConfigInvalid, ExitCodeFor(cfgErr))
	assert.Equal(t, foundry.ExitFailure, ExitCodeFor(errwrap.NewInternalError("boom")))
}
