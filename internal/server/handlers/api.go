package handlers

import (
	"context"
	stderrors "errors"
	"net/http"

	"github.com/fulmenhq/gofulmen/errors"
	"github.com/go-playground/validator/v10"

	"github.com/domaingen/domaingen/internal/core"
	"github.com/domaingen/domaingen/internal/core/engine"
	"github.com/domaingen/domaingen/internal/core/store"
	apperrors "github.com/domaingen/domaingen/internal/errors"
	"github.com/domaingen/domaingen/internal/metrics"
)

// Facade operation names used in metrics.
const (
	opItems           = "items"
	opSaveItem        = "save_item"
	opDeleteItem      = "delete_item"
	opGenerateDomains = "generate_domains"
	opGenerateDomain  = "generate_domain"
)

// ItemStore is the persistence surface the API needs.
type ItemStore interface {
	ListItems(ctx context.Context) ([]core.Item, error)
	ListItemsByType(ctx context.Context, itemType core.ItemType) ([]core.Item, error)
	SaveItem(ctx context.Context, input core.ItemInput) (*core.Item, error)
	DeleteItem(ctx context.Context, id int64) (bool, error)
}

// DomainGenerator produces candidate domains.
type DomainGenerator interface {
	GenerateAll(ctx context.Context) ([]core.Candidate, error)
	GenerateForName(ctx context.Context, name string) ([]core.Candidate, error)
}

// API exposes the item and domain operations over HTTP. It only unwraps
// arguments and shapes results; the work happens in the store and generator.
type API struct {
	Items    ItemStore
	Domains  DomainGenerator
	validate *validator.Validate
}

func NewAPI(items ItemStore, domains DomainGenerator) *API {
	return &API{
		Items:    items,
		Domains:  domains,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (a *API) succeed(w http.ResponseWriter, operation string, status int, body any) {
	metrics.RecordOperation(operation, true)
	writeJSON(w, status, body)
}

// fail maps an operation error onto an envelope and writes it.
func (a *API) fail(w http.ResponseWriter, r *http.Request, operation string, err error, message string) {
	ctx := r.Context()

	var envelope *errors.ErrorEnvelope
	switch {
	case stderrors.Is(err, store.ErrPersistence):
		envelope = apperrors.WrapDatabaseError(ctx, err, message)
	case stderrors.Is(err, store.ErrInvalidItem):
		envelope = apperrors.WrapValidationError(ctx, err, "invalid item")
	case stderrors.Is(err, engine.ErrNameRequired):
		envelope = apperrors.WrapValidationError(ctx, err, err.Error())
	case stderrors.Is(err, context.DeadlineExceeded):
		envelope = apperrors.WrapTimeout(ctx, err, message)
	default:
		envelope = apperrors.WrapInternal(ctx, err, message)
	}

	metrics.RecordOperation(operation, false)
	metrics.RecordOperationError(operation, envelope.Code)
	respondWithError(w, r, envelope)
}

// reject writes a client error that never reached the store or generator.
func (a *API) reject(w http.ResponseWriter, r *http.Request, operation string, err error) {
	metrics.RecordOperation(operation, false)
	metrics.RecordOperationError(operation, apperrors.EnsureEnvelope(err).Code)
	respondWithError(w, r, err)
}
