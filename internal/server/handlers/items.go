package handlers

import (
	"encoding/json"
	stderrors "errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/domaingen/domaingen/internal/core"
	apperrors "github.com/domaingen/domaingen/internal/errors"
)

const maxItemBodyBytes = 64 << 10

// saveItemRequest accepts the type as free text so legacy spellings can be
// normalized before validation. Any id sent by a client is ignored.
type saveItemRequest struct {
	Type        string `json:"type"`
	Description string `json:"description"`
}

// ListItems serves GET /api/items. Without a type query parameter every item
// is returned; a type no item can have yields an empty list.
func (a *API) ListItems(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("type")

	var (
		items []core.Item
		err   error
	)
	if strings.TrimSpace(raw) == "" {
		items, err = a.Items.ListItems(r.Context())
	} else {
		itemType, parseErr := core.ParseItemType(raw)
		if parseErr != nil {
			a.succeed(w, opItems, http.StatusOK, []core.Item{})
			return
		}
		items, err = a.Items.ListItemsByType(r.Context(), itemType)
	}
	if err != nil {
		a.fail(w, r, opItems, err, "failed to list items")
		return
	}

	a.succeed(w, opItems, http.StatusOK, items)
}

// SaveItem serves POST /api/items.
func (a *API) SaveItem(w http.ResponseWriter, r *http.Request) {
	var req saveItemRequest
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxItemBodyBytes))
	if err := decoder.Decode(&req); err != nil {
		a.reject(w, r, opSaveItem, apperrors.WrapInvalidInput(r.Context(), err, "request body must be a JSON item"))
		return
	}

	input := core.ItemInput{
		Type:        core.ItemType(strings.ToLower(strings.TrimSpace(req.Type))),
		Description: req.Description,
	}
	if itemType, err := core.ParseItemType(req.Type); err == nil {
		input.Type = itemType
	}

	if err := a.validate.Struct(input); err != nil {
		a.reject(w, r, opSaveItem, validationEnvelope(r, err))
		return
	}

	item, err := a.Items.SaveItem(r.Context(), input)
	if err != nil {
		a.fail(w, r, opSaveItem, err, "failed to save item")
		return
	}

	a.succeed(w, opSaveItem, http.StatusCreated, item)
}

// DeleteItem serves DELETE /api/items/{id}. It answers true even when the id
// did not exist.
func (a *API) DeleteItem(w http.ResponseWriter, r *http.Request) {
	rawID := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		envelope := apperrors.WrapInvalidInput(r.Context(), err, "item id must be an integer")
		envelope = envelope.WithDetails(map[string]interface{}{"id": rawID})
		a.reject(w, r, opDeleteItem, envelope)
		return
	}

	deleted, err := a.Items.DeleteItem(r.Context(), id)
	if err != nil {
		a.fail(w, r, opDeleteItem, err, "failed to delete item")
		return
	}

	a.succeed(w, opDeleteItem, http.StatusOK, deleted)
}

func validationEnvelope(r *http.Request, err error) error {
	envelope := apperrors.WrapValidationError(r.Context(), err, "invalid item")

	var fieldErrs validator.ValidationErrors
	if stderrors.As(err, &fieldErrs) {
		fields := make(map[string]interface{}, len(fieldErrs))
		for _, fe := range fieldErrs {
			fields[strings.ToLower(fe.Field())] = fe.Tag()
		}
		envelope = envelope.WithDetails(map[string]interface{}{"fields": fields})
	}

	return envelope
}
