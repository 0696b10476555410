package core

import (
	"fmt"
	"strings"
)

// ItemType tags a stored fragment as a prefix or a suffix.
type ItemType string

const (
	ItemTypePrefix ItemType = "prefix"
	ItemTypeSuffix ItemType = "suffix"
)

// legacy spellings still sent by older clients
var itemTypeAliases = map[string]ItemType{
	"prefix":  ItemTypePrefix,
	"prefixe": ItemTypePrefix,
	"suffix":  ItemTypeSuffix,
	"sufixe":  ItemTypeSuffix,
}

// ParseItemType normalizes a raw type string.
func ParseItemType(value string) (ItemType, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	if itemType, ok := itemTypeAliases[normalized]; ok {
		return itemType, nil
	}
	return "", fmt.Errorf("unsupported item type: %q", value)
}

// Valid reports whether t is one of the canonical item types.
func (t ItemType) Valid() bool {
	return t == ItemTypePrefix || t == ItemTypeSuffix
}

// Item is a stored word fragment.
type Item struct {
	ID          int64    `json:"id"`
	Type        ItemType `json:"type"`
	Description string   `json:"description"`
}

// ItemInput carries the fields of an item to be created.
type ItemInput struct {
	Type        ItemType `json:"type" validate:"required,oneof=prefix suffix"`
	Description string   `json:"description" validate:"required"`
}

// Candidate is a generated domain suggestion. It is never persisted.
type Candidate struct {
	Name      string `json:"name"`
	Extension string `json:"extension,omitempty"`
	Checkout  string `json:"checkout"`
	Available bool   `json:"available"`
}
