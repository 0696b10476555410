package cmd

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/domaingen/domaingen/internal/core"
	"github.com/domaingen/domaingen/internal/observability"
	"github.com/domaingen/domaingen/internal/output"
)

// itemStore is the subset of store.Store the items commands use.
type itemStore interface {
	ListItems(ctx context.Context) ([]core.Item, error)
	ListItemsByType(ctx context.Context, itemType core.ItemType) ([]core.Item, error)
	SaveItem(ctx context.Context, input core.ItemInput) (*core.Item, error)
	DeleteItem(ctx context.Context, id int64) (bool, error)
}

var itemsCmd = &cobra.Command{
	Use:   "items",
	Short: "Manage prefix and suffix fragments",
}

var itemsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored fragments",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		typeFlag, _ := cmd.Flags().GetString("type")
		outputFlag, _ := cmd.Flags().GetString("output")

		format, err := output.ParseFormat(outputFlag)
		if err != nil {
			return err
		}

		return withStore(cmd.Context(), func(db itemStore) error {
			rendered, err := renderItems(cmd.Context(), db, typeFlag, format)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), rendered)
			return nil
		})
	},
}

var itemsAddCmd = &cobra.Command{
	Use:   "add <prefix|suffix> <description>",
	Short: "Save a fragment",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(cmd.Context(), func(db itemStore) error {
			item, err := addItem(cmd.Context(), db, args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "saved %s %q with id %d\n", item.Type, item.Description, item.ID)
			return nil
		})
	},
}

var itemsRmCmd = &cobra.Command{
	Use:     "rm <id>",
	Aliases: []string{"delete"},
	Short:   "Delete a fragment (succeeds even when the id does not exist)",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(strings.TrimSpace(args[0]), 10, 64)
		if err != nil {
			return fmt.Errorf("item id must be an integer: %q", args[0])
		}

		return withStore(cmd.Context(), func(db itemStore) error {
			deleted, err := db.DeleteItem(cmd.Context(), id)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), deleted)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(itemsCmd)
	itemsCmd.AddCommand(itemsListCmd, itemsAddCmd, itemsRmCmd)

	itemsListCmd.Flags().StringP("type", "t", "", "only list fragments of this type (prefix|suffix)")
	itemsListCmd.Flags().StringP("output", "o", "table", "output format: table, json, markdown")
}

// withStore opens the configured store for the duration of fn.
func withStore(ctx context.Context, fn func(db itemStore) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	db, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			observability.CLILogger.Warn("Failed to close store", zap.Error(err))
		}
	}()

	return fn(db)
}

func renderItems(ctx context.Context, db itemStore, rawType string, format output.Format) (string, error) {
	var (
		items []core.Item
		err   error
	)
	if strings.TrimSpace(rawType) == "" {
		items, err = db.ListItems(ctx)
	} else {
		// no stored item can carry an unknown type
		if itemType, parseErr := core.ParseItemType(rawType); parseErr == nil {
			items, err = db.ListItemsByType(ctx, itemType)
		}
	}
	if err != nil {
		return "", err
	}

	return output.NewFormatter(format).FormatItems(items)
}

func addItem(ctx context.Context, db itemStore, rawType, description string) (*core.Item, error) {
	itemType, err := core.ParseItemType(rawType)
	if err != nil {
		return nil, err
	}
	return db.SaveItem(ctx, core.ItemInput{Type: itemType, Description: description})
}
