package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"

	"github.com/asad/kitchenstate/internal/services/menu"
	"github.com/asad/kitchenstate/internal/services/order"
	"github.com/asad/kitchenstate/internal/services/recipe"
	"github.com/asad/kitchenstate/internal/state"
)

// withState opens the configured store for the duration of fn.
func withState(cmd *cobra.Command, fn func(ctx context.Context, st *state.State) error) (err error) {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	defer logger.Sync()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	st, err := state.Open(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, st.Close())
	}()

	return fn(ctx, st)
}

// printJSON writes v to the command's output, indented.
func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// readInput reads the document named by path; "-" means stdin.
func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "" {
		return nil, fmt.Errorf("an input file is required (use -f FILE or -f - for stdin)")
	}
	if path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}

func newMenuCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "menu",
		Short: "Read or replace the stored menu",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the menu, creating the default one on first use",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withState(cmd, func(ctx context.Context, st *state.State) error {
				data, err := st.Menu.Init(ctx)
				if err != nil {
					return err
				}
				return printJSON(cmd, data)
			})
		},
	})

	var file string
	save := &cobra.Command{
		Use:   "save",
		Short: "Replace the menu with a JSON document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := readInput(cmd, file)
			if err != nil {
				return err
			}
			var data menu.Data
			if err := json.Unmarshal(raw, &data); err != nil {
				return fmt.Errorf("input is not a menu document: %w", err)
			}
			return withState(cmd, func(ctx context.Context, st *state.State) error {
				return st.Menu.Save(ctx, data)
			})
		},
	}
	save.Flags().StringVarP(&file, "file", "f", "", "JSON file to read, - for stdin")
	cmd.AddCommand(save)

	return cmd
}

func newOrderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "order",
		Short: "Read or replace the stored order",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the order, creating an empty one on first use",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withState(cmd, func(ctx context.Context, st *state.State) error {
				data, err := st.Order.Init(ctx)
				if err != nil {
					return err
				}
				return printJSON(cmd, data)
			})
		},
	})

	var file string
	save := &cobra.Command{
		Use:   "save",
		Short: "Replace the order with a JSON document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := readInput(cmd, file)
			if err != nil {
				return err
			}
			var data order.Data
			if err := json.Unmarshal(raw, &data); err != nil {
				return fmt.Errorf("input is not an order document: %w", err)
			}
			return withState(cmd, func(ctx context.Context, st *state.State) error {
				return st.Order.Save(ctx, data)
			})
		},
	}
	save.Flags().StringVarP(&file, "file", "f", "", "JSON file to read, - for stdin")
	cmd.AddCommand(save)

	return cmd
}

func newRecipeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recipe",
		Short: "Read or replace per-date recipe lists",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "Print the dates that have recipes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withState(cmd, func(ctx context.Context, st *state.State) error {
				dates, err := st.Recipe.Dates(ctx)
				if err != nil {
					return err
				}
				for _, d := range dates {
					fmt.Fprintln(cmd.OutOrStdout(), d)
				}
				return nil
			})
		},
	})

	var getDate string
	get := &cobra.Command{
		Use:   "get",
		Short: "Print the recipes for a date (today by default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withState(cmd, func(ctx context.Context, st *state.State) error {
				date := getDate
				if date == "" {
					date = st.Recipe.Today()
				}
				day, err := st.Recipe.GetByDate(ctx, date)
				if err != nil {
					return err
				}
				return printJSON(cmd, day)
			})
		},
	}
	get.Flags().StringVar(&getDate, "date", "", "date in YYYY-MM-DD form")
	cmd.AddCommand(get)

	var (
		saveDate string
		file     string
	)
	save := &cobra.Command{
		Use:   "save",
		Short: "Replace the recipes for a date (today by default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := readInput(cmd, file)
			if err != nil {
				return err
			}
			day, err := recipe.DecodeDay(raw)
			if err != nil {
				return err
			}
			return withState(cmd, func(ctx context.Context, st *state.State) error {
				if !cmd.Flags().Changed("date") {
					return st.Recipe.SaveToday(ctx, day)
				}
				return st.Recipe.SaveByDate(ctx, saveDate, day)
			})
		},
	}
	save.Flags().StringVar(&saveDate, "date", "", "date in YYYY-MM-DD form")
	save.Flags().StringVarP(&file, "file", "f", "", "JSON file to read, - for stdin")
	cmd.AddCommand(save)

	return cmd
}
