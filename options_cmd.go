package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"stockhub/internal/catalog"
	"stockhub/internal/domain"
	"stockhub/internal/ui"
	"stockhub/internal/ui/logic"
	"stockhub/internal/ui/searchselect"
)

func newOptionsCmd(global *globalOptions) *cobra.Command {
	var (
		term      string
		matchMode string
		sortBy    string
	)

	cmd := &cobra.Command{
		Use:   "options <source>",
		Short: "Print the options of a source, optionally filtered",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := catalog.ParseSource(args[0])
			if err != nil {
				return err
			}

			a, err := newApp(global)
			if err != nil {
				return err
			}
			defer a.Close()

			selCfg := ui.SelectConfig(a.cfg, source).Resolved()
			if matchMode == "" {
				matchMode = selCfg.MatchMode
			}
			mode, err := logic.ParseMatchMode(matchMode)
			if err != nil {
				return err
			}
			if sortBy == "" {
				sortBy = a.cfg.Select.Sort
			}
			sortMode, err := logic.ParseSortMode(sortBy)
			if err != nil {
				return err
			}

			options, fallback, err := a.catalog.Fetch(cmd.Context(), source)
			if err != nil {
				return err
			}
			if fallback {
				fmt.Fprintf(os.Stderr, "backend unavailable, using built-in %s\n", source)
			}

			filter := logic.NewOptionFilter(selCfg.SearchKeys, mode)
			sorter := logic.NewOptionSorter(selCfg.DisplayKey, selCfg.ValueKey)
			matched := sorter.Sort(filter.Filter(options, term), sortMode)

			return printOptions(cmd.OutOrStdout(), matched, selCfg)
		},
	}

	cmd.Flags().StringVarP(&term, "search", "s", "", "only print options matching this term")
	cmd.Flags().StringVar(&matchMode, "match", "", "substring or fuzzy, overrides select.match_mode")
	cmd.Flags().StringVar(&sortBy, "sort", "", "none, label or key, overrides select.sort")
	return cmd
}

// printOptions writes one aligned line per option: key, label and detail
func printOptions(out io.Writer, options []domain.Option, cfg searchselect.Config) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for _, option := range options {
		key, _ := logic.Field(option, cfg.ValueKey)
		label, _ := logic.Field(option, cfg.DisplayKey)
		if cfg.DetailKey != "" {
			detail, _ := logic.Field(option, cfg.DetailKey)
			fmt.Fprintf(w, "%s\t%s\t%s\n", key, label, detail)
			continue
		}
		fmt.Fprintf(w, "%s\t%s\n", key, label)
	}
	return w.Flush()
}
