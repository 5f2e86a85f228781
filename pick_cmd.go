package main

import (
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"
	"github.com/spf13/cobra"

	"stockhub/internal/catalog"
	"stockhub/internal/ui"
	"stockhub/internal/ui/logic"
)

var errNothingChosen = errors.New("nothing selected")

func newPickCmd(global *globalOptions) *cobra.Command {
	var label string

	cmd := &cobra.Command{
		Use:   "pick <source>",
		Short: "Choose one option interactively and print its key",
		Long: "Opens a searchable select over employees, branches or statuses.\n" +
			"The select is drawn on stderr so the chosen key can be piped.",
		Args: cobra.ExactArgs(1),
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

			options, fallback, err := a.catalog.Fetch(cmd.Context(), source)
			if err != nil {
				return err
			}
			if fallback {
				fmt.Fprintf(os.Stderr, "backend unavailable, using built-in %s\n", source)
			}

			sortMode, err := logic.ParseSortMode(a.cfg.Select.Sort)
			if err != nil {
				return err
			}
			selCfg := ui.SelectConfig(a.cfg, source).Resolved()
			selCfg.ID = "pick"
			if label != "" {
				selCfg.Label = label
			}
			sorter := logic.NewOptionSorter(selCfg.DisplayKey, selCfg.ValueKey)

			picker, err := ui.NewPicker(selCfg, sorter.Sort(options, sortMode))
			if err != nil {
				return err
			}

			zone.NewGlobal()
			defer zone.Close()

			p := tea.NewProgram(picker,
				tea.WithOutput(os.Stderr),
				tea.WithMouseCellMotion(),
				tea.WithContext(cmd.Context()),
			)
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("error running picker: %w", err)
			}

			chosen, ok := picker.Chosen()
			if !ok {
				return errNothingChosen
			}
			fmt.Fprintln(cmd.OutOrStdout(), chosen)
			return nil
		},
	}

	cmd.Flags().StringVar(&label, "label", "", "label shown above the select")
	return cmd
}
