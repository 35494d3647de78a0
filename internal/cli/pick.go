package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// pickCommand creates the pick command: choose a function interactively,
// then render it.
func (c *CLI) pickCommand() *cobra.Command {
	var flags renderFlags

	cmd := &cobra.Command{
		Use:   "pick <compile-result.json>",
		Short: "Choose a function interactively and render it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if args[0] == "-" {
				return fmt.Errorf("pick needs a file; stdin is used by the terminal UI")
			}
			funcs, err := loadFunctions(args[0])
			if err != nil {
				return err
			}
			if len(funcs) == 0 {
				c.warn("No CFG in %s, nothing to pick", args[0])
				return nil
			}

			final, err := tea.NewProgram(NewFunctionListModel(funcs), tea.WithContext(cmd.Context())).Run()
			if err != nil {
				return fmt.Errorf("function picker: %w", err)
			}
			chosen := final.(FunctionListModel).Selected
			if chosen == "" {
				c.note("Nothing selected")
				return nil
			}

			flags.function = chosen
			opts := flags.options(c, cmd.Flags())
			if err := opts.ValidateAndSetDefaults(); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], flags.output, flags.noCache, opts)
		},
	}
	flags.register(cmd.Flags())
	_ = cmd.Flags().MarkHidden("function")
	registerRenderCompletions(cmd)
	return cmd
}
