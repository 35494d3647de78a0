package cli

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/cfgview/pkg/cfg"
)

// functionInfo summarizes one function of a compile result.
type functionInfo struct {
	Name  string
	Nodes int
	Edges int
}

// functionsCommand creates the functions command.
func (c *CLI) functionsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "functions <compile-result.json>",
		Short: "List the functions of a compile result",
		Long: `List the functions of a compile result in the order render picks them.
The first one is drawn when no --function is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			funcs, err := loadFunctions(args[0])
			if err != nil {
				return err
			}
			if len(funcs) == 0 {
				c.warn("No CFG in %s", displayName(args[0]))
				return nil
			}
			fmt.Fprintln(c.out, functionTable(funcs, -1))
			return nil
		},
	}
}

// loadFunctions reads a compile result and summarizes its functions. A
// result without a cfg has none.
func loadFunctions(input string) ([]functionInfo, error) {
	data, err := readInput(input)
	if err != nil {
		return nil, err
	}
	cr, err := cfg.ReadResult(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	if cr.CFG == nil {
		return nil, nil
	}
	out := make([]functionInfo, 0, cr.CFG.Len())
	for _, name := range cr.CFG.Names() {
		fn, _ := cr.CFG.Lookup(name)
		out = append(out, functionInfo{Name: name, Nodes: len(fn.Nodes), Edges: len(fn.Edges)})
	}
	return out, nil
}

func functionNames(input string) ([]string, error) {
	funcs, err := loadFunctions(input)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(funcs))
	for i, f := range funcs {
		names[i] = f.Name
	}
	return names, nil
}

// functionTable renders funcs as a table, highlighting row cursor (-1 for
// none).
func functionTable(funcs []functionInfo, cursor int) string {
	rows := make([][]string, len(funcs))
	for i, f := range funcs {
		mark := "  "
		if i == cursor {
			mark = "▸ "
		}
		rows[i] = []string{mark, strconv.Itoa(i + 1), f.Name, strconv.Itoa(f.Nodes), strconv.Itoa(f.Edges)}
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "#", "Function", "Blocks", "Edges").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return headerStyle
			case row == cursor:
				return lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
			case col >= 3:
				return lipgloss.NewStyle().Foreground(colorGray)
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		}).
		Render()
}
