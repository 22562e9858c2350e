package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shaiso/Optimata/internal/graph"
)

// NewValidateCmd создаёт команду валидации файла графа.
func NewValidateCmd(outputFn func() *Output) *cobra.Command {
	var external []string

	cmd := &cobra.Command{
		Use:   "validate FILE",
		Short: "Parse and validate a task graph file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := outputFn()

			g, err := loadGraph(args[0])
			if err != nil {
				return err
			}

			ext := graph.NewKeySet(keysOf(external)...)
			if err := graph.Validate(g, ext); err != nil {
				return err
			}

			out.Success(fmt.Sprintf("Graph is valid: %d tasks", len(g)))
			out.Print(
				[]string{"KEY", "TASK", "DEPENDS_ON"},
				graphRows(g),
				graphJSON(g),
			)
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&external, "external", nil,
		"Keys supplied externally (references to them are not dangling)")

	return cmd
}

// NewShowCmd создаёт команду просмотра задач и зависимостей графа.
func NewShowCmd(outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "show FILE",
		Short: "Show tasks and dependencies of a graph file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := outputFn()

			g, err := loadGraph(args[0])
			if err != nil {
				return err
			}

			out.Print(
				[]string{"KEY", "TASK", "DEPENDS_ON"},
				graphRows(g),
				graphJSON(g),
			)
			return nil
		},
	}
}
