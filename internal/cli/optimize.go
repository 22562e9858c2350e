package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shaiso/Optimata/internal/optimize"
)

// NewOptimizeCmd создаёт команду прогона пайплайна оптимизации.
//
// Выполнение не запускается: команда печатает итоговый граф,
// позволяя посмотреть, что именно сделают проходы.
func NewOptimizeCmd(outputFn func() *Output, configFn func() (*Config, error)) *cobra.Command {
	var targets []string

	cmd := &cobra.Command{
		Use:   "optimize FILE",
		Short: "Run the optimization pipeline and print the rewritten graph",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := outputFn()

			cfg, err := configFn()
			if err != nil {
				return err
			}

			g, err := loadGraph(args[0])
			if err != nil {
				return err
			}

			if len(targets) == 0 {
				return fmt.Errorf("at least one --target key is required")
			}

			optimized, err := optimize.Optimize(g, keysOf(targets), cfg.Options())
			if err != nil {
				return err
			}

			out.Success(fmt.Sprintf("Optimized: %d tasks -> %d tasks", len(g), len(optimized)))
			out.Print(
				[]string{"KEY", "TASK", "DEPENDS_ON"},
				graphRows(optimized),
				graphJSON(optimized),
			)
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&targets, "target", nil, "Output keys to optimize for (repeatable)")

	return cmd
}
