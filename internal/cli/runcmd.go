package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shaiso/Optimata/internal/executor"
	"github.com/shaiso/Optimata/internal/optimize"
)

// NewRunCmd создаёт команду оптимизации и выполнения графа.
func NewRunCmd(outputFn func() *Output, configFn func() (*Config, error)) *cobra.Command {
	var targets []string
	var noOptimize bool

	cmd := &cobra.Command{
		Use:   "run FILE",
		Short: "Optimize and execute a graph, print output values",
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
			keys := keysOf(targets)

			if !noOptimize {
				g, err = optimize.Optimize(g, keys, cfg.Options())
				if err != nil {
					return err
				}
			}

			reg := executor.DefaultRegistry()
			ctx := cmd.Context()

			var values []any
			if cfg.Workers > 0 {
				values, err = executor.ExecuteParallel(ctx, g, keys, reg, cfg.Workers)
			} else {
				values, err = executor.Execute(ctx, g, keys, reg)
			}
			if err != nil {
				return err
			}

			rows := make([][]string, len(keys))
			jsonData := make(map[string]any, len(keys))
			for i, k := range keys {
				rows[i] = []string{string(k), fmt.Sprintf("%v", values[i])}
				jsonData[string(k)] = values[i]
			}

			out.Print([]string{"KEY", "VALUE"}, rows, jsonData)
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&targets, "target", nil, "Output keys to compute (repeatable)")
	cmd.Flags().BoolVar(&noOptimize, "no-optimize", false, "Execute the graph as-is, without rewrite passes")

	return cmd
}
