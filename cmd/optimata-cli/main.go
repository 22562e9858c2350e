// Optimata CLI — инструмент командной строки для работы с графами задач:
// валидация, просмотр, оптимизация и выполнение.
//
// Использование:
//
//	optimata [--json] [--config FILE] [--metrics-addr ADDR] <command> [flags]
//
// Команды:
//
//	validate  Разбор и валидация графа
//	show      Таблица задач и зависимостей
//	optimize  Прогон пайплайна оптимизации
//	run       Оптимизация и выполнение
package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/shaiso/Optimata/internal/cli"
	"github.com/shaiso/Optimata/internal/telemetry"
)

// version задаётся через ldflags при сборке.
var version = "dev"

func main() {
	logger := telemetry.SetupLogger()

	var configPath string
	var jsonOutput bool
	var metricsAddr string

	rootCmd := &cobra.Command{
		Use:           "optimata",
		Short:         "Optimata CLI — task graph optimization engine",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to YAML config file")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().StringVar(&metricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address (e.g. :9090)")

	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if metricsAddr == "" {
			return
		}
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		go func() {
			logger.Info("metrics listening", "addr", metricsAddr)
			if err := http.ListenAndServe(metricsAddr, mux); err != nil {
				logger.Error("metrics server error", "error", err)
			}
		}()
	}

	outputFn := func() *cli.Output { return cli.NewOutput(jsonOutput) }
	configFn := func() (*cli.Config, error) { return cli.LoadConfig(configPath) }

	rootCmd.AddCommand(
		cli.NewValidateCmd(outputFn),
		cli.NewShowCmd(outputFn),
		cli.NewOptimizeCmd(outputFn, configFn),
		cli.NewRunCmd(outputFn, configFn),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
