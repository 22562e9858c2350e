package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/shaiso/Optimata/internal/optimize"
)

// Config — настройки CLI, загружаемые из YAML-файла.
//
// Все поля необязательны; нулевое значение даёт пайплайн
// по умолчанию без подстановки функций и без CSE.
type Config struct {
	// FastFunctions — allow-list функций для inline_functions.
	FastFunctions []string `yaml:"fastFunctions"`

	// KeepKeys — дополнительные барьеры слияния.
	KeepKeys []string `yaml:"keepKeys"`

	// WithCSE включает проход объединения общих подвыражений.
	WithCSE bool `yaml:"withCSE"`

	// SkipPasses — имена отключаемых проходов:
	// cull, inline, inline_functions, fuse.
	SkipPasses []string `yaml:"skipPasses"`

	// Workers — число воркеров параллельного executor'а.
	// 0 — последовательное выполнение.
	Workers int `yaml:"workers"`
}

// LoadConfig загружает конфигурацию из YAML-файла с env-переопределениями.
//
// Пустой path даёт конфигурацию по умолчанию. Переменные окружения:
//   - OPTIMATA_FAST_FUNCTIONS — список имён через запятую
//   - OPTIMATA_WORKERS        — число воркеров
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}

		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if fast := os.Getenv("OPTIMATA_FAST_FUNCTIONS"); fast != "" {
		cfg.FastFunctions = splitList(fast)
	}
	if workers := os.Getenv("OPTIMATA_WORKERS"); workers != "" {
		n, err := strconv.Atoi(workers)
		if err != nil {
			return nil, fmt.Errorf("parse OPTIMATA_WORKERS: %w", err)
		}
		cfg.Workers = n
	}

	for _, pass := range cfg.SkipPasses {
		switch pass {
		case "cull", "inline", "inline_functions", "fuse":
		default:
			return nil, fmt.Errorf("unknown pass in skipPasses: %s", pass)
		}
	}

	return cfg, nil
}

// Options переводит конфигурацию в optimize.Options.
func (c *Config) Options() optimize.Options {
	opts := optimize.Options{
		FastFunctions: c.FastFunctions,
		WithCSE:       c.WithCSE,
	}

	for _, k := range c.KeepKeys {
		opts.KeepKeys = append(opts.KeepKeys, keyOf(k))
	}

	for _, pass := range c.SkipPasses {
		switch pass {
		case "cull":
			opts.Cull = optimize.SkipCull
		case "inline":
			opts.Inline = optimize.SkipInline
		case "inline_functions":
			opts.InlineFunctions = optimize.SkipInlineFunctions
		case "fuse":
			opts.Fuse = optimize.SkipFuse
		}
	}

	return opts
}

// splitList разбивает список через запятую, отбрасывая пустые элементы.
func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
