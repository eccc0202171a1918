package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/danmuck/sansio/internal/conformance"
	"github.com/danmuck/sansio/internal/logging"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	configPath := flag.String("config", "", "path to vectorctl TOML config")
	vectors := flag.String("vectors", "", "vector directory (overrides config)")
	flag.Parse()

	logging.ConfigureRuntime()

	cfg := defaultRunConfig()
	if *configPath != "" {
		loaded, err := loadRunConfig(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "vectorctl: %v\n", err)
			os.Exit(2)
		}
		cfg = loaded
		if !filepath.IsAbs(cfg.Vectors) {
			cfg.Vectors = filepath.Join(filepath.Dir(*configPath), cfg.Vectors)
		}
	}
	if *vectors != "" {
		cfg.Vectors = *vectors
	}

	zerolog.SetGlobalLevel(cfg.LogLevel)
	failed, err := run(cfg, log.Logger.Level(cfg.LogLevel), os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "vectorctl: %v\n", err)
		os.Exit(2)
	}
	if failed > 0 {
		os.Exit(1)
	}
}

// run checks every vector directly and through both adapters, writing one
// line per vector to out. It returns how many vectors failed.
func run(cfg runConfig, logger zerolog.Logger, out io.Writer) (int, error) {
	scripts, err := conformance.LoadDir(cfg.Vectors)
	if err != nil {
		return 0, err
	}
	if len(scripts) == 0 {
		return 0, fmt.Errorf("no vectors in %s", cfg.Vectors)
	}

	failed := 0
	for _, s := range scripts {
		name := s.Fixture
		if strings.TrimSpace(name) == "" {
			name = cfg.Fixture
		}
		factory, ok := conformance.Fixture(name)
		if !ok {
			return failed, fmt.Errorf("%s: unknown fixture %q", s.Name, name)
		}

		rep, err := conformance.CheckAdapters(factory, s, cfg.Epoch, logger)
		if err == nil {
			err = conformance.Verify(s, rep.Direct)
		}
		if err != nil {
			failed++
			fmt.Fprintf(out, "FAIL %s [%s]\n%s\n", s.Name, name, indent(err.Error()))
			logger.Warn().Str("vector", s.Name).Str("fixture", name).Msg("vector failed")
			if cfg.FailFast {
				break
			}
			continue
		}
		fmt.Fprintf(out, "ok   %s [%s] %d steps\n", s.Name, name, len(s.Steps))
	}
	logger.Info().Int("vectors", len(scripts)).Int("failed", failed).Msg("vectorctl done")
	return failed, nil
}

func indent(msg string) string {
	lines := strings.Split(strings.TrimSpace(msg), "\n")
	for i, line := range lines {
		lines[i] = "    " + line
	}
	return strings.Join(lines, "\n")
}
