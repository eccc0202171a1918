package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/danmuck/sansio/internal/conformance"
	"github.com/danmuck/sansio/internal/logging"
	"github.com/rs/zerolog"
)

type fileConfig struct {
	Fixture   string `toml:"fixture"`
	Vectors   string `toml:"vectors"`
	EpochUnix int64  `toml:"epoch_unix"`
	LogLevel  string `toml:"log_level"`
	FailFast  bool   `toml:"fail_fast"`
}

type runConfig struct {
	// Fixture is used for vectors that do not name their own.
	Fixture  string
	Vectors  string
	Epoch    time.Time
	LogLevel zerolog.Level
	FailFast bool
}

func defaultRunConfig() runConfig {
	return runConfig{
		Fixture:  "splitter",
		Vectors:  "testdata",
		Epoch:    time.Unix(1700000000, 0),
		LogLevel: zerolog.InfoLevel,
	}
}

func loadRunConfig(path string) (runConfig, error) {
	cfg := defaultRunConfig()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return runConfig{}, fmt.Errorf("load vectorctl config: %w", err)
	}

	if meta.IsDefined("fixture") {
		name := strings.TrimSpace(raw.Fixture)
		if _, ok := conformance.Fixture(name); !ok {
			return runConfig{}, fmt.Errorf("unknown fixture %q (have %s)", name, strings.Join(conformance.FixtureNames(), ", "))
		}
		cfg.Fixture = name
	}

	if meta.IsDefined("vectors") {
		dir := strings.TrimSpace(raw.Vectors)
		if dir == "" {
			return runConfig{}, fmt.Errorf("vectors must not be empty")
		}
		cfg.Vectors = dir
	}

	if meta.IsDefined("epoch_unix") {
		cfg.Epoch = time.Unix(raw.EpochUnix, 0)
	}

	if meta.IsDefined("log_level") {
		lvl, ok := logging.ParseLevel(raw.LogLevel)
		if !ok {
			return runConfig{}, fmt.Errorf("parse log_level: %q", raw.LogLevel)
		}
		cfg.LogLevel = lvl
	}

	if meta.IsDefined("fail_fast") {
		cfg.FailFast = raw.FailFast
	}

	return cfg, nil
}
