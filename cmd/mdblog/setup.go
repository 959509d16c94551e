package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"go.uber.org/automaxprocs/maxprocs"

	mdblog "github.com/alnah/go-mdblog"
	"github.com/alnah/go-mdblog/internal/config"
	"github.com/alnah/go-mdblog/internal/fileutil"
	"github.com/alnah/go-mdblog/internal/hints"
)

// session is what every command needs: merged config, a logger and the
// environment it writes to.
type session struct {
	cfg    *config.Config
	logger zerolog.Logger
	env    *Environment
}

// newSession resolves configuration and builds the logger.
// Config precedence: CLI flags > env vars > config file > defaults.
func newSession(flags *commonFlags, env *Environment) (*session, error) {
	logger := newLogger(env.Stderr, flags.quiet, flags.verbose)
	setMaxProcs(logger)

	getenv, err := envLookup(env)
	if err != nil {
		return nil, err
	}
	warnUnknownEnvVars(env.Stderr, env.Environ())
	envCfg := loadEnvConfig(getenv)

	cfg := config.DefaultConfig()
	configName := flags.config
	if configName == "" {
		configName = envCfg.ConfigPath
	}
	if configName != "" {
		cfg, err = config.LoadConfig(configName)
		if err != nil {
			if errors.Is(err, config.ErrConfigNotFound) {
				return nil, fmt.Errorf("%w%s", err, hints.ForConfigNotFound(configCandidates(configName)))
			}
			return nil, err
		}
		logger.Debug().Str("config", configName).Msg("config loaded")
	}

	applyEnvConfig(envCfg, cfg)
	mergeCommonFlags(flags, cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &session{cfg: cfg, logger: logger, env: env}, nil
}

// mergeCommonFlags applies flags that were set on the command line.
func mergeCommonFlags(flags *commonFlags, cfg *config.Config) {
	if flags.dir != "" {
		cfg.Content.Dir = flags.dir
	}
	if flags.lenient {
		cfg.FrontMatter.Lenient = true
	}
}

// repository opens the content directory with options derived from config.
func (s *session) repository(extra ...mdblog.Option) (*mdblog.Repository, error) {
	cfg := s.cfg
	opts := []mdblog.Option{
		mdblog.WithPattern(cfg.Content.Pattern),
		mdblog.WithWorkers(cfg.Workers),
		mdblog.WithLogger(s.logger),
		mdblog.WithDateFormat(cfg.FrontMatter.DateFormat),
		mdblog.WithHighlighting(cfg.Markdown.HighlightStyle, cfg.Markdown.HighlightClasses, cfg.Markdown.LineNumbers),
	}
	if cfg.FrontMatter.Lenient {
		opts = append(opts, mdblog.WithLenientFrontMatter())
	}
	if cfg.Markdown.HardWraps {
		opts = append(opts, mdblog.WithHardWraps())
	}
	if cfg.Cache.Enabled {
		opts = append(opts, mdblog.WithMetadataCache())
	}
	opts = append(opts, extra...)

	repo, err := mdblog.NewRepository(cfg.Content.Dir, opts...)
	if err != nil {
		if errors.Is(err, mdblog.ErrContentDir) {
			return nil, fmt.Errorf("%w%s", err, hints.ForContentDir(cfg.Content.Dir))
		}
		return nil, err
	}
	return repo, nil
}

// configCandidates lists where a named config would be looked up.
func configCandidates(name string) []string {
	if fileutil.IsFilePath(name) {
		return nil
	}
	paths := []string{name + ".yaml"}
	if dir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(dir, "go-mdblog", name+".yaml"))
	}
	return paths
}

// newLogger returns a console logger on w. Colors are used only on terminals.
func newLogger(w io.Writer, quiet, verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	switch {
	case quiet:
		level = zerolog.ErrorLevel
	case verbose:
		level = zerolog.DebugLevel
	}

	out := zerolog.ConsoleWriter{
		Out:        w,
		NoColor:    !isTerminal(w),
		TimeFormat: time.TimeOnly,
	}
	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// setMaxProcs matches GOMAXPROCS to the container CPU quota.
// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
// in which case Go runtime defaults apply and the program continues safely.
func setMaxProcs(logger zerolog.Logger) {
	_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...any) {
		logger.Debug().Msgf(format, args...)
	}))
}
