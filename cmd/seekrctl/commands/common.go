package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/kailas-cloud/seekr/internal/app"
	"github.com/kailas-cloud/seekr/internal/config"
	logpkg "github.com/kailas-cloud/seekr/internal/logger"
)

// session is the per-invocation application context.
type session struct {
	app    *app.App
	cfg    config.Config
	logger *zap.Logger
	out    io.Writer
}

func openSession(ctx context.Context, cmd *cli.Command) (*session, error) {
	if err := config.LoadDotEnv(cmd.String("env-file")); err != nil {
		return nil, err
	}

	env := cmd.String("env")
	var (
		cfg config.Config
		err error
	)
	if path := cmd.String("config"); path != "" {
		cfg, err = config.LoadFile(env, path)
	} else {
		cfg, err = config.Load(env)
	}
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}

	a, err := app.New(ctx, &cfg, logger)
	if err != nil {
		_ = logger.Sync()
		return nil, err
	}

	out := cmd.Root().Writer
	if out == nil {
		out = os.Stdout
	}
	return &session{
		app:    a,
		cfg:    cfg,
		logger: logger,
		out:    out,
	}, nil
}

func (s *session) Close() {
	if err := s.app.Close(); err != nil {
		s.logger.Warn("close failed", zap.Error(err))
	}
	_ = s.logger.Sync()
}

func (s *session) print(v any) error {
	enc := json.NewEncoder(s.out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

func requireArg(cmd *cli.Command, name string) (string, error) {
	if cmd.Args().Len() < 1 || cmd.Args().First() == "" {
		return "", fmt.Errorf("missing <%s> argument", name)
	}
	return cmd.Args().First(), nil
}
