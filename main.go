package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/abdusubhan/ask-agent/agent"
	"github.com/abdusubhan/ask-agent/logger"
	"github.com/abdusubhan/ask-agent/metrics"
	"github.com/abdusubhan/ask-agent/server"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const shutdownGrace = 10 * time.Second

func main() {
	if err := newRootCmd().Execute(); err != nil {
		logrus.WithError(err).Fatal("ask-agent failed")
	}
}

func newRootCmd() *cobra.Command {
	var configDir string
	cmd := &cobra.Command{
		Use:           "ask-agent",
		Short:         "Serve POST /ask backed by a Gemini agent that knows about Abdu Subhan",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
				logrus.WithError(err).Warn("could not read .env")
			}
			cfg, err := agent.LoadAgentConfig(configDir)
			if err != nil {
				return err
			}
			logger.Init(cfg.Log.Level, cfg.Log.Format)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return run(ctx, cfg, nil)
		},
	}
	cmd.Flags().StringVarP(&configDir, "config", "c", ".", "directory containing agent.yaml")
	return cmd
}

// run wires the agent into the HTTP server and blocks until ctx is done.
// A nil ln listens on cfg.Server.Addr.
func run(ctx context.Context, cfg *agent.AgentConfig, ln net.Listener) error {
	log := logger.New("ask-agent")

	a, err := agent.NewFromConfig(ctx, cfg, log.WithField("component", "agent"))
	if err != nil {
		return fmt.Errorf("build agent: %w", err)
	}
	defer a.Close()

	if err := metrics.Start(ctx, cfg.Metrics.Addr, log.WithField("component", "metrics")); err != nil {
		return fmt.Errorf("start metrics: %w", err)
	}

	srvLog := log.WithField("component", "server")
	h := server.NewHandler(a, server.WithTimeout(cfg.RequestTimeout), server.WithLogger(srvLog))
	srv := server.NewServer(server.SetupRouter(h),
		server.WithAddress(cfg.Server.Addr),
		server.WithServerLogger(srvLog),
	)

	if ln == nil {
		ln, err = net.Listen("tcp", srv.Addr())
		if err != nil {
			return fmt.Errorf("listen %s: %w", srv.Addr(), err)
		}
	}
	log.WithFields(logrus.Fields{
		"provider": a.Provider().Name(),
		"model":    a.Model(),
		"tools":    len(a.ListTools()),
	}).Info("agent ready")
	return srv.Run(ctx, ln, shutdownGrace)
}
