package main

import (
	"net/http"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/cbsinteractive/clip-trimmer/db"
	"github.com/cbsinteractive/clip-trimmer/media"
	"github.com/cbsinteractive/clip-trimmer/notify"
	"github.com/cbsinteractive/clip-trimmer/service"
)

var cmdServe = &cobra.Command{
	Use:          "serve",
	Short:        "Run the trimming http service",
	SilenceUsage: true,
	Args:         cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, err := cfg.Log.Logger()
		if err != nil {
			return err
		}

		repo := db.NewClient(cfg.Redis)
		defer repo.Close()
		if err := repo.Ping(); err != nil {
			return errors.Wrap(err, "connecting to redis")
		}

		m := media.NewClient(cfg.Media, nil, logger)
		if err := m.Check(cmd.Context()); err != nil {
			logger.WithError(err).Warn("media tools unavailable, cuts will fail")
		}

		srv := service.New(cfg, logger, repo, m)
		srv.Notifier, srv.Reporter = notifiers(logger)

		logger.WithField("addr", cfg.HTTPAddr).Info("listening")
		return http.ListenAndServe(cfg.HTTPAddr, srv)
	},
}

// notifiers logs everything and also sends it to Sentry when a DSN is set
func notifiers(logger *logrus.Logger) (notify.Notifier, notify.Reporter) {
	log := notify.Log{Logger: logger}
	if cfg.Sentry.DSN == "" {
		return log, log
	}
	s, err := notify.NewSentry(cfg.Sentry.DSN, cfg.Sentry.Env)
	if err != nil {
		logger.WithError(err).Error("sentry disabled")
		return log, log
	}
	return notify.Multi{log, s}, notify.Reporters{log, s}
}

func init() {
	cmdRoot.AddCommand(cmdServe)
}
