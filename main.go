package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/cbsinteractive/clip-trimmer/config"
)

var (
	cfg     *config.Config
	cmdRoot = &cobra.Command{
		Use:   "clip-trimmer",
		Short: "Cut time ranges out of video clips with ffmpeg",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) (err error) {
			cfg, err = config.LoadConfig()
			if err != nil {
				return err
			}
			if locale != "" {
				cfg.Locale = locale
			}
			return nil
		},
	}
	locale string
)

func init() {
	cmdRoot.PersistentFlags().StringVar(&locale, "locale", "", "message language (en, zh); overrides TRIM_LOCALE")
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := cmdRoot.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
