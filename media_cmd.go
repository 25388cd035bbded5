package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cbsinteractive/clip-trimmer/media"
	"github.com/cbsinteractive/clip-trimmer/timecodec"
)

var (
	cutNotes string

	cmdProbe = &cobra.Command{
		Use:          "probe FILE",
		Short:        "Print the media properties of a clip",
		SilenceUsage: true,
		Args:         cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			info, err := localMedia().Probe(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(info)
		},
	}

	cmdCut = &cobra.Command{
		Use:          "cut FILE START END",
		Short:        "Copy START to END of a clip into a new versioned file",
		Long:         "START and END are given as SS, MM:SS or HH:MM:SS. The clip is stream copied, not re-encoded.",
		SilenceUsage: true,
		Args:         cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			codec := timecodec.New(cfg.Locale)
			text := codec.Text()
			start, err := timecodec.Parse(args[1])
			if err != nil {
				return errors.New(text.BadStart)
			}
			end, err := timecodec.Parse(args[2])
			if err != nil {
				return errors.New(text.BadEnd)
			}
			res, err := localMedia().Cut(cmd.Context(), args[0], start, end, cutNotes)
			if err != nil {
				return errors.New(codec.Message(err))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%.2f GB\n",
				res.Output, codec.Describe(res.Range[0], res.Range[1]), media.BytesToGB(uint64(res.Size)))
			return nil
		},
	}

	cmdCheck = &cobra.Command{
		Use:          "check",
		Short:        "Verify that ffmpeg and ffprobe can be run",
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := localMedia().Check(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "ok")
			return nil
		},
	}
)

func localMedia() *media.Client {
	logger, err := cfg.Log.Logger()
	if err != nil {
		return media.NewClient(cfg.Media, nil, nil)
	}
	return media.NewClient(cfg.Media, nil, logger)
}

func init() {
	cmdCut.Flags().StringVar(&cutNotes, "notes", "", "appended to the output file name")
	cmdRoot.AddCommand(cmdProbe, cmdCut, cmdCheck)
}
