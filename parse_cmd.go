package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cbsinteractive/clip-trimmer/timecodec"
)

var (
	parseLenient bool

	cmdParse = &cobra.Command{
		Use:          "parse TIME...",
		Short:        "Convert time strings to seconds and back",
		SilenceUsage: true,
		Args:         cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parse := timecodec.Parse
			if parseLenient {
				parse = timecodec.ParseLenient
			}
			table := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			for _, a := range args {
				sec, err := parse(a)
				if err != nil {
					fmt.Fprintf(table, "%s\t%v\n", a, err)
					continue
				}
				fmt.Fprintf(table, "%s\t%g\t%s\t%s\n", a, sec, timecodec.FormatInput(sec), timecodec.FormatDisplay(sec, false))
			}
			return table.Flush()
		},
	}

	cmdValidate = &cobra.Command{
		Use:          "validate START END DURATION",
		Short:        "Check a trim range against a clip duration",
		SilenceUsage: true,
		Args:         cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			codec := timecodec.New(cfg.Locale)
			text := codec.Text()
			start, err := timecodec.Parse(args[0])
			if err != nil {
				return fmt.Errorf("%s: %v", text.BadStart, err)
			}
			end, err := timecodec.Parse(args[1])
			if err != nil {
				return fmt.Errorf("%s: %v", text.BadEnd, err)
			}
			duration, err := timecodec.Parse(args[2])
			if err != nil {
				return err
			}
			if v := timecodec.ValidateRange(start, end, duration); !v.Valid {
				return fmt.Errorf("%s", codec.Message(v.Err))
			}
			fmt.Fprintln(cmd.OutOrStdout(), codec.Describe(start, end))
			return nil
		},
	}
)

func init() {
	cmdParse.Flags().BoolVar(&parseLenient, "lenient", false, "accept a numeric prefix in each field, e.g. 12abc")
	cmdRoot.AddCommand(cmdParse, cmdValidate)
}
