package cli

import (
	"context"
	"fmt"

	"github.com/callcoach/callcoach/pkg/model"
	"github.com/callcoach/callcoach/pkg/usecase/analyze"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

func transcriptCommand() *cli.Command {
	var cfg config

	flags := gongFlags(&cfg)
	flags = append(flags, loggingFlags(&cfg)...)

	return &cli.Command{
		Name:      "transcript",
		Usage:     "Fetch and print the speaker-labeled transcript of a call",
		ArgsUsage: "<call-id>",
		Flags:     flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			ctx = cfg.setupLogger(ctx)

			if c.Args().Len() != 1 {
				return goerr.New("exactly one call ID is required")
			}
			callID := model.CallID(c.Args().First())

			gongClient, err := cfg.newGong()
			if err != nil {
				return err
			}

			uc := analyze.New(gongClient, nil)
			transcript, err := uc.FetchTranscript(ctx, callID)
			if err != nil {
				return err
			}

			if len(transcript) == 0 {
				fmt.Fprintf(c.Root().Writer, "Call %s has no transcript yet\n", callID)
				return nil
			}

			fmt.Fprintln(c.Root().Writer, transcript.String())
			return nil
		},
	}
}
