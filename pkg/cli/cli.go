package cli

import (
	"context"

	"github.com/callcoach/callcoach/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

type Error struct {
	Code    int
	Message string
}

func Run(ctx context.Context, argv []string) *Error {
	cmd := &cli.Command{
		Name:  "callcoach",
		Usage: "Sales call coaching analyzer",
		Commands: []*cli.Command{
			analyzeCommand(),
			transcriptCommand(),
		},
	}

	if err := cmd.Run(ctx, argv); err != nil {
		logging.Default().Error("command failed", "error", err)
		return &Error{
			Code:    1,
			Message: err.Error(),
		}
	}

	return nil
}
