package main

import (
	"context"
	"fmt"

	cli "github.com/urfave/cli/v3"

	"leaf/content"
	"leaf/state"
	"leaf/ui"
)

var readCmd = &cli.Command{
	Name:      "read",
	Usage:     "open a book in the terminal reader",
	ArgsUsage: "BOOK",
	Flags: []cli.Flag{
		&cli.StringFlag{Name: "at", Usage: "open at a shareable `LINK` (leaf://...)"},
	},
	Action: func(ctx context.Context, cmd *cli.Command) error {
		if cmd.NArg() != 1 {
			return fmt.Errorf("expected exactly one book argument, got %d", cmd.NArg())
		}
		env := state.EnvFromContext(ctx)

		book, err := content.Open(ctx, cmd.Args().First(), env.Log)
		if err != nil {
			return fmt.Errorf("unable to open book: %w", err)
		}
		return ui.Run(ctx, env.Cfg, book, env.Store, cmd.String("at"), env.Log)
	},
}
