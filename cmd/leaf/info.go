package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	cli "github.com/urfave/cli/v3"

	"leaf/content"
	"leaf/paginate"
	"leaf/state"
)

var infoCmd = &cli.Command{
	Name:      "info",
	Usage:     "paginate a book for a given viewport and print the chapter layout",
	ArgsUsage: "BOOK",
	Flags: []cli.Flag{
		&cli.IntFlag{Name: "width", Value: 76, Usage: "content width in columns"},
		&cli.IntFlag{Name: "height", Value: 40, Usage: "page height in rows"},
	},
	Action: func(ctx context.Context, cmd *cli.Command) error {
		if cmd.NArg() != 1 {
			return fmt.Errorf("expected exactly one book argument, got %d", cmd.NArg())
		}
		env := state.EnvFromContext(ctx)

		c, err := content.Open(ctx, cmd.Args().First(), env.Log)
		if err != nil {
			return fmt.Errorf("unable to open book: %w", err)
		}

		pager := paginate.NewPager(paginate.NewTextMeasurer(), cmd.Int("width"), env.Cfg.Reader.WordsPerMinute, env.Cfg.Reader.FillThreshold, env.Log)
		pages := pager.Paginate(c.Blocks, cmd.Int("height"))
		book := paginate.BuildChapters(pages, paginate.BuildOptions{
			PagesPerChapter: env.Cfg.Reader.PagesPerChapter,
			TitleScanPages:  env.Cfg.Reader.TitleScanPages,
			TitleMaxLen:     env.Cfg.Reader.TitleMaxLength,
		})
		if book.PageCount == 0 {
			return fmt.Errorf("pagination produced no pages")
		}

		fmt.Printf("%s\n  id: %s\n  blocks: %d, words: %d, pages: %d, chapters: %d, reading time: %.0f min\n\n",
			c.Title, c.BookID, len(c.Blocks), book.Words, book.PageCount, len(book.Chapters), book.ReadingMinutes)

		w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
		fmt.Fprintln(w, "chapter\ttitle\tpages\twords\tminutes")
		for i, ch := range book.Chapters {
			title := ch.Title
			if ch.IsPartial {
				title += " *"
			}
			fmt.Fprintf(w, "%d\t%s\t%d-%d\t%d\t%.1f\n", i+1, title, ch.StartPage+1, ch.EndPage+1, ch.Words, ch.ReadingMinutes)
		}
		return w.Flush()
	},
}
