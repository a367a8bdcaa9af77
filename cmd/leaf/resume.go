package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	cli "github.com/urfave/cli/v3"

	"leaf/state"
)

var resumeCmd = &cli.Command{
	Name:  "resume",
	Usage: "list books with saved reading progress",
	Action: func(ctx context.Context, _ *cli.Command) error {
		env := state.EnvFromContext(ctx)

		recs, err := env.Store.List()
		if err != nil {
			return fmt.Errorf("unable to list saved progress: %w", err)
		}
		if len(recs) == 0 {
			fmt.Println("no saved reading progress")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
		fmt.Fprintln(w, "title\tchapter\tpage\tlast read\tbook id")
		for _, rec := range recs {
			title := rec.Title
			if title == "" {
				title = "(untitled)"
			}
			fmt.Fprintf(w, "%s\t%d\t%d\t%s\t%s\n",
				title, rec.Chapter+1, rec.Page+1,
				time.Unix(rec.Timestamp, 0).Format("2006-01-02 15:04"), rec.BookID)
		}
		return w.Flush()
	},
}
