package cli

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/headcount/pkg/cli/config"
	"github.com/urfave/cli/v3"
)

func cmdDepartments() *cli.Command {
	var dbCfg config.Database

	return &cli.Command{
		Name:  "departments",
		Usage: "List departments in the data store",
		Flags: dbCfg.Flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			repo, err := dbCfg.Configure(ctx)
			if err != nil {
				return err
			}
			defer repo.Close()

			departments, err := repo.ListDepartments(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to enumerate departments")
			}

			w := tabwriter.NewWriter(c.Root().Writer, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME")
			for _, d := range departments {
				fmt.Fprintf(w, "%s\t%s\n", d.ID, d.Name)
			}
			return w.Flush()
		},
	}
}
