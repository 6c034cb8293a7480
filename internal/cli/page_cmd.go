package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/teletext/internal/domain"
	"github.com/alexanderramin/teletext/internal/fetch"
)

func newPageCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "page <number>",
		Short: "Render a single page to stdout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("page number %q is not a number", args[0])
			}
			n := domain.PageNumber(raw)
			if !domain.ValidPage(n) {
				n = domain.PageNotFound
			}

			p, ok := app.Registry.Resolve(n)
			if !ok {
				return fmt.Errorf("no renderer registered for page %d", n)
			}

			content, err := p.Render(cmd.Context())
			if err != nil {
				var fe *fetch.Error
				if errors.As(err, &fe) {
					msg := fe.User()
					fmt.Fprintf(cmd.OutOrStdout(), "%s\n%s\n%s\n", msg.Title, msg.Message, msg.Action)
					return nil
				}
				return fmt.Errorf("render page %d: %w", p.Number(), err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "P%d %s\n\n%s\n", p.Number(), p.Title(), content)
			return nil
		},
	}
	return cmd
}
