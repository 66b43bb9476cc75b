package cli

import (
	"github.com/spf13/cobra"
	"github.com/trebuchet-org/marketplace-deploy/internal/cli/render"
)

// NewAccountsCmd creates the accounts command
func NewAccountsCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "accounts",
		Short:       "List the configured signing accounts",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{offlineAnnotation: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			signers, err := app.ListAccounts.Run(cmd.Context())
			if err != nil {
				return err
			}
			return render.NewAccountsRenderer(cmd.OutOrStdout()).Render(signers)
		},
	}
}
