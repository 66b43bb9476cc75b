package render

import (
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/trebuchet-org/marketplace-deploy/internal/domain/models"
)

// AccountsRenderer renders the configured signing identities
type AccountsRenderer struct {
	out io.Writer
}

// NewAccountsRenderer creates a new accounts renderer
func NewAccountsRenderer(out io.Writer) *AccountsRenderer {
	return &AccountsRenderer{out: out}
}

// Render prints one row per signer. The first signer deploys.
func (r *AccountsRenderer) Render(signers []*models.Signer) error {
	if len(signers) == 0 {
		color.New(color.FgYellow).Fprintln(r.out, "No accounts configured. Add [[accounts]] to deploy.toml or set PRIVATE_KEY.")
		return nil
	}

	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.Style().Options.DrawBorder = false
	t.Style().Options.SeparateColumns = false
	t.Style().Options.SeparateHeader = false
	t.Style().Box = table.BoxStyle{
		PaddingRight: "   ",
	}
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight},
	})

	t.AppendHeader(table.Row{"#", "NAME", "ADDRESS", ""})
	for i, signer := range signers {
		role := ""
		if i == 0 {
			role = color.New(color.FgGreen).Sprint("deployer")
		}
		t.AppendRow(table.Row{strconv.Itoa(i), signer.Name, signer.Address, role})
	}

	fmt.Fprintln(r.out, t.Render())
	return nil
}
