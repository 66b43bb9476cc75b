package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/trebuchet-org/marketplace-deploy/internal/domain/models"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// VerifyRenderer handles rendering of verification results
type VerifyRenderer struct {
	out     io.Writer
	verbose bool
}

// NewVerifyRenderer creates a new verify renderer. Explorer links are only
// printed in verbose mode.
func NewVerifyRenderer(out io.Writer, verbose bool) *VerifyRenderer {
	return &VerifyRenderer{out: out, verbose: verbose}
}

// RenderStart announces a verification attempt
func (r *VerifyRenderer) RenderStart() {
	fmt.Fprintln(r.out, "Verifying contract...")
}

// Render prints the outcome message on its own line. Failures print the
// verifier's message unchanged.
func (r *VerifyRenderer) Render(outcome *models.VerificationOutcome) error {
	if outcome == nil {
		outcome = models.VerificationFailed("")
	}

	switch outcome.Status {
	case models.VerificationStatusVerified:
		color.New(color.FgGreen).Fprintln(r.out, outcome.Message)
	case models.VerificationStatusAlreadyVerified:
		color.New(color.FgYellow).Fprintln(r.out, outcome.Message)
	default:
		color.New(color.FgRed).Fprintln(r.out, outcome.Message)
	}

	if r.verbose && outcome.ExplorerURL != "" {
		color.New(color.Faint).Fprintf(r.out, "  %s: %s\n", statusLabel(outcome.Status), outcome.ExplorerURL)
	}
	return nil
}

// statusLabel turns ALREADY_VERIFIED into "Already Verified"
func statusLabel(status models.VerificationStatus) string {
	words := strings.ReplaceAll(strings.ToLower(string(status)), "_", " ")
	return cases.Title(language.English).String(words)
}
