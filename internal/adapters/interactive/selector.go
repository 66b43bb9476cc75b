package interactive

import (
	"context"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/manifoldco/promptui"
	"github.com/sahilm/fuzzy"
	"github.com/trebuchet-org/marketplace-deploy/internal/domain/config"
	"github.com/trebuchet-org/marketplace-deploy/internal/usecase"
)

// SelectorAdapter handles interactive contract selection
type SelectorAdapter struct {
	config *config.RuntimeConfig
}

// NewSelectorAdapter creates a new selector adapter
func NewSelectorAdapter(cfg *config.RuntimeConfig) *SelectorAdapter {
	return &SelectorAdapter{config: cfg}
}

// SelectContract asks the user which of several same-named contracts to use
func (s *SelectorAdapter) SelectContract(ctx context.Context, name string, candidates []string) (string, error) {
	if s.config.NonInteractive {
		return "", fmt.Errorf("interactive selection not available in non-interactive mode")
	}

	if len(candidates) == 0 {
		return "", fmt.Errorf("no contracts provided for selection")
	}
	if len(candidates) == 1 {
		return candidates[0], nil
	}

	options := formatContractOptions(candidates)

	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}",
		Active:   "▸ {{ . | cyan }}",
		Inactive: "  {{ . | faint }}",
		Selected: "✓ {{ . | green }}",
		Help:     color.New(color.FgYellow).Sprint("Use arrow keys to navigate, Enter to select"),
	}

	promptSelect := promptui.Select{
		Label:             fmt.Sprintf("Multiple contracts named %s, select one", name),
		Items:             options,
		Templates:         templates,
		Size:              10,
		StartInSearchMode: true,
		Searcher:          createFuzzySearchFunc(candidates),
	}

	index, _, err := promptSelect.Run()
	if err != nil {
		return "", fmt.Errorf("selection cancelled: %w", err)
	}

	return candidates[index], nil
}

// formatContractOptions renders path:Name candidates as "Name (path)"
func formatContractOptions(candidates []string) []string {
	options := make([]string, len(candidates))
	for i, candidate := range candidates {
		path, name, found := strings.Cut(candidate, ":")
		if !found {
			options[i] = candidate
			continue
		}
		contractName := color.New(color.FgWhite, color.Bold).Sprint(name)
		pathStr := color.New(color.FgBlue).Sprint(strings.TrimPrefix(path, "src/"))
		options[i] = fmt.Sprintf("%s (%s)", contractName, pathStr)
	}
	return options
}

// createFuzzySearchFunc creates a fuzzy search function for promptui
func createFuzzySearchFunc(items []string) func(input string, index int) bool {
	return func(input string, index int) bool {
		if input == "" {
			return true
		}

		input = strings.ToLower(input)
		item := strings.ToLower(items[index])

		if strings.Contains(item, input) {
			return true
		}

		return len(fuzzy.Find(input, []string{item})) > 0
	}
}

var _ usecase.ContractSelector = (*SelectorAdapter)(nil)
