package contracts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/samber/lo"
	"github.com/trebuchet-org/marketplace-deploy/internal/domain"
	"github.com/trebuchet-org/marketplace-deploy/internal/domain/config"
	"github.com/trebuchet-org/marketplace-deploy/internal/domain/models"
	"github.com/trebuchet-org/marketplace-deploy/internal/usecase"
)

// Repository indexes Foundry artifacts under the configured out directory.
// The index is built on first lookup.
type Repository struct {
	outDir      string
	projectRoot string
	log         *slog.Logger

	mu        sync.RWMutex
	indexed   bool
	contracts map[string]*models.Contract   // key: "path:contractName"
	byName    map[string][]*models.Contract // key: contract name
}

// NewRepository creates a new artifact repository
func NewRepository(cfg *config.RuntimeConfig, log *slog.Logger) *Repository {
	return &Repository{
		outDir:      cfg.OutDir,
		projectRoot: cfg.ProjectRoot,
		log:         log.With("component", "contracts"),
	}
}

// GetContract retrieves a contract by bare name or by path:name
func (r *Repository) GetContract(ctx context.Context, key string) (*models.Contract, error) {
	if err := r.ensureIndexed(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	if strings.Contains(key, ":") {
		if contract, ok := r.contracts[key]; ok {
			return contract, nil
		}
		return nil, fmt.Errorf("%w: %s", domain.ErrContractNotFound, key)
	}

	matches := r.byName[key]
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("%w: %s (looked in %s)", domain.ErrContractNotFound, key, r.outDir)
	case 1:
		return matches[0], nil
	default:
		return nil, domain.AmbiguousContractErr{
			Name:    key,
			Sources: lo.Map(matches, func(c *models.Contract, _ int) string { return c.Path }),
		}
	}
}

func (r *Repository) ensureIndexed() error {
	r.mu.RLock()
	indexed := r.indexed
	r.mu.RUnlock()
	if indexed {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.indexed {
		return nil
	}
	if err := r.index(); err != nil {
		return err
	}
	r.indexed = true
	return nil
}

// index walks the out directory. Callers hold the write lock.
func (r *Repository) index() error {
	r.contracts = make(map[string]*models.Contract)
	r.byName = make(map[string][]*models.Contract)

	if info, err := os.Stat(r.outDir); err != nil || !info.IsDir() {
		return fmt.Errorf("artifact directory %s not found, run forge build first", r.outDir)
	}

	err := filepath.WalkDir(r.outDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if d.Name() == "build-info" {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) != ".json" {
			return nil
		}
		return r.processArtifact(path)
	})
	if err != nil {
		return fmt.Errorf("failed to index artifacts: %w", err)
	}

	for name := range r.byName {
		sort.Slice(r.byName[name], func(i, j int) bool {
			return r.byName[name][i].Path < r.byName[name][j].Path
		})
	}

	r.log.Debug("indexed artifacts", "dir", r.outDir, "contracts", len(r.contracts))
	return nil
}

// processArtifact indexes a single artifact file. Files that do not parse as
// deployable artifacts are skipped.
func (r *Repository) processArtifact(artifactPath string) error {
	data, err := os.ReadFile(artifactPath)
	if err != nil {
		return err
	}

	var artifact models.Artifact
	if err := json.Unmarshal(data, &artifact); err != nil {
		var syntaxErr *json.SyntaxError
		if errors.As(err, &syntaxErr) {
			r.log.Debug("skipping unreadable artifact", "path", artifactPath, "error", err)
		}
		return nil
	}

	var contractName, sourceName string
	for source, contract := range artifact.Metadata.Settings.CompilationTarget {
		sourceName = source
		contractName = contract
		break // There should only be one entry
	}
	if contractName == "" || sourceName == "" {
		return nil
	}

	relArtifactPath, err := filepath.Rel(r.projectRoot, artifactPath)
	if err != nil {
		relArtifactPath = artifactPath
	}

	contract := &models.Contract{
		Name:         contractName,
		Path:         sourceName,
		ArtifactPath: relArtifactPath,
		Artifact:     &artifact,
	}
	if !contract.HasBytecode() {
		return nil
	}

	if _, exists := r.contracts[contract.FullyQualifiedName()]; exists {
		r.log.Debug("duplicate artifact", "contract", contract.FullyQualifiedName(), "path", relArtifactPath)
		return nil
	}
	r.contracts[contract.FullyQualifiedName()] = contract
	r.byName[contract.Name] = append(r.byName[contract.Name], contract)
	return nil
}

var _ usecase.ContractRepository = (*Repository)(nil)
