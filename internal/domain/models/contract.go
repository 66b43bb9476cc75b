package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Contract represents a compiled contract found in the Foundry output directory
type Contract struct {
	Name         string    `json:"name"`
	Path         string    `json:"path"`
	ArtifactPath string    `json:"artifactPath,omitempty"`
	Artifact     *Artifact `json:"artifact,omitempty"`
}

// FullyQualifiedName returns the path:name form accepted by forge
func (c *Contract) FullyQualifiedName() string {
	return fmt.Sprintf("%s:%s", c.Path, c.Name)
}

// CompilerVersion returns the solc version recorded in the artifact metadata, without the commit suffix
func (c *Contract) CompilerVersion() string {
	if c.Artifact == nil {
		return ""
	}
	version := c.Artifact.Metadata.Compiler.Version
	if idx := strings.Index(version, "+"); idx != -1 {
		version = version[:idx]
	}
	return version
}

// HasBytecode reports whether the artifact carries creation bytecode.
// Interfaces and abstract contracts compile to an empty object.
func (c *Contract) HasBytecode() bool {
	if c.Artifact == nil {
		return false
	}
	obj := c.Artifact.Bytecode.Object
	return obj != "" && obj != "0x"
}

// BytecodeObject represents bytecode information in a Foundry artifact
type BytecodeObject struct {
	Object         string         `json:"object"`
	SourceMap      string         `json:"sourceMap"`
	LinkReferences map[string]any `json:"linkReferences"`
}

// Artifact represents a Foundry compilation artifact
type Artifact struct {
	ABI               json.RawMessage   `json:"abi"`
	Bytecode          BytecodeObject    `json:"bytecode"`
	DeployedBytecode  BytecodeObject    `json:"deployedBytecode"`
	MethodIdentifiers map[string]string `json:"methodIdentifiers"`
	RawMetadata       string            `json:"rawMetadata"`
	Metadata          ArtifactMetadata  `json:"metadata"`
}

// ArtifactMetadata represents the metadata section of a Foundry artifact
type ArtifactMetadata struct {
	Compiler struct {
		Version string `json:"version"`
	} `json:"compiler"`
	Language string `json:"language"`
	Settings struct {
		CompilationTarget map[string]string `json:"compilationTarget"`
		EVMVersion        string            `json:"evmVersion"`
		Optimizer         struct {
			Enabled bool `json:"enabled"`
			Runs    int  `json:"runs"`
		} `json:"optimizer"`
	} `json:"settings"`
}
