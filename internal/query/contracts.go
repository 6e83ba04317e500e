package query

import (
	"sort"

	"github.com/codenerd/chronicle/internal/schema"
	"github.com/codenerd/chronicle/internal/vcs"
)

// ContractsQuery asks "what must not break?" for a file, optionally scoped
// to one anchor within it.
type ContractsQuery struct {
	File   string
	Anchor string
}

// ContractEntry is one surviving Contract marker.
type ContractEntry struct {
	File        string
	Anchor      *schema.AstAnchor
	Description string
	Source      schema.ContractSource
	Commit      string
	Timestamp   string
}

// DependencyEntry is one surviving Dependency marker.
type DependencyEntry struct {
	File         string
	Anchor       *schema.AstAnchor
	TargetFile   string
	TargetAnchor string
	Assumption   string
	Commit       string
	Timestamp    string
}

// ContractsOutput is the result of Contracts.
type ContractsOutput struct {
	Query        ContractsQuery
	Contracts    []ContractEntry
	Dependencies []DependencyEntry
}

type contractKey struct{ file, description string }
type depKey struct{ file, targetFile, targetAnchor string }

// Contracts walks every commit that touched query.File (newest first) and
// collects Contract and Dependency markers whose file matches, keeping the
// newest entry per dedup key (spec.md §4.6.1).
func Contracts(backend vcs.Backend, q ContractsQuery) (ContractsOutput, error) {
	shas, err := backend.LogForFile(q.File)
	if err != nil {
		return ContractsOutput{}, err
	}

	bestContracts := make(map[contractKey]ContractEntry)
	bestDeps := make(map[depKey]DependencyEntry)

	for _, sha := range shas {
		ann, ok := readAnnotation(backend, sha)
		if !ok {
			continue
		}

		for _, m := range ann.Markers {
			if !fileMatches(m.File, q.File) {
				continue
			}
			if q.Anchor != "" && !(m.Anchor != nil && anchorMatches(m.Anchor.Name, q.Anchor)) {
				continue
			}

			switch m.Kind.Type {
			case schema.MarkerContract:
				key := contractKey{file: m.File, description: m.Kind.Description}
				if _, exists := bestContracts[key]; !exists {
					bestContracts[key] = ContractEntry{
						File:        m.File,
						Anchor:      m.Anchor,
						Description: m.Kind.Description,
						Source:      m.Kind.Source,
						Commit:      ann.Commit,
						Timestamp:   ann.Timestamp,
					}
				}
			case schema.MarkerDependency:
				key := depKey{file: m.File, targetFile: m.Kind.TargetFile, targetAnchor: m.Kind.TargetAnchor}
				if _, exists := bestDeps[key]; !exists {
					bestDeps[key] = DependencyEntry{
						File:         m.File,
						Anchor:       m.Anchor,
						TargetFile:   m.Kind.TargetFile,
						TargetAnchor: m.Kind.TargetAnchor,
						Assumption:   m.Kind.Assumption,
						Commit:       ann.Commit,
						Timestamp:    ann.Timestamp,
					}
				}
			}
		}
	}

	contracts := make([]ContractEntry, 0, len(bestContracts))
	for _, c := range bestContracts {
		contracts = append(contracts, c)
	}
	sort.Slice(contracts, func(i, j int) bool {
		if contracts[i].File != contracts[j].File {
			return contracts[i].File < contracts[j].File
		}
		return contracts[i].Description < contracts[j].Description
	})

	deps := make([]DependencyEntry, 0, len(bestDeps))
	for _, d := range bestDeps {
		deps = append(deps, d)
	}
	sort.Slice(deps, func(i, j int) bool {
		if deps[i].File != deps[j].File {
			return deps[i].File < deps[j].File
		}
		if deps[i].TargetFile != deps[j].TargetFile {
			return deps[i].TargetFile < deps[j].TargetFile
		}
		return deps[i].TargetAnchor < deps[j].TargetAnchor
	})

	return ContractsOutput{Query: q, Contracts: contracts, Dependencies: deps}, nil
}
