package query

import (
	"github.com/codenerd/chronicle/internal/schema"
	"github.com/codenerd/chronicle/internal/vcs"
)

// FollowUpEntry is one recent commit's open follow-up note.
type FollowUpEntry struct {
	Commit   string
	FollowUp string
}

// LookupOutput is the composite "everything relevant to this file" view
// (spec.md §4.6.7).
type LookupOutput struct {
	File          string
	Contracts     []ContractEntry
	Dependencies  []DependencyEntry
	Decisions     []DecisionEntry
	RecentHistory []TimelineEntry
	OpenFollowUps []FollowUpEntry
	Staleness     []StalenessInfo
	Knowledge     *schema.FilteredKnowledge
}

const lookupFollowUpScanCount = 10
const lookupHistoryLimit = 3

// Lookup assembles contracts, decisions, the three most recent history
// entries, open follow-ups from the ten newest file-touching commits,
// staleness for each of those recent history entries, and knowledge scoped
// to the file, into one struct.
func Lookup(backend vcs.Backend, file, anchor string) (LookupOutput, error) {
	contractsOut, err := Contracts(backend, ContractsQuery{File: file, Anchor: anchor})
	if err != nil {
		return LookupOutput{}, err
	}

	decisionsOut, err := Decisions(backend, DecisionsQuery{File: file})
	if err != nil {
		return LookupOutput{}, err
	}

	historyOut, err := History(backend, HistoryQuery{File: file, Anchor: anchor, Limit: lookupHistoryLimit})
	if err != nil {
		return LookupOutput{}, err
	}

	followUps, err := collectFollowUps(backend, file)
	if err != nil {
		return LookupOutput{}, err
	}

	var staleInfos []StalenessInfo
	for _, entry := range historyOut.Timeline {
		info, ok, err := Staleness(backend, file, entry.Commit)
		if err != nil {
			return LookupOutput{}, err
		}
		if ok {
			staleInfos = append(staleInfos, info)
		}
	}

	var knowledgeView *schema.FilteredKnowledge
	if store, err := ReadKnowledgeStore(backend); err == nil {
		filtered := FilterKnowledgeByScope(store, file)
		if !filtered.IsEmpty() {
			knowledgeView = &filtered
		}
	}

	return LookupOutput{
		File:          file,
		Contracts:     contractsOut.Contracts,
		Dependencies:  contractsOut.Dependencies,
		Decisions:     decisionsOut.Decisions,
		RecentHistory: historyOut.Timeline,
		OpenFollowUps: followUps,
		Staleness:     staleInfos,
		Knowledge:     knowledgeView,
	}, nil
}

func collectFollowUps(backend vcs.Backend, file string) ([]FollowUpEntry, error) {
	shas, err := backend.LogForFile(file)
	if err != nil {
		return nil, err
	}
	if len(shas) > lookupFollowUpScanCount {
		shas = shas[:lookupFollowUpScanCount]
	}

	var followUps []FollowUpEntry
	for _, sha := range shas {
		ann, ok := readAnnotation(backend, sha)
		if !ok {
			continue
		}
		if ann.Narrative.FollowUp != nil {
			followUps = append(followUps, FollowUpEntry{Commit: sha, FollowUp: *ann.Narrative.FollowUp})
		}
	}
	return followUps, nil
}
