// Package annotate implements the four write pipelines (live, backfill,
// squash synthesis, amend migration) and the staging area that feeds
// transient author notes into the next live write (spec.md §4.5).
package annotate

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/codenerd/chronicle/internal/chronicleerr"
)

const stagedNotesFile = "chronicle/staged-notes.json"

// StagedNote is one transient author note awaiting the next live write. ID
// is a random token generated by Append that identifies a note independent
// of its position in the log; no operation in this package looks a note up
// or removes it by ID.
type StagedNote struct {
	ID        string `json:"id"`
	Timestamp string `json:"timestamp"`
	Text      string `json:"text"`
}

// Staging is the append-only per-repo scratch of StagedNotes, rooted at a
// git metadata directory (".git" or a worktree's gitdir file target).
type Staging struct {
	gitDir string
}

func NewStaging(gitDir string) *Staging {
	return &Staging{gitDir: gitDir}
}

func (s *Staging) path() string {
	return filepath.Join(s.gitDir, stagedNotesFile)
}

// Read returns all staged notes, or an empty slice if none exist.
func (s *Staging) Read() ([]StagedNote, error) {
	content, err := os.ReadFile(s.path())
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, chronicleerr.IoErr("reading staged notes", err)
	}
	if strings.TrimSpace(string(content)) == "" {
		return nil, nil
	}

	var notes []StagedNote
	if err := json.Unmarshal(content, &notes); err != nil {
		return nil, chronicleerr.JsonErr("parsing staged notes", err)
	}
	return notes, nil
}

// Append adds one note to the staging log, creating the chronicle
// directory and file as needed.
func (s *Staging) Append(text string) error {
	path := s.path()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return chronicleerr.IoErr("creating chronicle directory", err)
	}

	notes, err := s.Read()
	if err != nil {
		return err
	}
	notes = append(notes, StagedNote{
		ID:        uuid.NewString(),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Text:      text,
	})

	data, err := json.MarshalIndent(notes, "", "  ")
	if err != nil {
		return chronicleerr.JsonErr("serializing staged notes", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return chronicleerr.IoErr("writing staged notes", err)
	}
	return nil
}

// Clear removes the staging file. Missing file is not an error.
func (s *Staging) Clear() error {
	err := os.Remove(s.path())
	if err != nil && !os.IsNotExist(err) {
		return chronicleerr.IoErr("clearing staged notes", err)
	}
	return nil
}

// Drain reads and clears the staging log in one step — the operation Live
// write uses to fold pending notes into provenance.
func (s *Staging) Drain() ([]StagedNote, error) {
	notes, err := s.Read()
	if err != nil {
		return nil, err
	}
	if len(notes) == 0 {
		return nil, nil
	}
	if err := s.Clear(); err != nil {
		return nil, err
	}
	return notes, nil
}

// FormatForProvenance renders staged notes as the text appended to
// provenance.notes: one "[timestamp] text" line per note.
func FormatForProvenance(notes []StagedNote) string {
	lines := make([]string, len(notes))
	for i, n := range notes {
		lines[i] = "[" + n.Timestamp + "] " + n.Text
	}
	return strings.Join(lines, "\n")
}
