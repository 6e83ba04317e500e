package vcs

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/codenerd/chronicle/internal/chronicleerr"
)

// CliOps implements Backend by shelling out to the `git` CLI.
type CliOps struct {
	RepoDir  string
	NotesRef string
}

// NewCliOps constructs a CliOps rooted at repoDir, using the default
// chronicle notes ref. Use WithNotesRef to override.
func NewCliOps(repoDir string) *CliOps {
	return &CliOps{RepoDir: repoDir, NotesRef: "refs/notes/chronicle"}
}

// WithNotesRef returns a copy of c using the given notes ref.
func (c *CliOps) WithNotesRef(ref string) *CliOps {
	cp := *c
	cp.NotesRef = ref
	return &cp
}

func (c *CliOps) runGit(args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = c.RepoDir
	out, err := cmd.Output()
	if err != nil {
		stderr := ""
		if ee, ok := err.(*exec.ExitError); ok {
			stderr = strings.TrimSpace(string(ee.Stderr))
		} else {
			stderr = err.Error()
		}
		return "", chronicleerr.VcsCommandFailedErr(stderr)
	}
	return string(out), nil
}

// runGitRaw runs git without treating a non-zero exit as an error — used
// for "not found" style git commands (notes show, config --get).
func (c *CliOps) runGitRaw(args ...string) (success bool, stdout string, stderr string) {
	cmd := exec.Command("git", args...)
	cmd.Dir = c.RepoDir
	var outBuf, errBuf strings.Builder
	cmd.Stdout = &outBuf
	cmd.Stderr = &errBuf
	err := cmd.Run()
	return err == nil, outBuf.String(), errBuf.String()
}

func (c *CliOps) Diff(commit string) ([]FileDiff, error) {
	info, err := c.CommitInfo(commit)
	if err != nil {
		return nil, err
	}

	var out string
	if len(info.ParentSHAs) == 0 {
		out, err = c.runGit("diff-tree", "--root", "-p", "--no-color", "-M", commit)
	} else {
		out, err = c.runGit("diff-tree", "-p", "--no-color", "-M", commit)
	}
	if err != nil {
		return nil, err
	}
	return ParseDiff(out)
}

func (c *CliOps) NoteRead(commit string) (string, bool, error) {
	ok, stdout, _ := c.runGitRaw("notes", "--ref", c.NotesRef, "show", commit)
	if !ok {
		return "", false, nil
	}
	return stdout, true, nil
}

// NoteWrite writes content through a temp file and an atomic `notes add -f`,
// matching the reference implementation's avoidance of shell-escaping a
// JSON blob directly on the command line.
func (c *CliOps) NoteWrite(commit, content string) error {
	tmpDir := filepath.Join(c.RepoDir, ".git", "chronicle")
	if err := os.MkdirAll(tmpDir, 0o755); err != nil {
		return chronicleerr.VcsCommandFailedErr("create temp dir: " + err.Error())
	}

	tmpPath := filepath.Join(tmpDir, "note-tmp.json")
	if err := os.WriteFile(tmpPath, []byte(content), 0o644); err != nil {
		return chronicleerr.VcsCommandFailedErr("write temp file: " + err.Error())
	}
	defer os.Remove(tmpPath)

	_, err := c.runGit("notes", "--ref", c.NotesRef, "add", "-f", "-F", tmpPath, commit)
	return err
}

func (c *CliOps) NoteExists(commit string) (bool, error) {
	ok, _, _ := c.runGitRaw("notes", "--ref", c.NotesRef, "show", commit)
	return ok, nil
}

func (c *CliOps) FileAtCommit(path, commit string) (string, error) {
	object := commit + ":" + path
	ok, stdout, stderr := c.runGitRaw("show", object)
	if ok {
		return stdout, nil
	}
	if strings.Contains(stderr, "does not exist") || strings.Contains(stderr, "fatal: path") {
		return "", chronicleerr.VcsFileNotFoundErr(path, commit)
	}
	return "", chronicleerr.VcsCommandFailedErr(strings.TrimSpace(stderr))
}

func (c *CliOps) CommitInfo(commit string) (CommitInfo, error) {
	ok, stdout, stderr := c.runGitRaw("log", "-1", "--format=%H%n%s%n%an%n%ae%n%aI%n%P", commit)
	if !ok {
		if strings.Contains(stderr, "unknown revision") || strings.Contains(stderr, "bad object") {
			return CommitInfo{}, chronicleerr.VcsCommitNotFoundErr(commit)
		}
		return CommitInfo{}, chronicleerr.VcsCommandFailedErr(strings.TrimSpace(stderr))
	}

	lines := strings.Split(stdout, "\n")
	if len(lines) < 5 {
		return CommitInfo{}, chronicleerr.VcsCommandFailedErr("unexpected git log output for " + commit)
	}

	var parents []string
	if len(lines) > 5 && lines[5] != "" {
		parents = strings.Split(lines[5], " ")
	}

	return CommitInfo{
		SHA:         lines[0],
		Message:     lines[1],
		AuthorName:  lines[2],
		AuthorEmail: lines[3],
		Timestamp:   lines[4],
		ParentSHAs:  parents,
	}, nil
}

func (c *CliOps) ResolveRef(refspec string) (string, error) {
	out, err := c.runGit("rev-parse", refspec)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

func (c *CliOps) ConfigGet(key string) (string, bool, error) {
	ok, stdout, _ := c.runGitRaw("config", "--get", key)
	if !ok {
		return "", false, nil
	}
	val := strings.TrimSpace(stdout)
	if val == "" {
		return "", false, nil
	}
	return val, true, nil
}

func (c *CliOps) ConfigSet(key, value string) error {
	_, err := c.runGit("config", key, value)
	return err
}

func (c *CliOps) LogForFile(path string) ([]string, error) {
	out, err := c.runGit("log", "--follow", "--format=%H", "--", path)
	if err != nil {
		return nil, err
	}
	var shas []string
	for _, l := range strings.Split(out, "\n") {
		if l != "" {
			shas = append(shas, l)
		}
	}
	return shas, nil
}

// ListAnnotatedCommits combines `git notes list` (the set of commits
// carrying a note under NotesRef) with `git log` (newest-first ordering on
// the current history), since `git notes list` on its own has no stable
// order. Not in the reference implementation's CliOps verbatim — designed
// to satisfy the same newest-first contract the rest of the backend
// provides (spec.md §5 Ordering guarantees).
func (c *CliOps) ListAnnotatedCommits(limit int) ([]string, error) {
	notesOut, err := c.runGit("notes", "--ref", c.NotesRef, "list")
	if err != nil {
		// No notes ref yet: an empty corpus, not a failure.
		return nil, nil
	}

	annotated := make(map[string]bool)
	for _, line := range strings.Split(notesOut, "\n") {
		fields := strings.Fields(line)
		if len(fields) == 2 {
			annotated[fields[1]] = true
		}
	}
	if len(annotated) == 0 {
		return nil, nil
	}

	logOut, err := c.runGit("log", "--format=%H")
	if err != nil {
		return nil, err
	}

	var result []string
	for _, sha := range strings.Split(logOut, "\n") {
		if sha == "" || !annotated[sha] {
			continue
		}
		result = append(result, sha)
		if limit > 0 && len(result) >= limit {
			break
		}
	}
	return result, nil
}
