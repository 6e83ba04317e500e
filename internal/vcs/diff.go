package vcs

import (
	"strconv"
	"strings"

	"github.com/codenerd/chronicle/internal/chronicleerr"
)

// DiffStatus classifies how a file changed in a commit.
type DiffStatus string

const (
	DiffAdded    DiffStatus = "added"
	DiffModified DiffStatus = "modified"
	DiffDeleted  DiffStatus = "deleted"
	DiffRenamed  DiffStatus = "renamed"
)

// FileDiff is one file's change within a commit.
type FileDiff struct {
	Path    string
	OldPath string
	Status  DiffStatus
	Hunks   []Hunk
}

// Hunk is a contiguous block of changed lines.
type Hunk struct {
	OldStart uint32
	OldCount uint32
	NewStart uint32
	NewCount uint32
	Header   string
	Lines    []HunkLine
}

// HunkLineKind distinguishes a hunk line's role.
type HunkLineKind int

const (
	HunkContext HunkLineKind = iota
	HunkAdded
	HunkRemoved
)

// HunkLine is one line within a Hunk.
type HunkLine struct {
	Kind    HunkLineKind
	Content string
}

// AddedLineCount returns the number of added lines across all hunks.
func (f FileDiff) AddedLineCount() int {
	n := 0
	for _, h := range f.Hunks {
		for _, l := range h.Lines {
			if l.Kind == HunkAdded {
				n++
			}
		}
	}
	return n
}

// RemovedLineCount returns the number of removed lines across all hunks.
func (f FileDiff) RemovedLineCount() int {
	n := 0
	for _, h := range f.Hunks {
		for _, l := range h.Lines {
			if l.Kind == HunkRemoved {
				n++
			}
		}
	}
	return n
}

// ChangedLineCount is AddedLineCount + RemovedLineCount, the figure the
// backfill pre-LLM filter's trivial-change threshold is measured against.
func (f FileDiff) ChangedLineCount() int {
	return f.AddedLineCount() + f.RemovedLineCount()
}

// ParseDiff parses unified diff output (as produced by `git diff-tree -p`)
// into structured FileDiffs.
func ParseDiff(diffOutput string) ([]FileDiff, error) {
	var files []FileDiff
	lines := strings.Split(diffOutput, "\n")
	i := 0

	for i < len(lines) {
		line := lines[i]
		if !strings.HasPrefix(line, "diff --git ") {
			i++
			continue
		}

		aPath, bPath, err := parseDiffHeader(line)
		if err != nil {
			return nil, err
		}

		status := DiffModified
		oldPath := ""
		newPath := bPath
		i++

		for i < len(lines) &&
			!strings.HasPrefix(lines[i], "diff --git ") &&
			!strings.HasPrefix(lines[i], "@@") &&
			!strings.HasPrefix(lines[i], "--- ") {
			hdr := lines[i]
			switch {
			case strings.HasPrefix(hdr, "new file mode"):
				status = DiffAdded
			case strings.HasPrefix(hdr, "deleted file mode"):
				status = DiffDeleted
			case strings.HasPrefix(hdr, "rename from "):
				oldPath = strings.TrimPrefix(hdr, "rename from ")
				status = DiffRenamed
			case strings.HasPrefix(hdr, "rename to "):
				newPath = strings.TrimPrefix(hdr, "rename to ")
			}
			i++
		}

		if i < len(lines) && strings.HasPrefix(lines[i], "--- ") {
			if lines[i][4:] == "/dev/null" {
				status = DiffAdded
			}
			i++
		}
		if i < len(lines) && strings.HasPrefix(lines[i], "+++ ") {
			if lines[i][4:] == "/dev/null" {
				status = DiffDeleted
			}
			i++
		}

		var hunks []Hunk
		for i < len(lines) && !strings.HasPrefix(lines[i], "diff --git ") {
			if strings.HasPrefix(lines[i], "@@") {
				oldStart, oldCount, newStart, newCount, err := parseHunkHeader(lines[i])
				if err != nil {
					return nil, err
				}
				header := lines[i]
				var hunkLines []HunkLine
				i++

				for i < len(lines) &&
					!strings.HasPrefix(lines[i], "@@") &&
					!strings.HasPrefix(lines[i], "diff --git ") {
					l := lines[i]
					switch {
					case strings.HasPrefix(l, "+"):
						hunkLines = append(hunkLines, HunkLine{Kind: HunkAdded, Content: l[1:]})
					case strings.HasPrefix(l, "-"):
						hunkLines = append(hunkLines, HunkLine{Kind: HunkRemoved, Content: l[1:]})
					case strings.HasPrefix(l, " "):
						hunkLines = append(hunkLines, HunkLine{Kind: HunkContext, Content: l[1:]})
					case l == "\\ No newline at end of file":
						// skip
					case l == "":
						hunkLines = append(hunkLines, HunkLine{Kind: HunkContext, Content: ""})
					}
					i++
				}

				hunks = append(hunks, Hunk{
					OldStart: oldStart, OldCount: oldCount,
					NewStart: newStart, NewCount: newCount,
					Header: header, Lines: hunkLines,
				})
			} else {
				i++
			}
		}

		finalPath := bPath
		switch status {
		case DiffRenamed:
			finalPath = newPath
		case DiffDeleted:
			finalPath = aPath
		}

		files = append(files, FileDiff{
			Path:    finalPath,
			OldPath: oldPath,
			Status:  status,
			Hunks:   hunks,
		})
	}

	return files, nil
}

// parseDiffHeader parses "diff --git a/<path> b/<path>", tolerating spaces
// in paths by anchoring on the "a/"..." b/" separator.
func parseDiffHeader(line string) (aPath, bPath string, err error) {
	rest, ok := strings.CutPrefix(line, "diff --git ")
	if !ok {
		return "", "", chronicleerr.VcsDiffParseErr("invalid diff header: " + line)
	}

	if aRest, ok := strings.CutPrefix(rest, "a/"); ok {
		if sepPos := strings.Index(aRest, " b/"); sepPos >= 0 {
			return aRest[:sepPos], aRest[sepPos+3:], nil
		}
	}

	parts := strings.SplitN(rest, " ", 2)
	if len(parts) == 2 {
		a := strings.TrimPrefix(parts[0], "a/")
		b := strings.TrimPrefix(parts[1], "b/")
		return a, b, nil
	}
	return "", "", chronicleerr.VcsDiffParseErr("cannot parse diff header: " + line)
}

// parseHunkHeader parses "@@ -old_start,old_count +new_start,new_count @@".
func parseHunkHeader(line string) (oldStart, oldCount, newStart, newCount uint32, err error) {
	atEnd := strings.Index(line, " @@")
	if atEnd < 0 || len(line) < 3 {
		return 0, 0, 0, 0, chronicleerr.VcsDiffParseErr("invalid hunk header: " + line)
	}
	rangePart := line[3:atEnd]
	parts := strings.Split(rangePart, " ")
	if len(parts) < 2 {
		return 0, 0, 0, 0, chronicleerr.VcsDiffParseErr("invalid hunk header ranges: " + line)
	}

	oldStart, oldCount, err = parseRange(strings.TrimPrefix(parts[0], "-"))
	if err != nil {
		return 0, 0, 0, 0, err
	}
	newStart, newCount, err = parseRange(strings.TrimPrefix(parts[1], "+"))
	if err != nil {
		return 0, 0, 0, 0, err
	}
	return oldStart, oldCount, newStart, newCount, nil
}

// parseRange parses "start,count" or bare "start" (count defaults to 1).
func parseRange(s string) (start, count uint32, err error) {
	if before, after, found := strings.Cut(s, ","); found {
		startN, err := strconv.ParseUint(before, 10, 32)
		if err != nil {
			return 0, 0, chronicleerr.VcsDiffParseErr("invalid range number: " + s)
		}
		countN, err := strconv.ParseUint(after, 10, 32)
		if err != nil {
			return 0, 0, chronicleerr.VcsDiffParseErr("invalid range number: " + s)
		}
		return uint32(startN), uint32(countN), nil
	}
	startN, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, 0, chronicleerr.VcsDiffParseErr("invalid range number: " + s)
	}
	return uint32(startN), 1, nil
}
