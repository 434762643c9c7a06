package meta

import (
	"fmt"
	"strings"
	"time"

	"github.com/keshon/wit/internal/config"
)

var lineBreaks = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")

// Commit is the metadata record stored next to a snapshot as
// images/<id>.txt.
type Commit struct {
	ID        string
	ParentIDs []string
	Timestamp time.Time
	Message   string
}

// IsMerge reports whether the commit has two parents.
func (c *Commit) IsMerge() bool { return len(c.ParentIDs) > 1 }

// Date renders the timestamp in the persisted layout.
func (c *Commit) Date() string { return c.Timestamp.Format(config.DateLayout) }

// Encode renders the three-line metadata record. Line breaks inside the
// message are flattened so the record stays three lines.
func (c *Commit) Encode() []byte {
	parents := config.NoneRef
	if len(c.ParentIDs) > 0 {
		parents = strings.Join(c.ParentIDs, ",")
	}
	msg := lineBreaks.Replace(c.Message)
	return []byte(fmt.Sprintf("parent=%s\ndate=%s\nmessage=%s", parents, c.Date(), msg))
}

// DecodeCommit parses a metadata record for commit id.
func DecodeCommit(id string, lines []string) (*Commit, error) {
	if len(lines) < 2 {
		return nil, fmt.Errorf("commit %s: expected 3 lines, got %d", id, len(lines))
	}
	c := &Commit{ID: id}

	parents, ok := strings.CutPrefix(lines[0], "parent=")
	if !ok {
		return nil, fmt.Errorf("commit %s: expected parent=, got %q", id, lines[0])
	}
	c.ParentIDs = ParseParents(parents)

	date, ok := strings.CutPrefix(lines[1], "date=")
	if !ok {
		return nil, fmt.Errorf("commit %s: expected date=, got %q", id, lines[1])
	}
	ts, err := time.Parse(config.DateLayout, strings.TrimSpace(date))
	if err != nil {
		return nil, fmt.Errorf("commit %s: bad date: %w", id, err)
	}
	c.Timestamp = ts

	if len(lines) > 2 {
		msg, ok := strings.CutPrefix(lines[2], "message=")
		if !ok {
			return nil, fmt.Errorf("commit %s: expected message=, got %q", id, lines[2])
		}
		c.Message = msg
	}
	return c, nil
}

// ParseParents splits a parent field, dropping None and empty entries.
func ParseParents(field string) []string {
	var out []string
	for _, p := range strings.Split(field, ",") {
		p = strings.TrimSpace(p)
		if p == "" || p == config.NoneRef {
			continue
		}
		out = append(out, p)
	}
	return out
}
