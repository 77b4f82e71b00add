package models

import (
	"strconv"
	"strings"
	"time"
)

// TermPathPrefix prefixes every unaliased term page path.
const TermPathPrefix = "/taxonomy/term/"

// Term is a taxonomy term. Terms in the stream vocabulary represent academic programs.
type Term struct {
	ID         int64     `json:"id" db:"id" example:"3"`
	Vocabulary string    `json:"vocabulary" db:"vid" example:"student_streams"`
	Name       string    `json:"name" db:"name" example:"Computer Science"`
	Weight     int       `json:"weight" db:"weight"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
}

// Label returns the human-readable label of the term.
func (t *Term) Label() string {
	return t.Name
}

// SystemPath is the canonical, unaliased path of the term page.
func (t *Term) SystemPath() string {
	return TermSystemPath(t.ID)
}

// TermSystemPath builds the unaliased term page path for id.
func TermSystemPath(id int64) string {
	return TermPathPrefix + strconv.FormatInt(id, 10)
}

// ParseTermSystemPath extracts the term ID from an unaliased term page path.
func ParseTermSystemPath(path string) (int64, bool) {
	idPart, ok := strings.CutPrefix(path, TermPathPrefix)
	if !ok {
		return 0, false
	}
	id, err := strconv.ParseInt(idPart, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// PathAlias maps a system path to a friendly URL path.
type PathAlias struct {
	ID    int64  `json:"id" db:"id"`
	Path  string `json:"path" db:"path" example:"/taxonomy/term/3"`
	Alias string `json:"alias" db:"alias" example:"/streams/computer-science"`
}
