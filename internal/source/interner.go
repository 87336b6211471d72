package source

import (
	"fmt"
	"strings"

	"fortio.org/safecast"
)

// NameID identifies an interned macro name. 0 means "no name".
type NameID uint32

// NoNameID is the zero NameID.
const NoNameID NameID = 0

// Names interns macro names under Harlowe's insensitivity rules:
// letter case, dashes and underscores are ignored, so "(go-to:)" and
// "(goto:)" intern to the same NameID. The first spelling seen is kept
// as the canonical display form.
type Names struct {
	lookup  map[string]NameID
	display []string
}

// NewNames creates an empty name table.
func NewNames() *Names {
	return &Names{
		lookup:  make(map[string]NameID),
		display: []string{""}, // index 0 reserved for NoNameID
	}
}

// Fold normalizes a macro name for comparison.
func Fold(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		if r == '-' || r == '_' {
			continue
		}
		if 'A' <= r && r <= 'Z' {
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Intern returns the NameID for name, allocating one if needed.
func (n *Names) Intern(name string) NameID {
	key := Fold(name)
	if id, ok := n.lookup[key]; ok {
		return id
	}
	next, err := safecast.Conv[uint32](len(n.display))
	if err != nil {
		panic(fmt.Errorf("name table overflow: %w", err))
	}
	id := NameID(next)
	n.lookup[key] = id
	n.display = append(n.display, name)
	return id
}

// Display returns the canonical display form for id, or "" for NoNameID.
func (n *Names) Display(id NameID) string {
	if int(id) >= len(n.display) {
		return ""
	}
	return n.display[id]
}

// Len returns the number of interned names, excluding the reserved slot.
func (n *Names) Len() int {
	return len(n.display) - 1
}
