// Package story extracts passages from story containers: twee3
// notation and published HTML archives. Each passage records its byte
// offset in the container so diagnostics map back to it.
package story

import (
	"regexp"
	"strings"

	"fortio.org/safecast"
)

// Passage is one extracted passage body.
type Passage struct {
	Name string
	Tags []string
	Body string
	// Base is the byte offset of Body inside the container text.
	Base uint32
}

// Story is a parsed container.
type Story struct {
	Name     string
	Start    string
	Passages []Passage
}

// A twee3 passage header: ":: Name [tag tag]" with optional metadata.
var reTweeHeader = regexp.MustCompile(`(?m)^:: *((?:\\.|[^\[\{\n])*?) *(\[([^\]\n]*)\])? *(\{[^\n]*\})? *$`)

// ParseTwee splits twee3 source into passages. Content before the
// first header is ignored; empty passages are kept (an author may
// stub them out).
func ParseTwee(src string) Story {
	var st Story
	locs := reTweeHeader.FindAllStringSubmatchIndex(src, -1)
	for i, loc := range locs {
		name := unescapeTweeName(src[loc[2]:loc[3]])

		var tags []string
		if loc[6] >= 0 {
			tags = strings.Fields(src[loc[6]:loc[7]])
		}

		bodyStart := loc[1]
		if bodyStart < len(src) && src[bodyStart] == '\n' {
			bodyStart++
		}
		bodyEnd := len(src)
		if i+1 < len(locs) {
			bodyEnd = locs[i+1][0]
		}
		body := strings.TrimRight(src[bodyStart:bodyEnd], "\n")

		base, err := safecast.Conv[uint32](bodyStart)
		if err != nil {
			continue
		}

		switch name {
		case "StoryTitle":
			st.Name = strings.TrimSpace(body)
			continue
		case "StoryData":
			// JSON metadata block; only the start passage matters here.
			if m := reStartName.FindStringSubmatch(body); m != nil {
				st.Start = m[1]
			}
			continue
		}

		st.Passages = append(st.Passages, Passage{
			Name: name,
			Tags: tags,
			Body: body,
			Base: base,
		})
	}
	if st.Start == "" && len(st.Passages) > 0 {
		st.Start = st.Passages[0].Name
	}
	return st
}

var reStartName = regexp.MustCompile(`"start"\s*:\s*"([^"]*)"`)

// unescapeTweeName undoes the \[ \] \{ \} escapes twee requires in
// passage names.
func unescapeTweeName(s string) string {
	r := strings.NewReplacer(`\[`, "[", `\]`, "]", `\{`, "{", `\}`, "}")
	return r.Replace(s)
}
