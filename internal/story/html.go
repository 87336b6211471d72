package story

import (
	"html"
	"regexp"
	"strings"

	"fortio.org/safecast"
)

var (
	reStoryData   = regexp.MustCompile(`(?s)<tw-storydata\b([^>]*)>(.*?)</tw-storydata>`)
	rePassageData = regexp.MustCompile(`(?s)<tw-passagedata\b([^>]*)>(.*?)</tw-passagedata>`)
	reAttr        = regexp.MustCompile(`([a-zA-Z-]+)="([^"]*)"`)
)

// ParseHTML extracts the story from a published archive. The second
// result is false when no <tw-storydata> element is present.
func ParseHTML(src string) (Story, bool) {
	m := reStoryData.FindStringSubmatchIndex(src)
	if m == nil {
		return Story{}, false
	}

	var st Story
	attrs := parseAttrs(src[m[2]:m[3]])
	st.Name = attrs["name"]
	startPid := attrs["startnode"]

	inner := src[m[4]:m[5]]
	innerBase := m[4]
	for _, pm := range rePassageData.FindAllStringSubmatchIndex(inner, -1) {
		pattrs := parseAttrs(inner[pm[2]:pm[3]])
		body := html.UnescapeString(inner[pm[4]:pm[5]])

		base, err := safecast.Conv[uint32](innerBase + pm[4])
		if err != nil {
			continue
		}
		st.Passages = append(st.Passages, Passage{
			Name: pattrs["name"],
			Tags: strings.Fields(pattrs["tags"]),
			Body: body,
			Base: base,
		})
		if startPid != "" && pattrs["pid"] == startPid {
			st.Start = pattrs["name"]
		}
	}
	if st.Start == "" && len(st.Passages) > 0 {
		st.Start = st.Passages[0].Name
	}
	return st, true
}

func parseAttrs(raw string) map[string]string {
	attrs := make(map[string]string)
	for _, m := range reAttr.FindAllStringSubmatch(raw, -1) {
		attrs[strings.ToLower(m[1])] = html.UnescapeString(m[2])
	}
	return attrs
}
