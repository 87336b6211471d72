package story_test

import (
	"strings"
	"testing"

	"quill/internal/story"
)

const tweeSample = `:: StoryTitle
Midnight Manor

:: StoryData
{
	"ifid": "D674C58C-DEFA-4F70-B7A2-27742230C0FC",
	"start": "Foyer"
}

:: Foyer [dark spooky]
You stand in the foyer.
[[Go up->Landing]]

:: Landing
(set: $floor to 2)
`

func TestParseTwee(t *testing.T) {
	st := story.ParseTwee(tweeSample)

	if st.Name != "Midnight Manor" {
		t.Errorf("Name = %q", st.Name)
	}
	if st.Start != "Foyer" {
		t.Errorf("Start = %q", st.Start)
	}
	if len(st.Passages) != 2 {
		t.Fatalf("passages = %d, want 2", len(st.Passages))
	}

	foyer := st.Passages[0]
	if foyer.Name != "Foyer" {
		t.Errorf("name = %q", foyer.Name)
	}
	if len(foyer.Tags) != 2 || foyer.Tags[0] != "dark" || foyer.Tags[1] != "spooky" {
		t.Errorf("tags = %v", foyer.Tags)
	}
	if !strings.HasPrefix(foyer.Body, "You stand") {
		t.Errorf("body = %q", foyer.Body)
	}

	// Base points at the body inside the container.
	if got := tweeSample[foyer.Base : int(foyer.Base)+9]; got != "You stand" {
		t.Errorf("base slice = %q", got)
	}
}

func TestParseTweeDefaultStart(t *testing.T) {
	st := story.ParseTwee(":: First\nhello\n\n:: Second\nbye\n")
	if st.Start != "First" {
		t.Errorf("Start = %q, want first passage", st.Start)
	}
}

func TestParseTweeEscapedName(t *testing.T) {
	st := story.ParseTwee(`:: A \[strange\] name
body
`)
	if len(st.Passages) != 1 || st.Passages[0].Name != "A [strange] name" {
		t.Fatalf("passages = %+v", st.Passages)
	}
}

const htmlSample = `<html><body>
<tw-storydata name="Tiny Tale" startnode="2" creator="Twine">
<tw-passagedata pid="1" name="End" tags="">The end.</tw-passagedata>
<tw-passagedata pid="2" name="Start" tags="intro">Once upon a time &lt;b&gt;bold&lt;/b&gt;.</tw-passagedata>
</tw-storydata>
</body></html>`

func TestParseHTML(t *testing.T) {
	st, ok := story.ParseHTML(htmlSample)
	if !ok {
		t.Fatal("storydata not found")
	}
	if st.Name != "Tiny Tale" {
		t.Errorf("Name = %q", st.Name)
	}
	if st.Start != "Start" {
		t.Errorf("Start = %q", st.Start)
	}
	if len(st.Passages) != 2 {
		t.Fatalf("passages = %d", len(st.Passages))
	}
	if st.Passages[1].Body != "Once upon a time <b>bold</b>." {
		t.Errorf("entities not unescaped: %q", st.Passages[1].Body)
	}
	if len(st.Passages[1].Tags) != 1 || st.Passages[1].Tags[0] != "intro" {
		t.Errorf("tags = %v", st.Passages[1].Tags)
	}
}

func TestParseHTMLNotAStory(t *testing.T) {
	if _, ok := story.ParseHTML("<html><body>plain page</body></html>"); ok {
		t.Error("plain HTML accepted as story")
	}
}
