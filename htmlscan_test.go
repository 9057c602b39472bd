package classlint

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanMarkupExtractsClassLists(t *testing.T) {
	content := []byte(`<div class="c-card is-open">
  <p class="_body">text</p>
  <img class="_thumb" src="x.png"/>
  <span>no classes</span>
</div>
`)
	inputs := ScanMarkup(content, "page.html")

	require.Len(t, inputs, 3)
	assert.Equal(t, []string{"c-card", "is-open"}, inputs[0].Element)
	assert.Equal(t, 1, inputs[0].Location.Line)
	assert.Equal(t, []string{"_body"}, inputs[1].Element)
	assert.Equal(t, 2, inputs[1].Location.Line)
	assert.Equal(t, []string{"_thumb"}, inputs[2].Element)
	assert.Equal(t, 3, inputs[2].Location.Line)

	for _, in := range inputs {
		assert.NoError(t, in.Err)
		assert.Equal(t, "page.html", in.Location.File)
	}
}

func TestScanMarkupColumnPointsAtClassValue(t *testing.T) {
	content := []byte(`<div class="c-card">`)
	inputs := ScanMarkup(content, "page.html")

	require.Len(t, inputs, 1)
	// Column of the first class name inside the quotes.
	assert.Equal(t, 13, inputs[0].Location.Column)
	assert.Equal(t, `<div class="c-card">`, inputs[0].Location.Source)
}

func TestScanMarkupSkipsEmptyClassAttribute(t *testing.T) {
	inputs := ScanMarkup([]byte(`<div class=""><p class="   "></p></div>`), "page.html")
	assert.Empty(t, inputs)
}

func TestScanMarkupTemplTemplate(t *testing.T) {
	// templ syntax between tags is plain text to the tokenizer.
	content := []byte(`package web

templ Card(title string) {
	<div class="c-card">
		<h2 class="_title">{ title }</h2>
	</div>
}
`)
	inputs := ScanMarkup(content, "card.templ")

	require.Len(t, inputs, 2)
	assert.Equal(t, []string{"c-card"}, inputs[0].Element)
	assert.Equal(t, 4, inputs[0].Location.Line)
	assert.Equal(t, []string{"_title"}, inputs[1].Element)
	assert.Equal(t, 5, inputs[1].Location.Line)
}

func TestScanMarkupEndToEnd(t *testing.T) {
	content := []byte(`<div class="c-card"><p class="_body">ok</p></div>
<p class="_stray">bad</p>
`)
	inputs := ScanMarkup(content, "page.html")
	require.Len(t, inputs, 3)

	result, err := Run(context.Background(), inputs, DefaultConvention(), RunOptions{Workers: 1})
	require.NoError(t, err)

	// Markup has no ancestry: _body inside the card div is judged by its
	// own class list, same as _stray.
	require.Len(t, result.Violations, 2)
	for _, v := range result.Violations {
		assert.Equal(t, RulePrivateWithoutContainer, v.Rule)
	}
}

func TestScanMarkupEmpty(t *testing.T) {
	assert.Empty(t, ScanMarkup(nil, "empty.html"))
	assert.Empty(t, ScanMarkup([]byte("just text, no tags"), "text.html"))
}
