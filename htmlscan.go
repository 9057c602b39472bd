package classlint

import (
	"bytes"
	"io"
	"strings"

	"golang.org/x/net/html"
)

// Markup front-end: extracts class attribute lists from HTML-like sources
// (plain HTML and templ templates) as element inputs for the runner. The
// tokenizer is lenient, so template syntax between tags passes through as
// text without derailing extraction.

// ScanMarkup tokenizes markup content and returns one element input per
// tag that carries a class attribute.
func ScanMarkup(content []byte, filename string) []Input {
	var inputs []Input

	lines := strings.Split(string(content), "\n")
	line := 1
	z := html.NewTokenizer(bytes.NewReader(content))

	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			if z.Err() != io.EOF {
				// Tokenizer failures abort extraction of the remainder;
				// count the unit instead of under-reporting.
				inputs = append(inputs, Input{
					Location: Location{File: filename, Line: line, Column: 1},
					Err:      z.Err(),
				})
			}
			return inputs
		}

		raw := z.Raw()
		tokLine := line
		line += bytes.Count(raw, []byte("\n"))

		if tt != html.StartTagToken && tt != html.SelfClosingTagToken {
			continue
		}

		name, hasAttr := z.TagName()
		if !hasAttr {
			continue
		}
		for {
			key, val, more := z.TagAttr()
			if string(key) == "class" {
				classes := strings.Fields(string(val))
				if len(classes) > 0 {
					inputs = append(inputs, Input{
						Element:  classes,
						Location: markupLocation(filename, lines, raw, tokLine, string(name), string(val)),
					})
				}
			}
			if !more {
				break
			}
		}
	}
}

// markupLocation points at the class attribute value within the tag when
// it can be found on its source line, falling back to the tag start.
func markupLocation(filename string, lines []string, raw []byte, tokLine int, tag, classValue string) Location {
	loc := Location{
		File:     filename,
		Line:     tokLine,
		Column:   1,
		Selector: "<" + tag + ">",
	}

	// The attribute may sit on a later line of a multi-line tag.
	needle := `class="` + classValue + `"`
	for i := tokLine; i <= len(lines) && i < tokLine+strings.Count(string(raw), "\n")+1; i++ {
		src := lines[i-1]
		if col := strings.Index(src, needle); col >= 0 {
			loc.Line = i
			loc.Column = col + len(`class="`) + 1
			loc.Source = src
			return loc
		}
	}
	if tokLine >= 1 && tokLine <= len(lines) {
		loc.Source = lines[tokLine-1]
	}
	return loc
}
