package classlint

import (
	"fmt"
	"sort"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// Stylesheet front-end: tokenizes CSS/SCSS with the tdewolff lexer and
// produces the runner's inputs. One Input per (selector, nesting parent)
// pair, with the rule's declarations attached for the reuse pass. Rules
// whose selectors cannot be interpreted become unanalyzable inputs rather
// than disappearing.

type frameKind int

const (
	frameStyle frameKind = iota // a style rule: children nest under its paths
	frameCond                   // @media/@container/@supports: non-scoping marker
	frameSkip                   // @keyframes, @font-face, malformed rules: ignored
)

type styleFrame struct {
	kind     frameKind
	parents  []SelectorPath // resolved contexts for nested rules
	atRules  []string
	decls    map[string]string
	pendings []*Input // this rule's inputs, awaiting declarations
}

type lexedToken struct {
	tt   css.TokenType
	text string
	line int
	col  int
}

type stylesheetParser struct {
	conv     *Convention
	filename string
	lines    []string

	line int
	col  int

	stack []*styleFrame
	out   []*Input
}

// ParseStylesheet parses CSS/SCSS source into analysis inputs. The
// convention is needed to resolve nesting contexts as rules are chained;
// classification itself is re-done per input by the runner.
func ParseStylesheet(content, filename string, conv *Convention) []Input {
	p := &stylesheetParser{
		conv:     conv,
		filename: filename,
		lines:    strings.Split(content, "\n"),
		line:     1,
		col:      1,
	}
	root := &styleFrame{kind: frameCond}
	p.stack = []*styleFrame{root}

	lexer := css.NewLexer(parse.NewInputString(content))
	var buf []lexedToken

	for {
		tt, text := lexer.Next()
		if tt == css.ErrorToken {
			break
		}

		tok := lexedToken{tt: tt, text: string(text), line: p.line, col: p.col}
		p.advance(text)

		switch tt {
		case css.CommentToken:
			continue

		case css.LeftBraceToken:
			p.openBlock(buf)
			buf = nil

		case css.SemicolonToken:
			p.statement(buf)
			buf = nil

		case css.RightBraceToken:
			p.statement(buf)
			buf = nil
			p.closeBlock()

		default:
			buf = append(buf, tok)
		}
	}

	// Trailing prelude without a block, or unterminated rules.
	if len(p.stack) == 1 {
		if sel := strings.TrimSpace(rawText(buf)); sel != "" {
			loc := p.bufLocation(buf)
			loc.Selector = sel
			p.emit(&Input{Location: loc, Err: fmt.Errorf("selector %q has no declaration block", sel)})
		}
	}
	for len(p.stack) > 1 {
		top := p.top()
		for _, in := range top.pendings {
			in.Err = fmt.Errorf("unterminated rule for selector %q", in.Location.Selector)
			in.Declarations = nil
		}
		p.closeBlock()
	}

	inputs := make([]Input, len(p.out))
	for i, in := range p.out {
		inputs[i] = *in
	}
	return inputs
}

func (p *stylesheetParser) advance(text []byte) {
	for _, b := range text {
		if b == '\n' {
			p.line++
			p.col = 1
		} else {
			p.col++
		}
	}
}

func (p *stylesheetParser) top() *styleFrame {
	return p.stack[len(p.stack)-1]
}

func (p *stylesheetParser) emit(in *Input) {
	p.out = append(p.out, in)
}

// openBlock interprets the buffered tokens as the prelude of the block
// that just opened: a style-rule selector list, a conditional at-rule, or
// something to skip.
func (p *stylesheetParser) openBlock(buf []lexedToken) {
	buf = trimWhitespace(buf)
	parent := p.top()

	if parent.kind == frameSkip {
		p.stack = append(p.stack, &styleFrame{kind: frameSkip})
		return
	}

	if len(buf) > 0 && buf[0].tt == css.AtKeywordToken {
		name := buf[0].text
		switch name {
		case "@media", "@container", "@supports", "@layer":
			marker := strings.TrimSpace(rawText(buf))
			p.stack = append(p.stack, &styleFrame{
				kind:    frameCond,
				parents: parent.parents,
				atRules: appendMarker(parent.atRules, marker),
			})
		default:
			// @keyframes, @font-face, @page and friends have block
			// contents that are not style rules.
			p.stack = append(p.stack, &styleFrame{kind: frameSkip})
		}
		return
	}

	loc := p.bufLocation(buf)
	raw := strings.TrimSpace(rawText(buf))
	loc.Selector = raw

	selectors, err := parsePrelude(buf)
	if err != nil {
		p.emit(&Input{Location: loc, Err: err})
		p.stack = append(p.stack, &styleFrame{kind: frameSkip})
		return
	}

	frame := &styleFrame{
		kind:    frameStyle,
		atRules: parent.atRules,
		decls:   make(map[string]string),
	}

	parents := parent.parents
	if len(parents) == 0 {
		parents = []SelectorPath{{}} // sentinel: no enclosing rule
	}
	for si := range selectors {
		sel := selectors[si]
		sel.Location = loc
		for pi := range parents {
			ctx := NestingContext{AtRules: parent.atRules}
			if len(parents[pi].Steps) > 0 {
				pp := parents[pi]
				ctx.Parent = &pp
			}
			in := &Input{Selector: &sel, Context: ctx, Location: loc}
			frame.pendings = append(frame.pendings, in)
			p.emit(in)

			// Resolve eagerly so deeper nesting has its context. A
			// resolution error is carried by the input itself.
			if path, aerr := Analyze(sel, ctx, p.conv); aerr == nil {
				frame.parents = append(frame.parents, path)
			}
		}
	}
	p.stack = append(p.stack, frame)
}

// statement interprets buffered tokens between braces and semicolons as a
// declaration when inside a style rule. Anything else between statements
// (at-rule preludes ended by ';', stray tokens) is dropped.
func (p *stylesheetParser) statement(buf []lexedToken) {
	buf = trimWhitespace(buf)
	if len(buf) == 0 {
		return
	}
	frame := p.top()
	if frame.kind != frameStyle && frame.kind != frameSkip {
		return
	}
	if frame.decls == nil {
		return
	}

	if prop, value, ok := parseDeclaration(buf); ok {
		frame.decls[prop] = value
	}
}

func (p *stylesheetParser) closeBlock() {
	if len(p.stack) <= 1 {
		return
	}
	frame := p.top()
	p.stack = p.stack[:len(p.stack)-1]

	if frame.kind != frameStyle {
		return
	}
	for _, in := range frame.pendings {
		if in.Err == nil {
			in.Declarations = frame.decls
		}
	}
}

func (p *stylesheetParser) bufLocation(buf []lexedToken) Location {
	loc := Location{File: p.filename, Line: p.line, Column: p.col}
	for _, t := range buf {
		if t.tt == css.WhitespaceToken {
			continue
		}
		loc.Line = t.line
		loc.Column = t.col
		break
	}
	if loc.Line >= 1 && loc.Line <= len(p.lines) {
		loc.Source = p.lines[loc.Line-1]
	}
	return loc
}

// parseDeclaration reads "property: value" from a statement's tokens.
func parseDeclaration(buf []lexedToken) (string, string, bool) {
	if len(buf) < 2 {
		return "", "", false
	}
	if buf[0].tt != css.IdentToken && buf[0].tt != css.CustomPropertyNameToken {
		return "", "", false
	}
	prop := strings.TrimSuffix(buf[0].text, ":")

	rest := buf[1:]
	if len(rest) > 0 && rest[0].tt == css.ColonToken {
		rest = rest[1:]
	} else if buf[0].tt != css.CustomPropertyNameToken {
		return "", "", false
	}

	var value strings.Builder
	for _, t := range rest {
		value.WriteString(t.text)
	}
	v := strings.TrimSpace(value.String())
	if v == "" {
		return "", "", false
	}
	return prop, v, true
}

// parsePrelude turns a rule prelude into its comma-separated raw
// selectors. Only the structure the rules need survives: class names,
// compound boundaries, descendant/child combinators, and & references.
// Pseudo-classes, attribute selectors, element and id selectors keep their
// compound's position without contributing tokens.
func parsePrelude(buf []lexedToken) ([]RawSelector, error) {
	b := &preludeBuilder{}
	for _, t := range buf {
		if err := b.token(t); err != nil {
			return nil, err
		}
	}
	return b.finish()
}

type preludeBuilder struct {
	selectors []RawSelector
	cur       []RawCompound
	compound  *RawCompound

	pendingComb Combinator
	sibling     bool
	expectClass bool
	expectPseud bool
	parenDepth  int
	brackDepth  int
}

func (b *preludeBuilder) token(t lexedToken) error {
	// Inside :is(...), :not(...), [attr=...]: swallow until balanced.
	if b.parenDepth > 0 {
		switch t.tt {
		case css.LeftParenthesisToken, css.FunctionToken:
			b.parenDepth++
		case css.RightParenthesisToken:
			b.parenDepth--
		}
		return nil
	}
	if b.brackDepth > 0 {
		switch t.tt {
		case css.LeftBracketToken:
			b.brackDepth++
		case css.RightBracketToken:
			b.brackDepth--
		}
		return nil
	}

	if b.expectPseud {
		switch t.tt {
		case css.ColonToken:
			return nil // pseudo-element ::
		case css.IdentToken:
			b.expectPseud = false
			return nil
		case css.FunctionToken:
			b.expectPseud = false
			b.parenDepth = 1
			return nil
		default:
			return fmt.Errorf("unexpected token %q after ':' in selector", t.text)
		}
	}

	switch t.tt {
	case css.WhitespaceToken:
		if b.compound != nil {
			b.closeCompound()
		}
		return nil

	case css.IdentToken:
		if b.expectClass {
			b.ensureCompound()
			b.compound.Classes = append(b.compound.Classes, t.text)
			b.expectClass = false
			return nil
		}
		b.ensureCompound() // element selector holds the position
		return nil

	case css.HashToken:
		b.ensureCompound()
		return nil

	case css.ColonToken:
		b.ensureCompound()
		b.expectPseud = true
		return nil

	case css.LeftBracketToken:
		b.ensureCompound()
		b.brackDepth = 1
		return nil

	case css.CommaToken:
		b.closeCompound()
		b.finishSelector()
		return nil

	case css.DelimToken:
		switch t.text {
		case ".":
			b.expectClass = true
			return nil
		case "&":
			b.ensureCompound()
			b.compound.Parent = true
			return nil
		case ">":
			b.closeCompound()
			b.pendingComb = CombinatorChild
			return nil
		case "+", "~":
			// Siblings share ancestors but do not nest: the preceding
			// compound is not part of the new compound's scope chain.
			b.closeCompound()
			b.sibling = true
			b.pendingComb = CombinatorNone
			return nil
		case "*":
			b.ensureCompound()
			return nil
		}
		return fmt.Errorf("unexpected %q in selector", t.text)

	case css.FunctionToken:
		b.ensureCompound()
		b.parenDepth = 1
		return nil
	}

	return fmt.Errorf("unexpected token %q in selector", t.text)
}

func (b *preludeBuilder) ensureCompound() {
	if b.compound != nil {
		return
	}
	comb := CombinatorNone
	if len(b.cur) > 0 {
		comb = CombinatorDescendant
		if b.pendingComb == CombinatorChild {
			comb = CombinatorChild
		}
	}
	if b.sibling && len(b.cur) > 0 {
		// Replace the previous compound: the sibling inherits its
		// ancestor chain, not the compound itself.
		comb = b.cur[len(b.cur)-1].Combinator
		b.cur = b.cur[:len(b.cur)-1]
		b.sibling = false
	}
	b.compound = &RawCompound{Combinator: comb}
	b.pendingComb = CombinatorNone
}

func (b *preludeBuilder) closeCompound() {
	if b.compound == nil {
		return
	}
	b.cur = append(b.cur, *b.compound)
	b.compound = nil
}

func (b *preludeBuilder) finishSelector() {
	if len(b.cur) == 0 {
		return
	}
	b.selectors = append(b.selectors, RawSelector{Compounds: b.cur})
	b.cur = nil
	b.pendingComb = CombinatorNone
	b.sibling = false
}

func (b *preludeBuilder) finish() ([]RawSelector, error) {
	if b.expectClass {
		return nil, fmt.Errorf("selector ends after '.'")
	}
	if b.parenDepth > 0 || b.brackDepth > 0 {
		return nil, fmt.Errorf("unbalanced parentheses or brackets in selector")
	}
	b.closeCompound()
	b.finishSelector()
	if len(b.selectors) == 0 {
		return nil, fmt.Errorf("empty selector")
	}
	return b.selectors, nil
}

func rawText(buf []lexedToken) string {
	var sb strings.Builder
	for _, t := range buf {
		sb.WriteString(t.text)
	}
	return sb.String()
}

func trimWhitespace(buf []lexedToken) []lexedToken {
	for len(buf) > 0 && buf[0].tt == css.WhitespaceToken {
		buf = buf[1:]
	}
	for len(buf) > 0 && buf[len(buf)-1].tt == css.WhitespaceToken {
		buf = buf[:len(buf)-1]
	}
	return buf
}

func appendMarker(markers []string, m string) []string {
	out := make([]string, len(markers), len(markers)+1)
	copy(out, markers)
	if m != "" && !containsString(out, m) {
		out = append(out, m)
	}
	return out
}

// SortInputs orders inputs by location for deterministic dispatch when a
// caller merges inputs from several files.
func SortInputs(inputs []Input) {
	sort.SliceStable(inputs, func(i, j int) bool {
		a, b := inputs[i].Location, inputs[j].Location
		if a.File != b.File {
			return a.File < b.File
		}
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		return a.Column < b.Column
	})
}
