package cascade

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// ImportedDeclaration is one declaration recovered from a class rule.
type ImportedDeclaration struct {
	Class      string
	Breakpoint string
	State      PseudoState
	Property   string // internal camelCase key
	Value      string
	Pos        IssuePos
}

// RawRule is a rule the engine cannot model (element, compound or attribute
// selectors, unknown pseudo-classes, unmatched media, other at-rules). It is
// kept verbatim so it can be re-emitted as a raw override.
type RawRule struct {
	Media  string   `json:"media,omitempty" yaml:"media,omitempty"` // enclosing matched media condition
	Text   string   `json:"text" yaml:"text"`
	Reason string   `json:"reason,omitempty" yaml:"reason,omitempty"`
	Pos    IssuePos `json:"pos" yaml:"pos"`
}

// ImportResult is everything recovered from one stylesheet. Import never
// fails: malformed input is skipped and reported in Issues.
type ImportResult struct {
	Declarations []ImportedDeclaration
	RawRules     []RawRule
	Issues       []Issue
}

// Classes returns the imported class names in order of first appearance.
func (r *ImportResult) Classes() []string {
	seen := make(map[string]bool)
	var out []string
	for _, d := range r.Declarations {
		if !seen[d.Class] {
			seen[d.Class] = true
			out = append(out, d.Class)
		}
	}
	return out
}

// HasErrors reports whether any issue has error severity.
func (r *ImportResult) HasErrors() bool {
	for _, is := range r.Issues {
		if is.Severity == SeverityError {
			return true
		}
	}
	return false
}

// token is a lexer token with its starting position.
type token struct {
	tt   css.TokenType
	text string
	line int
	col  int
}

// tokenize runs the CSS lexer to completion. Concatenating every token's
// text reproduces the input exactly.
func tokenize(data string) []token {
	lexer := css.NewLexer(parse.NewInputString(data))
	var toks []token
	line, col := 1, 1
	for {
		tt, text := lexer.Next()
		if tt == css.ErrorToken {
			break
		}
		s := string(text)
		toks = append(toks, token{tt: tt, text: s, line: line, col: col})
		for i := 0; i < len(s); i++ {
			if s[i] == '\n' {
				line++
				col = 1
			} else {
				col++
			}
		}
	}
	return toks
}

func isTrivia(tt css.TokenType) bool {
	switch tt {
	case css.WhitespaceToken, css.CommentToken, css.CDOToken, css.CDCToken:
		return true
	}
	return false
}

// trimTrivia drops leading and trailing whitespace and comments.
func trimTrivia(toks []token) []token {
	for len(toks) > 0 && isTrivia(toks[0].tt) {
		toks = toks[1:]
	}
	for len(toks) > 0 && isTrivia(toks[len(toks)-1].tt) {
		toks = toks[:len(toks)-1]
	}
	return toks
}

func joinTokens(toks []token) string {
	var b strings.Builder
	for _, t := range toks {
		b.WriteString(t.text)
	}
	return b.String()
}

// importer walks the token stream of one stylesheet.
type importer struct {
	filename    string
	toks        []token
	pos         int
	breakpoints Breakpoints
	lines       []string
	res         *ImportResult
}

// Import recovers class declarations from stylesheet text. Media blocks are
// matched to breakpoints by their width condition.
func Import(data string, breakpoints Breakpoints) *ImportResult {
	return ImportFile("", data, breakpoints)
}

// ImportFile is Import with a filename recorded in issue positions.
func ImportFile(filename, data string, breakpoints Breakpoints) *ImportResult {
	p := &importer{
		filename:    filename,
		toks:        tokenize(data),
		breakpoints: breakpoints,
		lines:       strings.Split(data, "\n"),
		res:         &ImportResult{},
	}
	p.parseRules(breakpoints.Base(), "", nil)
	return p.res
}

func (p *importer) eof() bool {
	return p.pos >= len(p.toks)
}

// skipTrivia advances past whitespace and comments.
func (p *importer) skipTrivia() {
	for !p.eof() && isTrivia(p.toks[p.pos].tt) {
		p.pos++
	}
}

func (p *importer) issue(t token, linter, severity, text string) {
	is := Issue{
		FromLinter: linter,
		Text:       text,
		Severity:   severity,
		Pos:        IssuePos{Filename: p.filename, Line: t.line, Column: t.col},
	}
	if t.line >= 1 && t.line <= len(p.lines) {
		is.SourceLines = []string{strings.TrimRight(p.lines[t.line-1], "\r")}
	}
	p.res.Issues = append(p.res.Issues, is)
}

func (p *importer) raw(start token, media, text, reason string) {
	p.res.RawRules = append(p.res.RawRules, RawRule{
		Media:  media,
		Text:   text,
		Reason: reason,
		Pos:    IssuePos{Filename: p.filename, Line: start.line, Column: start.col},
	})
}

// parseRules reads rules until EOF, or until the '}' closing the block that
// opened at open (nil at top level).
func (p *importer) parseRules(bp, media string, open *token) {
	for {
		p.skipTrivia()
		if p.eof() {
			if open != nil {
				p.issue(*open, LinterSyntax, SeverityError, IssueUnclosedBlock)
			}
			return
		}
		t := p.toks[p.pos]
		switch t.tt {
		case css.RightBraceToken:
			p.pos++
			if open != nil {
				return
			}
			p.issue(t, LinterSyntax, SeverityError, IssueUnexpectedClose)
		case css.SemicolonToken:
			p.pos++
		case css.AtKeywordToken:
			p.parseAtRule(bp, media, open != nil)
		default:
			p.parseQualifiedRule(bp, media)
		}
	}
}

// collectUntil gathers tokens up to (not including) the first token of one of
// the stop types at bracket depth zero.
func (p *importer) collectUntil(stops ...css.TokenType) ([]token, bool) {
	start := p.pos
	depth := 0
	for ; !p.eof(); p.pos++ {
		tt := p.toks[p.pos].tt
		if depth == 0 {
			for _, s := range stops {
				if tt == s {
					return p.toks[start:p.pos], true
				}
			}
		}
		switch tt {
		case css.LeftParenthesisToken, css.LeftBracketToken, css.FunctionToken:
			depth++
		case css.RightParenthesisToken, css.RightBracketToken:
			if depth > 0 {
				depth--
			}
		}
	}
	return p.toks[start:p.pos], false
}

// block consumes a {...} block whose '{' is the current token and returns the
// tokens between the braces. nested reports whether the block contains
// further blocks.
func (p *importer) block() (body []token, nested, closed bool) {
	open := p.toks[p.pos]
	p.pos++
	start := p.pos
	depth := 1
	for ; !p.eof(); p.pos++ {
		switch p.toks[p.pos].tt {
		case css.LeftBraceToken:
			depth++
			nested = true
		case css.RightBraceToken:
			depth--
			if depth == 0 {
				body = p.toks[start:p.pos]
				p.pos++
				return body, nested, true
			}
		}
	}
	p.issue(open, LinterSyntax, SeverityError, IssueUnclosedBlock)
	return p.toks[start:], nested, false
}

func (p *importer) parseAtRule(bp, media string, nested bool) {
	start := p.pos
	at := p.toks[p.pos]
	p.pos++
	prelude, ok := p.collectUntil(css.LeftBraceToken, css.SemicolonToken, css.RightBraceToken)
	if !ok || p.toks[p.pos].tt != css.LeftBraceToken {
		if ok && p.toks[p.pos].tt == css.SemicolonToken {
			p.pos++
		}
		p.raw(at, media, joinTokens(p.toks[start:p.pos]), "at-rule "+at.text)
		return
	}

	if strings.EqualFold(at.text, "@media") && !nested {
		if feature, px, ok := parseWidthCondition(trimTrivia(prelude)); ok {
			if b, ok := p.breakpoints.MatchMedia(feature, px); ok && !b.IsBase() {
				open := p.toks[p.pos]
				p.pos++
				p.parseRules(b.ID, b.MediaQuery(), &open)
				return
			}
		}
		p.block()
		p.raw(at, media, joinTokens(p.toks[start:p.pos]), "unmatched media query "+strings.TrimSpace(joinTokens(prelude)))
		return
	}

	p.block()
	p.raw(at, media, joinTokens(p.toks[start:p.pos]), "at-rule "+at.text)
}

// parseWidthCondition accepts exactly "(max-width: Npx)" or "(min-width: Npx)".
func parseWidthCondition(toks []token) (string, int, bool) {
	var sig []token
	for _, t := range toks {
		if !isTrivia(t.tt) {
			sig = append(sig, t)
		}
	}
	if len(sig) != 5 ||
		sig[0].tt != css.LeftParenthesisToken ||
		sig[1].tt != css.IdentToken ||
		sig[2].tt != css.ColonToken ||
		sig[3].tt != css.DimensionToken ||
		sig[4].tt != css.RightParenthesisToken {
		return "", 0, false
	}
	feature := strings.ToLower(sig[1].text)
	if feature != "max-width" && feature != "min-width" {
		return "", 0, false
	}
	num, ok := strings.CutSuffix(strings.ToLower(sig[3].text), "px")
	if !ok {
		return "", 0, false
	}
	px, err := strconv.Atoi(num)
	if err != nil || px <= 0 {
		return "", 0, false
	}
	return feature, px, true
}

type classSel struct {
	name  string
	state PseudoState
}

func (p *importer) parseQualifiedRule(bp, media string) {
	start := p.pos
	first := p.toks[p.pos]
	prelude, ok := p.collectUntil(css.LeftBraceToken, css.SemicolonToken, css.RightBraceToken)
	selector := strings.TrimSpace(joinTokens(prelude))
	if !ok || p.toks[p.pos].tt != css.LeftBraceToken {
		// A stray ';' or '}' ends the prelude. The '}' is left for parseRules.
		if ok && p.toks[p.pos].tt == css.SemicolonToken {
			p.pos++
		}
		p.issue(first, LinterSyntax, SeverityError, fmt.Sprintf(IssueMissingBlock, selector))
		return
	}

	body, nested, _ := p.block()
	sels, reason := parseClassSelectors(trimTrivia(prelude))
	if reason == "" && nested {
		reason = "nested rules"
	}
	if reason != "" {
		p.raw(first, media, joinTokens(p.toks[start:p.pos]), reason)
		return
	}

	for _, decl := range p.declarations(body) {
		for _, sel := range sels {
			decl.Class = sel.name
			decl.State = sel.state
			decl.Breakpoint = bp
			p.res.Declarations = append(p.res.Declarations, decl)
		}
	}
}

// parseClassSelectors accepts a comma-separated list of ".name" or
// ".name:state" selectors. Anything else yields a reason for raw routing.
func parseClassSelectors(toks []token) ([]classSel, string) {
	var sels []classSel
	var part []token
	flush := func() string {
		sel, ok := parseClassSelector(trimTrivia(part))
		part = part[:0]
		if !ok {
			return "unsupported selector"
		}
		sels = append(sels, sel)
		return ""
	}
	for _, t := range toks {
		if t.tt == css.CommaToken {
			if r := flush(); r != "" {
				return nil, r
			}
			continue
		}
		part = append(part, t)
	}
	if r := flush(); r != "" {
		return nil, r
	}
	return sels, ""
}

func parseClassSelector(toks []token) (classSel, bool) {
	if len(toks) != 2 && len(toks) != 4 {
		return classSel{}, false
	}
	if toks[0].tt != css.DelimToken || toks[0].text != "." || toks[1].tt != css.IdentToken {
		return classSel{}, false
	}
	sel := classSel{name: unescapeIdent(toks[1].text), state: StateDefault}
	if len(toks) == 4 {
		if toks[2].tt != css.ColonToken || toks[3].tt != css.IdentToken {
			return classSel{}, false
		}
		st, ok := ParsePseudoState(toks[3].text)
		if !ok || st == StateDefault {
			return classSel{}, false
		}
		sel.state = st
	}
	return sel, true
}

// unescapeIdent decodes CSS hex escapes ("\32 col" -> "2col") and
// single-character escapes.
func unescapeIdent(s string) string {
	if !strings.ContainsRune(s, '\\') {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] != '\\' || i+1 >= len(s) {
			b.WriteByte(s[i])
			continue
		}
		j := i + 1
		for j < len(s) && j-i <= 6 && isHex(s[j]) {
			j++
		}
		if j == i+1 {
			b.WriteByte(s[j])
			i = j
			continue
		}
		if n, err := strconv.ParseUint(s[i+1:j], 16, 32); err == nil {
			b.WriteRune(rune(n))
		}
		if j < len(s) && s[j] == ' ' {
			j++
		}
		i = j - 1
	}
	return b.String()
}

func isHex(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

// declarations splits a block body on ';' and returns the well-formed
// declarations in source order, reporting the rest.
func (p *importer) declarations(body []token) []ImportedDeclaration {
	var out []ImportedDeclaration
	depth := 0
	start := 0
	for i := 0; i <= len(body); i++ {
		if i < len(body) {
			switch body[i].tt {
			case css.LeftParenthesisToken, css.LeftBracketToken, css.FunctionToken:
				depth++
				continue
			case css.RightParenthesisToken, css.RightBracketToken:
				if depth > 0 {
					depth--
				}
				continue
			case css.SemicolonToken:
				if depth > 0 {
					continue
				}
			default:
				continue
			}
		}
		if d, ok := p.declaration(trimTrivia(body[start:i])); ok {
			out = append(out, d)
		}
		start = i + 1
	}
	return out
}

func (p *importer) declaration(toks []token) (ImportedDeclaration, bool) {
	if len(toks) == 0 {
		return ImportedDeclaration{}, false
	}
	text := joinTokens(toks)
	colon := -1
	for i, t := range toks {
		if t.tt == css.ColonToken {
			colon = i
			break
		}
	}
	if colon < 0 {
		p.issue(toks[0], LinterDeclaration, SeverityWarning, fmt.Sprintf(IssueMissingColon, text))
		return ImportedDeclaration{}, false
	}
	prop := strings.TrimSpace(joinTokens(toks[:colon]))
	value := strings.TrimSpace(joinTokens(trimTrivia(toks[colon+1:])))
	if prop == "" {
		p.issue(toks[0], LinterDeclaration, SeverityWarning, fmt.Sprintf(IssueEmptyProperty, text))
		return ImportedDeclaration{}, false
	}
	if value == "" {
		p.issue(toks[0], LinterDeclaration, SeverityWarning, fmt.Sprintf(IssueEmptyValue, prop))
		return ImportedDeclaration{}, false
	}
	return ImportedDeclaration{
		Property: FromCSSProperty(prop),
		Value:    value,
		Pos:      IssuePos{Filename: p.filename, Line: toks[0].line, Column: toks[0].col},
	}, true
}
