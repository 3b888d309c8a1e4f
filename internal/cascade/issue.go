package cascade

// Issue is one finding of the stylesheet validation pass, shaped like a
// golangci-lint issue so existing tooling can consume it.
type Issue struct {
	FromLinter  string   `json:"FromLinter"` // "csssyntax", "cssdecl", "cssraw"
	Text        string   `json:"Text"`
	Severity    string   `json:"Severity"` // "", "warning", "error"
	SourceLines []string `json:"SourceLines"`
	Pos         IssuePos `json:"Pos"`
}

// IssuePos is a 1-based position in a stylesheet.
type IssuePos struct {
	Filename string `json:"Filename"`
	Line     int    `json:"Line"`
	Column   int    `json:"Column"`
}

// Issue severities
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
	SeverityInfo    = ""
)

// Linter names
const (
	LinterSyntax      = "csssyntax"
	LinterDeclaration = "cssdecl"
	LinterRaw         = "cssraw"
)

// Issue texts
const (
	IssueUnexpectedClose = "unexpected '}' without matching '{'"
	IssueUnclosedBlock   = "block opened here is never closed"
	IssueMissingBlock    = "expected '{' after selector %q"
	IssueEmptyProperty   = "declaration %q has an empty property name"
	IssueEmptyValue      = "property %q has an empty value"
	IssueMissingColon    = "declaration %q is missing ':'"
	IssueRawRule         = "%s; kept as raw override"
)
