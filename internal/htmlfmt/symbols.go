package htmlfmt

import (
	"html"
	"strings"
)

// symbols converts ligatures and escaped special characters to plain text
var symbols = strings.NewReplacer(
	"---", "—",
	"--", "–",
	"<<", "«",
	">>", "»",
	"``", "“",
	"''", "”",
	"~", " ",
	"\\%", "%",
	"\\&", "&",
	"\\_", "_",
	"\\#", "#",
	"\\$", "$",
	"\\{", "{",
	"\\}", "}",
)

// text converts plain LaTeX text (no commands) to escaped HTML
func text(s string) string {
	return html.EscapeString(symbols.Replace(s))
}
