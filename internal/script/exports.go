// Package script extracts the symbols a shell configuration snippet
// defines: aliases, function names, and exported variable names.
//
// Extraction is deliberately line-oriented and regex-driven. Multi-line
// constructs, heredocs, and quoting that spans lines are not handled;
// each physical line is classified independently. This bounds correctness
// to the common single-line forms and is a stated precision limit, not
// something to fix with a full shell grammar.
package script

import (
	"regexp"
	"sort"
	"strings"
)

// Line patterns for the three recognized definition forms.
var (
	// alias name=...
	aliasRe = regexp.MustCompile(`^\s*alias\s+([a-zA-Z0-9_-]+)=`)

	// name() { ...   or   function name() { ...
	funcParenRe = regexp.MustCompile(`^\s*(?:function\s+)?([a-zA-Z0-9_-]+)\s*\(\s*\)\s*\{`)

	// function name { ...  (no parentheses)
	funcKeywordRe = regexp.MustCompile(`^\s*function\s+([a-zA-Z0-9_-]+)\s*\{`)

	// export NAME=...  or  export NAME
	exportRe = regexp.MustCompile(`^\s*export\s+([a-zA-Z_][a-zA-Z0-9_]*)\s*(=|$)`)
)

// ExportSet is the deduplicated, sorted set of symbols a script defines,
// split by symbol kind. Names are case-sensitive.
type ExportSet struct {
	Aliases   []string `json:"aliases"`
	Functions []string `json:"functions"`
	Variables []string `json:"variables"`
}

// Empty reports whether the set contains no symbols of any kind.
func (e ExportSet) Empty() bool {
	return len(e.Aliases) == 0 && len(e.Functions) == 0 && len(e.Variables) == 0
}

// Count returns the total number of symbols across all kinds.
func (e ExportSet) Count() int {
	return len(e.Aliases) + len(e.Functions) + len(e.Variables)
}

// Extract parses raw script text and returns the set of defined symbols.
//
// Each line matches at most one form; forms are tried in a fixed order
// (alias, function, export) so a line is never double-classified.
// Unmatched lines are ignored and extraction never fails. Running
// Extract twice on identical text yields an identical ExportSet.
func Extract(text string) ExportSet {
	aliases := map[string]struct{}{}
	functions := map[string]struct{}{}
	variables := map[string]struct{}{}

	for _, line := range strings.Split(text, "\n") {
		line = stripComment(line)

		if m := aliasRe.FindStringSubmatch(line); m != nil {
			aliases[m[1]] = struct{}{}
			continue
		}
		if m := funcParenRe.FindStringSubmatch(line); m != nil {
			functions[m[1]] = struct{}{}
			continue
		}
		if m := funcKeywordRe.FindStringSubmatch(line); m != nil {
			functions[m[1]] = struct{}{}
			continue
		}
		if m := exportRe.FindStringSubmatch(line); m != nil {
			variables[m[1]] = struct{}{}
		}
	}

	return ExportSet{
		Aliases:   sortedKeys(aliases),
		Functions: sortedKeys(functions),
		Variables: sortedKeys(variables),
	}
}

// stripComment drops a trailing "# ..." comment, but only on lines that
// contain no quote characters. A # inside a quoted string is data, and
// without tracking quoting state across the line the safe move is to
// leave such lines untouched.
func stripComment(line string) string {
	if !strings.Contains(line, "#") {
		return line
	}
	if strings.ContainsAny(line, `"'`) {
		return line
	}
	return strings.SplitN(line, "#", 2)[0]
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
