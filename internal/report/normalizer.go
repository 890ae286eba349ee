package report

import (
	"regexp"
	"strings"
)

// substitution is a single ordered text replacement. Later substitutions see
// the output of earlier ones, so the table order is part of the contract.
type substitution struct {
	old string
	new string
}

// simplifications rewrites formal legal phrasing into plain Hebrew. These are
// configuration data carried over verbatim from the source material, not
// logic; do not reorder.
var simplifications = []substitution{
	{old: "יש ל", new: "צריך"},       // formal imperative -> plain "need to"
	{old: "החובה ", new: ""},         // "the obligation " preface
	{old: "על פי התקנות", new: ""},   // "according to the regulations" citation
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// Normalize simplifies an obligation's legal phrasing, collapses consecutive
// whitespace into single spaces, and trims the result. Normalize is
// idempotent: no substitution re-triggers itself or an earlier one.
func Normalize(obligation string) string {
	s := obligation
	for _, sub := range simplifications {
		s = strings.ReplaceAll(s, sub.old, sub.new)
	}
	s = whitespaceRun.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
