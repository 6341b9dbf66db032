package sysconfig

import (
	"path/filepath"
	"strings"
)

// DefaultDir is where instance sysconfig files live.
const DefaultDir = "/etc/sysconfig"

// Path returns the sysconfig file of an instance. The name is not escaped or
// validated.
func Path(dir, instance string) string {
	return filepath.Join(dir, instance)
}

// Rule classifies lines starting with Prefix. A matching line is dropped when
// Drop is set and replaced by Replacement otherwise. Replacement must carry
// its own line terminator.
type Rule struct {
	Prefix      string
	Replacement string
	Drop        bool
}

// Result summarizes a rewrite.
type Result struct {
	// Lines is the number of input lines.
	Lines int
	// Removed counts lines matched by a Drop rule.
	Removed int
	// Replaced counts lines matched by a replacing rule, including lines
	// that were already equal to their replacement.
	Replaced int
	// Changed is false when the output is byte-identical to the input.
	// RewriteFile does not write the file in that case.
	Changed bool
}

// match returns the first rule whose prefix starts line.
func match(line string, rules []Rule) (Rule, bool) {
	for _, r := range rules {
		if strings.HasPrefix(line, r.Prefix) {
			return r, true
		}
	}
	return Rule{}, false
}

// Rewrite maps lines through rules. Unmatched lines are copied unchanged. The
// output never has more lines than the input.
func Rewrite(lines []string, rules []Rule) ([]string, Result) {
	res := Result{Lines: len(lines)}
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		rule, ok := match(line, rules)
		switch {
		case !ok:
			out = append(out, line)
		case rule.Drop:
			res.Removed++
			res.Changed = true
		default:
			res.Replaced++
			if rule.Replacement != line {
				res.Changed = true
			}
			out = append(out, rule.Replacement)
		}
	}
	return out, res
}
