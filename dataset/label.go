package dataset

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

// Label is a class identifier derived from a file name.
type Label string

// LabelRule derives a Label from a file's base name. It reports false for
// names that carry no label.
type LabelRule interface {
	Label(name string) (Label, bool)
}

// LabelRuleFunc adapts a function to LabelRule.
type LabelRuleFunc func(name string) (Label, bool)

// Label implements LabelRule.
func (f LabelRuleFunc) Label(name string) (Label, bool) { return f(name) }

// DefaultRule takes the token between the last '-' and the extension, so
// "*-<label>.<ext>" files are labeled <label>.
var DefaultRule LabelRule = LabelRuleFunc(func(name string) (Label, bool) {
	stem := strings.TrimSuffix(name, filepath.Ext(name))
	i := strings.LastIndexByte(stem, '-')
	if i < 0 || i == len(stem)-1 {
		return "", false
	}
	return Label(stem[i+1:]), true
})

type regexpRule struct {
	re *regexp.Regexp
}

// RegexpRule labels names with the first capture group of pattern. The
// pattern must match the whole base name.
func RegexpRule(pattern string) (LabelRule, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("dataset: invalid label pattern %q: %w", pattern, err)
	}
	if re.NumSubexp() < 1 {
		return nil, fmt.Errorf("dataset: label pattern %q has no capture group", pattern)
	}
	return regexpRule{re: re}, nil
}

func (r regexpRule) Label(name string) (Label, bool) {
	loc := r.re.FindStringSubmatchIndex(name)
	if loc == nil || loc[0] != 0 || loc[1] != len(name) || loc[2] < 0 || loc[2] == loc[3] {
		return "", false
	}
	return Label(name[loc[2]:loc[3]]), true
}

// SeedLabels returns the labels "0" through "n-1".
func SeedLabels(n int) []Label {
	out := make([]Label, 0, max(n, 0))
	for i := range n {
		out = append(out, Label(strconv.Itoa(i)))
	}
	return out
}
