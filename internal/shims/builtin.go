package shims

import (
	"errors"
	"regexp"
	"strings"
)

// Built-in patchers for syntax removed from the target runtime.
// Manifest shim specs reference these by id.
var builtinPatchers = map[string]ApplyFunc{
	"execfile-compat": applyExecfileCompat,
	"print-function":  applyPrintFunction,
	"string-types":    applyStringTypes,
}

// execfileCall matches execfile calls whose argument carries no nested
// parentheses. Calls with nested parentheses cannot be rewritten
// textually with confidence and are reported instead.
var execfileCall = regexp.MustCompile(`\bexecfile\(\s*([^()]+?)\s*\)`)

// applyExecfileCompat rewrites execfile(path) to exec(open(path).read()).
// Structurally idempotent: a patched artifact contains no execfile
// calls, so a second pass is a no-op.
func applyExecfileCompat(content string) (string, error) {
	if !strings.Contains(content, "execfile") {
		return content, nil
	}
	patched := execfileCall.ReplaceAllString(content, "exec(open($1).read())")
	if strings.Contains(patched, "execfile(") {
		return "", errors.New("execfile call with nested parentheses")
	}
	return patched, nil
}

const printFunctionImport = "from __future__ import print_function"

// applyPrintFunction prepends the print_function future import,
// keeping any shebang or coding line first. The import line itself is
// the idempotence marker.
func applyPrintFunction(content string) (string, error) {
	if strings.Contains(content, printFunctionImport) {
		return content, nil
	}
	lines := strings.Split(content, "\n")
	insert := 0
	for insert < len(lines) {
		line := strings.TrimSpace(lines[insert])
		if strings.HasPrefix(line, "#!") || strings.HasPrefix(line, "# -*-") {
			insert++
			continue
		}
		break
	}
	patched := make([]string, 0, len(lines)+1)
	patched = append(patched, lines[:insert]...)
	patched = append(patched, printFunctionImport)
	patched = append(patched, lines[insert:]...)
	return strings.Join(patched, "\n"), nil
}

var basestringRef = regexp.MustCompile(`\bbasestring\b`)

// applyStringTypes rewrites the removed basestring builtin to str.
// Idempotent: a patched artifact has no basestring references left.
func applyStringTypes(content string) (string, error) {
	if !basestringRef.MatchString(content) {
		return content, nil
	}
	return basestringRef.ReplaceAllString(content, "str"), nil
}
