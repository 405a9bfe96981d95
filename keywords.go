package queryparser

import (
	"fmt"
	"strconv"
	"strings"
)

// DictionaryError is a construction-time failure in a hand-built
// keyword dictionary — never raised by Parse against user input. It
// mirrors pgraph/internal/dsl's SyntaxError{Kind, Message} shape for
// the one place in this package that has a legitimate typed error.
type DictionaryError struct {
	Kind    string
	Message string
}

func (e DictionaryError) Error() string {
	return fmt.Sprintf("keyword dictionary error (%s): %s", e.Kind, e.Message)
}

// dictionary is the immutable alias→canonical keyword mapping plus the
// set of nestable relation names, per §4.1. The zero value is usable
// (empty dictionary); newDictionary validates a caller-supplied one.
type dictionary struct {
	aliases  map[string]string
	nestable map[string]bool
}

// defaultAliases is the corpus-required alias table from §4.1. Resolved
// case-insensitively.
var defaultAliases = map[string]string{
	"a":             "author",
	"au":            "author",
	"author":        "author",
	"t":             "title",
	"ti":            "title",
	"title":         "title",
	"j":             "journal",
	"journal":       "journal",
	"d":             "date",
	"date":          "date",
	"du":            "date-updated",
	"cn":            "collaboration",
	"collaboration": "collaboration",
	"tc":            "type-code",
	"type-code":     "type-code",
	"ac":            "exact-author", // overridden per-query by resolveAC; see resolveKeyword
	"exactauthor":   "exact-author",
	"exact-author":  "exact-author",
	"cited":         "topcite",
	"topcite":       "topcite",
	"reference":     "cite",
	"cite":          "cite",
	"fulltext":      "fulltext",
	"recid":         "recid",
	"vol":           "volume",
	"volume":        "volume",
}

// nestableRelations is the exact set from §4.1; these names are their
// own canonical identifiers and are never rewritten by normalization.
var nestableRelations = map[string]bool{
	"citedby":   true,
	"refersto":  true,
	"citedbyx":  true,
	"referstox": true,
}

// defaultDictionary is the package-level dictionary every parse uses.
// Built once at init via a Must-style constructor: a dictionary whose
// alias table collides with a nestable-relation name is a programmer
// error in the dictionary, not a user-input problem, so it panics here
// rather than surfacing through Parse — the same division of labor as
// participle.MustBuild panicking on a malformed grammar while
// ParseString returns an error for malformed input.
var defaultDictionary = mustNewDictionary(defaultAliases, nestableRelations)

func mustNewDictionary(aliases map[string]string, nestable map[string]bool) *dictionary {
	d, err := newDictionary(aliases, nestable)
	if err != nil {
		panic(err)
	}
	return d
}

func newDictionary(aliases map[string]string, nestable map[string]bool) (*dictionary, error) {
	for alias := range aliases {
		if nestable[strings.ToLower(alias)] {
			return nil, DictionaryError{
				Kind:    "AliasCollidesWithNestable",
				Message: fmt.Sprintf("alias %q is also registered as a nestable relation", alias),
			}
		}
	}
	return &dictionary{aliases: aliases, nestable: nestable}, nil
}

// lookup resolves a surface spelling (case-insensitively) to its
// canonical keyword id. ok is false for unrecognized keys, in which case
// the raw spelling must be kept unmodified in the tree (§4.7).
func (d *dictionary) lookup(raw string) (canonical string, ok bool) {
	canonical, ok = d.aliases[strings.ToLower(raw)]
	return canonical, ok
}

// isNestable reports whether raw names one of the recognized relations.
func (d *dictionary) isNestable(raw string) bool {
	return d.nestable[strings.ToLower(raw)]
}

// isAlias reports whether raw is a recognized keyword alias at all,
// without resolving it — used by the grammar engine to decide whether a
// candidate fragment "looks like a keyword" while backtracking (§4.5).
func (d *dictionary) isAlias(raw string) bool {
	_, ok := d.aliases[strings.ToLower(raw)]
	return ok
}

// resolveAC implements the single deterministic rule §4.1 asks for: "ac"
// is author-count when nextValueToken, with one trailing "+" removed,
// is a base-10 integer; otherwise it is exact-author. resolveKeyword
// passes the operand after a leading comparison operator as
// nextValueToken. Only the spelling "ac" is matched: "exactauthor" and
// "exact-author" resolve through the alias table. Every other alias has
// one meaning.
func (d *dictionary) resolveAC(aliasText string, nextValueToken string) (canonical string, matched bool) {
	if strings.ToLower(aliasText) != "ac" {
		return "", false
	}
	if _, err := strconv.ParseInt(strings.TrimSuffix(nextValueToken, "+"), 10, 64); err == nil {
		return "author-count", true
	}
	return "exact-author", true
}
