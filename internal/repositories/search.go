package repositories

import "strings"

// likeEscaper neutralizes LIKE metacharacters in user-supplied search terms.
// MySQL treats backslash as the escape character by default.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds a LIKE pattern matching rows whose column contains
// the term as a literal substring
func containsPattern(term string) string {
	return "%" + likeEscaper.Replace(term) + "%"
}
