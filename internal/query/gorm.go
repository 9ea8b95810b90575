package query

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// likeEscape is the LIKE escape character. A backslash is not portable because
// MySQL treats it as a string escape inside the ESCAPE clause.
const likeEscape = "!"

var likeReplacer = strings.NewReplacer(
	likeEscape, likeEscape+likeEscape,
	"%", likeEscape+"%",
	"_", likeEscape+"_",
	"[", likeEscape+"[",
)

// LikePattern returns a case-folded LIKE pattern matching s as a literal substring
func LikePattern(s string) string {
	return "%" + likeReplacer.Replace(strings.ToLower(s)) + "%"
}

// FoldsCase reports whether the dialect's LOWER folds non-ASCII letters.
// SQLite's built-in LOWER only folds ASCII.
func FoldsCase(dialect string) bool {
	return dialect != "sqlite"
}

// Scope applies the filter to a GORM query. On a dialect without Unicode
// case folding, apply WithoutSearch().Scope and finish with Matches.
func (f Filter) Scope(db *gorm.DB) *gorm.DB {
	if f.Category != nil {
		db = db.Where("category = ?", *f.Category)
	}
	if f.Enabled != nil {
		db = db.Where("enabled = ?", *f.Enabled)
	}
	if f.Search != "" {
		pattern := LikePattern(f.Search)
		match := "LOWER(%s) LIKE ? ESCAPE '" + likeEscape + "'"
		if db.Dialector.Name() == "postgres" {
			match = "%s ILIKE ? ESCAPE '" + likeEscape + "'"
		}
		clauses := make([]string, len(SearchFields))
		args := make([]interface{}, len(SearchFields))
		for i, field := range SearchFields {
			clauses[i] = fmt.Sprintf(match, field)
			args[i] = pattern
		}
		db = db.Where("("+strings.Join(clauses, " OR ")+")", args...)
	}
	return db
}

// PageScope applies the sort order and window to a GORM query
func (p Page) PageScope(db *gorm.DB) *gorm.DB {
	return db.Order(SortCreatedDesc).Offset(p.Skip()).Limit(p.Limit)
}
