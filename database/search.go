package database

import (
	"context"
	"sort"
	"strings"

	"gorm.io/gorm/clause"

	"github.com/rpupo63/portfolio-site/errs"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// likePattern turns a user term into a lowercase "contains" pattern with LIKE wildcards escaped.
func likePattern(term string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(term)) + "%"
}

// containsExpr matches column case-insensitively against a likePattern.
func containsExpr(column, pattern string) clause.Expression {
	return clause.Expr{
		SQL:  `LOWER(?) LIKE ? ESCAPE '\'`,
		Vars: []interface{}{clause.Column{Name: column}, pattern},
	}
}

// SearchOptions drives the generic admin listing. Column names must already be whitelisted by the caller.
type SearchOptions struct {
	Term          string
	SearchColumns []string
	Filters       map[string]interface{}
	// Order lists column names; a leading "-" sorts descending.
	Order    []string
	Links    []LinkFilter
	Preloads []string
	Limit    int
}

// LinkFilter keeps rows linked to TargetID through a many-to-many join table.
type LinkFilter struct {
	Table     string
	OwnerKey  string
	TargetKey string
	TargetID  uint
}

// Search loads rows of model into dest. The term is matched as a case-insensitive substring of any
// search column; filters are ANDed equality checks.
func (d Database) Search(ctx context.Context, dest interface{}, model interface{}, opts SearchOptions) error {
	q := d.db.WithContext(ctx).Model(model)
	for _, preload := range opts.Preloads {
		q = q.Preload(preload)
	}

	if term := strings.TrimSpace(opts.Term); term != "" && len(opts.SearchColumns) > 0 {
		pattern := likePattern(term)
		exprs := make([]clause.Expression, 0, len(opts.SearchColumns))
		for _, column := range opts.SearchColumns {
			exprs = append(exprs, containsExpr(column, pattern))
		}
		q = q.Clauses(clause.Where{Exprs: []clause.Expression{clause.Or(exprs...)}})
	}

	columns := make([]string, 0, len(opts.Filters))
	for column := range opts.Filters {
		columns = append(columns, column)
	}
	sort.Strings(columns)
	for _, column := range columns {
		q = q.Clauses(clause.Where{Exprs: []clause.Expression{
			clause.Eq{Column: clause.Column{Name: column}, Value: opts.Filters[column]},
		}})
	}

	for _, link := range opts.Links {
		linked := d.db.Table(link.Table).
			Select(link.OwnerKey).
			Where(clause.Eq{Column: clause.Column{Name: link.TargetKey}, Value: link.TargetID})
		q = q.Where("id IN (?)", linked)
	}

	for _, order := range opts.Order {
		q = q.Order(clause.OrderByColumn{
			Column: clause.Column{Name: strings.TrimPrefix(order, "-")},
			Desc:   strings.HasPrefix(order, "-"),
		})
	}
	if opts.Limit > 0 {
		q = q.Limit(opts.Limit)
	}

	if err := q.Find(dest).Error; err != nil {
		return errs.NewDatabaseError("search", "records", err)
	}
	return nil
}
