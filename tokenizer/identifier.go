package tokenizer

import (
	"encoding/json"
	"fmt"
	"sort"
)

// Category is the clause a known keyword of a criteria document belongs to.
type Category int

const (
	CategoryUnknown Category = iota

	CategorySelect
	CategoryDistinct
	CategoryFrom
	CategoryWhere

	CategoryInsert
	CategoryInto
	CategoryUpdate
	CategoryUsing
	CategoryDelete

	CategoryNot
	CategoryIn
	CategoryOr
	CategoryOperator

	CategoryJoin

	CategoryGroupBy
	CategoryOrderBy

	CategoryCount
	CategoryMin
	CategoryMax
	CategorySum
	CategoryAvg

	CategoryLimit
	CategoryOffset
)

func (c Category) String() string {
	switch c {
	case CategoryUnknown:
		return "UNKNOWN"
	case CategorySelect:
		return "SELECT"
	case CategoryDistinct:
		return "DISTINCT"
	case CategoryFrom:
		return "FROM"
	case CategoryWhere:
		return "WHERE"
	case CategoryInsert:
		return "INSERT"
	case CategoryInto:
		return "INTO"
	case CategoryUpdate:
		return "UPDATE"
	case CategoryUsing:
		return "USING"
	case CategoryDelete:
		return "DELETE"
	case CategoryNot:
		return "NOT"
	case CategoryIn:
		return "IN"
	case CategoryOr:
		return "OR"
	case CategoryOperator:
		return "OPERATOR"
	case CategoryJoin:
		return "JOIN"
	case CategoryGroupBy:
		return "GROUPBY"
	case CategoryOrderBy:
		return "ORDERBY"
	case CategoryCount:
		return "COUNT"
	case CategoryMin:
		return "MIN"
	case CategoryMax:
		return "MAX"
	case CategorySum:
		return "SUM"
	case CategoryAvg:
		return "AVG"
	case CategoryLimit:
		return "LIMIT"
	case CategoryOffset:
		return "OFFSET"
	}
	return fmt.Sprintf("!! INVALID CATEGORY %d !!", c)
}

func (c Category) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

var identifiers = map[string]Category{
	"select":   CategorySelect,
	"distinct": CategoryDistinct,
	"from":     CategoryFrom,
	"where":    CategoryWhere,

	"insert": CategoryInsert,
	"into":   CategoryInto,
	"update": CategoryUpdate,
	"using":  CategoryUsing,
	"del":    CategoryDelete,

	"not": CategoryNot,
	"in":  CategoryIn,
	"or":  CategoryOr,

	">":    CategoryOperator,
	"<":    CategoryOperator,
	"<>":   CategoryOperator,
	"<=":   CategoryOperator,
	">=":   CategoryOperator,
	"like": CategoryOperator,

	// All join kinds share one handler, the keyword itself tells the consumer which kind of join it is.
	"join":           CategoryJoin,
	"innerJoin":      CategoryJoin,
	"outerJoin":      CategoryJoin,
	"crossJoin":      CategoryJoin,
	"leftJoin":       CategoryJoin,
	"leftOuterJoin":  CategoryJoin,
	"rightJoin":      CategoryJoin,
	"rightOuterJoin": CategoryJoin,
	"fullOuterJoin":  CategoryJoin,

	"groupBy": CategoryGroupBy,
	"orderBy": CategoryOrderBy,

	"count": CategoryCount,
	"min":   CategoryMin,
	"max":   CategoryMax,
	"sum":   CategorySum,
	"avg":   CategoryAvg,

	"limit":  CategoryLimit,
	"offset": CategoryOffset,
}

// Lookup returns the category of the given keyword. The boolean is false for all keys that are no known keyword, which
// are then treated as field names.
func Lookup(key string) (Category, bool) {
	category, ok := identifiers[key]
	return category, ok
}

type Identifier struct {
	Keyword  string   `json:"keyword"`
	Category Category `json:"category"`
}

// Identifiers returns all known keywords sorted by keyword.
func Identifiers() []Identifier {
	var result []Identifier
	for keyword, category := range identifiers {
		result = append(result, Identifier{Keyword: keyword, Category: category})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Keyword < result[j].Keyword
	})

	return result
}
