package tokenizer

import (
	"crittok/util"
	"encoding/json"
	"testing"
)

func TestLookup_joinAliases(t *testing.T) {
	for _, keyword := range []string{"join", "innerJoin", "outerJoin", "crossJoin", "leftJoin", "leftOuterJoin", "rightJoin", "rightOuterJoin", "fullOuterJoin"} {
		category, ok := Lookup(keyword)
		util.AssertTrue(t, ok)
		util.AssertEqual(t, CategoryJoin, category)
	}
}

func TestLookup_operators(t *testing.T) {
	for _, keyword := range []string{">", "<", "<>", "<=", ">=", "like"} {
		category, ok := Lookup(keyword)
		util.AssertTrue(t, ok)
		util.AssertEqual(t, CategoryOperator, category)
	}
}

func TestLookup_unknownKeyIsField(t *testing.T) {
	category, ok := Lookup("firstName")
	util.AssertFalse(t, ok)
	util.AssertEqual(t, CategoryUnknown, category)

	// Keywords are case-sensitive
	_, ok = Lookup("SELECT")
	util.AssertFalse(t, ok)
}

func TestIdentifiers_sortedByKeyword(t *testing.T) {
	// Act
	result := Identifiers()

	// Assert
	util.AssertEqual(t, len(identifiers), len(result))
	for i := 1; i < len(result); i++ {
		util.AssertTrue(t, result[i-1].Keyword < result[i].Keyword)
	}
	util.AssertEqual(t, Identifier{Keyword: "<", Category: CategoryOperator}, result[0])
}

func TestIdentifier_json(t *testing.T) {
	// Act
	jsonBytes, err := json.Marshal(Identifier{Keyword: "del", Category: CategoryDelete})

	// Assert
	util.AssertNil(t, err)
	util.AssertEqual(t, `{"keyword":"del","category":"DELETE"}`, string(jsonBytes))
}

func TestToken_json(t *testing.T) {
	// Act
	jsonBytes, err := json.Marshal([]Token{
		{Kind: TokenKindGroup, Value: 0},
		{Kind: TokenKindValue, Value: rec(field("b", 1), field("a", nil))},
	})

	// Assert
	util.AssertNil(t, err)
	util.AssertEqual(t, `[{"type":"GROUP","value":0},{"type":"VALUE","value":{"b":1,"a":null}}]`, string(jsonBytes))
}

func TestCategory_stringOfAllCategories(t *testing.T) {
	for category := CategorySelect; category <= CategoryOffset; category++ {
		util.AssertFalse(t, category.String() == "" || category.String()[0] == '!')
	}
	util.AssertEqual(t, "!! INVALID CATEGORY 999 !!", Category(999).String())
}
