package climb

// ruleKind selects the expansion strategy for one parent node type.
type ruleKind int

const (
	// fallbackRule expands to the whole parent. It is the zero value, so
	// every node type absent from the table gets it, which is what makes
	// climbing terminate at the root for arbitrary constructs.
	fallbackRule ruleKind = iota
	// delimitedList is a bracketed, comma-separated construct.
	delimitedList
	// braceBlock is a brace-delimited statement or match-arm block.
	braceBlock
)

// rule carries only what its strategy needs: the delimiter token types for
// lists and blocks, and whether a single-element form is a grammar
// impossibility (parenthesized one-element tuples do not parse).
type rule struct {
	kind        ruleKind
	open, close string
	tupleForm   bool
}

const commaToken = ","

// rules maps tree-sitter-rust node types to their expansion strategy.
// Supporting another grammar means supplying another table, not new logic.
var rules = map[string]rule{
	"tuple_expression": {kind: delimitedList, open: "(", close: ")", tupleForm: true},
	"tuple_type":       {kind: delimitedList, open: "(", close: ")", tupleForm: true},
	"tuple_pattern":    {kind: delimitedList, open: "(", close: ")"},
	"arguments":        {kind: delimitedList, open: "(", close: ")"},
	"parameters":       {kind: delimitedList, open: "(", close: ")"},
	"type_arguments":   {kind: delimitedList, open: "<", close: ">"},
	"array_expression": {kind: delimitedList, open: "[", close: "]"},

	"field_initializer_list": {kind: delimitedList, open: "{", close: "}"},
	"field_declaration_list": {kind: delimitedList, open: "{", close: "}"},

	"block":       {kind: braceBlock, open: "{", close: "}"},
	"match_block": {kind: braceBlock, open: "{", close: "}"},
}
