package heuristics

import "regexp"

// Rule pairs a column-name pattern with the description it produces.
type Rule struct {
	Pattern     *regexp.Regexp
	Description string
}

// rule anchors expr at the start of the name only, so ".*_id$" and
// "^id$" behave the same way they read.
func rule(expr, description string) Rule {
	return Rule{Pattern: regexp.MustCompile(`^(?:` + expr + `)`), Description: description}
}

// DefaultRules is the ordered rule list. Order matters: the first match wins,
// so broad patterns such as ".*name$" shadow narrower ones listed after them.
var DefaultRules = []Rule{
	// identifiers
	rule(`.*_id$`, "Unique identifier"),
	rule(`^id$`, "Primary key identifier"),

	// timestamps
	rule(`.*_at$`, "Timestamp indicating when the record was created or updated"),
	rule(`.*created.*`, "Timestamp when the record was created"),
	rule(`.*updated.*`, "Timestamp when the record was last updated"),
	rule(`.*date$`, "Date value"),
	rule(`.*time$`, "Time value"),
	rule(`.*datetime$`, "Date and time value"),

	// status
	rule(`.*status$`, "Status or state of the record"),
	rule(`.*state$`, "State of the record"),
	rule(`.*flag$`, "Boolean flag indicator"),
	rule(`.*active$`, "Whether the record is active"),

	// names
	rule(`.*name$`, "Name of the entity"),
	rule(`.*_name$`, "Name field"),
	rule(`^name$`, "Name"),
	rule(`.*title$`, "Title of the entity"),

	// contact
	rule(`.*email$`, "Email address"),
	rule(`.*phone$`, "Phone number"),
	rule(`.*address$`, "Address information"),

	// codes
	rule(`.*code$`, "Code or identifier"),
	rule(`.*_code$`, "Code value"),

	// quantities
	rule(`.*count$`, "Count or quantity"),
	rule(`.*amount$`, "Monetary amount"),
	rule(`.*price$`, "Price value"),
	rule(`.*cost$`, "Cost value"),
	rule(`.*total$`, "Total value"),
	rule(`.*quantity$`, "Quantity or count"),

	// free text
	rule(`.*description$`, "Description or details"),
	rule(`.*note$`, "Notes or comments"),
	rule(`.*comment$`, "Comments or remarks"),
	rule(`.*detail$`, "Detailed information"),

	// people
	rule(`.*user.*`, "User-related information"),
	rule(`.*person.*`, "Person-related information"),
	rule(`.*customer.*`, "Customer-related information"),
	rule(`.*client.*`, "Client-related information"),

	// classification
	rule(`.*type$`, "Type or category classification"),
	rule(`.*category$`, "Category classification"),
	rule(`.*class$`, "Classification"),

	// ordering
	rule(`.*order$`, "Order or sequence number"),
	rule(`.*rank$`, "Ranking or position"),
	rule(`.*sort$`, "Sort order"),

	// locations
	rule(`.*url$`, "URL or web address"),
	rule(`.*path$`, "File or directory path"),
	rule(`.*link$`, "Link or reference"),
}
