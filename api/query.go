package api

// Query is a compiled element locator: a location strategy plus the value
// the driver evaluates against it.
type Query struct {
	Using string `json:"using"`
	Value string `json:"value"`
}

// Location strategies understood by wire-protocol drivers.
const (
	UsingCSSSelector = "css selector"
	UsingXPath       = "xpath"
	UsingLinkText    = "link text"
	UsingTagName     = "tag name"
)

// CSS compiles a CSS selector into a query.
func CSS(selector string) Query {
	return Query{Using: UsingCSSSelector, Value: selector}
}

// XPath compiles an XPath expression into a query.
func XPath(expression string) Query {
	return Query{Using: UsingXPath, Value: expression}
}

// LinkText compiles an exact link-text match into a query.
func LinkText(text string) Query {
	return Query{Using: UsingLinkText, Value: text}
}

// TagName compiles a tag-name match into a query.
func TagName(name string) Query {
	return Query{Using: UsingTagName, Value: name}
}
