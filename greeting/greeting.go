// Package greeting turns the hosting page's query string into the invitation
// line shown over the animation.
package greeting

import (
	"net/url"
	"strings"
)

// NameParam is the query parameter carrying the guest's name.
const NameParam = "name"

// FromPageURL extracts the guest name from a page URL. Unparseable URLs and
// a missing parameter yield "".
func FromPageURL(raw string) string {
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return FromQuery(u.Query())
}

// FromQuery extracts the guest name from parsed query values, dropping one
// pair of surrounding double quotes.
func FromQuery(values url.Values) string {
	return Unquote(values.Get(NameParam))
}

// Unquote removes a single leading and trailing double quote when both are
// present.
func Unquote(name string) string {
	if len(name) >= 2 && strings.HasPrefix(name, `"`) && strings.HasSuffix(name, `"`) {
		return name[1 : len(name)-1]
	}
	return name
}

// Message is the invitation line for name, or "" when there is no name.
func Message(name string) string {
	if name == "" {
		return ""
	}
	return name + ", you are invited!"
}
