package shindan

import (
	"fmt"

	"github.com/PuerkitoBio/goquery"
)

// hidden inputs the submission form carries. _token is the
// anti-forgery token tied to the _session cookie issued on the GET,
// the rest ride along with whatever value the form declares.
var hiddenFields = []string{"_token", "randname", "type"}

// form field the user's input is submitted under.
const inputFieldName = "user_input_value_1"

// extractFormData collects the complete set of name/value pairs a
// submission POST needs: the declared hidden fields, the user input,
// and one copy of the input per parts[...] input for multi-part
// shindans. Pure over the parsed document.
func extractFormData(doc *goquery.Document, input string) (map[string]string, error) {
	form := make(map[string]string, len(hiddenFields)+1)

	for _, field := range hiddenFields {
		value := doc.Find(fmt.Sprintf("input[name=%s]", field)).AttrOr("value", "")
		if field == "_token" && value == "" {
			return nil, fmt.Errorf("%w: input[name=_token]", ErrTokenNotFound)
		}
		form[field] = value
	}

	form[inputFieldName] = input

	doc.Find(selPartsInputs).Each(func(_ int, sel *goquery.Selection) {
		if name, ok := sel.Attr("name"); ok {
			form[name] = input
		}
	})

	return form, nil
}
