package shindan

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// standalone shell the result fragment is embedded into. Tokens:
// __SHINDAN_BASE__, <!-- TITLE_AND_RESULT -->, <!-- SCRIPTS -->.
//
//go:embed template.html
var resultTemplate string

const (
	selTitleAndResult = "#title_and_result"
	selEffectsTyping  = "span.shindanEffects[data-mode=ef_typing]"
	selEffectsShuffle = "span.shindanEffects[data-mode=ef_shuffle]"
)

// buildResultHTML lifts the #title_and_result fragment out of a
// result page and embeds it into a self-contained document that can
// be loaded without the rest of the site. Script-driven reveal
// effects are flattened to their <noscript> fallback since the shell
// runs without the service's javascript.
func buildResultHTML(id, resultHtml, baseUrl string) (string, error) {
	doc, err := parseDocument(resultHtml)
	if err != nil {
		return "", err
	}

	sel := doc.Find(selTitleAndResult)
	if sel.Length() == 0 {
		return "", fmt.Errorf("%w: missing %s element", ErrParse, selTitleAndResult)
	}
	fragment, err := goquery.OuterHtml(sel.First())
	if err != nil {
		return "", err
	}

	for _, effectsSel := range []string{selEffectsTyping, selEffectsShuffle} {
		doc.Find(effectsSel).Each(func(_ int, effect *goquery.Selection) {
			next := effect.Next()
			if !next.Is("noscript") {
				return
			}
			effectHtml, err := goquery.OuterHtml(effect)
			if err != nil {
				return
			}
			noscriptHtml, err := goquery.OuterHtml(next)
			if err != nil {
				return
			}
			inner, err := next.Html()
			if err != nil {
				return
			}
			fragment = strings.Replace(fragment, effectHtml, "", 1)
			fragment = strings.Replace(fragment, noscriptHtml, inner, 1)
		})
	}

	html := resultTemplate
	html = strings.ReplaceAll(html, "__SHINDAN_BASE__", baseUrl)
	html = strings.Replace(html, "<!-- TITLE_AND_RESULT -->", fragment, 1)

	// chart results need the service's chart bootstrap plus the
	// per-shindan inline script that carries the chart data
	if strings.Contains(resultHtml, "chart.js") {
		shindanScript, err := findShindanScript(doc, id)
		if err != nil {
			return "", err
		}
		scripts := strings.Join([]string{
			fmt.Sprintf(`<script src="%sjs/app.js" defer></script>`, baseUrl),
			fmt.Sprintf(`<script src="%sjs/chart.js" defer></script>`, baseUrl),
			shindanScript,
		}, "\n")
		html = strings.Replace(html, "<!-- SCRIPTS -->", scripts, 1)
	}

	return html, nil
}

// findShindanScript locates the inline script that references the
// shindan id, which is the one holding the result's chart data.
func findShindanScript(doc *goquery.Document, id string) (string, error) {
	var found string
	doc.Find("script").EachWithBreak(func(_ int, script *goquery.Selection) bool {
		outer, err := goquery.OuterHtml(script)
		if err != nil {
			return true
		}
		if strings.Contains(outer, id) {
			found = outer
			return false
		}
		return true
	})
	if found == "" {
		return "", fmt.Errorf("%w: no script referencing shindan %s", ErrParse, id)
	}
	return found, nil
}
