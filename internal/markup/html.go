package markup

import (
	"go/doc/comment"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"
)

// tailwindClasses maps tags to the classes that restore typography removed
// by tailwind's preflight reset.
var tailwindClasses = []struct {
	selector string
	classes  string
}{
	{"h1", "text-5xl mb-4 mt-6"},
	{"h2", "text-4xl mb-3 mt-5"},
	{"h3", "text-3xl mb-2 mt-4"},
	{"h4", "text-2xl mb-1 mt-3"},
	{"h5", "text-1xl mb-0.5 mt-2"},
	{"a", "underline text-blue-600 hover:text-blue-800 visited:text-purple-600"},
	{"ul", "list-disc ml-6"},
	{"ol", "list-decimal ml-6"},
	{"p", "mb-2"},
	{"code", "bg-gray-100 px-1 rounded"},
	{"pre", "p-2 rounded overflow-auto"},
}

var ugcPolicy = bluemonday.UGCPolicy()

// ApplyTailwind adds tailwind typography classes to an HTML fragment.
// Classes already present are kept. Code inside pre blocks is left alone.
func ApplyTailwind(fragment string) string {
	body, ok := parseFragment(fragment)
	if !ok {
		return fragment
	}
	for _, rule := range tailwindClasses {
		body.Find(rule.selector).Each(func(_ int, s *goquery.Selection) {
			if rule.selector == "code" && s.ParentsFiltered("pre").Length() > 0 {
				return
			}
			s.AddClass(strings.Fields(rule.classes)...)
			// AddClass leaves a double space after existing classes.
			if v, ok := s.Attr("class"); ok {
				s.SetAttr("class", strings.Join(strings.Fields(v), " "))
			}
		})
	}
	return fragmentHTML(body, fragment)
}

// PromoteHeading turns the first paragraph of an HTML fragment into a
// heading with the given tag, keeping its inner HTML.
func PromoteHeading(fragment, tag string) string {
	body, ok := parseFragment(fragment)
	if !ok {
		return fragment
	}
	first := body.Find("p").First()
	if first.Length() == 0 {
		return fragment
	}
	inner, err := first.Html()
	if err != nil {
		return fragment
	}
	first.ReplaceWithHtml("<" + tag + ">" + inner + "</" + tag + ">")
	return fragmentHTML(body, fragment)
}

// DocHTML converts a Go doc comment to HTML.
func DocHTML(text string) string {
	var p comment.Parser
	var pr comment.Printer
	pr.HeadingLevel = 4
	return strings.TrimSpace(string(pr.HTML(p.Parse(text))))
}

// DocSummary renders a doc comment for display: the first paragraph becomes
// an h3 heading, the rest stays body text, and tailwind classes are applied.
func DocSummary(text string) string {
	return ApplyTailwind(PromoteHeading(DocHTML(text), "h3"))
}

// Sanitize strips scripts, event handlers and other unsafe markup.
func Sanitize(fragment string) string {
	return ugcPolicy.Sanitize(fragment)
}

// PlainText returns the text content of an HTML fragment with whitespace
// collapsed. Text inside script and style elements is dropped.
func PlainText(fragment string) string {
	z := html.NewTokenizer(strings.NewReader(fragment))
	var b strings.Builder
	skip := 0
	for {
		switch z.Next() {
		case html.ErrorToken:
			// io.EOF or a malformed tail; either way keep what was read.
			return strings.Join(strings.Fields(b.String()), " ")
		case html.StartTagToken:
			name, _ := z.TagName()
			if string(name) == "script" || string(name) == "style" {
				skip++
			}
			b.WriteByte(' ')
		case html.EndTagToken:
			name, _ := z.TagName()
			if (string(name) == "script" || string(name) == "style") && skip > 0 {
				skip--
			}
			b.WriteByte(' ')
		case html.TextToken:
			if skip == 0 {
				b.Write(z.Text())
			}
		}
	}
}

// Summary returns PlainText truncated to at most limit runes.
func Summary(fragment string, limit int) string {
	text := PlainText(fragment)
	runes := []rune(text)
	if limit <= 0 || len(runes) <= limit {
		return text
	}
	return strings.TrimSpace(string(runes[:limit-1])) + "…"
}

func parseFragment(fragment string) (*goquery.Selection, bool) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return nil, false
	}
	return doc.Find("body"), true
}

func fragmentHTML(body *goquery.Selection, fallback string) string {
	out, err := body.Html()
	if err != nil {
		return fallback
	}
	return strings.TrimSpace(out)
}
