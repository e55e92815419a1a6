package ui

import "fmt"

// Label displays a line of text.
//
// The text is escaped. Use Markdown or HTML for formatted content.
func Label(p *Builder, text string) *Element {
	return p.Add(NewElement("div").Classes("livedoc-label").SetText(text))
}

// Heading displays text as an HTML heading of the given level (1 to 6).
func Heading(p *Builder, level int, text string) *Element {
	if level < 1 {
		level = 1
	}
	if level > 6 {
		level = 6
	}
	return p.Add(NewElement(fmt.Sprintf("h%d", level)).SetText(text))
}

// Markdown renders markdown text.
//
// Headings, links, lists and fenced code blocks are supported. Code blocks
// are syntax highlighted.
func Markdown(p *Builder, content string) *Element {
	return p.Add(NewElement("div").Classes("livedoc-markdown").SetHTML(p.renderMarkdown(content)))
}

// HTML renders raw HTML.
//
// The content is inserted as is. Only pass trusted markup.
func HTML(p *Builder, content string) *Element {
	return p.Add(NewElement("div").Classes("livedoc-html").SetHTML(content))
}
