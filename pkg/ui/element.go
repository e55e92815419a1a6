// Package ui is a small server-rendered widget library. Widgets are
// appended to a page through a Builder and render to HTML as templ
// components, so they can be mounted by any templ layout or handler.
package ui

import (
	"context"
	"io"
	"sort"
	"strings"

	"github.com/a-h/templ"
)

var voidTags = map[string]bool{
	"area": true, "br": true, "col": true, "hr": true,
	"img": true, "input": true, "meta": true, "source": true,
}

// Element is a node of the page tree.
type Element struct {
	Tag      string
	ID       string
	Children []*Element

	classes []string
	attrs   map[string]string
	flags   []string
	style   string
	text    string
	rawHTML string
}

var _ templ.Component = (*Element)(nil)

// NewElement returns an empty element with the given tag.
func NewElement(tag string) *Element {
	return &Element{Tag: tag, attrs: make(map[string]string)}
}

// Classes appends space-separated CSS classes. Duplicates are ignored.
func (e *Element) Classes(classes ...string) *Element {
	for _, c := range classes {
		for _, f := range strings.Fields(c) {
			if !e.HasClass(f) {
				e.classes = append(e.classes, f)
			}
		}
	}
	return e
}

// ReplaceClasses drops the current classes before adding the new ones.
func (e *Element) ReplaceClasses(classes ...string) *Element {
	e.classes = nil
	return e.Classes(classes...)
}

// HasClass reports whether class is set on the element.
func (e *Element) HasClass(class string) bool {
	for _, c := range e.classes {
		if c == class {
			return true
		}
	}
	return false
}

// ClassList returns the element's classes in insertion order.
func (e *Element) ClassList() []string {
	return append([]string(nil), e.classes...)
}

// Props sets an HTML attribute.
func (e *Element) Props(name, value string) *Element {
	if e.attrs == nil {
		e.attrs = make(map[string]string)
	}
	e.attrs[name] = value
	return e
}

// Prop returns an attribute value.
func (e *Element) Prop(name string) (string, bool) {
	v, ok := e.attrs[name]
	return v, ok
}

// Flag sets a boolean attribute such as checked or disabled.
func (e *Element) Flag(name string) *Element {
	for _, f := range e.flags {
		if f == name {
			return e
		}
	}
	e.flags = append(e.flags, name)
	return e
}

// HasFlag reports whether a boolean attribute is set.
func (e *Element) HasFlag(name string) bool {
	for _, f := range e.flags {
		if f == name {
			return true
		}
	}
	return false
}

// Style appends inline CSS declarations.
func (e *Element) Style(css string) *Element {
	css = strings.TrimSpace(css)
	if css == "" {
		return e
	}
	if e.style != "" && !strings.HasSuffix(e.style, ";") {
		e.style += ";"
	}
	e.style += css
	return e
}

// SetText replaces the element's text content. Text is escaped on render.
func (e *Element) SetText(text string) *Element {
	e.text = text
	e.rawHTML = ""
	return e
}

// Text returns the element's own text content.
func (e *Element) Text() string {
	return e.text
}

// SetHTML replaces the element's content with trusted HTML.
func (e *Element) SetHTML(html string) *Element {
	e.rawHTML = html
	e.text = ""
	return e
}

// HTML returns the trusted HTML content set with SetHTML.
func (e *Element) HTML() string {
	return e.rawHTML
}

// Append adds children to the element.
func (e *Element) Append(children ...*Element) *Element {
	e.Children = append(e.Children, children...)
	return e
}

// Walk visits the element and its descendants depth first. Returning false
// from fn skips the children of that element.
func (e *Element) Walk(fn func(*Element) bool) {
	if !fn(e) {
		return
	}
	for _, c := range e.Children {
		c.Walk(fn)
	}
}

// Find returns every descendant, including e itself, for which match is true.
func (e *Element) Find(match func(*Element) bool) []*Element {
	var found []*Element
	e.Walk(func(el *Element) bool {
		if match(el) {
			found = append(found, el)
		}
		return true
	})
	return found
}

// Render writes the element as HTML.
func (e *Element) Render(ctx context.Context, w io.Writer) error {
	sw := &stickyWriter{w: w}
	e.write(sw)
	return sw.err
}

// String renders the element to a string.
func (e *Element) String() string {
	var b strings.Builder
	_ = e.Render(context.Background(), &b)
	return b.String()
}

// InnerHTML renders the element's content without its own tag.
func (e *Element) InnerHTML() string {
	var b strings.Builder
	sw := &stickyWriter{w: &b}
	e.writeContent(sw)
	return b.String()
}

func (e *Element) write(w *stickyWriter) {
	w.str("<")
	w.str(e.Tag)
	if e.ID != "" {
		w.attr("id", e.ID)
	}
	if len(e.classes) > 0 {
		w.attr("class", strings.Join(e.classes, " "))
	}
	if e.style != "" {
		w.attr("style", e.style)
	}
	names := make([]string, 0, len(e.attrs))
	for name := range e.attrs {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		w.attr(name, e.attrs[name])
	}
	for _, f := range e.flags {
		w.str(" ")
		w.str(f)
	}
	w.str(">")
	if voidTags[e.Tag] {
		return
	}
	e.writeContent(w)
	w.str("</")
	w.str(e.Tag)
	w.str(">")
}

func (e *Element) writeContent(w *stickyWriter) {
	if e.rawHTML != "" {
		w.str(e.rawHTML)
	} else if e.text != "" {
		w.str(templ.EscapeString(e.text))
	}
	for _, c := range e.Children {
		c.write(w)
	}
}

// stickyWriter keeps the first write error so rendering code stays linear.
type stickyWriter struct {
	w   io.Writer
	err error
}

func (s *stickyWriter) str(v string) {
	if s.err != nil {
		return
	}
	_, s.err = io.WriteString(s.w, v)
}

func (s *stickyWriter) attr(name, value string) {
	s.str(" ")
	s.str(name)
	s.str(`="`)
	s.str(templ.EscapeString(value))
	s.str(`"`)
}
