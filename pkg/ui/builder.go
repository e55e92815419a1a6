package ui

import (
	"fmt"
	"html"
)

// Builder appends widgets to a page. It keeps a stack of open containers;
// new widgets always land in the innermost one. A Builder is owned by the
// goroutine building the page and is not safe for concurrent use.
type Builder struct {
	root     *Element
	stack    []*Element
	nextID   int
	markdown func(string) string
	sanitize func(string) string
}

// BuilderOption configures a Builder.
type BuilderOption func(*Builder)

// WithMarkdown sets the converter used by Markdown widgets.
func WithMarkdown(fn func(string) string) BuilderOption {
	return func(b *Builder) { b.markdown = fn }
}

// WithSanitizer sets the HTML sanitizer used for user-supplied HTML, such as
// chat messages with HTML text.
func WithSanitizer(fn func(string) string) BuilderOption {
	return func(b *Builder) { b.sanitize = fn }
}

// NewBuilder returns a builder whose root is an empty page container.
func NewBuilder(opts ...BuilderOption) *Builder {
	root := NewElement("div").Classes("livedoc-page")
	b := &Builder{root: root, stack: []*Element{root}}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Root returns the page's root element.
func (b *Builder) Root() *Element {
	return b.root
}

// Current returns the innermost open container.
func (b *Builder) Current() *Element {
	return b.stack[len(b.stack)-1]
}

// Depth returns the number of open containers, the root included.
func (b *Builder) Depth() int {
	return len(b.stack)
}

// Add appends el to the innermost open container.
func (b *Builder) Add(el *Element) *Element {
	b.Current().Append(el)
	return el
}

// With adds container to the page and runs fn with container open, so
// widgets created by fn become its children. The container is closed when
// fn returns or panics.
func (b *Builder) With(container *Element, fn func()) *Element {
	b.Add(container)
	return b.Within(container, fn)
}

// Within runs fn with an element that is already part of the page open as
// the innermost container. The container is closed when fn returns or
// panics.
func (b *Builder) Within(container *Element, fn func()) *Element {
	depth := len(b.stack)
	b.stack = append(b.stack, container)
	defer func() {
		b.stack = b.stack[:depth]
	}()
	if fn != nil {
		fn()
	}
	return container
}

// NextID returns a page-unique element id.
func (b *Builder) NextID() string {
	b.nextID++
	return fmt.Sprintf("c%d", b.nextID)
}

func (b *Builder) renderMarkdown(md string) string {
	if b.markdown == nil {
		return "<pre>" + html.EscapeString(md) + "</pre>"
	}
	return b.markdown(md)
}

func (b *Builder) sanitizeHTML(s string) string {
	if b.sanitize == nil {
		return html.EscapeString(s)
	}
	return b.sanitize(s)
}
