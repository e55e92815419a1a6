package recorder

import (
	"fmt"
	"strings"

	"github.com/conneroisu/livedoc/internal/source"
)

// Kind tells how a Description is rendered.
type Kind int

const (
	// KindText is markdown written next to the example.
	KindText Kind = iota
	// KindEntity is a documented Go function, type or method.
	KindEntity
)

// Description is what an example shows in its first column.
type Description struct {
	kind     Kind
	markdown string
	ref      interface{}
}

// Text describes an example with markdown.
func Text(markdown string) Description {
	return Description{kind: KindText, markdown: markdown}
}

// Titled describes an example with a heading and an indented markdown
// body, as written in a raw string literal.
func Titled(title, markdown string) Description {
	body := strings.Join(source.Dedent(strings.Split(markdown, "\n")), "\n")
	return Text("#### " + title + "\n\n" + body)
}

// Entity describes an example with the doc comment of a Go entity. ref is
// a function or method value such as ui.Button, or a name such as
// "Element.Classes".
func Entity(ref interface{}) Description {
	return Description{kind: KindEntity, ref: ref}
}

// Kind reports how the description is rendered.
func (d Description) Kind() Kind {
	return d.kind
}

// Markdown returns the text of a text description.
func (d Description) Markdown() string {
	return d.markdown
}

// Name resolves the entity name of an entity description.
func (d Description) Name() (string, error) {
	switch ref := d.ref.(type) {
	case string:
		if ref == "" {
			return "", fmt.Errorf("empty entity name")
		}
		return ref, nil
	case nil:
		return "", fmt.Errorf("nil entity")
	default:
		return source.FuncName(ref)
	}
}
