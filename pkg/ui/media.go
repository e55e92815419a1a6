package ui

import "strings"

// Image displays an image from a URL or data URI.
func Image(p *Builder, source string) *Element {
	return p.Add(NewElement("img").Props("src", source).Props("alt", "").Classes("livedoc-image max-w-full"))
}

// InteractiveImageOptions configures an InteractiveImage.
type InteractiveImageOptions struct {
	// Content is SVG markup laid over the image. Its viewport has the
	// dimensions of the image.
	Content string
	// Events lists the mouse events reported to the page, click by default.
	Events []string
	// Cross shows crosshairs that follow the pointer.
	Cross bool
}

// InteractiveImage is an image with an SVG overlay.
//
// The overlay is the best choice for annotations on top of frequently
// updated images: the image source can change without redrawing the
// annotations. Mouse events are reported in image coordinates.
func InteractiveImage(p *Builder, source string, opts InteractiveImageOptions) *Element {
	events := opts.Events
	if len(events) == 0 {
		events = []string{"click"}
	}
	wrapper := NewElement("div").
		Classes("livedoc-interactive-image relative inline-block").
		Props("data-events", strings.Join(events, ","))
	if opts.Cross {
		wrapper.Props("data-cross", "true").Classes("cursor-crosshair")
	}
	wrapper.Append(NewElement("img").Props("src", source).Props("alt", "").Classes("block max-w-full"))
	if opts.Content != "" {
		overlay := NewElement("svg").
			Props("xmlns", "http://www.w3.org/2000/svg").
			Classes("pointer-events-none absolute inset-0 h-full w-full").
			SetHTML(opts.Content)
		wrapper.Append(overlay)
	}
	return p.Add(wrapper)
}
