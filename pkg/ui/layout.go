package ui

// Row arranges its children horizontally.
//
// Widgets created inside fn are placed in the row, left to right.
func Row(p *Builder, fn func()) *Element {
	return p.With(NewElement("div").Classes("flex flex-row flex-wrap items-start gap-4"), fn)
}

// Column arranges its children vertically.
//
// Widgets created inside fn are stacked top to bottom.
func Column(p *Builder, fn func()) *Element {
	return p.With(NewElement("div").Classes("flex flex-col items-start gap-4"), fn)
}

// Card is a framed container with a shadow.
//
// Cards group related widgets; widgets created inside fn are its content.
func Card(p *Builder, fn func()) *Element {
	return p.With(NewElement("div").Classes("livedoc-card flex flex-col gap-4 rounded-lg p-4 shadow-md"), fn)
}

func Separator(p *Builder) *Element {
	return p.Add(NewElement("hr").Classes("my-2 w-full border-gray-300"))
}
