package ui

import (
	"fmt"
	"strconv"
)

// Option is one choice of a Radio, Toggle or Select.
type Option struct {
	Value string
	Label string
}

// Options builds options whose labels equal their values.
func Options(values ...string) []Option {
	opts := make([]Option, len(values))
	for i, v := range values {
		opts[i] = Option{Value: v, Label: v}
	}
	return opts
}

// Button is a clickable button.
//
// Chain Icon to show a Material icon next to or instead of the text.
func Button(p *Builder, text string) *Element {
	return p.Add(NewElement("button").
		Props("type", "button").
		Classes("livedoc-button rounded bg-blue-600 px-4 py-2 text-white").
		SetText(text))
}

// Icon prepends a Material icon to a button or label.
func Icon(el *Element, name string) *Element {
	children := []*Element{NewElement("span").Classes("material-icons align-middle").SetText(name)}
	if t := el.Text(); t != "" {
		children = append(children, NewElement("span").Classes("ml-1").SetText(t))
		el.SetText("")
	}
	el.Children = append(children, el.Children...)
	return el
}

// Checkbox is a labeled check box.
func Checkbox(p *Builder, text string, checked bool) *Element {
	id := p.NextID()
	input := NewElement("input").Props("type", "checkbox").Props("id", id)
	if checked {
		input.Flag("checked")
	}
	return p.Add(NewElement("label").
		Classes("livedoc-checkbox inline-flex items-center gap-2").
		Props("for", id).
		Append(input, NewElement("span").SetText(text)))
}

// Switch is a labeled on/off switch.
//
// It behaves like a checkbox but is drawn as a toggle switch.
func Switch(p *Builder, text string, on bool) *Element {
	id := p.NextID()
	input := NewElement("input").
		Props("type", "checkbox").
		Props("role", "switch").
		Props("id", id).
		Classes("livedoc-switch-input")
	if on {
		input.Flag("checked")
	}
	return p.Add(NewElement("label").
		Classes("livedoc-switch inline-flex items-center gap-2").
		Props("for", id).
		Append(input, NewElement("span").SetText(text)))
}

// SliderOptions configures a Slider.
type SliderOptions struct {
	Min   float64
	Max   float64
	Step  float64
	Value float64
	// ShowValue renders the current value next to the track.
	ShowValue bool
}

// Slider selects a number from a range by dragging a handle.
func Slider(p *Builder, opts SliderOptions) *Element {
	if opts.Step == 0 {
		opts.Step = 1
	}
	input := NewElement("input").
		Props("type", "range").
		Props("min", formatFloat(opts.Min)).
		Props("max", formatFloat(opts.Max)).
		Props("step", formatFloat(opts.Step)).
		Props("value", formatFloat(opts.Value)).
		Classes("livedoc-slider w-full")
	if !opts.ShowValue {
		return p.Add(input)
	}
	return p.Add(NewElement("div").
		Classes("flex w-full items-center gap-2").
		Append(input, NewElement("span").Classes("livedoc-slider-value").SetText(formatFloat(opts.Value))))
}

// InputOptions configures Input and Textarea.
type InputOptions struct {
	Label       string
	Placeholder string
	Value       string
	// Clearable adds a button that empties the field.
	Clearable bool
}

// Input is a single-line text field.
func Input(p *Builder, opts InputOptions) *Element {
	field := NewElement("input").Props("type", "text").Classes("livedoc-input w-full rounded border px-2 py-1")
	applyInputOptions(field, opts)
	if opts.Value != "" {
		field.Props("value", opts.Value)
	}
	return p.Add(wrapField(opts, field))
}

// Textarea is a multi-line text field.
func Textarea(p *Builder, opts InputOptions) *Element {
	field := NewElement("textarea").Classes("livedoc-textarea w-full rounded border px-2 py-1").SetText(opts.Value)
	applyInputOptions(field, opts)
	return p.Add(wrapField(opts, field))
}

// NumberOptions configures a Number field.
type NumberOptions struct {
	Label string
	Value float64
	// Format is a fmt verb such as "%.2f" applied to the displayed value.
	Format string
}

// Number is a numeric input field.
//
// The displayed value is formatted with Format; the underlying value keeps
// full precision in the data-value attribute.
func Number(p *Builder, opts NumberOptions) *Element {
	display := formatFloat(opts.Value)
	if opts.Format != "" {
		display = fmt.Sprintf(opts.Format, opts.Value)
	}
	field := NewElement("input").
		Props("type", "number").
		Props("value", display).
		Props("data-value", strconv.FormatFloat(opts.Value, 'g', -1, 64)).
		Classes("livedoc-number w-full rounded border px-2 py-1")
	return p.Add(wrapField(InputOptions{Label: opts.Label}, field))
}

// Radio lets the user pick exactly one option.
func Radio(p *Builder, options []Option, value string) *Element {
	name := p.NextID()
	group := NewElement("div").Props("role", "radiogroup").Classes("livedoc-radio flex gap-4")
	for _, opt := range options {
		input := NewElement("input").Props("type", "radio").Props("name", name).Props("value", opt.Value)
		if opt.Value == value {
			input.Flag("checked")
		}
		group.Append(NewElement("label").
			Classes("inline-flex items-center gap-1").
			Append(input, NewElement("span").SetText(opt.Label)))
	}
	return p.Add(group)
}

// Toggle is a row of buttons of which exactly one is active.
func Toggle(p *Builder, options []Option, value string) *Element {
	group := NewElement("div").Props("role", "group").Classes("livedoc-toggle inline-flex overflow-hidden rounded border")
	for _, opt := range options {
		btn := NewElement("button").Props("type", "button").Props("value", opt.Value).Classes("px-3 py-1").SetText(opt.Label)
		if opt.Value == value {
			btn.Props("aria-pressed", "true").Classes("bg-blue-600 text-white")
		} else {
			btn.Props("aria-pressed", "false")
		}
		group.Append(btn)
	}
	return p.Add(group)
}

// Select is a drop-down list of options.
func Select(p *Builder, options []Option, value string) *Element {
	sel := NewElement("select").Classes("livedoc-select rounded border px-2 py-1")
	for _, opt := range options {
		o := NewElement("option").Props("value", opt.Value).SetText(opt.Label)
		if opt.Value == value {
			o.Flag("selected")
		}
		sel.Append(o)
	}
	return p.Add(sel)
}

func applyInputOptions(field *Element, opts InputOptions) {
	if opts.Placeholder != "" {
		field.Props("placeholder", opts.Placeholder)
	}
	if opts.Label != "" {
		field.Props("aria-label", opts.Label)
	}
}

func wrapField(opts InputOptions, field *Element) *Element {
	wrapper := NewElement("label").Classes("livedoc-field flex w-full flex-col gap-1")
	if opts.Label != "" {
		wrapper.Append(NewElement("span").Classes("text-sm text-gray-600").SetText(opts.Label))
	}
	if !opts.Clearable {
		return wrapper.Append(field)
	}
	clear := NewElement("button").
		Props("type", "button").
		Props("aria-label", "clear").
		Props("onclick", "this.previousElementSibling.value=''").
		Classes("livedoc-clear material-icons text-gray-500").
		SetText("cancel")
	return wrapper.Append(NewElement("div").Classes("flex items-start gap-1").Append(field, clear))
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
