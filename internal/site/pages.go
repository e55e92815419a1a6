package site

import (
	"github.com/conneroisu/livedoc/internal/recorder"
	"github.com/conneroisu/livedoc/pkg/ui"
)

var pages = []pageDef{
	{slug: HomeSlug, build: homePage},
	{slug: "elements", build: elementsPage},
	{slug: "controls", build: controlsPage},
	{slug: "label", build: labelPage},
	{slug: "chat-message", build: chatMessagePage},
	{slug: "textarea", build: textareaPage},
}

const design = `### Styling & Design

Every widget returns its element. Chain ` + "`Classes`" + ` to add [Tailwind](https://tailwindcss.com/) utility classes,
` + "`Props`" + ` to set HTML attributes and ` + "`Style`" + ` for inline CSS.
`

const bindings = `### Bindings

Widgets render the state they are given. Build related widgets from the same model value
and the page starts out consistent; the value is written into the HTML when the page is built.
`

func homePage(r *recorder.Recorder, c *content) {
	p := r.Builder()
	p.With(ui.NewElement("div").Classes("flex w-full"), func() {
		ui.Markdown(p, c.readme).Classes("w-6/12")

		ui.Card(p, func() {
			ui.Row(p, func() {
				ui.Column(p, func() {
					ui.Button(p, "Click me!")
					ui.Checkbox(p, "Check me!", false)
					ui.Switch(p, "Switch me!", false)
					ui.Input(p, ui.InputOptions{Label: "Text", Value: "abc"})
					ui.Number(p, ui.NumberOptions{Label: "Number", Value: 3.1415927, Format: "%.2f"})
				})
				ui.Column(p, func() {
					ui.Slider(p, ui.SliderOptions{Min: 0, Max: 100, Value: 50, Step: 0.1})
					ui.Radio(p, ui.Options("A", "B", "C"), "A")
					ui.Toggle(p, ui.Options("1", "2", "3"), "1").Classes("mx-auto")
					ui.Select(p, []ui.Option{{Value: "1", Label: "One"}, {Value: "2", Label: "Two"}, {Value: "3", Label: "Three"}}, "1").Classes("mx-auto")
				})
				ui.Column(p, func() {
					ui.Label(p, "Output:")
					ui.Label(p, " ").Classes("font-bold")
				}).Classes("w-24")
			})
		}).Classes("mx-auto mt-24")
	})

	r.Example(recorder.Text(design), func(p *ui.Builder) {
		ui.Radio(p, ui.Options("x", "y", "z"), "x").Classes("text-green-600")
		ui.Icon(ui.Button(p, ""), "touch_app").Classes("rounded-full shadow-lg ml-14")
	})

	r.Example(recorder.Text(bindings), func(p *ui.Builder) {
		model := struct{ Number float64 }{Number: 1}
		ui.Checkbox(p, "visible", true)
		ui.Column(p, func() {
			ui.Slider(p, ui.SliderOptions{Min: 1, Max: 3, Value: model.Number})
			ui.Toggle(p, []ui.Option{{Value: "1", Label: "a"}, {Value: "2", Label: "b"}, {Value: "3", Label: "c"}}, "1")
			ui.Number(p, ui.NumberOptions{Value: model.Number})
		})
	})
}

func elementsPage(r *recorder.Recorder, _ *content) {
	r.Example(recorder.Entity(ui.Label), func(p *ui.Builder) {
		ui.Label(p, "some label")
	})

	r.Example(recorder.Entity(ui.Markdown), func(p *ui.Builder) {
		ui.Markdown(p, "### Headline\nWith hyperlink to [GitHub](https://github.com/conneroisu/livedoc).")
	})

	r.Example(recorder.Entity(ui.HTML), func(p *ui.Builder) {
		ui.HTML(p, "<p>demo paragraph in <strong>html</strong></p>")
	})

	r.Example(recorder.Entity(ui.Image), func(p *ui.Builder) {
		ui.Image(p, "https://picsum.photos/id/377/640/360").Classes("w-64")
	})

	r.Example(recorder.Entity(ui.InteractiveImage), func(p *ui.Builder) {
		ui.InteractiveImage(p, "https://picsum.photos/id/565/640/360", ui.InteractiveImageOptions{
			Content: `<circle cx="320" cy="180" r="60" fill="none" stroke="red" stroke-width="8" />`,
			Cross:   true,
		}).Classes("w-64")
	})

	r.Example(recorder.Entity(ui.Separator), func(p *ui.Builder) {
		ui.Label(p, "above")
		ui.Separator(p)
		ui.Label(p, "below")
	})
}

func controlsPage(r *recorder.Recorder, _ *content) {
	r.Example(recorder.Entity(ui.Button), func(p *ui.Builder) {
		ui.Button(p, "Button")
		ui.Label(p, "pressed: 0")
	})

	r.Example(recorder.Entity(ui.Checkbox), func(p *ui.Builder) {
		ui.Checkbox(p, "check me", false)
		ui.Row(p, func() {
			ui.Label(p, "the checkbox is:")
			ui.Label(p, "false")
		})
	})

	r.Example(recorder.Entity(ui.Switch), func(p *ui.Builder) {
		ui.Switch(p, "switch me", false)
		ui.Row(p, func() {
			ui.Label(p, "the switch is:")
			ui.Label(p, "OFF")
		})
	})

	r.Example(recorder.Entity(ui.Slider), func(p *ui.Builder) {
		ui.Slider(p, ui.SliderOptions{Min: 0, Max: 100, Value: 50, ShowValue: true})
	})

	r.Example(recorder.Entity(ui.Input), func(p *ui.Builder) {
		ui.Input(p, ui.InputOptions{Label: "Text", Placeholder: "press ENTER to apply"}).Classes("w-full")
		ui.Label(p, "")
	})

	r.Example(recorder.Entity(ui.Number), func(p *ui.Builder) {
		ui.Number(p, ui.NumberOptions{Label: "Number", Value: 3.1415927, Format: "%.2f"})
		ui.Row(p, func() {
			ui.Label(p, "underlying value: ")
			ui.Label(p, "3.1415927")
		})
	})

	r.Example(recorder.Entity(ui.Radio), func(p *ui.Builder) {
		ui.Radio(p, ui.Options("1", "2", "3"), "1")
		ui.Radio(p, []ui.Option{{Value: "1", Label: "A"}, {Value: "2", Label: "B"}, {Value: "3", Label: "C"}}, "1")
	})

	r.Example(recorder.Entity(ui.Toggle), func(p *ui.Builder) {
		ui.Toggle(p, ui.Options("1", "2", "3"), "1")
		ui.Toggle(p, []ui.Option{{Value: "1", Label: "A"}, {Value: "2", Label: "B"}, {Value: "3", Label: "C"}}, "1")
	})

	r.Example(recorder.Entity(ui.Select), func(p *ui.Builder) {
		ui.Row(p, func() {
			ui.Select(p, ui.Options("1", "2", "3"), "1")
			ui.Select(p, []ui.Option{{Value: "1", Label: "One"}, {Value: "2", Label: "Two"}, {Value: "3", Label: "Three"}}, "1")
		})
	})
}
