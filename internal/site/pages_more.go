package site

import (
	"github.com/conneroisu/livedoc/internal/recorder"
	"github.com/conneroisu/livedoc/pkg/ui"
)

func labelPage(r *recorder.Recorder, _ *content) {
	r.Example(recorder.Entity(ui.Label), func(p *ui.Builder) {
		ui.Label(p, "some label")
	})

	r.Example(recorder.Titled("Change Appearance Depending on the Content", `
		Pick the classes of a label from the text it shows.
		The same technique works for any widget whose look depends on its state.
	`), func(p *ui.Builder) {
		for _, status := range []string{"ok", "error"} {
			label := ui.Label(p, status)
			if status == "ok" {
				label.Classes("text-green-600")
			} else {
				label.Classes("text-red-600")
			}
		}
	})
}

func chatMessagePage(r *recorder.Recorder, _ *content) {
	r.Example(recorder.Entity(ui.ChatMessage), func(p *ui.Builder) {
		ui.ChatMessage(p, ui.ChatOptions{
			Text:   []string{"Hello livedoc!"},
			Name:   "Robot",
			Stamp:  "now",
			Avatar: "https://robohash.org/ui",
		}, nil)
	})

	r.Example(recorder.Titled("HTML text", `
		With `+"`TextHTML`"+` the message parts are treated as HTML.
		The HTML is sanitized before it is shown.
	`), func(p *ui.Builder) {
		ui.ChatMessage(p, ui.ChatOptions{Text: []string{"Without <strong>HTML</strong>"}}, nil)
		ui.ChatMessage(p, ui.ChatOptions{Text: []string{"With <strong>HTML</strong>"}, TextHTML: true}, nil)
	})

	r.Example(recorder.Titled("Newline", `
		You can use newlines in the chat message.
	`), func(p *ui.Builder) {
		ui.ChatMessage(p, ui.ChatOptions{Text: []string{"This is a\nlong line!"}}, nil)
	})

	r.Example(recorder.Titled("Multi-part messages", `
		You can send multiple message parts by passing several strings.
	`), func(p *ui.Builder) {
		ui.ChatMessage(p, ui.ChatOptions{Text: []string{"Hi! 😀", "How are you?"}}, nil)
	})

	r.Example(recorder.Titled("Chat message with child elements", `
		You can add child elements to a chat message.
	`), func(p *ui.Builder) {
		ui.ChatMessage(p, ui.ChatOptions{}, func() {
			ui.Label(p, "Guess where I am!")
			ui.Image(p, "https://picsum.photos/id/249/640/360").Classes("w-64")
		})
	})
}

func textareaPage(r *recorder.Recorder, _ *content) {
	r.Example(recorder.Entity(ui.Textarea), func(p *ui.Builder) {
		ui.Textarea(p, ui.InputOptions{Label: "Text", Placeholder: "start typing"})
		ui.Label(p, "")
	})

	r.Example(recorder.Titled("Clearable", `
		The `+"`Clearable`"+` option adds a button to the field that clears the text.
	`), func(p *ui.Builder) {
		ui.Textarea(p, ui.InputOptions{Value: "some text", Clearable: true})
		ui.Label(p, "some text")
	})
}
