package ui

// ChatOptions configures a ChatMessage.
type ChatOptions struct {
	// Text holds the message parts; each part is shown as its own bubble.
	Text   []string
	Name   string
	Stamp  string
	Avatar string
	// Sent aligns the message to the right, as sent by the current user.
	Sent bool
	// TextHTML treats the parts as HTML. The HTML is sanitized.
	TextHTML bool
}

// ChatMessage shows a message bubble with author, avatar and time stamp.
//
// Newlines in the text are kept. Widgets created inside fn are added to the
// bubble after the text parts. The stamp goes below the bubbles.
func ChatMessage(p *Builder, opts ChatOptions, fn func()) *Element {
	msg := NewElement("div").Classes("livedoc-chat-message flex items-end gap-2")
	if opts.Sent {
		msg.Classes("flex-row-reverse")
	}
	if opts.Avatar != "" {
		msg.Append(NewElement("img").Props("src", opts.Avatar).Props("alt", opts.Name).Classes("h-12 w-12 rounded-full"))
	}

	body := NewElement("div").Classes("flex flex-col gap-1")
	if opts.Name != "" {
		body.Append(NewElement("div").Classes("livedoc-chat-name text-xs text-gray-500").SetText(opts.Name))
	}

	bubbleClasses := "livedoc-chat-text whitespace-pre-line rounded-lg bg-gray-200 px-3 py-2"
	if opts.Sent {
		bubbleClasses = "livedoc-chat-text whitespace-pre-line rounded-lg bg-green-200 px-3 py-2"
	}
	for _, part := range opts.Text {
		bubble := NewElement("div").Classes(bubbleClasses)
		if opts.TextHTML {
			bubble.SetHTML(p.sanitizeHTML(part))
		} else {
			bubble.SetText(part)
		}
		body.Append(bubble)
	}

	msg.Append(body)
	p.Add(msg)
	if fn != nil {
		slot := NewElement("div").Classes(bubbleClasses)
		body.Append(slot)
		p.Within(slot, fn)
	}
	if opts.Stamp != "" {
		body.Append(NewElement("div").Classes("livedoc-chat-stamp text-xs text-gray-400").SetText(opts.Stamp))
	}
	return msg
}
