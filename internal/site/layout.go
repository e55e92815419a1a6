package site

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// LayoutOptions configures Layout.
type LayoutOptions struct {
	// LiveReload adds the script that reloads the page when the dev server
	// announces a rebuild.
	LiveReload bool
	// Overlay is raw HTML shown above the page, such as a build error
	// overlay.
	Overlay string
}

const reloadScript = `<script>
(function () {
  var proto = location.protocol === "https:" ? "wss://" : "ws://";
  function connect() {
    var ws = new WebSocket(proto + location.host + "/ws");
    ws.onmessage = function (ev) {
      try {
        if (JSON.parse(ev.data).type === "reload") { location.reload(); }
      } catch (e) {}
    };
    ws.onclose = function () { setTimeout(connect, 1000); };
  }
  connect();
})();
</script>`

// Layout renders a full HTML document for page with the site navigation.
func Layout(s *Site, page *Page, opts LayoutOptions) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		title := s.Title
		if page.Slug != HomeSlug {
			title = page.Title + " · " + s.Title
		}

		dw := &docWriter{w: w}
		dw.printf("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n<meta charset=\"utf-8\">\n")
		dw.printf("<meta name=\"viewport\" content=\"width=device-width, initial-scale=1\">\n")
		dw.printf("<title>%s</title>\n", templ.EscapeString(title))
		dw.printf("<script src=\"https://cdn.tailwindcss.com\"></script>\n")
		dw.printf("<link rel=\"stylesheet\" href=\"https://fonts.googleapis.com/icon?family=Material+Icons\">\n")
		if opts.LiveReload {
			dw.printf("%s\n", reloadScript)
		}
		dw.printf("</head>\n<body class=\"p-8\">\n")
		if opts.Overlay != "" {
			dw.printf("%s\n", opts.Overlay)
		}

		dw.printf("<nav class=\"mb-8 flex flex-wrap gap-4\">\n")
		for _, p := range s.Pages {
			class := "text-blue-600 hover:underline"
			if p.Slug == page.Slug {
				class = "font-bold"
			}
			dw.printf("<a href=\"%s\" class=\"%s\">%s</a>\n", templ.EscapeString(p.Path()), class, templ.EscapeString(p.Title))
		}
		dw.printf("</nav>\n<main>\n")
		if dw.err != nil {
			return dw.err
		}
		if err := page.Root.Render(ctx, w); err != nil {
			return err
		}
		dw.printf("\n</main>\n</body>\n</html>\n")
		return dw.err
	})
}

// docWriter keeps the first write error and skips later writes.
type docWriter struct {
	w   io.Writer
	err error
}

func (d *docWriter) printf(format string, args ...interface{}) {
	if d.err != nil {
		return
	}
	_, d.err = fmt.Fprintf(d.w, format, args...)
}

// ErrorPage renders a bare document holding only the error overlay. The
// dev server serves it while no build has succeeded yet.
func ErrorPage(title, overlay string, opts LayoutOptions) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		dw := &docWriter{w: w}
		dw.printf("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n<meta charset=\"utf-8\">\n")
		dw.printf("<title>%s</title>\n", templ.EscapeString(title))
		dw.printf("<script src=\"https://cdn.tailwindcss.com\"></script>\n")
		if opts.LiveReload {
			dw.printf("%s\n", reloadScript)
		}
		dw.printf("</head>\n<body class=\"p-8\">\n%s\n</body>\n</html>\n", overlay)
		return dw.err
	})
}
