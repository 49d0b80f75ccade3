package render

import (
	"fmt"
	"io"

	"github.com/vango-dev/quicktip/pkg/vdom"
)

// Default asset paths.
const (
	DefaultClientScript = "/_quicktip/client.js"
	DefaultSocketPath   = "/_quicktip/ws"
)

// PageData contains all data needed to render a complete HTML page.
type PageData struct {
	// Body is the root VNode for the page content.
	Body *vdom.VNode

	// Title is the page title.
	Title string

	// Lang is the language attribute for the html element. Defaults to "en".
	Lang string

	// Meta contains meta tags for the page.
	Meta []MetaTag

	// StyleSheets contains paths to external stylesheets.
	StyleSheets []string

	// Styles contains inline CSS.
	Styles []string

	// ClientScript is the path to the thin client. Defaults to
	// DefaultClientScript.
	ClientScript string

	// SocketPath is the WebSocket endpoint the client connects to.
	// Defaults to DefaultSocketPath.
	SocketPath string

	// Debug makes the client log protocol traffic to the console.
	Debug bool
}

// MetaTag represents a meta element in the document head.
type MetaTag struct {
	Name    string
	Content string
}

// RenderPage renders a complete HTML document to w.
func (r *Renderer) RenderPage(w io.Writer, page PageData) error {
	lang := page.Lang
	if lang == "" {
		lang = "en"
	}

	if _, err := fmt.Fprintf(w, "<!DOCTYPE html>\n<html lang=\"%s\">\n", escapeAttr(lang)); err != nil {
		return err
	}
	if err := r.renderHead(w, page); err != nil {
		return err
	}
	if _, err := io.WriteString(w, "<body>\n"); err != nil {
		return err
	}
	if err := r.RenderToWriter(w, page.Body); err != nil {
		return err
	}
	if err := r.renderClientScript(w, page); err != nil {
		return err
	}
	_, err := io.WriteString(w, "</body>\n</html>\n")
	return err
}

func (r *Renderer) renderHead(w io.Writer, page PageData) error {
	if _, err := io.WriteString(w, "<head>\n"+
		`  <meta charset="utf-8">`+"\n"+
		`  <meta name="viewport" content="width=device-width, initial-scale=1">`+"\n"); err != nil {
		return err
	}

	if page.Title != "" {
		if _, err := fmt.Fprintf(w, "  <title>%s</title>\n", escapeHTML(page.Title)); err != nil {
			return err
		}
	}
	for _, meta := range page.Meta {
		if _, err := fmt.Fprintf(w, `  <meta name="%s" content="%s">`+"\n",
			escapeAttr(meta.Name), escapeAttr(meta.Content)); err != nil {
			return err
		}
	}
	for _, href := range page.StyleSheets {
		if _, err := fmt.Fprintf(w, `  <link rel="stylesheet" href="%s">`+"\n", escapeAttr(href)); err != nil {
			return err
		}
	}
	for _, style := range page.Styles {
		if _, err := fmt.Fprintf(w, "  <style>%s</style>\n", style); err != nil {
			return err
		}
	}

	_, err := io.WriteString(w, "</head>\n")
	return err
}

// renderClientScript injects the thin client. The socket path travels as a
// data attribute so the script needs no inline configuration.
func (r *Renderer) renderClientScript(w io.Writer, page PageData) error {
	src := page.ClientScript
	if src == "" {
		src = DefaultClientScript
	}
	ws := page.SocketPath
	if ws == "" {
		ws = DefaultSocketPath
	}

	debug := ""
	if page.Debug {
		debug = ` data-debug="true"`
	}
	_, err := fmt.Fprintf(w, `  <script src="%s" data-ws="%s"%s defer></script>`+"\n",
		escapeAttr(src), escapeAttr(ws), debug)
	return err
}
