package main

import (
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/dileep123321/emojicode"
)

const pageHead = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>emojicode</title>
    <style>
      body { font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, Arial; padding: 2rem; }
      table { border-collapse: collapse; width: 100%; max-width: 800px; }
      th, td { padding: 0.5rem 1rem; border-bottom: 1px solid #eee; text-align: left; }
      th { background: #f7f7f7; }
      .emoji { font-size: 1.5rem; }
    </style>
  </head>
  <body>
    <h1>emojicode shortcodes</h1>
    <table>
      <thead><tr><th>Shortcode</th><th>Emoji</th></tr></thead>
      <tbody>
`

const pageFoot = `      </tbody>
    </table>
    <p>Use this page to copy/paste shortcodes or emoji characters.</p>
  </body>
</html>
`

// indexPage renders the vocabulary as a static HTML table. Shortcodes are
// restricted to [A-Za-z0-9_+-] at construction time, so no escaping is
// needed here.
func indexPage(codec *emojicode.EmojiCodec) string {
	var page strings.Builder
	page.WriteString(pageHead)
	for _, entry := range codec.Entries {
		page.WriteString(fmt.Sprintf(
			"        <tr><td>:%s:</td><td class=\"emoji\">%s</td></tr>\n",
			entry.Code, entry.Emoji))
	}
	page.WriteString(pageFoot)
	return page.String()
}

func listHandler(codec *emojicode.EmojiCodec) http.HandlerFunc {
	page := []byte(indexPage(codec))
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" && r.URL.Path != "/index.html" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		written, _ := w.Write(page)
		log.Printf("%s %s... %s served.", r.Method, r.URL.Path,
			humanize.Bytes(uint64(written)))
	}
}

func serve(codec *emojicode.EmojiCodec, port int) {
	http.HandleFunc("/", listHandler(codec))
	log.Printf("Serving emoji list at http://localhost:%d/", port)
	if err := http.ListenAndServe(fmt.Sprintf(":%d", port), nil); err != nil {
		log.Fatal(err)
	}
}
