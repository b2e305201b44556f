package report

import (
	"bufio"
	"bytes"
	"fmt"
	"io"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/unbound-force/clauserisk/internal/scoring"
)

const htmlStyle = `body{font-family:-apple-system,"Segoe UI",Helvetica,Arial,sans-serif;max-width:960px;margin:2rem auto;padding:0 1rem;color:#1c1917;line-height:1.5}` +
	`table{border-collapse:collapse;margin:0.5rem 0 1rem}` +
	`th,td{border:1px solid #a8a29e;padding:0.35rem 0.5rem;text-align:left;vertical-align:top}` +
	`thead th{background:#f1f5f9}` +
	`blockquote{margin:0.5rem 0;padding:0.25rem 1rem;border-left:4px solid #6366f1;color:#44403c}` +
	`code{background:#f5f5f4;padding:0 0.25rem}`

// WriteHTML writes the Markdown executive report converted to a
// self-contained HTML page. Raw HTML in clause text is never passed
// through.
func WriteHTML(w io.Writer, a *scoring.Assessment) error {
	var src bytes.Buffer
	if err := WriteMarkdown(&src, a); err != nil {
		return err
	}

	var body bytes.Buffer
	md := goldmark.New(goldmark.WithExtensions(extension.GFM))
	if err := md.Convert(src.Bytes(), &body); err != nil {
		return fmt.Errorf("render html: %w", err)
	}

	bw := bufio.NewWriter(w)
	fmt.Fprint(bw, "<!doctype html>\n<html><head><meta charset=\"utf-8\">")
	fmt.Fprint(bw, "<title>Contract Risk Assessment</title>")
	fmt.Fprintf(bw, "<style>%s</style></head>\n<body>\n", htmlStyle)
	if _, err := bw.Write(body.Bytes()); err != nil {
		return err
	}
	fmt.Fprint(bw, "</body></html>\n")
	return bw.Flush()
}
