package pipeline

import (
	"bytes"
	"compress/zlib"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"golang.org/x/net/html"
)

// defaultMaxBytes caps document reads when no limit is configured
const defaultMaxBytes = 2_000_000

// Loader decodes claim notice documents into plain UTF-8 text. It is the
// only format-aware component; everything downstream sees a text string.
type Loader struct {
	maxBytes int64
}

// NewLoader creates a loader with the given read cap
func NewLoader(maxBytes int64) *Loader {
	if maxBytes <= 0 {
		maxBytes = defaultMaxBytes
	}
	return &Loader{maxBytes: maxBytes}
}

// Load reads a document and returns its text content. Supported formats
// are plain text, HTML (notice exports from intake mailboxes), and PDF.
func (l *Loader) Load(path string) (string, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".txt":
		data, err := l.read(path)
		if err != nil {
			return "", err
		}
		return string(data), nil
	case ".html", ".htm":
		data, err := l.read(path)
		if err != nil {
			return "", err
		}
		return visibleText(string(data))
	case ".pdf":
		data, err := l.read(path)
		if err != nil {
			return "", err
		}
		return pdfText(data)
	default:
		return "", fmt.Errorf("unsupported document format: %q", ext)
	}
}

// read reads at most maxBytes from the file
func (l *Loader) read(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open document: %w", err)
	}
	defer func() { _ = f.Close() }()

	data, err := io.ReadAll(io.LimitReader(f, l.maxBytes))
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}
	return data, nil
}

// blockTags are HTML elements that terminate a line of label text
var blockTags = map[string]bool{
	"p": true, "div": true, "br": true, "li": true, "tr": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
}

// visibleText extracts the visible text of an HTML document, preserving
// block boundaries as newlines so "Label: value" lines survive
func visibleText(htmlContent string) (string, error) {
	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return "", fmt.Errorf("parse html: %w", err)
	}

	var buf strings.Builder

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "iframe":
				return
			}
			if blockTags[n.Data] {
				buf.WriteString("\n")
			}
		}

		if n.Type == html.TextNode {
			if text := strings.TrimSpace(n.Data); text != "" {
				buf.WriteString(text)
				buf.WriteString(" ")
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	walk(doc)
	return buf.String(), nil
}

// pdfText validates the PDF and dumps the text shown by its content
// streams. This is a plain-text dump for label matching, not a layout
// reconstruction; extraction tolerates the resulting noise.
func pdfText(data []byte) (string, error) {
	if _, err := api.PageCount(bytes.NewReader(data), nil); err != nil {
		return "", fmt.Errorf("invalid PDF: %w", err)
	}

	var buf strings.Builder
	for _, stream := range contentStreams(data) {
		writeShownText(&buf, stream)
	}
	return buf.String(), nil
}

// contentStreams returns each stream body, inflating FlateDecode streams
func contentStreams(data []byte) [][]byte {
	var streams [][]byte
	rest := data
	for {
		start := bytes.Index(rest, []byte("stream"))
		if start < 0 {
			break
		}
		body := rest[start+len("stream"):]
		body = bytes.TrimLeft(body, "\r\n")
		end := bytes.Index(body, []byte("endstream"))
		if end < 0 {
			break
		}

		raw := body[:end]
		if r, err := zlib.NewReader(bytes.NewReader(raw)); err == nil {
			if inflated, err := io.ReadAll(r); err == nil {
				raw = inflated
			}
			_ = r.Close()
		}
		streams = append(streams, raw)

		rest = body[end+len("endstream"):]
	}
	return streams
}

var (
	pdfShowRe  = regexp.MustCompile(`\(((?:\\.|[^\\()])*)\)\s*Tj|\[([^\]]*)\]\s*TJ`)
	pdfStrRe   = regexp.MustCompile(`\(((?:\\.|[^\\()])*)\)`)
	pdfBreakRe = regexp.MustCompile(`T\*|Td|TD|ET`)
)

// writeShownText appends the strings drawn by Tj/TJ operators, inserting
// newlines where the stream moves the text cursor to a new line
func writeShownText(buf *strings.Builder, stream []byte) {
	matches := pdfShowRe.FindAllSubmatchIndex(stream, -1)
	prevEnd := 0
	for _, m := range matches {
		if prevEnd > 0 {
			gap := stream[prevEnd:m[0]]
			if pdfBreakRe.Match(gap) {
				buf.WriteString("\n")
			} else {
				buf.WriteString(" ")
			}
		}

		if m[2] >= 0 { // Tj: single string operand
			buf.WriteString(unescapePDFString(string(stream[m[2]:m[3]])))
		} else { // TJ: array of strings and kerning offsets
			for _, sm := range pdfStrRe.FindAllSubmatch(stream[m[4]:m[5]], -1) {
				buf.WriteString(unescapePDFString(string(sm[1])))
			}
		}
		prevEnd = m[1]
	}
	if len(matches) > 0 {
		buf.WriteString("\n")
	}
}

// unescapePDFString resolves PDF literal-string escapes
func unescapePDFString(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] != '\\' || i+1 >= len(s) {
			b.WriteByte(s[i])
			continue
		}
		i++
		switch c := s[i]; c {
		case 'n':
			b.WriteByte('\n')
		case 'r':
			b.WriteByte('\r')
		case 't':
			b.WriteByte('\t')
		case '(', ')', '\\':
			b.WriteByte(c)
		default:
			if c >= '0' && c <= '7' {
				j := i
				for j < len(s) && j-i < 3 && s[j] >= '0' && s[j] <= '7' {
					j++
				}
				if code, err := strconv.ParseUint(s[i:j], 8, 16); err == nil && code < 256 {
					b.WriteByte(byte(code))
				}
				i = j - 1
			} else {
				b.WriteByte(c)
			}
		}
	}
	return b.String()
}
