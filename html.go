package nestfix

import (
	"io"
	"strings"

	"golang.org/x/net/html"
)

// voidElements close themselves: they never take content and never emit a
// closing tag. At the token layer each one becomes an adjacent
// StartTag/EndTag pair so the stream stays balanced; Render collapses the
// pair again.
var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"param": true, "source": true, "track": true, "wbr": true,
}

// Tokenize reads HTML from r and produces a balanced token stream. Markup
// being what it is, the input rarely is balanced: stray closing tags are
// discarded, a closing tag for an outer element closes every inner element
// still open, and anything left open at the end of input is closed. Entity
// decoding happens here; Text tokens carry decoded character data.
func Tokenize(r io.Reader) ([]Token, error) {
	z := html.NewTokenizer(r)
	var stream []Token
	var open []string

	for {
		switch z.Next() {
		case html.ErrorToken:
			if z.Err() == io.EOF {
				// Close whatever the input left open.
				for len(open) > 0 {
					stream = append(stream, End(open[len(open)-1]))
					open = open[:len(open)-1]
				}
				return stream, nil
			}
			return nil, z.Err()

		case html.StartTagToken:
			name, attrs := tagAndAttrs(z)
			stream = append(stream, Start(name, attrs...))
			if voidElements[name] {
				stream = append(stream, End(name))
			} else {
				open = append(open, name)
			}

		case html.SelfClosingTagToken:
			name, attrs := tagAndAttrs(z)
			stream = append(stream, Start(name, attrs...))
			stream = append(stream, End(name))

		case html.EndTagToken:
			name, _ := tagAndAttrs(z)
			if voidElements[name] {
				continue // e.g. a spurious </br>
			}
			at := -1
			for k := len(open) - 1; k >= 0; k-- {
				if open[k] == name {
					at = k
					break
				}
			}
			if at < 0 {
				continue // closes nothing that is open
			}
			for len(open) > at {
				stream = append(stream, End(open[len(open)-1]))
				open = open[:len(open)-1]
			}

		case html.TextToken:
			stream = append(stream, TextOf(string(z.Text())))

		case html.CommentToken:
			stream = append(stream, CommentOf(string(z.Text())))

		case html.DoctypeToken:
			stream = append(stream, Token{Kind: Raw, Data: "<!DOCTYPE " + string(z.Text()) + ">"})
		}
	}
}

func tagAndAttrs(z *html.Tokenizer) (string, []Attr) {
	name, hasAttr := z.TagName()
	var attrs []Attr
	for hasAttr {
		var key, val []byte
		key, val, hasAttr = z.TagAttr()
		attrs = append(attrs, Attr{Key: string(key), Val: string(val)})
	}
	return string(name), attrs
}

// Render serializes a token stream back to HTML. Text is entity-escaped;
// Raw payloads pass through verbatim; void elements render as a single tag.
func Render(w io.Writer, stream []Token) error {
	var sb strings.Builder
	for _, tok := range stream {
		switch tok.Kind {
		case StartTag:
			sb.WriteByte('<')
			sb.WriteString(tok.Name)
			for _, a := range tok.Attrs {
				sb.WriteByte(' ')
				sb.WriteString(a.Key)
				sb.WriteString(`="`)
				sb.WriteString(html.EscapeString(a.Val))
				sb.WriteByte('"')
			}
			sb.WriteByte('>')
		case EndTag:
			if voidElements[tok.Name] {
				continue
			}
			sb.WriteString("</")
			sb.WriteString(tok.Name)
			sb.WriteByte('>')
		case Text:
			sb.WriteString(html.EscapeString(tok.Data))
		case Comment:
			sb.WriteString("<!--")
			sb.WriteString(tok.Data)
			sb.WriteString("-->")
		case Raw:
			sb.WriteString(tok.Data)
		}
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

// Sanitize runs the whole pipeline over an HTML fragment: tokenize, repair
// nesting against rules, serialize. Options are passed through to the
// fixer, so a diagnostics sink can be attached the same way as with
// NewFixer.
func Sanitize(input string, rules *RuleSet, opts ...func(*Fixer)) (string, error) {
	stream, err := Tokenize(strings.NewReader(input))
	if err != nil {
		return "", err
	}
	fixed := NewFixer(rules, opts...).Fix(stream)
	var sb strings.Builder
	if err := Render(&sb, fixed); err != nil {
		return "", err
	}
	return sb.String(), nil
}
