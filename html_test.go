package nestfix

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tokenize(t *testing.T, input string) []Token {
	t.Helper()
	stream, err := Tokenize(strings.NewReader(input))
	require.NoError(t, err)
	return stream
}

func render(t *testing.T, stream []Token) string {
	t.Helper()
	var sb strings.Builder
	require.NoError(t, Render(&sb, stream))
	return sb.String()
}

func Test_Tokenize(t *testing.T) {
	t.Run("should produce a balanced stream from well-formed markup", func(t *testing.T) {
		stream := tokenize(t, `<div><p>hi</p></div>`)
		require.NoError(t, CheckBalance(stream))
		assert.Equal(t, []Token{
			Start("div"), Start("p"), TextOf("hi"), End("p"), End("div"),
		}, stream)
	})

	t.Run("should close elements the input leaves open", func(t *testing.T) {
		stream := tokenize(t, `<div><b>bold`)
		require.NoError(t, CheckBalance(stream))
		assert.Equal(t, []Token{
			Start("div"), Start("b"), TextOf("bold"), End("b"), End("div"),
		}, stream)
	})

	t.Run("should drop closing tags that close nothing", func(t *testing.T) {
		stream := tokenize(t, `hello</b></div>`)
		require.NoError(t, CheckBalance(stream))
		assert.Equal(t, []Token{TextOf("hello")}, stream)
	})

	t.Run("should repair interleaved close tags", func(t *testing.T) {
		stream := tokenize(t, `<b><i>x</b></i>`)
		require.NoError(t, CheckBalance(stream))
		assert.Equal(t, []Token{
			Start("b"), Start("i"), TextOf("x"), End("i"), End("b"),
		}, stream)
	})

	t.Run("should pair void elements at the token layer", func(t *testing.T) {
		stream := tokenize(t, `a<br>b<img src="x.png">`)
		require.NoError(t, CheckBalance(stream))
		assert.Equal(t, []Token{
			TextOf("a"), Start("br"), End("br"), TextOf("b"),
			Start("img", Attr{Key: "src", Val: "x.png"}), End("img"),
		}, stream)
	})

	t.Run("should ignore a spurious closing tag for a void element", func(t *testing.T) {
		stream := tokenize(t, `a<br></br>b`)
		require.NoError(t, CheckBalance(stream))
		assert.Equal(t, []Token{TextOf("a"), Start("br"), End("br"), TextOf("b")}, stream)
	})

	t.Run("should decode entities into text tokens", func(t *testing.T) {
		stream := tokenize(t, `<p>a &amp; b</p>`)
		assert.Equal(t, []Token{Start("p"), TextOf("a & b"), End("p")}, stream)
	})

	t.Run("should keep comments as opaque tokens", func(t *testing.T) {
		stream := tokenize(t, `<!-- note --><p>x</p>`)
		assert.Equal(t, []Token{
			CommentOf(" note "), Start("p"), TextOf("x"), End("p"),
		}, stream)
	})

	t.Run("should carry attributes through untouched", func(t *testing.T) {
		stream := tokenize(t, `<a href="/x" title="t">go</a>`)
		require.Len(t, stream, 3)
		assert.Equal(t, []Attr{{Key: "href", Val: "/x"}, {Key: "title", Val: "t"}}, stream[0].Attrs)
	})
}

func Test_Render(t *testing.T) {
	t.Run("should round-trip ordinary markup", func(t *testing.T) {
		in := `<div><p>hi</p><ul><li>a</li></ul></div>`
		assert.Equal(t, in, render(t, tokenize(t, in)))
	})

	t.Run("should render void elements as single tags", func(t *testing.T) {
		out := render(t, []Token{Start("br"), End("br")})
		assert.Equal(t, "<br>", out)
	})

	t.Run("should escape text and attribute values", func(t *testing.T) {
		out := render(t, []Token{
			Start("a", Attr{Key: "title", Val: `say "hi"`}),
			TextOf("1 < 2"),
			End("a"),
		})
		assert.Equal(t, `<a title="say &#34;hi&#34;">1 &lt; 2</a>`, out)
	})

	t.Run("should render comments and raw payloads verbatim", func(t *testing.T) {
		out := render(t, []Token{CommentOf("note"), {Kind: Raw, Data: "<!DOCTYPE html>"}})
		assert.Equal(t, "<!--note--><!DOCTYPE html>", out)
	})
}

func Test_Sanitize(t *testing.T) {
	t.Run("should remove a span that a list cannot hold", func(t *testing.T) {
		out, err := Sanitize(`<ul><span>x</span><li>a</li></ul>`, HTMLRules())
		require.NoError(t, err)
		assert.Equal(t, `<ul><li>a</li></ul>`, out)
	})

	t.Run("should drop an empty list entirely", func(t *testing.T) {
		out, err := Sanitize(`<p>before</p><ul></ul><p>after</p>`, HTMLRules())
		require.NoError(t, err)
		assert.Equal(t, `<p>before</p><p>after</p>`, out)
	})

	t.Run("should unnest nested forms", func(t *testing.T) {
		out, err := Sanitize(`<form><form><input></form><button>ok</button></form>`, HTMLRules())
		require.NoError(t, err)
		assert.Equal(t, `<form><button>ok</button></form>`, out)
	})

	t.Run("should unnest nested anchors", func(t *testing.T) {
		out, err := Sanitize(`<a href="/x">one<a href="/y">two</a></a>`, HTMLRules())
		require.NoError(t, err)
		// The tokenizer nests the second anchor inside the first, and the
		// exclusion set removes it there.
		assert.Equal(t, `<a href="/x">one</a>`, out)
	})

	t.Run("should remove an empty table row and keep the rest of the table", func(t *testing.T) {
		out, err := Sanitize(`<table><tr></tr><tr><td>x</td></tr></table>`, HTMLRules())
		require.NoError(t, err)
		assert.Equal(t, `<table><tr><td>x</td></tr></table>`, out)
	})

	t.Run("should drop a table whose rows all collapse", func(t *testing.T) {
		out, err := Sanitize(`<table><tr></tr></table>`, HTMLRules())
		require.NoError(t, err)
		assert.Equal(t, ``, out)
	})

	t.Run("should strip content from void elements", func(t *testing.T) {
		out, err := Sanitize(`<p>a<br>b</p>`, HTMLRules())
		require.NoError(t, err)
		assert.Equal(t, `<p>a<br>b</p>`, out)
	})

	t.Run("should restrict transparent elements in inline context", func(t *testing.T) {
		out, err := Sanitize(`<span><ins><div>block</div>ok</ins></span>`, HTMLRules())
		require.NoError(t, err)
		assert.Equal(t, `<span><ins>ok</ins></span>`, out)

		out, err = Sanitize(`<ins><div>block</div>ok</ins>`, HTMLRules())
		require.NoError(t, err)
		assert.Equal(t, `<ins><div>block</div>ok</ins>`, out)
	})

	t.Run("should keep interactive content out of buttons", func(t *testing.T) {
		out, err := Sanitize(`<button>push <input type="text"> me</button>`, HTMLRules())
		require.NoError(t, err)
		assert.Equal(t, `<button>push  me</button>`, out)
	})

	t.Run("should drop unknown elements with their subtrees", func(t *testing.T) {
		out, err := Sanitize(`<p>a<marquee>b<b>c</b></marquee>d</p>`, HTMLRules())
		require.NoError(t, err)
		assert.Equal(t, `<p>ad</p>`, out)
	})

	t.Run("should be idempotent over messy fragments", func(t *testing.T) {
		inputs := []string{
			`<ul><span>x</span><li>a</li></ul>`,
			`<form><form><input></form></form>`,
			`<table><tr></tr><tr><td>x</td></tr></table>`,
			`<span><ins><div>b</div>ok</ins></span>`,
		}
		for _, in := range inputs {
			once, err := Sanitize(in, HTMLRules())
			require.NoError(t, err)
			twice, err := Sanitize(once, HTMLRules())
			require.NoError(t, err)
			assert.Equal(t, once, twice)
		}
	})

	t.Run("should surface pruning through the sink", func(t *testing.T) {
		sink := &recorderSink{}
		_, err := Sanitize(`<form><form></form></form>`, HTMLRules(), WithSink(sink))
		require.NoError(t, err)
		require.Len(t, sink.events, 1)
		dropped := sink.events[0].(NodeDroppedEvent)
		assert.Equal(t, "form", dropped.Name)
		assert.Equal(t, DropExcluded, dropped.Reason)
	})
}
