// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
)

const samplePage = `<!DOCTYPE html>
<html><head><title>Polední nabídka</title></head>
<body>
  <h1>Polední nabídka</h1>
  <p><font class="wsw-02">Otevírací doba 11:00 - 14:00</font></p>
  <p><font class="wsw-02">1. Hovězí vývar <b>s nudlemi</b> 35,-</font></p>
  <p><font class="other">3. Není v menu 10,-</font></p>
  <div><font class="wsw-02 bold">2. Guláš</font></div>
  <div><font class="wsw-02">2. s knedlíkem<span> 109,-</span></font></div>
  <p>1. Obyčejný odstavec 99,-</p>
</body></html>`

// fakeDocument is a Document over fixed fragments.
type fakeDocument struct {
	fragments map[string][]string
}

func (f fakeDocument) FindAll(selector string) []string {
	return f.fragments[selector]
}

func TestFragments_OrderAndFlattening(t *testing.T) {
	doc, err := Parse(strings.NewReader(samplePage), "text/html; charset=utf-8")
	require.NoError(t, err)

	got := Fragments(doc, "font.wsw-02")
	assert.Equal(t, []string{
		"Otevírací doba 11:00 - 14:00",
		"1. Hovězí vývar s nudlemi 35,-",
		"2. Guláš",
		"2. s knedlíkem 109,-",
	}, got)
}

func TestFragments_NoMatches(t *testing.T) {
	doc, err := Parse(strings.NewReader("<html><body><p>Dnes zavřeno</p></body></html>"), "")
	require.NoError(t, err)

	got := Fragments(doc, "font.wsw-02")
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestFragments_FakeDocument(t *testing.T) {
	doc := fakeDocument{fragments: map[string][]string{"x": {"a", "b"}}}
	assert.Equal(t, []string{"a", "b"}, Fragments(doc, "x"))
	assert.Equal(t, []string{}, Fragments(doc, "y"))
	assert.Equal(t, []string{}, Fragments(nil, "x"))
}

func TestNodeText_SkipsScriptAndBreaksLines(t *testing.T) {
	page := `<font class="wsw-02">4. Kuře<br>na paprice<script>var x = 1;</script> 139,-</font>`
	doc, err := Parse(strings.NewReader(page), "text/html")
	require.NoError(t, err)

	got := doc.FindAll("font.wsw-02")
	require.Len(t, got, 1)
	assert.Equal(t, "4. Kuře\nna paprice 139,-", got[0])
}

func TestParse_Windows1250(t *testing.T) {
	page := `<html><body><font class="wsw-02">1. Svíčková 89,-</font></body></html>`
	encoded, err := charmap.Windows1250.NewEncoder().String(page)
	require.NoError(t, err)

	doc, err := ParseBytes([]byte(encoded), "text/html; charset=windows-1250")
	require.NoError(t, err)
	assert.Equal(t, []string{"1. Svíčková 89,-"}, doc.FindAll("font.wsw-02"))
}

func TestParse_MetaCharset(t *testing.T) {
	page := `<html><head><meta charset="windows-1250"></head><body><font class="wsw-02">2. Řízek 145,-</font></body></html>`
	encoded, err := charmap.Windows1250.NewEncoder().String(page)
	require.NoError(t, err)

	doc, err := ParseBytes([]byte(encoded), "")
	require.NoError(t, err)
	assert.Equal(t, []string{"2. Řízek 145,-"}, doc.FindAll("font.wsw-02"))
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "menu.html")
	require.NoError(t, os.WriteFile(path, []byte(samplePage), 0o644))

	doc, err := ParseFile(path)
	require.NoError(t, err)
	assert.Len(t, doc.FindAll("font.wsw-02"), 4)

	_, err = ParseFile(filepath.Join(t.TempDir(), "missing.html"))
	assert.Error(t, err)
}
