package stringtable

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddInterns(t *testing.T) {
	st := New()
	assert.Equal(t, 0, st.Add("alpha"))
	assert.Equal(t, 1, st.Add("beta"))
	assert.Equal(t, 0, st.Add("alpha"))
	assert.Equal(t, 2, st.Add(""))

	assert.Equal(t, 3, st.Len())
	assert.Equal(t, 4, st.Count())
	assert.Equal(t, "beta", st.Get(1))

	_, ok := st.Lookup(3)
	assert.False(t, ok)
	_, ok = st.Lookup(-1)
	assert.False(t, ok)
	assert.Panics(t, func() { st.Get(5) })
}

func TestWriteAndParse(t *testing.T) {
	st := New()
	for _, s := range []string{"plain", "  padded ", "a < b & c", "line\nbreak", "plain", "Ünïcödé"} {
		st.Add(s)
	}
	var buf bytes.Buffer
	_, err := st.WriteTo(&buf)
	require.NoError(t, err)

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "<?xml"))
	assert.Contains(t, out, `count="6" uniqueCount="5"`)
	assert.Contains(t, out, `<t xml:space="preserve">  padded </t>`)
	assert.Contains(t, out, "a &lt; b &amp; c")

	got, err := NewFromBytes(buf.Bytes())
	require.NoError(t, err)
	require.Equal(t, st.Len(), got.Len())
	for i := range st.Len() {
		assert.Equal(t, st.Get(i), got.Get(i), i)
	}
	assert.Equal(t, 6, got.Count())
	assert.Equal(t, 1, got.Add("  padded "))
}

func TestParseRichText(t *testing.T) {
	const data = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<sst xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main" count="3" uniqueCount="3">
  <si><t>simple</t></si>
  <si><r><rPr><b/></rPr><t>bold</t></r><r><t xml:space="preserve"> tail</t></r></si>
  <si><t/></si>
</sst>`
	st, err := NewFromBytes([]byte(data))
	require.NoError(t, err)
	require.Equal(t, 3, st.Len())
	assert.Equal(t, "simple", st.Get(0))
	assert.Equal(t, "bold tail", st.Get(1))
	assert.Equal(t, "", st.Get(2))
}

func TestParseInvalid(t *testing.T) {
	_, err := NewFromBytes([]byte("<sst><si>"))
	assert.Error(t, err)
}
