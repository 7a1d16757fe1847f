package styles

import (
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TsubasaBE/go-xlsx/xlerr"
)

func TestStyleIncompleteGraph(t *testing.T) {
	breakers := map[string]func(*Style){
		"font":   func(s *Style) { s.Font = nil },
		"fill":   func(s *Style) { s.Fill = nil },
		"border": func(s *Style) { s.Border = nil },
		"cellxf": func(s *Style) { s.CellXf = nil },
		"numfmt": func(s *Style) { s.NumberFormat = nil },
	}
	for name, brk := range breakers {
		t.Run(name, func(t *testing.T) {
			s := New()
			brk(s)
			_, err := s.Hash()
			require.ErrorIs(t, err, xlerr.ErrStyle)
			_, err = s.Copy()
			require.ErrorIs(t, err, xlerr.ErrStyle)
			_, err = New().Append(s)
			require.ErrorIs(t, err, xlerr.ErrStyle)
			_, err = s.Append(New())
			require.ErrorIs(t, err, xlerr.ErrStyle)
		})
	}
}

func TestStyleAppendIdentity(t *testing.T) {
	s := BorderFrameHeader()
	before, err := s.Hash()
	require.NoError(t, err)

	_, err = s.Append(New())
	require.NoError(t, err)
	after, err := s.Hash()
	require.NoError(t, err)
	assert.Equal(t, before, after)

	_, err = s.Append(nil)
	require.NoError(t, err)
	after, err = s.Hash()
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestStyleAppendRightBiased(t *testing.T) {
	s := Bold()
	s.CellXf.HorizontalAlign = HorizontalLeft

	o := Italic()
	o.CellXf.HorizontalAlign = HorizontalRight
	o.NumberFormat.Number = Format2

	_, err := s.Append(o)
	require.NoError(t, err)
	assert.True(t, s.Font.Bold)
	assert.True(t, s.Font.Italic)
	assert.Equal(t, HorizontalRight, s.CellXf.HorizontalAlign)
	assert.Equal(t, Format2, s.NumberFormat.Number)
}

func TestStyleAppendComponent(t *testing.T) {
	s := New()
	f := NewFont()
	f.Underline = UnderlineDouble
	_, err := s.AppendComponent(f)
	require.NoError(t, err)
	assert.Equal(t, UnderlineDouble, s.Font.Underline)
	assert.True(t, s.Fill.IsDefault())

	fill, err := NewFillWithColor("FF00FF00", FillColor)
	require.NoError(t, err)
	_, err = s.AppendComponent(fill)
	require.NoError(t, err)
	assert.Equal(t, PatternSolid, s.Fill.PatternFill)

	_, err = s.AppendComponent(nil)
	require.NoError(t, err)
}

func TestStyleCopy(t *testing.T) {
	s := Bold()
	s.InternalID = 4
	c, err := s.Copy()
	require.NoError(t, err)
	assert.True(t, s.Equal(c))
	assert.Equal(t, NoID, c.InternalID)

	c.Font.Italic = true
	assert.False(t, s.Font.Italic)
	assert.False(t, s.Equal(c))
}

func TestStyleEqualityIgnoresName(t *testing.T) {
	a, b := NewNamed("a"), NewInternal("b")
	b.InternalID = 9
	assert.True(t, a.Equal(b))
	ha, err := a.Hash()
	require.NoError(t, err)
	hb, err := b.Hash()
	require.NoError(t, err)
	assert.Equal(t, ha, hb)
}

func TestMerge(t *testing.T) {
	out, err := Merge(nil, nil)
	require.NoError(t, err)
	assert.Nil(t, out)

	base := DateFormat()
	out, err = Merge(base, nil, Bold())
	require.NoError(t, err)
	assert.Equal(t, Format14, out.NumberFormat.Number)
	assert.True(t, out.Font.Bold)
	assert.False(t, base.Font.Bold, "base must not be modified")

	out, err = Merge(nil, Italic())
	require.NoError(t, err)
	assert.True(t, out.Font.Italic)
}

func TestBasicStyles(t *testing.T) {
	assert.True(t, Bold().Font.Bold)
	assert.True(t, Italic().Font.Italic)
	bi := BoldItalic()
	assert.True(t, bi.Font.Bold && bi.Font.Italic)
	assert.Equal(t, UnderlineSingle, Underline().Font.Underline)
	assert.Equal(t, UnderlineDouble, DoubleUnderline().Font.Underline)
	assert.True(t, Strike().Font.Strike)
	assert.Equal(t, 14, DateFormat().NumberFormat.FormatID())
	assert.Equal(t, 21, TimeFormat().NumberFormat.FormatID())
	assert.Equal(t, 1, RoundFormat().NumberFormat.FormatID())
	assert.Equal(t, BorderThin, BorderFrame().Border.TopStyle)
	assert.Equal(t, BorderMedium, BorderFrameHeader().Border.BottomStyle)
	assert.Equal(t, PatternGray125, DottedFill0125().Fill.PatternFill)
	assert.Equal(t, HorizontalCenter, MergeCellStyle().CellXf.HorizontalAlign)

	ct, err := ColorizedText("ff0000ff")
	require.NoError(t, err)
	assert.Equal(t, "FF0000FF", ct.Font.ColorValue())
	_, err = ColorizedText("blue")
	require.ErrorIs(t, err, xlerr.ErrStyle)

	cb, err := ColorizedBackground("FFFFFF00")
	require.NoError(t, err)
	assert.Equal(t, "FFFFFF00", cb.Fill.ForegroundColor())

	fs, err := FontStyle("Arial", 500, true)
	require.NoError(t, err)
	assert.Equal(t, "Arial", fs.Font.Name())
	assert.Equal(t, float64(MaxFontSize), fs.Font.Size())
	assert.True(t, fs.Font.Bold)

	assert.NotSame(t, Bold(), Bold())
}

func TestRepositoryDeduplicates(t *testing.T) {
	r := NewRepository()
	s1 := Bold()
	s2 := Bold()
	require.NotSame(t, s1, s2)

	got1, err := r.Add(s1)
	require.NoError(t, err)
	got2, err := r.Add(s2)
	require.NoError(t, err)
	assert.Same(t, s1, got1)
	assert.Same(t, s1, got2)
	assert.Equal(t, 1, r.Len())
	assert.True(t, r.Contains(Bold()))
	assert.False(t, r.Contains(Italic()))

	got3, err := r.Add(Italic())
	require.NoError(t, err)
	assert.NotSame(t, s1, got3)
	assert.Equal(t, []*Style{s1, got3}, r.Styles())

	r.Flush()
	assert.Equal(t, 0, r.Len())
	assert.Empty(t, r.Styles())
}

func TestRepositoryDeduplicatesNaNFontSize(t *testing.T) {
	r := NewRepository()
	for range 3 {
		s := New()
		s.Font.SetSize(math.NaN())
		_, err := r.Add(s)
		require.NoError(t, err)
	}
	assert.Equal(t, 1, r.Len())
}

func TestRepositoryNilAndInvalid(t *testing.T) {
	r := NewRepository()
	got, err := r.Add(nil)
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.Equal(t, 0, r.Len())

	bad := New()
	bad.Border = nil
	_, err = r.Add(bad)
	require.ErrorIs(t, err, xlerr.ErrStyle)
	assert.False(t, r.Contains(bad))
}

func TestRepositoriesAreIndependent(t *testing.T) {
	a, b := NewRepository(), NewRepository()
	sa, err := a.Add(Bold())
	require.NoError(t, err)
	sb, err := b.Add(Bold())
	require.NoError(t, err)
	assert.NotSame(t, sa, sb)
}

func TestRepositoryConcurrentAdd(t *testing.T) {
	r := NewRepository()
	var wg sync.WaitGroup
	results := make([]*Style, 32)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s, err := r.Add(Strike())
			assert.NoError(t, err)
			results[i] = s
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, r.Len())
	for _, s := range results {
		assert.Same(t, results[0], s)
	}
}

func TestIsDateFormatID(t *testing.T) {
	assert.True(t, IsDateFormatID(14, ""))
	assert.True(t, IsDateFormatID(22, ""))
	assert.False(t, IsDateFormatID(2, ""))
	assert.True(t, IsDateFormatID(170, "dd/mm/yyyy"))
	assert.False(t, IsDateFormatID(170, "0.00%"))

	code, ok := BuiltInFormatCode(49)
	assert.True(t, ok)
	assert.Equal(t, "@", code)
	_, ok = BuiltInFormatCode(300)
	assert.False(t, ok)
}
