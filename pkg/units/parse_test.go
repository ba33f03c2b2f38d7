package units

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDistance_Equivalence(t *testing.T) {
	tests := []struct {
		input  string
		target string
	}{
		{"10mm", "1cm"},
		{"100cm", "1m"},
		{"1000mm", "1m"},
		{"1000m", "1km"},
		{"12i", "1ft"},
		{"3ft", "1yd"},
		{"1609.344m", "1mi"},
		{"1cm", "10mm"},
		{"1yd", "3ft"},
		{"1mi", "1609.344m"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			d, ok := ParseDistance(tt.input)
			require.True(t, ok)
			target, ok := ParseDistance(tt.target)
			require.True(t, ok)

			assert.True(t, d.Equal(target), "%s should equal %s", d, target)
		})
	}
}

func TestParseDistance_Whitespace(t *testing.T) {
	want := NewFromInt(1, Centimeter)
	for _, input := range []string{"10mm", "10 mm", "10  mm", "10   mm", "10\tmm", " 10mm ", "\t10 \t mm\n"} {
		t.Run(input, func(t *testing.T) {
			d, ok := ParseDistance(input)
			require.True(t, ok)
			assert.True(t, want.Equal(d))
			assert.Equal(t, "10mm", d.String())
		})
	}
}

func TestParse_NumberForms(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"0km", "0km"},
		{"-5 km", "-5km"},
		{"+5 km", "5km"},
		{".5km", "0.5km"},
		{"-.25 km", "-0.25km"},
		{"5.km", "5km"},
		{"0.5 Kilometer", "0.5km"},
		{"2.50 KM", "2.5km"},
		{"123456789012345678901234567890.123 km", "123456789012345678901234567890.123km"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			d, ok := ParseDistance(tt.input)
			require.True(t, ok)
			assert.Equal(t, tt.want, d.String())
		})
	}
}

func TestParse_Failures(t *testing.T) {
	inputs := []string{
		"",
		"   ",
		"abc",
		"10xyz",
		"10",
		"mm",
		"mm10",
		"007mm",
		"1.2.3mm",
		"10 m m",
		"1e3mm",
		"--5mm",
		"10 mm/s",
		"10 Kilometers",
	}
	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			assert.NotPanics(t, func() {
				_, ok := ParseDistance(input)
				assert.False(t, ok)
			})
		})
	}
}

func TestParse_PerDimension(t *testing.T) {
	t.Run("m is a minute in durations", func(t *testing.T) {
		d, ok := ParseDuration("60 m")
		require.True(t, ok)
		assert.True(t, NewFromInt(1, Hour).Equal(d))
	})

	t.Run("m is a meter in distances", func(t *testing.T) {
		d, ok := ParseDistance("1000 m")
		require.True(t, ok)
		assert.True(t, NewFromInt(1, Kilometer).Equal(d))
	})

	t.Run("weights", func(t *testing.T) {
		w, ok := ParseWeight("250 Gram")
		require.True(t, ok)
		assert.True(t, New(dec("0.25"), Kilogram).Equal(w))
	})

	t.Run("mass unit not a length", func(t *testing.T) {
		_, ok := ParseDistance("250g")
		assert.False(t, ok)
	})
}

func TestParseUnit(t *testing.T) {
	u, ok := ParseLengthUnit(" Inch ")
	require.True(t, ok)
	assert.True(t, u.Equal(Inch))

	u2, ok := ParseTimeUnit("H")
	require.True(t, ok)
	assert.True(t, u2.Equal(Hour))

	u3, ok := ParseMassUnit("kilogram")
	require.True(t, ok)
	assert.True(t, u3.Equal(Kilogram))

	_, ok = ParseMassUnit("stone")
	assert.False(t, ok)
}

func TestMustParse(t *testing.T) {
	assert.Equal(t, "3ft", Lengths().MustParse("3 ft").String())
	assert.Panics(t, func() { Lengths().MustParse("3 stone") })
}

func TestTryParse(t *testing.T) {
	q, ok := TryParse("2 kg", Masses())
	require.True(t, ok)
	assert.True(t, NewFromInt(2000, Gram).Equal(q))

	_, ok = TryParse("2 kg", Lengths())
	assert.False(t, ok)
}
