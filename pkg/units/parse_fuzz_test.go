//go:build go1.18

package units

import (
	"testing"
)

// FuzzParseDistance checks that parsing never panics and that anything it
// accepts survives a round trip through String.
func FuzzParseDistance(f *testing.F) {
	f.Add("10mm")
	f.Add("10 \t mm")
	f.Add("-.5 Kilometer")
	f.Add("5.ft")
	f.Add("")
	f.Add("abc")
	f.Add("10xyz")
	f.Add(string([]byte{0x00, 0x31, 0x6d}))

	f.Fuzz(func(t *testing.T, input string) {
		d, ok := ParseDistance(input)
		if !ok {
			return
		}
		again, ok := ParseDistance(d.String())
		if !ok {
			t.Fatalf("formatted distance %q did not parse", d.String())
		}
		if !again.Equal(d) {
			t.Errorf("round trip changed %s into %s", d, again)
		}
	})
}

// FuzzParseSpeed checks the slash form of the grammar the same way.
func FuzzParseSpeed(f *testing.F) {
	f.Add("70mph")
	f.Add("100 km / h")
	f.Add("13.6ft/s")
	f.Add("62.137119223733396961743418436mi / h")
	f.Add("1 / ")
	f.Add("km/h")

	f.Fuzz(func(t *testing.T, input string) {
		s, ok := ParseSpeed(input)
		if !ok {
			return
		}
		again, ok := ParseSpeed(s.String())
		if !ok {
			t.Fatalf("formatted speed %q did not parse", s.String())
		}
		if !again.Equal(s) {
			t.Errorf("round trip changed %s into %s", s, again)
		}
	})
}
