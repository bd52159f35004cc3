//go:build go1.18

package domain

import "testing"

// FuzzParseSubmissionID checks that parsing never panics and that every
// accepted id round-trips unchanged.
func FuzzParseSubmissionID(f *testing.F) {
	f.Add("")
	f.Add("SUB_1777896000000_0a1b2c3d4")
	f.Add("SUB__")
	f.Add("SUB_1_\x00")
	f.Add("'; DROP TABLE submissions;--")

	f.Fuzz(func(t *testing.T, input string) {
		id, err := ParseSubmissionID(input)
		if err != nil {
			return
		}
		again, err := ParseSubmissionID(id.String())
		if err != nil {
			t.Fatalf("accepted id failed round-trip: %v", err)
		}
		if again != id {
			t.Fatal("round-trip changed id")
		}
	})
}
