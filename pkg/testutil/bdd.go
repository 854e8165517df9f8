package testutil

import "testing"

// Given, When, and Then wrap subtests with a spoken prefix so flow tests
// read as scenarios without a BDD framework.
func Given(t *testing.T, desc string, fn func(t *testing.T)) { scenario(t, "Given", desc, fn) }

func When(t *testing.T, desc string, fn func(t *testing.T)) { scenario(t, "When", desc, fn) }

func Then(t *testing.T, desc string, fn func(t *testing.T)) { scenario(t, "Then", desc, fn) }

func scenario(t *testing.T, word, desc string, fn func(t *testing.T)) {
	t.Helper()
	t.Run(word+" "+desc, fn)
}
