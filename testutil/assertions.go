package testutil

import (
	"testing"

	"github.com/arthur-debert/nanotodo/types"
	"github.com/google/go-cmp/cmp"
)

// Texts returns the text of every record, in order.
func Texts(todos []types.Todo) []string {
	out := make([]string, len(todos))
	for i, t := range todos {
		out[i] = t.Text
	}
	return out
}

// IDs returns the id of every record, in order.
func IDs(todos []types.Todo) []int {
	out := make([]int, len(todos))
	for i, t := range todos {
		out[i] = t.ID
	}
	return out
}

// AssertTexts fails the test when the texts of got differ from want.
func AssertTexts(t *testing.T, got []types.Todo, want ...string) {
	t.Helper()
	if want == nil {
		want = []string{}
	}
	if diff := cmp.Diff(want, Texts(got)); diff != "" {
		t.Errorf("texts mismatch (-want +got):\n%s", diff)
	}
}

// AssertIDs fails the test when the ids of got differ from want.
func AssertIDs(t *testing.T, got []types.Todo, want ...int) {
	t.Helper()
	if want == nil {
		want = []int{}
	}
	if diff := cmp.Diff(want, IDs(got)); diff != "" {
		t.Errorf("ids mismatch (-want +got):\n%s", diff)
	}
}

// AssertCount fails the test when got does not hold n records.
func AssertCount(t *testing.T, got []types.Todo, n int, context ...string) {
	t.Helper()
	if len(got) != n {
		ctx := ""
		if len(context) > 0 {
			ctx = " " + context[0]
		}
		t.Errorf("expected %d todos%s, got %d", n, ctx, len(got))
	}
}
