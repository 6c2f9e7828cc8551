package utils

import (
	"reflect"
	"testing"
)

func TestNormalizeRecipients(t *testing.T) {
	cases := []struct {
		name string
		in   interface{}
		want []string
	}{
		{"single", "a@example.com", []string{"a@example.com"}},
		{"comma", "a@example.com, b@example.com", []string{"a@example.com", "b@example.com"}},
		{"semicolon", "a@example.com;b@example.com", []string{"a@example.com", "b@example.com"}},
		{"spaces", "a@example.com b@example.com", []string{"a@example.com", "b@example.com"}},
		{"mixed with empties", "a@example.com,, ;\n b@example.com ", []string{"a@example.com", "b@example.com"}},
		{"string slice", []string{" a@example.com ", "", "b@example.com"}, []string{"a@example.com", "b@example.com"}},
		{"decoded json array", []interface{}{"a@example.com", "b@example.com"}, []string{"a@example.com", "b@example.com"}},
		{"empty string", "", []string{}},
		{"nil", nil, []string{}},
		{"wrong type", 42, []string{}},
	}

	for _, tc := range cases {
		if got := NormalizeRecipients(tc.in); !reflect.DeepEqual(got, tc.want) {
			t.Errorf("%s: NormalizeRecipients(%v) = %v, want %v", tc.name, tc.in, got, tc.want)
		}
	}
}
