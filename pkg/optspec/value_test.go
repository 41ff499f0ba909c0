package optspec_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-argdoc/pkg/optspec"
)

func TestValue_String(t *testing.T) {
	cases := []struct {
		name  string
		value optspec.Value
		want  string
	}{
		{"absent", optspec.Value{}, ""},
		{"null", optspec.NullValue(), "null"},
		{"true", optspec.BoolValue(true), "true"},
		{"false", optspec.BoolValue(false), "false"},
		{"int", optspec.IntValue(42), "42"},
		{"float keeps literal", optspec.FloatValue("1.50"), "1.50"},
		{"string verbatim", optspec.StringValue("Mixed Case"), "Mixed Case"},
		{"sequence", optspec.SequenceValue(optspec.StringValue("a"), optspec.BoolValue(true)), "[a, true]"},
		{"mapping", optspec.MappingValue(
			optspec.Field{Key: "port", Value: optspec.IntValue(80)},
			optspec.Field{Key: "tags", Value: optspec.StringsValue("x", "y")},
		), "{port: 80, tags: [x, y]}"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.value.String(); got != tc.want {
				t.Fatalf("String() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestValue_FromYAML(t *testing.T) {
	v, err := optspec.DecodeValue([]byte("{enabled: yes, retries: 3, ratio: 0.5, name: !!str true, empty: ~, quoted: 'no', tagged: !!str off}"))
	if err != nil {
		t.Fatalf("decode value: %v", err)
	}

	want := optspec.MappingValue(
		optspec.Field{Key: "enabled", Value: optspec.BoolValue(true)},
		optspec.Field{Key: "retries", Value: optspec.IntValue(3)},
		optspec.Field{Key: "ratio", Value: optspec.FloatValue("0.5")},
		optspec.Field{Key: "name", Value: optspec.StringValue("true")},
		optspec.Field{Key: "empty", Value: optspec.NullValue()},
		optspec.Field{Key: "quoted", Value: optspec.StringValue("no")},
		optspec.Field{Key: "tagged", Value: optspec.StringValue("off")},
	)
	if diff := cmp.Diff(want, v); diff != "" {
		t.Fatalf("value mismatch (-want +got):\n%s", diff)
	}

	if got, ok := v.Lookup("retries"); !ok || got.String() != "3" {
		t.Fatalf("lookup retries = %v, %v", got, ok)
	}
}

func TestValue_Strings(t *testing.T) {
	if diff := cmp.Diff([]string{"one", "two"}, optspec.StringsValue("one", "two").Strings()); diff != "" {
		t.Fatalf("sequence strings mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"only"}, optspec.StringValue("only").Strings()); diff != "" {
		t.Fatalf("scalar strings mismatch (-want +got):\n%s", diff)
	}
	if got := (optspec.Value{}).Strings(); got != nil {
		t.Fatalf("expected nil for absent value, got %v", got)
	}
}
