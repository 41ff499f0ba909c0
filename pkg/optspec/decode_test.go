package optspec_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-argdoc/pkg/optspec"
)

const sampleSpec = `
argument_specs:
  main:
    short_description: Main entry point
    options:
      server:
        type: dict
        required: true
        description:
          - Server settings.
          - Applied at start-up.
        options:
          timeout:
            type: int
            default: 30
          tls:
            type: bool
            default: false
      mode:
        type: str
        choices: [fast, safe, true]
        default: safe
        description: Operating mode.
  install:
    options:
`

func TestDecode_PreservesDocumentOrder(t *testing.T) {
	spec, err := optspec.Decode([]byte(sampleSpec))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	if diff := cmp.Diff([]string{"main", "install"}, spec.Names()); diff != "" {
		t.Fatalf("category order mismatch (-want +got):\n%s", diff)
	}

	main := spec[0]
	if main.OptionsShape != optspec.ShapeMapping {
		t.Fatalf("expected main options to be a mapping, got %s", main.OptionsShape)
	}
	if diff := cmp.Diff([]string{"server", "mode"}, main.Options.Names()); diff != "" {
		t.Fatalf("option order mismatch (-want +got):\n%s", diff)
	}

	server, ok := main.Options.Get("server")
	if !ok {
		t.Fatalf("server option missing")
	}
	if diff := cmp.Diff([]string{"timeout", "tls"}, server.Options.Names()); diff != "" {
		t.Fatalf("nested option order mismatch (-want +got):\n%s", diff)
	}

	if spec[1].OptionsShape != optspec.ShapeAbsent {
		t.Fatalf("expected null options to decode as absent, got %s", spec[1].OptionsShape)
	}
}

func TestDecode_TagsScalars(t *testing.T) {
	spec, err := optspec.Decode([]byte(sampleSpec))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	server, _ := spec[0].Options.Get("server")
	timeout, _ := server.Options.Get("timeout")
	tls, _ := server.Options.Get("tls")
	mode, _ := spec[0].Options.Get("mode")

	if diff := cmp.Diff(optspec.BoolValue(true), server.Required); diff != "" {
		t.Fatalf("required mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(optspec.IntValue(30), timeout.Default); diff != "" {
		t.Fatalf("int default mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(optspec.BoolValue(false), tls.Default); diff != "" {
		t.Fatalf("bool default mismatch (-want +got):\n%s", diff)
	}

	wantChoices := optspec.SequenceValue(
		optspec.StringValue("fast"),
		optspec.StringValue("safe"),
		optspec.BoolValue(true),
	)
	if diff := cmp.Diff(wantChoices, mode.Choices); diff != "" {
		t.Fatalf("choices mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(optspec.StringsValue("Server settings.", "Applied at start-up."), server.Description); diff != "" {
		t.Fatalf("description mismatch (-want +got):\n%s", diff)
	}
	if mode.Required.Present() {
		t.Fatalf("expected required to be absent on mode, got %v", mode.Required)
	}
}

func TestDecode_RecordsMalformedShapes(t *testing.T) {
	doc := `
argument_specs:
  broken_category: just text
  main:
    options:
      list_options:
        type: list
        options: [a, b]
      text_body: "not a mapping"
      empty_body:
`
	spec, err := optspec.Decode([]byte(doc))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	if spec[0].OptionsShape != optspec.ShapeMalformed {
		t.Fatalf("expected malformed category body, got %s", spec[0].OptionsShape)
	}

	listOpts, _ := spec[1].Options.Get("list_options")
	if listOpts.OptionsShape != optspec.ShapeMalformed {
		t.Fatalf("expected malformed options, got %s", listOpts.OptionsShape)
	}
	if len(listOpts.Options) != 0 {
		t.Fatalf("expected malformed options to carry no children, got %d", len(listOpts.Options))
	}

	textBody, _ := spec[1].Options.Get("text_body")
	if textBody.Body != optspec.ShapeMalformed {
		t.Fatalf("expected malformed option body, got %s", textBody.Body)
	}

	emptyBody, _ := spec[1].Options.Get("empty_body")
	if emptyBody.Body != optspec.ShapeAbsent || emptyBody.Type.Present() {
		t.Fatalf("expected empty option body to decode with absent fields, got %+v", emptyBody)
	}
}

func TestDecode_MissingRootKeyYieldsEmptySpec(t *testing.T) {
	for name, doc := range map[string]string{
		"empty document": "",
		"null document":  "~\n",
		"other keys":     "galaxy_info:\n  author: me\n",
		"null root key":  "argument_specs:\n",
	} {
		t.Run(name, func(t *testing.T) {
			spec, err := optspec.Decode([]byte(doc))
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			if len(spec) != 0 {
				t.Fatalf("expected empty spec, got %d categories", len(spec))
			}
		})
	}
}

func TestDecode_WithRootKey(t *testing.T) {
	doc := "specs:\n  main:\n    options:\n      name: {type: str}\n"
	spec, err := optspec.Decode([]byte(doc), optspec.WithRootKey("specs"))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(spec) != 1 || len(spec[0].Options) != 1 {
		t.Fatalf("expected a single category with one option, got %+v", spec)
	}
}

func TestDecode_Errors(t *testing.T) {
	cases := map[string]struct {
		doc  string
		want error
	}{
		"parser failure": {
			doc:  "argument_specs: [unterminated\n",
			want: optspec.ErrMalformedYAML,
		},
		"sequence root": {
			doc:  "- a\n- b\n",
			want: optspec.ErrMalformedYAML,
		},
		"sequence categories": {
			doc:  "argument_specs:\n  - main\n",
			want: optspec.ErrMalformedYAML,
		},
		"duplicate option": {
			doc:  "argument_specs:\n  main:\n    options:\n      a: {type: str}\n      a: {type: int}\n",
			want: optspec.ErrDuplicateKey,
		},
		"self referencing alias": {
			doc:  "argument_specs:\n  main:\n    options: &opts\n      nested:\n        options: *opts\n",
			want: optspec.ErrCycle,
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := optspec.Decode([]byte(tc.doc))
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestDecode_MaxNesting(t *testing.T) {
	doc := `
argument_specs:
  main:
    options:
      a:
        options:
          b:
            options:
              c:
                type: str
`
	if _, err := optspec.Decode([]byte(doc), optspec.WithMaxNesting(4)); !errors.Is(err, optspec.ErrDepthExceeded) {
		t.Fatalf("expected ErrDepthExceeded, got %v", err)
	}
	if _, err := optspec.Decode([]byte(doc)); err != nil {
		t.Fatalf("default nesting limit should accept document: %v", err)
	}
}

func TestDecode_SharedAnchorsAreNotCycles(t *testing.T) {
	doc := `
argument_specs:
  main:
    options:
      first: &common
        type: str
        description: Shared.
      second: *common
      third:
        <<: *common
        type: path
`
	spec, err := optspec.Decode([]byte(doc))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	second, _ := spec[0].Options.Get("second")
	if second.Type.String() != "str" {
		t.Fatalf("expected aliased option to reuse type, got %q", second.Type.String())
	}

	third, _ := spec[0].Options.Get("third")
	if third.Type.String() != "path" {
		t.Fatalf("expected explicit key to win over merged key, got %q", third.Type.String())
	}
	if third.Description.String() != "Shared." {
		t.Fatalf("expected merged description, got %q", third.Description.String())
	}
}

func TestDecodeOptionMap(t *testing.T) {
	opts, err := optspec.DecodeOptionMap([]byte("x:\n  type: str\ny:\n  type: int\n"))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if diff := cmp.Diff([]string{"x", "y"}, opts.Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}

	if _, err := optspec.DecodeOptionMap([]byte("- a\n")); !errors.Is(err, optspec.ErrMalformedOptions) {
		t.Fatalf("expected ErrMalformedOptions, got %v", err)
	}
}

func TestOptionMap_Count(t *testing.T) {
	opts, err := optspec.DecodeOptionMap([]byte(`
a:
  options:
    b:
      options:
        c: {}
    d: {}
e:
  options: not-a-mapping
`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got := opts.Count(); got != 5 {
		t.Fatalf("expected 5 reachable options, got %d", got)
	}
}
