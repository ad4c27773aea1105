package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkl-community/pklbinary-go/codec"
	"github.com/pkl-community/pklbinary-go/importer"
	"github.com/pkl-community/pklbinary-go/value"
)

func TestFromJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want value.Value
	}{
		{"null", `null`, value.Null{}},
		{"bool", `true`, value.Bool(true)},
		{"int", `42`, value.Int(42)},
		{"big int", `9007199254740993`, value.Int(9007199254740993)},
		{"float", `2.5`, value.Float(2.5)},
		{"string", `"hi"`, value.String("hi")},
		{"array", `[1, "a"]`, value.List{value.Int(1), value.String("a")}},
		{
			"object",
			`{"name": "app", "port": 8080}`,
			value.NewDynamic(
				value.Property{Name: "name", Value: value.String("app")},
				value.Property{Name: "port", Value: value.Int(8080)},
			),
		},
		{
			"nested",
			`{"servers": [{"host": "a"}]}`,
			value.NewDynamic(
				value.Property{Name: "servers", Value: value.List{
					value.NewDynamic(value.Property{Name: "host", Value: value.String("a")}),
				}},
			),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := fromJSON([]byte(tt.in))
			if err != nil {
				t.Fatalf("fromJSON() error = %v", err)
			}
			if !value.Equal(got, tt.want) {
				t.Errorf("fromJSON() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestFromJSONKeepsKeyOrder(t *testing.T) {
	got, err := fromJSON([]byte(`{"z": 1, "a": 2, "m": 3}`))
	if err != nil {
		t.Fatalf("fromJSON() error = %v", err)
	}
	obj, ok := got.(value.Object)
	if !ok {
		t.Fatalf("fromJSON() = %T, want value.Object", got)
	}
	var names []string
	for _, m := range obj.Members {
		names = append(names, m.(value.Property).Name)
	}
	if want := []string{"z", "a", "m"}; strings.Join(names, ",") != strings.Join(want, ",") {
		t.Errorf("member order = %v, want %v", names, want)
	}
}

func TestFromJSONErrors(t *testing.T) {
	for _, in := range []string{``, `{`, `[1,`, `1 2`, `{"a"}`} {
		if _, err := fromJSON([]byte(in)); err == nil {
			t.Errorf("fromJSON(%q) expected error", in)
		}
	}
}

func runConvert(t *testing.T, opts options, input []byte) []byte {
	t.Helper()
	dir := t.TempDir()
	opts.input = filepath.Join(dir, "in")
	opts.output = filepath.Join(dir, "out")
	if err := os.WriteFile(opts.input, input, 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	if err := convert(opts); err != nil {
		t.Fatalf("convert() error = %v", err)
	}
	out, err := os.ReadFile(opts.output)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	return out
}

func TestConvertBinaryToJSON(t *testing.T) {
	data, err := codec.Marshal(value.NewDynamic(
		value.Property{Name: "name", Value: value.String("app")},
		value.Property{Name: "ports", Value: value.List{value.Int(80), value.Int(443)}},
	))
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	out := runConvert(t, options{from: "binary", to: "json", compact: true}, data)
	want := `{"name":"app","ports":[80,443]}` + "\n"
	if string(out) != want {
		t.Errorf("convert() = %q, want %q", out, want)
	}
}

func TestConvertJSONToBinaryRoundTrip(t *testing.T) {
	in := `{"name": "app", "debug": true, "ratio": 0.5}`

	out := runConvert(t, options{from: "json", to: "binary"}, []byte(in))

	v, err := codec.Decode(out, importer.Trusting{})
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	want := value.NewDynamic(
		value.Property{Name: "name", Value: value.String("app")},
		value.Property{Name: "debug", Value: value.Bool(true)},
		value.Property{Name: "ratio", Value: value.Float(0.5)},
	)
	if !value.Equal(v, want) {
		t.Errorf("Decode() = %#v, want %#v", v, want)
	}
}

func TestConvertBinaryNormalizes(t *testing.T) {
	data, err := codec.Marshal(value.Duration{Value: 1.5, Unit: value.Hours})
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	out := runConvert(t, options{from: "binary", to: "binary"}, data)
	if string(out) != string(data) {
		t.Errorf("normalized output differs from canonical input:\n%x\n%x", out, data)
	}
}

func TestConvertCompressedOutput(t *testing.T) {
	data, err := codec.Marshal(value.String(strings.Repeat("pkl", 200)))
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	out := runConvert(t, options{from: "binary", to: "binary", compress: true}, data)
	if !isZstd(out) {
		t.Fatalf("convert() with compress did not produce a zstd frame")
	}

	back, err := zstdDecoder.DecodeAll(out, nil)
	if err != nil {
		t.Fatalf("DecodeAll() error = %v", err)
	}
	if string(back) != string(data) {
		t.Errorf("compressed round-trip differs from input")
	}
}

func TestConvertYAML(t *testing.T) {
	data, err := codec.Marshal(value.NewDynamic(
		value.Property{Name: "name", Value: value.String("app")},
	))
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	out := runConvert(t, options{from: "binary", to: "yaml"}, data)
	if want := "name: app\n"; string(out) != want {
		t.Errorf("convert() = %q, want %q", out, want)
	}
}

func TestConvertRejectsBadFormats(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in")
	if err := os.WriteFile(in, []byte("{}"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	if err := convert(options{from: "xml", to: "json", input: in, output: filepath.Join(dir, "out")}); err == nil {
		t.Error("convert() expected error for unknown input format")
	}
	if err := convert(options{from: "json", to: "toml", input: in, output: filepath.Join(dir, "out")}); err == nil {
		t.Error("convert() expected error for unknown output format")
	}
}
