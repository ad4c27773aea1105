package render

import (
	"bytes"
	"encoding/hex"
	"math"
	"reflect"
	"strings"
	"testing"

	"github.com/fxamacker/cbor/v2"
	"gopkg.in/yaml.v3"

	"github.com/pkl-community/pklbinary-go/codec"
	"github.com/pkl-community/pklbinary-go/plain"
	"github.com/pkl-community/pklbinary-go/value"
)

// doc decodes an encoded value into its plain form.
func doc(t *testing.T, v value.Value) any {
	t.Helper()
	data, err := codec.Marshal(v)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	d, err := plain.Decode(data)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	return d
}

func configDoc(t *testing.T) any {
	t.Helper()
	return doc(t, value.Object{
		Name:      value.DynamicClassName,
		ModuleURI: value.BaseModuleURI,
		Members: []value.Member{
			value.Property{Name: "name", Value: value.String("app")},
			value.Property{Name: "replicas", Value: value.Int(3)},
			value.Property{Name: "ports", Value: value.List{value.Int(80), value.Int(443)}},
		},
	})
}

func TestJSONCompact(t *testing.T) {
	var buf bytes.Buffer
	if err := JSON(&buf, configDoc(t), true); err != nil {
		t.Fatalf("JSON() error = %v", err)
	}
	want := `{"name":"app","replicas":3,"ports":[80,443]}` + "\n"
	if got := buf.String(); got != want {
		t.Errorf("JSON() = %q, want %q", got, want)
	}
}

func TestJSONIndented(t *testing.T) {
	var buf bytes.Buffer
	if err := JSON(&buf, configDoc(t), false); err != nil {
		t.Fatalf("JSON() error = %v", err)
	}
	want := `{
  "name": "app",
  "replicas": 3,
  "ports": [
    80,
    443
  ]
}
`
	if got := buf.String(); got != want {
		t.Errorf("JSON() = %q, want %q", got, want)
	}
}

func TestJSONForms(t *testing.T) {
	tests := []struct {
		name string
		in   value.Value
		want string
	}{
		{"null", value.Null{}, `null`},
		{"float", value.Float(2.5), `2.5`},
		{"bytes", value.Bytes{0x01, 0x02}, `"AQI="`},
		{"no html escaping", value.String("a<b>&c"), `"a<b>&c"`},
		{
			"duration",
			value.Duration{Value: 2.5, Unit: value.Minutes},
			`{"value":2.5,"unit":"min"}`,
		},
		{
			"datasize",
			value.DataSize{Value: 4, Unit: value.MiB},
			`{"value":4,"unit":"mib"}`,
		},
		{
			"intseq",
			value.IntSeq{Start: 0, End: 10, Step: 2},
			`{"start":0,"end":10,"step":2}`,
		},
		{
			"pair",
			value.Pair{First: value.Int(1), Second: value.String("a")},
			`{"first":1,"second":"a"}`,
		},
		{"regex", value.Regex{Pattern: "a+"}, `{"pattern":"a+"}`},
		{
			"class",
			value.Class{Name: "birds#Bird", ModuleURI: "birds.pkl"},
			`{"name":"birds#Bird","moduleUri":"birds.pkl"}`,
		},
		{
			"map keys formatted",
			value.Map{
				{Key: value.Int(1), Value: value.String("one")},
				{Key: value.Duration{Value: 1, Unit: value.Seconds}, Value: value.Bool(true)},
			},
			`{"1":"one","1.s":true}`,
		},
		{"empty set", value.Set{}, `[]`},
		{
			"elements only object",
			value.Object{
				Name:      value.DynamicClassName,
				ModuleURI: value.BaseModuleURI,
				Members: []value.Member{
					value.Element{Index: 0, Value: value.Int(1)},
					value.Element{Index: 1, Value: value.Int(2)},
				},
			},
			`[1,2]`,
		},
		{
			"mixed object",
			value.Object{
				Name:      value.DynamicClassName,
				ModuleURI: value.BaseModuleURI,
				Members: []value.Member{
					value.Property{Name: "kind", Value: value.String("mixed")},
					value.Element{Index: 0, Value: value.Int(7)},
				},
			},
			`{"kind":"mixed","[0]":7}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := JSON(&buf, doc(t, tt.in), true); err != nil {
				t.Fatalf("JSON() error = %v", err)
			}
			if got := strings.TrimSuffix(buf.String(), "\n"); got != tt.want {
				t.Errorf("JSON() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestJSONRejectsNonFinite(t *testing.T) {
	var buf bytes.Buffer
	err := JSON(&buf, doc(t, value.Float(math.NaN())), true)
	if err == nil {
		t.Fatal("JSON() expected error for NaN, got nil")
	}
	if !strings.Contains(err.Error(), "NaN") {
		t.Errorf("error %v does not mention NaN", err)
	}
}

func TestYAMLScalars(t *testing.T) {
	d := doc(t, value.Object{
		Name:      value.DynamicClassName,
		ModuleURI: value.BaseModuleURI,
		Members: []value.Member{
			value.Property{Name: "name", Value: value.String("app")},
			value.Property{Name: "port", Value: value.Int(8080)},
			value.Property{Name: "ratio", Value: value.Float(0.5)},
			value.Property{Name: "whole", Value: value.Float(3)},
			value.Property{Name: "debug", Value: value.Bool(true)},
			value.Property{Name: "tag", Value: value.Null{}},
		},
	})

	var buf bytes.Buffer
	if err := YAML(&buf, d); err != nil {
		t.Fatalf("YAML() error = %v", err)
	}
	want := `name: app
port: 8080
ratio: 0.5
whole: 3.0
debug: true
tag: null
`
	if got := buf.String(); got != want {
		t.Errorf("YAML() = %q, want %q", got, want)
	}
}

func TestYAMLQuotesAmbiguousStrings(t *testing.T) {
	var buf bytes.Buffer
	if err := YAML(&buf, doc(t, value.String("true"))); err != nil {
		t.Fatalf("YAML() error = %v", err)
	}
	var back any
	if err := yaml.Unmarshal(buf.Bytes(), &back); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if s, ok := back.(string); !ok || s != "true" {
		t.Errorf("round-trip = %#v, want the string %q", back, "true")
	}
}

func TestYAMLNonFinite(t *testing.T) {
	var buf bytes.Buffer
	if err := YAML(&buf, doc(t, value.List{
		value.Float(math.NaN()),
		value.Float(math.Inf(1)),
		value.Float(math.Inf(-1)),
	})); err != nil {
		t.Fatalf("YAML() error = %v", err)
	}
	out := buf.String()
	for _, want := range []string{".nan", ".inf", "-.inf"} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q missing %q", out, want)
		}
	}
}

func TestYAMLStructure(t *testing.T) {
	d := doc(t, value.Object{
		Name:      value.DynamicClassName,
		ModuleURI: value.BaseModuleURI,
		Members: []value.Member{
			value.Property{Name: "ports", Value: value.Listing{value.Int(80), value.Int(443)}},
			value.Property{Name: "limits", Value: value.Mapping{
				{Key: value.String("cpu"), Value: value.Int(2)},
			}},
		},
	})

	var buf bytes.Buffer
	if err := YAML(&buf, d); err != nil {
		t.Fatalf("YAML() error = %v", err)
	}
	var back map[string]any
	if err := yaml.Unmarshal(buf.Bytes(), &back); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	want := map[string]any{
		"ports":  []any{80, 443},
		"limits": map[string]any{"cpu": 2},
	}
	if !reflect.DeepEqual(back, want) {
		t.Errorf("round-trip = %#v, want %#v", back, want)
	}
}

func TestYAMLBinary(t *testing.T) {
	var buf bytes.Buffer
	if err := YAML(&buf, doc(t, value.Bytes{0xDE, 0xAD})); err != nil {
		t.Fatalf("YAML() error = %v", err)
	}
	want := "!!binary 3q0=\n"
	if got := buf.String(); got != want {
		t.Errorf("YAML() = %q, want %q", got, want)
	}
}

func TestCBORDeterministicBytes(t *testing.T) {
	// Wire order is b before a; deterministic encoding sorts keys.
	d := doc(t, value.Mapping{
		{Key: value.String("b"), Value: value.Listing{value.Bool(true)}},
		{Key: value.String("a"), Value: value.Int(1)},
	})

	var buf bytes.Buffer
	if err := CBOR(&buf, d); err != nil {
		t.Fatalf("CBOR() error = %v", err)
	}
	want := "a2616101616281f5" // {"a": 1, "b": [true]}
	if got := hex.EncodeToString(buf.Bytes()); got != want {
		t.Errorf("CBOR() = %s, want %s", got, want)
	}
}

func TestCBORForms(t *testing.T) {
	var buf bytes.Buffer
	err := CBOR(&buf, doc(t, value.Duration{Value: 2.5, Unit: value.Minutes}))
	if err != nil {
		t.Fatalf("CBOR() error = %v", err)
	}

	var back struct {
		Value float64
		Unit  string
	}
	if err := cbor.Unmarshal(buf.Bytes(), &back); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if back.Value != 2.5 || back.Unit != "min" {
		t.Errorf("round-trip = %+v, want {2.5 min}", back)
	}
}

func TestCBORBytesNative(t *testing.T) {
	var buf bytes.Buffer
	if err := CBOR(&buf, doc(t, value.Bytes{0x01, 0x02})); err != nil {
		t.Fatalf("CBOR() error = %v", err)
	}
	want := "420102"
	if got := hex.EncodeToString(buf.Bytes()); got != want {
		t.Errorf("CBOR() = %s, want %s", got, want)
	}
}

func TestRenderRejectsForeignValues(t *testing.T) {
	var buf bytes.Buffer
	if err := JSON(&buf, struct{}{}, true); err == nil {
		t.Error("JSON() expected error for foreign value")
	}
	if err := YAML(&buf, struct{}{}); err == nil {
		t.Error("YAML() expected error for foreign value")
	}
	if err := CBOR(&buf, struct{}{}); err == nil {
		t.Error("CBOR() expected error for foreign value")
	}
}
