package testbed

import (
	"bytes"
	stderrors "errors"
	"strings"
	"testing"

	pklbinary "github.com/pkl-community/pklbinary-go"
	"github.com/pkl-community/pklbinary-go/codec"
	"github.com/pkl-community/pklbinary-go/errors"
	"github.com/pkl-community/pklbinary-go/importer"
	"github.com/pkl-community/pklbinary-go/plain"
	"github.com/pkl-community/pklbinary-go/render"
	"github.com/pkl-community/pklbinary-go/value"
)

func TestTypedDocument_Registry(t *testing.T) {
	const appModule = "pkl:example.com/app"

	doc := value.Object{
		Name:      "app",
		ModuleURI: appModule,
		Members: []value.Member{
			value.Property{Name: "server", Value: value.Object{
				Name:      "app#Server",
				ModuleURI: appModule,
				Members: []value.Member{
					value.Property{Name: "port", Value: value.Int(8080)},
				},
			}},
			value.Property{Name: "theme", Value: value.Class{
				Name:      "app#Theme",
				ModuleURI: appModule,
			}},
		},
	}
	data, err := codec.Marshal(doc)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	reg := importer.NewRegistry()
	reg.Add(importer.Module{
		URI:     appModule,
		Classes: []string{"app#Server", "app#Theme"},
	})

	got, err := codec.Decode(data, reg)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if !value.Equal(got, doc) {
		t.Errorf("Decode() = %#v, want %#v", got, doc)
	}

	// A registry that never heard of the module refuses the document.
	if _, err := codec.Decode(data, importer.NewRegistry()); !stderrors.Is(err, pklbinary.ErrUnresolvableModule) {
		t.Errorf("Decode() with empty registry error = %v, want ErrUnresolvableModule", err)
	}

	// A registry that knows the module but not the nested class names
	// the member, not the module.
	reg = importer.NewRegistry()
	reg.Add(importer.Module{URI: appModule, Classes: []string{"app#Theme"}})
	_, err = codec.Decode(data, reg)
	if err == nil || stderrors.Is(err, pklbinary.ErrUnresolvableModule) {
		t.Fatalf("Decode() error = %v, want member failure", err)
	}
	if !strings.Contains(err.Error(), "app#Server") {
		t.Errorf("Decode() error = %v, want it to name app#Server", err)
	}
}

func TestWireToJSON(t *testing.T) {
	doc := value.NewDynamic(
		value.Property{Name: "name", Value: value.String("app")},
		value.Property{Name: "timeout", Value: value.Duration{Value: 30, Unit: value.Seconds}},
		value.Property{Name: "ports", Value: value.List{value.Int(80), value.Int(443)}},
	)
	data, err := codec.Marshal(doc)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	tree, err := plain.Decode(data)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	var buf bytes.Buffer
	if err := render.JSON(&buf, tree, true); err != nil {
		t.Fatalf("JSON() error = %v", err)
	}
	want := `{"name":"app","timeout":{"value":30,"unit":"s"},"ports":[80,443]}` + "\n"
	if buf.String() != want {
		t.Errorf("JSON() = %q, want %q", buf.String(), want)
	}
}

func TestErrorTrail(t *testing.T) {
	data := pack(t,
		arr(4), pklbinary.CodeObject, value.DynamicClassName, value.BaseModuleURI,
		arr(1),
		arr(3), pklbinary.CodeProperty, "servers",
		arr(2), pklbinary.CodeListing,
		arr(2),
		arr(3), pklbinary.CodeDuration, 1.0, "s",
		arr(3), pklbinary.CodeDuration, 1.0, "lightyears",
	)

	_, err := codec.Decode(data, importer.Trusting{})
	var e *errors.Error
	if !stderrors.As(err, &e) {
		t.Fatalf("Decode() error = %T, want *errors.Error", err)
	}
	if e.Kind != errors.KindFormat {
		t.Errorf("Kind = %v, want %v", e.Kind, errors.KindFormat)
	}
	if got, want := errors.JoinPath(e.Path), "object.servers.listing[1].duration"; got != want {
		t.Errorf("JoinPath(Path) = %q, want %q", got, want)
	}
	if e.Offset == 0 {
		t.Errorf("Offset = 0, want a position inside the document")
	}
	if !strings.Contains(e.Error(), `unknown duration unit "lightyears"`) {
		t.Errorf("Error() = %q, want the bad unit named", e.Error())
	}
}
