package value

import "testing"

func TestObject_IsDynamic(t *testing.T) {
	tests := []struct {
		name string
		obj  Object
		want bool
	}{
		{"dynamic identity", Object{Name: "Dynamic", ModuleURI: "pkl:base"}, true},
		{"typed", Object{Name: "birds#Bird", ModuleURI: "birds.pkl"}, false},
		{"dynamic name wrong module", Object{Name: "Dynamic", ModuleURI: "birds.pkl"}, false},
		{"base module wrong name", Object{Name: "Mapping", ModuleURI: "pkl:base"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.obj.IsDynamic(); got != tt.want {
				t.Errorf("IsDynamic() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewDynamic(t *testing.T) {
	obj := NewDynamic(Property{Name: "x", Value: Int(1)})
	if !obj.IsDynamic() {
		t.Error("NewDynamic should carry the dynamic identity")
	}
	if len(obj.Members) != 1 {
		t.Errorf("Members = %d, want 1", len(obj.Members))
	}
}

func TestObject_Property(t *testing.T) {
	obj := NewDynamic(
		Property{Name: "name", Value: String("Pigeon")},
		Element{Index: 0, Value: Int(1)},
		Property{Name: "age", Value: Int(4)},
	)

	if v, ok := obj.Property("age"); !ok || !Equal(v, Int(4)) {
		t.Errorf("Property(age) = %v, %v", v, ok)
	}
	if _, ok := obj.Property("missing"); ok {
		t.Error("Property(missing) should not exist")
	}
	// Elements are not properties even when names look numeric
	if _, ok := obj.Property("0"); ok {
		t.Error("element should not be found by property lookup")
	}
}

func TestKind(t *testing.T) {
	tests := []struct {
		v    Value
		want string
	}{
		{nil, "null"},
		{Null{}, "null"},
		{Bool(true), "bool"},
		{Int(1), "int"},
		{Float(1), "float"},
		{String(""), "string"},
		{Bytes{}, "bytes"},
		{Duration{}, "duration"},
		{DataSize{}, "datasize"},
		{IntSeq{}, "intseq"},
		{Pair{}, "pair"},
		{Regex{}, "regex"},
		{Class{}, "class"},
		{TypeAlias{}, "typealias"},
		{Function{}, "function"},
		{List{}, "list"},
		{Listing{}, "listing"},
		{Set{}, "set"},
		{Map{}, "map"},
		{Mapping{}, "mapping"},
		{Object{}, "object"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := Kind(tt.v); got != tt.want {
				t.Errorf("Kind(%T) = %q, want %q", tt.v, got, tt.want)
			}
		})
	}
}

func TestRegex_Compile(t *testing.T) {
	re, err := Regex{Pattern: `\d+`}.Compile()
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if !re.MatchString("123") {
		t.Error("compiled pattern should match digits")
	}

	if _, err := (Regex{Pattern: `(`}).Compile(); err == nil {
		t.Error("Compile should fail on an unbalanced pattern")
	}
}
