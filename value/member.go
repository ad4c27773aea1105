package value

// Member represents one member of an object. The set of implementations is
// closed: Property, Entry, and Element.
type Member interface {
	isMember()
}

// Property represents a named member
type Property struct {
	Name  string
	Value Value
}

// Entry represents a keyed member of a dynamic object
type Entry struct {
	Key   Value
	Value Value
}

// Element represents an indexed member of a dynamic object
type Element struct {
	Index int64
	Value Value
}

func (Property) isMember() {}
func (Entry) isMember()    {}
func (Element) isMember()  {}
