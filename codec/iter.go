package codec

import (
	"fmt"

	pklbinary "github.com/pkl-community/pklbinary-go"
	"github.com/pkl-community/pklbinary-go/errors"
)

// Member is one decoded object member.
//
// Kind selects which fields are set: CodeProperty fills Name, CodeEntry fills
// Key, CodeElement fills Index. Value is always set.
type Member struct {
	Value any
	Key   any
	Name  string
	Index int64
	Kind  pklbinary.Code
}

// ElementIter iterates the elements of a list, listing, or set body
type ElementIter struct {
	d     *decoder
	count int
	next  int
}

// Len returns the total element count
func (it *ElementIter) Len() int { return it.count }

// HasNext reports whether elements remain
func (it *ElementIter) HasNext() bool { return it.next < it.count }

// Next decodes the next element
func (it *ElementIter) Next() (any, error) {
	v, err := it.d.decodeAt(fmt.Sprintf("[%d]", it.next))
	if err != nil {
		return nil, err
	}
	it.next++
	return v, nil
}

func (it *ElementIter) drain() error {
	for it.HasNext() {
		if _, err := it.Next(); err != nil {
			return err
		}
	}
	return nil
}

// EntryIter iterates the key/value pairs of a map or mapping body
type EntryIter struct {
	d     *decoder
	count int
	next  int
}

// Len returns the total entry count
func (it *EntryIter) Len() int { return it.count }

// HasNext reports whether entries remain
func (it *EntryIter) HasNext() bool { return it.next < it.count }

// Next decodes the next key and value
func (it *EntryIter) Next() (key, val any, err error) {
	d := it.d
	d.push(fmt.Sprintf("entry[%d]", it.next))
	defer d.pop()

	key, err = d.decodeAt("key")
	if err != nil {
		return nil, nil, err
	}
	val, err = d.decodeAt("value")
	if err != nil {
		return nil, nil, err
	}
	it.next++
	return key, val, nil
}

func (it *EntryIter) drain() error {
	for it.HasNext() {
		if _, _, err := it.Next(); err != nil {
			return err
		}
	}
	return nil
}

// MemberIter iterates the member envelopes of an object body
type MemberIter struct {
	d     *decoder
	count int
	next  int
}

// Len returns the total member count
func (it *MemberIter) Len() int { return it.count }

// HasNext reports whether members remain
func (it *MemberIter) HasNext() bool { return it.next < it.count }

// Next decodes the next member envelope
func (it *MemberIter) Next() (Member, error) {
	d := it.d

	mlen, err := d.fieldArrayLen("member envelope")
	if err != nil {
		return Member{}, err
	}
	if mlen != 3 {
		return Member{}, errors.Format(d.trail(), d.offset(),
			"member envelope has %d fields, needs exactly 3", mlen)
	}
	tag, err := d.tagByte()
	if err != nil {
		return Member{}, err
	}

	var m Member
	switch code := pklbinary.Code(tag); code {
	case pklbinary.CodeProperty:
		name, err := d.fieldString("property name")
		if err != nil {
			return Member{}, err
		}
		v, err := d.decodeAt(name)
		if err != nil {
			return Member{}, err
		}
		m = Member{Kind: code, Name: name, Value: v}

	case pklbinary.CodeEntry:
		d.push(fmt.Sprintf("entry[%d]", it.next))
		key, err := d.decodeAt("key")
		if err != nil {
			d.pop()
			return Member{}, err
		}
		v, err := d.decodeAt("value")
		d.pop()
		if err != nil {
			return Member{}, err
		}
		m = Member{Kind: code, Key: key, Value: v}

	case pklbinary.CodeElement:
		idx, err := d.fieldInt("element index")
		if err != nil {
			return Member{}, err
		}
		v, err := d.decodeAt(fmt.Sprintf("[%d]", idx))
		if err != nil {
			return Member{}, err
		}
		m = Member{Kind: code, Index: idx, Value: v}

	default:
		return Member{}, errors.UnknownTag(d.trail(), d.offset(), tag)
	}

	it.next++
	return m, nil
}

func (it *MemberIter) drain() error {
	for it.HasNext() {
		if _, err := it.Next(); err != nil {
			return err
		}
	}
	return nil
}
