package phpserialize_test

import (
	"errors"
	"strings"
	"testing"

	php "github.com/philobyte/phpserialize"
)

func TestUnmarshalRequiresNonNilPointer(t *testing.T) {
	var v int
	err := php.Unmarshal([]byte("i:1;"), v) // not a pointer
	if err == nil {
		t.Fatal("expected error for non-pointer target")
	}
	assertIs(t, err, php.ErrTypeMismatch)
}

func TestUnmarshalRequiresNonNilPointerValue(t *testing.T) {
	var p *int
	err := php.Unmarshal([]byte("i:1;"), p) // nil pointer
	if err == nil {
		t.Fatal("expected error for nil pointer target")
	}
}

func TestMarshalUnsupportedType(t *testing.T) {
	_, err := php.Marshal(make(chan int))
	var utErr *php.UnsupportedTypeError
	if !errors.As(err, &utErr) {
		t.Fatalf("expected *UnsupportedTypeError, got %T (%v)", err, err)
	}
}

func TestDecodeErrorCarriesOffset(t *testing.T) {
	_, err := php.Decode([]byte("N;i:1;"))
	var de *php.DecodeError
	if !errors.As(err, &de) {
		t.Fatalf("expected *DecodeError, got %T (%v)", err, err)
	}
	if de.Pos != 2 {
		t.Errorf("expected offset 2, got %d", de.Pos)
	}
}

func TestArrayHeaderUnexpectedByte(t *testing.T) {
	var v []int
	// "a:1:" must be followed by '{', not an arbitrary byte.
	err := php.Unmarshal([]byte("a:1:Zi:0;i:1;}"), &v)
	assertIs(t, err, php.ErrUnexpectedByte)
}

func TestEncodeErrorMessageIncludesType(t *testing.T) {
	_, err := php.Marshal(make(chan int))
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "chan int") {
		t.Errorf("expected the error message to name the type, got %q", err.Error())
	}
}
