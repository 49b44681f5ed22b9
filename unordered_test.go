package phpserialize_test

import (
	"testing"

	php "github.com/philobyte/phpserialize"
)

func TestDecodeUnorderedArrayFillsHolesWithDefault(t *testing.T) {
	// E5: a:3:{i:2;s:1:"c";i:0;s:1:"a";i:3;s:1:"d";} -> ["a", "", "c", "d"]
	data := []byte(`a:3:{i:2;s:1:"c";i:0;s:1:"a";i:3;s:1:"d";}`)
	var out []string
	n, err := php.DecodeUnorderedArray(data, &out, php.WithDefault(""))
	assertNoError(t, err)
	assertEqual(t, n, len(data))
	want := []string{"a", "", "c", "d"}
	if len(out) != len(want) {
		t.Fatalf("expected %v, got %v", want, out)
	}
	for i, w := range want {
		if out[i] != w {
			t.Errorf("index %d: expected %q, got %q", i, w, out[i])
		}
	}
}

func TestDecodeUnorderedArrayUsesZeroValueWithoutExplicitDefault(t *testing.T) {
	data := []byte(`a:2:{i:0;i:10;i:2;i:30;}`)
	var out []int
	_, err := php.DecodeUnorderedArray(data, &out)
	assertNoError(t, err)
	want := []int{10, 0, 30}
	if len(out) != len(want) {
		t.Fatalf("expected %v, got %v", want, out)
	}
	for i, w := range want {
		if out[i] != w {
			t.Errorf("index %d: expected %d, got %d", i, w, out[i])
		}
	}
}

func TestDecodeUnorderedArrayNoHoles(t *testing.T) {
	data := []byte(`a:3:{i:0;i:1;i:1;i:2;i:2;i:3;}`)
	var out []int
	_, err := php.DecodeUnorderedArray(data, &out)
	assertNoError(t, err)
	want := []int{1, 2, 3}
	for i, w := range want {
		if out[i] != w {
			t.Errorf("index %d: expected %d, got %d", i, w, out[i])
		}
	}
}

func TestDecodeUnorderedArrayEmpty(t *testing.T) {
	data := []byte(`a:0:{}`)
	var out []int
	_, err := php.DecodeUnorderedArray(data, &out)
	assertNoError(t, err)
	if len(out) != 0 {
		t.Errorf("expected empty slice, got %v", out)
	}
}

func TestDecodeUnorderedArrayNegativeIndex(t *testing.T) {
	data := []byte(`a:1:{i:-1;s:1:"a";}`)
	var out []string
	_, err := php.DecodeUnorderedArray(data, &out)
	assertIs(t, err, php.ErrNegativeIndex)
}

func TestDecodeUnorderedArrayHoleWithoutDefaultFails(t *testing.T) {
	data := []byte(`a:1:{i:2;s:1:"a";}`)
	var out []string
	_, err := php.DecodeUnorderedArray(data, &out, php.WithNoDefault())
	assertIs(t, err, php.ErrHoleWithoutDefault)
}

func TestDecodeUnorderedArrayStringKeyRejected(t *testing.T) {
	data := []byte(`a:1:{s:1:"a";i:1;}`)
	var out []int
	_, err := php.DecodeUnorderedArray(data, &out)
	assertIs(t, err, php.ErrTypeMismatch)
}

func TestDecodeUnorderedArrayRequiresSlicePointer(t *testing.T) {
	var notASlice int
	_, err := php.DecodeUnorderedArray([]byte(`a:0:{}`), &notASlice)
	if err == nil {
		t.Fatal("expected error for non-slice target")
	}
}
