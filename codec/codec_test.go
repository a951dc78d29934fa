package codec

import (
	"errors"
	"testing"
	"time"
)

type item struct {
	ID    string    `json:"id" msgpack:"id" cbor:"id"`
	Count int       `json:"count" msgpack:"count" cbor:"count"`
	At    time.Time `json:"at" msgpack:"at" cbor:"at"`
}

func roundTrip[V any](t *testing.T, name string, cd Codec[V], v V, eq func(a, b V) bool) {
	t.Helper()
	b, err := cd.Encode(v)
	if err != nil {
		t.Fatalf("%s encode: %v", name, err)
	}
	got, err := cd.Decode(b)
	if err != nil {
		t.Fatalf("%s decode: %v", name, err)
	}
	if !eq(v, got) {
		t.Fatalf("%s: got %+v want %+v", name, got, v)
	}
}

func TestCodecsRoundTrip(t *testing.T) {
	v := item{ID: "a", Count: 3, At: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
	eq := func(a, b item) bool { return a.ID == b.ID && a.Count == b.Count && a.At.Equal(b.At) }

	roundTrip[item](t, "json", JSON[item]{}, v, eq)
	roundTrip[item](t, "msgpack", Msgpack[item]{}, v, eq)
	roundTrip[item](t, "cbor", MustCBOR[item](false), v, eq)
	roundTrip[item](t, "cbor-det", MustCBOR[item](true), v, eq)
}

func TestCBORDeterministicIsStable(t *testing.T) {
	cd := MustCBOR[map[string]int](true)
	m := map[string]int{"z": 1, "a": 2, "m": 3}
	first, err := cd.Encode(m)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 10; i++ {
		b, _ := cd.Encode(m)
		if string(b) != string(first) {
			t.Fatalf("deterministic encoding changed on iteration %d", i)
		}
	}
}

func TestJSONDecodeError(t *testing.T) {
	if _, err := (JSON[item]{}).Decode([]byte("{")); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestLimit(t *testing.T) {
	cd := Limit[string]{Inner: String{}, MaxEncode: 4, MaxDecode: 3}

	if _, err := cd.Encode("abcde"); !errors.Is(err, ErrTooLarge) {
		t.Fatalf("Encode over limit: err=%v", err)
	}
	if b, err := cd.Encode("abcd"); err != nil || string(b) != "abcd" {
		t.Fatalf("Encode at limit: b=%q err=%v", b, err)
	}
	if _, err := cd.Decode([]byte("abcd")); !errors.Is(err, ErrTooLarge) {
		t.Fatalf("Decode over limit: err=%v", err)
	}
	if s, err := cd.Decode([]byte("abc")); err != nil || s != "abc" {
		t.Fatalf("Decode at limit: s=%q err=%v", s, err)
	}

	unbounded := Limit[string]{Inner: String{}}
	if _, err := unbounded.Encode(string(make([]byte, 1<<16))); err != nil {
		t.Fatalf("unbounded Encode: %v", err)
	}
}

func TestBytesIsIdentity(t *testing.T) {
	in := []byte{0, 1, 2, 255}
	out, _ := Bytes{}.Encode(in)
	back, _ := Bytes{}.Decode(out)
	if string(back) != string(in) {
		t.Fatalf("got %v want %v", back, in)
	}
}
