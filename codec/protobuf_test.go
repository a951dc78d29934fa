package codec

import (
	"testing"

	"google.golang.org/protobuf/types/known/wrapperspb"
)

func TestProtobufRoundTrip(t *testing.T) {
	cd := NewProtobuf(func() *wrapperspb.StringValue { return &wrapperspb.StringValue{} })
	b, err := cd.Encode(wrapperspb.String("hello"))
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	got, err := cd.Decode(b)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.GetValue() != "hello" {
		t.Fatalf("got %q", got.GetValue())
	}
}
