package resp

import (
	"bytes"
	"io"
	"testing"
)

func roundTrip(t *testing.T, v Value) {
	t.Helper()
	enc := Encode(v)
	got, n, err := Decode(enc)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if n != len(enc) {
		t.Fatalf("decode consumed %d of %d bytes", n, len(enc))
	}
	if !got.Equal(v) {
		t.Fatalf("round trip mismatch: got %+v, want %+v", got, v)
	}
}

func TestRoundTripSimpleKinds(t *testing.T) {
	roundTrip(t, SimpleStringValue("kiki"))
	roundTrip(t, ErrorValue("whoops, it is an error"))
	roundTrip(t, IntegerValue(12))
	roundTrip(t, IntegerValue(-10))
	roundTrip(t, BulkStringValue(nil))
	roundTrip(t, BulkStringValue([]byte{1, 2, 3, 4, 5, 35, 70}))
	roundTrip(t, NullBulkString())
	roundTrip(t, ArrayValue())
	roundTrip(t, ArrayValue(BulkStringValue([]byte("hello"))))
	roundTrip(t, NullArray())
	roundTrip(t, ArrayValue(
		SimpleStringValue("hello"),
		ErrorValue("what the problem!"),
		IntegerValue(25),
		BulkStringValue([]byte("hello")),
		ArrayValue(IntegerValue(45)),
	))
}

func TestDecodeIncompleteReturnsZero(t *testing.T) {
	enc := Encode(SimpleStringValue("kiki"))
	partial := enc[:2]
	_, n, err := Decode(partial)
	if err != nil {
		t.Fatalf("unexpected error on partial input: %v", err)
	}
	if n != 0 {
		t.Fatalf("expected 0 consumed bytes on incomplete input, got %d", n)
	}
}

func TestDecodeIncompleteBulkString(t *testing.T) {
	enc := Encode(BulkStringValue([]byte{1, 2, 3, 4, 5, 35, 70}))
	_, n, err := Decode(enc[:5])
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 0 {
		t.Fatalf("expected 0 consumed bytes, got %d", n)
	}
}

func TestDecodeIncompleteArray(t *testing.T) {
	enc := Encode(ArrayValue(
		SimpleStringValue("hello"),
		ErrorValue("what the problem!"),
		IntegerValue(25),
		BulkStringValue([]byte("hello")),
		ArrayValue(IntegerValue(45)),
	))
	for _, cut := range []int{15, 32} {
		_, n, err := Decode(enc[:cut])
		if err != nil {
			t.Fatalf("unexpected error at cut %d: %v", cut, err)
		}
		if n != 0 {
			t.Fatalf("expected 0 consumed bytes at cut %d, got %d", cut, n)
		}
	}
}

func TestDecodeMultipleValuesInSequence(t *testing.T) {
	var buf []byte
	buf = append(buf, Encode(SimpleStringValue("a"))...)
	buf = append(buf, Encode(IntegerValue(1))...)
	buf = append(buf, Encode(BulkStringValue([]byte("b")))...)

	v1, n1, err := Decode(buf)
	if err != nil {
		t.Fatalf("decode 1: %v", err)
	}
	v2, n2, err := Decode(buf[n1:])
	if err != nil {
		t.Fatalf("decode 2: %v", err)
	}
	v3, n3, err := Decode(buf[n1+n2:])
	if err != nil {
		t.Fatalf("decode 3: %v", err)
	}
	if !v1.Equal(SimpleStringValue("a")) || !v2.Equal(IntegerValue(1)) || !v3.Equal(BulkStringValue([]byte("b"))) {
		t.Fatalf("unexpected decoded sequence: %+v %+v %+v", v1, v2, v3)
	}
	if n1+n2+n3 != len(buf) {
		t.Fatalf("did not consume the whole buffer")
	}
}

func TestDecodeInvalidDiscriminatorByte(t *testing.T) {
	_, _, err := Decode([]byte("?garbage\r\n"))
	if err == nil {
		t.Fatalf("expected an error for an unrecognized discriminator byte")
	}
}

func TestDecodeInvalidNegativeLength(t *testing.T) {
	_, _, err := Decode([]byte("$-2\r\n"))
	if err == nil {
		t.Fatalf("expected an error for a negative length other than -1")
	}
}

func TestReaderReadsValuesAsTheyArrive(t *testing.T) {
	enc := Encode(SimpleStringValue("kiki"))
	pr, pw := io.Pipe()
	r := NewReader(pr)

	done := make(chan struct{})
	go func() {
		defer close(done)
		v, err := r.ReadValue()
		if err != nil {
			t.Errorf("read value: %v", err)
			return
		}
		if !v.Equal(SimpleStringValue("kiki")) {
			t.Errorf("unexpected value: %+v", v)
		}
	}()

	pw.Write(enc[:2])
	pw.Write(enc[2:])
	<-done
	pw.Close()
}

func TestReaderSurfacesEOFOnCleanClose(t *testing.T) {
	r := NewReader(bytes.NewReader(nil))
	_, err := r.ReadValue()
	if err != io.EOF {
		t.Fatalf("want io.EOF, got %v", err)
	}
}
