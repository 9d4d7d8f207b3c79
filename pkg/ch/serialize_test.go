package ch

import (
	"bytes"
	"reflect"
	"testing"
)

func TestSerializeNativeRoundTrip(t *testing.T) {
	fg := Prepare(randomInputGraph(30, 3, 5))

	var buf bytes.Buffer
	if err := WriteFastGraph(&buf, fg); err != nil {
		t.Fatalf("WriteFastGraph: %v", err)
	}
	got, err := ReadFastGraph(&buf)
	if err != nil {
		t.Fatalf("ReadFastGraph: %v", err)
	}
	if !reflect.DeepEqual(fg, got) {
		t.Fatalf("round-tripped graph differs from original")
	}
}

func TestSerialize32RoundTrip(t *testing.T) {
	fg := Prepare(randomInputGraph(30, 3, 6))

	var buf bytes.Buffer
	if err := WriteFastGraph32(&buf, fg); err != nil {
		t.Fatalf("WriteFastGraph32: %v", err)
	}
	got, err := ReadFastGraph32(&buf)
	if err != nil {
		t.Fatalf("ReadFastGraph32: %v", err)
	}
	if !reflect.DeepEqual(fg, got) {
		t.Fatalf("round-tripped 32-bit graph differs from original")
	}
}

func TestSerializeRejectsBadMagic(t *testing.T) {
	fg := Prepare(randomInputGraph(10, 2, 9))
	var buf bytes.Buffer
	if err := WriteFastGraph(&buf, fg); err != nil {
		t.Fatalf("WriteFastGraph: %v", err)
	}
	if _, err := ReadFastGraph32(&buf); err == nil {
		t.Fatalf("expected an error reading a native-form file as 32-bit form")
	}
}

func TestSerializeRejectsCorruptedChecksum(t *testing.T) {
	fg := Prepare(randomInputGraph(10, 2, 10))
	var buf bytes.Buffer
	if err := WriteFastGraph(&buf, fg); err != nil {
		t.Fatalf("WriteFastGraph: %v", err)
	}
	data := buf.Bytes()
	data[len(data)-1] ^= 0xFF // flip a bit in the trailing CRC32
	if _, err := ReadFastGraph(bytes.NewReader(data)); err == nil {
		t.Fatalf("expected a CRC32 mismatch error")
	}
}
