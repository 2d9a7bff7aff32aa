package binary

import (
	"bytes"
	"testing"
)

func TestSafeWriter_WriteUint32BE(t *testing.T) {
	buf := &bytes.Buffer{}
	sw := NewSafeWriter(buf)

	err := Write[uint32](sw, 0x12345678)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := []byte{0x12, 0x34, 0x56, 0x78}
	if !bytes.Equal(buf.Bytes(), expected) {
		t.Errorf("expected %v, got %v", expected, buf.Bytes())
	}
}

func TestSafeWriter_Offset(t *testing.T) {
	buf := &bytes.Buffer{}
	sw := NewSafeWriter(buf)

	if sw.Offset() != 0 {
		t.Errorf("expected initial offset 0, got %d", sw.Offset())
	}

	if err := Write[uint8](sw, 0x01); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sw.Offset() != 1 {
		t.Errorf("expected offset 1 after writing uint8, got %d", sw.Offset())
	}

	if err := Write[uint16](sw, 0x0203); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sw.Offset() != 3 {
		t.Errorf("expected offset 3 after writing uint16, got %d", sw.Offset())
	}

	if err := sw.WriteSynchsafe(257); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sw.Offset() != 7 {
		t.Errorf("expected offset 7 after writing synchsafe, got %d", sw.Offset())
	}

	if err := sw.WriteZeros(5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sw.Offset() != 12 {
		t.Errorf("expected offset 12 after writing zeros, got %d", sw.Offset())
	}
}

func TestSafeWriter_WriteSynchsafe(t *testing.T) {
	buf := &bytes.Buffer{}
	sw := NewSafeWriter(buf)

	if err := sw.WriteSynchsafe(257); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := []byte{0x00, 0x00, 0x02, 0x01}
	if !bytes.Equal(buf.Bytes(), expected) {
		t.Errorf("expected %v, got %v", expected, buf.Bytes())
	}
}

func TestSafeWriter_WriteString(t *testing.T) {
	buf := &bytes.Buffer{}
	sw := NewSafeWriter(buf)

	if err := sw.WriteString("TIT2"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if buf.String() != "TIT2" {
		t.Errorf("expected TIT2, got %q", buf.String())
	}
	if sw.Offset() != 4 {
		t.Errorf("expected offset 4 after writing string, got %d", sw.Offset())
	}
}
