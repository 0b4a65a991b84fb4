package domain

import (
	"encoding/base64"
	"errors"
	"strings"
	"testing"
)

func TestProduct_Available(t *testing.T) {
	cases := []struct {
		active bool
		stock  int
		want   bool
	}{
		{true, 10, true},
		{true, 0, false},
		{false, 10, false},
		{false, 0, false},
	}
	for _, tc := range cases {
		p := &Product{Active: tc.active, Stock: tc.stock}
		if got := p.Available(); got != tc.want {
			t.Fatalf("Available with active=%v stock=%d = %v, want %v", tc.active, tc.stock, got, tc.want)
		}
	}
}

func TestProduct_ReduceStock(t *testing.T) {
	p := &Product{Stock: 5}
	if err := p.ReduceStock(3); err != nil {
		t.Fatalf("ReduceStock returned error: %v", err)
	}
	if p.Stock != 2 {
		t.Fatalf("expected stock 2, got %d", p.Stock)
	}
}

func TestProduct_ReduceStock_Insufficient(t *testing.T) {
	p := &Product{Stock: 2}
	if err := p.ReduceStock(3); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if p.Stock != 2 {
		t.Fatalf("stock mutated on failed reduce: %d", p.Stock)
	}
}

func TestProduct_AddStock_Negative(t *testing.T) {
	p := &Product{Stock: 2}
	if err := p.AddStock(-1); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestProduct_ImageDataURL(t *testing.T) {
	payload := base64.StdEncoding.EncodeToString([]byte("fake-png-bytes"))

	p := &Product{ImageData: payload, ImageContentType: "image/png"}
	want := "data:image/png;base64," + payload
	if got := p.ImageDataURL(); got != want {
		t.Fatalf("unexpected data URL: %q", got)
	}
}

func TestProduct_ImageDataURL_DefaultContentType(t *testing.T) {
	payload := base64.StdEncoding.EncodeToString([]byte("x"))
	p := &Product{ImageData: payload}
	if got := p.ImageDataURL(); !strings.HasPrefix(got, "data:image/jpeg;base64,") {
		t.Fatalf("expected image/jpeg default, got %q", got)
	}
}

func TestProduct_ImageDataURL_NoImage(t *testing.T) {
	p := &Product{}
	if got := p.ImageDataURL(); got != "" {
		t.Fatalf("expected empty data URL, got %q", got)
	}
}

func TestValidateImageData(t *testing.T) {
	if err := ValidateImageData(""); err != nil {
		t.Fatalf("empty payload should be valid: %v", err)
	}
	if err := ValidateImageData(base64.StdEncoding.EncodeToString([]byte("hello"))); err != nil {
		t.Fatalf("valid base64 rejected: %v", err)
	}
}

func TestValidateImageData_BadEncoding(t *testing.T) {
	if err := ValidateImageData("not base64!!!"); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestValidateImageData_TooLarge(t *testing.T) {
	oversized := strings.Repeat("A", maxImageEncodedLen+4)
	if err := ValidateImageData(oversized); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}
