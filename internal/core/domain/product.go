package domain

import (
	"encoding/base64"
	"errors"
	"fmt"
	"time"
)

var ErrProductNotFound = errors.New("product not found")

// maxImageEncodedLen bounds the base64 payload of an embedded image.
// ~2.8M encoded characters decode to roughly 2MB of binary data.
const maxImageEncodedLen = 2_800_000

// defaultImageContentType is used when a product carries an image payload
// without an explicit content type.
const defaultImageContentType = "image/jpeg"

// Product is the catalog aggregate. Deletion is soft: Active flips to false
// and the record is retained.
type Product struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Description      string    `json:"description"`
	Price            float64   `json:"price"`
	Stock            int       `json:"stock"`
	Active           bool      `json:"active"`
	ImageData        string    `json:"-"`
	ImageContentType string    `json:"-"`
	SellerID         string    `json:"seller_id"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// Available reports whether the product can currently be purchased.
func (p *Product) Available() bool {
	return p.Active && p.Stock > 0
}

// HasImage reports whether an image payload is stored on the product.
func (p *Product) HasImage() bool {
	return p.ImageData != ""
}

// ImageDataURL renders the embedded image as a data URI. Empty when the
// product has no image.
func (p *Product) ImageDataURL() string {
	if !p.HasImage() {
		return ""
	}
	ct := p.ImageContentType
	if ct == "" {
		ct = defaultImageContentType
	}
	return "data:" + ct + ";base64," + p.ImageData
}

// ReduceStock decrements stock, failing when the requested quantity exceeds
// what is on hand.
func (p *Product) ReduceStock(quantity int) error {
	if quantity < 0 {
		return fmt.Errorf("%w: quantity must be positive", ErrValidation)
	}
	if quantity > p.Stock {
		return fmt.Errorf("%w: insufficient stock", ErrValidation)
	}
	p.Stock -= quantity
	return nil
}

// AddStock increments stock by a non-negative quantity.
func (p *Product) AddStock(quantity int) error {
	if quantity < 0 {
		return fmt.Errorf("%w: quantity must be positive", ErrValidation)
	}
	p.Stock += quantity
	return nil
}

// ValidateImageData checks that an image payload is well-formed base64 and
// within the size bound. An empty payload is valid (no image).
func ValidateImageData(encoded string) error {
	if encoded == "" {
		return nil
	}
	if len(encoded) > maxImageEncodedLen {
		return fmt.Errorf("%w: image exceeds maximum size", ErrValidation)
	}
	if _, err := base64.StdEncoding.DecodeString(encoded); err != nil {
		return fmt.Errorf("%w: image is not valid base64", ErrValidation)
	}
	return nil
}
