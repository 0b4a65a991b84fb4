package handler

import (
	"context"
	"time"

	"github.com/mercadolocal/catalog-system/internal/core/domain"
	"github.com/mercadolocal/catalog-system/internal/core/ports"
)

type sellerSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type productResponse struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Price       float64       `json:"price"`
	Stock       int           `json:"stock"`
	Active      bool          `json:"active"`
	Available   bool          `json:"available"`
	Seller      sellerSummary `json:"seller"`
	// Image carries the data-URI form and is only populated on detail
	// responses; listings omit the payload for size.
	Image     string    `json:"image,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toProductResponse(p *domain.Product, seller sellerSummary, includeImage bool) productResponse {
	resp := productResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Stock:       p.Stock,
		Active:      p.Active,
		Available:   p.Available(),
		Seller:      seller,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
	if includeImage {
		resp.Image = p.ImageDataURL()
	}
	return resp
}

// sellerSummaries resolves each distinct seller referenced by the products,
// one store lookup per seller. Unresolvable sellers degrade to an id-only
// summary rather than failing the listing.
func sellerSummaries(ctx context.Context, users ports.UserService, products []domain.Product) map[string]sellerSummary {
	out := make(map[string]sellerSummary)
	for i := range products {
		id := products[i].SellerID
		if _, seen := out[id]; seen {
			continue
		}
		seller, err := users.GetByID(ctx, id)
		if err != nil {
			out[id] = sellerSummary{ID: id}
			continue
		}
		out[id] = sellerSummary{ID: seller.ID, Name: seller.DisplayName(), Email: seller.Email}
	}
	return out
}

func toProductListing(ctx context.Context, users ports.UserService, products []domain.Product) []productResponse {
	sellers := sellerSummaries(ctx, users, products)
	out := make([]productResponse, 0, len(products))
	for i := range products {
		p := &products[i]
		out = append(out, toProductResponse(p, sellers[p.SellerID], false))
	}
	return out
}
