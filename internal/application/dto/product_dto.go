package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-panel/internal/domain/entity"
)

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	Code     string          `json:"code" validate:"required,min=1,max=100"`
	Name     string          `json:"name" validate:"required,min=1,max=200"`
	Quantity int64           `json:"quantity" validate:"min=0"`
	Price    decimal.Decimal `json:"price"`
	Category string          `json:"category"`
	Note     string          `json:"note,omitempty"`
}

// UpdateProductRequest entrada para actualizar un producto (campos nil no cambian).
type UpdateProductRequest struct {
	Code     *string          `json:"code" validate:"omitempty,min=1,max=100"`
	Name     *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Quantity *int64           `json:"quantity" validate:"omitempty,min=0"`
	Price    *decimal.Decimal `json:"price"`
	Category *string          `json:"category"`
}

// DeleteProductsRequest body para la baja en lote.
type DeleteProductsRequest struct {
	IDs  []string `json:"ids"`
	Note string   `json:"note,omitempty"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID         string          `json:"id"`
	Code       string          `json:"code"`
	Name       string          `json:"name"`
	Quantity   int64           `json:"quantity"`
	Price      decimal.Decimal `json:"price"`
	Category   string          `json:"category"`
	StockValue decimal.Decimal `json:"stock_value"`
	AddedAt    time.Time       `json:"added_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// NewProductResponse convierte la entidad en respuesta.
func NewProductResponse(p *entity.Product) *ProductResponse {
	if p == nil {
		return nil
	}
	return &ProductResponse{
		ID:         p.ID,
		Code:       p.Code,
		Name:       p.Name,
		Quantity:   p.Quantity,
		Price:      p.Price,
		Category:   p.Category,
		StockValue: p.StockValue(),
		AddedAt:    p.AddedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}

// NewProductListResponse convierte una lista de entidades.
func NewProductListResponse(list []*entity.Product, limit, offset int) *ProductListResponse {
	items := make([]ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *NewProductResponse(p))
	}
	return &ProductListResponse{
		Items: items,
		Page:  PageResponse{Limit: limit, Offset: offset, Total: len(items)},
	}
}
