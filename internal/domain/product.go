package domain

type Product struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
	ImageURL    string  `json:"image_url"`
	Description string  `json:"description"`
}

type ProductRepository interface {
	FindByID(id int64) (*Product, error)
	FindAll() ([]*Product, error)
	FindFeatured(limit int) ([]*Product, error)
	Create(product *Product) error
	Delete(id int64) error
	CountAll() (int64, error)
}

type CatalogService interface {
	ListFeatured(limit int) ([]*Product, error)
	ListAll() ([]*Product, error)
	GetByID(id int64) (*Product, error)

	// Admin catalog management. Only type coercion is validated at the
	// boundary; negative prices and stock are persisted as sent.
	CreateProduct(product *Product) error
	DeleteProduct(id int64) error
}
