package httphandler

import (
	"github.com/niksmo/storefront/internal/core/catalog"
	"github.com/niksmo/storefront/internal/core/domain"
)

type (
	Category struct {
		ID       string    `json:"id"`
		Name     string    `json:"name"`
		Products []Product `json:"products"`
	}

	Product struct {
		ID              int64     `json:"id"`
		Name            string    `json:"name"`
		Price           float64   `json:"price"`
		PriceLabel      string    `json:"price_label"`
		Image           string    `json:"image,omitempty"`
		CategoryID      string    `json:"category_id"`
		CategoryName    string    `json:"category_name,omitempty"`
		Description     string    `json:"description,omitempty"`
		InventoryAmount int       `json:"inventory_amount"`
		Rating          *Rating   `json:"rating,omitempty"`
		Comments        []Comment `json:"comments"`
	}

	Rating struct {
		Average float64 `json:"average"`
		Label   string  `json:"label"`
		Stars   int     `json:"stars"`
	}

	Comment struct {
		Rating int    `json:"rating"`
		Text   string `json:"text"`
	}

	NewProduct struct {
		Name            string  `json:"name"`
		Price           float64 `json:"price"`
		Description     string  `json:"description"`
		InventoryAmount int     `json:"inventory_amount"`
	}
)

type (
	CartItem struct {
		Amount int `json:"amount"`
	}

	CartLine struct {
		Code           int64   `json:"code"`
		Name           string  `json:"name"`
		Amount         int     `json:"amount"`
		PriceLabel     string  `json:"price_label"`
		AmountLabel    string  `json:"amount_label"`
		LineTotal      float64 `json:"line_total"`
		LineTotalLabel string  `json:"line_total_label"`
	}

	Cart struct {
		Lines      []CartLine `json:"lines"`
		Items      int        `json:"items"`
		Total      float64    `json:"total"`
		TotalLabel string     `json:"total_label"`
	}
)

type Customer struct {
	ID                 int64  `json:"id,omitempty"`
	Name               string `json:"name"`
	LastName           string `json:"last_name"`
	CPF                int64  `json:"cpf"`
	Telephone          int64  `json:"telephone"`
	Address            string `json:"address"`
	City               string `json:"city"`
	State              string `json:"state"`
	ZipCode            string `json:"zip_code"`
	ProfileImage       string `json:"profile_image,omitempty"`
	Email              string `json:"email"`
	Password           string `json:"password,omitempty"`
	CardNumber         string `json:"card_number"`
	CardCVC            string `json:"card_cvc"`
	CardName           string `json:"card_name"`
	CardExpirationDate string `json:"card_expiration_date"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func categoriesFromViews(vs []catalog.CategoryView) []Category {
	cs := make([]Category, len(vs))
	for i, v := range vs {
		cs[i] = Category{
			ID:       v.ID,
			Name:     v.Name,
			Products: make([]Product, len(v.Products)),
		}
		for j, p := range v.Products {
			cs[i].Products[j] = productFromView(p)
		}
	}
	return cs
}

func productFromView(v catalog.ProductView) Product {
	p := Product{
		ID:              v.ID,
		Name:            v.Name,
		Price:           v.Price,
		PriceLabel:      v.PriceLabel,
		Image:           v.Image,
		CategoryID:      v.CategoryID,
		CategoryName:    v.CategoryName,
		Description:     v.Description,
		InventoryAmount: v.InventoryAmount,
		Comments:        make([]Comment, len(v.Comments)),
	}

	if v.Rating != nil {
		p.Rating = &Rating{
			Average: v.Rating.Average,
			Label:   v.Rating.Label,
			Stars:   v.Rating.Stars,
		}
	}

	for i, c := range v.Comments {
		p.Comments[i] = Comment{Rating: c.Rating, Text: c.Text}
	}
	return p
}

func (p NewProduct) toDomain() domain.NewProduct {
	return domain.NewProduct{
		Name:            p.Name,
		Price:           p.Price,
		Description:     p.Description,
		InventoryAmount: p.InventoryAmount,
	}
}

func cartFromSummary(s domain.CartSummary) Cart {
	c := Cart{
		Lines:      make([]CartLine, len(s.Lines)),
		Items:      s.Items,
		Total:      s.Total,
		TotalLabel: s.TotalLabel,
	}
	for i, l := range s.Lines {
		c.Lines[i] = CartLine{
			Code:           l.Code,
			Name:           l.Name,
			Amount:         l.Amount,
			PriceLabel:     l.PriceLabel,
			AmountLabel:    l.AmountLabel,
			LineTotal:      l.LineTotalAmount,
			LineTotalLabel: l.LineTotalLabel,
		}
	}
	return c
}

// Customer mirrors domain.Customer field by field.
func (c Customer) toDomain() domain.Customer {
	return domain.Customer(c)
}

// customerFromDomain never echoes the password back.
func customerFromDomain(c domain.Customer) Customer {
	v := Customer(c)
	v.Password = ""
	return v
}
