package backend

import (
	"bytes"
	"encoding/json"
	"strconv"

	"github.com/niksmo/storefront/internal/core/domain"
)

type (
	// envelope wraps every backend response. A set error means the call
	// failed, whatever the status code.
	envelope struct {
		Data  json.RawMessage `json:"data"`
		Error json.RawMessage `json:"error"`
	}

	catalogData struct {
		CategoriesObj        map[string][]productDTO `json:"categoriesObj"`
		CategoriesDictionary map[string]string       `json:"categoriesDictionary"`
	}

	productDTO struct {
		ID              int64         `json:"id"`
		Code            int64         `json:"code"`
		Name            string        `json:"name"`
		Price           float64       `json:"price"`
		Image           string        `json:"image"`
		Category        looseID       `json:"category"`
		CategoryObj     []categoryDTO `json:"category_obj"`
		Description     string        `json:"description"`
		InventoryAmount int           `json:"inventory_amount"`
		Comments        []commentDTO  `json:"comments"`
	}

	categoryDTO struct {
		Name string `json:"name"`
	}

	commentDTO struct {
		Rating int    `json:"rating"`
		Text   string `json:"text"`
	}

	orderDTO struct {
		Products   []orderProductDTO `json:"products"`
		CustomerID int64             `json:"customerId"`
	}

	orderProductDTO struct {
		Code   int64 `json:"code"`
		Amount int   `json:"amount"`
	}

	productListQuery struct {
		ProductList []string `json:"productList"`
	}

	newProductDTO struct {
		Name            string  `json:"name"`
		Price           float64 `json:"price"`
		Description     string  `json:"description"`
		InventoryAmount int     `json:"inventory_amount"`
	}

	customerDTO struct {
		ID                 int64  `json:"id,omitempty"`
		Name               string `json:"name"`
		LastName           string `json:"lastName"`
		CPF                int64  `json:"cpf"`
		Telephone          int64  `json:"telephone"`
		Address            string `json:"address"`
		City               string `json:"city"`
		State              string `json:"state"`
		ZipCode            string `json:"zipCode"`
		ProfileImage       string `json:"profileImage,omitempty"`
		Email              string `json:"email"`
		Password           string `json:"password"`
		CardNumber         string `json:"cardNumber"`
		CardCVC            string `json:"cardCVC"`
		CardName           string `json:"cardName"`
		CardExpirationDate string `json:"cardExpirationDate"`
	}
)

// looseID accepts both JSON numbers and strings.
type looseID string

func (id *looseID) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		return nil
	}

	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*id = looseID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*id = looseID(n.String())
	return nil
}

// isSet reports whether a raw JSON value is truthy: null, false, 0 and ""
// are not.
func isSet(raw json.RawMessage) bool {
	v := bytes.TrimSpace(raw)
	if len(v) == 0 {
		return false
	}

	switch string(v) {
	case "null", "false", `""`, "0":
		return false
	}
	return true
}

func (p productDTO) toDomain(categoryID string) domain.Product {
	v := domain.Product{
		ID:              p.ID,
		Name:            p.Name,
		Price:           p.Price,
		Image:           p.Image,
		CategoryID:      string(p.Category),
		Description:     p.Description,
		InventoryAmount: p.InventoryAmount,
	}

	if v.ID == 0 {
		v.ID = p.Code
	}

	if v.CategoryID == "" {
		v.CategoryID = categoryID
	}

	if len(p.CategoryObj) != 0 {
		v.CategoryName = p.CategoryObj[0].Name
	}

	if len(p.Comments) != 0 {
		v.Comments = make([]domain.Comment, len(p.Comments))
		for i, c := range p.Comments {
			v.Comments[i] = domain.Comment{Rating: c.Rating, Text: c.Text}
		}
	}
	return v
}

func (c catalogData) toDomain() domain.Catalog {
	v := domain.Catalog{
		Groups: make(domain.CategoryGroups, len(c.CategoriesObj)),
		Names:  make(domain.CategoryNames, len(c.CategoriesDictionary)),
	}

	for categoryID, ps := range c.CategoriesObj {
		products := make([]domain.Product, len(ps))
		for i, p := range ps {
			products[i] = p.toDomain(categoryID)
		}
		v.Groups[categoryID] = products
	}

	for categoryID, name := range c.CategoriesDictionary {
		v.Names[categoryID] = name
	}
	return v
}

func orderFromDomain(o domain.Order) orderDTO {
	v := orderDTO{
		Products:   make([]orderProductDTO, len(o.Products)),
		CustomerID: o.CustomerID,
	}
	for i, e := range o.Products {
		v.Products[i] = orderProductDTO{Code: e.Code, Amount: e.Amount}
	}
	return v
}

func productListFromCodes(codes []int64) productListQuery {
	q := productListQuery{ProductList: make([]string, len(codes))}
	for i, code := range codes {
		q.ProductList[i] = strconv.FormatInt(code, 10)
	}
	return q
}

func newProductFromDomain(p domain.NewProduct) newProductDTO {
	return newProductDTO{
		Name:            p.Name,
		Price:           p.Price,
		Description:     p.Description,
		InventoryAmount: p.InventoryAmount,
	}
}

// customerDTO mirrors domain.Customer field by field.
func customerFromDomain(c domain.Customer) customerDTO {
	return customerDTO(c)
}

func (c customerDTO) toDomain() domain.Customer {
	return domain.Customer(c)
}
