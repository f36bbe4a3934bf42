package domain

type (
	CartEntry struct {
		Code   int64
		Amount int
	}

	// Cart is keyed by product code. Entries are unordered.
	Cart map[int64]CartEntry
)

type (
	CartLine struct {
		Code            int64
		Name            string
		Amount          int
		PriceLabel      string
		AmountLabel     string
		LineTotalLabel  string
		LineTotalAmount float64
	}

	CartSummary struct {
		Lines      []CartLine
		Items      int
		Total      float64
		TotalLabel string
	}
)

type Order struct {
	Products   []CartEntry
	CustomerID int64
}

// Shopper identifies the client a cart belongs to.
type Shopper struct {
	CustomerID string
	Token      string
}

func (s Shopper) Authorized() bool {
	return s.CustomerID != "" && s.Token != ""
}
