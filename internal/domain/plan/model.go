package plan

import (
	"github.com/inkmatch/inkmatch/internal/types"
	"github.com/shopspring/decimal"
)

// Plan is a subscription plan in the artist catalog. Price is the flat
// monthly amount in the catalog currency (CLP), never negative.
type Plan struct {
	ID          string          `db:"id" json:"id"`
	Name        string          `db:"name" json:"name"`
	LookupKey   string          `db:"lookup_key" json:"lookup_key"`
	Description string          `db:"description" json:"description"`
	Tier        types.PlanTier  `db:"tier" json:"tier"`
	Price       decimal.Decimal `db:"price" json:"price"`
	Currency    string          `db:"currency" json:"currency"`
	types.BaseModel
}
