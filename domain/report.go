package domain

const (
	MovementSale     = "VENTA"
	MovementPurchase = "COMPRA"
)

type SalesSummary struct {
	Total     float64 `json:"total_ventas"`
	ItemsSold int64   `json:"productos_vendidos"`
	Count     int64   `json:"num_ventas"`
}

type PurchasesSummary struct {
	Total float64 `json:"total_compras"`
	Count int64   `json:"num_compras"`
}

type DailyReport struct {
	Sales     SalesSummary     `json:"ventas"`
	Purchases PurchasesSummary `json:"compras"`
}

type Movement struct {
	Kind     string  `db:"tipo" json:"tipo"`
	Product  string  `db:"producto" json:"producto"`
	Quantity int64   `db:"cantidad" json:"cantidad"`
	Total    float64 `db:"total" json:"total"`
	Date     string  `db:"fecha" json:"fecha"`
}

type DailyMovements struct {
	Day            string     `json:"-"`
	Movements      []Movement `json:"movimientos"`
	TotalSales     float64    `json:"totalVentas"`
	TotalPurchases float64    `json:"totalCompras"`
	Profit         float64    `json:"ganancia"`
}
