package procurement

// DemandRow is one order item of a PLACED order joined to its product,
// as read from storage before aggregation.
type DemandRow struct {
	ProductID   int64
	ProductName string
	Unit        string
	Quantity    int
}

// Line is the aggregated outstanding demand for one product across all
// PLACED orders.
type Line struct {
	ProductID     int64  `json:"productId"`
	ProductName   string `json:"productName"`
	TotalQuantity int    `json:"totalQuantity"`
	Unit          string `json:"unit"`
}
