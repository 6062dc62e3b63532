package domain

// MonthlyOrders representa os pedidos de um mês
type MonthlyOrders struct {
	Month          string   `json:"month"`
	Orders         int      `json:"orders"`
	Buyers         int      `json:"buyers"`
	OrdersPerBuyer *float64 `json:"orders_per_buyer"`
}

type OrdersReport struct {
	Monthly            []MonthlyOrders `json:"monthly"`
	MeanOrders         *float64        `json:"mean_orders"`
	MeanOrdersPerBuyer *float64        `json:"mean_orders_per_buyer"`
}
