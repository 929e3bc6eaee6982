package models

// PopularDish is a dish ranked by total quantity ordered across the
// merchant's whole order history.
type PopularDish struct {
	Dish
	TotalOrdered int `json:"total_ordered"`
}

// MonthlyRevenue is the delivered-order revenue of one calendar month
type MonthlyRevenue struct {
	Month   string  `json:"month"` // YYYY-MM
	Revenue float64 `json:"revenue"`
}

// DashboardStats is the derived merchant dashboard. It is computed on
// demand and never persisted.
type DashboardStats struct {
	TotalOrders    int              `json:"total_orders"`
	TotalRevenue   float64          `json:"total_revenue"`
	TotalCustomers int              `json:"total_customers"`
	TotalDishes    int              `json:"total_dishes"`
	AverageRating  float64          `json:"average_rating"`
	RecentOrders   []Order          `json:"recent_orders"`
	PopularDishes  []PopularDish    `json:"popular_dishes"`
	MonthlyRevenue []MonthlyRevenue `json:"monthly_revenue"`
}
