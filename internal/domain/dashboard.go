package domain

// DashboardStats aggregates the numbers shown on the dashboard home.
type DashboardStats struct {
	TotalUsers          int     `json:"totalUsers"`
	TotalEmployees      int     `json:"totalEmployees"`
	ActiveSubscriptions int     `json:"activeSubscriptions"`
	MonthlyRevenue      float64 `json:"monthlyRevenue"`
}
