package balance

type BalanceResponse struct {
	LeaveType string `json:"leave_type"`
	Cap       int    `json:"cap"`
	Booked    int    `json:"booked"`
	Remaining int    `json:"remaining"`
}

type SummaryResponse struct {
	EmployeeID string            `json:"employee_id"`
	Period     int               `json:"period"`
	Balances   []BalanceResponse `json:"balances"`
}
