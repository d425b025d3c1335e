package leave

type CreateLeaveRequest struct {
	EmployeeID uint    `json:"employee_id"`
	StartDate  string  `json:"start_date" binding:"required"`
	EndDate    string  `json:"end_date" binding:"required"`
	Days       float64 `json:"days"`
	LeaveType  string  `json:"leave_type" binding:"required"`
	Reason     string  `json:"reason"`
}

type ReviewLeaveRequest struct {
	Comment string `json:"comment"`
}

type LeaveFilterRequest struct {
	EmployeeID uint   `form:"employee_id"`
	Status     string `form:"status" binding:"omitempty,oneof=Pending Approved Rejected"`
	From       string `form:"from"`
	To         string `form:"to"`
}

type LeaveResponse struct {
	ID            uint    `json:"id"`
	EmployeeID    uint    `json:"employee_id"`
	EmployeeName  string  `json:"employee_name,omitempty"`
	StartDate     string  `json:"start_date"`
	EndDate       string  `json:"end_date"`
	Days          float64 `json:"days"`
	LeaveType     string  `json:"leave_type"`
	Reason        string  `json:"reason"`
	Status        string  `json:"status"`
	AppliedAt     string  `json:"applied_at"`
	ReviewedBy    *uint   `json:"reviewed_by,omitempty"`
	ReviewedAt    *string `json:"reviewed_at,omitempty"`
	ReviewComment *string `json:"review_comment,omitempty"`
}
