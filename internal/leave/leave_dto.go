package leave

import "io"

// SubmitLeaveRequest is bound from JSON or multipart form fields.
type SubmitLeaveRequest struct {
	EmployeeID     string `json:"employee_id" form:"employee_id" binding:"required,max=64"`
	FirstName      string `json:"first_name" form:"first_name" binding:"required,max=100"`
	LastName       string `json:"last_name" form:"last_name" binding:"required,max=100"`
	Email          string `json:"email" form:"email" binding:"required,email"`
	Position       string `json:"position" form:"position" binding:"max=100"`
	Phone          string `json:"phone" form:"phone" binding:"max=30"`
	ManagerID      string `json:"manager_id" form:"manager_id" binding:"required,max=64"`
	ManagerName    string `json:"manager_name" form:"manager_name" binding:"max=200"`
	ManagerEmail   string `json:"manager_email" form:"manager_email" binding:"required,email"`
	LeaveType      string `json:"leave_type" form:"leave_type" binding:"required"`
	LeaveStartDate string `json:"leave_start_date" form:"leave_start_date"`
	LeaveEndDate   string `json:"leave_end_date" form:"leave_end_date"`
	LeaveReason    string `json:"leave_reason" form:"leave_reason"`
	Comments       string `json:"comments" form:"comments"`
	LeaveStatus    string `json:"leave_status" form:"leave_status"`
}

type UpdateLeaveRequest struct {
	LeaveType      string `json:"leave_type" binding:"required"`
	LeaveStartDate string `json:"leave_start_date" binding:"required"`
	LeaveEndDate   string `json:"leave_end_date" binding:"required"`
}

type RejectLeaveRequest struct {
	Reason string `json:"reason" binding:"required,max=1000"`
}

// Document is an uploaded medical document.
type Document struct {
	Name    string
	Size    int64
	Content io.Reader
}

type LeaveResponse struct {
	ID              string  `json:"id"`
	EmployeeID      string  `json:"employee_id"`
	FirstName       string  `json:"first_name"`
	LastName        string  `json:"last_name"`
	Email           string  `json:"email"`
	Position        string  `json:"position"`
	Phone           string  `json:"phone"`
	ManagerID       string  `json:"manager_id"`
	ManagerName     string  `json:"manager_name"`
	ManagerEmail    string  `json:"manager_email"`
	LeaveType       string  `json:"leave_type"`
	LeaveStartDate  string  `json:"leave_start_date"`
	LeaveEndDate    string  `json:"leave_end_date"`
	Duration        int     `json:"duration"`
	DurationType    string  `json:"duration_type"`
	LeaveReason     string  `json:"leave_reason"`
	Comments        *string `json:"comments,omitempty"`
	MedicalDocument *string `json:"medical_document,omitempty"`
	LeaveStatus     string  `json:"leave_status"`
	RejectionReason *string `json:"rejection_reason,omitempty"`
	DecidedAt       *string `json:"decided_at,omitempty"`
	CreatedAt       string  `json:"created_at"`
}

type DocumentSizeResponse struct {
	Ref  string `json:"ref"`
	Size int64  `json:"size"`
}
