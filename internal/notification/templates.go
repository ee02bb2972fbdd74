package notification

import (
	"fmt"
	"strings"
	"time"
)

// LeaveDetails is the part of a leave request the e-mails talk about.
type LeaveDetails struct {
	ID           string    `json:"id"`
	EmployeeID   string    `json:"employee_id"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Email        string    `json:"email"`
	Position     string    `json:"position"`
	Phone        string    `json:"phone"`
	ManagerEmail string    `json:"manager_email"`
	LeaveType    string    `json:"leave_type"`
	StartDate    time.Time `json:"start_date"`
	EndDate      time.Time `json:"end_date"`
	Duration     int       `json:"duration"`
	DurationType string    `json:"duration_type"`
	Comments     string    `json:"comments"`
	Status       string    `json:"status"`
	Reason       string    `json:"reason"`
}

func (d LeaveDetails) displayName() string {
	return strings.TrimSpace(d.LastName + " " + d.FirstName)
}

const dateLayout = "2006-01-02"

// SubmissionNotice asks the manager to decide on a new request. baseURL is
// the public API root the approve/reject links point at.
func SubmissionNotice(d LeaveDetails, baseURL string) Message {
	name := d.displayName()
	comments := d.Comments
	if comments == "" {
		comments = "N/A"
	}
	durationType := d.DurationType
	if durationType == "" {
		durationType = "Days"
	}
	base := strings.TrimRight(baseURL, "/")

	var b strings.Builder
	b.WriteString("Hi Sir/Madam,\n\n")
	fmt.Fprintf(&b, "%s has requested %s leave.\n", name, d.LeaveType)
	b.WriteString("Details:\n")
	fmt.Fprintf(&b, "Employee Id: %s\n", d.EmployeeID)
	fmt.Fprintf(&b, "Employee Email: %s\n", d.Email)
	fmt.Fprintf(&b, "Phone: %s\n", d.Phone)
	fmt.Fprintf(&b, "Position: %s\n", d.Position)
	fmt.Fprintf(&b, "Leave Type: %s\n", d.LeaveType)
	fmt.Fprintf(&b, "Start Date: %s\n", d.StartDate.Format(dateLayout))
	fmt.Fprintf(&b, "End Date: %s\n", d.EndDate.Format(dateLayout))
	fmt.Fprintf(&b, "Duration: %d %s\n", d.Duration, durationType)
	fmt.Fprintf(&b, "Comments: %s\n\n", comments)
	b.WriteString("Please click one of the options below:\n")
	fmt.Fprintf(&b, "[Approve Leave](%s/api/v1/leaves/%s/approve)\n", base, d.ID)
	fmt.Fprintf(&b, "[Reject Leave](%s/api/v1/leaves/%s/reject)\n\n", base, d.ID)
	b.WriteString("Regards,\n")
	b.WriteString(name)

	return Message{
		To:      d.ManagerEmail,
		Subject: "Leave Approval Request from " + name,
		Body:    b.String(),
	}
}

// DecisionNotice tells the employee the request was decided.
func DecisionNotice(d LeaveDetails) Message {
	body := fmt.Sprintf("Hi %s,\n\nYour leave request from %s to %s has been %s.\n\nRegards,\n\nManager",
		d.displayName(),
		d.StartDate.Format(dateLayout),
		d.EndDate.Format(dateLayout),
		d.Status,
	)
	return Message{
		To:      d.Email,
		Subject: "Leave request " + d.Status,
		Body:    body,
	}
}

// RejectionNotice tells the employee the request was rejected and why.
func RejectionNotice(d LeaveDetails) Message {
	body := fmt.Sprintf("Dear %s,\n\nYour leave request has been %s.\n\nReason: %s\n\nIf you have any questions, please contact your manager.\n\nRegards,\n\nManager",
		d.displayName(),
		strings.ToLower(d.Status),
		d.Reason,
	)
	return Message{
		To:      d.Email,
		Subject: "Leave approval request " + d.Status,
		Body:    body,
	}
}
