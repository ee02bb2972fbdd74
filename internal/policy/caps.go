package policy

import (
	"fmt"
	"strings"
)

type LeaveType string

const (
	LeaveTypeSick      LeaveType = "SICK"
	LeaveTypeVacation  LeaveType = "VACATION"
	LeaveTypeCasual    LeaveType = "CASUAL"
	LeaveTypeMarriage  LeaveType = "MARRIAGE"
	LeaveTypePaternity LeaveType = "PATERNITY"
	LeaveTypeMaternity LeaveType = "MATERNITY"
	LeaveTypeOthers    LeaveType = "OTHERS"
)

// SickDocumentThreshold is the longest sick leave, in business days, that
// needs no medical document.
const SickDocumentThreshold = 2

var caps = map[LeaveType]int{
	LeaveTypeSick:      6,
	LeaveTypeVacation:  4,
	LeaveTypeCasual:    4,
	LeaveTypeMarriage:  3,
	LeaveTypePaternity: 2,
	LeaveTypeMaternity: 4,
	LeaveTypeOthers:    2,
}

func LeaveTypes() []LeaveType {
	return []LeaveType{
		LeaveTypeSick,
		LeaveTypeVacation,
		LeaveTypeCasual,
		LeaveTypeMarriage,
		LeaveTypePaternity,
		LeaveTypeMaternity,
		LeaveTypeOthers,
	}
}

func ParseLeaveType(v string) (LeaveType, bool) {
	t := LeaveType(strings.ToUpper(strings.TrimSpace(v)))
	return t, t.Valid()
}

func (t LeaveType) Valid() bool {
	_, ok := caps[t]
	return ok
}

func Cap(t LeaveType) (int, bool) {
	c, ok := caps[t]
	return c, ok
}

func RequiresMedicalDocument(t LeaveType, days int) bool {
	return t == LeaveTypeSick && days > SickDocumentThreshold
}

type LimitError struct {
	LeaveType LeaveType
	Cap       int
	Booked    int
	Requested int
}

func (e *LimitError) Error() string {
	return fmt.Sprintf("You have exhausted your %s leave limit of %d days.", strings.ToLower(string(e.LeaveType)), e.Cap)
}

// CheckBalance fails with *LimitError when booked + requested exceeds the cap
// of t. Unknown leave types are rejected with an error that is not a
// LimitError.
func CheckBalance(t LeaveType, booked, requested int) error {
	c, ok := caps[t]
	if !ok {
		return fmt.Errorf("unknown leave type %q", t)
	}
	if booked+requested > c {
		return &LimitError{LeaveType: t, Cap: c, Booked: booked, Requested: requested}
	}
	return nil
}
