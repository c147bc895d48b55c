// ABOUTME: Data records for the HXM and A365 main backends
// ABOUTME: JSON tags follow the backend contract; fields are passed through untouched

package models

// Request status codes used by list filters and records.
const (
	StatusPending  = "1"
	StatusApproved = "2"
	StatusRejected = "3"
	StatusAll      = "4"
)

// StatusLabel maps a request status code to a display label.
func StatusLabel(code string) string {
	switch code {
	case StatusPending:
		return "Pending"
	case StatusApproved:
		return "Approved"
	case StatusRejected:
		return "Rejected"
	default:
		return "Unknown"
	}
}

// Approver identifies an employee referenced by a request (approver,
// member, accompanying person, or handover).
type Approver struct {
	Syskey   string `json:"syskey"`
	Name     string `json:"name"`
	UserID   string `json:"userid"`
	Position string `json:"position"`
	Photo    string `json:"photo"`
}

// Request is one row of the request or approval list. The backend reuses
// the same record for every request type; type-specific fields are simply
// empty for other types.
type Request struct {
	Syskey             string `json:"syskey"`
	EID                string `json:"eid"`
	Name               string `json:"name"`
	RefNo              int    `json:"refno"`
	RequestType        string `json:"requesttype"`
	RequestTypeDesc    string `json:"requesttypedesc"`
	RequestSubType     string `json:"requestsubtype"`
	RequestSubTypeDesc string `json:"requestsubtypedesc"`
	RequestStatus      string `json:"requeststatus"`

	StartDate string `json:"startdate"`
	EndDate   string `json:"enddate"`
	StartTime string `json:"starttime"`
	EndTime   string `json:"endtime"`
	Date      string `json:"date"`
	Time      string `json:"time"`
	Duration  string `json:"duration"`

	Approver          string     `json:"approver"`
	ApprovedBy        string     `json:"approvedby"`
	EmployeeSyskey    string     `json:"employee_syskey"`
	SelectedApprovers []Approver `json:"selectedApprovers"`

	// Transportation
	PickupPlace  string `json:"pickupplace"`
	DropoffPlace string `json:"dropoffplace"`
	Car          string `json:"car"`
	Driver       string `json:"driver"`

	// Financial
	Amount          float64 `json:"amount"`
	CurrencyType    string  `json:"currencytype"`
	EstimatedBudget float64 `json:"estimatedbudget"`

	// Reservation
	Rooms     string `json:"rooms"`
	RoomsDesc string `json:"roomsdesc"`
	MaxPeople int    `json:"maxpeople"`

	// Travel
	DepartureDate string   `json:"departuredate"`
	ArrivalDate   string   `json:"arrivaldate"`
	FromPlace     string   `json:"fromplace"`
	ToPlace       string   `json:"toplace"`
	ModeOfTravel  []string `json:"modeoftravel"`
	Days          float64  `json:"days"`

	// Overtime
	OTDay  string `json:"otday"`
	OTType int    `json:"ottype"`

	Remark      string `json:"remark"`
	Comment     string `json:"comment"`
	CreatedDate string `json:"createddate"`
	CreatedTime string `json:"createdtime"`
}

// ApprovalDecision is the payload for saving an approval outcome.
type ApprovalDecision struct {
	Syskey  string `json:"syskey"`
	Status  string `json:"status"`
	Comment string `json:"comment,omitempty"`
	Car     string `json:"car,omitempty"`
	Driver  string `json:"driver,omitempty"`
}

// Claim is one row of the claims list.
type Claim struct {
	Syskey            string     `json:"syskey"`
	Date              string     `json:"date"`
	RefNo             int        `json:"refno"`
	Remark            string     `json:"remark"`
	RequestStatus     string     `json:"requeststatus"`
	RequestType       string     `json:"requesttype"`
	ClaimType         string     `json:"claimtype"`
	ApprovedBy        string     `json:"approvedby"`
	Amount            float64    `json:"amount"`
	CurrencyType      string     `json:"currencytype"`
	SelectedApprovers []Approver `json:"selectedApprovers"`
	FromPlace         string     `json:"fromPlace"`
	ToPlace           string     `json:"toPlace"`
}

// TypeItem is a generic lookup-list entry (request types, claim types,
// currencies, cars, drivers, and so on).
type TypeItem struct {
	Syskey      string `json:"syskey"`
	Description string `json:"description"`
	Code        string `json:"code,omitempty"`
	MaxPeople   int    `json:"maxpeople,omitempty"`
}

// LeaveType carries a leave type with the caller's balance for it.
type LeaveType struct {
	Syskey      string  `json:"syskey"`
	Description string  `json:"description"`
	Balance     float64 `json:"balance"`
	Used        float64 `json:"used"`
	Remaining   float64 `json:"remaining"`
}

// LeaveSummaryItem is one row of the leave-taken summary.
type LeaveSummaryItem struct {
	LeaveType     string  `json:"leaveType"`
	TotalDays     float64 `json:"totalDays"`
	UsedDays      float64 `json:"usedDays"`
	RemainingDays float64 `json:"remainingDays"`
	PendingDays   float64 `json:"pendingDays"`
}

// UserProfile is the employee record returned by the profile endpoint.
type UserProfile struct {
	Syskey     string `json:"syskey"`
	UserID     string `json:"userid"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Position   string `json:"position"`
	Department string `json:"department"`
	Division   string `json:"division"`
	Photo      string `json:"photo"`
	Domain     string `json:"domain"`
	DomainName string `json:"domainName,omitempty"`
	UserSyskey string `json:"usersyskey,omitempty"`
	Role       string `json:"role,omitempty"`
}

// TeamMember is one employee in the team hierarchy, including the
// attendance counters the main service aggregates per member.
type TeamMember struct {
	Syskey     string `json:"syskey"`
	UserName   string `json:"userName"`
	EmployeeID string `json:"employeeId"`
	UserID     string `json:"userid"`
	Rank       string `json:"rank"`
	Department string `json:"department"`
	Division   string `json:"division"`
	TeamID     string `json:"teamId"`
	Level      string `json:"level"`
	Priority   string `json:"priority"`
	Role       string `json:"role"`
	Type       string `json:"type"`
	HasJunior  bool   `json:"hasJunior"`

	WorkingDays      string `json:"workingDays"`
	TimeInCount      string `json:"timeInCount"`
	TimeOutCount     string `json:"timeOutCount"`
	LeaveCount       string `json:"leaveCount"`
	RequiredWorkDays string `json:"requiredWorkDays"`
	TodayIsLeave     string `json:"todayIsLeave"`
	LeaveStatus      int    `json:"leaveStatus"`
	TimeInTime       string `json:"timeInTime"`
	TimeOutTime      string `json:"timeOutTime"`
}

// Team groups members under a named team.
type Team struct {
	TeamID      string       `json:"teamId"`
	TeamName    string       `json:"teamName"`
	Syskey      string       `json:"syskey"`
	TeamMembers []TeamMember `json:"teamMembers,omitempty"`
	Role        string       `json:"role,omitempty"`
}

// TeamPage is the hierarchy view centered on one employee.
type TeamPage struct {
	User    *TeamMember  `json:"user"`
	Seniors []TeamMember `json:"seniors"`
	Juniors []TeamMember `json:"juniors"`
	Teams   []Team       `json:"teams"`
}

// Attendance record types reported by the check-in service.
const (
	AttendanceTimeIn   = 601
	AttendanceTimeOut  = 602
	AttendanceActivity = 603
)

// AttendanceRecord is one check-in event.
type AttendanceRecord struct {
	Syskey       string `json:"syskey"`
	Date         string `json:"date"`
	Time         string `json:"time"`
	Type         int    `json:"type"`
	Description  string `json:"description"`
	Location     string `json:"location"`
	CheckInType  string `json:"checkInType"`
	ActivityType string `json:"activityType"`
	Timezone     string `json:"timezone"`
	EmployeeName string `json:"employeeName"`
}

// CalendarDay is one cell of the monthly attendance calendar. The status
// code distinguishes worked, leave, holiday and absent days.
type CalendarDay struct {
	Date       string `json:"date"`
	StatusCode int    `json:"status_code"`
}

// CheckinSummary aggregates a month of check-in activity.
type CheckinSummary struct {
	WorkingDays      string `json:"workingDays"`
	TimeInCount      string `json:"timeInCount"`
	TimeOutCount     string `json:"timeOutCount"`
	LeaveCount       string `json:"leaveCount"`
	RequiredWorkDays string `json:"requiredWorkDays"`
}

// Holiday is one public-holiday entry.
type Holiday struct {
	Date        string `json:"date"`
	HolidayName string `json:"holidayname"`
}
