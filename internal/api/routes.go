// ABOUTME: Endpoint path catalogue for the three backend namespaces
// ABOUTME: Paths are relative to the HXM, IAM auth, or A365 main base URL

package api

// IAM auth namespace (relative to AuthURL)
const (
	SignIn     = "/signin"
	VerifyOTP  = "/verify-otp"
	DomainList = "/domain"
	GetMenu    = "/get-menu"
	RenewToken = "/generate/renew-token"
)

// HXM namespace (relative to HXMURL)
const (
	UserProfile       = "/api/employees/profile"
	UserProfileUpdate = "/api/employees/profile/update"

	RequestTypes     = "/hxm/request/getrequesttypelist"
	SaveRequest      = "/hxm/request/saverequest"
	GetRequestList   = "/hxm/request/getrequestlist"
	GetRequestDetail = "/hxm/request/getrequestdetail"
	DeleteRequest    = "/hxm/request/deleterequest"

	TransportationTypes = "/hxm/request/getTransportationType"
	CarsList            = "/hxm/request/getCarList"
	DriversList         = "/hxm/request/getDriverList"
	ReservationTypes    = "/hxm/request/reservationtypelist"
	RoomTypes           = "/hxm/request/getRoomType"
	RoomRequestList     = "/hxm/request/getRoomRequestList"
	ProductList         = "/hxm/request/getProductList"
	ProjectList         = "/hxm/request/getProjectList"
	TravelTypeList      = "/hxm/request/getModeoftravelList"
	VehicleUseList      = "/hxm/request/getVehicleuseList"
	ShiftTime           = "/hxm/request/getshifttime"
	GapTime             = "/hxm/request/requestgaptime"

	ApprovalList   = "/hxm/approval/approvallist"
	ApprovalDetail = "/hxm/approval/getapprovaldetail"
	SaveApproval   = "/hxm/approval/saveapproval"

	SaveLeave       = "/hxm/leave/saveleave"
	LeaveList       = "/hxm/leave/getleavelist"
	LeaveSummary    = "/hxm/leave/totalleavetaken"
	LeaveDetail     = "/hxm/leave/getleavedetail"
	DeleteLeave     = "/hxm/leave/deleteleaverequest"
	EmpLeaveTypes   = "/hxm/leave/empleavetypelist"
	LeaveTypeList   = "/hxm/leave/leavetypelist"
	HandoverPersons = "/hxm/leave/handoverpersonlist"

	ClaimList   = "/hxm/claim/getclaimlist"
	SaveClaim   = "/hxm/claim/saveclaimlist"
	ClaimDetail = "/hxm/claim/getClaimDetail"
	DeleteClaim = "/hxm/claim/deleteclaimrequest"
	ClaimTypes  = "/hxm/claim/claimtypelist"

	CurrencyTypes = "/hxm/setup/getSetupList/currency"
	MemberList    = "/hxm/integration/memberlist"
	PhotoUpload   = "/hxm/integration/photoupload"
)

// A365 main namespace (relative to MainURL)
const (
	TeamList             = "/api/teams"
	TeamByID             = "/api/teams/by-id"
	TeamMemberAttendance = "/api/teams/teamMemberAttendance"
	TeamLeaveSummary     = "/api/teams/leaveSummary"
	TeamEmployeeRank     = "/api/teams/employee/rank"
	UserProfileByID      = "/api/teams/employees/profile"
	CalendarView         = "/api/checkin/calendarView"
	Holidays             = "/api/checkin/holidays"
	CheckinHome          = "/api/checkin/home"
	CheckinMonthly       = "/api/checkin/monthly-summary"
)
