// ABOUTME: HXM service client for requests, approvals, leave, claims, and lookups
// ABOUTME: Tolerant response decoding; static lookup lists are cached for five minutes

package client

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/tidwall/gjson"

	"github.com/Nirvasoft/A365SS/internal/api"
	"github.com/Nirvasoft/A365SS/internal/cache"
	"github.com/Nirvasoft/A365SS/internal/models"
)

const lookupTTL = 5 * time.Minute

// HXM is the client for the HXM service namespace.
type HXM struct {
	base    string
	t       *Transport
	lookups *cache.Cache
}

func NewHXM(baseURL string, t *Transport) *HXM {
	return &HXM{
		base:    baseURL,
		t:       t,
		lookups: cache.New(lookupTTL),
	}
}

// ── Requests ──

// Requests lists the caller's requests, optionally filtered by status.
// StatusAll (or empty) means no filter.
func (c *HXM) Requests(ctx context.Context, status string) ([]models.Request, error) {
	body := map[string]string{}
	if status != "" && status != models.StatusAll {
		body["requeststatus"] = status
	}

	data, err := c.post(ctx, api.GetRequestList, body)
	if err != nil {
		return nil, err
	}
	var out []models.Request
	if err := json.Unmarshal(listRaw(data, "datalist", "data"), &out); err != nil {
		return nil, fmt.Errorf("invalid request list: %w", err)
	}
	return out, nil
}

// RequestDetail fetches one request plus its approver chain.
func (c *HXM) RequestDetail(ctx context.Context, syskey string) (*models.Request, []models.Approver, error) {
	data, err := c.post(ctx, api.GetRequestDetail, map[string]string{"syskey": syskey})
	if err != nil {
		return nil, nil, err
	}

	var detail models.Request
	if raw := gjson.GetBytes(data, "datalist"); raw.IsObject() {
		if err := json.Unmarshal([]byte(raw.Raw), &detail); err != nil {
			return nil, nil, fmt.Errorf("invalid request detail: %w", err)
		}
	}
	var approvers []models.Approver
	if raw := gjson.GetBytes(data, "approverList"); raw.IsArray() {
		if err := json.Unmarshal([]byte(raw.Raw), &approvers); err != nil {
			return nil, nil, fmt.Errorf("invalid approver list: %w", err)
		}
	}
	return &detail, approvers, nil
}

// SaveRequest submits a new or edited request. The payload is the
// type-specific field set assembled by the caller; identity fields are
// injected by the transport.
func (c *HXM) SaveRequest(ctx context.Context, payload map[string]interface{}) error {
	_, err := c.post(ctx, api.SaveRequest, payload)
	return err
}

func (c *HXM) DeleteRequest(ctx context.Context, syskey string) error {
	_, err := c.post(ctx, api.DeleteRequest, map[string]string{"syskey": syskey})
	return err
}

// RequestTypes returns the configured request types (cached).
func (c *HXM) RequestTypes(ctx context.Context) ([]models.TypeItem, error) {
	return c.cachedGetLookup(ctx, api.RequestTypes)
}

// ── Approvals ──

// Approvals lists requests awaiting the caller's decision within the
// given yyyyMMdd date range.
func (c *HXM) Approvals(ctx context.Context, fromDate, toDate, status string) ([]models.Request, error) {
	body := map[string]string{
		"fromdate": fromDate,
		"todate":   toDate,
		"type":     "",
		"status":   status,
	}
	data, err := c.post(ctx, api.ApprovalList, body)
	if err != nil {
		return nil, err
	}
	var out []models.Request
	if err := json.Unmarshal(listRaw(data, "datalist", "data"), &out); err != nil {
		return nil, fmt.Errorf("invalid approval list: %w", err)
	}
	return out, nil
}

func (c *HXM) ApprovalDetail(ctx context.Context, syskey string) (*models.Request, error) {
	data, err := c.post(ctx, api.ApprovalDetail, map[string]string{"syskey": syskey})
	if err != nil {
		return nil, err
	}
	var detail models.Request
	if raw := gjson.GetBytes(data, "datalist"); raw.IsObject() {
		if err := json.Unmarshal([]byte(raw.Raw), &detail); err != nil {
			return nil, fmt.Errorf("invalid approval detail: %w", err)
		}
	}
	return &detail, nil
}

// SaveApproval records an approve/reject decision.
func (c *HXM) SaveApproval(ctx context.Context, decision models.ApprovalDecision) error {
	_, err := c.post(ctx, api.SaveApproval, decision)
	return err
}

// ── Leave ──

func (c *HXM) LeaveList(ctx context.Context, status string) ([]models.Request, error) {
	body := map[string]string{}
	if status != "" && status != models.StatusAll {
		body["requeststatus"] = status
	}
	data, err := c.post(ctx, api.LeaveList, body)
	if err != nil {
		return nil, err
	}
	var out []models.Request
	if err := json.Unmarshal(listRaw(data, "datalist", "data"), &out); err != nil {
		return nil, fmt.Errorf("invalid leave list: %w", err)
	}
	return out, nil
}

// LeaveTypes returns the caller's leave types with balances. Not cached:
// balances move with every approved request.
func (c *HXM) LeaveTypes(ctx context.Context) ([]models.LeaveType, error) {
	data, err := c.t.Get(ctx, c.base+api.EmpLeaveTypes, nil)
	if err != nil {
		return nil, err
	}
	var out []models.LeaveType
	if err := json.Unmarshal(listRaw(data, "datalist", "data"), &out); err != nil {
		return nil, fmt.Errorf("invalid leave type list: %w", err)
	}
	return out, nil
}

func (c *HXM) LeaveSummary(ctx context.Context) ([]models.LeaveSummaryItem, error) {
	data, err := c.post(ctx, api.LeaveSummary, map[string]string{})
	if err != nil {
		return nil, err
	}
	var out []models.LeaveSummaryItem
	if err := json.Unmarshal(listRaw(data, "datalist", "data"), &out); err != nil {
		return nil, fmt.Errorf("invalid leave summary: %w", err)
	}
	return out, nil
}

func (c *HXM) DeleteLeave(ctx context.Context, syskey string) error {
	_, err := c.post(ctx, api.DeleteLeave, map[string]string{"syskey": syskey})
	return err
}

// ── Claims ──

func (c *HXM) Claims(ctx context.Context) ([]models.Claim, error) {
	data, err := c.post(ctx, api.ClaimList, map[string]string{})
	if err != nil {
		return nil, err
	}
	var out []models.Claim
	if err := json.Unmarshal(listRaw(data, "datalist", "data"), &out); err != nil {
		return nil, fmt.Errorf("invalid claim list: %w", err)
	}
	return out, nil
}

func (c *HXM) ClaimDetail(ctx context.Context, syskey string) (*models.Claim, error) {
	data, err := c.post(ctx, api.ClaimDetail, map[string]string{"syskey": syskey})
	if err != nil {
		return nil, err
	}
	var detail models.Claim
	if raw := gjson.GetBytes(data, "datalist"); raw.IsObject() {
		if err := json.Unmarshal([]byte(raw.Raw), &detail); err != nil {
			return nil, fmt.Errorf("invalid claim detail: %w", err)
		}
	}
	return &detail, nil
}

func (c *HXM) SaveClaim(ctx context.Context, payload map[string]interface{}) error {
	_, err := c.post(ctx, api.SaveClaim, payload)
	return err
}

func (c *HXM) DeleteClaim(ctx context.Context, syskey string) error {
	_, err := c.post(ctx, api.DeleteClaim, map[string]string{"syskey": syskey})
	return err
}

// ClaimTypes returns the configured claim types (cached).
func (c *HXM) ClaimTypes(ctx context.Context) ([]models.TypeItem, error) {
	return c.cachedLookup(ctx, api.ClaimTypes)
}

// Currencies returns the configured currencies (cached).
func (c *HXM) Currencies(ctx context.Context) ([]models.TypeItem, error) {
	return c.cachedLookup(ctx, api.CurrencyTypes)
}

// Cars returns the car pool lookup (cached).
func (c *HXM) Cars(ctx context.Context) ([]models.TypeItem, error) {
	return c.cachedLookup(ctx, api.CarsList)
}

// Drivers returns the driver lookup (cached).
func (c *HXM) Drivers(ctx context.Context) ([]models.TypeItem, error) {
	return c.cachedLookup(ctx, api.DriversList)
}

// TransportationTypes returns the transportation sub-type lookup (cached).
func (c *HXM) TransportationTypes(ctx context.Context) ([]models.TypeItem, error) {
	return c.cachedLookup(ctx, api.TransportationTypes)
}

// ReservationTypes returns the reservation type lookup (cached).
func (c *HXM) ReservationTypes(ctx context.Context) ([]models.TypeItem, error) {
	return c.cachedGetLookup(ctx, api.ReservationTypes)
}

// Rooms returns the meeting room lookup with capacities (cached).
func (c *HXM) Rooms(ctx context.Context) ([]models.TypeItem, error) {
	return c.cachedLookup(ctx, api.RoomTypes)
}

// TravelModes returns the mode-of-travel lookup (cached).
func (c *HXM) TravelModes(ctx context.Context) ([]models.TypeItem, error) {
	return c.cachedLookup(ctx, api.TravelTypeList)
}

// VehicleUses returns the vehicle-use lookup (cached).
func (c *HXM) VehicleUses(ctx context.Context) ([]models.TypeItem, error) {
	return c.cachedLookup(ctx, api.VehicleUseList)
}

// Products returns the product lookup (cached).
func (c *HXM) Products(ctx context.Context) ([]models.TypeItem, error) {
	return c.cachedLookup(ctx, api.ProductList)
}

// Projects returns the project lookup (cached).
func (c *HXM) Projects(ctx context.Context) ([]models.TypeItem, error) {
	return c.cachedLookup(ctx, api.ProjectList)
}

// ── Profile and members ──

// Profile fetches the caller's employee profile.
func (c *HXM) Profile(ctx context.Context) (*models.UserProfile, error) {
	data, err := c.t.Get(ctx, c.base+api.UserProfile, nil)
	if err != nil {
		return nil, err
	}

	for _, path := range []string{"datalist", "data"} {
		if raw := gjson.GetBytes(data, path); raw.IsObject() {
			var profile models.UserProfile
			if err := json.Unmarshal([]byte(raw.Raw), &profile); err != nil {
				return nil, fmt.Errorf("invalid profile: %w", err)
			}
			return &profile, nil
		}
	}
	return nil, fmt.Errorf("profile response carried no record")
}

// Members returns the employee directory used by approver pickers.
func (c *HXM) Members(ctx context.Context) ([]models.Approver, error) {
	data, err := c.post(ctx, api.MemberList, map[string]string{})
	if err != nil {
		return nil, err
	}
	var out []models.Approver
	if err := json.Unmarshal(listRaw(data, "datalist", "data"), &out); err != nil {
		return nil, fmt.Errorf("invalid member list: %w", err)
	}
	return out, nil
}

// ── Internals ──

func (c *HXM) post(ctx context.Context, path string, payload interface{}) ([]byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("cannot marshal request: %w", err)
	}
	return c.t.PostJSON(ctx, c.base+path, body)
}

// cachedLookup serves a POST-based lookup list from cache when fresh.
func (c *HXM) cachedLookup(ctx context.Context, path string) ([]models.TypeItem, error) {
	if cached, ok := c.lookups.Get(path); ok {
		return cached.([]models.TypeItem), nil
	}

	data, err := c.post(ctx, path, map[string]string{})
	if err != nil {
		return nil, err
	}
	items, err := decodeTypeItems(data)
	if err != nil {
		return nil, err
	}
	c.lookups.Set(path, items)
	return items, nil
}

// cachedGetLookup is cachedLookup for GET-based lookups.
func (c *HXM) cachedGetLookup(ctx context.Context, path string) ([]models.TypeItem, error) {
	if cached, ok := c.lookups.Get(path); ok {
		return cached.([]models.TypeItem), nil
	}

	data, err := c.t.Get(ctx, c.base+path, nil)
	if err != nil {
		return nil, err
	}
	items, err := decodeTypeItems(data)
	if err != nil {
		return nil, err
	}
	c.lookups.Set(path, items)
	return items, nil
}

func decodeTypeItems(data []byte) ([]models.TypeItem, error) {
	var out []models.TypeItem
	if err := json.Unmarshal(listRaw(data, "datalist", "data"), &out); err != nil {
		return nil, fmt.Errorf("invalid lookup list: %w", err)
	}
	return out, nil
}

// listRaw locates the first array among the given paths (or the root)
// and returns its raw JSON; missing lists decode as empty.
func listRaw(data []byte, paths ...string) []byte {
	for _, path := range paths {
		if res := gjson.GetBytes(data, path); res.IsArray() {
			return []byte(res.Raw)
		}
	}
	if res := gjson.ParseBytes(data); res.IsArray() {
		return data
	}
	return []byte("[]")
}
