// ABOUTME: A365 main-service client for team hierarchy, attendance and holidays
// ABOUTME: Team calls POST with caller identity; check-in calls use query parameters

package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"github.com/tidwall/gjson"

	"github.com/Nirvasoft/A365SS/internal/api"
	"github.com/Nirvasoft/A365SS/internal/models"
)

// Main is the client for the A365 main-service namespace.
type Main struct {
	base string
	t    *Transport
}

func NewMain(baseURL string, t *Transport) *Main {
	return &Main{base: baseURL, t: t}
}

// Team returns the hierarchy view centered on the current user: their
// seniors, juniors, and the teams they belong to.
func (c *Main) Team(ctx context.Context) (*models.TeamPage, error) {
	data, err := c.post(ctx, api.TeamList, map[string]string{})
	if err != nil {
		return nil, err
	}

	var page models.TeamPage
	if raw := gjson.GetBytes(data, "data"); raw.IsObject() {
		if err := json.Unmarshal([]byte(raw.Raw), &page); err != nil {
			return nil, fmt.Errorf("invalid team page: %w", err)
		}
		return &page, nil
	}
	if err := json.Unmarshal(data, &page); err != nil {
		return nil, fmt.Errorf("invalid team page: %w", err)
	}
	return &page, nil
}

// TeamByID returns one team with its member list.
func (c *Main) TeamByID(ctx context.Context, teamID string) (*models.Team, error) {
	data, err := c.post(ctx, api.TeamByID, map[string]string{"teamid": teamID})
	if err != nil {
		return nil, err
	}

	var team models.Team
	if raw := gjson.GetBytes(data, "data"); raw.IsObject() {
		if err := json.Unmarshal([]byte(raw.Raw), &team); err != nil {
			return nil, fmt.Errorf("invalid team: %w", err)
		}
		return &team, nil
	}
	if err := json.Unmarshal(data, &team); err != nil {
		return nil, fmt.Errorf("invalid team: %w", err)
	}
	return &team, nil
}

// MemberAttendance lists one member's check-in events for a yyyyMMdd date.
func (c *Main) MemberAttendance(ctx context.Context, date, employeeSyskey, teamID string) ([]models.AttendanceRecord, error) {
	body := map[string]string{
		"date":           date,
		"employeeSyskey": employeeSyskey,
		"teamid":         teamID,
	}
	data, err := c.post(ctx, api.TeamMemberAttendance, body)
	if err != nil {
		return nil, err
	}
	var out []models.AttendanceRecord
	if err := json.Unmarshal(listRaw(data, "data", "datalist"), &out); err != nil {
		return nil, fmt.Errorf("invalid attendance list: %w", err)
	}
	return out, nil
}

// CalendarView returns the caller's attendance calendar for a yyyyMMdd
// date range.
func (c *Main) CalendarView(ctx context.Context, fromDate, toDate string) ([]models.CalendarDay, error) {
	body := map[string]string{
		"fromdate": fromDate,
		"todate":   toDate,
	}
	data, err := c.post(ctx, api.CalendarView, body)
	if err != nil {
		return nil, err
	}
	var out []models.CalendarDay
	if err := json.Unmarshal(listRaw(data, "data", "datalist"), &out); err != nil {
		return nil, fmt.Errorf("invalid calendar view: %w", err)
	}
	return out, nil
}

// Holidays returns the public holidays for a year.
func (c *Main) Holidays(ctx context.Context, year int) ([]models.Holiday, error) {
	data, err := c.t.PostJSON(ctx, c.base+api.Holidays+"?year="+strconv.Itoa(year), nil)
	if err != nil {
		return nil, err
	}
	var out []models.Holiday
	if err := json.Unmarshal(listRaw(data, "data", "datalist"), &out); err != nil {
		return nil, fmt.Errorf("invalid holiday list: %w", err)
	}
	return out, nil
}

// TodayCheckins lists the caller's check-in events for a yyyyMMdd date.
func (c *Main) TodayCheckins(ctx context.Context, date string) ([]models.AttendanceRecord, error) {
	params := url.Values{"startDate": {date}}
	data, err := c.t.Get(ctx, c.base+api.CheckinHome, params)
	if err != nil {
		return nil, err
	}
	var out []models.AttendanceRecord
	if err := json.Unmarshal(listRaw(data, "data", "datalist"), &out); err != nil {
		return nil, fmt.Errorf("invalid check-in list: %w", err)
	}
	return out, nil
}

// MonthlySummary aggregates the caller's check-ins for the month starting
// at the given yyyyMMdd date.
func (c *Main) MonthlySummary(ctx context.Context, startDate string) (*models.CheckinSummary, error) {
	params := url.Values{"startDate": {startDate}}
	data, err := c.t.Get(ctx, c.base+api.CheckinMonthly, params)
	if err != nil {
		return nil, err
	}

	var summary models.CheckinSummary
	if raw := gjson.GetBytes(data, "data"); raw.IsObject() {
		if err := json.Unmarshal([]byte(raw.Raw), &summary); err != nil {
			return nil, fmt.Errorf("invalid check-in summary: %w", err)
		}
		return &summary, nil
	}
	if err := json.Unmarshal(data, &summary); err != nil {
		return nil, fmt.Errorf("invalid check-in summary: %w", err)
	}
	return &summary, nil
}

func (c *Main) post(ctx context.Context, path string, payload interface{}) ([]byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("cannot marshal request: %w", err)
	}
	return c.t.PostJSON(ctx, c.base+path, body)
}
