package calendar

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

const (
	DefaultIsDayOffURL = "https://isdayoff.ru"
	defaultHTTPTimeout = 10 * time.Second
	defaultCacheTTL    = 24 * time.Hour
	defaultFailureTTL  = time.Minute
)

// IsDayOffCalendar implements Calendar using the isdayoff.ru bulk API.
// Months are fetched whole and cached. A failed fetch is remembered for
// failureTTL; during that time the month is served from stale data if any,
// otherwise the fetch error is returned without another request.
type IsDayOffCalendar struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
	cache      map[string]*cachedMonth // key: "YYYY-MM"
	cacheMu    sync.RWMutex
	cacheTTL   time.Duration
	failureTTL time.Duration
	now        func() time.Time
}

type cachedMonth struct {
	data      *MonthInfo // last good data, may be nil after a failure
	err       error      // last fetch error
	fetchedAt time.Time  // time of the last fetch attempt
}

// fresh reports whether the entry can be used without a new request.
func (m *cachedMonth) fresh(age, ttl, failureTTL time.Duration) bool {
	if m.err != nil {
		return age < failureTTL
	}
	return age < ttl
}

// NewIsDayOffCalendar creates a new IsDayOffCalendar instance. An empty
// baseURL means DefaultIsDayOffURL.
func NewIsDayOffCalendar(baseURL string, cacheTTL time.Duration, logger *zap.Logger) *IsDayOffCalendar {
	if baseURL == "" {
		baseURL = DefaultIsDayOffURL
	}
	if cacheTTL == 0 {
		cacheTTL = defaultCacheTTL
	}

	return &IsDayOffCalendar{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: defaultHTTPTimeout,
		},
		logger:     logger,
		cache:      make(map[string]*cachedMonth),
		cacheTTL:   cacheTTL,
		failureTTL: defaultFailureTTL,
		now:        time.Now,
	}
}

// GetDayInfo returns detailed info for a specific day
func (c *IsDayOffCalendar) GetDayInfo(date time.Time) (*DayInfo, error) {
	monthInfo, err := c.GetMonthInfo(date.Year(), date.Month())
	if err != nil {
		return nil, err
	}
	if day := monthInfo.Day(date.Day()); day != nil {
		info := *day
		return &info, nil
	}
	return nil, fmt.Errorf("day not found in month data: %s", date.Format("2006-01-02"))
}

// GetMonthInfo returns calendar info for the entire month
func (c *IsDayOffCalendar) GetMonthInfo(year int, month time.Month) (*MonthInfo, error) {
	cacheKey := fmt.Sprintf("%04d-%02d", year, int(month))

	c.cacheMu.RLock()
	cached, ok := c.cache[cacheKey]
	c.cacheMu.RUnlock()
	if ok && cached.fresh(c.now().Sub(cached.fetchedAt), c.cacheTTL, c.failureTTL) {
		return cached.result()
	}

	monthInfo, err := c.fetchMonth(year, month)
	if err != nil {
		entry := &cachedMonth{err: err, fetchedAt: c.now()}
		if ok {
			entry.data = cached.data
		}
		c.cacheMu.Lock()
		c.cache[cacheKey] = entry
		c.cacheMu.Unlock()

		if entry.data != nil {
			c.logger.Warn("isdayoff fetch failed, serving stale month",
				zap.String("month", cacheKey),
				zap.Error(err))
		}
		return entry.result()
	}

	c.cacheMu.Lock()
	c.cache[cacheKey] = &cachedMonth{
		data:      monthInfo,
		fetchedAt: c.now(),
	}
	c.cacheMu.Unlock()

	return monthInfo, nil
}

func (m *cachedMonth) result() (*MonthInfo, error) {
	if m.data != nil {
		return m.data, nil
	}
	return nil, m.err
}

// ClearCache drops every cached month.
func (c *IsDayOffCalendar) ClearCache() {
	c.cacheMu.Lock()
	c.cache = make(map[string]*cachedMonth)
	c.cacheMu.Unlock()
	c.logger.Debug("isdayoff cache cleared")
}

// fetchMonth fetches entire month from the bulk API
func (c *IsDayOffCalendar) fetchMonth(year int, month time.Month) (*MonthInfo, error) {
	// Build URL: https://isdayoff.ru/api/getdata?year=2025&month=11&pre=1
	url := fmt.Sprintf("%s/api/getdata?year=%d&month=%d&pre=1", c.baseURL, year, int(month))

	c.logger.Debug("Fetching month from isdayoff",
		zap.String("url", url),
		zap.Int("year", year),
		zap.Int("month", int(month)))

	resp, err := c.httpClient.Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch calendar data: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("isdayoff returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	monthInfo, err := parseBulkResponse(year, month, strings.TrimSpace(string(body)))
	if err != nil {
		return nil, fmt.Errorf("failed to parse bulk response: %w", err)
	}

	c.logger.Info("Month info fetched from isdayoff",
		zap.Int("year", year),
		zap.Int("month", int(month)),
		zap.Int("holidays", monthInfo.Holidays))

	return monthInfo, nil
}

// parseBulkResponse parses an isdayoff bulk response string.
// Format: "211100011000001100000110000011" where:
// 0 = working day
// 1 = non-working day (holiday/weekend)
// 2 = shortened working day
func parseBulkResponse(year int, month time.Month, data string) (*MonthInfo, error) {
	daysInMonth := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()

	if len(data) != daysInMonth {
		return nil, fmt.Errorf("bulk data length mismatch: expected %d, got %d", daysInMonth, len(data))
	}

	monthInfo := &MonthInfo{
		Year:  year,
		Month: month,
		Days:  make([]DayInfo, 0, daysInMonth),
	}

	for i, code := range data {
		date := time.Date(year, month, i+1, 0, 0, 0, 0, time.UTC)
		weekend := date.Weekday() == time.Saturday || date.Weekday() == time.Sunday

		var dayType DayType
		switch code {
		case '0':
			dayType = DayTypeWorkday
		case '1':
			if weekend {
				dayType = DayTypeWeekend
			} else {
				dayType = DayTypeHoliday
				monthInfo.Holidays++
			}
		case '2':
			dayType = DayTypeShortened
		default:
			return nil, fmt.Errorf("unknown code '%c' at position %d", code, i)
		}

		monthInfo.Days = append(monthInfo.Days, DayInfo{Date: date, Type: dayType})
	}

	return monthInfo, nil
}
