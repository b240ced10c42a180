// Package dataflows fetches dragon-tiger list data from the Eastmoney
// datacenter API and turns it into domain records.
package dataflows

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"
	"github.com/tidwall/gjson"

	"github.com/3550453790cl-arch/lhb-dashboard/internal/models"
)

const (
	datacenterBaseURL = "https://datacenter-web.eastmoney.com"
	datacenterPath    = "/api/data/v1/get"

	reportBillboardDetails   = "RPT_DAILYBILLBOARD_DETAILSNEW"
	reportInstitutionalTrade = "RPT_ORGANIZATION_TRADE_DETAILS"
	reportActiveBranches     = "RPT_OPERATEDEPT_ACTIVE"

	pageSize    = 500
	httpTimeout = 15 * time.Second

	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	referer   = "https://data.eastmoney.com/"
)

// DateKey is the 8-digit day format the datacenter API is queried with.
const DateKey = "20060102"

// EastmoneyClient talks to the Eastmoney datacenter report API.
type EastmoneyClient struct {
	client *resty.Client
}

func NewEastmoneyClient() *EastmoneyClient {
	client := resty.New()
	client.SetBaseURL(datacenterBaseURL)
	client.SetTimeout(httpTimeout)
	client.SetHeader("User-Agent", userAgent)
	client.SetHeader("Referer", referer)
	client.SetHeader("Accept", "application/json, text/plain, */*")
	return &EastmoneyClient{client: client}
}

// dateFilter builds the single-day TRADE_DATE range filter from an 8-digit
// date key, e.g. "20240115" -> (TRADE_DATE<='2024-01-15')(TRADE_DATE>='2024-01-15').
func dateFilter(dateKey string) (string, error) {
	d, err := time.Parse(DateKey, dateKey)
	if err != nil {
		return "", fmt.Errorf("invalid date key %q: %w", dateKey, err)
	}
	day := d.Format("2006-01-02")
	return fmt.Sprintf("(TRADE_DATE<='%s')(TRADE_DATE>='%s')", day, day), nil
}

// fetchReportPage requests one page of a datacenter report and returns the
// raw body. A day without rows is not an error; callers see it as an empty
// result.data.
func (c *EastmoneyClient) fetchReportPage(ctx context.Context, reportName, sortColumns, sortTypes, dateKey string, page, size int) ([]byte, error) {
	filter, err := dateFilter(dateKey)
	if err != nil {
		return nil, err
	}
	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"reportName":  reportName,
			"columns":     "ALL",
			"source":      "WEB",
			"client":      "WEB",
			"sortColumns": sortColumns,
			"sortTypes":   sortTypes,
			"pageNumber":  fmt.Sprintf("%d", page),
			"pageSize":    fmt.Sprintf("%d", size),
			"filter":      filter,
		}).
		Get(datacenterPath)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s for %s: %w", reportName, dateKey, err)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("API error %d: %s", resp.StatusCode(), resp.String())
	}
	return resp.Body(), nil
}

// fetchReport walks all pages of a report for one day.
func (c *EastmoneyClient) fetchReport(ctx context.Context, reportName, sortColumns, sortTypes, dateKey string) ([]gjson.Result, error) {
	var rows []gjson.Result
	page := 1
	for {
		body, err := c.fetchReportPage(ctx, reportName, sortColumns, sortTypes, dateKey, page, pageSize)
		if err != nil {
			return nil, err
		}
		data := gjson.GetBytes(body, "result.data")
		if !data.Exists() || !data.IsArray() {
			// result is null on days with no rows
			break
		}
		rows = append(rows, data.Array()...)
		pages := int(gjson.GetBytes(body, "result.pages").Int())
		if page >= pages {
			break
		}
		page++
	}
	return rows, nil
}

// GetBillboardDetails fetches the disclosure detail rows (one per stock and
// listing reason) for the given day.
func (c *EastmoneyClient) GetBillboardDetails(ctx context.Context, dateKey string) ([]models.DisclosureRecord, error) {
	rows, err := c.fetchReport(ctx, reportBillboardDetails, "SECURITY_CODE,TRADE_DATE", "1,-1", dateKey)
	if err != nil {
		return nil, err
	}
	records := make([]models.DisclosureRecord, 0, len(rows))
	for _, row := range rows {
		r := parseDisclosureRow(row)
		if r.Code == "" {
			continue
		}
		records = append(records, r)
	}
	return records, nil
}

// GetInstitutionalTrades fetches the institutional daily trade summary.
func (c *EastmoneyClient) GetInstitutionalTrades(ctx context.Context, dateKey string) ([]models.InstitutionalTrade, error) {
	rows, err := c.fetchReport(ctx, reportInstitutionalTrade, "NET_BUY_AMT", "-1", dateKey)
	if err != nil {
		return nil, err
	}
	trades := make([]models.InstitutionalTrade, 0, len(rows))
	for _, row := range rows {
		code := strings.TrimSpace(row.Get("SECURITY_CODE").String())
		if code == "" {
			continue
		}
		trades = append(trades, models.InstitutionalTrade{
			Code:      code,
			Name:      strings.TrimSpace(row.Get("SECURITY_NAME_ABBR").String()),
			BuyAmount: decimalOrZero(row.Get("BUY_AMT")),
		})
	}
	return trades, nil
}

// GetActiveBranches fetches the active brokerage branch rows used to derive
// the foreign-capital buy total.
func (c *EastmoneyClient) GetActiveBranches(ctx context.Context, dateKey string) ([]models.BranchRecord, error) {
	rows, err := c.fetchReport(ctx, reportActiveBranches, "TOTAL_BUYAMT", "-1", dateKey)
	if err != nil {
		return nil, err
	}
	branches := make([]models.BranchRecord, 0, len(rows))
	for _, row := range rows {
		name := strings.TrimSpace(row.Get("OPERATEDEPT_NAME").String())
		if name == "" {
			continue
		}
		branches = append(branches, models.BranchRecord{
			Name:      name,
			BuyAmount: decimalOrZero(row.Get("TOTAL_BUYAMT")),
		})
	}
	return branches, nil
}

// HasBillboardData probes a single day with a one-row page, cheap enough
// for the backward date scan.
func (c *EastmoneyClient) HasBillboardData(ctx context.Context, day time.Time) (bool, error) {
	body, err := c.fetchReportPage(ctx, reportBillboardDetails, "SECURITY_CODE,TRADE_DATE", "1,-1", day.Format(DateKey), 1, 1)
	if err != nil {
		return false, err
	}
	data := gjson.GetBytes(body, "result.data")
	return data.Exists() && data.IsArray() && len(data.Array()) > 0, nil
}

func parseDisclosureRow(row gjson.Result) models.DisclosureRecord {
	return models.DisclosureRecord{
		Code:         strings.TrimSpace(row.Get("SECURITY_CODE").String()),
		Name:         strings.TrimSpace(row.Get("SECURITY_NAME_ABBR").String()),
		ClosePrice:   decimalOrZero(row.Get("CLOSE_PRICE")),
		ChangeRate:   decimalOrZero(row.Get("CHANGE_RATE")),
		NetBuy:       nullDecimal(row.Get("BILLBOARD_NET_AMT")),
		TurnoverRate: nullDecimal(row.Get("TURNOVERRATE")),
		Reason:       strings.TrimSpace(row.Get("EXPLANATION").String()),
	}
}

// nullDecimal coerces a JSON value to a decimal. Nulls, absent fields and
// unparseable strings come back invalid instead of failing the row.
func nullDecimal(res gjson.Result) decimal.NullDecimal {
	var raw string
	switch res.Type {
	case gjson.Number:
		raw = res.Raw
	case gjson.String:
		raw = strings.TrimSpace(res.String())
	default:
		return decimal.NullDecimal{}
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: d, Valid: true}
}

func decimalOrZero(res gjson.Result) decimal.Decimal {
	if v := nullDecimal(res); v.Valid {
		return v.Decimal
	}
	return decimal.Zero
}
