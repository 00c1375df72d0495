package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"server/internal/metrics"
	"server/internal/sqlinline"

	"github.com/google/uuid"
)

func TestCampaignsListReturnsCampaigns(t *testing.T) {
	sql := newFakeSQL()
	sql.setRows(sqlinline.QListCampaigns, []any{
		"c1", "New Library Wing", "Expand the library", 500000.0, 125000.0, 84, 45,
		"infrastructure", "", "Alumni Association", true, false,
	})
	app := newTestApp(t, sql)

	rec := httptest.NewRecorder()
	app.CampaignsList(rec, httptest.NewRequest(http.MethodGet, "/api/campaigns", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var items []campaignDTO
	if err := json.Unmarshal(rec.Body.Bytes(), &items); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(items) != 1 || items[0].Raised != 125000 {
		t.Fatalf("unexpected campaigns: %+v", items)
	}
}

func TestCampaignsCreateValidatesGoal(t *testing.T) {
	app := newTestApp(t, newFakeSQL())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/campaigns",
		strings.NewReader(`{"title":"Fund","description":"d","goal":0}`))
	app.CampaignsCreate(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestCampaignsDonateValidatesAmount(t *testing.T) {
	campaignID := uuid.NewString()
	app := newTestApp(t, newFakeSQL())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/campaigns/"+campaignID+"/donate",
		strings.NewReader(`{"amount":-5}`))
	req = withURLParam(req, "id", campaignID)
	app.CampaignsDonate(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestCampaignsDonateUnknownCampaign(t *testing.T) {
	campaignID := uuid.NewString()
	app := newTestApp(t, newFakeSQL())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/campaigns/"+campaignID+"/donate",
		strings.NewReader(`{"amount":100}`))
	req = withURLParam(req, "id", campaignID)
	app.CampaignsDonate(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestCampaignsDonateRecordsDonation(t *testing.T) {
	campaignID := uuid.NewString()
	sql := newFakeSQL()
	sql.queueRow(sqlinline.QSelectCampaign, campaignID)
	sql.queueRow(sqlinline.QInsertDonation, time.Date(2026, 8, 28, 9, 0, 0, 0, time.UTC))
	app := newTestApp(t, sql)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/campaigns/"+campaignID+"/donate",
		strings.NewReader(`{"amount":250}`))
	req = withURLParam(req, "id", campaignID)
	app.CampaignsDonate(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var receipt donationReceiptDTO
	if err := json.Unmarshal(rec.Body.Bytes(), &receipt); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !strings.HasPrefix(receipt.Receipt, "REC-") {
		t.Fatalf("expected receipt number, got %q", receipt.Receipt)
	}
	if receipt.Status != "completed" {
		t.Fatalf("expected completed status, got %q", receipt.Status)
	}
	if n := sql.execCount(sqlinline.QApplyDonationToCampaign); n != 1 {
		t.Fatalf("expected campaign totals updated once, got %d", n)
	}
}

type channelObserver struct {
	ch chan metrics.Snapshot
}

func (o channelObserver) Send(s metrics.Snapshot) error {
	o.ch <- s
	return nil
}

func TestCampaignsDonateBroadcastsFreshAggregates(t *testing.T) {
	campaignID := uuid.NewString()
	sql := newFakeSQL()
	sql.queueRow(sqlinline.QSelectCampaign, campaignID)
	sql.queueRow(sqlinline.QInsertDonation, time.Now().UTC())
	sql.queueRow(sqlinline.QMetricsUserCount, int64(12))
	sql.queueRow(sqlinline.QMetricsEventCount, int64(4))
	sql.queueRow(sqlinline.QMetricsUpcomingEventCount, int64(2))
	sql.queueRow(sqlinline.QMetricsTotalDonations, 1250.0)
	sql.queueRow(sqlinline.QMetricsMonthlyDonations, 250.0)
	sql.queueRow(sqlinline.QMetricsMessageCount, int64(30))
	sql.queueRow(sqlinline.QMetricsUnreadInboundCount, int64(3))
	app := newTestApp(t, sql)

	obs := channelObserver{ch: make(chan metrics.Snapshot, 1)}
	app.Metrics.Registry().Register(obs)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/campaigns/"+campaignID+"/donate",
		strings.NewReader(`{"amount":250}`))
	req = withURLParam(req, "id", campaignID)
	app.CampaignsDonate(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	select {
	case snap := <-obs.ch:
		if snap.TotalDonations != 1250 || snap.MonthlyDonations != 250 {
			t.Fatalf("unexpected aggregates in broadcast: %+v", snap)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no broadcast after donation")
	}
}
