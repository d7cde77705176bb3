package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rschio/otica/internal/core/ledger"
	"github.com/rschio/otica/internal/core/ledger/store/ledgerdb"
	"github.com/rschio/otica/internal/core/report"
	"github.com/rschio/otica/internal/core/report/store/reportdb"
	"github.com/rschio/otica/internal/core/roster"
	"github.com/rschio/otica/internal/core/roster/store/rosterdb"
	"github.com/rschio/otica/internal/data/dbtest"
	"go.opentelemetry.io/otel"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	log, db, teardown := dbtest.NewUnit(t, dbtest.WithMigrations())
	t.Cleanup(teardown)

	server := NewServer(log,
		ledger.NewCore(ledgerdb.NewStore(log, db)),
		roster.NewCore(rosterdb.NewStore(log, db)),
		report.NewEngine(log, reportdb.NewStore(log, db)),
	)
	mux := APIMux(server, otel.GetTracerProvider().Tracer(""), nil)

	httpServer := httptest.NewServer(mux)
	t.Cleanup(httpServer.Close)

	return httpServer
}

func postJSON(t *testing.T, url, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	return resp
}

func TestTransactionsAndMonthlyReport(t *testing.T) {
	srv := newTestServer(t)

	bodies := []string{
		`{"tipo":"entrada","categoria":"venda_oculos","valor":100.00,"data":"2024-03-05"}`,
		`{"tipo":"saida","categoria":"aluguel","valor":40.00,"data":"2024-03-10"}`,
		`{"tipo":"entrada","categoria":"venda_lentes","valor":50.00,"data":"2024-04-01"}`,
	}
	for _, body := range bodies {
		resp := postJSON(t, srv.URL+"/api/transactions", body)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("got wrong status code: %v", resp.StatusCode)
		}
		resp.Body.Close()
	}

	resp, err := http.Get(srv.URL + "/api/reports/monthly?ano=2024")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("got wrong status code: %v", resp.StatusCode)
	}

	var months []MonthSummaryResp
	if err := json.NewDecoder(resp.Body).Decode(&months); err != nil {
		t.Fatalf("failed to unmarshal: %v", err)
	}

	if len(months) != 2 {
		t.Fatalf("got %d months, want 2", len(months))
	}
	march := months[0]
	if march.Month != 3 || march.TotalIncome != 100.00 || march.TotalExpense != 40.00 {
		t.Errorf("wrong march summary: %+v", march)
	}
	if march.NetRevenue != 60.00 {
		t.Errorf("got net %v, want 60.00", march.NetRevenue)
	}
	if march.Count != 2 {
		t.Errorf("got count %d, want 2", march.Count)
	}
	if months[1].Month != 4 || months[1].NetRevenue != 50.00 {
		t.Errorf("wrong april summary: %+v", months[1])
	}
}

func TestDashboard(t *testing.T) {
	srv := newTestServer(t)

	today := time.Now().UTC().Format(ledger.DateLayout)
	resp := postJSON(t, srv.URL+"/api/transactions",
		fmt.Sprintf(`{"tipo":"entrada","categoria":"venda_oculos","valor":200.00,"data":%q}`, today))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("got wrong status code: %v", resp.StatusCode)
	}
	resp.Body.Close()

	clients := []string{
		`{"nome":"Ana","status":"inadimplente","valor_devido":75.50}`,
		`{"nome":"Bruno","status":"adimplente"}`,
	}
	for _, body := range clients {
		resp := postJSON(t, srv.URL+"/api/clients", body)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("got wrong status code: %v", resp.StatusCode)
		}
		resp.Body.Close()
	}

	resp, err := http.Get(srv.URL + "/api/reports/dashboard")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()

	var dash DashboardResp
	if err := json.NewDecoder(resp.Body).Decode(&dash); err != nil {
		t.Fatalf("failed to unmarshal: %v", err)
	}

	if dash.CurrentMonth.Income != 200.00 {
		t.Errorf("got income %v, want 200.00", dash.CurrentMonth.Income)
	}
	if dash.Delinquents.Count != 1 {
		t.Errorf("got delinquent count %d, want 1", dash.Delinquents.Count)
	}
	if dash.Delinquents.TotalOwed != 75.50 {
		t.Errorf("got owed %v, want 75.50", dash.Delinquents.TotalOwed)
	}
}

func TestCreateTransactionValidation(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantedCode int
	}{
		{"not json", "hello", 400},
		{"bad type", `{"tipo":"credito","categoria":"venda_oculos","valor":1,"data":"2024-03-05"}`, 400},
		{"bad category", `{"tipo":"entrada","categoria":"venda_carros","valor":1,"data":"2024-03-05"}`, 400},
		{"negative amount", `{"tipo":"entrada","categoria":"venda_oculos","valor":-1,"data":"2024-03-05"}`, 400},
		{"bad date", `{"tipo":"entrada","categoria":"venda_oculos","valor":1,"data":"05/03/2024"}`, 400},
		{"good", `{"tipo":"entrada","categoria":"venda_oculos","valor":1,"data":"2024-03-05"}`, 200},
	}

	srv := newTestServer(t)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := postJSON(t, srv.URL+"/api/transactions", tt.body)
			defer resp.Body.Close()

			if resp.StatusCode != tt.wantedCode {
				t.Fatalf("got wrong status code: %v, want: %v", resp.StatusCode, tt.wantedCode)
			}
		})
	}
}

func TestUpdateAndDelete(t *testing.T) {
	srv := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/transactions",
		`{"tipo":"saida","categoria":"energia","valor":220.50,"data":"2024-05-02"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("got wrong status code: %v", resp.StatusCode)
	}
	var created TransactionResp
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("failed to unmarshal: %v", err)
	}
	resp.Body.Close()

	req, err := http.NewRequest(http.MethodPut,
		srv.URL+"/api/transactions/"+created.ID, strings.NewReader(`{"valor":230.00}`))
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("put: %v", err)
	}
	var updated TransactionResp
	if err := json.NewDecoder(resp.Body).Decode(&updated); err != nil {
		t.Fatalf("failed to unmarshal: %v", err)
	}
	resp.Body.Close()

	if updated.Amount != 230.00 {
		t.Errorf("got amount %v, want 230.00", updated.Amount)
	}
	if updated.Category != "energia" {
		t.Errorf("unset field was touched, got category %q", updated.Category)
	}

	// Empty update is rejected.
	req, err = http.NewRequest(http.MethodPut,
		srv.URL+"/api/transactions/"+created.ID, strings.NewReader(`{}`))
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("put: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("got wrong status code: %v, want 400", resp.StatusCode)
	}

	req, err = http.NewRequest(http.MethodDelete, srv.URL+"/api/transactions/"+created.ID, nil)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("got wrong status code: %v", resp.StatusCode)
	}

	// Deleting twice is a 404.
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("got wrong status code: %v, want 404", resp.StatusCode)
	}
}

func TestExportDashboard(t *testing.T) {
	srv := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/clients",
		`{"nome":"Ana","status":"inadimplente","valor_devido":75.50,"tipo_compra":"premium","idade":30}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("got wrong status code: %v", resp.StatusCode)
	}
	resp.Body.Close()

	resp, err := http.Get(srv.URL + "/api/export/dashboard")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("got wrong status code: %v", resp.StatusCode)
	}

	var export ExportDashboardResp
	if err := json.NewDecoder(resp.Body).Decode(&export); err != nil {
		t.Fatalf("failed to unmarshal: %v", err)
	}

	if export.Dashboard.Delinquents.TotalOwed != 75.50 {
		t.Errorf("got owed %v, want 75.50", export.Dashboard.Delinquents.TotalOwed)
	}
	if len(export.ClientStats) != 1 {
		t.Fatalf("got %d client stats, want 1", len(export.ClientStats))
	}
	stat := export.ClientStats[0]
	if stat.Tier != "premium" || stat.Count != 1 {
		t.Errorf("wrong stat group: %+v", stat)
	}
	if stat.MeanAge == nil || *stat.MeanAge != 30 {
		t.Errorf("got mean age %v, want 30", stat.MeanAge)
	}
	if export.ExportTimestamp.IsZero() {
		t.Error("export timestamp should be set")
	}
}
