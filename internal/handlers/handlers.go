// Package handlers maps the HTTP API to the core packages.
package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/rschio/otica/internal/core/ledger"
	"github.com/rschio/otica/internal/core/report"
	"github.com/rschio/otica/internal/core/roster"
	"github.com/rschio/otica/internal/web"
	"go.opentelemetry.io/otel/trace"
)

func APIMux(s *Server, tracer trace.Tracer, corsOrigins []string) http.Handler {
	mux := http.NewServeMux()

	mux.Handle("GET /api/{$}", middlewareWeb(tracer, s.Root))

	mux.Handle("POST /api/transactions", middlewareWeb(tracer, s.CreateTransaction))
	mux.Handle("GET /api/transactions", middlewareWeb(tracer, s.ListTransactions))
	mux.Handle("PUT /api/transactions/{id}", middlewareWeb(tracer, s.UpdateTransaction))
	mux.Handle("DELETE /api/transactions/{id}", middlewareWeb(tracer, s.DeleteTransaction))

	mux.Handle("POST /api/clients", middlewareWeb(tracer, s.CreateClient))
	mux.Handle("GET /api/clients", middlewareWeb(tracer, s.ListClients))
	mux.Handle("PUT /api/clients/{id}", middlewareWeb(tracer, s.UpdateClient))
	mux.Handle("DELETE /api/clients/{id}", middlewareWeb(tracer, s.DeleteClient))

	mux.Handle("GET /api/reports/monthly", middlewareWeb(tracer, s.MonthlyReport))
	mux.Handle("GET /api/reports/dashboard", middlewareWeb(tracer, s.Dashboard))

	mux.Handle("GET /api/export/transactions", middlewareWeb(tracer, s.ExportTransactions))
	mux.Handle("GET /api/export/clients", middlewareWeb(tracer, s.ExportClients))
	mux.Handle("GET /api/export/dashboard", middlewareWeb(tracer, s.ExportDashboard))

	return middlewareCORS(corsOrigins, mux)
}

type Server struct {
	log    *slog.Logger
	ledger *ledger.Core
	roster *roster.Core
	report *report.Engine
}

func NewServer(log *slog.Logger, l *ledger.Core, r *roster.Core, e *report.Engine) *Server {
	return &Server{log: log, ledger: l, roster: r, report: e}
}

func (s *Server) Root(w http.ResponseWriter, r *http.Request) {
	s.respond(w, http.StatusOK, map[string]string{
		"message": "Dashboard Financeiro - Ótica API",
	})
}

// ----------------------------------------------------------------------
// Transactions

func (s *Server) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req CreateTransactionReq
	if !s.decode(w, r, &req) {
		return
	}

	t, err := s.ledger.Create(r.Context(), ledger.NewTransaction{
		Type:        req.Type,
		Category:    req.Category,
		Description: req.Description,
		Amount:      req.Amount,
		Date:        req.Date,
		ClientName:  req.ClientName,
		ClientID:    req.ClientID,
		Notes:       req.Notes,
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}

	s.respond(w, http.StatusOK, toTransactionResp(t))
}

func (s *Server) ListTransactions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := ledger.QueryFilter{
		DateStart:  q.Get("data_inicio"),
		DateEnd:    q.Get("data_fim"),
		ClientName: q.Get("cliente_nome"),
	}

	skip, limit, err := pagination(q.Get("skip"), q.Get("limit"))
	if err != nil {
		s.fail(w, r, err)
		return
	}

	ts, err := s.ledger.Query(r.Context(), filter, skip, limit)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	s.respond(w, http.StatusOK, toTransactionResps(ts))
}

func (s *Server) UpdateTransaction(w http.ResponseWriter, r *http.Request) {
	var req UpdateTransactionReq
	if !s.decode(w, r, &req) {
		return
	}
	if req.empty() {
		s.fail(w, r, ledger.ErrInvalidArgument)
		return
	}

	t, err := s.ledger.Update(r.Context(), r.PathValue("id"), ledger.UpdateTransaction{
		Type:        req.Type,
		Category:    req.Category,
		Description: req.Description,
		Amount:      req.Amount,
		Date:        req.Date,
		ClientName:  req.ClientName,
		ClientID:    req.ClientID,
		Notes:       req.Notes,
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}

	s.respond(w, http.StatusOK, toTransactionResp(t))
}

func (s *Server) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	if err := s.ledger.Delete(r.Context(), r.PathValue("id")); err != nil {
		s.fail(w, r, err)
		return
	}

	s.respond(w, http.StatusOK, map[string]string{
		"message": "Transação deletada com sucesso",
	})
}

// ----------------------------------------------------------------------
// Clients

func (s *Server) CreateClient(w http.ResponseWriter, r *http.Request) {
	var req CreateClientReq
	if !s.decode(w, r, &req) {
		return
	}

	c, err := s.roster.Create(r.Context(), roster.NewClient{
		Name:              req.Name,
		Email:             req.Email,
		Phone:             req.Phone,
		Address:           req.Address,
		Status:            req.Status,
		AmountOwed:        req.AmountOwed,
		LastPaymentDate:   req.LastPaymentDate,
		MaritalStatus:     req.MaritalStatus,
		Dependents:        req.Dependents,
		Education:         req.Education,
		HasCreditCard:     req.HasCreditCard,
		GrossIncome:       req.GrossIncome,
		Age:               req.Age,
		PurchaseFrequency: req.PurchaseFrequency,
		PurchaseCount:     req.PurchaseCount,
		PurchaseTier:      req.PurchaseTier,
		Channel:           req.Channel,
		Notes:             req.Notes,
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}

	s.respond(w, http.StatusOK, toClientResp(c))
}

func (s *Server) ListClients(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	skip, limit, err := pagination(q.Get("skip"), q.Get("limit"))
	if err != nil {
		s.fail(w, r, err)
		return
	}

	cs, err := s.roster.Query(r.Context(), q.Get("status"), skip, limit)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	s.respond(w, http.StatusOK, toClientResps(cs))
}

func (s *Server) UpdateClient(w http.ResponseWriter, r *http.Request) {
	var req UpdateClientReq
	if !s.decode(w, r, &req) {
		return
	}
	if req.empty() {
		s.fail(w, r, roster.ErrInvalidArgument)
		return
	}

	c, err := s.roster.Update(r.Context(), r.PathValue("id"), roster.UpdateClient{
		Name:              req.Name,
		Email:             req.Email,
		Phone:             req.Phone,
		Address:           req.Address,
		Status:            req.Status,
		AmountOwed:        req.AmountOwed,
		LastPaymentDate:   req.LastPaymentDate,
		MaritalStatus:     req.MaritalStatus,
		Dependents:        req.Dependents,
		Education:         req.Education,
		HasCreditCard:     req.HasCreditCard,
		GrossIncome:       req.GrossIncome,
		Age:               req.Age,
		PurchaseFrequency: req.PurchaseFrequency,
		PurchaseCount:     req.PurchaseCount,
		PurchaseTier:      req.PurchaseTier,
		Channel:           req.Channel,
		Notes:             req.Notes,
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}

	s.respond(w, http.StatusOK, toClientResp(c))
}

func (s *Server) DeleteClient(w http.ResponseWriter, r *http.Request) {
	if err := s.roster.Delete(r.Context(), r.PathValue("id")); err != nil {
		s.fail(w, r, err)
		return
	}

	s.respond(w, http.StatusOK, map[string]string{
		"message": "Cliente deletado com sucesso",
	})
}

// ----------------------------------------------------------------------
// Reports and exports

func (s *Server) MonthlyReport(w http.ResponseWriter, r *http.Request) {
	// Year defaults to the current calendar year, tests inject it.
	year := web.GetTime(r.Context()).Year()
	if v := r.URL.Query().Get("ano"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			s.fail(w, r, ledger.ErrInvalidArgument)
			return
		}
		year = n
	}

	ms, err := s.report.Monthly(r.Context(), year)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	s.respond(w, http.StatusOK, toMonthSummaryResps(ms))
}

func (s *Server) Dashboard(w http.ResponseWriter, r *http.Request) {
	snap, err := s.report.Dashboard(r.Context(), web.GetTime(r.Context()))
	if err != nil {
		s.fail(w, r, err)
		return
	}

	s.respond(w, http.StatusOK, toDashboardResp(snap))
}

func (s *Server) ExportTransactions(w http.ResponseWriter, r *http.Request) {
	ts, err := s.ledger.QueryAll(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}

	s.respond(w, http.StatusOK, toTransactionResps(ts))
}

func (s *Server) ExportClients(w http.ResponseWriter, r *http.Request) {
	cs, err := s.roster.QueryAll(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}

	s.respond(w, http.StatusOK, toClientResps(cs))
}

func (s *Server) ExportDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	now := web.GetTime(ctx)

	snap, err := s.report.Dashboard(ctx, now)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	ms, err := s.report.Monthly(ctx, now.Year())
	if err != nil {
		s.fail(w, r, err)
		return
	}

	gs, err := s.report.Segmentation(ctx)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	s.respond(w, http.StatusOK, ExportDashboardResp{
		Dashboard:       toDashboardResp(snap),
		MonthlyReport:   toMonthSummaryResps(ms),
		ClientStats:     toTierGroupResps(gs),
		ExportTimestamp: now,
	})
}

// ----------------------------------------------------------------------

func pagination(skipStr, limitStr string) (skip, limit int, err error) {
	skip, limit = 0, 100
	if skipStr != "" {
		skip, err = strconv.Atoi(skipStr)
		if err != nil {
			return 0, 0, ledger.ErrInvalidArgument
		}
	}
	if limitStr != "" {
		limit, err = strconv.Atoi(limitStr)
		if err != nil {
			return 0, 0, ledger.ErrInvalidArgument
		}
	}
	return skip, limit, nil
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	err := json.NewDecoder(r.Body).Decode(v)
	r.Body.Close()
	if err != nil {
		s.log.Error("decoding json", "ERROR", err)
		http.Error(w, "bad request", http.StatusBadRequest)
		return false
	}
	return true
}

func (s *Server) respond(w http.ResponseWriter, code int, v any) {
	bs, err := json.Marshal(v)
	if err != nil {
		s.log.Error("failed to encode response", "ERROR", err)
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(bs)
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	s.log.ErrorContext(r.Context(), "request failed", "ERROR", err)
	switch {
	case errors.Is(err, ledger.ErrNotFound), errors.Is(err, roster.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)

	case errors.Is(err, ledger.ErrInvalidArgument), errors.Is(err, roster.ErrInvalidArgument):
		http.Error(w, err.Error(), http.StatusBadRequest)

	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
