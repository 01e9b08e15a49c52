package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/zonaazul/enforcement-system/internal/core/domain"
	"github.com/zonaazul/enforcement-system/internal/core/ports"
)

type stubEnforcementService struct {
	listFn func(ctx context.Context, in ports.ListActiveInput) ([]ports.SpotView, error)
	evalFn func(ctx context.Context, in ports.EvaluateInput) (*ports.EvaluateResult, error)
}

func (s *stubEnforcementService) ListActiveOnStreet(ctx context.Context, in ports.ListActiveInput) ([]ports.SpotView, error) {
	return s.listFn(ctx, in)
}

func (s *stubEnforcementService) Evaluate(ctx context.Context, in ports.EvaluateInput) (*ports.EvaluateResult, error) {
	return s.evalFn(ctx, in)
}

func newEnforcementContext(t *testing.T, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func httpErrorCode(t *testing.T, err error) (int, string) {
	t.Helper()
	var he *echo.HTTPError
	if !errors.As(err, &he) {
		t.Fatalf("expected *echo.HTTPError, got %v", err)
	}
	msg, _ := he.Message.(string)
	return he.Code, msg
}

func TestFiscalSpots_Success(t *testing.T) {
	entry := time.Date(2025, 6, 10, 14, 0, 0, 0, time.Local)
	exit := entry.Add(2 * time.Hour)
	stub := &stubEnforcementService{
		listFn: func(ctx context.Context, in ports.ListActiveInput) ([]ports.SpotView, error) {
			if in.InspectorCPF != "12345678900" || in.StreetName != "Rua Augusta" {
				t.Fatalf("unexpected input: %+v", in)
			}
			return []ports.SpotView{
				{ID: 5, Plate: "ABC1234", EntryTime: entry, ExitTime: &exit},
			}, nil
		},
	}
	handler := NewEnforcementHandler(stub)

	c, rec := newEnforcementContext(t, "/fiscal_spot", `{"cpf":"12345678900","nomeRua":"Rua Augusta"}`)
	if err := handler.FiscalSpots(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp) != 1 {
		t.Fatalf("expected 1 spot, got %d", len(resp))
	}
	spot := resp[0]
	if spot["IDVaga"] != float64(5) || spot["placaDoCarro"] != "ABC1234" {
		t.Fatalf("unexpected spot payload: %+v", spot)
	}
	if spot["horaEntrada"] != "2025-06-10 14:00:00" {
		t.Fatalf("unexpected horaEntrada: %v", spot["horaEntrada"])
	}
	if spot["horaSaida"] != "2025-06-10 16:00:00" {
		t.Fatalf("unexpected horaSaida: %v", spot["horaSaida"])
	}
}

func TestFiscalSpots_MissingFields(t *testing.T) {
	stub := &stubEnforcementService{
		listFn: func(ctx context.Context, in ports.ListActiveInput) ([]ports.SpotView, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewEnforcementHandler(stub)

	tests := []struct {
		body string
		want string
	}{
		{`{"nomeRua":"Rua Augusta"}`, "CPF do fiscal não fornecido."},
		{`{"cpf":"12345678900"}`, "Nome da rua não fornecido."},
	}
	for _, tc := range tests {
		c, _ := newEnforcementContext(t, "/fiscal_spot", tc.body)
		code, msg := httpErrorCode(t, handler.FiscalSpots(c))
		if code != http.StatusBadRequest || msg != tc.want {
			t.Fatalf("expected 400 %q, got %d %q", tc.want, code, msg)
		}
	}
}

func TestFiscalSpots_NoActiveSpots(t *testing.T) {
	stub := &stubEnforcementService{
		listFn: func(ctx context.Context, in ports.ListActiveInput) ([]ports.SpotView, error) {
			return nil, domain.ErrNoActiveSpots
		},
	}
	handler := NewEnforcementHandler(stub)

	c, _ := newEnforcementContext(t, "/fiscal_spot", `{"cpf":"12345678900","nomeRua":"Rua Augusta"}`)
	if err := handler.FiscalSpots(c); !errors.Is(err, domain.ErrNoActiveSpots) {
		t.Fatalf("expected ErrNoActiveSpots passthrough, got %v", err)
	}
}

func checkBody(t *testing.T) string {
	t.Helper()
	return `{"cpf":"12345678900","placaDoCarro":"ABC1234","nomeRua":"Rua Augusta"}`
}

func TestCheckParkingState_MissingFields(t *testing.T) {
	stub := &stubEnforcementService{
		evalFn: func(ctx context.Context, in ports.EvaluateInput) (*ports.EvaluateResult, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewEnforcementHandler(stub)

	tests := []struct {
		body string
		want string
	}{
		{`{"placaDoCarro":"ABC1234","nomeRua":"Rua Augusta"}`, "CPF do fiscal não fornecido."},
		{`{"cpf":"12345678900","nomeRua":"Rua Augusta"}`, "Placa do carro não fornecida."},
		{`{"cpf":"12345678900","placaDoCarro":"ABC1234"}`, "Nome da rua não fornecido."},
	}
	for _, tc := range tests {
		c, _ := newEnforcementContext(t, "/check_parking_state", tc.body)
		code, msg := httpErrorCode(t, handler.CheckParkingState(c))
		if code != http.StatusBadRequest || msg != tc.want {
			t.Fatalf("expected 400 %q, got %d %q", tc.want, code, msg)
		}
	}
}

func TestCheckParkingState_ValidHere(t *testing.T) {
	entry := time.Date(2025, 6, 10, 14, 0, 0, 0, time.Local)
	exit := entry.Add(time.Hour)
	stub := &stubEnforcementService{
		evalFn: func(ctx context.Context, in ports.EvaluateInput) (*ports.EvaluateResult, error) {
			return &ports.EvaluateResult{
				Classification: domain.ClassValidHere,
				Record: &domain.ParkingRecord{
					ID: 9, Plate: "ABC1234", StreetID: 1,
					State: domain.StatePaid, EntryTime: entry, ExitTime: &exit,
				},
			}, nil
		},
	}
	handler := NewEnforcementHandler(stub)

	c, rec := newEnforcementContext(t, "/check_parking_state", checkBody(t))
	if err := handler.CheckParkingState(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["message"] != "Veículo possui vaga ativa registrada nesta rua." {
		t.Fatalf("unexpected message: %v", resp["message"])
	}
	vaga, ok := resp["vaga"].(map[string]any)
	if !ok || vaga["IDVaga"] != float64(9) {
		t.Fatalf("expected vaga in payload: %+v", resp)
	}
}

func TestCheckParkingState_ValidElsewhere(t *testing.T) {
	entry := time.Date(2025, 6, 10, 14, 0, 0, 0, time.Local)
	exit := entry.Add(time.Hour)
	stub := &stubEnforcementService{
		evalFn: func(ctx context.Context, in ports.EvaluateInput) (*ports.EvaluateResult, error) {
			return &ports.EvaluateResult{
				Classification: domain.ClassValidElsewhere,
				Record: &domain.ParkingRecord{
					ID: 9, Plate: "ABC1234", StreetID: 1,
					State: domain.StatePaid, EntryTime: entry, ExitTime: &exit,
				},
			}, nil
		},
	}
	handler := NewEnforcementHandler(stub)

	c, rec := newEnforcementContext(t, "/check_parking_state", checkBody(t))
	if err := handler.CheckParkingState(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["message"] != "Veículo possuía vaga ativa em outra rua. Rua atualizada com sucesso." {
		t.Fatalf("unexpected message: %v", resp["message"])
	}
}

func TestCheckParkingState_FirstObservation(t *testing.T) {
	entry := time.Date(2025, 6, 10, 14, 0, 0, 0, time.Local)
	stub := &stubEnforcementService{
		evalFn: func(ctx context.Context, in ports.EvaluateInput) (*ports.EvaluateResult, error) {
			return &ports.EvaluateResult{
				Classification: domain.ClassFirstObservation,
				Record: &domain.ParkingRecord{
					ID: 10, Plate: "ABC1234", StreetID: 1,
					State: domain.StatePending, EntryTime: entry,
				},
				GraceDeadline: entry.Add(domain.DefaultGracePeriod),
			}, nil
		},
	}
	handler := NewEnforcementHandler(stub)

	c, rec := newEnforcementContext(t, "/check_parking_state", checkBody(t))
	if err := handler.CheckParkingState(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	want := "Veículo não possui vaga ativa. O proprietário tem 15 minutos para cadastrá-la, caso contrário você será solicitado para autuá-lo."
	if resp["message"] != want {
		t.Fatalf("unexpected message: %v", resp["message"])
	}
	vaga, ok := resp["vaga"].(map[string]any)
	if !ok || vaga["IDVaga"] != float64(10) {
		t.Fatalf("expected pending record in payload: %+v", resp)
	}
	if vaga["horaSaida"] != nil {
		t.Fatalf("pending record must not carry an exit time: %v", vaga["horaSaida"])
	}
}

func TestCheckParkingState_PendingGrace(t *testing.T) {
	deadline := time.Date(2025, 6, 10, 14, 15, 0, 0, time.Local)
	stub := &stubEnforcementService{
		evalFn: func(ctx context.Context, in ports.EvaluateInput) (*ports.EvaluateResult, error) {
			return &ports.EvaluateResult{
				Classification: domain.ClassPendingGrace,
				Record: &domain.ParkingRecord{
					ID: 10, Plate: "ABC1234", StreetID: 1,
					State: domain.StatePending, EntryTime: deadline.Add(-domain.DefaultGracePeriod),
				},
				GraceDeadline: deadline,
			}, nil
		},
	}
	handler := NewEnforcementHandler(stub)

	c, rec := newEnforcementContext(t, "/check_parking_state", checkBody(t))
	if err := handler.CheckParkingState(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["message"] != "Autuação recusada. O proprietário tem até 14:15:00 para cadastrá-la." {
		t.Fatalf("unexpected message: %v", resp["message"])
	}
}

func TestCheckParkingState_GraceExpired(t *testing.T) {
	entry := time.Date(2025, 6, 10, 14, 0, 0, 0, time.Local)
	stub := &stubEnforcementService{
		evalFn: func(ctx context.Context, in ports.EvaluateInput) (*ports.EvaluateResult, error) {
			return &ports.EvaluateResult{
				Classification: domain.ClassGraceExpired,
				Record: &domain.ParkingRecord{
					ID: 10, Plate: "ABC1234", StreetID: 1,
					State: domain.StatePending, EntryTime: entry,
				},
				GraceDeadline:      entry.Add(domain.DefaultGracePeriod),
				CitationAuthorized: true,
			}, nil
		},
	}
	handler := NewEnforcementHandler(stub)

	c, rec := newEnforcementContext(t, "/check_parking_state", checkBody(t))
	if err := handler.CheckParkingState(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["message"] != "Proprietário não registrou uma vaga a tempo. Você está autorizado a autuá-lo." {
		t.Fatalf("unexpected message: %v", resp["message"])
	}
}

func TestCheckParkingState_ServiceError(t *testing.T) {
	stub := &stubEnforcementService{
		evalFn: func(ctx context.Context, in ports.EvaluateInput) (*ports.EvaluateResult, error) {
			return nil, domain.ErrStreetNotFound
		},
	}
	handler := NewEnforcementHandler(stub)

	c, _ := newEnforcementContext(t, "/check_parking_state", checkBody(t))
	if err := handler.CheckParkingState(c); !errors.Is(err, domain.ErrStreetNotFound) {
		t.Fatalf("expected ErrStreetNotFound passthrough, got %v", err)
	}
}
