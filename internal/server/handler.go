package server

import (
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	json "github.com/goccy/go-json"
	"github.com/rgehrsitz/kalkulator/internal/breakeven"
	"github.com/rgehrsitz/kalkulator/internal/calculation"
	"github.com/rgehrsitz/kalkulator/internal/compare"
	"github.com/rgehrsitz/kalkulator/internal/config"
	"github.com/rgehrsitz/kalkulator/internal/domain"
	"github.com/rgehrsitz/kalkulator/internal/output"
)

const maxBodyBytes = 1 << 16

// Handler serves the calculator API
type Handler struct {
	engine  *calculation.CalculationEngine
	compare *compare.CompareEngine
	solver  *breakeven.Solver
	logger  *slog.Logger
}

// NewHandler creates a handler around engine
func NewHandler(engine *calculation.CalculationEngine, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Handler{
		engine:  engine,
		compare: compare.NewCompareEngine(engine),
		solver:  breakeven.NewDefaultSolver(engine),
		logger:  logger,
	}
}

// Calculate computes both tax years for the contract named by ?type=.
// With ?format=html the ledgers are returned as rendered HTML tables.
func (h *Handler) Calculate(w http.ResponseWriter, r *http.Request) {
	started := time.Now()

	contract, err := domain.ParseContractType(r.URL.Query().Get("type"))
	if err != nil {
		HandleError(w, err, newMeta(started))
		return
	}

	params, err := h.decodeParameters(w, r)
	if err != nil {
		HandleError(w, err, newMeta(started))
		return
	}

	results, err := h.engine.CalculateYears(r.Context(), contract, params)
	if err != nil {
		h.logger.Error("calculation failed", slog.String("contract", string(contract)), slog.Any("error", err))
		HandleError(w, err, newMeta(started))
		return
	}

	data, err := calculatorPayload(results, r.URL.Query().Get("format") == "html")
	if err != nil {
		h.logger.Error("rendering failed", slog.Any("error", err))
		HandleError(w, err, newMeta(started))
		return
	}
	Success(w, data, newMeta(started))
}

// calculatorPayload keys ledgers by year next to the summary pair and the
// year-over-year change
func calculatorPayload(results *domain.YearComparison, html bool) (map[string]interface{}, error) {
	data := map[string]interface{}{}
	summary := make([]json.Number, 0, len(results.Ledgers))
	for _, ledger := range results.Ledgers {
		key := strconv.Itoa(int(ledger.Regime.Year))
		if html {
			table, err := output.LedgerTable(ledger)
			if err != nil {
				return nil, err
			}
			data[key] = string(table)
		} else {
			data[key] = ledger
		}
		summary = append(summary, json.Number(ledger.TotalNetSalary.StringFixed(2)))
	}
	data["summary"] = summary
	data["comparison"] = results.Change
	return data, nil
}

// Compare computes every contract for ?year= (default 2022)
func (h *Handler) Compare(w http.ResponseWriter, r *http.Request) {
	started := time.Now()

	year, ok := queryYear(w, r, started)
	if !ok {
		return
	}

	options := compare.CompareOptions{Year: year}
	if raw := r.URL.Query().Get("base"); raw != "" {
		contract, err := domain.ParseContractType(raw)
		if err != nil {
			HandleError(w, err, newMeta(started))
			return
		}
		options.BaseContract = contract
	}

	params, err := h.decodeParameters(w, r)
	if err != nil {
		HandleError(w, err, newMeta(started))
		return
	}

	compSet, err := h.compare.Compare(r.Context(), params, options)
	if err != nil {
		h.logger.Error("comparison failed", slog.Int("year", int(year)), slog.Any("error", err))
		HandleError(w, err, newMeta(started))
		return
	}
	Success(w, compSet, newMeta(started))
}

// BreakEven computes ?base= (default contract of employment) for ?year= and
// returns the gross salary every other contract needs to pay the same net
func (h *Handler) BreakEven(w http.ResponseWriter, r *http.Request) {
	started := time.Now()

	year, ok := queryYear(w, r, started)
	if !ok {
		return
	}
	base := domain.ContractEmployment
	if raw := r.URL.Query().Get("base"); raw != "" {
		contract, err := domain.ParseContractType(raw)
		if err != nil {
			HandleError(w, err, newMeta(started))
			return
		}
		base = contract
	}

	params, err := h.decodeParameters(w, r)
	if err != nil {
		HandleError(w, err, newMeta(started))
		return
	}

	match, err := h.solver.MatchContracts(r.Context(), domain.Regime{Contract: base, Year: year}, params)
	if err != nil {
		h.logger.Error("break-even search failed", slog.String("base", string(base)), slog.Any("error", err))
		HandleError(w, err, newMeta(started))
		return
	}
	Success(w, match, newMeta(started))
}

// queryYear reads ?year=, defaulting to 2022. On failure the error response
// is already written.
func queryYear(w http.ResponseWriter, r *http.Request, started time.Time) (domain.TaxYear, bool) {
	raw := r.URL.Query().Get("year")
	if raw == "" {
		return domain.Year2022, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		BadRequest(w, "year must be a number", map[string]string{"year": "must be a number"}, newMeta(started))
		return 0, false
	}
	year, err := domain.ParseTaxYear(n)
	if err != nil {
		HandleError(w, err, newMeta(started))
		return 0, false
	}
	return year, true
}

type regimeInfo struct {
	Contract    domain.ContractType `json:"contract"`
	Year        domain.TaxYear      `json:"year"`
	Description string              `json:"description"`
}

// Regimes lists the registered contract and year combinations
func (h *Handler) Regimes(w http.ResponseWriter, r *http.Request) {
	started := time.Now()

	regimes := h.engine.Registry.Regimes()
	data := make([]regimeInfo, 0, len(regimes))
	for _, regime := range regimes {
		info := regimeInfo{Contract: regime.Contract, Year: regime.Year}
		if rt, ok := h.engine.Registry.RateTable(regime); ok {
			info.Description = rt.Description
		}
		data = append(data, info)
	}
	Success(w, map[string]interface{}{
		"regimes":   data,
		"tax_rates": domain.RevenueTaxRates(),
	}, newMeta(started))
}

func (h *Handler) decodeParameters(w http.ResponseWriter, r *http.Request) (domain.Parameters, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return domain.Parameters{}, config.ErrMalformedBody
	}
	return config.DecodeParameters(body)
}
