package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"crate-blink/internal/domain"
	"crate-blink/internal/observability"
	"crate-blink/internal/orchestrator"
)

// maxBodyBytes caps POST bodies.
const maxBodyBytes = 16 << 10

func (h *handler) describe(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	crateID := r.URL.Query().Get("crateId")

	desc, err := h.purchaser.Describe(r.Context(), crateID)
	if err != nil {
		h.metrics.RecordRequest("describe", observability.OutcomeError, time.Since(start))
		h.writeError(w, err)
		return
	}

	h.metrics.RecordRequest("describe", observability.OutcomeSuccess, time.Since(start))
	writeJSON(w, http.StatusOK, actionFromDescriptor(desc))
}

func (h *handler) execute(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	req, err := parseFundingRequest(r)
	if err != nil {
		h.metrics.RecordRequest("execute", observability.OutcomeError, time.Since(start))
		h.writeError(w, err)
		return
	}

	result, err := h.purchaser.Execute(r.Context(), req)
	if err != nil {
		h.metrics.RecordRequest("execute", observability.OutcomeError, time.Since(start))
		h.writeError(w, err)
		return
	}

	h.metrics.RecordRequest("execute", observability.OutcomeSuccess, time.Since(start))
	writeJSON(w, http.StatusOK, actionPostResponse{
		Type:              "transaction",
		Transaction:       result.Bundle.First(),
		Transactions:      result.Bundle.Payloads(),
		Message:           purchaseMessage(result),
		UnsupportedAssets: result.Unsupported,
		Links: &actionPostLinks{
			Next: nextAction{
				Type: "post",
				Href: ActionCompletePath + "?crateId=" + url.QueryEscape(req.CrateID),
			},
		},
	})
}

// complete answers the post-confirmation callback with a terminal action.
func (h *handler) complete(w http.ResponseWriter, r *http.Request) {
	desc, err := h.purchaser.Describe(r.Context(), r.URL.Query().Get("crateId"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, completedAction{
		Type:        "completed",
		Icon:        desc.Icon,
		Title:       desc.Title,
		Description: "Purchase submitted. Your crate tokens will arrive once the transactions confirm.",
		Label:       "Done",
	})
}

func (h *handler) preflight(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) actionsJSON(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, actionsJSON{
		Rules: []actionRule{
			{PathPattern: "/api/actions/**", APIPath: "/api/actions/**"},
		},
	})
}

// parseFundingRequest reads crateId, amount and currency from the query, with
// the JSON body as fallback for amount and currency. The payer comes from the
// body account, or the X-User-Public-Key header when the body has none.
func parseFundingRequest(r *http.Request) (domain.FundingRequest, error) {
	var body actionPostRequest
	if r.Body != nil {
		data, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
		if err != nil {
			return domain.FundingRequest{}, fmt.Errorf("%w: read body: %v", domain.ErrValidation, err)
		}
		if len(strings.TrimSpace(string(data))) > 0 {
			if err := json.Unmarshal(data, &body); err != nil {
				return domain.FundingRequest{}, fmt.Errorf("%w: malformed body: %v", domain.ErrValidation, err)
			}
		}
	}

	q := r.URL.Query()
	payer := strings.TrimSpace(body.Account)
	if payer == "" {
		payer = strings.TrimSpace(r.Header.Get("X-User-Public-Key"))
	}

	rawAmount := firstNonEmpty(q.Get("amount"), body.Amount)
	if rawAmount == "" {
		return domain.FundingRequest{}, fmt.Errorf("%w: amount is required", domain.ErrValidation)
	}
	amount, err := decimal.NewFromString(strings.TrimSpace(rawAmount))
	if err != nil {
		return domain.FundingRequest{}, fmt.Errorf("%w: invalid amount %q", domain.ErrValidation, rawAmount)
	}

	currency, err := domain.ParseCurrency(firstNonEmpty(q.Get("currency"), body.Currency))
	if err != nil {
		return domain.FundingRequest{}, err
	}

	req := domain.FundingRequest{
		TotalAmount: amount,
		Currency:    currency,
		Payer:       payer,
		CrateID:     strings.TrimSpace(q.Get("crateId")),
	}
	if err := req.Validate(); err != nil {
		return domain.FundingRequest{}, err
	}
	return req, nil
}

func actionFromDescriptor(d *orchestrator.Descriptor) actionGetResponse {
	params := make([]actionParameter, len(d.Parameters))
	query := url.Values{}
	query.Set("crateId", d.CrateID)
	href := ActionPath + "?" + query.Encode()

	for i, p := range d.Parameters {
		var opts []actionOption
		for _, o := range p.Options {
			opts = append(opts, actionOption{Label: o.Label, Value: o.Value, Selected: o.Selected})
		}
		params[i] = actionParameter{
			Name:     p.Name,
			Label:    p.Label,
			Type:     p.Type,
			Required: p.Required,
			Options:  opts,
		}
		href += "&" + p.Name + "={" + p.Name + "}"
	}

	return actionGetResponse{
		Type:        "action",
		Icon:        d.Icon,
		Title:       d.Title,
		Description: d.Description,
		Label:       d.Label,
		Links: &actionLinks{
			Actions: []linkedAction{{
				Type:       "transaction",
				Label:      d.Label,
				Href:       href,
				Parameters: params,
			}},
		},
	}
}

func purchaseMessage(result *orchestrator.Result) string {
	name := "crate"
	if result.Crate != nil && result.Crate.Name != "" {
		name = result.Crate.Name
	}
	msg := fmt.Sprintf("%s purchase ready for signing: %d transactions", name, result.Bundle.Len())
	if len(result.Unsupported) > 0 {
		msg += fmt.Sprintf(" (skipped unsupported assets: %s)", strings.Join(result.Unsupported, ", "))
	}
	return msg
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}
