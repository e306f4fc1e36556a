package orchestrator

import (
	"context"
	"fmt"
	"strings"

	"crate-blink/internal/domain"
)

// Descriptor is the display form of a crate used to render the purchase form.
type Descriptor struct {
	CrateID     string
	Title       string
	Description string
	Icon        string
	Label       string
	Parameters  []Parameter
}

// Parameter is one input field of the purchase form.
type Parameter struct {
	Name     string
	Label    string
	Type     string
	Required bool
	Options  []ParameterOption
}

// ParameterOption is one choice of a select parameter.
type ParameterOption struct {
	Label    string
	Value    string
	Selected bool
}

// Describe returns the descriptor of a crate. It has no side effects.
func (o *Orchestrator) Describe(ctx context.Context, crateID string) (*Descriptor, error) {
	if strings.TrimSpace(crateID) == "" {
		return nil, fmt.Errorf("%w: crate id is required", domain.ErrValidation)
	}

	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	crate, err := o.loadCrate(ctx, crateID)
	if err != nil {
		return nil, err
	}

	icon := crate.Icon
	if icon == "" {
		icon = o.defaultIcon
	}
	description := crate.Description
	if description == "" {
		description = fmt.Sprintf("Buy the %s crate of %d tokens in a single action", crate.Name, len(crate.Tokens))
	}

	return &Descriptor{
		CrateID:     crateID,
		Title:       crate.Name,
		Description: description,
		Icon:        icon,
		Label:       "Buy",
		Parameters: []Parameter{
			{Name: "amount", Label: "Amount", Type: "number", Required: true},
			{Name: "currency", Label: "Currency", Type: "select", Required: true, Options: o.currencyOptions()},
		},
	}, nil
}

func (o *Orchestrator) currencyOptions() []ParameterOption {
	var opts []ParameterOption
	for _, c := range []domain.Currency{domain.CurrencyPrimary, domain.CurrencyStable} {
		if _, ok := o.currencies[c]; !ok {
			continue
		}
		opts = append(opts, ParameterOption{
			Label:    c.String(),
			Value:    c.String(),
			Selected: c == domain.CurrencyPrimary,
		})
	}
	return opts
}
