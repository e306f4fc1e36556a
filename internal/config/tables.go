package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"crate-blink/internal/domain"
)

// Tables is the YAML form of the static currency and token tables.
//
//	currencies:
//	  - currency: SOL
//	    mint: So11111111111111111111111111111111111111112
//	    decimals: 9
//	tokens:
//	  JUP: JUPyiwrYJFskUPiHa7hkeR8VUtAeFoSYbKedZNsDvCN
type Tables struct {
	Currencies []domain.CurrencySpec `yaml:"currencies"`
	Tokens     map[string]string     `yaml:"tokens"`
	// ReplaceTokens drops the built-in token table instead of merging into it.
	ReplaceTokens bool `yaml:"replace_tokens"`
}

// LoadTables reads tables from path.
func LoadTables(path string) (Tables, error) {
	var t Tables
	file, err := os.Open(path)
	if err != nil {
		return t, fmt.Errorf("open tables: %w", err)
	}
	defer file.Close()

	dec := yaml.NewDecoder(file)
	dec.KnownFields(true)
	if err := dec.Decode(&t); err != nil {
		return t, fmt.Errorf("decode tables: %w", err)
	}

	for i, spec := range t.Currencies {
		c, err := domain.ParseCurrency(string(spec.Currency))
		if err != nil || strings.TrimSpace(string(spec.Currency)) == "" {
			return t, fmt.Errorf("currencies[%d]: unsupported currency %q", i, spec.Currency)
		}
		t.Currencies[i].Currency = c
	}
	return t, nil
}

// apply overlays the tables on cfg.
func (t Tables) apply(cfg *Config) {
	if len(t.Currencies) > 0 {
		table := domain.DefaultCurrencyTable()
		for _, spec := range t.Currencies {
			table[spec.Currency] = spec
		}
		cfg.Currencies = table
	}

	if t.ReplaceTokens {
		cfg.Tokens = map[string]string{}
	}
	for symbol, mint := range t.Tokens {
		cfg.Tokens[strings.ToUpper(strings.TrimSpace(symbol))] = strings.TrimSpace(mint)
	}
}
