package sip

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateParams(t *testing.T) {
	tests := []struct {
		name         string
		params       Params
		wantValid    bool
		wantErrors   int
		wantWarnings int
	}{
		{
			name:      "valid surplus with default rate",
			params:    Params{MonthlySurplus: 25000},
			wantValid: true,
		},
		{
			name:       "zero surplus",
			params:     Params{MonthlySurplus: 0},
			wantValid:  false,
			wantErrors: 1,
		},
		{
			name:       "negative surplus",
			params:     Params{MonthlySurplus: -500},
			wantValid:  false,
			wantErrors: 1,
		},
		{
			name:         "implausibly large surplus warns but stays valid",
			params:       Params{MonthlySurplus: 2_000_000},
			wantValid:    true,
			wantWarnings: 1,
		},
		{
			name:       "rate above ceiling",
			params:     Params{MonthlySurplus: 10000, ExpectedReturnRate: rate(31)},
			wantValid:  false,
			wantErrors: 1,
		},
		{
			name:       "negative rate",
			params:     Params{MonthlySurplus: 10000, ExpectedReturnRate: rate(-1)},
			wantValid:  false,
			wantErrors: 1,
		},
		{
			name:      "zero rate is a legal override",
			params:    Params{MonthlySurplus: 10000, ExpectedReturnRate: rate(0)},
			wantValid: true,
		},
		{
			name:      "rate at ceiling",
			params:    Params{MonthlySurplus: 10000, ExpectedReturnRate: rate(30)},
			wantValid: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := ValidateParams(tt.params)
			assert.Equal(t, tt.wantValid, v.Valid)
			assert.Len(t, v.Errors, tt.wantErrors)
			assert.Len(t, v.Warnings, tt.wantWarnings)
		})
	}
}

func rate(v float64) *float64 { return &v }
