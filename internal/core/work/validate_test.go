package work

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func validFields() Fields {
	wf := 40
	return Fields{
		Name:            "Plaza Constitucion",
		Description:     "Puesta en valor",
		TermMonths:      12,
		ProgressPercent: 45,
		ContractAmount:  decimal.RequireFromString("1234567.89"),
		WorkforceCount:  &wf,
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Fields)
		wantErr bool
	}{
		{"valid fields", func(f *Fields) {}, false},
		{"nil workforce is allowed", func(f *Fields) { f.WorkforceCount = nil }, false},
		{"zero amount is allowed", func(f *Fields) { f.ContractAmount = decimal.Zero }, false},
		{"negative term", func(f *Fields) { f.TermMonths = -1 }, true},
		{"progress above 100", func(f *Fields) { f.ProgressPercent = 101 }, true},
		{"negative progress", func(f *Fields) { f.ProgressPercent = -0.5 }, true},
		{"negative amount", func(f *Fields) { f.ContractAmount = decimal.NewFromInt(-1) }, true},
		{"negative workforce", func(f *Fields) { wf := -2; f.WorkforceCount = &wf }, true},
		{"empty name", func(f *Fields) { f.Name = "" }, true},
		{"empty description", func(f *Fields) { f.Description = "" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := validFields()
			tt.mutate(&f)
			err := Validate(f)
			if tt.wantErr && err == nil {
				t.Fatal("Validate() = nil, want error")
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("Validate() = %v, want nil", err)
			}
			if tt.wantErr && !errors.Is(err, ErrValidation) {
				t.Errorf("error %v is not ErrValidation", err)
			}
		})
	}
}
