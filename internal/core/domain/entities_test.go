package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoleValid(t *testing.T) {
	assert.True(t, RoleUser.Valid())
	assert.True(t, RoleAccountant.Valid())
	assert.False(t, Role("Admin").Valid())
	assert.False(t, Role("").Valid())
}

func TestLoanStatusValid(t *testing.T) {
	for _, s := range LoanStatuses() {
		assert.True(t, s.Valid(), s)
	}
	assert.False(t, LoanStatus("Cancelled").Valid())
	assert.False(t, LoanStatus("processing").Valid())
}

func TestLoanTypeValid(t *testing.T) {
	tests := []struct {
		in   LoanType
		want bool
	}{
		{LoanTypeFast, true},
		{LoanTypeAuto, true},
		{LoanTypeInstallment, true},
		{"Mortgage", false},
		{"", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.in.Valid(), tt.in)
	}
}
