package summary

import (
	"testing"

	"staff-acl/internal/features/scope"

	"github.com/stretchr/testify/assert"
)

func TestScore(t *testing.T) {
	tests := []struct {
		name  string
		caps  Capabilities
		score int
		level Level
	}{
		{name: "nothing", caps: Capabilities{}, score: 0, level: LevelNone},
		{name: "name only", caps: Capabilities{CanReadName: true}, score: 1, level: LevelBasic},
		{name: "basic reads", caps: Capabilities{CanReadName: true, CanReadPhone: true, CanReadEmail: true}, score: 3, level: LevelBasic},
		{
			name: "reads with appointments and invoices",
			caps: Capabilities{
				CanReadName: true, CanReadPhone: true, CanReadEmail: true,
				CanViewAppointments: true, CanViewInvoices: true,
			},
			score: 5,
			level: LevelExtended,
		},
		{name: "writes count once", caps: Capabilities{CanWriteName: true, CanWriteNotes: true, CanWriteDob: true}, score: 2, level: LevelBasic},
		{name: "creates count once", caps: Capabilities{CanCreateAppointments: true, CanCreateInvoices: true}, score: 2, level: LevelBasic},
		{name: "financial counts once", caps: Capabilities{CanReadTotalSpent: true, CanReadTotalPoints: true}, score: 2, level: LevelBasic},
		{name: "reads without scoring weight", caps: Capabilities{CanReadAddress: true, CanReadDob: true, CanViewHistory: true, CanExportHistory: true}, score: 0, level: LevelNone},
		{name: "delete alone", caps: Capabilities{CanDeleteCustomer: true}, score: 5, level: LevelExtended},
		{
			name: "full boundary",
			caps: Capabilities{
				CanReadName: true, CanReadPhone: true, CanReadEmail: true,
				CanWritePhone: true, CanViewAppointments: true, CanViewInvoices: true,
				CanCreateInvoices: true, CanReadTotalSpent: true,
			},
			score: 11,
			level: LevelFull,
		},
		{
			name: "everything",
			caps: Capabilities{
				CanReadName: true, CanReadPhone: true, CanReadEmail: true,
				CanWritePhone: true, CanViewAppointments: true, CanViewInvoices: true,
				CanCreateInvoices: true, CanReadTotalSpent: true, CanDeleteCustomer: true,
			},
			score: 16,
			level: LevelAdmin,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score := Score(tt.caps)
			assert.Equal(t, tt.score, score)
			assert.Equal(t, tt.level, LabelForScore(score))
		})
	}
}

func TestLabelThresholds(t *testing.T) {
	want := map[int]Level{
		0: LevelNone, 1: LevelBasic, 3: LevelBasic, 4: LevelExtended, 7: LevelExtended,
		8: LevelFull, 12: LevelFull, 13: LevelAdmin, 40: LevelAdmin,
	}
	for score, level := range want {
		assert.Equal(t, level, LabelForScore(score), "score %d", score)
	}
}

func TestFinancialScopeSetsBothFlags(t *testing.T) {
	c := CapabilitiesFromScopes([]scope.Scope{scope.CustomerFinancialRead})
	assert.True(t, c.CanReadTotalSpent)
	assert.True(t, c.CanReadTotalPoints)
	assert.Equal(t, 2, Score(c))
}
