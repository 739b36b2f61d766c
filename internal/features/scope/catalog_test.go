package scope

import (
	"errors"
	"strings"
	"testing"

	"staff-acl/internal/common/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	s, err := Parse("CUSTOMER_EMAIL_READ")
	require.NoError(t, err)
	assert.Equal(t, CustomerEmailRead, s)

	_, err = Parse("CUSTOMER_SHOE_SIZE_READ")
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperr.ErrInvalidArgument))

	_, err = ParseAll([]string{"INVOICE_VIEW", "nope"})
	assert.True(t, errors.Is(err, apperr.ErrInvalidArgument))
}

// The static table must agree with the naming convention so the two cannot drift.
func TestCatalogActionsMatchSuffix(t *testing.T) {
	seen := map[Scope]bool{}
	for _, d := range All() {
		require.False(t, seen[d.Scope], "duplicate scope %s", d.Scope)
		seen[d.Scope] = true
		assert.True(t, strings.HasSuffix(string(d.Scope), "_"+string(d.Action)), "scope %s action %s", d.Scope, d.Action)
	}
}

func TestReadableWritable(t *testing.T) {
	assert.True(t, CustomerPhoneRead.IsReadable())
	assert.False(t, CustomerPhoneRead.IsWritable())
	assert.True(t, CustomerNotesWrite.IsWritable())
	assert.False(t, AppointmentView.IsReadable())
	assert.False(t, Scope("BOGUS_READ").IsReadable())
}

func TestFieldLookups(t *testing.T) {
	s, ok := ReadScopeForField("phone")
	assert.True(t, ok)
	assert.Equal(t, CustomerPhoneRead, s)

	s, ok = ReadScopeForField("totalPoints")
	assert.True(t, ok)
	assert.Equal(t, CustomerFinancialRead, s)

	_, ok = WriteScopeForField("totalSpent")
	assert.False(t, ok)

	_, ok = ReadScopeForField("passwordHash")
	assert.False(t, ok)

	for _, tbl := range []map[string]Scope{readScopes, writeScopes} {
		for field, s := range tbl {
			assert.True(t, s.Valid(), "field %s maps to unknown scope %s", field, s)
		}
	}
}
