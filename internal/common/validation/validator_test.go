package validation

import (
	"errors"
	"testing"

	"staff-acl/internal/common/apperr"

	"github.com/stretchr/testify/assert"
)

type sampleRequest struct {
	StaffID int64             `json:"staff_id" validate:"required,gt=0"`
	Scopes  []string          `json:"scopes" validate:"required,min=1"`
	Levels  map[string]string `json:"levels" validate:"dive,access_level"`
}

func TestStruct(t *testing.T) {
	assert.NoError(t, Struct(sampleRequest{StaffID: 1, Scopes: []string{"INVOICE_VIEW"}, Levels: map[string]string{"customerPhone": "NO"}}))

	err := Struct(sampleRequest{Scopes: []string{}})
	assert.True(t, errors.Is(err, apperr.ErrInvalidArgument))
	assert.Contains(t, err.Error(), "staff_id")
	assert.Contains(t, err.Error(), "scopes")

	err = Struct(sampleRequest{StaffID: 1, Scopes: []string{"x"}, Levels: map[string]string{"customerPhone": "HIDDEN"}})
	assert.True(t, errors.Is(err, apperr.ErrInvalidArgument))
}

func TestVar(t *testing.T) {
	assert.NoError(t, Var("EDIT", "access_level"))
	assert.Error(t, Var("edit", "access_level"))
}
