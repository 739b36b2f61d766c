// Package directorytest provides map-backed staff and customer directories for tests.
package directorytest

import (
	"context"
	"fmt"
	"sort"

	"staff-acl/internal/common/apperr"
	"staff-acl/internal/features/directory"
)

type Directory struct {
	Staff     map[int64]directory.Staff
	Customers map[int64]directory.Customer
}

func New() *Directory {
	return &Directory{
		Staff:     make(map[int64]directory.Staff),
		Customers: make(map[int64]directory.Customer),
	}
}

func (d *Directory) AddStaff(id int64, name, role string) *Directory {
	d.Staff[id] = directory.Staff{ID: id, FullName: name, Role: role, Status: "active"}
	return d
}

func (d *Directory) AddCustomer(id int64, name string) *Directory {
	d.Customers[id] = directory.Customer{ID: id, FullName: name}
	return d
}

func (d *Directory) FindStaff(ctx context.Context, id int64) (*directory.Staff, error) {
	s, ok := d.Staff[id]
	if !ok {
		return nil, fmt.Errorf("%w: staff %d", apperr.ErrNotFound, id)
	}
	return &s, nil
}

func (d *Directory) ListStaff(ctx context.Context) ([]directory.Staff, error) {
	out := make([]directory.Staff, 0, len(d.Staff))
	for _, s := range d.Staff {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (d *Directory) FindCustomer(ctx context.Context, id int64) (*directory.Customer, error) {
	c, ok := d.Customers[id]
	if !ok {
		return nil, fmt.Errorf("%w: customer %d", apperr.ErrNotFound, id)
	}
	return &c, nil
}
