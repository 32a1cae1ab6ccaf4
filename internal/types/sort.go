package types

import (
	"errors"
	"sort"
)

// SortField names a numeric record attribute the sort endpoint accepts.
type SortField string

const (
	SortByHeight SortField = "height"
	SortByWeight SortField = "weight"
	SortByBMI    SortField = "bmi"
)

// SortOrder is the direction of a sort.
type SortOrder string

const (
	OrderAsc  SortOrder = "asc"
	OrderDesc SortOrder = "desc"
)

var (
	ErrInvalidSortField = errors.New("Invalid sorting field, enter one from height,weight or bmi")
	ErrInvalidSortOrder = errors.New("Invalid order fields,enter one from asc or desc")
)

// ParseSortField validates a sort_by query value.
func ParseSortField(s string) (SortField, error) {
	switch f := SortField(s); f {
	case SortByHeight, SortByWeight, SortByBMI:
		return f, nil
	}
	return "", ErrInvalidSortField
}

// ParseSortOrder validates an order_by query value.
func ParseSortOrder(s string) (SortOrder, error) {
	switch o := SortOrder(s); o {
	case OrderAsc, OrderDesc:
		return o, nil
	}
	return "", ErrInvalidSortOrder
}

// key returns the value r is ordered by. A record missing the attribute
// decodes to zero, so it sorts as 0.
func (f SortField) key(r Record) float64 {
	switch f {
	case SortByHeight:
		return r.Height
	case SortByWeight:
		return r.Weight
	case SortByBMI:
		return r.BMI
	}
	return 0
}

// SortRecords returns records ordered by field. The sort is stable in both
// directions: records with equal keys keep their relative order.
func SortRecords(records []Record, field SortField, order SortOrder) []Record {
	out := make([]Record, len(records))
	copy(out, records)

	sort.SliceStable(out, func(i, j int) bool {
		a, b := field.key(out[i]), field.key(out[j])
		if order == OrderDesc {
			return a > b
		}
		return a < b
	})
	return out
}
