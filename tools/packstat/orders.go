package main

import (
	"strings"

	"github.com/depp/texpack/lib/rectpack"
)

// orderList is a flag value holding a comma-separated list of sort orders.
type orderList struct {
	orders *[]rectpack.Order
}

func newOrderList(p *[]rectpack.Order) *orderList {
	return &orderList{orders: p}
}

func (l *orderList) String() string {
	if l.orders == nil {
		return ""
	}
	names := make([]string, len(*l.orders))
	for i, o := range *l.orders {
		names[i] = o.String()
	}
	return strings.Join(names, ",")
}

func (l *orderList) Set(s string) error {
	for _, name := range strings.Split(s, ",") {
		var o rectpack.Order
		if err := o.Set(strings.TrimSpace(name)); err != nil {
			return err
		}
		*l.orders = append(*l.orders, o)
	}
	return nil
}

func (*orderList) Type() string {
	return "orders"
}
