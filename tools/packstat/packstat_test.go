package main

import (
	"reflect"
	"testing"

	"github.com/depp/texpack/lib/rectpack"
)

func TestOrderList(t *testing.T) {
	var orders []rectpack.Order
	l := newOrderList(&orders)
	if err := l.Set("AreaAsc, widthdesc"); err != nil {
		t.Fatal(err)
	}
	if err := l.Set("Unsorted"); err != nil {
		t.Fatal(err)
	}
	want := []rectpack.Order{rectpack.AreaAsc, rectpack.WidthDesc, rectpack.Unsorted}
	if !reflect.DeepEqual(orders, want) {
		t.Errorf("got %v, want %v", orders, want)
	}
	if s := l.String(); s != "AreaAsc,WidthDesc,Unsorted" {
		t.Errorf("String: got %q", s)
	}
	if err := l.Set("Sideways"); err == nil {
		t.Error("expected error for unknown order")
	}
}

func TestPackPages(t *testing.T) {
	items := []rectpack.Item{
		{Index: 0, Size: rectpack.Point{X: 8, Y: 8}},
		{Index: 1, Size: rectpack.Point{X: 8, Y: 8}},
		{Index: 2, Size: rectpack.Point{X: 16, Y: 16}},
	}
	page := rectpack.Point{X: 16, Y: 16}
	for _, p := range rectpack.AllAlgorithms(0) {
		t.Run(p.Name(), func(t *testing.T) {
			pages, fill, err := packPages(p, page, items, 8*8*2+16*16)
			if err != nil {
				t.Fatal(err)
			}
			if pages != 2 {
				t.Errorf("pages: got %d, want 2", pages)
			}
			if fill <= 0 || fill > 1 {
				t.Errorf("fill %f out of range", fill)
			}
		})
	}
	big := []rectpack.Item{{Index: 0, Size: rectpack.Point{X: 17, Y: 1}}}
	if _, _, err := packPages(rectpack.New(0), page, big, 17); err == nil {
		t.Error("expected error for oversized rectangle")
	}
}
