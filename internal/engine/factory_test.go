package engine

import (
	"testing"
)

func TestFactoryCreate(t *testing.T) {
	f := NewFactory(nil)
	cases := []struct {
		typ Type
		ext string
	}{
		{SVG, ".svg"},
		{PNG, ".png"},
		{ECharts, ".html"},
		{ChartJS, ".html"},
		{"SVG", ".svg"},
	}
	for _, tc := range cases {
		res, err := f.Create(Config{Type: tc.typ})
		if err != nil {
			t.Fatalf("Create(%s): %v", tc.typ, err)
		}
		if res.Engine == nil || res.Ext != tc.ext {
			t.Fatalf("Create(%s) = %+v", tc.typ, res)
		}
	}
}

func TestFactoryRejectsUnknown(t *testing.T) {
	if _, err := NewFactory(nil).Create(Config{Type: "canvas"}); err == nil {
		t.Fatalf("expected error")
	}
}

func TestTypeIsValid(t *testing.T) {
	for _, typ := range Types() {
		if !typ.IsValid() {
			t.Fatalf("%s should be valid", typ)
		}
	}
	if Type("").IsValid() {
		t.Fatalf("empty type should be invalid")
	}
}
