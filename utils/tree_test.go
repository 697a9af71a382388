package utils

import (
	"reflect"
	"testing"

	"LeadDial/internal/model"
)

func TestFlattenProductsPreOrder(t *testing.T) {
	nodes := []*model.ProductNode{
		{
			ID:   1,
			Name: "A",
			Children: []*model.ProductNode{
				{ID: 2, Name: "B"},
				{
					ID:   3,
					Name: "C",
					Children: []*model.ProductNode{
						{ID: 4, Name: "D"},
					},
				},
			},
		},
	}

	got := FlattenProducts(nodes)
	want := []model.ProductOption{
		{Value: "A", Label: "A"},
		{Value: "B", Label: "A > B"},
		{Value: "C", Label: "A > C"},
		{Value: "D", Label: "A > C > D"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("FlattenProducts = %v, want %v", got, want)
	}
}

func TestFlattenProductsNilInput(t *testing.T) {
	got := FlattenProducts(nil)
	if got == nil || len(got) != 0 {
		t.Fatalf("FlattenProducts(nil) = %v, want empty slice", got)
	}
}

func TestDecodeProductNodes(t *testing.T) {
	bare := []byte(`[{"id":1,"name":"SUV"}]`)
	if nodes := DecodeProductNodes(bare); len(nodes) != 1 || nodes[0].Name != "SUV" {
		t.Fatalf("decode bare array failed: %v", nodes)
	}

	wrapped := []byte(`{"data":[{"id":2,"name":"轿车"}]}`)
	if nodes := DecodeProductNodes(wrapped); len(nodes) != 1 || nodes[0].Name != "轿车" {
		t.Fatalf("decode wrapped object failed: %v", nodes)
	}

	if nodes := DecodeProductNodes([]byte(`"not a tree"`)); len(nodes) != 0 {
		t.Fatalf("decode malformed input should yield empty, got %v", nodes)
	}
}

func TestBuildProductTree(t *testing.T) {
	products := []*model.Product{
		{BaseModel: model.BaseModel{ID: 1}, Name: "A", ParentID: 0},
		{BaseModel: model.BaseModel{ID: 2}, Name: "B", ParentID: 1},
		{BaseModel: model.BaseModel{ID: 3}, Name: "C", ParentID: 1},
		{BaseModel: model.BaseModel{ID: 4}, Name: "D", ParentID: 3},
	}

	tree := BuildProductTree(products)
	if len(tree) != 1 || tree[0].Name != "A" {
		t.Fatalf("unexpected roots: %v", tree)
	}
	if len(tree[0].Children) != 2 {
		t.Fatalf("A should have 2 children, got %d", len(tree[0].Children))
	}
	if tree[0].Children[1].Children[0].Name != "D" {
		t.Fatalf("D should nest under C")
	}

	flat := FlattenProducts(tree)
	if flat[3].Label != "A > C > D" {
		t.Fatalf("breadcrumb = %q, want %q", flat[3].Label, "A > C > D")
	}
}
