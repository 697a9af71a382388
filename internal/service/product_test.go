package service

import (
	"testing"

	"LeadDial/internal/model"
)

func TestProductInCatalog(t *testing.T) {
	options := []model.ProductOption{
		{Value: "轿车A", Label: "轿车 > 轿车A"},
		{Value: "SUV-X", Label: "SUV > SUV-X"},
	}

	if !productInCatalog(options, "SUV-X") {
		t.Fatal("catalog product rejected")
	}
	if productInCatalog(options, "飞行汽车") {
		t.Fatal("unknown product accepted")
	}

	// 目录尚未同步时放行，不挡线索创建
	if !productInCatalog(nil, "任意车型") {
		t.Fatal("empty catalog should not reject")
	}
}
