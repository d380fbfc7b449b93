package dto

import (
	"encoding/json"

	"github.com/polkiloo/flowershop/internal/domain/model"
)

// FlowerResponse is a catalog entry as exposed over HTTP.
type FlowerResponse struct {
	ID       int64       `json:"id"`
	Name     string      `json:"name"`
	Price    json.Number `json:"price"`
	Type     string      `json:"type"`
	Category string      `json:"category"`
	ImgLink  string      `json:"img_link"`
}

// NewFlowerResponse renders price as a JSON number with two decimals.
func NewFlowerResponse(f model.Flower) FlowerResponse {
	return FlowerResponse{
		ID:       f.ID,
		Name:     f.Name,
		Price:    json.Number(f.Price.StringFixed(2)),
		Type:     string(f.Type),
		Category: string(f.Category),
		ImgLink:  f.ImgLink,
	}
}
