package dto

import (
	"strings"

	"suratku_backend/internals/features/classifications/service"
)

// ClassificationItem: satu kode klasifikasi dari body request
type ClassificationItem struct {
	Code  string `json:"code" validate:"required,max=50"`
	Label string `json:"label" validate:"required,max=255"`
	Type  string `json:"type" validate:"omitempty,oneof=main sub"`
}

func (r *ClassificationItem) Normalize() {
	r.Code = strings.TrimSpace(r.Code)
	r.Label = strings.TrimSpace(r.Label)
	r.Type = strings.ToLower(strings.TrimSpace(r.Type))
}

func (r ClassificationItem) ToItem() service.Item {
	return service.Item{Code: r.Code, Label: r.Label, Type: r.Type}
}

// UpdateClassificationRequest: code boleh kosong (pakai :code)
type UpdateClassificationRequest struct {
	Code  string `json:"code" validate:"omitempty,max=50"`
	Label string `json:"label" validate:"required,max=255"`
	Type  string `json:"type" validate:"omitempty,oneof=main sub"`
}

func (r *UpdateClassificationRequest) Normalize() {
	r.Code = strings.TrimSpace(r.Code)
	r.Label = strings.TrimSpace(r.Label)
	r.Type = strings.ToLower(strings.TrimSpace(r.Type))
}

func (r UpdateClassificationRequest) ToItem() service.Item {
	return service.Item{Code: r.Code, Label: r.Label, Type: r.Type}
}

func ToItems(in []ClassificationItem) []service.Item {
	out := make([]service.Item, 0, len(in))
	for i := range in {
		in[i].Normalize()
		out = append(out, in[i].ToItem())
	}
	return out
}
