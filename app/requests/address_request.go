package requests

import "github.com/vnaddr/classifier/app/models"

// SeedGazetteerRequest request nạp dữ liệu gazetteer (ba cấp: tỉnh, huyện,
// xã) vào hệ thống, xây lại index tra cứu.
type SeedGazetteerRequest struct {
	GazetteerVersion string            `json:"gazetteer_version" binding:"required"`
	Data             []models.AdminUnit `json:"data" binding:"required"`
	RebuildIndexes   bool              `json:"rebuild_indexes,omitempty"`
}

// ParseAddressRequest request parse địa chỉ đơn lẻ
type ParseAddressRequest struct {
	Address string      `json:"address" binding:"required"` // Địa chỉ cần parse
	Options ParseOptions `json:"options,omitempty"`          // Tùy chọn parse
}

// ParseOptions tùy chọn parse
type ParseOptions struct {
	UseCache      bool    `json:"use_cache,omitempty"`      // Có sử dụng cache không
	MinConfidence float64 `json:"min_confidence,omitempty"` // Ngưỡng confidence tối thiểu để đưa vào hàng đợi review
}

// BatchParseRequest request parse hàng loạt địa chỉ
type BatchParseRequest struct {
	Addresses []string     `json:"addresses" binding:"required,min=1,max=20000"` // Danh sách địa chỉ (tối đa 20k)
	Options   ParseOptions `json:"options,omitempty"`                            // Tùy chọn parse
}

// ReviewApproveRequest request phê duyệt review
type ReviewApproveRequest struct {
	ReviewerID string `json:"reviewer_id" binding:"required"` // ID người review
}

// ReviewCorrectRequest request chỉnh sửa kết quả review, dùng triple hành
// chính thủ công thay vì toàn bộ AddressResult — mọi trường khác (raw,
// fingerprint, canonical text) được dẫn xuất lại từ bản ghi review gốc.
type ReviewCorrectRequest struct {
	ProvinceName string `json:"province_name" binding:"required"`
	DistrictName string `json:"district_name,omitempty"`
	WardName     string `json:"ward_name,omitempty"`
	LearnAliases bool   `json:"learn_aliases,omitempty"` // Có học aliases từ chỉnh sửa này không
	ReviewerID   string `json:"reviewer_id" binding:"required"`
}
