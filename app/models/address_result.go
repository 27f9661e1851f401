package models

import "time"

// NamedCode là một cặp (tên hiển thị, mã) cho một cấp hành chính trong kết
// quả phân loại — nhẹ hơn AdminUnit (vốn phục vụ cho gazetteer search, có
// path/alias/version) vì AddressResult chỉ cần tên và mã tại thời điểm
// phân loại.
type NamedCode struct {
	Name string `json:"name,omitempty"`
	Code string `json:"code,omitempty"`
}

// AddressResult là biểu diễn wire/persistence của một ParsedAddress từ
// engine lõi, được bổ sung thêm các trường phục vụ tầng ứng dụng (cache,
// review, hiển thị) — engine lõi không biết gì về các trường này.
type AddressResult struct {
	Raw            string   `json:"raw"`                       // Địa chỉ gốc do người dùng nhập
	CanonicalText  string   `json:"canonical_text"`             // "ward, district, province" từ kết quả đã khớp
	RawFingerprint string   `json:"raw_fingerprint"`           // Hash nội dung của input đã chuẩn hoá, dùng làm khoá cache/review
	Residual       string   `json:"residual,omitempty"`        // Phần token còn lại sau khi đã khớp (số nhà, tên đường...) — chỉ mang tính tham khảo

	Province NamedCode `json:"province"`
	District NamedCode `json:"district"`
	Ward     NamedCode `json:"ward"`

	Confidence float64  `json:"confidence"`
	Tier       string   `json:"tier"` // "trie" | "lcs" | "edit" | "none"
	Valid      bool     `json:"valid"`
	Flags      []string `json:"flags,omitempty"` // low_confidence, ambiguous_ward, residual_tokens_present...
}

// Quality flags — không ảnh hưởng tới engine lõi, chỉ phục vụ hiển thị và
// quyết định có đưa vào hàng đợi review hay không.
const (
	FlagLowConfidence         = "low_confidence"
	FlagAmbiguousWard         = "ambiguous_ward"
	FlagResidualTokensPresent = "residual_tokens_present"
)

// ReviewStatus là trạng thái của một AddressReview.
type ReviewStatus string

const (
	ReviewPending   ReviewStatus = "pending"
	ReviewInReview  ReviewStatus = "in_review"
	ReviewApproved  ReviewStatus = "approved"
	ReviewRejected  ReviewStatus = "rejected"
)

// AddressReview là một AddressResult có confidence thấp đang chờ con
// người xác nhận lại.
type AddressReview struct {
	ID             string        `json:"id" bson:"_id"`
	Fingerprint    string        `json:"fingerprint" bson:"fingerprint"`
	Raw            string        `json:"raw" bson:"raw"`
	AutomaticResult AddressResult `json:"automatic_result" bson:"automatic_result"`
	ManualResult   *AddressResult `json:"manual_result,omitempty" bson:"manual_result,omitempty"`
	Status         ReviewStatus  `json:"status" bson:"status"`
	CreatedAt      time.Time     `json:"created_at" bson:"created_at"`
	ResolvedAt     *time.Time    `json:"resolved_at,omitempty" bson:"resolved_at,omitempty"`
}

// IsValidStatus kiểm tra status có hợp lệ không.
func (r *AddressReview) IsValidStatus() bool {
	switch r.Status {
	case ReviewPending, ReviewInReview, ReviewApproved, ReviewRejected:
		return true
	default:
		return false
	}
}
