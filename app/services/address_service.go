package services

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/vnaddr/classifier/app/config"
	"github.com/vnaddr/classifier/app/models"
	"github.com/vnaddr/classifier/app/requests"
	"github.com/vnaddr/classifier/internal/auxscore"
	"github.com/vnaddr/classifier/internal/engine"
	"github.com/vnaddr/classifier/internal/external"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// AddressService bọc engine lõi (internal/engine.Engine), chịu trách nhiệm
// cho mọi thứ xung quanh classify() thuần: cache, fingerprint, hàng đợi
// review cho các kết quả confidence thấp, và quản lý batch job.
type AddressService struct {
	engine *engine.Engine
	cache  ICacheService
	db     *mongo.Database // optional, dùng để ghi AddressReview; có thể nil
	logger *zap.Logger

	reviewThreshold  float64
	gazetteerVersion string

	startTime time.Time
	mu        sync.RWMutex

	jobs       map[string]*JobStatus
	jobResults map[string][]*models.AddressResult
}

// JobStatus trạng thái của một batch job.
type JobStatus struct {
	JobID              string
	Status             string // processing | done
	Progress           float64
	Processed          int
	Total              int
	EstimatedRemaining int
	Message            string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// NewAddressService tạo mới AddressService quanh một engine đã được build
// sẵn. cache và db đều có thể nil (bỏ qua cache / bỏ qua ghi review).
func NewAddressService(eng *engine.Engine, cache ICacheService, db *mongo.Database, gazetteerVersion string, reviewThreshold float64, logger *zap.Logger) *AddressService {
	return &AddressService{
		engine:           eng,
		cache:            cache,
		db:               db,
		logger:           logger,
		reviewThreshold:  reviewThreshold,
		gazetteerVersion: gazetteerVersion,
		startTime:        time.Now(),
		jobs:             make(map[string]*JobStatus),
		jobResults:       make(map[string][]*models.AddressResult),
	}
}

// fingerprint băm địa chỉ gốc đã được trim/lowercase, dùng làm khoá cache
// và khoá chống trùng lặp cho hàng đợi review.
func fingerprint(raw string) string {
	sum := sha256.Sum256([]byte(strings.ToLower(strings.TrimSpace(raw))))
	return fmt.Sprintf("sha256:%x", sum)
}

// ParseAddress phân loại một địa chỉ: tra cache trước (nếu bật), nếu miss
// thì gọi engine lõi, rồi cache lại kết quả và đẩy vào hàng đợi review nếu
// confidence dưới ngưỡng cấu hình.
func (as *AddressService) ParseAddress(ctx context.Context, raw string, options requests.ParseOptions) (*models.AddressResult, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, errors.New("địa chỉ không được để trống")
	}

	fp := fingerprint(raw)

	if options.UseCache && as.cache != nil {
		if cached, ok, err := as.cache.Get(ctx, fp); err == nil && ok {
			return cached, nil
		}
	}

	if config.C.UseLibpostal && as.logger != nil {
		lp := external.ExtractWithLibpostal(raw)
		as.logger.Debug("libpostal pre-parse (informational only)",
			zap.String("house", lp.House),
			zap.String("road", lp.Road),
			zap.Float64("confidence", lp.Confidence))
	}

	parsed := as.engine.Classify(raw)
	result := toAddressResult(raw, fp, parsed)

	threshold := options.MinConfidence
	if threshold == 0 {
		threshold = as.reviewThreshold
	}
	if result.Confidence < threshold {
		result.Flags = append(result.Flags, models.FlagLowConfidence)
		as.enqueueReview(ctx, result)
	}

	if as.logger != nil {
		auxScore := auxscore.Score(raw, result.CanonicalText, auxscore.DefaultWeights)
		as.logger.Debug("classified address",
			zap.String("tier", result.Tier),
			zap.Float64("confidence", result.Confidence),
			zap.Float64("aux_score", auxScore),
			zap.Bool("valid", result.Valid))
	}

	if options.UseCache && as.cache != nil {
		_ = as.cache.Set(ctx, fp, result)
	}

	return result, nil
}

// toAddressResult chuyển ParsedAddress của engine lõi sang AddressResult —
// lớp dữ liệu duy nhất engine lõi không biết gì về (flags, fingerprint...).
func toAddressResult(raw, fp string, p engine.ParsedAddress) *models.AddressResult {
	var parts []string
	for _, name := range []string{p.WardName, p.DistrictName, p.ProvinceName} {
		if name != "" {
			parts = append(parts, name)
		}
	}

	result := &models.AddressResult{
		Raw:            raw,
		CanonicalText:  strings.Join(parts, ", "),
		RawFingerprint: fp,
		Residual:       p.Residual,
		Province:       models.NamedCode{Name: p.ProvinceName, Code: p.ProvinceCode},
		District:       models.NamedCode{Name: p.DistrictName, Code: p.DistrictCode},
		Ward:           models.NamedCode{Name: p.WardName, Code: p.WardCode},
		Confidence:     p.Confidence,
		Tier:           string(p.Tier),
		Valid:          p.Valid,
	}
	if p.WardName == "" && (p.DistrictName != "" || p.ProvinceName != "") {
		result.Flags = append(result.Flags, models.FlagAmbiguousWard)
	}
	if p.Residual != "" {
		result.Flags = append(result.Flags, models.FlagResidualTokensPresent)
	}
	return result
}

// enqueueReview ghi một AddressReview pending vào MongoDB nếu đã cấu hình
// db, bỏ qua nếu bản ghi với fingerprint này đã tồn tại (idempotent theo
// fingerprint, đúng tinh thần "mỗi fingerprint phân biệt vào review đúng
// một lần").
func (as *AddressService) enqueueReview(ctx context.Context, result *models.AddressResult) {
	if as.db == nil {
		return
	}
	review := models.AddressReview{
		ID:              result.RawFingerprint,
		Fingerprint:     result.RawFingerprint,
		Raw:             result.Raw,
		AutomaticResult: *result,
		Status:          models.ReviewPending,
		CreatedAt:       time.Now(),
	}
	_, err := as.db.Collection("address_review").InsertOne(ctx, review)
	if err != nil && as.logger != nil {
		as.logger.Warn("không thể đẩy vào hàng đợi review", zap.String("fingerprint", result.RawFingerprint), zap.Error(err))
	}
}

// EstimateBatchProcessingTime ước tính thời gian xử lý batch, tính bằng
// giây, dựa trên một ước lượng cố định cho mỗi địa chỉ.
func (as *AddressService) EstimateBatchProcessingTime(addressCount int) int {
	const perAddressMs = 5
	return (addressCount * perAddressMs) / 1000
}

// ProcessBatchJob xử lý một batch địa chỉ trong background, cập nhật
// JobStatus sau mỗi địa chỉ. Số kết quả luôn bằng số địa chỉ nộp vào,
// kể cả khi một địa chỉ lỗi (trường hợp đó trả về kết quả rỗng/invalid).
func (as *AddressService) ProcessBatchJob(jobID string, addresses []string, options requests.ParseOptions) {
	as.mu.Lock()
	as.jobs[jobID] = &JobStatus{
		JobID:     jobID,
		Status:    "processing",
		Total:     len(addresses),
		Message:   "Đang xử lý...",
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	as.mu.Unlock()

	ctx := context.Background()
	results := make([]*models.AddressResult, len(addresses))

	for i, address := range addresses {
		result, err := as.ParseAddress(ctx, address, options)
		if err != nil {
			result = &models.AddressResult{Raw: address, Tier: string(engine.TierNone), Confidence: 0}
		}
		results[i] = result

		as.mu.Lock()
		if job, exists := as.jobs[jobID]; exists {
			job.Processed = i + 1
			job.Progress = float64(i+1) / float64(len(addresses))
			job.UpdatedAt = time.Now()
			if i == len(addresses)-1 {
				job.Status = "done"
				job.Message = "Hoàn thành xử lý"
			}
		}
		as.mu.Unlock()
	}

	as.mu.Lock()
	as.jobResults[jobID] = results
	as.mu.Unlock()

	if as.logger != nil {
		as.logger.Info("batch job completed", zap.String("job_id", jobID), zap.Int("total_addresses", len(addresses)))
	}
}

// GetJobStatus lấy trạng thái job.
func (as *AddressService) GetJobStatus(jobID string) (*JobStatus, error) {
	as.mu.RLock()
	defer as.mu.RUnlock()
	job, exists := as.jobs[jobID]
	if !exists {
		return nil, errors.New("job không tồn tại")
	}
	return job, nil
}

// GetJobResults lấy toàn bộ kết quả của một job đã hoàn thành.
func (as *AddressService) GetJobResults(jobID string) ([]*models.AddressResult, error) {
	as.mu.RLock()
	defer as.mu.RUnlock()
	results, exists := as.jobResults[jobID]
	if !exists {
		return nil, errors.New("kết quả job không tồn tại")
	}
	return results, nil
}

// GetJobResultsStream trả về kết quả job dưới dạng channel để stream cho
// client (NDJSON hoặc SSE ở tầng controller).
func (as *AddressService) GetJobResultsStream(jobID string) (<-chan *models.AddressResult, error) {
	results, err := as.GetJobResults(jobID)
	if err != nil {
		return nil, err
	}
	out := make(chan *models.AddressResult, 100)
	go func() {
		defer close(out)
		for _, result := range results {
			out <- result
		}
	}()
	return out, nil
}

// GetStartTime trả về thời điểm khởi động service.
func (as *AddressService) GetStartTime() time.Time {
	return as.startTime
}

// GetStats trả về thống kê runtime cơ bản của service.
func (as *AddressService) GetStats() map[string]interface{} {
	as.mu.RLock()
	defer as.mu.RUnlock()
	uptime := time.Since(as.startTime)
	return map[string]interface{}{
		"uptime_seconds":    int64(uptime.Seconds()),
		"start_time":        as.startTime.Format(time.RFC3339),
		"gazetteer_version": as.gazetteerVersion,
		"status":            "running",
	}
}
