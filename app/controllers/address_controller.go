package controllers

import (
	"compress/gzip"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/vnaddr/classifier/app/models"
	"github.com/vnaddr/classifier/app/requests"
	"github.com/vnaddr/classifier/app/responses"
	"github.com/vnaddr/classifier/app/services"
	"github.com/vnaddr/classifier/helpers/utils"
	"go.uber.org/zap"
)

// AddressController controller xử lý các request liên quan đến địa chỉ
type AddressController struct {
	addressService   *services.AddressService
	cacheService     services.ICacheService
	gazetteerVersion string
	logger           *zap.Logger
}

// NewAddressController tạo mới AddressController
func NewAddressController(addressService *services.AddressService, cacheService services.ICacheService, gazetteerVersion string, logger *zap.Logger) *AddressController {
	return &AddressController{
		addressService:   addressService,
		cacheService:     cacheService,
		gazetteerVersion: gazetteerVersion,
		logger:           logger,
	}
}

// ParseAddress parse địa chỉ đơn lẻ
func (ac *AddressController) ParseAddress(c *gin.Context) {
	var req requests.ParseAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, responses.ErrorResponse{
			Error:   "INVALID_REQUEST",
			Message: "Request không hợp lệ: " + err.Error(),
		})
		return
	}

	startTime := time.Now()

	result, err := ac.addressService.ParseAddress(c.Request.Context(), req.Address, req.Options)
	if err != nil {
		c.JSON(http.StatusInternalServerError, responses.ErrorResponse{
			Error:   "PARSE_ERROR",
			Message: "Lỗi parse địa chỉ: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, responses.ParseAddressResponse{
		GazetteerVersion: ac.gazetteerVersion,
		Results:          []models.AddressResult{*result},
		ProcessingTimeMs: time.Since(startTime).Milliseconds(),
		CacheHit:         req.Options.UseCache && result.Tier != "",
	})
}

// BatchParse parse hàng loạt địa chỉ
func (ac *AddressController) BatchParse(c *gin.Context) {
	var req requests.BatchParseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, responses.ErrorResponse{
			Error:   "INVALID_REQUEST",
			Message: "Request không hợp lệ: " + err.Error(),
		})
		return
	}

	if len(req.Addresses) > 20000 {
		c.JSON(http.StatusBadRequest, responses.ErrorResponse{
			Error:   "TOO_MANY_ADDRESSES",
			Message: "Số lượng địa chỉ vượt quá giới hạn (20,000)",
		})
		return
	}

	jobID := utils.GenerateUUID()
	estimatedTime := ac.addressService.EstimateBatchProcessingTime(len(req.Addresses))

	go ac.addressService.ProcessBatchJob(jobID, req.Addresses, req.Options)

	c.JSON(http.StatusAccepted, responses.BatchParseResponse{
		JobID:            jobID,
		EstimatedSeconds: estimatedTime,
		TotalAddresses:   len(req.Addresses),
		Message:          "Job đã được tạo và đang xử lý",
	})
}

// GetJobStatus lấy trạng thái job
func (ac *AddressController) GetJobStatus(c *gin.Context) {
	jobID := c.Param("jobID")
	if jobID == "" {
		c.JSON(http.StatusBadRequest, responses.ErrorResponse{
			Error:   "MISSING_JOB_ID",
			Message: "Thiếu Job ID",
		})
		return
	}

	status, err := ac.addressService.GetJobStatus(jobID)
	if err != nil {
		c.JSON(http.StatusNotFound, responses.ErrorResponse{
			Error:   "JOB_NOT_FOUND",
			Message: "Không tìm thấy job: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, responses.JobStatusResponse{
		JobID:              jobID,
		Status:             status.Status,
		Progress:           status.Progress,
		Processed:          status.Processed,
		Total:              status.Total,
		EstimatedRemaining: status.EstimatedRemaining,
		Message:            status.Message,
	})
}

// GetJobResults lấy kết quả job với hỗ trợ NDJSON + gzip streaming
func (ac *AddressController) GetJobResults(c *gin.Context) {
	jobID := c.Param("jobID")
	if jobID == "" {
		c.JSON(http.StatusBadRequest, responses.ErrorResponse{
			Error:   "MISSING_JOB_ID",
			Message: "Thiếu Job ID",
		})
		return
	}

	format := c.Query("format")
	gzipEnabled := c.Query("gzip") == "1"

	if format == "ndjson" {
		ac.streamNDJSONResults(c, jobID, gzipEnabled)
		return
	}

	results, err := ac.addressService.GetJobResults(jobID)
	if err != nil {
		c.JSON(http.StatusNotFound, responses.ErrorResponse{
			Error:   "JOB_NOT_FOUND",
			Message: "Không tìm thấy job: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, responses.SuccessResponse{
		Success: true,
		Message: "Lấy kết quả thành công",
		Data:    results,
	})
}

// HealthCheck kiểm tra sức khỏe service
func (ac *AddressController) HealthCheck(c *gin.Context) {
	uptime := time.Since(ac.addressService.GetStartTime())

	c.JSON(http.StatusOK, responses.HealthCheckResponse{
		Status:    "healthy",
		Timestamp: time.Now().Format(time.RFC3339),
		Uptime:    uptime.String(),
		Version:   "1.0.0",
		Services: map[string]string{
			"classifier": "healthy",
			"cache":      "healthy",
			"database":   "healthy",
		},
	})
}

// streamNDJSONResults stream kết quả theo format NDJSON với hỗ trợ gzip
func (ac *AddressController) streamNDJSONResults(c *gin.Context, jobID string, gzipEnabled bool) {
	if gzipEnabled {
		c.Header("Content-Type", "application/x-ndjson")
		c.Header("Content-Encoding", "gzip")
	} else {
		c.Header("Content-Type", "application/x-ndjson")
	}

	var writer gin.ResponseWriter = c.Writer
	if gzipEnabled {
		gzWriter := gzip.NewWriter(c.Writer)
		defer gzWriter.Close()
		writer = &gzipResponseWriter{
			ResponseWriter: c.Writer,
			gzWriter:       gzWriter,
		}
	}

	resultChannel, err := ac.addressService.GetJobResultsStream(jobID)
	if err != nil {
		ac.logger.Error("Lỗi stream job results", zap.Error(err))
		c.JSON(http.StatusNotFound, responses.ErrorResponse{
			Error:   "JOB_NOT_FOUND",
			Message: "Không tìm thấy job: " + err.Error(),
		})
		return
	}

	encoder := json.NewEncoder(writer)
	for result := range resultChannel {
		if err := encoder.Encode(result); err != nil {
			ac.logger.Error("Lỗi encode NDJSON", zap.Error(err))
			break
		}
		if flusher, ok := writer.(http.Flusher); ok {
			flusher.Flush()
		}
	}
}

// gzipResponseWriter wrapper cho gzip writer
type gzipResponseWriter struct {
	gin.ResponseWriter
	gzWriter *gzip.Writer
}

func (w *gzipResponseWriter) Write(data []byte) (int, error) {
	return w.gzWriter.Write(data)
}

func (w *gzipResponseWriter) Flush() {
	w.gzWriter.Flush()
	if flusher, ok := w.ResponseWriter.(http.Flusher); ok {
		flusher.Flush()
	}
}
