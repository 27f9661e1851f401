package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// GazetteerCfg trỏ tới dữ liệu tham chiếu (3 cấp hành chính) engine lõi
// được build từ đó, cộng các file khởi động cho từ điển viết tắt động.
type GazetteerCfg struct {
	Version        string `yaml:"version" json:"version"`
	ProvincesPath  string `yaml:"provinces_path" json:"provinces_path"`
	DistrictsPath  string `yaml:"districts_path" json:"districts_path"`
	WardsPath      string `yaml:"wards_path" json:"wards_path"`
	ProvinceWarmTxt string `yaml:"province_warm_txt,omitempty" json:"province_warm_txt,omitempty"`
	DistrictWarmTxt string `yaml:"district_warm_txt,omitempty" json:"district_warm_txt,omitempty"`
	WardWarmTxt     string `yaml:"ward_warm_txt,omitempty" json:"ward_warm_txt,omitempty"`
}

// MatcherCfg là các tham số construction-time của engine lõi.
type MatcherCfg struct {
	LCSThreshold  float64 `yaml:"lcs_threshold" json:"lcs_threshold"`
	EditDistanceK int     `yaml:"edit_distance_k" json:"edit_distance_k"`
}

// Thresholds ngưỡng ambient dùng để quyết định đưa kết quả vào hàng đợi
// review — không ảnh hưởng tới confidence engine lõi trả về.
type Thresholds struct {
	ReviewLow float64 `yaml:"review_low" json:"review_low"`
}

// MeiliCfg cấu hình cho search mirror (Meilisearch), tách biệt khỏi
// đường đi classify() lõi.
type MeiliCfg struct {
	Host      string `yaml:"host" json:"host"`
	APIKey    string `yaml:"api_key" json:"api_key"`
	IndexName string `yaml:"index_name" json:"index_name"`
}

// CacheCfg chọn backend cache (memory|redis|mongo|hybrid) và các tham số
// cho từng loại.
type CacheCfg struct {
	Backend  string `yaml:"backend" json:"backend"` // memory | redis | mongo | hybrid
	L1Size   int    `yaml:"l1_size" json:"l1_size"`
	RedisURL string `yaml:"redis_url,omitempty" json:"redis_url,omitempty"`
	MongoURI string `yaml:"mongo_uri,omitempty" json:"mongo_uri,omitempty"`
	MongoDB  string `yaml:"mongo_db,omitempty" json:"mongo_db,omitempty"`
}

// ServiceCfg là cấu hình gốc của ứng dụng.
type ServiceCfg struct {
	Port         string       `yaml:"port" json:"port"`
	UseLibpostal bool         `yaml:"use_libpostal" json:"use_libpostal"`
	Gazetteer    GazetteerCfg `yaml:"gazetteer" json:"gazetteer"`
	Matcher      MatcherCfg   `yaml:"matcher" json:"matcher"`
	Thresholds   Thresholds   `yaml:"thresholds" json:"thresholds"`
	Meili        MeiliCfg     `yaml:"meili" json:"meili"`
	Cache        CacheCfg     `yaml:"cache" json:"cache"`
}

var C ServiceCfg

// Load đọc cấu hình YAML từ path, rồi áp dụng override từ biến môi trường.
func Load(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(b, &C); err != nil {
		return err
	}

	if v := os.Getenv("USE_LIBPOSTAL"); v == "0" {
		C.UseLibpostal = false
	}
	if v := os.Getenv("USE_LIBPOSTAL"); v == "1" {
		C.UseLibpostal = true
	}
	if v := os.Getenv("PORT"); v != "" {
		C.Port = v
	}
	if v := os.Getenv("MONGO_URI"); v != "" {
		C.Cache.MongoURI = v
	}
	return nil
}

// RequestTimeout là timeout mặc định cho một lượt parse đơn lẻ.
func RequestTimeout() time.Duration { return 1500 * time.Millisecond }
