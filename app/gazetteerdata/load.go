// Package gazetteerdata loads the three-level reference data (provinces,
// districts, wards) and the optional abbreviation warm-up word lists off
// disk, in the shape internal/engine.Config expects. It is the only place
// in the repository that touches the gazetteer's I/O boundary — the engine
// itself never reads a file.
package gazetteerdata

import (
	"bufio"
	"encoding/json"
	"os"

	"github.com/vnaddr/classifier/internal/engine"
	"github.com/vnaddr/classifier/internal/gazetteer"
)

// Load reads provinces/districts/wards JSON arrays and the optional
// abbreviation warm-up text files (one word per line, ignored if the path
// is empty) into an engine.Config ready for engine.New.
func Load(cfg Paths) (engine.Config, error) {
	provinces, err := loadProvinces(cfg.ProvincesPath)
	if err != nil {
		return engine.Config{}, err
	}
	districts, err := loadDistricts(cfg.DistrictsPath)
	if err != nil {
		return engine.Config{}, err
	}
	wards, err := loadWards(cfg.WardsPath)
	if err != nil {
		return engine.Config{}, err
	}

	provinceWarm, err := loadWordList(cfg.ProvinceWarmTxt)
	if err != nil {
		return engine.Config{}, err
	}
	districtWarm, err := loadWordList(cfg.DistrictWarmTxt)
	if err != nil {
		return engine.Config{}, err
	}
	wardWarm, err := loadWordList(cfg.WardWarmTxt)
	if err != nil {
		return engine.Config{}, err
	}

	return engine.Config{
		Provinces:          provinces,
		Districts:          districts,
		Wards:              wards,
		ProvinceAbbrevWarm: provinceWarm,
		DistrictAbbrevWarm: districtWarm,
		WardAbbrevWarm:     wardWarm,
		LCSThreshold:       cfg.LCSThreshold,
		EditDistanceK:      cfg.EditDistanceK,
	}, nil
}

// Paths bundles the file paths and matcher tunables Load needs. Warm-up
// paths and tunables may be left zero.
type Paths struct {
	ProvincesPath string
	DistrictsPath string
	WardsPath     string

	ProvinceWarmTxt string
	DistrictWarmTxt string
	WardWarmTxt     string

	LCSThreshold  float64
	EditDistanceK int
}

func loadProvinces(path string) ([]gazetteer.Province, error) {
	var out []gazetteer.Province
	if err := loadJSON(path, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func loadDistricts(path string) ([]gazetteer.District, error) {
	var out []gazetteer.District
	if err := loadJSON(path, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func loadWards(path string) ([]gazetteer.Ward, error) {
	var out []gazetteer.Ward
	if err := loadJSON(path, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func loadJSON(path string, v interface{}) error {
	if path == "" {
		return nil
	}
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return json.NewDecoder(f).Decode(v)
}

func loadWordList(path string) ([]string, error) {
	if path == "" {
		return nil, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var words []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if line := scanner.Text(); line != "" {
			words = append(words, line)
		}
	}
	return words, scanner.Err()
}
