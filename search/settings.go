// elGraph: a tool for querying assembly graphs.
// Copyright (c) 2024 imec vzw.

// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version, and Additional Terms
// (see below).

// This program is distributed in the hope that it will be useful, but
// WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the GNU
// Affero General Public License for more details.

// You should have received a copy of the GNU Affero General Public
// License and Additional Terms along with this program. If not, see
// <https://github.com/ExaScience/elgraph/blob/master/LICENSE.txt>.

package search

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// OptionalFloat is a threshold that can be switched off.
type OptionalFloat struct {
	Value float64 `yaml:"value"`
	On    bool    `yaml:"enabled"`
}

// OptionalInt is a threshold that can be switched off.
type OptionalInt struct {
	Value int  `yaml:"value"`
	On    bool `yaml:"enabled"`
}

// HitFilters select which alignment hits are kept when they are
// loaded.
type HitFilters struct {
	MinAlignmentLength OptionalInt   `yaml:"min-alignment-length"`
	MinQueryCoverage   OptionalFloat `yaml:"min-query-coverage"`
	MinIdentity        OptionalFloat `yaml:"min-identity"`
	MaxEValue          OptionalFloat `yaml:"max-e-value"`
	MinBitScore        OptionalFloat `yaml:"min-bit-score"`
}

// Settings holds the thresholds used to reconstruct query paths.
// Settings are passed by value and never modified by a search.
type Settings struct {
	MaxHitsForQueryPath      int           `yaml:"max-hits-for-query-path"`
	MaxQueryPathNodes        int           `yaml:"max-query-path-nodes"`
	MinQueryCoveredByPath    float64       `yaml:"min-query-covered-by-path"`
	MinQueryCoveredByHits    OptionalFloat `yaml:"min-query-covered-by-hits"`
	MaxEValueProduct         OptionalFloat `yaml:"max-e-value-product"`
	MinMeanHitIdentity       OptionalFloat `yaml:"min-mean-hit-identity"`
	MinLengthPercentage      OptionalFloat `yaml:"min-length-percentage"`
	MaxLengthPercentage      OptionalFloat `yaml:"max-length-percentage"`
	MinLengthBaseDiscrepancy OptionalInt   `yaml:"min-length-base-discrepancy"`
	MaxLengthBaseDiscrepancy OptionalInt   `yaml:"max-length-base-discrepancy"`
	HitFilters               HitFilters    `yaml:"hit-filters"`
}

// DefaultSettings returns the default search settings.
func DefaultSettings() Settings {
	return Settings{
		MaxHitsForQueryPath:      100,
		MaxQueryPathNodes:        6,
		MinQueryCoveredByPath:    0.9,
		MinQueryCoveredByHits:    OptionalFloat{0.9, true},
		MaxEValueProduct:         OptionalFloat{1e-10, true},
		MinMeanHitIdentity:       OptionalFloat{0.5, true},
		MinLengthPercentage:      OptionalFloat{0.95, true},
		MaxLengthPercentage:      OptionalFloat{1.05, true},
		MinLengthBaseDiscrepancy: OptionalInt{-100, true},
		MaxLengthBaseDiscrepancy: OptionalInt{100, true},
		HitFilters: HitFilters{
			MinAlignmentLength: OptionalInt{100, false},
			MinQueryCoverage:   OptionalFloat{0.5, false},
			MinIdentity:        OptionalFloat{0.9, false},
			MaxEValue:          OptionalFloat{1e-10, false},
			MinBitScore:        OptionalFloat{1000, false},
		},
	}
}

// ParseSettings reads YAML settings. Fields that are not present keep
// their default values.
func ParseSettings(data []byte) (Settings, error) {
	settings := DefaultSettings()
	if err := yaml.Unmarshal(data, &settings); err != nil {
		return Settings{}, fmt.Errorf("parse settings: %w", err)
	}
	if err := settings.Validate(); err != nil {
		return Settings{}, fmt.Errorf("invalid settings: %w", err)
	}
	return settings, nil
}

// LoadSettings reads YAML settings from a file.
func LoadSettings(filename string) (Settings, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return Settings{}, err
	}
	return ParseSettings(data)
}

// Validate checks that the settings can be used for a search.
func (s Settings) Validate() error {
	switch {
	case s.MaxHitsForQueryPath < 1:
		return errors.New("max-hits-for-query-path must be at least 1")
	case s.MaxQueryPathNodes < 1:
		return errors.New("max-query-path-nodes must be at least 1")
	case s.MinQueryCoveredByPath < 0 || s.MinQueryCoveredByPath > 1:
		return errors.New("min-query-covered-by-path must be between 0 and 1")
	case s.MinLengthPercentage.On && s.MaxLengthPercentage.On &&
		s.MinLengthPercentage.Value > s.MaxLengthPercentage.Value:
		return errors.New("min-length-percentage exceeds max-length-percentage")
	case s.MinLengthBaseDiscrepancy.On && s.MaxLengthBaseDiscrepancy.On &&
		s.MinLengthBaseDiscrepancy.Value > s.MaxLengthBaseDiscrepancy.Value:
		return errors.New("min-length-base-discrepancy exceeds max-length-base-discrepancy")
	}
	return nil
}
