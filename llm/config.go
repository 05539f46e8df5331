/**
 * Copyright 2025 ByteDance Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     https://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package llm

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cloudwego/abwriter/internal/utils"
)

// Environment variables consulted by ApplyEnv.
const (
	EnvAPIType = "ABWRITER_MODEL_TYPE"
	EnvModel   = "ABWRITER_MODEL"
	EnvBaseURL = "ABWRITER_BASE_URL"
	EnvAPIKey  = "ABWRITER_API_KEY"
)

// LoadModelConfig reads a YAML (or JSON) model config file.
func LoadModelConfig(path string) (ModelConfig, error) {
	var cfg ModelConfig
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, utils.WrapError(err, "read config %s", path)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, utils.WrapError(err, "parse config %s", path)
	}
	cfg.APIType = NewModelType(string(cfg.APIType))
	return cfg, nil
}

// ApplyEnv fills fields left empty by the config file from the environment.
func (m ModelConfig) ApplyEnv() ModelConfig {
	if m.APIType == ModelTypeUnknown {
		m.APIType = NewModelType(os.Getenv(EnvAPIType))
	}
	if m.ModelName == "" {
		m.ModelName = os.Getenv(EnvModel)
	}
	if m.BaseURL == "" {
		m.BaseURL = os.Getenv(EnvBaseURL)
	}
	if m.APIKey == "" {
		m.APIKey = os.Getenv(EnvAPIKey)
	}
	return m
}
