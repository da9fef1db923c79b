// Package output serializes processing results for the command line.
package output

import (
	"encoding/json"

	"github.com/ukaji3/mergesplit-go/pkg/mergesplit/models"
)

// ToJSON serializes a processing result.
func ToJSON(result *models.ProcessResult, pretty bool) ([]byte, error) {
	if result.Logs == nil {
		clone := *result
		clone.Logs = []string{}
		result = &clone
	}
	return marshal(result, pretty)
}

// ConfigsToJSON serializes process configurations.
func ConfigsToJSON(configs []models.ProcessConfig, pretty bool) ([]byte, error) {
	if configs == nil {
		configs = []models.ProcessConfig{}
	}
	return marshal(configs, pretty)
}

func marshal(v any, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}
