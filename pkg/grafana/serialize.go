package grafana

import (
	"github.com/ghodss/yaml"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// JSON renders the document the way the provisioning API expects it.
// Output is deterministic for a given board value.
func (b *Board) JSON() ([]byte, error) {
	return json.MarshalIndent(b, "", "  ")
}

func (b *Board) YAML() ([]byte, error) {
	return yaml.Marshal(b)
}
