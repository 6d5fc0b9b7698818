package provision

import (
	"text/template"

	"github.com/Masterminds/sprig"
	"github.com/ghodss/yaml"
)

func toYaml(v interface{}) string {
	data, err := yaml.Marshal(v)
	if err != nil {
		// Swallow errors inside of a template.
		return ""
	}
	return string(data)
}

// FuncMap is the sprig function set minus the environment accessors,
// plus a yaml helper.
func FuncMap() template.FuncMap {
	f := sprig.TxtFuncMap()
	delete(f, "env")
	delete(f, "expandenv")
	f["toYaml"] = toYaml
	return f
}
