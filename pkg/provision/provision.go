package provision

import (
	"bytes"
	"fmt"
	"text/template"
)

// Datasource describes one Prometheus datasource provisioning entry.
type Datasource struct {
	Name    string
	URL     string
	Default bool
}

// Provider describes a file-based dashboard provider entry pointing
// Grafana at the directory holding the generated document.
type Provider struct {
	Name   string
	Folder string
	Path   string
}

const datasourceTpl = `apiVersion: 1

datasources:
- name: {{ .Name | default "prometheus" | quote }}
  type: prometheus
  access: proxy
  url: {{ .URL | quote }}
  isDefault: {{ .Default }}
`

const providerTpl = `apiVersion: 1

providers:
- name: {{ .Name | default "dashboards" | quote }}
  orgId: 1
  folder: {{ .Folder | quote }}
  type: file
  disableDeletion: false
  options:
    path: {{ .Path | quote }}
`

func render(name, text string, data interface{}) ([]byte, error) {
	t, err := template.New(name).Funcs(FuncMap()).Parse(text)
	if err != nil {
		return nil, fmt.Errorf("parse %v template: %v", name, err)
	}
	var buf bytes.Buffer
	if err = t.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("render %v template: %v", name, err)
	}
	return buf.Bytes(), nil
}

func (d Datasource) Render() ([]byte, error) {
	return render("datasource", datasourceTpl, d)
}

func (p Provider) Render() ([]byte, error) {
	return render("provider", providerTpl, p)
}
