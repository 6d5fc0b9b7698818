package main

import (
	"flag"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/kuberlab/board/pkg/dashboard"
	"github.com/kuberlab/board/pkg/grafana"
	"github.com/kuberlab/board/pkg/provision"
	"github.com/kuberlab/board/pkg/utils"
)

// Command line parameters
var (
	out           string
	format        string
	provisionDir  string
	datasourceURL string
)

func init() {
	flag.StringVar(&out, "out", "-", "Output file for the dashboard document, '-' for stdout")
	flag.StringVar(&format, "format", "json", "Output format: json or yaml")
	flag.StringVar(&provisionDir, "provision-dir", "", "Also write Grafana provisioning manifests to this directory")
	flag.StringVar(&datasourceURL, "datasource-url", "http://prometheus:9090", "Prometheus URL for the provisioned datasource")
}

func main() {
	flag.Parse()

	board := dashboard.Build()
	if err := board.Validate(); err != nil {
		logrus.Errorf("Invalid dashboard: %v", err)
		utils.LogExit(1)
	}

	data, err := marshal(board)
	if err != nil {
		logrus.Errorf("Serialize dashboard: %v", err)
		utils.LogExit(1)
	}

	if out == "-" {
		fmt.Print(string(data))
	} else {
		if err = ioutil.WriteFile(out, data, 0644); err != nil {
			logrus.Errorf("Write %v: %v", out, err)
			utils.LogExit(1)
		}
		logrus.Infof("Wrote dashboard %q to %v", board.Title, out)
	}

	if provisionDir != "" {
		if err = writeProvisioning(provisionDir); err != nil {
			logrus.Errorf("Write provisioning: %v", err)
			utils.LogExit(1)
		}
	}
}

func marshal(b *grafana.Board) ([]byte, error) {
	switch format {
	case "json":
		return b.JSON()
	case "yaml":
		return b.YAML()
	}
	return nil, fmt.Errorf("unknown format %q", format)
}

func writeProvisioning(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	ds := provision.Datasource{
		Name:    dashboard.DatasourceVar,
		URL:     datasourceURL,
		Default: true,
	}
	prov := provision.Provider{
		Name:   utils.SlugEncode(dashboard.Title, 63),
		Folder: "",
		Path:   "/var/lib/grafana/dashboards",
	}
	files := []struct {
		name   string
		render func() ([]byte, error)
	}{
		{"datasource.yaml", ds.Render},
		{"provider.yaml", prov.Render},
	}
	for _, f := range files {
		data, err := f.render()
		if err != nil {
			return err
		}
		path := filepath.Join(dir, f.name)
		if err = ioutil.WriteFile(path, data, 0644); err != nil {
			return err
		}
		logrus.Infof("Wrote %v", path)
	}
	return nil
}
