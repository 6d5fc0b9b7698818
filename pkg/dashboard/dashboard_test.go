package dashboard

import (
	"bytes"
	"os"
	"reflect"
	"regexp"
	"runtime"
	"strings"
	"testing"

	"github.com/kuberlab/board/pkg/grafana"
)

func Assert(want, got interface{}, t *testing.T) {
	if reflect.DeepEqual(want, got) {
		return
	}
	_, file, line, _ := runtime.Caller(1)
	splitted := strings.Split(file, string(os.PathSeparator))
	t.Fatalf("%v:%v: Failed: got %v, want %v", splitted[len(splitted)-1], line, got, want)
}

var panelOrder = []string{
	"Running Users",
	"Memory commitment %",
	"CPU commitment %",
	"Node Count",
	"Non Running Pods",
	"Node CPU Utilization %",
	"Node Memory Utilization %",
	"Node CPU Commit %",
	"Node Memory Commit %",
}

func TestBuildStructure(t *testing.T) {
	b := Build()

	Assert(Title, b.Title, t)
	Assert(true, b.Editable, t)
	Assert(Tags, b.Tags, t)

	Assert(1, len(b.Templating.List), t)
	Assert("PROMETHEUS_DS", b.Templating.List[0].Name, t)
	Assert("datasource", b.Templating.List[0].Type, t)

	rows := b.Rows()
	Assert(2, len(rows), t)
	Assert("Cluster Stats", rows[0].Title, t)
	Assert("Node Stats", rows[1].Title, t)

	graphs := b.Graphs()
	Assert(9, len(graphs), t)
	for i, p := range graphs {
		Assert(panelOrder[i], p.Title, t)
	}
}

func TestRowPlacement(t *testing.T) {
	b := Build()

	// "Cluster Stats" first, then its five panels, then "Node Stats"
	// and its four panels.
	Assert(11, len(b.Panels), t)
	Assert(grafana.PanelRow, b.Panels[0].Type, t)
	Assert("Cluster Stats", b.Panels[0].Title, t)
	for i := 1; i <= 5; i++ {
		Assert(grafana.PanelGraph, b.Panels[i].Type, t)
	}
	Assert(grafana.PanelRow, b.Panels[6].Type, t)
	Assert("Node Stats", b.Panels[6].Title, t)
	for i := 7; i <= 10; i++ {
		Assert(grafana.PanelGraph, b.Panels[i].Type, t)
	}
}

func TestBuildValid(t *testing.T) {
	Assert(nil, Build().Validate(), t)
}

func TestAxisBounds(t *testing.T) {
	for _, p := range Build().Graphs() {
		for _, axis := range p.Yaxes {
			if axis.Min != nil && axis.Max != nil && *axis.Min > *axis.Max {
				t.Fatalf("panel %q: min %v above max %v", p.Title, *axis.Min, *axis.Max)
			}
		}
	}
}

var legendVarRe = regexp.MustCompile(`\{\{\s*([^}\s]+)\s*\}\}`)

func TestLegendLabelsPreserved(t *testing.T) {
	for _, p := range Build().Graphs() {
		for _, target := range p.Targets {
			if target.Grouping == nil {
				t.Fatalf("panel %q: target misses grouping info", p.Title)
			}
			for _, m := range legendVarRe.FindAllStringSubmatch(target.LegendFormat, -1) {
				found := false
				for _, l := range target.Grouping {
					if l == m[1] {
						found = true
					}
				}
				if !found {
					t.Fatalf("panel %q: legend label %q not in grouping %v",
						p.Title, m[1], target.Grouping)
				}
			}
		}
	}
}

func TestCommitmentJoinParity(t *testing.T) {
	poolJoin := "* on (node) group_left(" + NodepoolLabel + ")"

	for _, metrics := range [][2]string{
		{requestsMemory, allocatableMemory},
		{requestsCPU, allocatableCPU},
	} {
		num, den := poolCommitment(metrics[0], metrics[1]).Terms()
		if num == nil || den == nil {
			t.Fatal("pool commitment is not a ratio")
		}
		Assert([]string{NodepoolLabel}, num.Grouping(), t)
		Assert(num.Grouping(), den.Grouping(), t)
		// Both terms go through the same node to pool join.
		Assert(true, strings.Contains(num.String(), poolJoin), t)
		Assert(true, strings.Contains(den.String(), poolJoin), t)

		num, den = nodeCommitment(metrics[0], metrics[1]).Terms()
		Assert([]string{"node"}, num.Grouping(), t)
		Assert(num.Grouping(), den.Grouping(), t)
	}
}

func TestCommitmentExcludesPlaceholders(t *testing.T) {
	for _, p := range Build().Graphs() {
		if !strings.Contains(p.Title, "commitment") && !strings.Contains(p.Title, "Commit") {
			continue
		}
		expr := p.Targets[0].Expr
		Assert(true, strings.Contains(expr, PlaceholderComponent), t)
		Assert(true, strings.Contains(expr, `kube_pod_status_scheduled{condition="true"}`), t)
	}
}

func TestUtilizationNeverJoinsPods(t *testing.T) {
	for _, title := range []string{"Node CPU Utilization %", "Node Memory Utilization %"} {
		for _, p := range Build().Graphs() {
			if p.Title != title {
				continue
			}
			if strings.Contains(p.Targets[0].Expr, "kube_pod") {
				t.Fatalf("panel %q measures hardware usage, must not touch pod series", title)
			}
		}
	}
}

func TestRunningUsersQuery(t *testing.T) {
	e := runningUsers()
	Assert([]string{"namespace"}, e.Grouping(), t)
	// Presence per pod, not restart counts.
	Assert(true, strings.Contains(e.String(), `group(kube_pod_status_phase{phase="Running"}) by (pod)`), t)
	Assert(true, strings.Contains(e.String(), UserComponent), t)
}

func TestNodeCountQuery(t *testing.T) {
	e := nodeCount()
	Assert([]string{NodepoolLabel}, e.Grouping(), t)
	Assert(
		"count(group(kube_node_labels) by (node, "+NodepoolLabel+")) by ("+NodepoolLabel+")",
		e.String(),
		t,
	)
}

func TestNonRunningPodsQuery(t *testing.T) {
	e := nonRunningPods()
	Assert(`sum(kube_pod_status_phase{phase!="Running"}) by (phase)`, e.String(), t)
}

func TestBuildIdempotent(t *testing.T) {
	first := Build()
	second := Build()
	Assert(first, second, t)

	firstJSON, err := first.JSON()
	if err != nil {
		t.Fatal(err)
	}
	secondJSON, err := second.JSON()
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(firstJSON, secondJSON) {
		t.Fatal("two builds serialized differently")
	}
}

func TestStableUID(t *testing.T) {
	b := Build()
	if b.UID == "" {
		t.Fatal("board UID not set")
	}
	Assert(b.UID, Build().UID, t)
	Assert("cluster-diagnostics", b.Slug, t)
}

func TestDatasourceRef(t *testing.T) {
	for _, p := range Build().Graphs() {
		Assert(datasourceRef, p.Datasource, t)
	}
}
