package dashboard

import (
	"github.com/pborman/uuid"

	"github.com/kuberlab/board/pkg/grafana"
	"github.com/kuberlab/board/pkg/promql"
	"github.com/kuberlab/board/pkg/utils"
)

const (
	Title = "Cluster Diagnostics"

	// DatasourceVar is the single template variable of the board.
	DatasourceVar = "PROMETHEUS_DS"

	datasourceRef = "${PROMETHEUS_DS}"

	boardNamespace = "https://kuberlab.io/boards/"
)

var Tags = []string{"kubernetes", "jupyterhub", "capacity"}

// Build assembles the whole document. It takes no input, cannot fail
// and returns the same value on every call.
func Build() *grafana.Board {
	b := grafana.NewBoard(Title)
	b.UID = uuid.NewMD5(uuid.NameSpace_URL, []byte(boardNamespace+Title)).String()
	b.Slug = utils.SlugEncode(Title, 63)
	b.Tags = Tags
	b.Templating.List = []grafana.TemplateVar{{
		Name:  DatasourceVar,
		Type:  "datasource",
		Query: "prometheus",
	}}

	b.AddRow("Cluster Stats")
	b.Add(runningUsersPanel())
	b.Add(commitmentPanel("Memory commitment %",
		"Percentage of memory on each nodepool guaranteed to pods via requests",
		poolCommitment(requestsMemory, allocatableMemory), NodepoolLabel))
	b.Add(commitmentPanel("CPU commitment %",
		"Percentage of CPU on each nodepool guaranteed to pods via requests",
		poolCommitment(requestsCPU, allocatableCPU), NodepoolLabel))
	b.Add(nodeCountPanel())
	b.Add(nonRunningPodsPanel())

	b.AddRow("Node Stats")
	b.Add(commitmentPanel("Node CPU Utilization %",
		"Percentage of CPU time each node actually spends on work",
		nodeCPUUtilization(), "node"))
	b.Add(commitmentPanel("Node Memory Utilization %",
		"Percentage of memory each node actually uses, cache and buffers count as free",
		nodeMemoryUtilization(), "node"))
	b.Add(commitmentPanel("Node CPU Commit %",
		"Percentage of each node's CPU guaranteed to pods via requests",
		nodeCommitment(requestsCPU, allocatableCPU), "node"))
	b.Add(commitmentPanel("Node Memory Commit %",
		"Percentage of each node's memory guaranteed to pods via requests",
		nodeCommitment(requestsMemory, allocatableMemory), "node"))

	b.Layout()
	return b
}

func target(e promql.Expr, legend string) grafana.Target {
	return grafana.Target{
		RefID:        "A",
		Expr:         e.String(),
		LegendFormat: legend,
		Grouping:     e.Grouping(),
	}
}

func runningUsersPanel() *grafana.Panel {
	return &grafana.Panel{
		Type:        grafana.PanelGraph,
		Title:       "Running Users",
		Description: "Count of currently running user sessions, grouped by namespace",
		Datasource:  datasourceRef,
		Lines:       true,
		Stack:       true,
		Fill:        3,
		Legend:      grafana.Legend{Show: true, Current: true},
		Yaxes:       grafana.Axes(grafana.UnitShort, utils.Float64Ptr(0), nil),
		Targets:     []grafana.Target{target(runningUsers(), "{{namespace}}")},
	}
}

// commitmentPanel renders a 0-1 ratio. The bounds are advisory: the
// value legitimately passes 1 while nodes are cordoned or draining.
func commitmentPanel(title, description string, e promql.Expr, label string) *grafana.Panel {
	return &grafana.Panel{
		Type:        grafana.PanelGraph,
		Title:       title,
		Description: description,
		Datasource:  datasourceRef,
		Lines:       true,
		Decimals:    utils.IntPtr(2),
		Legend:      grafana.Legend{Show: true, Current: true},
		Yaxes:       grafana.Axes(grafana.UnitPercentUnit, utils.Float64Ptr(0), utils.Float64Ptr(1)),
		Targets:     []grafana.Target{target(e, "{{"+label+"}}")},
	}
}

func nodeCountPanel() *grafana.Panel {
	return &grafana.Panel{
		Type:        grafana.PanelGraph,
		Title:       "Node Count",
		Description: "Number of nodes in each nodepool",
		Datasource:  datasourceRef,
		Lines:       true,
		Legend:      grafana.Legend{Show: true, Current: true},
		Yaxes:       grafana.Axes(grafana.UnitShort, utils.Float64Ptr(0), nil),
		Targets:     []grafana.Target{target(nodeCount(), "{{"+NodepoolLabel+"}}")},
	}
}

func nonRunningPodsPanel() *grafana.Panel {
	return &grafana.Panel{
		Type:        grafana.PanelGraph,
		Title:       "Non Running Pods",
		Description: "Pods stuck in a non-running phase: pending, terminating, evicted",
		Datasource:  datasourceRef,
		Lines:       true,
		Stack:       true,
		Fill:        3,
		Legend:      grafana.Legend{Show: true, Current: true},
		Yaxes:       grafana.Axes(grafana.UnitShort, utils.Float64Ptr(0), nil),
		Targets:     []grafana.Target{target(nonRunningPods(), "{{phase}}")},
	}
}
