package dashboard

import (
	kapi_v1 "k8s.io/api/core/v1"

	"github.com/kuberlab/board/pkg/promql"
)

// Upstream label contract. The expressions silently evaluate to empty
// vectors if any of these change on the exporter side.
const (
	NodepoolLabel        = "label_cloud_google_com_gke_nodepool"
	ComponentLabel       = "label_component"
	UserComponent        = "singleuser-server"
	PlaceholderComponent = "user-placeholder"
)

// kube-state-metrics series.
const (
	podStatusPhase     = "kube_pod_status_phase"
	podStatusScheduled = "kube_pod_status_scheduled"
	podLabels          = "kube_pod_labels"
	nodeLabels         = "kube_node_labels"
	requestsMemory     = "kube_pod_container_resource_requests_memory_bytes"
	requestsCPU        = "kube_pod_container_resource_requests_cpu_cores"
	allocatableMemory  = "kube_node_status_allocatable_memory_bytes"
	allocatableCPU     = "kube_node_status_allocatable_cpu_cores"
)

// node-exporter series.
const (
	nodeCPUSeconds = "node_cpu_seconds_total"
	nodeMemFree    = "node_memory_MemFree_bytes"
	nodeMemCached  = "node_memory_Cached_bytes"
	nodeMemBuffers = "node_memory_Buffers_bytes"
	nodeMemTotal   = "node_memory_MemTotal_bytes"
)

const rateWindow = "5m"

// nodesByPool maps node to nodepool. Restarted exporters leave stale
// kube_node_labels series behind, so nodes are collapsed into one
// presence indicator per (node, pool) pair first.
func nodesByPool() promql.Expr {
	return promql.Group(promql.Vector(nodeLabels), "node", NodepoolLabel)
}

func nodeCount() promql.Expr {
	return promql.Count(nodesByPool(), NodepoolLabel)
}

// runningUsers counts running user session pods per namespace. The
// phase series is collapsed per pod so container restarts do not count
// a user twice, then joined against the session component label.
func runningUsers() promql.Expr {
	running := promql.Group(
		promql.Vector(podStatusPhase, promql.Eq("phase", string(kapi_v1.PodRunning))),
		"pod",
	)
	users := promql.Group(
		promql.Vector(podLabels, promql.Eq(ComponentLabel, UserComponent)),
		"namespace", "pod",
	)
	return promql.Sum(promql.Mul(running, users, []string{"pod"}, "namespace"), "namespace")
}

func nonRunningPods() promql.Expr {
	return promql.Sum(
		promql.Vector(podStatusPhase, promql.NotEq("phase", string(kapi_v1.PodRunning))),
		"phase",
	)
}

// committedPods marks pods that actually hold capacity: scheduled on a
// node and not a placeholder reserving room for future scale-up.
func committedPods() promql.Expr {
	scheduled := promql.Vector(podStatusScheduled, promql.Eq("condition", "true"))
	placeholder := promql.Vector(podLabels, promql.Eq(ComponentLabel, PlaceholderComponent))
	return promql.Group(promql.Unless(scheduled, placeholder, "pod"), "pod")
}

// poolCommitment is requested-vs-allocatable per nodepool. Both terms
// join through the same node to pool mapping before re-grouping by
// pool, so the ratio keys always line up.
func poolCommitment(requestMetric, allocMetric string) promql.Expr {
	requests := promql.Mul(
		promql.Vector(requestMetric, promql.NotEq("node", "")),
		committedPods(),
		[]string{"pod"},
	)
	num := promql.Sum(
		promql.Mul(requests, nodesByPool(), []string{"node"}, NodepoolLabel),
		NodepoolLabel,
	)
	den := promql.Sum(
		promql.Mul(promql.Vector(allocMetric), nodesByPool(), []string{"node"}, NodepoolLabel),
		NodepoolLabel,
	)
	return promql.Div(num, den)
}

// nodeCommitment is the same ratio scoped to single nodes, no pool join.
func nodeCommitment(requestMetric, allocMetric string) promql.Expr {
	requests := promql.Mul(
		promql.Vector(requestMetric, promql.NotEq("node", "")),
		committedPods(),
		[]string{"pod"},
	)
	return promql.Div(
		promql.Sum(requests, "node"),
		promql.Sum(promql.Vector(allocMetric), "node"),
	)
}

// nodeCPUUtilization is measured hardware usage, never joined against
// pod data. Commitment and utilization answer different questions.
// FIXME: not the best metric, iowait and steal count as busy here.
func nodeCPUUtilization() promql.Expr {
	used := promql.Sum(
		promql.Rate(promql.Vector(nodeCPUSeconds, promql.NotEq("mode", "idle")), rateWindow),
		"node",
	)
	return promql.Div(used, promql.Sum(promql.Vector(allocatableCPU), "node"))
}

// nodeMemoryUtilization treats cached and buffered pages as free.
// FIXME: not the best metric, modern kernels expose MemAvailable.
func nodeMemoryUtilization() promql.Expr {
	free := promql.Plus(
		promql.Plus(promql.Vector(nodeMemFree), promql.Vector(nodeMemCached)),
		promql.Vector(nodeMemBuffers),
	)
	return promql.OneMinus(promql.Div(
		promql.Sum(free, "node"),
		promql.Sum(promql.Vector(nodeMemTotal), "node"),
	))
}
