package utils

import (
	"strings"
	"testing"
)

func TestSlugEncode(t *testing.T) {
	if got := SlugEncode("Cluster Diagnostics", 63); got != "cluster-diagnostics" {
		t.Fatalf("got %q", got)
	}
	if got := SlugEncode("Node CPU Utilization %", 63); got != "node-cpu-utilization--" {
		t.Fatalf("got %q", got)
	}
}

func TestSlugEncodeLimited(t *testing.T) {
	long := strings.Repeat("title-", 20)
	got := SlugEncode(long, 63)
	if len(got) > 63 {
		t.Fatalf("slug too long: %v chars", len(got))
	}
	other := SlugEncode(long+"x", 63)
	if got == other {
		t.Fatal("distinct titles must keep distinct slugs")
	}
}
