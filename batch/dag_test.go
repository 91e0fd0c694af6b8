// Copyright 2025 The gwtrig Authors
// Use of this source code is governed by the BSD 3-clause
// license that can be found in the LICENSE file.

package batch

import (
	"testing"
)

func TestAddJob(t *testing.T) {
	dag := NewDAG("wscan")
	if err := dag.AddJob(Job{Name: "scan-000"}); err != nil {
		t.Fatal(err)
	}
	if err := dag.AddJob(Job{Name: "scan-000"}); err == nil {
		t.Error("want error for duplicate job name")
	}
	if err := dag.AddJob(Job{}); err == nil {
		t.Error("want error for empty job name")
	}
	if n := len(dag.Jobs()); n != 1 {
		t.Errorf("got %d jobs, want 1", n)
	}
}

func TestAddDependency(t *testing.T) {
	dag := NewDAG("wscan")
	for _, name := range []string{"a", "b", "c"} {
		if err := dag.AddJob(Job{Name: name}); err != nil {
			t.Fatal(err)
		}
	}

	if err := dag.AddDependency("a", "b"); err != nil {
		t.Fatal(err)
	}
	if err := dag.AddDependency("b", "c"); err != nil {
		t.Fatal(err)
	}
	if err := dag.AddDependency("a", "nonesuch"); err == nil {
		t.Error("want error for unknown child")
	}
	if err := dag.AddDependency("nonesuch", "a"); err == nil {
		t.Error("want error for unknown parent")
	}

	if err := dag.AddDependency("c", "a"); err == nil {
		t.Fatal("want error for a dependency cycle")
	}
	// The rejected edge must not survive.
	if children := dag.Children("c"); len(children) != 0 {
		t.Errorf("rejected edge left children %v", children)
	}

	edges := dag.Edges()
	if len(edges) != 2 {
		t.Fatalf("got %d edges, want 2", len(edges))
	}
	if edges[0] != [2]string{"a", "b"} || edges[1] != [2]string{"b", "c"} {
		t.Errorf("unexpected edges %v", edges)
	}
}

func TestSelfDependency(t *testing.T) {
	dag := NewDAG("wscan")
	if err := dag.AddJob(Job{Name: "a"}); err != nil {
		t.Fatal(err)
	}
	if err := dag.AddDependency("a", "a"); err == nil {
		t.Error("want error for a self dependency")
	}
}
