// Copyright 2025 The gwtrig Authors
// Use of this source code is governed by the BSD 3-clause
// license that can be found in the LICENSE file.

// Package batch builds the batch-job graph handed to the cluster scheduler:
// one scan job per selected trigger, plus an optional summary job that runs
// after every scan.
package batch

import (
	"fmt"

	"github.com/google/uuid"
)

// Job is one node of the graph.
type Job struct {
	Name       string
	GPSTime    float64
	FrameCache string
	OutDir     string
	Retry      int
}

// DAG is a set of jobs with parent -> child dependency edges.
type DAG struct {
	Workflow string
	ID       uuid.UUID

	jobs     []Job
	index    map[string]int
	children map[string][]string
}

func NewDAG(workflow string) *DAG {
	return &DAG{
		Workflow: workflow,
		ID:       uuid.New(),
		index:    make(map[string]int),
		children: make(map[string][]string),
	}
}

func (d *DAG) AddJob(job Job) error {
	if job.Name == "" {
		return fmt.Errorf("job with empty name")
	}
	if _, ok := d.index[job.Name]; ok {
		return fmt.Errorf("duplicate job name %q", job.Name)
	}
	d.index[job.Name] = len(d.jobs)
	d.jobs = append(d.jobs, job)
	return nil
}

func (d *DAG) AddDependency(parent, child string) error {
	if _, ok := d.index[parent]; !ok {
		return fmt.Errorf("unknown parent job %q", parent)
	}
	if _, ok := d.index[child]; !ok {
		return fmt.Errorf("unknown child job %q", child)
	}
	d.children[parent] = append(d.children[parent], child)
	if d.reaches(child, parent) {
		d.children[parent] = d.children[parent][:len(d.children[parent])-1]
		return fmt.Errorf("dependency %s -> %s creates a cycle", parent, child)
	}
	return nil
}

func (d *DAG) reaches(from, to string) bool {
	if from == to {
		return true
	}
	for _, c := range d.children[from] {
		if d.reaches(c, to) {
			return true
		}
	}
	return false
}

// Jobs returns nodes in insertion order.
func (d *DAG) Jobs() []Job {
	return d.jobs
}

// Children returns the dependents of a job, in insertion order.
func (d *DAG) Children(parent string) []string {
	return d.children[parent]
}

// Edges returns all parent -> child pairs, parents in insertion order.
func (d *DAG) Edges() [][2]string {
	var edges [][2]string
	for _, job := range d.jobs {
		for _, c := range d.children[job.Name] {
			edges = append(edges, [2]string{job.Name, c})
		}
	}
	return edges
}
