// Copyright 2025 The gwtrig Authors
// Use of this source code is governed by the BSD 3-clause
// license that can be found in the LICENSE file.

package batch

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWriteWorkspace(t *testing.T) {
	dir, err := ioutil.TempDir("", "batch")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)

	dag := NewDAG("wscan")
	if err := dag.AddJob(Job{
		Name:       "scan-000",
		GPSTime:    1187008882.43,
		FrameCache: "caches/scan-000.lcf",
		OutDir:     "scan-000",
		Retry:      2,
	}); err != nil {
		t.Fatal(err)
	}
	if err := dag.AddJob(Job{Name: "summary", GPSTime: 1187010000}); err != nil {
		t.Fatal(err)
	}
	if err := dag.AddDependency("scan-000", "summary"); err != nil {
		t.Fatal(err)
	}

	profile := DefaultProfile()
	profile.AccountingGroup = "ligo.prod.o4.detchar"

	dagPath, err := WriteWorkspace(dir, profile, dag)
	if err != nil {
		t.Fatal(err)
	}
	if dagPath != filepath.Join(dir, "wscan.dag") {
		t.Errorf("dag path %q", dagPath)
	}
	if _, err := os.Stat(filepath.Join(dir, "logs")); err != nil {
		t.Error("logs directory missing:", err)
	}

	sub, err := ioutil.ReadFile(filepath.Join(dir, "wscan.sub"))
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{
		"universe = vanilla",
		"executable = wdq",
		"accounting_group = ligo.prod.o4.detchar",
		"request_memory = 2048MB",
		"--gps-time $(gpstime)",
		"queue",
	} {
		if !strings.Contains(string(sub), want) {
			t.Errorf("submit description missing %q:\n%s", want, sub)
		}
	}

	dagBytes, err := ioutil.ReadFile(dagPath)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{
		"JOB scan-000 wscan.sub",
		`VARS scan-000 gpstime="1187008882.4300"`,
		`framecache="caches/scan-000.lcf"`,
		"RETRY scan-000 2",
		"JOB summary wscan.sub",
		"PARENT scan-000 CHILD summary",
	} {
		if !strings.Contains(string(dagBytes), want) {
			t.Errorf("dag file missing %q:\n%s", want, dagBytes)
		}
	}
	if strings.Contains(string(dagBytes), "RETRY summary") {
		t.Error("zero-retry job must not emit a RETRY line")
	}
}

func TestWriteWorkspaceNoAccountingGroup(t *testing.T) {
	dir, err := ioutil.TempDir("", "batch")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)

	dag := NewDAG("wscan")
	if err := dag.AddJob(Job{Name: "scan-000"}); err != nil {
		t.Fatal(err)
	}
	if _, err := WriteWorkspace(dir, DefaultProfile(), dag); err != nil {
		t.Fatal(err)
	}
	sub, err := ioutil.ReadFile(filepath.Join(dir, "wscan.sub"))
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(sub), "accounting_group") {
		t.Error("empty accounting group must not emit a line")
	}
}
