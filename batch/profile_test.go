// Copyright 2025 The gwtrig Authors
// Use of this source code is governed by the BSD 3-clause
// license that can be found in the LICENSE file.

package batch

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"
)

func writeProfile(t *testing.T, content string) string {
	t.Helper()
	dir, err := ioutil.TempDir("", "batch")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.RemoveAll(dir) })
	path := filepath.Join(dir, "profile.toml")
	if err := ioutil.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadProfileDefaults(t *testing.T) {
	p, err := LoadProfile("")
	if err != nil {
		t.Fatal(err)
	}
	if p != DefaultProfile() {
		t.Errorf("got %+v, want defaults", p)
	}
}

func TestLoadProfileOverrides(t *testing.T) {
	path := writeProfile(t, `
executable = "/usr/bin/wdq-batch"
request_memory_mb = 4096
retries = 3
`)
	p, err := LoadProfile(path)
	if err != nil {
		t.Fatal(err)
	}
	if p.Executable != "/usr/bin/wdq-batch" {
		t.Errorf("executable %q", p.Executable)
	}
	if p.RequestMemoryMB != 4096 || p.Retries != 3 {
		t.Errorf("got %+v", p)
	}
	// untouched fields keep their defaults
	if p.Universe != "vanilla" || p.RequestCpus != 1 {
		t.Errorf("defaults lost: %+v", p)
	}
}

func TestLoadProfileUnknownKey(t *testing.T) {
	path := writeProfile(t, `requset_cpus = 2`)
	if _, err := LoadProfile(path); err == nil {
		t.Error("want error for an unknown key")
	}
}

func TestLoadProfileEmptyExecutable(t *testing.T) {
	path := writeProfile(t, `executable = ""`)
	if _, err := LoadProfile(path); err == nil {
		t.Error("want error for an empty executable")
	}
}
