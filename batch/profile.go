// Copyright 2025 The gwtrig Authors
// Use of this source code is governed by the BSD 3-clause
// license that can be found in the LICENSE file.

package batch

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Profile carries the scheduler-facing description of the scan executable.
// Loaded from a TOML file; zero fields keep their defaults.
type Profile struct {
	Executable      string `toml:"executable"`
	Universe        string `toml:"universe"`
	AccountingGroup string `toml:"accounting_group"`
	RequestCpus     int    `toml:"request_cpus"`
	RequestMemoryMB int    `toml:"request_memory_mb"`
	RequestDiskMB   int    `toml:"request_disk_mb"`
	Retries         int    `toml:"retries"`
}

func DefaultProfile() Profile {
	return Profile{
		Executable:      "wdq",
		Universe:        "vanilla",
		RequestCpus:     1,
		RequestMemoryMB: 2048,
		RequestDiskMB:   1024,
		Retries:         1,
	}
}

// LoadProfile reads a profile file over the defaults.  An empty path returns
// the defaults untouched.
func LoadProfile(path string) (Profile, error) {
	p := DefaultProfile()
	if path == "" {
		return p, nil
	}
	meta, err := toml.DecodeFile(path, &p)
	if err != nil {
		return p, fmt.Errorf("job profile %s: %v", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return p, fmt.Errorf("job profile %s: unknown key %s", path, undecoded[0])
	}
	if p.Executable == "" {
		return p, fmt.Errorf("job profile %s: executable must not be empty", path)
	}
	return p, nil
}
