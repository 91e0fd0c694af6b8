// Copyright 2025 The gwtrig Authors
// Use of this source code is governed by the BSD 3-clause
// license that can be found in the LICENSE file.

package batch

import (
	"fmt"
	"os"
	"path/filepath"
	"text/template"
)

var submitTemplate = template.Must(template.New("submit").Parse(`universe = {{.Universe}}
executable = {{.Executable}}
arguments = "--gps-time $(gpstime) --frame-cache $(framecache) --output-dir $(outdir)"
{{if .AccountingGroup -}}
accounting_group = {{.AccountingGroup}}
{{end -}}
request_cpus = {{.RequestCpus}}
request_memory = {{.RequestMemoryMB}}MB
request_disk = {{.RequestDiskMB}}MB
log = logs/$(cluster)-$(process).log
error = logs/$(cluster)-$(process).err
output = logs/$(cluster)-$(process).out
getenv = True
queue
`))

var dagTemplate = template.Must(template.New("dag").Parse(`# {{.Workflow}} {{.ID}}
{{range .Jobs -}}
JOB {{.Name}} {{$.SubmitFile}}
VARS {{.Name}} gpstime="{{printf "%.4f" .GPSTime}}" framecache="{{.FrameCache}}" outdir="{{.OutDir}}"
{{if gt .Retry 0 -}}
RETRY {{.Name}} {{.Retry}}
{{end -}}
{{end -}}
{{range .Edges -}}
PARENT {{index . 0}} CHILD {{index . 1}}
{{end -}}
`))

// WriteWorkspace lays out a DAG submission directory: the shared submit
// description, the DAG file, and a logs directory.  It returns the path of
// the DAG file.
func WriteWorkspace(dir string, profile Profile, dag *DAG) (string, error) {
	if err := os.MkdirAll(filepath.Join(dir, "logs"), 0755); err != nil {
		return "", err
	}

	submitFile := dag.Workflow + ".sub"
	sub, err := os.Create(filepath.Join(dir, submitFile))
	if err != nil {
		return "", err
	}
	if err := submitTemplate.Execute(sub, profile); err != nil {
		sub.Close()
		return "", fmt.Errorf("writing submit description: %v", err)
	}
	if err := sub.Close(); err != nil {
		return "", err
	}

	dagPath := filepath.Join(dir, dag.Workflow+".dag")
	f, err := os.Create(dagPath)
	if err != nil {
		return "", err
	}
	err = dagTemplate.Execute(f, struct {
		Workflow   string
		ID         string
		SubmitFile string
		Jobs       []Job
		Edges      [][2]string
	}{
		Workflow:   dag.Workflow,
		ID:         dag.ID.String(),
		SubmitFile: submitFile,
		Jobs:       dag.Jobs(),
		Edges:      dag.Edges(),
	})
	if err != nil {
		f.Close()
		return "", fmt.Errorf("writing dag file: %v", err)
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	return dagPath, nil
}
