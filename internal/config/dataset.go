package config

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

// Dataset identifies one independent input recording: a BIDS-named fMRI file
// plus the subject/session/run identifiers derived from its name. One Dataset
// is the unit of pipeline fan-out.
type Dataset struct {
	Name    string `yaml:"name"`
	Subject string `yaml:"subject"`
	Session string `yaml:"session"`
	Run     string `yaml:"run"`
	Fmri    string `yaml:"fmri"`
}

// Defaults used when the BIDS filename omits the session or run entity.
const (
	defaultSession = "ses_cspark_1"
	defaultRun     = "run_cspark_1"
)

var nonWord = regexp.MustCompile(`\W+`)

// DatasetFromPath derives a Dataset from a BIDS-named fMRI file path. The
// filename must start with a `sub-X_` token; session and run tokens are
// optional and fall back to fixed defaults. The dataset name is the filename
// with its final suffix entity stripped, and is later used to name outputs
// (for example `kmap_sub-01_task-rest_bold.mat`).
func DatasetFromPath(fmri string) (Dataset, error) {
	filename := filepath.Base(fmri)
	tokens := strings.Split(filename, "_")
	if len(tokens) < 2 || !strings.HasPrefix(tokens[0], "sub-") {
		return Dataset{}, fmt.Errorf("invalid BIDS file, the filename does not start with 'sub-X_': %s", filename)
	}

	subject := nonWord.ReplaceAllString(tokens[0], "_")

	session := defaultSession
	if strings.HasPrefix(tokens[1], "ses-") {
		session = nonWord.ReplaceAllString(tokens[1], "_")
	}

	run := defaultRun
	if len(tokens) >= 2 && strings.HasPrefix(tokens[len(tokens)-2], "run-") {
		run = nonWord.ReplaceAllString(tokens[len(tokens)-2], "_")
	}

	// Strip the extension from the trailing suffix entity (e.g. "bold.nii"
	// keeps "bold"), matching how the backend names its outputs.
	last := tokens[len(tokens)-1]
	name := filename
	if dot := strings.Index(last, "."); dot >= 0 {
		name = filename[:len(filename)-(len(last)-dot)]
	}

	return Dataset{
		Name:    name,
		Subject: subject,
		Session: session,
		Run:     run,
		Fmri:    fmri,
	}, nil
}
