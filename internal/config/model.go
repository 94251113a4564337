package config

import (
	"errors"
	"fmt"
	"strings"
)

// Resampling methods understood by the compute backend.
const (
	ResamplingCBB  = "CBB"
	ResamplingAR1B = "AR1B"
	ResamplingAR1G = "AR1G"
)

// Dictionary initialization methods for the sparse dictionary learning step.
const (
	DictInitGivenMatrix  = "GivenMatrix"
	DictInitDataElements = "DataElements"
)

// Sparse coding methods for the sparse dictionary learning step.
const (
	SparseCodingOMP          = "OMP"
	SparseCodingThresholding = "Thresholding"
)

// Triple is a regularly-spaced integer vector given as [begin] [step] [end].
type Triple struct {
	Begin int `yaml:"begin"`
	Step  int `yaml:"step"`
	End   int `yaml:"end"`
}

func (t Triple) String() string {
	return fmt.Sprintf("%d %d %d", t.Begin, t.Step, t.End)
}

// RerunFlags marks stages whose jobs should be re-run even when earlier
// outputs exist.
type RerunFlags struct {
	Setup  bool `yaml:"setup"`
	Run    bool `yaml:"run"`
	Wrapup bool `yaml:"wrapup"`
}

// Options is the full, immutable set of global pipeline options. It mirrors
// the on-disk `.opt` option file consumed by the compute backend.
type Options struct {
	PipeFile string `yaml:"pipe_file"`
	OutDir   string `yaml:"out_dir"`
	Mask     string `yaml:"mask"`

	NbResamplings     int     `yaml:"nb_resamplings"`
	NetworkScales     Triple  `yaml:"network_scales"`
	NbIterations      int     `yaml:"nb_iterations"`
	PValue            float64 `yaml:"p_value"`
	ResamplingMethod  string  `yaml:"resampling_method"`
	BlockWindowLength Triple  `yaml:"block_window_length"`

	DictInitMethod     string `yaml:"dict_init_method"`
	SparseCodingMethod string `yaml:"sparse_coding_method"`
	PreserveDCAtom     bool   `yaml:"preserve_dc_atom"`

	Verbose bool       `yaml:"verbose"`
	Rerun   RerunFlags `yaml:"rerun"`

	// Dataset is the ambient single dataset, used when no explicit dataset
	// list is supplied to the builder.
	Dataset Dataset `yaml:"dataset"`
}

// Default returns an Options value carrying the documented defaults. Paths
// and the dataset are left empty; the loader fills them in.
func Default() Options {
	return Options{
		NbResamplings:      100,
		NetworkScales:      Triple{Begin: 10, Step: 2, End: 30},
		NbIterations:       20,
		PValue:             0.05,
		ResamplingMethod:   ResamplingCBB,
		BlockWindowLength:  Triple{Begin: 10, Step: 1, End: 30},
		DictInitMethod:     DictInitGivenMatrix,
		SparseCodingMethod: SparseCodingThresholding,
	}
}

// WithResamplings returns a copy of o with the resampling count replaced.
func (o Options) WithResamplings(n int) Options {
	o.NbResamplings = n
	return o
}

// WithVerbose returns a copy of o with the verbosity flag replaced.
func (o Options) WithVerbose(v bool) Options {
	o.Verbose = v
	return o
}

func validTriple(t Triple) error {
	if t.Begin < 1 || t.Step < 1 || t.End < 1 {
		return errors.New("one element: [begin] [step] [end], is smaller than 1")
	}
	if t.End < t.Begin {
		return errors.New("[begin] is greater than [end]")
	}
	return nil
}

// Validate checks the integrity of the options. A non-nil error is a
// configuration error and aborts the invocation.
func (o Options) Validate() error {
	if o.OutDir == "" {
		return errors.New("out_dir: required field is empty")
	}
	if o.Mask == "" {
		return errors.New("mask: required field is empty")
	}
	if !strings.HasSuffix(o.Mask, ".mnc") && !strings.HasSuffix(o.Mask, ".nii") {
		return fmt.Errorf("mask: file is not MINC (.mnc) or NIfTI (.nii): %s", o.Mask)
	}
	if o.NbResamplings < 2 {
		return fmt.Errorf("nb_resamplings: smaller than 2: %d", o.NbResamplings)
	}
	if err := validTriple(o.NetworkScales); err != nil {
		return fmt.Errorf("network_scales: %w", err)
	}
	if o.NbIterations < 2 {
		return fmt.Errorf("nb_iterations: smaller than 2: %d", o.NbIterations)
	}
	if o.PValue < 0 || o.PValue > 1 {
		return fmt.Errorf("p_value: not between 0 and 1: %g", o.PValue)
	}
	switch o.ResamplingMethod {
	case ResamplingCBB, ResamplingAR1B, ResamplingAR1G:
	default:
		return fmt.Errorf("resampling_method: unknown method: %q", o.ResamplingMethod)
	}
	if err := validTriple(o.BlockWindowLength); err != nil {
		return fmt.Errorf("block_window_length: %w", err)
	}
	switch o.DictInitMethod {
	case DictInitGivenMatrix, DictInitDataElements:
	default:
		return fmt.Errorf("dict_init_method: unknown method: %q", o.DictInitMethod)
	}
	switch o.SparseCodingMethod {
	case SparseCodingOMP, SparseCodingThresholding:
	default:
		return fmt.Errorf("sparse_coding_method: unknown method: %q", o.SparseCodingMethod)
	}
	return nil
}
