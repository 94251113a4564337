package optfile

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/vk/sparkpipego/internal/config"
	"github.com/vk/sparkpipego/internal/ctxlog"
)

// fileSchema is the HCL-specific shape of an option file.
type fileSchema struct {
	Pipeline *pipelineSchema  `hcl:"pipeline,block"`
	Datasets []*datasetSchema `hcl:"dataset,block"`
}

// pipelineSchema binds the two required attributes; everything else is
// optional and handled by the manual attribute decoder.
type pipelineSchema struct {
	OutDir string   `hcl:"out_dir"`
	Mask   string   `hcl:"mask"`
	Remain hcl.Body `hcl:",remain"`
}

type datasetSchema struct {
	Name string `hcl:"name,label"`
	Fmri string `hcl:"fmri"`
}

// Load parses one option file and returns the validated options plus the
// dataset descriptors it declares. Subject/session/run identifiers are
// derived from each dataset's BIDS filename. Any failure here is a
// configuration error and aborts the invocation.
func Load(ctx context.Context, path string) (config.Options, []config.Dataset, error) {
	logger := ctxlog.FromContext(ctx)

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return config.Options{}, nil, fmt.Errorf("parsing option file %s: %w", path, diags)
	}

	var schema fileSchema
	if diags := gohcl.DecodeBody(file.Body, nil, &schema); diags.HasErrors() {
		return config.Options{}, nil, fmt.Errorf("decoding option file %s: %w", path, diags)
	}
	if schema.Pipeline == nil {
		return config.Options{}, nil, fmt.Errorf("option file %s has no pipeline block", path)
	}

	opts := config.Default()
	opts.OutDir = schema.Pipeline.OutDir
	opts.Mask = schema.Pipeline.Mask
	if err := decodePipelineAttrs(schema.Pipeline.Remain, &opts); err != nil {
		return config.Options{}, nil, fmt.Errorf("option file %s: %w", path, err)
	}

	datasets := make([]config.Dataset, 0, len(schema.Datasets))
	for _, block := range schema.Datasets {
		ds, err := config.DatasetFromPath(block.Fmri)
		if err != nil {
			return config.Options{}, nil, fmt.Errorf("dataset %q: %w", block.Name, err)
		}
		if block.Name != "" {
			ds.Name = block.Name
		}
		datasets = append(datasets, ds)
	}
	if len(datasets) > 0 {
		// The first dataset doubles as the ambient one for callers that
		// build without an explicit list.
		opts.Dataset = datasets[0]
	}

	if err := opts.Validate(); err != nil {
		return config.Options{}, nil, fmt.Errorf("option file %s: %w", path, err)
	}

	logger.Debug("option file loaded.",
		"path", path, "datasets", len(datasets), "nb_resamplings", opts.NbResamplings)
	return opts, datasets, nil
}
