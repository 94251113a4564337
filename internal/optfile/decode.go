package optfile

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"

	"github.com/vk/sparkpipego/internal/config"
)

// decodePipelineAttrs decodes the optional pipeline attributes left over by
// the structural pass, converting each through cty so numbers, bools and
// triples are type-checked at load time.
func decodePipelineAttrs(body hcl.Body, opts *config.Options) error {
	attrs, diags := body.JustAttributes()
	if diags.HasErrors() {
		return fmt.Errorf("reading pipeline attributes: %w", diags)
	}

	for name, attr := range attrs {
		val, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return fmt.Errorf("attribute %s: %w", name, diags)
		}

		var err error
		switch name {
		case "pipe_file":
			err = decodeAs(val, cty.String, &opts.PipeFile)
		case "nb_resamplings":
			err = decodeAs(val, cty.Number, &opts.NbResamplings)
		case "network_scales":
			opts.NetworkScales, err = decodeTriple(val)
		case "nb_iterations":
			err = decodeAs(val, cty.Number, &opts.NbIterations)
		case "p_value":
			err = decodeAs(val, cty.Number, &opts.PValue)
		case "resampling_method":
			err = decodeAs(val, cty.String, &opts.ResamplingMethod)
		case "block_window_length":
			opts.BlockWindowLength, err = decodeTriple(val)
		case "dict_init_method":
			err = decodeAs(val, cty.String, &opts.DictInitMethod)
		case "sparse_coding_method":
			err = decodeAs(val, cty.String, &opts.SparseCodingMethod)
		case "preserve_dc_atom":
			err = decodeAs(val, cty.Bool, &opts.PreserveDCAtom)
		case "verbose":
			err = decodeAs(val, cty.Bool, &opts.Verbose)
		case "rerun_setup":
			err = decodeAs(val, cty.Bool, &opts.Rerun.Setup)
		case "rerun_run":
			err = decodeAs(val, cty.Bool, &opts.Rerun.Run)
		case "rerun_wrapup":
			err = decodeAs(val, cty.Bool, &opts.Rerun.Wrapup)
		default:
			return fmt.Errorf("unsupported pipeline attribute %q", name)
		}
		if err != nil {
			return fmt.Errorf("attribute %s: %w", name, err)
		}
	}
	return nil
}

// decodeAs converts a cty value to the wanted cty type and binds it onto the
// given Go pointer.
func decodeAs(val cty.Value, want cty.Type, target any) error {
	converted, err := convert.Convert(val, want)
	if err != nil {
		return err
	}
	return gocty.FromCtyValue(converted, target)
}

// decodeTriple converts a value like [begin, step, end] into a config.Triple.
func decodeTriple(val cty.Value) (config.Triple, error) {
	converted, err := convert.Convert(val, cty.List(cty.Number))
	if err != nil {
		return config.Triple{}, err
	}
	var elems []int
	if err := gocty.FromCtyValue(converted, &elems); err != nil {
		return config.Triple{}, err
	}
	if len(elems) != 3 {
		return config.Triple{}, fmt.Errorf("expected [begin, step, end], got %d elements", len(elems))
	}
	return config.Triple{Begin: elems[0], Step: elems[1], End: elems[2]}, nil
}
