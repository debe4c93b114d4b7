package automation

import (
	"context"
	"fmt"
	"log"

	"github.com/san-kum/plexus/internal/config"
	"github.com/san-kum/plexus/internal/dynamo"
	"github.com/san-kum/plexus/internal/metrics"
)

// ParameterSweep replays one scenario across a range of values for a
// single field parameter.
type ParameterSweep struct {
	Scenario  Scenario
	ParamName string
	ParamMin  float64
	ParamMax  float64
	NumSteps  int
}

type SweepResult struct {
	ParamValue      float64
	MeanSpeed       float64
	MeanLinks       float64
	MeanConnections float64
}

// SetParam assigns a numeric field parameter by its YAML name.
func SetParam(f *config.Field, name string, v float64) error {
	switch name {
	case "count":
		f.Count = int(v)
	case "connection_distance":
		f.ConnectionDistance = v
	case "pointer_radius":
		f.PointerRadius = v
	case "pointer_force":
		f.PointerForce = v
	case "damping":
		f.Damping = v
	case "max_speed":
		f.MaxSpeed = v
	default:
		return fmt.Errorf("parameter %q: %w", name, dynamo.ErrParameterBounds)
	}
	return nil
}

func RunSweep(ctx context.Context, sweep *ParameterSweep) ([]SweepResult, error) {
	if sweep.NumSteps < 1 {
		return nil, fmt.Errorf("num_steps %d: %w", sweep.NumSteps, dynamo.ErrParameterBounds)
	}
	base, err := sweep.Scenario.FieldConfig()
	if err != nil {
		return nil, err
	}

	step := 0.0
	if sweep.NumSteps > 1 {
		step = (sweep.ParamMax - sweep.ParamMin) / float64(sweep.NumSteps-1)
	}

	results := make([]SweepResult, 0, sweep.NumSteps)
	for i := 0; i < sweep.NumSteps; i++ {
		v := sweep.ParamMin + float64(i)*step
		f := base
		if err := SetParam(&f, sweep.ParamName, v); err != nil {
			return nil, err
		}
		sc := sweep.Scenario
		sc.Field = &f

		res, err := Replay(ctx, &sc, Options{Quiet: true})
		if err != nil {
			return nil, fmt.Errorf("%s=%v: %w", sweep.ParamName, v, err)
		}
		results = append(results, SweepResult{
			ParamValue:      v,
			MeanSpeed:       metrics.Mean(res.Series["mean_speed"]),
			MeanLinks:       metrics.Mean(res.Series["links"]),
			MeanConnections: metrics.Mean(res.Series["connections"]),
		})
		log.Printf("[Sweep] %d/%d: %s=%.4f", i+1, sweep.NumSteps, sweep.ParamName, v)
	}
	return results, nil
}
