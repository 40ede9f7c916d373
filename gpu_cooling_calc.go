package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
)

/*
Transient run for one material: build the parameters, run the sequence to
steady state or the time limit, save the time history.

	Args:
		cfg: merged configuration
		output_data_dir: folder for the history CSV

	Returns:
		the run result
*/
func run(ctx context.Context, cfg Config, output_data_dir string, log *logrus.Logger) (*RunResult, error) {
	if _, err := os.Stat(output_data_dir); os.IsNotExist(err) {
		if err := os.Mkdir(output_data_dir, 0755); err != nil {
			return nil, fmt.Errorf("create output dir: %w", err)
		}
	}

	params, err := cfg.build_parameters()
	if err != nil {
		return nil, err
	}
	log.Infof("parameters: %s", params)

	seq, err := NewSequence(params, cfg.Run.Epsilon, cfg.Run.TMax, cfg.Run.RecordStride, log)
	if err != nil {
		return nil, err
	}

	result, run_err := seq.run(ctx)

	if result != nil {
		history_path := filepath.Join(output_data_dir, cfg.Run.Output)
		if err := seq.recorder.export_csv(history_path); err != nil {
			log.WithError(err).Error("history export failed")
		} else {
			log.Infof("history saved to `%s`", history_path)
		}
	}
	return result, run_err
}

// compare runs both materials with the same settings and reports the ratio
// of times to steady state. Diffusivity alone predicts a ratio around 17.
func compare(ctx context.Context, cfg Config, output_data_dir string, log *logrus.Logger) error {
	times := map[Material]float64{}
	for _, material := range []Material{MaterialAl, MaterialSS} {
		mc := cfg
		mc.Run.Material = string(material)
		mc.Run.Output = fmt.Sprintf("history_%s.csv", material)

		result, err := run(ctx, mc, output_data_dir, log)
		if err != nil {
			return fmt.Errorf("%s run: %w", material, err)
		}
		if result.state != CONVERGED {
			return fmt.Errorf("%s run ended %s at t = %.1f s, raise t_max to compare", material, result.state, result.time)
		}
		times[material] = result.time
		log.WithFields(logrus.Fields{
			"material":     material,
			"t_steady_s":   result.time,
			"steps":        result.n_steps,
			"t_plate_mean": plate_mean(result.final.t_plate),
		}).Info("material converged")
	}

	fmt.Printf("Al reaches steady state at %.1f s, SS at %.1f s (ratio %.1f)\n",
		times[MaterialAl], times[MaterialSS], times[MaterialSS]/times[MaterialAl])
	return nil
}

func main() {
	var config_path string
	flag.StringVar(&config_path, "config", "", "ini configuration file (optional)")

	var material string
	flag.StringVar(&material, "material", "", "plate material, Al or SS (overrides the config file)")

	var output_data_dir string
	flag.StringVar(&output_data_dir, "o", ".", "output folder")

	var t_max float64
	flag.Float64Var(&t_max, "t_max", 0, "simulated-time limit in seconds (overrides the config file)")

	var compare_materials bool
	flag.BoolVar(&compare_materials, "compare", false, "run both materials and report the steady-state time ratio")

	var log_level string
	flag.StringVar(&log_level, "log", "", "log level (overrides the config file)")

	flag.Parse()

	cfg := DefaultConfig()
	if config_path != "" {
		var err error
		cfg, err = load_config(config_path)
		if err != nil {
			logrus.Fatal(err)
		}
	}
	if material != "" {
		cfg.Run.Material = material
	}
	if t_max > 0 {
		cfg.Run.TMax = t_max
	}
	if log_level != "" {
		cfg.Run.LogLevel = log_level
	}

	log := logrus.New()
	level, err := logrus.ParseLevel(cfg.Run.LogLevel)
	if err != nil {
		logrus.Fatalf("bad log level `%s`: %v", cfg.Run.LogLevel, err)
	}
	log.SetLevel(level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	start := time.Now()

	if compare_materials {
		if err := compare(ctx, cfg, output_data_dir, log); err != nil {
			log.Fatal(err)
		}
	} else {
		result, err := run(ctx, cfg, output_data_dir, log)
		if err != nil {
			log.Fatal(err)
		}
		last := result.final
		fmt.Printf("run ended %s after %d steps (t = %.1f s), plate mean %.2f K, outlet %.2f K\n",
			result.state, result.n_steps, result.time,
			plate_mean(last.t_plate), last.t_fluid[len(last.t_fluid)-1])
	}

	log.Infof("elapsed_time: %v", time.Since(start))
}
