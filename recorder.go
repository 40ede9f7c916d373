package main

import (
	"fmt"
	"os"

	"github.com/gocarina/gocsv"
	"gonum.org/v1/gonum/floats"
)

// SnapshotRecord is one row of the time-history output.
type SnapshotRecord struct {
	Step        int     `csv:"step"`
	Time        float64 `csv:"time_s"`
	TFluidOut   float64 `csv:"t_fluid_out_K"`
	TFluidMean  float64 `csv:"t_fluid_mean_K"`
	TPlateMean  float64 `csv:"t_plate_mean_K"`
	TPlateMax   float64 `csv:"t_plate_max_K"`
	TFin0Mean   float64 `csv:"t_fin0_mean_K"`
	TFin1Mean   float64 `csv:"t_fin1_mean_K"`
	TFin2Mean   float64 `csv:"t_fin2_mean_K"`
	QIn         float64 `csv:"q_in_W"`
	QOut        float64 `csv:"q_out_W"`
	DEdt        float64 `csv:"de_dt_W"`
	Residual    float64 `csv:"energy_residual"`
	MaxRate     float64 `csv:"max_rate_K_per_s"`
	ContinuityK float64 `csv:"coupling_continuity_K"`
}

// Recorder accumulates one SnapshotRecord every `stride` plate steps plus
// the final step, whatever the run outcome.
type Recorder struct {
	stride  int
	records []*SnapshotRecord
}

func NewRecorder(stride int) *Recorder {
	if stride < 1 {
		stride = 1
	}
	return &Recorder{stride: stride}
}

// wants reports whether step n falls on the recording stride.
func (r *Recorder) wants(n int) bool {
	return n%r.stride == 0
}

func (r *Recorder) recording(n int, time float64, c *Conditions, eb EnergyBalance, max_rate, continuity float64) {
	rec := &SnapshotRecord{
		Step:        n,
		Time:        time,
		TFluidOut:   c.t_fluid[len(c.t_fluid)-1],
		TFluidMean:  mean_1d(c.t_fluid),
		TPlateMean:  plate_mean(c.t_plate),
		TPlateMax:   plate_max(c.t_plate),
		QIn:         eb.q_in,
		QOut:        eb.q_out,
		DEdt:        eb.de_dt,
		Residual:    eb.residual,
		MaxRate:     max_rate,
		ContinuityK: continuity,
	}
	fin_means := [3]*float64{&rec.TFin0Mean, &rec.TFin1Mean, &rec.TFin2Mean}
	for k, t_fin := range c.t_fins {
		if k < len(fin_means) {
			*fin_means[k] = fin_mean(t_fin)
		}
	}
	r.records = append(r.records, rec)
}

// last returns the most recent record, or nil before the first recording.
func (r *Recorder) last() *SnapshotRecord {
	if len(r.records) == 0 {
		return nil
	}
	return r.records[len(r.records)-1]
}

func (r *Recorder) export_csv(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	if err := gocsv.MarshalFile(&r.records, f); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func mean_1d(xs []float64) float64 {
	return floats.Sum(xs) / float64(len(xs))
}
