// Command fluxinfo prints cross-method vertical flux estimates for a
// streambed sensor pair.
//
// Usage:
//
//	fluxinfo [flags]
//
// By default it inverts the harmonic features given on the command line
// (amplitudes, measured phase lag, depth separation) with every method
// and prints a comparison table.
//
// Examples:
//
//	fluxinfo -ashallow 3.0 -adeep 2.0 -lag 0.4828 -dz 0.10
//	fluxinfo -methods hatch-amplitude,hatch-phase -lag 0.4828
//	fluxinfo -synthetic -flux 5 -depths 0.1,0.2,0.3 -days 3
package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/cwbudde/algo-vflux/dsp/harmonic"
	"github.com/cwbudde/algo-vflux/dsp/signal"
	"github.com/cwbudde/algo-vflux/measure/flux"
)

func main() {
	lambda := flag.Float64("lambda", 2.0, "thermal conductivity in W/(m*K)")
	cs := flag.Float64("cs", 2.5e6, "sediment volumetric heat capacity in J/(m^3*K)")
	cw := flag.Float64("cw", 4.18e6, "water volumetric heat capacity in J/(m^3*K)")
	alpha := flag.Float64("alpha", 0, "thermal diffusivity in m^2/s (0 derives lambda/cs)")
	beta := flag.Float64("beta", 0, "Keery dispersivity in 1/m (0 derives from omega)")
	period := flag.Float64("period", harmonic.DiurnalPeriod, "fundamental period in seconds")
	methodList := flag.String("methods", "", "comma-separated method subset (default: all)")

	aShallow := flag.Float64("ashallow", 3.0, "shallow sensor amplitude in degC")
	aDeep := flag.Float64("adeep", 2.0, "deep sensor amplitude in degC")
	lag := flag.Float64("lag", 0.4828, "measured phase lag deep minus shallow in radians")
	dz := flag.Float64("dz", 0.10, "sensor depth separation in m")

	synthetic := flag.Bool("synthetic", false, "run the full pipeline on a synthetic profile instead")
	fluxMMDay := flag.Float64("flux", 5.0, "synthetic downward flux in mm/day")
	depthList := flag.String("depths", "0.1,0.2,0.3", "synthetic sensor depths in m, comma-separated")
	days := flag.Int("days", 3, "synthetic record length in days")
	interval := flag.Float64("interval", 900, "synthetic sampling interval in seconds")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: fluxinfo [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Prints vertical water flux estimates from streambed temperature harmonics.\n\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	props := flux.ThermalProperties{
		Conductivity:    *lambda,
		SedimentHeatCap: *cs,
		WaterHeatCap:    *cw,
		Diffusivity:     *alpha,
		Dispersivity:    *beta,
	}
	if err := props.Validate(); err != nil {
		fatal(err)
	}

	methods, err := parseMethods(*methodList)
	if err != nil {
		fatal(err)
	}

	omega := 2 * math.Pi / *period

	if *synthetic {
		runSynthetic(props, methods, omega, *period, *fluxMMDay, *depthList, *days, *interval)
		return
	}

	shallow := harmonic.Features{Amplitude: *aShallow, Phase: 0}
	deep := harmonic.Features{Amplitude: *aDeep, Phase: harmonic.WrapPhase(*lag)}

	d, err := flux.Difference(shallow, deep, 0, *dz, props.Alpha(), omega)
	if err != nil {
		fatal(err)
	}

	fmt.Printf("dz %.3f m   dA %.4f   dPhi %.4f rad (conductive %.4f, advective %.4f)\n\n",
		d.DeltaZ, d.LogAmpRatio, d.PhaseLagTotal, d.PhaseLagConductive, d.PhaseLagAdvective)

	printEstimates(flux.InvertAll(methods, d, &props, omega))
}

func runSynthetic(props flux.ThermalProperties, methods []flux.Method, omega, period, fluxMMDay float64, depthList string, days int, interval float64) {
	depths, err := parseDepths(depthList)
	if err != nil {
		fatal(err)
	}

	model := &signal.StreambedModel{
		SurfaceAmplitude: 3.0,
		SurfaceMean:      20.0,
		Velocity:         fluxMMDay / flux.MMPerDay,
		Diffusivity:      props.Alpha(),
		Conductivity:     props.Conductivity,
		WaterHeatCap:     props.WaterHeatCap,
		Omega:            omega,
	}

	sampleRate := 1 / interval
	samples := int(float64(days) * period / interval)

	sensors := make([]flux.Sensor, len(depths))
	for i, z := range depths {
		temps, err := model.SeriesAt(z, sampleRate, samples)
		if err != nil {
			fatal(err)
		}
		sensors[i] = flux.Sensor{Depth: z, Temps: temps}
	}

	analyzer, err := flux.NewAnalyzer(flux.Config{
		Props:      props,
		SampleRate: sampleRate,
		Period:     period,
		Methods:    methods,
	})
	if err != nil {
		fatal(err)
	}

	table, err := analyzer.Run(sensors)
	if err != nil {
		fatal(err)
	}

	fmt.Printf("synthetic profile: %.2f mm/day, %d sensors, %d samples at %.0f s\n\n",
		fluxMMDay, len(sensors), samples, interval)

	for i, f := range table.Features {
		if table.SensorErrs[i] != nil {
			fmt.Printf("sensor %d (%.2f m): %v\n", i, sensors[i].Depth, table.SensorErrs[i])
			continue
		}
		fmt.Printf("sensor %d (%.2f m): amplitude %.4f degC, phase %.4f rad, mean %.2f degC\n",
			i, sensors[i].Depth, f.Amplitude, f.Phase, f.Mean)
	}

	for _, pair := range table.Pairs {
		fmt.Printf("\npair %s\n", pair.Key)

		if pair.Err != nil {
			fmt.Printf("  %v\n", pair.Err)
			continue
		}

		printEstimates(pair.Estimates)
		fmt.Printf("valid methods: %d   undefined: %d   low confidence: %d   mean %.2f mm/day   stddev %.2f   cv %.3f\n",
			pair.Stats.Count, pair.Undefined, pair.LowConfidence, pair.Stats.Mean, pair.Stats.StdDev, pair.Stats.CV)
	}
}

func printEstimates(estimates []flux.Estimate) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "METHOD\tVELOCITY (M/S)\tFLUX (MM/DAY)\tVALID\tNOTE")

	for _, e := range estimates {
		note := e.Reason
		if e.Method == flux.McCallum && !e.Valid {
			note = fmt.Sprintf("%s (radicand %.4g)", e.Reason, e.Radicand)
		}
		if e.LowConfidence {
			if note != "" {
				note += "; "
			}
			note += "low confidence"
		}

		fmt.Fprintf(w, "%s\t%.4g\t%.4f\t%v\t%s\n", e.Method, e.Velocity, e.MMDay, e.Valid, note)
	}

	w.Flush()
}

func parseMethods(list string) ([]flux.Method, error) {
	if list == "" {
		return nil, nil
	}

	var methods []flux.Method
	for _, name := range strings.Split(list, ",") {
		m, err := flux.ParseMethod(strings.TrimSpace(name))
		if err != nil {
			return nil, err
		}
		methods = append(methods, m)
	}

	return methods, nil
}

func parseDepths(list string) ([]float64, error) {
	parts := strings.Split(list, ",")
	if len(parts) < 2 {
		return nil, fmt.Errorf("fluxinfo: at least two depths are required: %q", list)
	}

	depths := make([]float64, len(parts))
	for i, p := range parts {
		z, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("fluxinfo: bad depth %q: %w", p, err)
		}
		depths[i] = z
	}

	return depths, nil
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
