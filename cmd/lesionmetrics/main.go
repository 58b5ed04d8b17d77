// lesionmetrics scores a batch of predicted binary lesion segmentations
// against their ground truth, writing one row of voxel- and lesion-level
// metrics per pair plus summary-statistic rows to a CSV file.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/jcreinhold/lesion-metrics/report"
	"github.com/jcreinhold/lesion-metrics/volume"
)

func main() {
	start := time.Now()
	log.Println("lesionmetrics start")
	defer func() {
		log.Printf("lesionmetrics end. Took %.2f seconds\n", time.Since(start).Seconds())
	}()

	var predDir, truthDir, inFile, outFile, unit string
	var iouThreshold float64
	var correlation bool
	var verbosity int

	flag.StringVar(&predDir, "pred-dir", "", "Path to directory of prediction images. Provide with -truth-dir, or use -in-file instead.")
	flag.StringVar(&truthDir, "truth-dir", "", "Path to directory of corresponding truth images.")
	flag.StringVar(&inFile, "in-file", "", "Path to a CSV manifest with `pred` and `truth` columns of image paths. Alternative to -pred-dir/-truth-dir.")
	flag.StringVar(&outFile, "out-file", "", "Path to the output CSV file of results.")
	flag.Float64Var(&iouThreshold, "iou-threshold", 0.0, "IoU threshold for lesion detection (in LTPR and LFDR). Must be in [0,1).")
	flag.BoolVar(&correlation, "correlation", false, "Also output the volume and lesion-count correlations across the set of images.")
	flag.StringVar(&unit, "unit", string(volume.Microliter), "Unit for reported volumes: microliter, milliliter, or liter.")
	flag.IntVar(&verbosity, "v", 0, "Verbosity: 1 logs each pair's metrics as it is computed.")
	flag.Parse()

	if outFile == "" || !strings.HasSuffix(outFile, ".csv") {
		log.Println("-out-file is required and must end in .csv")
		flag.PrintDefaults()
		os.Exit(1)
	}
	useDirs := predDir != "" && truthDir != ""
	useManifest := inFile != ""
	if useDirs == useManifest {
		log.Println("Provide either (-pred-dir AND -truth-dir) or -in-file, not both")
		flag.PrintDefaults()
		os.Exit(1)
	}

	pairs, err := gatherPairs(predDir, truthDir, inFile)
	if err != nil {
		log.Fatalln(err)
	}
	if correlation && len(pairs) < 2 {
		log.Fatalln(fmt.Errorf("-correlation requires more than 1 image pair, got %d", len(pairs)))
	}

	opts := report.Options{IoUThreshold: iouThreshold, Unit: volume.Unit(unit)}
	if err := run(pairs, opts, correlation, verbosity, outFile); err != nil {
		log.Fatalln(err)
	}
}
