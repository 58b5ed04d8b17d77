// perlesion scores a single prediction/truth segmentation pair on a
// per-lesion basis: for every truth lesion it reports the lesion's centroid
// and its overlap metrics against the union of intersecting predicted
// lesions, alongside the whole-pair detection rates.
package main

import (
	"flag"
	"log"
	"os"
	"strings"
	"time"
)

func main() {
	start := time.Now()
	log.Println("perlesion start")
	defer func() {
		log.Printf("perlesion end. Took %.2f seconds\n", time.Since(start).Seconds())
	}()

	var predFile, truthFile, outFile string
	var iouThreshold float64

	flag.StringVar(&predFile, "pred", "", "Path to the prediction image.")
	flag.StringVar(&truthFile, "truth", "", "Path to the corresponding truth image.")
	flag.StringVar(&outFile, "out-file", "", "Path to the output CSV file of per-lesion results.")
	flag.Float64Var(&iouThreshold, "iou-threshold", 0.0, "IoU threshold for lesion detection (in LTPR and LFDR). Must be in [0,1).")
	flag.Parse()

	if predFile == "" || truthFile == "" || outFile == "" || !strings.HasSuffix(outFile, ".csv") {
		log.Println("-pred, -truth, and a .csv -out-file are required")
		flag.PrintDefaults()
		os.Exit(1)
	}

	if err := run(predFile, truthFile, outFile, iouThreshold); err != nil {
		log.Fatalln(err)
	}
}
