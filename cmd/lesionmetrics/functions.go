package main

import (
	"fmt"
	"log"
	"os"

	"github.com/jcreinhold/lesion-metrics/imgio"
	"github.com/jcreinhold/lesion-metrics/metrics"
	"github.com/jcreinhold/lesion-metrics/report"
	"github.com/jcreinhold/lesion-metrics/summarize"
)

type pairPaths struct {
	Pred, Truth string
}

// gatherPairs lists prediction/truth image pairs either from two sorted
// directories or from a manifest CSV. The counts must be equal and nonzero.
func gatherPairs(predDir, truthDir, inFile string) ([]pairPaths, error) {
	var out []pairPaths
	if inFile != "" {
		rows, err := report.ReadManifest(inFile)
		if err != nil {
			return nil, err
		}
		for _, row := range rows {
			out = append(out, pairPaths{Pred: row.Pred, Truth: row.Truth})
		}
	} else {
		preds, err := imgio.GlobImages(predDir, "")
		if err != nil {
			return nil, err
		}
		truths, err := imgio.GlobImages(truthDir, "")
		if err != nil {
			return nil, err
		}
		if len(preds) != len(truths) {
			return nil, fmt.Errorf("number of prediction and truth images must be equal (# Pred.=%d; # Truth=%d)", len(preds), len(truths))
		}
		for i := range preds {
			out = append(out, pairPaths{Pred: preds[i], Truth: truths[i]})
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no image pairs found")
	}
	return out, nil
}

// run evaluates every pair, appends the summary rows and optional
// correlation columns, and writes the CSV.
func run(pairs []pairPaths, opts report.Options, correlation bool, verbosity int, outFile string) error {
	rows := make([]*report.Pair, 0, len(pairs))
	for _, pp := range pairs {
		pred, err := imgio.Load(pp.Pred)
		if err != nil {
			return err
		}
		truth, err := imgio.Load(pp.Truth)
		if err != nil {
			return err
		}
		row, err := report.Evaluate(pred, truth, opts)
		if err != nil {
			return fmt.Errorf("scoring %s against %s: %w", pp.Pred, pp.Truth, err)
		}
		if verbosity > 0 {
			log.Printf("Pred: %s; Truth: %s; Dice: %.2f; Jacc: %.2f; PPV: %.2f; TPR: %.2f; LFDR: %.2f; LTPR: %.2f; AVD: %.2f; ISBI15: %.2f\n",
				row.Pred, row.Truth, row.Dice.Value(), row.Jaccard.Value(), row.PPV.Value(),
				row.TPR.Value(), row.LFDR.Value(), row.LTPR.Value(), row.AVD.Value(), row.ISBI15.Value())
		}
		rows = append(rows, &row)
	}

	rows = append(rows, summaryRows(rows)...)

	f, err := os.Create(outFile)
	if err != nil {
		return err
	}
	defer f.Close()

	if !correlation {
		return report.WriteCSV(f, rows)
	}

	withCorr := make([]*report.PairWithCorrelation, 0, len(rows))
	for _, row := range rows {
		withCorr = append(withCorr, &report.PairWithCorrelation{Pair: *row})
	}
	volCorr, countCorr, err := correlations(rows[:len(pairs)])
	if err != nil {
		return err
	}
	withCorr[0].VolCorrelation = report.NewCell(volCorr)
	withCorr[0].CountCorrelation = report.NewCell(countCorr)
	log.Printf("Volume correlation: %.2f; Count correlation: %.2f\n", volCorr.Value(), countCorr.Value())
	return report.WriteCSV(f, withCorr)
}

// summaryRows builds the Avg/Std/Min/25%/50%/75%/Max rows across the
// per-pair rows. The labels ride in the Truth column, as in the original
// report layout.
func summaryRows(rows []*report.Pair) []*report.Pair {
	columns := make(map[string][]metrics.Result)
	collect := func(name string, cell report.Cell) {
		columns[name] = append(columns[name], cell.Result)
	}
	for _, row := range rows {
		collect("dice", row.Dice)
		collect("jaccard", row.Jaccard)
		collect("ppv", row.PPV)
		collect("tpr", row.TPR)
		collect("lfdr", row.LFDR)
		collect("ltpr", row.LTPR)
		collect("avd", row.AVD)
		collect("isbi15", row.ISBI15)
		collect("predvol", row.PredVolume)
		collect("truthvol", row.TruthVolume)
		collect("predcount", row.PredCount)
		collect("truthcount", row.TruthCount)
	}
	summaries := make(map[string][]metrics.Result)
	for name, col := range columns {
		summaries[name] = summarize.Statistics(col).Rows()
	}
	out := make([]*report.Pair, len(summarize.Labels))
	for i, label := range summarize.Labels {
		out[i] = &report.Pair{
			Truth:       label,
			Dice:        report.NewCell(summaries["dice"][i]),
			Jaccard:     report.NewCell(summaries["jaccard"][i]),
			PPV:         report.NewCell(summaries["ppv"][i]),
			TPR:         report.NewCell(summaries["tpr"][i]),
			LFDR:        report.NewCell(summaries["lfdr"][i]),
			LTPR:        report.NewCell(summaries["ltpr"][i]),
			AVD:         report.NewCell(summaries["avd"][i]),
			ISBI15:      report.NewCell(summaries["isbi15"][i]),
			PredVolume:  report.NewCell(summaries["predvol"][i]),
			TruthVolume: report.NewCell(summaries["truthvol"][i]),
			PredCount:   report.NewCell(summaries["predcount"][i]),
			TruthCount:  report.NewCell(summaries["truthcount"][i]),
		}
	}
	return out
}

// correlations computes the Pearson correlation of predicted vs. true
// volumes and lesion counts across the batch.
func correlations(rows []*report.Pair) (volCorr, countCorr metrics.Result, err error) {
	predVols := make([]float64, 0, len(rows))
	truthVols := make([]float64, 0, len(rows))
	predCounts := make([]float64, 0, len(rows))
	truthCounts := make([]float64, 0, len(rows))
	for _, row := range rows {
		predVols = append(predVols, row.PredVolume.Value())
		truthVols = append(truthVols, row.TruthVolume.Value())
		predCounts = append(predCounts, row.PredCount.Value())
		truthCounts = append(truthCounts, row.TruthCount.Value())
	}
	if volCorr, err = metrics.Corr(predVols, truthVols); err != nil {
		return
	}
	countCorr, err = metrics.Corr(predCounts, truthCounts)
	return
}
