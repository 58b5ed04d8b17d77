package main

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/jcreinhold/lesion-metrics/imgio"
	"github.com/jcreinhold/lesion-metrics/lesion"
	"github.com/jcreinhold/lesion-metrics/mask"
	"github.com/jcreinhold/lesion-metrics/metrics"
	"github.com/jcreinhold/lesion-metrics/report"
	"github.com/jcreinhold/lesion-metrics/summarize"
	"github.com/jcreinhold/lesion-metrics/volume"
)

type lesionRow struct {
	Pred        string      `csv:"Pred"`
	Truth       string      `csv:"Truth"`
	Center      string      `csv:"Center"`
	Dice        report.Cell `csv:"Dice"`
	Jaccard     report.Cell `csv:"Jaccard"`
	PPV         report.Cell `csv:"PPV"`
	TPR         report.Cell `csv:"TPR"`
	AVD         report.Cell `csv:"AVD"`
	LFDR        report.Cell `csv:"LFDR"`
	LTPR        report.Cell `csv:"LTPR"`
	PredVolume  report.Cell `csv:"Pred. Vol."`
	TruthVolume report.Cell `csv:"Truth. Vol."`
	Shape       string      `csv:"Shape"`
}

func run(predFile, truthFile, outFile string, iouThreshold float64) error {
	pred, err := imgio.Load(predFile)
	if err != nil {
		return err
	}
	truth, err := imgio.Load(truthFile)
	if err != nil {
		return err
	}

	predSeg, err := volume.NewSegmentation(pred.Grid, pred.Spacing, volume.Microliter)
	if err != nil {
		return err
	}
	truthSeg, err := volume.NewSegmentation(truth.Grid, truth.Spacing, volume.Microliter)
	if err != nil {
		return err
	}

	p := pred.Grid.Squeeze()
	t := truth.Grid.Squeeze()

	lfdr, _, err := lesion.LFDR(p, t, iouThreshold)
	if err != nil {
		return err
	}
	ltpr, _, err := lesion.LTPR(p, t, iouThreshold)
	if err != nil {
		return err
	}

	truthCC, err := lesion.Components(t)
	if err != nil {
		return err
	}
	predCC, err := lesion.Components(p)
	if err != nil {
		return err
	}

	rows := make([]*lesionRow, 0, truthCC.N())
	for i := 1; i <= truthCC.N(); i++ {
		row, err := scoreLesion(truthCC, predCC, i)
		if err != nil {
			return err
		}
		rows = append(rows, row)
	}
	rows = append(rows, summaryRows(rows)...)

	if len(rows) > 0 {
		_, pfn, _ := imgio.SplitFilename(predFile)
		_, tfn, _ := imgio.SplitFilename(truthFile)
		first := rows[0]
		first.Pred = pfn
		first.Truth = tfn
		first.LFDR = report.NewCell(lfdr)
		first.LTPR = report.NewCell(ltpr)
		first.PredVolume = report.Float(predSeg.Volume())
		first.TruthVolume = report.Float(truthSeg.Volume())
		first.Shape = shapeString(t.Shape())
	}

	f, err := os.Create(outFile)
	if err != nil {
		return err
	}
	defer f.Close()
	return report.WriteCSV(f, rows)
}

// scoreLesion compares one truth lesion against the union of the predicted
// lesions intersecting it, cropped to their joint bounding box. A truth
// lesion nothing intersects scores zero across the board.
func scoreLesion(truthCC, predCC *lesion.LabelMap, id int) (*lesionRow, error) {
	indicator := truthCC.LesionMask(id)

	row := &lesionRow{Center: centroidString(indicator)}

	intersecting := intersectingLesions(indicator, predCC)
	if len(intersecting) == 0 {
		zero := report.Float(0)
		row.Dice, row.Jaccard, row.PPV, row.TPR, row.AVD = zero, zero, zero, zero, zero
		return row, nil
	}

	others := predCC.LesionMask(intersecting...)
	joint, err := indicator.Or(others)
	if err != nil {
		return nil, err
	}
	box, err := mask.BoundingBox(joint)
	if err != nil {
		return nil, err
	}
	target, err := indicator.Slice(box)
	if err != nil {
		return nil, err
	}
	other, err := others.Slice(box)
	if err != nil {
		return nil, err
	}

	if row.Dice, err = cellOf(metrics.Dice(other, target)); err != nil {
		return nil, err
	}
	if row.Jaccard, err = cellOf(metrics.Jaccard(other, target)); err != nil {
		return nil, err
	}
	if row.PPV, err = cellOf(metrics.PPV(other, target)); err != nil {
		return nil, err
	}
	if row.TPR, err = cellOf(metrics.TPR(other, target)); err != nil {
		return nil, err
	}
	if row.AVD, err = cellOf(metrics.AVD(other, target)); err != nil {
		return nil, err
	}
	return row, nil
}

// intersectingLesions lists the ids of predicted lesions overlapping the
// given truth-lesion indicator.
func intersectingLesions(indicator *mask.Dense, predCC *lesion.LabelMap) []int {
	seen := make(map[int]bool)
	for _, coords := range indicator.Nonzero() {
		if id := predCC.At(coords...); id != 0 {
			seen[id] = true
		}
	}
	ids := make([]int, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

func centroidString(indicator *mask.Dense) string {
	coords := indicator.Nonzero()
	if len(coords) == 0 {
		return ""
	}
	sums := make([]float64, len(coords[0]))
	for _, c := range coords {
		for ax, v := range c {
			sums[ax] += float64(v)
		}
	}
	parts := make([]string, len(sums))
	for ax := range sums {
		parts[ax] = fmt.Sprintf("%.2f", sums[ax]/float64(len(coords)))
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

func shapeString(shape []int) string {
	parts := make([]string, len(shape))
	for i, dim := range shape {
		parts[i] = fmt.Sprintf("%d", dim)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

func summaryRows(rows []*lesionRow) []*lesionRow {
	if len(rows) == 0 {
		return nil
	}
	columns := map[string][]metrics.Result{}
	for _, row := range rows {
		columns["dice"] = append(columns["dice"], row.Dice.Result)
		columns["jaccard"] = append(columns["jaccard"], row.Jaccard.Result)
		columns["ppv"] = append(columns["ppv"], row.PPV.Result)
		columns["tpr"] = append(columns["tpr"], row.TPR.Result)
		columns["avd"] = append(columns["avd"], row.AVD.Result)
	}
	summaries := make(map[string][]metrics.Result)
	for name, col := range columns {
		summaries[name] = summarize.Statistics(col).Rows()
	}
	out := make([]*lesionRow, len(summarize.Labels))
	for i, label := range summarize.Labels {
		out[i] = &lesionRow{
			Center:  label,
			Dice:    report.NewCell(summaries["dice"][i]),
			Jaccard: report.NewCell(summaries["jaccard"][i]),
			PPV:     report.NewCell(summaries["ppv"][i]),
			TPR:     report.NewCell(summaries["tpr"][i]),
			AVD:     report.NewCell(summaries["avd"][i]),
		}
	}
	return out
}

func cellOf(r metrics.Result, err error) (report.Cell, error) {
	if err != nil {
		return report.Cell{}, err
	}
	return report.NewCell(r), nil
}
