package medication

import (
	"strconv"
	"strings"
)

// Format renders a medication as "<drug name>: <dosage text>"
func Format(m Medication) string {
	return m.DrugName + ": " + FormatDosage(m.Dosage)
}

// FormatDosage renders the dosage part of a medication line.
// A nil dosage renders as the empty string.
func FormatDosage(d Dosage) string {
	if d == nil {
		return ""
	}
	var f dosageFormatter
	d.Accept(&f)
	return f.text
}

// FormatSpeed renders an infusion rate as the shortest decimal that
// round-trips, never in exponent form: 1.5 -> "1.5", 2 -> "2".
func FormatSpeed(speed float64) string {
	return strconv.FormatFloat(speed, 'f', -1, 64)
}

type dosageFormatter struct {
	text string
}

func (f *dosageFormatter) VisitTablet(t Tablet) {
	f.text = strings.Join([]string{
		strconv.Itoa(t.Morning),
		strconv.Itoa(t.Midday),
		strconv.Itoa(t.Evening),
	}, "-")
}

func (f *dosageFormatter) VisitInfusion(i Infusion) {
	f.text = FormatSpeed(i.Speed) + " ml/min for " + strconv.Itoa(i.Duration) + "h"
}
