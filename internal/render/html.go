// Package render turns assembled report inputs into scorecard artifacts:
// an HTML card per restaurant, an optional PNG capture of it, and a ZIP
// bundling the lot.
package render

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/bitesnbags/scorecard-cli/internal/model"
)

var dayNames = [7]string{"SUN", "MON", "TUES", "WED", "THUR", "FRI", "SAT"}

const (
	colorGreen = "#28a745"
	colorAmber = "#ff9800"
	colorRed   = "#dc3545"

	maxBarHeight = 260
	minBarHeight = 30
)

type barView struct {
	Count  int
	Height int
	Color  template.CSS
}

type dayCell struct {
	Label  string
	Posted bool
}

type cardView struct {
	Name       string
	Month      string
	Year       int
	WeekNum    int
	Bars       []barView
	Days       []dayCell
	Instagram  bool
	Facebook   bool
	Google     bool
	Score      int
	ScoreColor template.CSS
}

// Card renders the scorecard HTML for one restaurant. It is a pure
// function of the report input.
func Card(in model.ReportInput) ([]byte, error) {
	var buf bytes.Buffer
	if err := cardTmpl.Execute(&buf, newCardView(in)); err != nil {
		return nil, eris.Wrapf(err, "render: card for %q", in.Record.DisplayName)
	}
	return buf.Bytes(), nil
}

func newCardView(in model.ReportInput) cardView {
	maxOrders := 1
	for _, c := range in.Daily {
		if c > maxOrders {
			maxOrders = c
		}
	}

	v := cardView{
		Name:       strings.ToUpper(in.Record.DisplayName),
		Month:      in.Month,
		Year:       in.Year,
		WeekNum:    in.WeekNum,
		Instagram:  in.Record.Instagram.Bool(),
		Facebook:   in.Record.Facebook.Bool(),
		Google:     in.Record.Google.Bool(),
		Score:      in.Record.Score,
		ScoreColor: template.CSS(scoreColor(in.Record.Score)),
	}

	for i, count := range in.Daily {
		posted := in.Record.Stories[i].Bool()
		bar := barView{Count: count, Color: template.CSS(colorRed)}
		if posted {
			bar.Color = template.CSS(colorGreen)
		}
		if count > 0 {
			bar.Height = count * maxBarHeight / maxOrders
			if bar.Height < minBarHeight {
				bar.Height = minBarHeight
			}
		}
		v.Bars = append(v.Bars, bar)
		v.Days = append(v.Days, dayCell{Label: dayNames[i], Posted: posted})
	}

	return v
}

// scoreColor bands the overall score: green from 70, amber from 50, red
// below.
func scoreColor(score int) string {
	switch {
	case score >= 70:
		return colorGreen
	case score >= 50:
		return colorAmber
	default:
		return colorRed
	}
}

// ArchiveName is the bundle filename for a reporting window.
func ArchiveName(month string, weekNum int) string {
	return fmt.Sprintf("scorecards_%s_week%d.zip", month, weekNum)
}

var cardTmpl = template.Must(template.New("card").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<style>
* { margin:0; padding:0; box-sizing:border-box; font-family: Arial, Helvetica, sans-serif; }
body { background: transparent; display:flex; justify-content:center; align-items:center; min-height:100vh; }
.card { width:1000px; height:1200px; padding:50px 60px; background:#fff; display:flex; flex-direction:column; justify-content:space-between; }
.header { display:flex; justify-content:space-between; align-items:center; margin-bottom:20px; }
.header h2 { font-size:38px; font-weight:900; line-height:1.2; color:#111; }
.header h2 span { font-weight:500; font-size:28px; color:#333; }
.logo { background:#dc3545; color:#fff; font-weight:900; font-size:24px; padding:8px 16px; border-radius:6px; }
.rest-title { font-size:26px; font-weight:800; margin:10px 0 0; color:#111; text-transform:uppercase; letter-spacing:0.5px; }
.chart-section { flex:1; display:flex; flex-direction:column; justify-content:flex-end; margin:50px 0; }
.chart-title { text-align:center; font-weight:900; font-size:26px; margin-bottom:40px; color:#111; }
.chart { display:flex; align-items:flex-end; justify-content:space-around; min-height:250px; border-bottom:2px solid #eaeaea; padding:0 20px; }
.bar-col { display:flex; flex-direction:column; align-items:center; width:80px; justify-content:flex-end; }
.bar { width:70px; border-radius:6px 6px 0 0; }
.bar-val { font-size:24px; font-weight:700; margin-bottom:10px; color:#111; }
.table-container { margin-top:20px; border:2px solid #222; }
.section-hdr { background:#fff; color:#111; text-align:center; font-weight:800; font-size:22px; padding:18px 0; border-bottom:2px solid #222; }
table { width:100%; border-collapse:collapse; table-layout:fixed; }
table td { text-align:center; padding:18px 10px; font-size:22px; border-right:2px solid #222; border-bottom:2px solid #222; color:#111; }
table td:last-child { border-right:none; }
table.no-bottom-border tr:last-child td { border-bottom:none; }
.day-hdr td { font-weight:600; font-size:18px; text-transform:uppercase; padding:16px 10px; }
.check { color:#28a745; font-size:36px; font-weight:700; }
.cross { color:#dc3545; font-size:36px; font-weight:700; }
.score-val { font-size:42px; font-weight:900; color:{{.ScoreColor}}; letter-spacing:-1px; line-height:1; }
</style>
</head>
<body>
<div class="card" id="scorecard">
  <div>
    <div class="header">
      <h2>Social Media Presence:<br><span>Score Card</span></h2>
      <div class="logo">biteME</div>
    </div>
    <div class="rest-title">{{.Name}}: {{.Month}} {{.Year}} &ndash; Week {{.WeekNum}}</div>
  </div>

  <div class="chart-section">
    <div class="chart-title">Daily Orders (Excluding biteME)</div>
    <div class="chart">
    {{- range .Bars}}
      <div class="bar-col">
        {{- if gt .Count 0}}
        <span class="bar-val">{{.Count}}</span>
        <div class="bar" style="height:{{.Height}}px;background:{{.Color}};"></div>
        {{- end}}
      </div>
    {{- end}}
    </div>
  </div>

  <div class="table-container">
    <div class="section-hdr">Ordering Link Added in Story?</div>
    <table>
      <tr class="day-hdr">{{range .Days}}<td>{{.Label}}</td>{{end}}</tr>
      <tr>{{range .Days}}<td>{{if .Posted}}<span class="check">&#10003;</span>{{else}}<span class="cross">&#10007;</span>{{end}}</td>{{end}}</tr>
    </table>

    <div class="section-hdr" style="border-top:none;">Permanent Link Added to ?</div>
    <table class="no-bottom-border">
      <tr class="day-hdr">
        <td>Instagram</td><td>Facebook</td><td>Google</td>
        <td style="font-size:16px;">Overall Score</td>
      </tr>
      <tr>
        <td>{{if .Instagram}}<span class="check">&#10003;</span>{{else}}<span class="cross">&#10007;</span>{{end}}</td>
        <td>{{if .Facebook}}<span class="check">&#10003;</span>{{else}}<span class="cross">&#10007;</span>{{end}}</td>
        <td>{{if .Google}}<span class="check">&#10003;</span>{{else}}<span class="cross">&#10007;</span>{{end}}</td>
        <td><span class="score-val">{{.Score}}%</span></td>
      </tr>
    </table>
  </div>
</div>
</body>
</html>`))
