// Package render paints a classified schedule grid as a PNG for the
// console's week view. It only maps states to colors and labels; it never
// re-derives any classification.
package render

import (
	"bytes"
	"fmt"
	"image/color"

	"github.com/fogleman/gg"
	"github.com/lessonwise/schedule-console/internal/model"
	"github.com/lessonwise/schedule-console/internal/schedule"
	"golang.org/x/image/font/basicfont"
)

// Canvas geometry.
const (
	imageWidth      = 1400
	imageHeight     = 900
	headerHeight    = 80
	leftLabelsWidth = 80
	legendWidth     = 180
	dayPaddingX     = 6
	cellPaddingY    = 1.0
	cellRadius      = 4.0
)

// Color scheme: one fill per slot state plus chrome.
var (
	bgColor        = color.RGBA{245, 246, 248, 255}
	headerColor    = color.RGBA{80, 85, 90, 220}
	gridLineColor  = color.NRGBA{150, 150, 150, 255}
	hourLabelColor = color.RGBA{110, 115, 120, 200}
	legendColor    = color.RGBA{70, 74, 78, 220}

	stateColors = map[model.SlotState]color.RGBA{
		model.SlotStateUnavailable:       {220, 220, 220, 200},
		model.SlotStateFlexibleAvailable: {133, 193, 85, 220},
		model.SlotStateRegularAvailable:  {85, 170, 193, 220},
		model.SlotStateClosedAbsence:     {158, 158, 158, 255},
		model.SlotStateRegularMatched:    {250, 208, 120, 255},
		model.SlotStateRegularBooked:     {255, 182, 193, 255},
		model.SlotStateReopenedFlexible:  {200, 230, 160, 220},
	}
)

// WeekImage renders one teacher row of an anchor-mode grid: one column per
// day, one cell per 30-minute slot. Failed days are crossed out.
func WeekImage(row schedule.Row) ([]byte, error) {
	if len(row.Days) == 0 {
		return nil, fmt.Errorf("render week image: row has no days")
	}

	dc := gg.NewContext(imageWidth, imageHeight)
	dc.SetColor(bgColor)
	dc.Clear()
	dc.SetFontFace(basicfont.Face7x13)

	slotsPerDay := maxSlots(row.Days)
	if slotsPerDay == 0 {
		return nil, fmt.Errorf("render week image: no slots to draw")
	}

	dayWidth := float64(imageWidth-leftLabelsWidth-legendWidth) / float64(len(row.Days))
	cellHeight := float64(imageHeight-headerHeight) / float64(slotsPerDay)

	drawHeader(dc, row, dayWidth)
	drawHourLabels(dc, row.Days[0], cellHeight)
	for i, day := range row.Days {
		x := float64(leftLabelsWidth) + float64(i)*dayWidth
		drawDay(dc, day, x, dayWidth, cellHeight)
	}
	drawLegend(dc)

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode week image: %w", err)
	}
	return buf.Bytes(), nil
}

func maxSlots(days []schedule.Day) int {
	n := 0
	for _, d := range days {
		if len(d.Slots) > n {
			n = len(d.Slots)
		}
	}
	return n
}

func drawHeader(dc *gg.Context, row schedule.Row, dayWidth float64) {
	dc.SetColor(headerColor)
	dc.DrawStringAnchored(fmt.Sprintf("Teacher %d", row.TeacherID), float64(leftLabelsWidth)/2+10, 20, 0, 0.5)

	for i, day := range row.Days {
		x := float64(leftLabelsWidth) + float64(i)*dayWidth + dayWidth/2
		label := fmt.Sprintf("%s %s", WeekdayShort(day.Date.Weekday()), day.Date.Format("01-02"))
		dc.DrawStringAnchored(label, x, float64(headerHeight)/2, 0.5, 0.5)
	}
}

func drawHourLabels(dc *gg.Context, day schedule.Day, cellHeight float64) {
	dc.SetColor(hourLabelColor)
	for i, cell := range day.Slots {
		if cell.Slot.Start.Minute() != 0 {
			continue
		}
		y := float64(headerHeight) + float64(i)*cellHeight
		dc.DrawStringAnchored(cell.Slot.Start.Format("15:04"), float64(leftLabelsWidth)-8, y+cellHeight/2, 1, 0.5)

		dc.SetColor(gridLineColor)
		dc.DrawLine(float64(leftLabelsWidth), y, float64(imageWidth-legendWidth), y)
		dc.SetLineWidth(0.5)
		dc.Stroke()
		dc.SetColor(hourLabelColor)
	}
}

func drawDay(dc *gg.Context, day schedule.Day, x, dayWidth, cellHeight float64) {
	if day.Failed {
		dc.SetColor(gridLineColor)
		dc.DrawLine(x+dayPaddingX, float64(headerHeight), x+dayWidth-dayPaddingX, float64(imageHeight))
		dc.DrawLine(x+dayPaddingX, float64(imageHeight), x+dayWidth-dayPaddingX, float64(headerHeight))
		dc.SetLineWidth(1)
		dc.Stroke()
		return
	}

	for i, cell := range day.Slots {
		y := float64(headerHeight) + float64(i)*cellHeight
		fill, ok := stateColors[cell.Classification.State]
		if !ok {
			fill = stateColors[model.SlotStateUnavailable]
		}
		dc.SetColor(fill)
		dc.DrawRoundedRectangle(x+dayPaddingX, y+cellPaddingY, dayWidth-2*dayPaddingX, cellHeight-2*cellPaddingY, cellRadius)
		dc.Fill()

		if ctx := cell.Classification.Context; ctx != nil && ctx.StudentName != "" {
			dc.SetColor(legendColor)
			dc.DrawStringAnchored(ctx.StudentName, x+dayWidth/2, y+cellHeight/2, 0.5, 0.5)
		}
	}
}

func drawLegend(dc *gg.Context) {
	x := float64(imageWidth - legendWidth + 16)
	y := float64(headerHeight)

	states := []model.SlotState{
		model.SlotStateFlexibleAvailable,
		model.SlotStateRegularAvailable,
		model.SlotStateRegularMatched,
		model.SlotStateRegularBooked,
		model.SlotStateReopenedFlexible,
		model.SlotStateClosedAbsence,
		model.SlotStateUnavailable,
	}
	for _, state := range states {
		dc.SetColor(stateColors[state])
		dc.DrawRoundedRectangle(x, y, 14, 14, 3)
		dc.Fill()
		dc.SetColor(legendColor)
		dc.DrawStringAnchored(StateLabel(state), x+22, y+7, 0, 0.5)
		y += 24
	}
}
