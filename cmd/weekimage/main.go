// Renders one teacher's classified week to a PNG, straight from the booking
// backend. Handy for eyeballing classification changes without the console.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/lessonwise/schedule-console/internal/app"
	"github.com/lessonwise/schedule-console/internal/booking"
	"github.com/lessonwise/schedule-console/internal/config"
	"github.com/lessonwise/schedule-console/internal/model"
	"github.com/lessonwise/schedule-console/internal/render"
	"github.com/lessonwise/schedule-console/internal/schedule"
)

func main() {
	teacherID := flag.Int64("teacher", 0, "teacher id to render")
	dateStr := flag.String("date", "", "anchor date YYYY-MM-DD (default: today)")
	outPath := flag.String("out", "week.png", "output file")
	flag.Parse()

	if *teacherID == 0 {
		log.Fatal("-teacher is required")
	}

	anchor := time.Now().UTC()
	if *dateStr != "" {
		parsed, err := time.ParseInLocation("2006-01-02", *dateStr, time.UTC)
		if err != nil {
			log.Fatalf("Invalid -date: %v", err)
		}
		anchor = parsed
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := app.NewLogger(cfg.Environment)
	defer logger.Sync()

	builder := schedule.NewGridBuilder(booking.NewClient(cfg.BookingAPIURL, logger), logger)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	grid, err := builder.Build(ctx, model.GridQuery{
		Mode:       model.GridModeAnchor,
		TeacherIDs: []int64{*teacherID},
		AnchorDate: anchor,
	})
	if err != nil {
		log.Fatalf("Failed to build grid: %v", err)
	}

	image, err := render.WeekImage(grid.Rows[0])
	if err != nil {
		log.Fatalf("Failed to render week image: %v", err)
	}

	if err := os.WriteFile(*outPath, image, 0o644); err != nil {
		log.Fatalf("Failed to write image: %v", err)
	}
	fmt.Printf("Wrote %s (%d bytes)\n", *outPath, len(image))
}
