package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	"IEats/internal/config"
	"IEats/internal/diary"
)

type restaurantsCmd struct{}

func (restaurantsCmd) Name() string { return "restaurants" }
func (restaurantsCmd) Description() string {
	return "Show restaurants aggregated from entries (optionally by tag)"
}
func (restaurantsCmd) Usage() string { return "restaurants [-sort rating|visits|name] [tag]" }

func (restaurantsCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("restaurants", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	sortBy := fs.String("sort", "", "rating|visits|name")
	if err := fs.Parse(args); err != nil {
		return ErrUsage
	}
	if fs.NArg() > 1 {
		return ErrUsage
	}
	order := diary.SortOrder(strings.ToLower(*sortBy))
	switch order {
	case "", diary.SortByRating, diary.SortByVisits, diary.SortByName:
	default:
		return ErrUsage
	}

	list, err := diaryService(cfg).Restaurants(ctx, fs.Arg(0), order)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Fprintln(Out, "No restaurants")
		return nil
	}
	for _, r := range list {
		fmt.Fprintf(Out, "- %s  (%s)  visits=%d  avg=%.1f\n", r.Name, r.Address, r.VisitCount, r.AverageRating)
	}
	return nil
}

type statsCmd struct{}

func (statsCmd) Name() string        { return "stats" }
func (statsCmd) Description() string { return "Monthly statistics (default: current month)" }
func (statsCmd) Usage() string       { return "stats [YYYY-MM]" }

func (statsCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) > 1 {
		return ErrUsage
	}
	month := ""
	if len(args) == 1 {
		month = args[0]
	}
	st, err := diaryService(cfg).Stats(ctx, month)
	if err != nil {
		return err
	}
	fmt.Fprintf(Out, "Month: %s\n", st.Month)
	fmt.Fprintf(Out, "  entries:     %d\n", st.Entries)
	fmt.Fprintf(Out, "  restaurants: %d\n", st.Restaurants)
	fmt.Fprintf(Out, "  avg rating:  %.1f\n", st.AverageRating)
	return nil
}

type tagsCmd struct{}

func (tagsCmd) Name() string        { return "tags" }
func (tagsCmd) Description() string { return "List tags with the restaurants using them" }
func (tagsCmd) Usage() string       { return "tags" }

func (tagsCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	svc := diaryService(cfg)
	entries, err := svc.Entries(ctx)
	if err != nil {
		return err
	}
	tags := diary.AllTags(entries)
	if len(tags) == 0 {
		fmt.Fprintln(Out, "No tags")
		return nil
	}
	byTag := diary.RestaurantsByTag(entries)
	for _, t := range tags {
		fmt.Fprintf(Out, "- %s: %s\n", t, strings.Join(byTag[t], ", "))
	}
	return nil
}

type calendarCmd struct{}

func (calendarCmd) Name() string        { return "calendar" }
func (calendarCmd) Description() string { return "Visit days of a month, or entries of one day" }
func (calendarCmd) Usage() string       { return "calendar <YYYY-MM | YYYY-MM-DD>" }

func (calendarCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	month, date := args[0], ""
	if d, ok := diary.ParseDate(args[0]); ok {
		month, date = diary.Month(d), d
	} else if _, err := time.Parse("2006-01", month); err != nil {
		return ErrUsage
	}

	days, entries, err := diaryService(cfg).Calendar(ctx, month, date)
	if err != nil {
		return err
	}
	if date == "" {
		if len(days) == 0 {
			fmt.Fprintf(Out, "No visits in %s\n", month)
			return nil
		}
		fmt.Fprintf(Out, "Visits in %s: %s\n", month, strings.Join(days, ", "))
		return nil
	}
	if len(entries) == 0 {
		fmt.Fprintf(Out, "No entries on %s\n", date)
		return nil
	}
	for _, e := range entries {
		fmt.Fprintf(Out, "- [%d] %s  rating=%d\n", e.ID, e.RestaurantName, e.OverallRating)
	}
	return nil
}

func init() {
	RegisterCmd(restaurantsCmd{})
	RegisterCmd(statsCmd{})
	RegisterCmd(tagsCmd{})
	RegisterCmd(calendarCmd{})
}
