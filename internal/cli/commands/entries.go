package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"

	"IEats/internal/config"
	"IEats/internal/diary"
)

type entriesCmd struct{}

func (entriesCmd) Name() string        { return "entries" }
func (entriesCmd) Description() string { return "List diary entries, newest first" }
func (entriesCmd) Usage() string       { return "entries" }

func (entriesCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	entries, err := diaryService(cfg).Entries(ctx)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintln(Out, "No entries")
		return nil
	}
	for _, e := range entries {
		fmt.Fprintf(Out, "- [%d] %s  %s  %s  rating=%d\n", e.ID, e.Date, e.RestaurantName, e.RestaurantAddress, e.OverallRating)
		if len(e.Dishes) > 0 {
			fmt.Fprintf(Out, "    dishes: %s\n", strings.Join(e.Dishes, ", "))
		}
		if len(e.Tags) > 0 {
			fmt.Fprintf(Out, "    tags: %s\n", strings.Join(e.Tags, ", "))
		}
	}
	fmt.Fprintf(Out, "Total: %d\n", len(entries))
	return nil
}

// listFlag collects repeated -dish/-tag flags.
type listFlag []string

func (l *listFlag) String() string     { return strings.Join(*l, ",") }
func (l *listFlag) Set(v string) error { *l = append(*l, v); return nil }

type entryAddCmd struct{}

func (entryAddCmd) Name() string        { return "entry-add" }
func (entryAddCmd) Description() string { return "Add a diary entry" }
func (entryAddCmd) Usage() string {
	return "entry-add [-dish d]... [-tag t]... [-image url]... [-content text] <restaurant> <address> <YYYY-MM-DD> <rating 1-5>"
}

func (entryAddCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("entry-add", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	var dishes, tags, images listFlag
	fs.Var(&dishes, "dish", "dish (repeatable)")
	fs.Var(&tags, "tag", "tag (repeatable)")
	fs.Var(&images, "image", "image URL (repeatable)")
	content := fs.String("content", "", "free text")
	if err := fs.Parse(args); err != nil {
		return ErrUsage
	}
	rest := fs.Args()
	if len(rest) != 4 {
		return ErrUsage
	}
	rating, err := strconv.Atoi(rest[3])
	if err != nil {
		return ErrUsage
	}

	id, err := diaryService(cfg).AddEntry(ctx, diary.EntryInput{
		RestaurantName:    rest[0],
		RestaurantAddress: rest[1],
		Date:              rest[2],
		OverallRating:     diary.NumberOf(float64(rating)),
		Content:           *content,
		Images:            diary.StringList(images),
		Dishes:            diary.StringList(dishes),
		Tags:              diary.StringList(tags),
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(Out, "Created entry %d\n", id)
	return nil
}

type entryEditCmd struct{}

func (entryEditCmd) Name() string { return "entry-edit" }
func (entryEditCmd) Description() string {
	return "Edit a diary entry; given -dish/-tag/-image replace the whole list"
}
func (entryEditCmd) Usage() string {
	return "entry-edit [-name n] [-address a] [-date YYYY-MM-DD] [-rating 1-5] [-content text] " +
		"[-dish d]... [-tag t]... [-image url]... [-no-dishes] [-no-tags] [-no-images] <id>"
}

func (entryEditCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	// флаги идут перед id, как у entry-add
	fs := flag.NewFlagSet("entry-edit", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	name := fs.String("name", "", "restaurant name")
	address := fs.String("address", "", "restaurant address")
	date := fs.String("date", "", "visit date")
	rating := fs.Int("rating", 0, "overall rating")
	content := fs.String("content", "", "free text")
	var dishes, tags, images listFlag
	fs.Var(&dishes, "dish", "dish (repeatable)")
	fs.Var(&tags, "tag", "tag (repeatable)")
	fs.Var(&images, "image", "image URL (repeatable)")
	noDishes := fs.Bool("no-dishes", false, "remove all dishes")
	noTags := fs.Bool("no-tags", false, "remove all tags")
	noImages := fs.Bool("no-images", false, "remove all images")
	if err := fs.Parse(args); err != nil {
		return ErrUsage
	}
	if fs.NArg() != 1 {
		return ErrUsage
	}
	id, err := strconv.ParseInt(fs.Arg(0), 10, 64)
	if err != nil {
		return ErrUsage
	}
	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	if len(set) == 0 {
		return ErrUsage
	}

	svc := diaryService(cfg)
	cur, err := svc.Entry(ctx, id)
	if err != nil {
		return err
	}

	// сервер заменяет запись целиком, поэтому незаданные поля берём из текущей
	in := diary.EntryInput{
		RestaurantName:    cur.RestaurantName,
		RestaurantAddress: cur.RestaurantAddress,
		Date:              cur.Date,
		OverallRating:     diary.NumberOf(float64(cur.OverallRating)),
		Content:           cur.Content,
		Images:            diary.StringList(cur.Images),
		Dishes:            diary.StringList(cur.Dishes),
		Tags:              diary.StringList(cur.Tags),
	}
	if set["name"] {
		in.RestaurantName = *name
	}
	if set["address"] {
		in.RestaurantAddress = *address
	}
	if set["date"] {
		in.Date = *date
	}
	if set["rating"] {
		in.OverallRating = diary.NumberOf(float64(*rating))
	}
	if set["content"] {
		in.Content = *content
	}
	switch {
	case *noDishes:
		in.Dishes = diary.StringList{}
	case set["dish"]:
		in.Dishes = diary.StringList(dishes)
	}
	switch {
	case *noTags:
		in.Tags = diary.StringList{}
	case set["tag"]:
		in.Tags = diary.StringList(tags)
	}
	switch {
	case *noImages:
		in.Images = diary.StringList{}
	case set["image"]:
		in.Images = diary.StringList(images)
	}

	if err := svc.UpdateEntry(ctx, id, in); err != nil {
		return err
	}
	fmt.Fprintln(Out, "Updated:")
	fmt.Fprintf(Out, "  id:         %d\n", id)
	fmt.Fprintf(Out, "  restaurant: %s\n", strings.TrimSpace(in.RestaurantName))
	fmt.Fprintf(Out, "  dishes:     %s\n", strings.Join(in.Dishes, ", "))
	fmt.Fprintf(Out, "  tags:       %s\n", strings.Join(in.Tags, ", "))
	return nil
}

type entryDeleteCmd struct{}

func (entryDeleteCmd) Name() string        { return "entry-delete" }
func (entryDeleteCmd) Description() string { return "Delete a diary entry" }
func (entryDeleteCmd) Usage() string       { return "entry-delete <id>" }

func (entryDeleteCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return ErrUsage
	}
	if err := diaryService(cfg).DeleteEntry(ctx, id); err != nil {
		return err
	}
	fmt.Fprintf(Out, "Deleted entry %d\n", id)
	return nil
}

func init() {
	RegisterCmd(entriesCmd{})
	RegisterCmd(entryAddCmd{})
	RegisterCmd(entryEditCmd{})
	RegisterCmd(entryDeleteCmd{})
}
