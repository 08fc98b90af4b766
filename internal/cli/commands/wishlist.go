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

type wishlistCmd struct{}

func (wishlistCmd) Name() string        { return "wishlist" }
func (wishlistCmd) Description() string { return "Show the wishlist by priority" }
func (wishlistCmd) Usage() string       { return "wishlist" }

func (wishlistCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	items, err := diaryService(cfg).Wishlist(ctx)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		fmt.Fprintln(Out, "Wishlist is empty")
		return nil
	}
	for _, it := range items {
		line := fmt.Sprintf("- [%d] %-6s %s", it.ID, it.Priority, it.Dish)
		if it.Restaurant != "" {
			line += " @ " + it.Restaurant
		}
		line += "  (" + it.AddedDate + ")"
		fmt.Fprintln(Out, line)
		if it.Notes != "" {
			fmt.Fprintf(Out, "    %s\n", it.Notes)
		}
	}
	return nil
}

type wishAddCmd struct{}

func (wishAddCmd) Name() string        { return "wish-add" }
func (wishAddCmd) Description() string { return "Add a dish to the wishlist" }
func (wishAddCmd) Usage() string {
	return "wish-add [-priority high|medium|low] [-notes text] <dish> [restaurant]"
}

func (wishAddCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("wish-add", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	priority := fs.String("priority", "", "high|medium|low")
	notes := fs.String("notes", "", "notes")
	if err := fs.Parse(args); err != nil {
		return ErrUsage
	}
	if fs.NArg() < 1 || fs.NArg() > 2 {
		return ErrUsage
	}
	if _, ok := diary.ParsePriority(*priority); !ok {
		return ErrUsage
	}

	id, err := diaryService(cfg).AddWish(ctx, diary.WishlistInput{
		Dish:       fs.Arg(0),
		Restaurant: fs.Arg(1),
		Notes:      *notes,
		Priority:   strings.ToLower(*priority),
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(Out, "Added wishlist item %d\n", id)
	return nil
}

type wishDeleteCmd struct{}

func (wishDeleteCmd) Name() string        { return "wish-delete" }
func (wishDeleteCmd) Description() string { return "Remove a wishlist item" }
func (wishDeleteCmd) Usage() string       { return "wish-delete <id>" }

func (wishDeleteCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return ErrUsage
	}
	if err := diaryService(cfg).DeleteWish(ctx, id); err != nil {
		return err
	}
	fmt.Fprintf(Out, "Deleted wishlist item %d\n", id)
	return nil
}

func init() {
	RegisterCmd(wishlistCmd{})
	RegisterCmd(wishAddCmd{})
	RegisterCmd(wishDeleteCmd{})
}
