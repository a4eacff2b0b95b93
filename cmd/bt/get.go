package main

import (
	"fmt"
	"io"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jadenzaleski/bible-translations/internal/bible"
	"github.com/jadenzaleski/bible-translations/internal/canon"
)

func getCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <translation> <reference> [<end-reference>]",
		Short: "Print a verse, chapter, book, or verse range",
		Long: `Print scripture text to stdout.

A reference names a book ("Jude"), a chapter ("John 3"), or a verse
("John 3:16"). With a second reference, everything between the two
endpoints is printed, e.g.:

  bt get KJV "John 3:16"
  bt get WEB "1 Samuel 17"
  bt get KJV "John 3:16" "John 4:2"`,
		Args: cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			fetcher, _, cleanup, err := a.fetcher(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			svc, err := a.service(args[0], fetcher)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if len(args) == 3 {
				books, err := svc.SelectionRefs(ctx, args[1], args[2])
				if err != nil {
					return err
				}
				printBooks(out, books)
				return nil
			}

			ref, err := canon.ParseRef(args[1])
			if err != nil {
				return err
			}
			switch {
			case ref.Verse > 0:
				v, err := svc.Verse(ctx, ref.Book, ref.Chapter, ref.Verse)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%s %d:%d  %s\n", ref.Book, ref.Chapter, v.Number, v.Text)
			case ref.Chapter > 0:
				ch, err := svc.Chapter(ctx, ref.Book, ref.Chapter)
				if err != nil {
					return err
				}
				printChapter(out, ref.Book, *ch)
			default:
				b, err := svc.Book(ctx, ref.Book)
				if err != nil {
					return err
				}
				printBooks(out, []bible.Book{*b})
			}
			return nil
		},
	}
}

func printBooks(w io.Writer, books []bible.Book) {
	for _, b := range books {
		for _, ch := range b.Chapters {
			printChapter(w, b.Name, ch)
		}
	}
}

func printChapter(w io.Writer, book string, ch bible.Chapter) {
	fmt.Fprintf(w, "%s %d\n", book, ch.Number)
	for _, v := range ch.Verses {
		fmt.Fprintf(w, "%d  %s\n", v.Number, v.Text)
	}
	fmt.Fprintln(w)
}
