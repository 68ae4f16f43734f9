package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"tuiassist/internal/logger"
	"tuiassist/internal/session"
	"tuiassist/internal/transcript"
)

func sessionsMain(args []string) {
	if err := runSessions(args, os.Stdout); err != nil {
		logger.Fatalf("sessions: %v", err)
	}
}

// runSessions 无参数时列出存档，给出 id（或 --last）时打印对应 transcript。
func runSessions(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("sessions", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	var dir string
	var last bool
	fs.StringVar(&dir, "dir", "", "Archive directory (default ~/.tuiassist/sessions)")
	fs.BoolVar(&last, "last", false, "Print the most recent session")
	if err := fs.Parse(args); err != nil {
		return err
	}

	archive := session.Archive{Dir: dir}
	switch {
	case last:
		rec, err := archive.Last()
		if err != nil {
			return err
		}
		printRecord(out, rec)
		return nil
	case fs.NArg() > 0:
		rec, err := archive.Load(fs.Arg(0))
		if err != nil {
			return err
		}
		printRecord(out, rec)
		return nil
	}

	records, err := archive.List()
	if err != nil {
		return err
	}
	if len(records) == 0 {
		_, _ = fmt.Fprintln(out, "no sessions archived yet")
		return nil
	}
	for _, rec := range records {
		_, _ = fmt.Fprintf(out, "%s  %s  %s/%s  %d entries\n",
			rec.ID, rec.Updated.Local().Format(time.DateTime), rec.Provider, rec.Model, len(rec.Entries))
	}
	return nil
}

func printRecord(out io.Writer, rec session.Record) {
	for _, e := range rec.Entries {
		switch e.Kind {
		case transcript.UserCommand:
			_, _ = fmt.Fprintf(out, "> %s\n", e.Text)
		case transcript.ErrorNotice:
			_, _ = fmt.Fprintf(out, "! %s\n", e.Text)
		default:
			_, _ = fmt.Fprintln(out, strings.TrimRight(e.Text, "\n"))
		}
	}
}
