package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"
	"text/tabwriter"
	"time"
	"tsp-canvas-service/internal/adapters/journal"
	"tsp-canvas-service/internal/config"
	"tsp-canvas-service/internal/platform/db"
	"tsp-canvas-service/internal/ports"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// journaltool prepares the attempt journal schema and prints recent solve
// attempts from whichever store JOURNAL_DRIVER selects.
func main() {
	initSchema := flag.Bool("init", false, "create the journal schema and exit")
	recent := flag.Int("recent", 20, "number of recent attempts to print")
	flag.Parse()

	config.LoadEnv()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	if cfg.JournalDriver == config.JournalNone {
		log.Fatal("JOURNAL_DRIVER=none: nothing to inspect")
	}

	conn, err := open(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	log.Println("Initializing journal schema...")
	if err := initJournal(conn, cfg.JournalDriver); err != nil {
		log.Fatalf("schema initialization failed: %v", err)
	}
	log.Println("Schema ready.")

	if *initSchema {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	attempts, err := reader(conn, cfg.JournalDriver).Recent(ctx, *recent)
	if err != nil {
		log.Fatalf("read journal failed: %v", err)
	}
	printAttempts(attempts)
}

func open(cfg config.Config) (*sql.DB, error) {
	if cfg.JournalDriver == config.JournalPostgres {
		return db.Open(cfg.DatabaseURL)
	}
	return db.OpenSqlite(cfg.JournalPath)
}

func initJournal(conn *sql.DB, driver string) error {
	if driver == config.JournalPostgres {
		return journal.InitPostgresSchema(conn)
	}
	return journal.InitSqliteSchema(conn)
}

func reader(conn *sql.DB, driver string) ports.AttemptJournal {
	if driver == config.JournalPostgres {
		return journal.NewSQLAttemptJournal(conn)
	}
	return journal.NewSqliteAttemptJournal(conn)
}

func printAttempts(attempts []ports.Attempt) {
	if len(attempts) == 0 {
		fmt.Println("no attempts recorded")
		return
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "STARTED\tSESSION\tCITIES\tOUTCOME\tDURATION\tERROR")
	for _, a := range attempts {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\t%s\n",
			a.StartedAt.Local().Format(time.DateTime),
			a.SessionID,
			a.CityCount,
			a.Outcome,
			a.Duration.Round(time.Millisecond),
			a.ErrorMessage,
		)
	}
	tw.Flush()
}
