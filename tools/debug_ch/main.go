// Applies a ClickHouse migration file and reports warehouse row counts.
// Operator tool for local setups; the API never runs migrations itself.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/ClickHouse/clickhouse-go/v2"
)

func main() {
	dsn := flag.String("dsn", "clickhouse://default:@localhost:9000/ufc_stats", "ClickHouse DSN")
	migration := flag.String("migration", "", "optional migration file to apply first")
	flag.Parse()

	ctx := context.Background()
	opts, err := clickhouse.ParseDSN(*dsn)
	if err != nil {
		log.Fatal(err)
	}
	conn, err := clickhouse.Open(opts)
	if err != nil {
		log.Fatal(err)
	}

	if *migration != "" {
		content, err := os.ReadFile(*migration)
		if err != nil {
			log.Fatal(err)
		}
		statements := strings.Split(string(content), ";")
		for _, stmt := range statements {
			stmt = strings.TrimSpace(stmt)
			if stmt == "" {
				continue
			}
			if err := conn.Exec(ctx, stmt); err != nil {
				log.Fatal(err)
			}
		}
		fmt.Println("Migration applied successfully!")
	}

	for _, table := range []string{"ufc_stats.bout_stats", "ufc_stats.bout_results"} {
		var count uint64
		if err := conn.QueryRow(ctx, "SELECT count() FROM "+table).Scan(&count); err != nil {
			log.Fatal(err)
		}
		fmt.Printf("%s: %d rows\n", table, count)
	}
}
